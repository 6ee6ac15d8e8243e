package routes

import (
	"time"

	"eventbuddy-server/models"
	"eventbuddy-server/storage"
	"eventbuddy-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// UserAnalytics - GET /analytics/user
// Planning dashboard for the authenticated user.
func UserAnalytics(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var eventsByStatus []StatusCount
	storage.DB.Model(&models.Event{}).
		Where("user_id = ?", userID).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&eventsByStatus)

	var bookingsByStatus []StatusCount
	storage.DB.Model(&models.Booking{}).
		Where("user_id = ?", userID).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&bookingsByStatus)

	var totalSpent float64
	storage.DB.Model(&models.Booking{}).
		Where("user_id = ? AND status = ?", userID, "confirmed").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalSpent)

	since := time.Now().AddDate(0, 0, -365)
	var eventTrend []MonthlyCount
	storage.DB.Model(&models.Event{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Select("to_char(created_at, 'YYYY-MM') AS month, COUNT(*) AS count").
		Group("month").Order("month").
		Scan(&eventTrend)

	var averageBudget float64
	storage.DB.Model(&models.Event{}).
		Where("user_id = ?", userID).
		Select("COALESCE(AVG(budget), 0)").
		Scan(&averageBudget)

	type typeCount struct {
		EventType string `json:"eventType"`
		Count     int64  `json:"count"`
	}
	var topEventTypes []typeCount
	storage.DB.Model(&models.Event{}).
		Where("user_id = ?", userID).
		Select("event_type, COUNT(*) AS count").
		Group("event_type").Order("count DESC").Limit(5).
		Scan(&topEventTypes)

	var upcomingEvents int64
	storage.DB.Model(&models.Event{}).
		Where("user_id = ? AND event_date >= ? AND status NOT IN ?",
			userID, time.Now(), []string{"completed", "cancelled"}).
		Count(&upcomingEvents)

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"eventsByStatus":   eventsByStatus,
			"bookingsByStatus": bookingsByStatus,
			"totalSpent":       totalSpent,
			"eventTrend":       eventTrend,
			"averageBudget":    averageBudget,
			"topEventTypes":    topEventTypes,
			"upcomingEvents":   upcomingEvents,
		},
	})
}

// VendorAnalytics - GET /analytics/vendor
// Business dashboard for the caller's vendor profile.
func VendorAnalytics(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var vendor models.Vendor
	res := storage.DB.Where("user_id = ?", userID).Limit(1).Find(&vendor)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Vendor profile not found.", ctx)
		return
	}

	var bookingsByStatus []StatusCount
	storage.DB.Model(&models.Booking{}).
		Where("vendor_id = ?", vendor.ID).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&bookingsByStatus)

	var revenueEarned float64
	storage.DB.Model(&models.Booking{}).
		Where("vendor_id = ? AND status = ?", vendor.ID, "confirmed").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenueEarned)

	since := time.Now().AddDate(0, 0, -365)
	var bookingTrend []MonthlyCount
	storage.DB.Model(&models.Booking{}).
		Where("vendor_id = ? AND created_at >= ?", vendor.ID, since).
		Select("to_char(created_at, 'YYYY-MM') AS month, COUNT(*) AS count").
		Group("month").Order("month").
		Scan(&bookingTrend)

	var recentBookings []models.Booking
	storage.DB.Where("vendor_id = ?", vendor.ID).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email")
		}).
		Preload("Event").
		Order("created_at DESC").Limit(5).
		Find(&recentBookings)

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"bookingsByStatus": bookingsByStatus,
			"revenueEarned":    revenueEarned,
			"bookingTrend":     bookingTrend,
			"recentBookings":   recentBookings,
			"averageRating":    vendor.Rating,
			"reviewCount":      vendor.ReviewCount,
		},
	})
}

// VendorDashboard - GET /vendors/dashboard
func VendorDashboard(ctx iris.Context) {
	VendorAnalytics(ctx)
}
