package routes

import (
	"math"
	"time"

	"eventbuddy-server/models"
	"eventbuddy-server/storage"

	"github.com/kataras/iris/v12"
)

// AdminStats - GET /admin/stats
// Platform counters, confirmed revenue, and month-over-month growth.
func AdminStats(ctx iris.Context) {
	var totalUsers, totalVendors, totalEvents, totalBookings int64
	storage.DB.Model(&models.User{}).Count(&totalUsers)
	storage.DB.Model(&models.Vendor{}).Count(&totalVendors)
	storage.DB.Model(&models.Event{}).Count(&totalEvents)
	storage.DB.Model(&models.Booking{}).Count(&totalBookings)

	var totalRevenue float64
	storage.DB.Model(&models.Booking{}).
		Where("status = ?", "confirmed").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalRevenue)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	userGrowth := monthlyGrowth(&models.User{}, monthStart, prevMonthStart)
	eventGrowth := monthlyGrowth(&models.Event{}, monthStart, prevMonthStart)
	bookingGrowth := monthlyGrowth(&models.Booking{}, monthStart, prevMonthStart)

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"totalUsers":    totalUsers,
			"totalVendors":  totalVendors,
			"totalEvents":   totalEvents,
			"totalBookings": totalBookings,
			"totalRevenue":  totalRevenue,
			"userGrowth":    userGrowth,
			"eventGrowth":   eventGrowth,
			"bookingGrowth": bookingGrowth,
		},
	})
}

// AdminAnalytics - GET /admin/analytics
// Twelve months of platform trend buckets.
func AdminAnalytics(ctx iris.Context) {
	since := time.Now().AddDate(-1, 0, 0)

	userTrend := monthlyTrend(&models.User{}, since)
	eventTrend := monthlyTrend(&models.Event{}, since)
	bookingTrend := monthlyTrend(&models.Booking{}, since)

	var revenueTrend []MonthlyAmount
	storage.DB.Model(&models.Booking{}).
		Where("status = ? AND created_at >= ?", "confirmed", since).
		Select("to_char(created_at, 'YYYY-MM') AS month, COALESCE(SUM(amount), 0) AS amount").
		Group("month").Order("month").
		Scan(&revenueTrend)

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"userTrend":    userTrend,
			"eventTrend":   eventTrend,
			"bookingTrend": bookingTrend,
			"revenueTrend": revenueTrend,
		},
	})
}

type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type MonthlyAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

func monthlyTrend(model interface{}, since time.Time) []MonthlyCount {
	var trend []MonthlyCount
	storage.DB.Model(model).
		Where("created_at >= ?", since).
		Select("to_char(created_at, 'YYYY-MM') AS month, COUNT(*) AS count").
		Group("month").Order("month").
		Scan(&trend)
	return trend
}

func monthlyGrowth(model interface{}, monthStart, prevMonthStart time.Time) float64 {
	var current, previous int64
	storage.DB.Model(model).Where("created_at >= ?", monthStart).Count(&current)
	storage.DB.Model(model).Where("created_at >= ? AND created_at < ?", prevMonthStart, monthStart).Count(&previous)
	return growthRate(current, previous)
}

// growthRate is (current-previous)/previous*100 rounded to one decimal;
// a zero previous period reports 0, not infinity.
func growthRate(current, previous int64) float64 {
	if previous == 0 {
		return 0
	}
	rate := float64(current-previous) / float64(previous) * 100
	return math.Round(rate*10) / 10
}
