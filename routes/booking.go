package routes

import (
	"time"

	"eventbuddy-server/models"
	"eventbuddy-server/services"
	"eventbuddy-server/storage"
	"eventbuddy-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

func CreateBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input BookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var vendor models.Vendor
	if err := storage.DB.First(&vendor, input.VendorID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Vendor not found.", ctx)
		return
	}

	var event models.Event
	if err := storage.DB.Where("id = ? AND user_id = ?", input.EventID, userID).First(&event).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Event not found.", ctx)
		return
	}

	serviceDate, dateErr := time.Parse("2006-01-02", input.ServiceDate)
	if dateErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "serviceDate must be YYYY-MM-DD.", ctx)
		return
	}

	booking := models.Booking{
		UserID:      userID,
		VendorID:    vendor.ID,
		EventID:     event.ID,
		ServiceDate: serviceDate,
		Amount:      input.Amount,
		Status:      "pending",
		Description: input.Description,
		Notes:       input.Notes,
	}

	if err := storage.DB.Create(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	go services.NewNotificationService().SendBookingRequested(vendor.UserID, booking.ID, event.Title, vendor.BusinessName)

	booking.Vendor = vendor
	booking.Event = event

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "message": "Booking created.", "data": &booking})
}

// ListUserBookings returns the caller's bookings, optionally narrowed to one
// event, joined with vendor public fields.
func ListUserBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	query := storage.DB.Where("user_id = ?", userID).
		Preload("Vendor").
		Preload("Event").
		Order("created_at DESC")

	if eventID := ctx.URLParamUint64("eventId"); eventID > 0 {
		query = query.Where("event_id = ?", eventID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": bookings})
}

// ListVendorBookings resolves the vendor profile owned by the caller, then
// returns bookings addressed to it.
func ListVendorBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var vendor models.Vendor
	if err := storage.DB.Where("user_id = ?", userID).First(&vendor).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "No vendor profile for this account.", ctx)
		return
	}

	var bookings []models.Booking
	if err := storage.DB.Where("vendor_id = ?", vendor.ID).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email")
		}).
		Preload("Event").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    bookings,
		"meta":    iris.Map{"totalRevenue": sumConfirmedRevenue(bookings)},
	})
}

// UpdateBookingStatus moves a booking along the forward-only lifecycle:
// pending may confirm or cancel, confirmed may still cancel, cancelled is
// terminal. Confirmation is the vendor's (or an admin's) call; either party
// may cancel.
func UpdateBookingStatus(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	bookingID := ctx.Params().GetUintDefault("id", 0)
	if bookingID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid booking ID.", ctx)
		return
	}

	var input BookingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.Preload("Vendor").Preload("Event").First(&booking, bookingID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	isAdmin := claims.Role == "admin"
	isOwner := booking.UserID == userID
	isVendorOwner := booking.Vendor.UserID == userID

	if !isAdmin && !isOwner && !isVendorOwner {
		utils.CreateNotFound(ctx)
		return
	}
	if input.Status == "confirmed" && !isAdmin && !isVendorOwner {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Only the vendor can confirm a booking.", ctx)
		return
	}

	if !bookingTransitionAllowed(booking.Status, input.Status) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Cannot move booking from "+booking.Status+" to "+input.Status+".", ctx)
		return
	}

	booking.Status = input.Status
	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	go services.NewNotificationService().SendBookingStatusChanged(
		booking.UserID, booking.ID, booking.Vendor.BusinessName, booking.Status)

	ctx.JSON(iris.Map{"success": true, "data": &booking})
}

// bookingTransitionAllowed is the transition table: no resurrecting cancelled
// bookings, no un-confirming.
func bookingTransitionAllowed(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case "pending":
		return to == "confirmed" || to == "cancelled"
	case "confirmed":
		return to == "cancelled"
	default:
		return false
	}
}

// sumConfirmedRevenue totals amounts over confirmed bookings only.
func sumConfirmedRevenue(bookings []models.Booking) float64 {
	var total float64
	for _, booking := range bookings {
		if booking.Status == "confirmed" {
			total += booking.Amount
		}
	}
	return total
}

type BookingInput struct {
	VendorID    uint    `json:"vendorID" validate:"required"`
	EventID     uint    `json:"eventID" validate:"required"`
	ServiceDate string  `json:"serviceDate" validate:"required"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Description string  `json:"description" validate:"max=2000"`
	Notes       string  `json:"notes" validate:"max=2000"`
}

type BookingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}
