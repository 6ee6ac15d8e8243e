package routes

import (
	"errors"

	"eventbuddy-server/models"
	"eventbuddy-server/services"
	"eventbuddy-server/storage"
	"eventbuddy-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// SubmitReview creates the single review allowed per (user, booking) and
// recomputes the vendor aggregates in the same flow.
func SubmitReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input ReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.Where("id = ? AND user_id = ?", input.BookingID, userID).First(&booking).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Booking not found.", ctx)
		return
	}

	var existing models.Review
	if err := storage.DB.Where("user_id = ? AND booking_id = ?", userID, input.BookingID).First(&existing).Error; err == nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "You have already reviewed this booking.", ctx)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	review := models.Review{
		UserID:    userID,
		BookingID: booking.ID,
		VendorID:  booking.VendorID, // denormalized from the booking
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	if err := storage.DB.Create(&review).Error; err != nil {
		// Composite unique index closes the check-then-insert window.
		utils.CreateError(iris.StatusConflict, "Conflict", "You have already reviewed this booking.", ctx)
		return
	}

	recomputeVendorRating(booking.VendorID)

	var vendor models.Vendor
	if err := storage.DB.First(&vendor, booking.VendorID).Error; err == nil {
		go services.NewNotificationService().SendReviewReceived(vendor.UserID, review.ID, review.Rating)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": review})
}

// EditReview overwrites rating/comment on the caller's own review.
func EditReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	reviewID := ctx.Params().GetUintDefault("id", 0)
	if reviewID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid review ID.", ctx)
		return
	}

	var input UpdateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var review models.Review
	if err := storage.DB.Where("id = ? AND user_id = ?", reviewID, userID).First(&review).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	if err := storage.DB.Save(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	recomputeVendorRating(review.VendorID)

	ctx.JSON(iris.Map{"success": true, "data": review})
}

// ListVendorReviews is the public review feed for a vendor.
func ListVendorReviews(ctx iris.Context) {
	vendorID := ctx.Params().GetUintDefault("vendorId", 0)
	if vendorID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid vendor ID.", ctx)
		return
	}

	var reviews []models.Review
	if err := storage.DB.Where("vendor_id = ?", vendorID).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var totalRating float64
	for _, review := range reviews {
		totalRating += float64(review.Rating)
	}
	averageRating := 0.0
	if len(reviews) > 0 {
		averageRating = totalRating / float64(len(reviews))
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"reviews":       reviews,
			"averageRating": averageRating,
			"reviewCount":   len(reviews),
		},
	})
}

// ListReviewableBookings returns the caller's bookings annotated with the
// review already written for each, so clients can tell which ones still
// accept one.
func ListReviewableBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var bookings []models.Booking
	if err := storage.DB.Where("user_id = ?", userID).
		Preload("Vendor").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var reviews []models.Review
	if err := storage.DB.Where("user_id = ?", userID).Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	reviewed := make(map[uint]models.Review, len(reviews))
	for _, review := range reviews {
		reviewed[review.BookingID] = review
	}

	type reviewableBooking struct {
		models.Booking
		Review *models.Review `json:"review,omitempty"`
	}
	out := make([]reviewableBooking, 0, len(bookings))
	for _, booking := range bookings {
		entry := reviewableBooking{Booking: booking}
		if review, ok := reviewed[booking.ID]; ok {
			r := review
			entry.Review = &r
		}
		out = append(out, entry)
	}

	ctx.JSON(iris.Map{"success": true, "data": out})
}

// recomputeVendorRating rebuilds the stored aggregates from the review store
// so they can never drift between writes.
func recomputeVendorRating(vendorID uint) {
	var reviews []models.Review
	if err := storage.DB.Where("vendor_id = ?", vendorID).Find(&reviews).Error; err != nil {
		return
	}

	var totalRating float64
	for _, review := range reviews {
		totalRating += float64(review.Rating)
	}
	rating := 0.0
	if len(reviews) > 0 {
		rating = totalRating / float64(len(reviews))
	}

	storage.DB.Model(&models.Vendor{}).Where("id = ?", vendorID).
		Updates(map[string]interface{}{"rating": rating, "review_count": len(reviews)})
}

type ReviewInput struct {
	BookingID uint   `json:"bookingID" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}

type UpdateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}
