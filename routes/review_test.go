package routes

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"eventbuddy-server/models"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

func buildReviewTestApp(t *testing.T, callerID uint) *iris.Application {
	t.Helper()
	app := iris.New()
	app.Validator = validator.New()

	app.Post("/api/reviews", func(ctx iris.Context) {
		ctx.Values().Set("userID", callerID)
		ctx.Next()
	}, SubmitReview)

	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return app
}

// At most one review may ever exist per (user, booking); a second submission
// conflicts and leaves the store untouched.
func TestSubmitReviewDuplicate(t *testing.T) {
	db := setupTestDB(t)

	client := models.User{Name: "Alice", Email: "alice@example.com", Password: "x"}
	db.Create(&client)
	owner := models.User{Name: "Bob", Email: "bob@example.com", Password: "x", IsVendor: true}
	db.Create(&owner)
	vendor := models.Vendor{UserID: owner.ID, BusinessName: "Snapshots", Category: "photography"}
	db.Create(&vendor)
	event := models.Event{UserID: client.ID, Title: "Wedding", EventType: "Wedding", EventDate: time.Now()}
	db.Create(&event)
	booking := models.Booking{UserID: client.ID, VendorID: vendor.ID, EventID: event.ID, Status: "confirmed", Amount: 500}
	db.Create(&booking)

	app := buildReviewTestApp(t, client.ID)
	body := fmt.Sprintf(`{"bookingID":%d,"rating":5,"comment":"Great photos."}`, booking.ID)

	resp := postJSON(t, app, "/api/reviews", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("first review: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp2 := postJSON(t, app, "/api/reviews", body)
	if resp2.Code != http.StatusConflict {
		t.Fatalf("second review: expected 409, got %d: %s", resp2.Code, resp2.Body.String())
	}

	var count int64
	db.Model(&models.Review{}).Where("booking_id = ?", booking.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one review, found %d", count)
	}

	// The stored aggregates were recomputed from the single review.
	var updated models.Vendor
	db.First(&updated, vendor.ID)
	if updated.Rating != 5 || updated.ReviewCount != 1 {
		t.Fatalf("expected rating 5 with one review, got rating=%v count=%d", updated.Rating, updated.ReviewCount)
	}
}

// Reviewing a booking the caller does not own reads as absent.
func TestSubmitReviewForeignBooking(t *testing.T) {
	db := setupTestDB(t)

	client := models.User{Name: "Alice", Email: "alice@example.com", Password: "x"}
	db.Create(&client)
	other := models.User{Name: "Mallory", Email: "mallory@example.com", Password: "x"}
	db.Create(&other)
	owner := models.User{Name: "Bob", Email: "bob@example.com", Password: "x", IsVendor: true}
	db.Create(&owner)
	vendor := models.Vendor{UserID: owner.ID, BusinessName: "Snapshots", Category: "photography"}
	db.Create(&vendor)
	event := models.Event{UserID: client.ID, Title: "Wedding", EventType: "Wedding", EventDate: time.Now()}
	db.Create(&event)
	booking := models.Booking{UserID: client.ID, VendorID: vendor.ID, EventID: event.ID, Status: "confirmed", Amount: 500}
	db.Create(&booking)

	app := buildReviewTestApp(t, other.ID)
	resp := postJSON(t, app, "/api/reviews",
		fmt.Sprintf(`{"bookingID":%d,"rating":1,"comment":"never hired them"}`, booking.ID))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign booking, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.Review{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no review persisted, found %d", count)
	}
}
