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

func TestBookingTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{"pending", "confirmed", true},
		{"pending", "cancelled", true},
		{"confirmed", "cancelled", true},
		{"confirmed", "pending", false},
		{"cancelled", "pending", false},
		{"cancelled", "confirmed", false},
		{"pending", "pending", true},
		{"confirmed", "confirmed", true},
		{"cancelled", "cancelled", true},
	}

	for _, c := range cases {
		if got := bookingTransitionAllowed(c.from, c.to); got != c.want {
			t.Errorf("bookingTransitionAllowed(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestSumConfirmedRevenue(t *testing.T) {
	bookings := []models.Booking{
		{Status: "confirmed", Amount: 1200.50},
		{Status: "pending", Amount: 9999},
		{Status: "confirmed", Amount: 300},
		{Status: "cancelled", Amount: 500},
	}

	got := sumConfirmedRevenue(bookings)
	if got != 1500.50 {
		t.Fatalf("expected 1500.50 over confirmed bookings, got %v", got)
	}

	if got := sumConfirmedRevenue(nil); got != 0 {
		t.Fatalf("expected 0 for no bookings, got %v", got)
	}
}

func buildBookingTestApp(t *testing.T, callerID uint) *iris.Application {
	t.Helper()
	app := iris.New()
	app.Validator = validator.New()

	app.Post("/api/bookings", func(ctx iris.Context) {
		ctx.Values().Set("userID", callerID)
		ctx.Next()
	}, CreateBooking)

	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return app
}

// Booking a vendor that does not exist reads as absent and persists nothing.
func TestCreateBookingVendorNotFound(t *testing.T) {
	db := setupTestDB(t)

	client := models.User{Name: "Alice", Email: "alice@example.com", Password: "x"}
	db.Create(&client)
	event := models.Event{UserID: client.ID, Title: "Wedding", EventType: "Wedding", EventDate: time.Now()}
	db.Create(&event)

	app := buildBookingTestApp(t, client.ID)

	resp := postJSON(t, app, "/api/bookings",
		fmt.Sprintf(`{"vendorID":999,"eventID":%d,"serviceDate":"2026-09-01","amount":500}`, event.ID))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing vendor, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no booking persisted, found %d", count)
	}
}
