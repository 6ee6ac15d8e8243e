package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventbuddy-server/models"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// An unset portfolio must serialize as an empty array everywhere, including
// responses that embed the vendor inside an envelope.
func TestGetVendorPortfolioSerialization(t *testing.T) {
	db := setupTestDB(t)

	owner := models.User{Name: "Bob", Email: "bob@example.com", Password: "x", IsVendor: true}
	db.Create(&owner)
	vendor := models.Vendor{UserID: owner.ID, BusinessName: "Snapshots", Category: "photography"}
	db.Create(&vendor)

	app := iris.New()
	app.Get("/api/vendors/{id:uint}", GetVendorByID)
	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/vendors/%d", vendor.ID), nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"portfolio":[]`) {
		t.Fatalf("expected empty portfolio to render as [], got %s", resp.Body.String())
	}
}

// Ids start at 1; addressing /vendors/0 reads as absent before any lookup.
func TestUpdateVendorZeroID(t *testing.T) {
	app := iris.New()
	app.Validator = validator.New()
	app.Patch("/api/vendors/{id:uint}", func(ctx iris.Context) {
		ctx.Values().Set("userID", uint(1))
		ctx.Next()
	}, UpdateVendorProfile)
	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/vendors/0", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for vendor id 0, got %d", resp.Code)
	}
}
