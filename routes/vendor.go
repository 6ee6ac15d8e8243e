package routes

import (
	"encoding/json"
	"errors"
	"fmt"

	"eventbuddy-server/models"
	"eventbuddy-server/storage"
	"eventbuddy-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// ListVendors is the public directory, optionally filtered by category and
// availability, joined with the owner's public name/email.
func ListVendors(ctx iris.Context) {
	query := storage.DB.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email")
	})

	if category := ctx.URLParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if ctx.URLParamExists("available") {
		query = query.Where("is_available = ?", ctx.URLParamBoolDefault("available", true))
	}

	var vendors []models.Vendor
	if err := query.Order("rating DESC, review_count DESC").Find(&vendors).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": vendors})
}

func GetVendorByID(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid vendor ID.", ctx)
		return
	}

	var vendor models.Vendor
	if err := storage.DB.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email")
	}).First(&vendor, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	// Pointer so the portfolio marshaller fires on the embedded value.
	ctx.JSON(iris.Map{"success": true, "data": &vendor})
}

// CreateVendorProfile creates the one-per-account vendor record and flips the
// owning account's vendor flag.
func CreateVendorProfile(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input VendorInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.PriceMin > input.PriceMax {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "priceMin cannot exceed priceMax.", ctx)
		return
	}

	var existing models.Vendor
	if err := storage.DB.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "This account already has a vendor profile.", ctx)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	vendor := models.Vendor{
		UserID:       userID,
		BusinessName: input.BusinessName,
		Category:     input.Category,
		Description:  input.Description,
		City:         input.City,
		Phone:        input.Phone,
		PriceMin:     input.PriceMin,
		PriceMax:     input.PriceMax,
	}

	if err := storage.DB.Create(&vendor).Error; err != nil {
		// Unique index on user_id closes the check-then-insert window.
		utils.CreateError(iris.StatusConflict, "Conflict", "This account already has a vendor profile.", ctx)
		return
	}

	storage.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_vendor", true)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": &vendor})
}

// UpdateVendorProfile applies a partial update; only the owner may touch it.
func UpdateVendorProfile(ctx iris.Context) {
	vendor := getOwnedVendor(ctx)
	if vendor == nil {
		return
	}

	var input UpdateVendorInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.BusinessName != nil {
		vendor.BusinessName = *input.BusinessName
	}
	if input.Category != nil {
		vendor.Category = *input.Category
	}
	if input.Description != nil {
		vendor.Description = *input.Description
	}
	if input.City != nil {
		vendor.City = *input.City
	}
	if input.Phone != nil {
		vendor.Phone = *input.Phone
	}
	if input.PriceMin != nil {
		vendor.PriceMin = *input.PriceMin
	}
	if input.PriceMax != nil {
		vendor.PriceMax = *input.PriceMax
	}
	if input.IsAvailable != nil {
		vendor.IsAvailable = input.IsAvailable
	}

	if vendor.PriceMin > vendor.PriceMax {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "priceMin cannot exceed priceMax.", ctx)
		return
	}

	if err := storage.DB.Save(vendor).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": vendor})
}

// UploadVendorImage replaces the profile image with a Cloudinary-hosted copy.
func UploadVendorImage(ctx iris.Context) {
	vendor := getOwnedVendor(ctx)
	if vendor == nil {
		return
	}

	var input ImageUploadInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	publicID := fmt.Sprintf("vendors/%d/profile", vendor.ID)
	url := storage.UploadBase64Image(input.Image, publicID)
	if url == "" {
		utils.CreateError(iris.StatusServiceUnavailable, "Upload Error", "Image upload failed, please try again.", ctx)
		return
	}

	if vendor.ImageURL != "" {
		storage.DeleteImage(vendor.ImageURL)
	}

	vendor.ImageURL = url
	if err := storage.DB.Save(vendor).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": iris.Map{"imageURL": url}})
}

// UploadPortfolioImages appends uploaded URLs to the portfolio set.
func UploadPortfolioImages(ctx iris.Context) {
	vendor := getOwnedVendor(ctx)
	if vendor == nil {
		return
	}

	var input PortfolioUploadInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var portfolio []string
	if vendor.Portfolio != nil {
		if err := json.Unmarshal(vendor.Portfolio, &portfolio); err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	for i, image := range input.Images {
		publicID := fmt.Sprintf("vendors/%d/portfolio/%d_%d", vendor.ID, len(portfolio), i)
		url := storage.UploadBase64Image(image, publicID)
		if url == "" {
			continue
		}
		if !slices.Contains(portfolio, url) {
			portfolio = append(portfolio, url)
		}
	}

	marshalled, marshalErr := json.Marshal(portfolio)
	if marshalErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	vendor.Portfolio = marshalled
	if err := storage.DB.Save(vendor).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": iris.Map{"portfolio": portfolio}})
}

// RemovePortfolioImage drops one URL from the portfolio set.
func RemovePortfolioImage(ctx iris.Context) {
	vendor := getOwnedVendor(ctx)
	if vendor == nil {
		return
	}

	var input RemovePortfolioInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var portfolio []string
	if vendor.Portfolio != nil {
		if err := json.Unmarshal(vendor.Portfolio, &portfolio); err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	kept := make([]string, 0, len(portfolio))
	for _, url := range portfolio {
		if url != input.URL {
			kept = append(kept, url)
		}
	}

	if len(kept) != len(portfolio) {
		storage.DeleteImage(input.URL)
	}

	marshalled, marshalErr := json.Marshal(kept)
	if marshalErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	vendor.Portfolio = marshalled
	if err := storage.DB.Save(vendor).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": iris.Map{"portfolio": kept}})
}

// getOwnedVendor loads the vendor addressed by the {id} parameter and checks
// the caller owns it. Writes the failure response itself and returns nil.
func getOwnedVendor(ctx iris.Context) *models.Vendor {
	userID := ctx.Values().Get("userID").(uint)

	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		// Ids start at 1; a literal /vendors/0 addresses nothing.
		utils.CreateNotFound(ctx)
		return nil
	}

	var vendor models.Vendor
	if err := storage.DB.First(&vendor, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil
	}
	if vendor.UserID != userID {
		utils.CreateNotFound(ctx)
		return nil
	}
	return &vendor
}

type VendorInput struct {
	BusinessName string  `json:"businessName" validate:"required,max=256"`
	Category     string  `json:"category" validate:"required,oneof=venue catering photography music decoration transport other"`
	Description  string  `json:"description" validate:"max=4000"`
	City         string  `json:"city" validate:"max=256"`
	Phone        string  `json:"phone" validate:"max=32"`
	PriceMin     float64 `json:"priceMin" validate:"gte=0"`
	PriceMax     float64 `json:"priceMax" validate:"gte=0"`
}

type UpdateVendorInput struct {
	BusinessName *string  `json:"businessName"`
	Category     *string  `json:"category" validate:"omitempty,oneof=venue catering photography music decoration transport other"`
	Description  *string  `json:"description"`
	City         *string  `json:"city"`
	Phone        *string  `json:"phone"`
	PriceMin     *float64 `json:"priceMin" validate:"omitempty,gte=0"`
	PriceMax     *float64 `json:"priceMax" validate:"omitempty,gte=0"`
	IsAvailable  *bool    `json:"isAvailable"`
}

type ImageUploadInput struct {
	Image string `json:"image" validate:"required"`
}

type PortfolioUploadInput struct {
	Images []string `json:"images" validate:"required,min=1,max=10"`
}

type RemovePortfolioInput struct {
	URL string `json:"url" validate:"required"`
}
