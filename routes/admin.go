package routes

import (
	"net/http"
	"strings"

	"eventbuddy-server/models"
	"eventbuddy-server/storage"
	"eventbuddy-server/utils"

	"github.com/kataras/iris/v12"
)

// AdminListUsers - GET /admin/users?q=&page=&per_page=
func AdminListUsers(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	query := storage.DB.Model(&models.User{})
	if q := strings.TrimSpace(ctx.URLParamDefault("q", "")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(email) LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&users).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

// AdminListVendors - GET /admin/vendors?q=&verified=&page=&per_page=
func AdminListVendors(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	query := storage.DB.Model(&models.Vendor{}).Preload("User")
	if q := strings.TrimSpace(ctx.URLParamDefault("q", "")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("lower(business_name) LIKE ? OR lower(city) LIKE ?", like, like)
	}
	if ctx.URLParamExists("verified") {
		query = query.Where("is_verified = ?", ctx.URLParamBoolDefault("verified", true))
	}

	var total int64
	query.Count(&total)

	var vendors []models.Vendor
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&vendors).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.JSONPage(ctx, vendors, page, perPage, total)
}

// AdminToggleUserStatus - PATCH /admin/users/:id/status
// Accounts are never hard-deleted, only deactivated.
func AdminToggleUserStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}

	before := user
	active := user.IsActive == nil || *user.IsActive
	toggled := !active
	user.IsActive = &toggled
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "user.status_toggle", "user", user.ID, before, user)
	ctx.JSON(iris.Map{"success": true, "data": user})
}

// AdminToggleVendorVerification - PATCH /admin/vendors/:id/verify
func AdminToggleVendorVerification(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var vendor models.Vendor
	if err := storage.DB.First(&vendor, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "vendor not found")
		return
	}

	before := vendor
	verified := vendor.IsVerified != nil && *vendor.IsVerified
	toggled := !verified
	vendor.IsVerified = &toggled
	if err := storage.DB.Save(&vendor).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "vendor.verify_toggle", "vendor", vendor.ID, before, vendor)
	ctx.JSON(iris.Map{"success": true, "data": vendor})
}

// AdminActivity - GET /admin/activity, last 100 audit rows.
func AdminActivity(ctx iris.Context) {
	var logs []models.AuditLog
	storage.DB.Order("created_at DESC").Limit(100).Find(&logs)
	ctx.JSON(iris.Map{"success": true, "data": logs})
}
