package routes

import (
	"eventbuddy-server/models"
	"eventbuddy-server/storage"
	"eventbuddy-server/utils"

	"github.com/kataras/iris/v12"
)

// Guests are a sub-resource of an event: every handler re-verifies the parent
// event belongs to the caller before touching a roster row.

func ListGuests(ctx iris.Context) {
	event := getOwnedParentEvent(ctx)
	if event == nil {
		return
	}

	var guests []models.Guest
	if err := storage.DB.Where("event_id = ?", event.ID).Order("created_at ASC").Find(&guests).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"guests":    guests,
			"headcount": eventHeadcount(guests),
		},
	})
}

func AddGuest(ctx iris.Context) {
	event := getOwnedParentEvent(ctx)
	if event == nil {
		return
	}

	var input GuestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	guest := models.Guest{
		EventID:    event.ID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		RSVPStatus: "pending",
		PlusOne:    input.PlusOne,
	}
	if input.RSVPStatus != "" {
		guest.RSVPStatus = input.RSVPStatus
	}

	if err := storage.DB.Create(&guest).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": guest})
}

func UpdateGuest(ctx iris.Context) {
	event := getOwnedParentEvent(ctx)
	if event == nil {
		return
	}

	guest := getEventGuest(ctx, event.ID)
	if guest == nil {
		return
	}

	var input UpdateGuestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != nil {
		guest.Name = *input.Name
	}
	if input.Email != nil {
		guest.Email = *input.Email
	}
	if input.Phone != nil {
		guest.Phone = *input.Phone
	}
	if input.RSVPStatus != nil {
		guest.RSVPStatus = *input.RSVPStatus
	}
	if input.PlusOne != nil {
		guest.PlusOne = *input.PlusOne
	}

	if err := storage.DB.Save(guest).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": guest})
}

func RemoveGuest(ctx iris.Context) {
	event := getOwnedParentEvent(ctx)
	if event == nil {
		return
	}

	guest := getEventGuest(ctx, event.ID)
	if guest == nil {
		return
	}

	if err := storage.DB.Delete(guest).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Guest removed."})
}

// getOwnedParentEvent is the ownership guard for the guest sub-resource.
func getOwnedParentEvent(ctx iris.Context) *models.Event {
	userID := ctx.Values().Get("userID").(uint)

	eventID := ctx.Params().GetUintDefault("eventId", 0)
	if eventID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid event ID.", ctx)
		return nil
	}

	var event models.Event
	if err := storage.DB.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil
	}
	return &event
}

func getEventGuest(ctx iris.Context, eventID uint) *models.Guest {
	guestID := ctx.Params().GetUintDefault("guestId", 0)
	if guestID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid guest ID.", ctx)
		return nil
	}

	var guest models.Guest
	if err := storage.DB.Where("id = ? AND event_id = ?", guestID, eventID).First(&guest).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil
	}
	return &guest
}

// eventHeadcount counts confirmed guests; a plus-one adds one seat.
func eventHeadcount(guests []models.Guest) int {
	count := 0
	for _, guest := range guests {
		if guest.RSVPStatus != "confirmed" {
			continue
		}
		count++
		if guest.PlusOne {
			count++
		}
	}
	return count
}

type GuestInput struct {
	Name       string `json:"name" validate:"required,max=256"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"max=32"`
	RSVPStatus string `json:"rsvpStatus" validate:"omitempty,oneof=pending confirmed declined"`
	PlusOne    bool   `json:"plusOne"`
}

type UpdateGuestInput struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone"`
	RSVPStatus *string `json:"rsvpStatus" validate:"omitempty,oneof=pending confirmed declined"`
	PlusOne    *bool   `json:"plusOne"`
}
