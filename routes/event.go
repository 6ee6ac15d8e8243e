package routes

import (
	"time"

	"eventbuddy-server/models"
	"eventbuddy-server/storage"
	"eventbuddy-server/utils"

	"github.com/kataras/iris/v12"
)

func CreateEvent(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input EventInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	eventDate, dateErr := time.Parse("2006-01-02", input.EventDate)
	if dateErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "eventDate must be YYYY-MM-DD.", ctx)
		return
	}

	event := models.Event{
		UserID:     userID,
		Title:      input.Title,
		EventType:  input.EventType,
		EventDate:  eventDate,
		Location:   input.Location,
		GuestCount: input.GuestCount,
		Budget:     input.Budget,
		Status:     "draft",
	}

	if err := storage.DB.Create(&event).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": event})
}

// ListUserEvents returns the caller's events ordered by event date ascending.
func ListUserEvents(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var events []models.Event
	if err := storage.DB.Where("user_id = ?", userID).
		Order("event_date ASC").
		Find(&events).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": events})
}

func GetEventByID(ctx iris.Context) {
	event := getOwnedEvent(ctx)
	if event == nil {
		return
	}

	var guests []models.Guest
	storage.DB.Where("event_id = ?", event.ID).Find(&guests)
	event.Guests = guests

	ctx.JSON(iris.Map{"success": true, "data": event})
}

func UpdateEvent(ctx iris.Context) {
	event := getOwnedEvent(ctx)
	if event == nil {
		return
	}

	var input UpdateEventInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.EventType != nil {
		event.EventType = *input.EventType
	}
	if input.EventDate != nil {
		eventDate, dateErr := time.Parse("2006-01-02", *input.EventDate)
		if dateErr != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "eventDate must be YYYY-MM-DD.", ctx)
			return
		}
		event.EventDate = eventDate
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.GuestCount != nil {
		event.GuestCount = *input.GuestCount
	}
	if input.Budget != nil {
		event.Budget = *input.Budget
	}
	if input.Status != nil {
		// The store does not police transitions, only set membership.
		event.Status = *input.Status
	}

	if err := storage.DB.Save(event).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": event})
}

func DeleteEvent(ctx iris.Context) {
	event := getOwnedEvent(ctx)
	if event == nil {
		return
	}

	storage.DB.Where("event_id = ?", event.ID).Delete(&models.Guest{})
	if err := storage.DB.Delete(event).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Event deleted."})
}

// getOwnedEvent resolves the {id} route parameter against the caller's
// account. A foreign event answers 404, never 403, so other accounts' event
// ids stay unguessable.
func getOwnedEvent(ctx iris.Context) *models.Event {
	userID := ctx.Values().Get("userID").(uint)

	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid event ID.", ctx)
		return nil
	}

	var event models.Event
	if err := storage.DB.Where("id = ? AND user_id = ?", id, userID).First(&event).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil
	}
	return &event
}

type EventInput struct {
	Title      string  `json:"title" validate:"required,max=256"`
	EventType  string  `json:"event_type" validate:"required,max=64"`
	EventDate  string  `json:"event_date" validate:"required"`
	Location   string  `json:"location" validate:"max=256"`
	GuestCount int     `json:"guest_count" validate:"gte=0"`
	Budget     float64 `json:"budget" validate:"gte=0"`
}

type UpdateEventInput struct {
	Title      *string  `json:"title"`
	EventType  *string  `json:"event_type"`
	EventDate  *string  `json:"event_date"`
	Location   *string  `json:"location"`
	GuestCount *int     `json:"guest_count" validate:"omitempty,gte=0"`
	Budget     *float64 `json:"budget" validate:"omitempty,gte=0"`
	Status     *string  `json:"status" validate:"omitempty,oneof=draft planning confirmed completed cancelled"`
}
