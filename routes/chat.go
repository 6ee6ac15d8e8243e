package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"eventbuddy-server/storage"
	"eventbuddy-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
)

var quickSuggestions = []string{
	"Help me plan a wedding for 100 guests",
	"What should my catering budget be?",
	"How far in advance should I book a photographer?",
	"Suggest a timeline for a corporate event",
	"What questions should I ask a venue?",
}

const suggestionsCacheKey = "chat:suggestions"

// PostChatMessage - POST /chat/message
// Relays the user's message to the planning assistant and returns the
// upstream reply verbatim. A missing sessionId starts a new session.
func PostChatMessage(ctx iris.Context) {
	var input ChatMessageInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.SessionID == "" {
		input.SessionID = uuid.NewString()
	}

	userID := ctx.Values().Get("userID").(uint)
	payload, err := json.Marshal(iris.Map{
		"message":   input.Message,
		"sessionId": input.SessionID,
		"userId":    userID,
		"context":   input.Context,
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	client := http.Client{Timeout: utils.Cfg.AssistantTimeout}
	res, err := client.Post(utils.Cfg.AssistantURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		utils.CreateError(iris.StatusServiceUnavailable, "Service Unavailable",
			"The planning assistant is not responding. Please try again later.", ctx)
		return
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		utils.CreateError(iris.StatusServiceUnavailable, "Service Unavailable",
			"The planning assistant is not responding. Please try again later.", ctx)
		return
	}

	ctx.StatusCode(res.StatusCode)
	ctx.ContentType("application/json")
	ctx.Write(body)
}

// GetQuickSuggestions - GET /chat/suggestions
func GetQuickSuggestions(ctx iris.Context) {
	if storage.Redis != nil {
		cached, err := storage.Redis.Get(context.Background(), suggestionsCacheKey).Result()
		if err == nil && cached != "" {
			var suggestions []string
			if json.Unmarshal([]byte(cached), &suggestions) == nil {
				ctx.JSON(iris.Map{"success": true, "data": suggestions})
				return
			}
		}
	}

	if storage.Redis != nil {
		if encoded, err := json.Marshal(quickSuggestions); err == nil {
			storage.Redis.Set(context.Background(), suggestionsCacheKey, encoded, 24*time.Hour)
		}
	}

	ctx.JSON(iris.Map{"success": true, "data": quickSuggestions})
}

type ChatMessageInput struct {
	Message   string                 `json:"message" validate:"required"`
	SessionID string                 `json:"sessionId"`
	Context   map[string]interface{} `json:"context"`
}
