package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventbuddy-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

func buildChatTestApp(t *testing.T, assistantURL string, timeout time.Duration) *iris.Application {
	t.Helper()
	utils.Cfg = &utils.Config{
		AssistantURL:     assistantURL,
		AssistantTimeout: timeout,
	}

	app := iris.New()
	app.Validator = validator.New()

	chat := app.Party("/api/chat")
	{
		chat.Post("/message", func(ctx iris.Context) {
			ctx.Values().Set("userID", uint(1))
			ctx.Next()
		}, PostChatMessage)
		chat.Get("/suggestions", GetQuickSuggestions)
	}

	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return app
}

func TestPostChatMessageRelay(t *testing.T) {
	var upstreamPayload map[string]interface{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &upstreamPayload)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"reply":"Book the venue first."}`))
	}))
	defer upstream.Close()

	app := buildChatTestApp(t, upstream.URL, 2*time.Second)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/message",
		strings.NewReader(`{"message":"Where do I start?"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "Book the venue first.") {
		t.Fatalf("expected upstream reply to pass through, got %s", resp.Body.String())
	}

	if upstreamPayload["message"] != "Where do I start?" {
		t.Fatalf("upstream did not receive the message: %v", upstreamPayload)
	}
	// Session id is generated when the client does not supply one.
	sessionID, _ := upstreamPayload["sessionId"].(string)
	if sessionID == "" {
		t.Fatalf("expected a generated sessionId, got %v", upstreamPayload["sessionId"])
	}
}

func TestPostChatMessageSessionIDPreserved(t *testing.T) {
	var upstreamPayload map[string]interface{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &upstreamPayload)
		w.Write([]byte(`{"success":true}`))
	}))
	defer upstream.Close()

	app := buildChatTestApp(t, upstream.URL, 2*time.Second)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/message",
		strings.NewReader(`{"message":"hi","sessionId":"abc-123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if upstreamPayload["sessionId"] != "abc-123" {
		t.Fatalf("expected sessionId to be preserved, got %v", upstreamPayload["sessionId"])
	}
}

func TestPostChatMessageUpstreamTimeout(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"success":true}`))
	}))
	defer upstream.Close()

	app := buildChatTestApp(t, upstream.URL, 50*time.Millisecond)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/message",
		strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 on assistant timeout, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"success":false`) {
		t.Fatalf("expected failure envelope, got %s", resp.Body.String())
	}
}

func TestPostChatMessageValidation(t *testing.T) {
	app := buildChatTestApp(t, "http://localhost:0", time.Second)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/message",
		strings.NewReader(`{"sessionId":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing message, got %d", resp.Code)
	}
}

func TestGetQuickSuggestions(t *testing.T) {
	app := buildChatTestApp(t, "http://localhost:0", time.Second)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/suggestions", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Success bool     `json:"success"`
		Data    []string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !body.Success || len(body.Data) == 0 {
		t.Fatalf("expected a non-empty suggestion list, got %+v", body)
	}
}
