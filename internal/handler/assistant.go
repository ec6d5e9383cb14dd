package handler

// assistant.go implements the conversational assistant proxy. The widget
// sends a message plus its prior turns; the handler forwards the payload
// verbatim to the external completion service and relays whatever comes
// back. The upstream is treated as opaque: no streaming, no retries, and
// any failure collapses into a single generic service error.

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// AssistantHandler forwards chat requests to the configured completion
// endpoint.  The zero value is not usable; construct with
// NewAssistantHandler so the HTTP client carries the timeout.
type AssistantHandler struct {
	URL    string
	Client *http.Client
}

// NewAssistantHandler builds the proxy around the upstream URL.  The
// timeout bounds the whole forwarded exchange.
func NewAssistantHandler(url string, timeout time.Duration) *AssistantHandler {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AssistantHandler{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Chat handles POST /api/ai/chat.  The body must contain a non-empty
// "message"; the full payload (message + history) is forwarded unchanged
// so the upstream contract stays in one place.
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req struct {
		Message string           `json:"message"`
		History []map[string]any `json:"history"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message is required"})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ai service error"})
	}

	upReq, err := http.NewRequestWithContext(c.Request().Context(), http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ai service error"})
	}
	upReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	resp, err := h.Client.Do(upReq)
	if err != nil {
		c.Logger().Errorf("assistant upstream: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ai service error"})
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Logger().Errorf("assistant read: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ai service error"})
	}
	// Relay the upstream response unmodified, including non-200 statuses.
	return c.Blob(resp.StatusCode, resp.Header.Get(echo.HeaderContentType), payload)
}
