package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sncandles/storefront/internal/events"
	"github.com/sncandles/storefront/internal/logging"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// fail is the single error surface: every handled failure becomes
// {success:false, message} with a proper status code, never a crash.
func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, Response{Success: false, Message: message})
}

func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}
