package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sncandles/storefront/internal/events"
	"github.com/sncandles/storefront/internal/logging"
	"github.com/sncandles/storefront/internal/models"
)

type ContactHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *ContactHandler) Contact(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "contact")

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Message == "" {
		return fail(c, http.StatusBadRequest, "email and message are required")
	}

	msg := models.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now().Unix(),
	}
	if err := h.DB.Create(&msg).Error; err != nil {
		l.Error("contact save failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, events.TopicContactEvents, req.Email, map[string]interface{}{
		"type":  "contact_message",
		"email": req.Email,
	})

	l.Info("contact message received", "id", msg.ID)
	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Contact message received. We will be in touch!",
	})
}

// Subscribe is idempotent: a repeat email answers success with a distinct
// message and never creates a second row.
func (h *ContactHandler) Subscribe(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "subscribe")

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return fail(c, http.StatusBadRequest, "email is required")
	}

	var existing models.Subscription
	err := h.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return c.JSON(http.StatusOK, Response{
			Success: true,
			Message: "You are already subscribed to our newsletter.",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("subscribe lookup failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	if err := h.DB.Create(&models.Subscription{Email: email}).Error; err != nil {
		l.Error("subscribe save failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, events.TopicContactEvents, email, map[string]interface{}{
		"type":  "newsletter_subscribed",
		"email": email,
	})

	l.Info("newsletter subscription added", "email", email)
	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Thank you for subscribing to our newsletter!",
	})
}
