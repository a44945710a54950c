package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sncandles/storefront/internal/events"
	"github.com/sncandles/storefront/internal/hash"
	"github.com/sncandles/storefront/internal/logging"
	"github.com/sncandles/storefront/internal/models"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
	Producer  *events.Producer
}

func CreateCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.register")

	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "full name, email and password are required")
	}

	var existing models.User
	err := h.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		l.Warn("register rejected", "status", 409, "reason", "duplicate email")
		return fail(c, http.StatusConflict, "an account with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	user := models.User{
		Name:         req.FullName,
		Email:        req.Email,
		PasswordHash: pwHash,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		l.Error("register failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, events.TopicUserEvents, user.Email, map[string]interface{}{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("user registered", "userID", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Registration successful! You can now log in.",
		"user":    echo.Map{"id": user.ID, "name": user.Name},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		l.Warn("login rejected", "status", 401)
		return fail(c, http.StatusUnauthorized, "invalid email or password")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login rejected", "status", 401)
		return fail(c, http.StatusUnauthorized, "invalid email or password")
	}

	accessExp := time.Now().Add(15 * time.Minute)
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"name": user.Name,
		"exp":  accessExp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString(h.JWTSecret)
	if err != nil {
		l.Error("login failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	c.SetCookie(CreateCookie("accessToken", accessToken, "/", accessExp))

	publish(c, h.Producer, events.TopicUserEvents, user.Email, map[string]interface{}{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("user logged in", "userID", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful! Welcome back, " + user.Name + ".",
		"user":    echo.Map{"id": user.ID, "name": user.Name},
		"token":   accessToken,
	})
}

// RequireAuth guards catalog mutations. The storefront cart stays open on
// purpose: there is one shared cart and no per-user scoping.
func (h *AuthHandler) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := ""
		if cookie, err := c.Cookie("accessToken"); err == nil {
			raw = cookie.Value
		}
		if raw == "" {
			raw = strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
		}
		if raw == "" {
			return fail(c, http.StatusUnauthorized, "authentication required")
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return h.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			return fail(c, http.StatusUnauthorized, "invalid access token")
		}
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(float64); ok {
				c.Set("userID", uint(sub))
			}
		}
		return next(c)
	}
}
