package middleware

import (
	"fmt"
	"strings"
	"time"

	"foerderpilot/config"
	"foerderpilot/database"
	"foerderpilot/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "fp_session"

// GenerateJWT generates a JWT token for the user
func GenerateJWT(userID uint, role, email string, tenantID *uint) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"email":  email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(24 * time.Hour).Unix(), // expiry 24h
	}
	if tenantID != nil {
		claims["tenantId"] = *tenantID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// SetSessionCookie writes the signed session token as an HTTP-only cookie.
func SetSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

// tokenFromRequest extracts the session token from the cookie or, as a
// fallback, from a Bearer Authorization header.
func tokenFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookie); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[len("Bearer "):]
	}
	return ""
}

// JWTMiddleware requires a valid session token and loads the account into
// the request context.
func JWTMiddleware(c *fiber.Ctx) error {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Nicht angemeldet!", nil)
	}

	// Parse and validate the token
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Sitzung ungültig oder abgelaufen!", nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Sitzung ungültig oder abgelaufen!", nil)
	}

	// JWT numbers decode as float64
	userID := uint(claims["userId"].(float64))

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND is_active = true", userID).
		First(&user).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Benutzerkonto nicht gefunden oder deaktiviert!", nil)
	}

	c.Locals("userId", user.ID)
	c.Locals("user", &user)

	return c.Next()
}

// CurrentUser returns the account loaded by JWTMiddleware, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Eingaben ungültig!", errors)
}
