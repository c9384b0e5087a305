package authController

import (
	"fmt"
	"log"
	"time"

	"foerderpilot/config"
	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a self-service account bound to the resolved tenant.
func Register(c *fiber.Ctx) error {
	reqData := new(struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	tenant := middleware.CurrentTenant(c)
	if tenant == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Kein Anbieter für diese Anfrage ermittelt!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Diese E-Mail-Adresse ist bereits registriert!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Registrierung fehlgeschlagen!", nil)
	}

	tenantID := tenant.ID
	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
		TenantID: &tenantID,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Registrierung fehlgeschlagen!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Konto erfolgreich angelegt.", newUser)
}

// Login checks credentials and issues the session cookie.
func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = false", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "E-Mail oder Passwort falsch!", nil)
	}

	if !user.IsActive {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Dieses Konto ist deaktiviert!", nil)
	}
	if user.Password == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Bitte melden Sie sich über Ihren externen Anbieter an!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "E-Mail oder Passwort falsch!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Role, user.Email, user.TenantID)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Anmeldung fehlgeschlagen!", nil)
	}
	middleware.SetSessionCookie(c, token)

	now := time.Now()
	user.LastLogin = &now
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating last login: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Erfolgreich angemeldet.", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout clears the session cookie.
func Logout(c *fiber.Ctx) error {
	middleware.ClearSessionCookie(c)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Abgemeldet.", nil)
}

// Me returns the authenticated account.
func Me(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", middleware.CurrentUser(c))
}

// RequestReset issues a password-reset token. The response is identical for
// known and unknown addresses so account existence never leaks.
func RequestReset(c *fiber.Ctx) error {
	reqData := new(struct {
		Email string `json:"email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = false", reqData.Email).First(&user).Error; err == nil {
		expiry := time.Now().Add(time.Hour)
		user.ResetToken = uuid.NewString()
		user.ResetTokenExpiry = &expiry

		if err := db.Save(&user).Error; err != nil {
			log.Printf("Error storing reset token: %v", err)
		} else {
			resetURL := fmt.Sprintf("%s/passwort-zuruecksetzen?token=%s", config.AppConfig.BaseURL, user.ResetToken)
			utils.SendPasswordResetEmail(middleware.CurrentTenant(c), &user, resetURL)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Falls ein Konto existiert, wurde eine E-Mail versendet.", fiber.Map{
		"success": true,
	})
}

// ResetPassword consumes a valid reset token and stores the new password.
func ResetPassword(c *fiber.Ctx) error {
	reqData := new(struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("reset_token = ? AND is_deleted = false", reqData.Token).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Link ungültig oder abgelaufen!", nil)
	}
	if user.ResetTokenExpiry == nil || user.ResetTokenExpiry.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Link ungültig oder abgelaufen!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Passwort konnte nicht gesetzt werden!", nil)
	}

	user.Password = string(hashedPassword)
	user.ResetToken = ""
	user.ResetTokenExpiry = nil
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error saving new password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Passwort konnte nicht gesetzt werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Passwort erfolgreich geändert.", nil)
}
