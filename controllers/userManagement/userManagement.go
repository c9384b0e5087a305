package userManagementController

import (
	"log"

	"foerderpilot/config"
	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// roles a tenant admin may assign
var assignableRoles = map[string]bool{
	models.RoleAdmin:           true,
	models.RoleKompassReviewer: true,
	models.RoleUser:            true,
}

// ListUsers returns the accounts of the caller's tenant.
func ListUsers(c *fiber.Ctx) error {
	tenantID := middleware.ScopeTenantID(c)

	var users []models.User
	err := database.Database.Db.
		Where("tenant_id = ? AND is_deleted = false", tenantID).
		Order("created_at DESC").Find(&users).Error
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Benutzer konnten nicht geladen werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", users)
}

// InviteUser creates an account in the caller's tenant and emails a
// temporary password.
func InviteUser(c *fiber.Ctx) error {
	reqData := new(struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}
	if !assignableRoles[reqData.Role] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unbekannte Rolle!", nil)
	}

	db := database.Database.Db

	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Diese E-Mail-Adresse ist bereits registriert!", nil)
	}

	tempPassword := utils.RandomSuffix(12)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing temp password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Benutzer konnte nicht angelegt werden!", nil)
	}

	tenantID := middleware.ScopeTenantID(c)
	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     reqData.Role,
		TenantID: &tenantID,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error creating user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Benutzer konnte nicht angelegt werden!", nil)
	}

	utils.SendInviteEmail(middleware.CurrentTenant(c), &newUser, tempPassword)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Benutzer eingeladen.", newUser)
}

// UpdateUser changes name and role of a tenant account.
func UpdateUser(c *fiber.Ctx) error {
	user, errResp := findTenantUser(c)
	if user == nil {
		return errResp
	}

	reqData := new(struct {
		Name string `json:"name"`
		Role string `json:"role"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}
	if reqData.Role != "" && !assignableRoles[reqData.Role] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unbekannte Rolle!", nil)
	}

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.Role != "" {
		user.Role = reqData.Role
	}

	if err := database.Database.Db.Save(user).Error; err != nil {
		log.Printf("Error updating user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Benutzer konnte nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Benutzer gespeichert.", user)
}

// SetActive toggles a tenant account.
func SetActive(c *fiber.Ctx) error {
	user, errResp := findTenantUser(c)
	if user == nil {
		return errResp
	}

	reqData := new(struct {
		IsActive bool `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	user.IsActive = reqData.IsActive
	if err := database.Database.Db.Save(user).Error; err != nil {
		log.Printf("Error toggling user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Benutzer konnte nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Benutzer gespeichert.", user)
}

// ResetUserPassword sets a fresh temporary password and mails it.
func ResetUserPassword(c *fiber.Ctx) error {
	user, errResp := findTenantUser(c)
	if user == nil {
		return errResp
	}

	tempPassword := utils.RandomSuffix(12)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing temp password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Passwort konnte nicht zurückgesetzt werden!", nil)
	}

	user.Password = string(hashedPassword)
	user.ResetToken = ""
	user.ResetTokenExpiry = nil
	if err := database.Database.Db.Save(user).Error; err != nil {
		log.Printf("Error resetting user password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Passwort konnte nicht zurückgesetzt werden!", nil)
	}

	utils.SendInviteEmail(middleware.CurrentTenant(c), user, tempPassword)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Passwort zurückgesetzt.", nil)
}

// findTenantUser loads a user of the caller's tenant; super-admin accounts
// are never reachable here.
func findTenantUser(c *fiber.Ctx) (*models.User, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Benutzer-ID!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Benutzer nicht gefunden!", nil)
	}
	if user.TenantID == nil || user.Role == models.RoleSuperAdmin {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Benutzer nicht gefunden!", nil)
	}

	caller := middleware.CurrentUser(c)
	if caller != nil && !caller.IsSuperAdmin() {
		if caller.TenantID == nil || *caller.TenantID != *user.TenantID {
			return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Zugriff auf diesen Benutzer nicht erlaubt!", nil)
		}
	}
	return &user, nil
}
