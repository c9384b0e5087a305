package superAdminController

import (
	"log"

	"foerderpilot/config"
	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// tenantStats augments a tenant with usage counters for the console list.
type tenantStats struct {
	models.Tenant
	UserCount        int64 `json:"user_count"`
	CourseCount      int64 `json:"course_count"`
	ParticipantCount int64 `json:"participant_count"`
}

// GenerateSubdomain derives a unique subdomain from a company name. On
// collision a 5-character suffix is appended to the slug.
func GenerateSubdomain(db *gorm.DB, companyName string) string {
	slug := utils.Slugify(companyName)
	if slug == "" {
		slug = "anbieter"
	}

	var existing models.Tenant
	if err := db.Where("subdomain = ?", slug).First(&existing).Error; err == gorm.ErrRecordNotFound {
		return slug
	}

	for {
		candidate := slug + "-" + utils.RandomSuffix(5)
		if err := db.Where("subdomain = ?", candidate).First(&existing).Error; err == gorm.ErrRecordNotFound {
			return candidate
		}
	}
}

// ListTenants returns every tenant with usage counters.
func ListTenants(c *fiber.Ctx) error {
	db := database.Database.Db

	var tenants []models.Tenant
	if err := db.Order("created_at DESC").Find(&tenants).Error; err != nil {
		log.Printf("Error listing tenants: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Anbieter konnten nicht geladen werden!", nil)
	}

	result := make([]tenantStats, 0, len(tenants))
	for _, t := range tenants {
		stats := tenantStats{Tenant: t}
		db.Model(&models.User{}).Where("tenant_id = ? AND is_deleted = false", t.ID).Count(&stats.UserCount)
		db.Model(&models.Course{}).Where("tenant_id = ? AND is_deleted = false", t.ID).Count(&stats.CourseCount)
		db.Model(&models.Participant{}).Where("tenant_id = ? AND is_deleted = false", t.ID).Count(&stats.ParticipantCount)
		result = append(result, stats)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", result)
}

// GetTenant returns one tenant.
func GetTenant(c *fiber.Ctx) error {
	tenant, errResp := findTenant(c)
	if tenant == nil {
		return errResp
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", tenant)
}

// CreateTenant creates a tenant with an auto-generated subdomain and,
// optionally, its first admin account.
func CreateTenant(c *fiber.Ctx) error {
	reqData := new(struct {
		Name         string `json:"name"`
		CompanyName  string `json:"company_name"`
		CustomDomain string `json:"custom_domain"`
		AdminName    string `json:"admin_name"`
		AdminEmail   string `json:"admin_email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	db := database.Database.Db

	companyName := reqData.CompanyName
	if companyName == "" {
		companyName = reqData.Name
	}

	if reqData.CustomDomain != "" {
		var other models.Tenant
		if err := db.Where("custom_domain = ?", reqData.CustomDomain).First(&other).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Diese Domain ist bereits vergeben!", nil)
		}
	}

	tenant := models.Tenant{
		Name:         reqData.Name,
		Subdomain:    GenerateSubdomain(db, companyName),
		CustomDomain: reqData.CustomDomain,
		CompanyName:  reqData.CompanyName,
		IsActive:     true,
	}

	if err := db.Create(&tenant).Error; err != nil {
		log.Printf("Error creating tenant: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Anbieter konnte nicht angelegt werden!", nil)
	}

	data := fiber.Map{"tenant": tenant}

	if reqData.AdminEmail != "" {
		tempPassword := utils.RandomSuffix(12)
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), config.AppConfig.SaltRound)
		if err != nil {
			log.Printf("Error hashing admin password: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Admin-Konto konnte nicht angelegt werden!", nil)
		}

		admin := models.User{
			Name:     reqData.AdminName,
			Email:    reqData.AdminEmail,
			Password: string(hashedPassword),
			Role:     models.RoleAdmin,
			TenantID: &tenant.ID,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("Error creating tenant admin: %v", err)
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Admin-Konto konnte nicht angelegt werden (E-Mail bereits vergeben?)!", nil)
		}

		utils.SendInviteEmail(&tenant, &admin, tempPassword)
		data["admin"] = admin
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Anbieter angelegt.", data)
}

// UpdateTenant updates tenant master data including the domains.
func UpdateTenant(c *fiber.Ctx) error {
	tenant, errResp := findTenant(c)
	if tenant == nil {
		return errResp
	}

	reqData := new(struct {
		Name         string `json:"name"`
		Subdomain    string `json:"subdomain"`
		CustomDomain string `json:"custom_domain"`
		CompanyName  string `json:"company_name"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	db := database.Database.Db

	if reqData.Subdomain != "" && reqData.Subdomain != tenant.Subdomain {
		var other models.Tenant
		if err := db.Where("subdomain = ? AND id <> ?", reqData.Subdomain, tenant.ID).First(&other).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Diese Subdomain ist bereits vergeben!", nil)
		}
		tenant.Subdomain = reqData.Subdomain
	}
	if reqData.CustomDomain != "" && reqData.CustomDomain != tenant.CustomDomain {
		var other models.Tenant
		if err := db.Where("custom_domain = ? AND id <> ?", reqData.CustomDomain, tenant.ID).First(&other).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Diese Domain ist bereits vergeben!", nil)
		}
	}
	if reqData.Name != "" {
		tenant.Name = reqData.Name
	}
	tenant.CustomDomain = reqData.CustomDomain
	tenant.CompanyName = reqData.CompanyName

	if err := db.Save(tenant).Error; err != nil {
		log.Printf("Error updating tenant: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Anbieter konnte nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Anbieter gespeichert.", tenant)
}

// SetTenantActive soft-toggles a tenant. Tenants are never hard-deleted.
func SetTenantActive(c *fiber.Ctx) error {
	tenant, errResp := findTenant(c)
	if tenant == nil {
		return errResp
	}

	reqData := new(struct {
		IsActive bool `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	tenant.IsActive = reqData.IsActive
	if err := database.Database.Db.Save(tenant).Error; err != nil {
		log.Printf("Error toggling tenant: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Anbieter konnte nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Anbieter gespeichert.", tenant)
}

// ListAllUsers returns accounts across all tenants, optionally filtered by
// tenant.
func ListAllUsers(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = false")
	if tenantID := c.QueryInt("tenantId"); tenantID > 0 {
		query = query.Where("tenant_id = ?", tenantID)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		log.Printf("Error listing users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Benutzer konnten nicht geladen werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", users)
}

func findTenant(c *fiber.Ctx) (*models.Tenant, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anbieter-ID!", nil)
	}

	var tenant models.Tenant
	if err := database.Database.Db.First(&tenant, id).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Anbieter nicht gefunden!", nil)
	}
	return &tenant, nil
}
