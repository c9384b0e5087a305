package tenantSettingsController

import (
	"log"
	"time"

	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/utils"

	"github.com/gofiber/fiber/v2"
)

// GetSettings returns the caller's tenant.
func GetSettings(c *fiber.Ctx) error {
	tenant, errResp := ownTenant(c)
	if tenant == nil {
		return errResp
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", tenant)
}

// UpdateSettings updates branding, legal and certification data of the
// caller's tenant. Subdomain and active flag stay super-admin-only.
func UpdateSettings(c *fiber.Ctx) error {
	tenant, errResp := ownTenant(c)
	if tenant == nil {
		return errResp
	}

	reqData := new(struct {
		Name           string     `json:"name"`
		PrimaryColor   string     `json:"primary_color"`
		SecondaryColor string     `json:"secondary_color"`
		LogoURL        string     `json:"logo_url"`
		CompanyName    string     `json:"company_name"`
		LegalForm      string     `json:"legal_form"`
		Street         string     `json:"street"`
		ZipCode        string     `json:"zip_code"`
		City           string     `json:"city"`
		ContactEmail   string     `json:"contact_email"`
		ContactPhone   string     `json:"contact_phone"`
		VatID          string     `json:"vat_id"`
		CertName       string     `json:"cert_name"`
		CertifiedUntil *time.Time `json:"certified_until"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	if reqData.Name != "" {
		tenant.Name = reqData.Name
	}
	tenant.PrimaryColor = reqData.PrimaryColor
	tenant.SecondaryColor = reqData.SecondaryColor
	tenant.LogoURL = reqData.LogoURL
	tenant.CompanyName = reqData.CompanyName
	tenant.LegalForm = reqData.LegalForm
	tenant.Street = reqData.Street
	tenant.ZipCode = reqData.ZipCode
	tenant.City = reqData.City
	tenant.ContactEmail = reqData.ContactEmail
	tenant.ContactPhone = reqData.ContactPhone
	tenant.VatID = reqData.VatID
	tenant.CertName = reqData.CertName
	tenant.CertifiedUntil = reqData.CertifiedUntil

	if err := database.Database.Db.Save(tenant).Error; err != nil {
		log.Printf("Error updating tenant settings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Einstellungen konnten nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Einstellungen gespeichert.", tenant)
}

// ListEmailTemplates returns the tenant's template overrides together with
// the list of built-in keys they can override.
func ListEmailTemplates(c *fiber.Ctx) error {
	tenant, errResp := ownTenant(c)
	if tenant == nil {
		return errResp
	}

	var templates []models.EmailTemplate
	err := database.Database.Db.
		Where("tenant_id = ? AND is_deleted = false", tenant.ID).Find(&templates).Error
	if err != nil {
		log.Printf("Error listing email templates: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Vorlagen konnten nicht geladen werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", fiber.Map{
		"templates":      templates,
		"available_keys": utils.TemplateKeys,
	})
}

// UpsertEmailTemplate creates or updates one template override by key.
func UpsertEmailTemplate(c *fiber.Ctx) error {
	tenant, errResp := ownTenant(c)
	if tenant == nil {
		return errResp
	}

	reqData := new(struct {
		Key      string `json:"key"`
		Subject  string `json:"subject"`
		Heading  string `json:"heading"`
		BodyHTML string `json:"body_html"`
		IsActive bool   `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	known := false
	for _, key := range utils.TemplateKeys {
		if key == reqData.Key {
			known = true
			break
		}
	}
	if !known {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unbekannter Vorlagen-Schlüssel!", nil)
	}

	db := database.Database.Db

	var tpl models.EmailTemplate
	err := db.Where("tenant_id = ? AND `key` = ? AND is_deleted = false", tenant.ID, reqData.Key).
		First(&tpl).Error
	if err != nil {
		tpl = models.EmailTemplate{TenantID: tenant.ID, Key: reqData.Key}
	}

	tpl.Subject = reqData.Subject
	tpl.Heading = reqData.Heading
	tpl.BodyHTML = reqData.BodyHTML
	tpl.IsActive = reqData.IsActive

	if err := db.Save(&tpl).Error; err != nil {
		log.Printf("Error saving email template: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Vorlage konnte nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Vorlage gespeichert.", tpl)
}

// DeleteEmailTemplate removes an override; the built-in template applies
// again afterwards.
func DeleteEmailTemplate(c *fiber.Ctx) error {
	tenant, errResp := ownTenant(c)
	if tenant == nil {
		return errResp
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Vorlagen-ID!", nil)
	}

	db := database.Database.Db

	var tpl models.EmailTemplate
	if err := db.Where("id = ? AND tenant_id = ? AND is_deleted = false", id, tenant.ID).First(&tpl).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Vorlage nicht gefunden!", nil)
	}

	tpl.IsDeleted = true
	if err := db.Save(&tpl).Error; err != nil {
		log.Printf("Error deleting email template: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Vorlage konnte nicht gelöscht werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Vorlage gelöscht.", nil)
}

// ownTenant loads the caller's tenant row.
func ownTenant(c *fiber.Ctx) (*models.Tenant, error) {
	tenantID := middleware.ScopeTenantID(c)
	if tenantID == 0 {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Kein Anbieter für diese Anfrage ermittelt!", nil)
	}

	var tenant models.Tenant
	if err := database.Database.Db.First(&tenant, tenantID).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Anbieter nicht gefunden!", nil)
	}
	return &tenant, nil
}
