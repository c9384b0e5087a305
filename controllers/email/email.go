package emailController

import (
	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/utils"

	"github.com/gofiber/fiber/v2"
)

// ListTemplateKeys returns the built-in notification template keys.
func ListTemplateKeys(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", utils.TemplateKeys)
}

// SendTest dispatches a test email to verify transport and branding.
func SendTest(c *fiber.Ctx) error {
	reqData := new(struct {
		To string `json:"to"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.To == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	utils.SendTestEmail(middleware.CurrentTenant(c), reqData.To)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test-E-Mail wird versendet.", nil)
}

// ResendStatusNotification re-sends the current-status notification to a
// participant, e.g. after a bounced address was corrected.
func ResendStatusNotification(c *fiber.Ctx) error {
	id, err := c.ParamsInt("participantId")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Teilnehmer-ID!", nil)
	}

	db := database.Database.Db

	var participant models.Participant
	if err := db.Where("id = ? AND is_deleted = false", id).First(&participant).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Teilnehmer nicht gefunden!", nil)
	}

	user := middleware.CurrentUser(c)
	if user != nil && !user.IsSuperAdmin() && user.Role != models.RoleKompassReviewer {
		if user.TenantID == nil || *user.TenantID != participant.TenantID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Zugriff auf diesen Teilnehmer nicht erlaubt!", nil)
		}
	}

	var tenant models.Tenant
	var tenantPtr *models.Tenant
	if err := db.First(&tenant, participant.TenantID).Error; err == nil {
		tenantPtr = &tenant
	}

	utils.SendStatusChangeEmail(tenantPtr, &participant, participant.Status, participant.Status)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Benachrichtigung wird erneut versendet.", nil)
}
