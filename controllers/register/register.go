package registerController

import (
	"encoding/json"
	"log"
	"time"

	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/utils"

	"github.com/gofiber/fiber/v2"
)

// ListPublicCourses returns the published, active courses of the resolved
// tenant for the public funnel.
func ListPublicCourses(c *fiber.Ctx) error {
	tenant := middleware.CurrentTenant(c)
	if tenant == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Kein Anbieter für diese Adresse gefunden!", nil)
	}

	var courses []models.Course
	err := database.Database.Db.
		Where("tenant_id = ? AND is_published = true AND is_active = true AND is_deleted = false", tenant.ID).
		Order("title ASC").Find(&courses).Error
	if err != nil {
		log.Printf("Error listing public courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Kurse konnten nicht geladen werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", courses)
}

// Submit finalizes the funnel: it creates the participant with the
// Fördercheck snapshot and sends the welcome email. The participant starts
// in documents_pending since the KOMPASS paperwork is the immediate next
// step.
func Submit(c *fiber.Ctx) error {
	tenant := middleware.CurrentTenant(c)
	if tenant == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Kein Anbieter für diese Adresse gefunden!", nil)
	}

	reqData := new(struct {
		CourseID          uint       `json:"course_id"`
		Salutation        string     `json:"salutation"`
		FirstName         string     `json:"first_name"`
		LastName          string     `json:"last_name"`
		Email             string     `json:"email"`
		Phone             string     `json:"phone"`
		Street            string     `json:"street"`
		ZipCode           string     `json:"zip_code"`
		City              string     `json:"city"`
		BirthDate         *time.Time `json:"birth_date"`
		CompanyName       string     `json:"company_name"`
		FoundingDate      *time.Time `json:"founding_date"`
		FundingPercentage int        `json:"funding_percentage"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	db := database.Database.Db

	var course models.Course
	err := db.Where("id = ? AND tenant_id = ? AND is_published = true AND is_active = true AND is_deleted = false",
		reqData.CourseID, tenant.ID).First(&course).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Kurs nicht gefunden!", nil)
	}

	if course.MaxParticipants > 0 {
		var count int64
		db.Model(&models.Participant{}).
			Where("course_id = ? AND is_deleted = false", course.ID).Count(&count)
		if count >= int64(course.MaxParticipants) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Dieser Kurs ist bereits ausgebucht!", nil)
		}
	}

	funding := reqData.FundingPercentage
	if funding <= 0 || funding > 100 {
		funding = course.SubsidyPercentage
	}

	participant := models.Participant{
		TenantID:           tenant.ID,
		CourseID:           course.ID,
		Salutation:         reqData.Salutation,
		FirstName:          reqData.FirstName,
		LastName:           reqData.LastName,
		Email:              reqData.Email,
		Phone:              reqData.Phone,
		Street:             reqData.Street,
		ZipCode:            reqData.ZipCode,
		City:               reqData.City,
		BirthDate:          reqData.BirthDate,
		CompanyName:        reqData.CompanyName,
		FoundingDate:       reqData.FoundingDate,
		FundingPercentage:  funding,
		FundingAmountCents: utils.FundingAmountCents(course.PriceGrossCents, funding),
		Status:             models.ParticipantStatusDocumentsPending,
	}

	if err := db.Create(&participant).Error; err != nil {
		log.Printf("Error creating participant from funnel: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Anmeldung fehlgeschlagen!", nil)
	}

	utils.SendWelcomeEmail(tenant, &participant, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Anmeldung erfolgreich.", participant)
}

// Consent is one checkbox of the Vorvertrag.
type Consent struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Accepted bool   `json:"accepted"`
}

// SignVorvertrag stores the pre-contract consents and signature for a
// participant of the resolved tenant.
func SignVorvertrag(c *fiber.Ctx) error {
	tenant := middleware.CurrentTenant(c)
	if tenant == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Kein Anbieter für diese Adresse gefunden!", nil)
	}

	participantID, err := c.ParamsInt("participantId")
	if err != nil || participantID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Teilnehmer-ID!", nil)
	}

	reqData := new(struct {
		Consents      []Consent `json:"consents"`
		SignatureData string    `json:"signature_data"`
		SignedName    string    `json:"signed_name"`
		Declined      bool      `json:"declined"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	db := database.Database.Db

	var participant models.Participant
	err = db.Where("id = ? AND tenant_id = ? AND is_deleted = false", participantID, tenant.ID).
		First(&participant).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Teilnehmer nicht gefunden!", nil)
	}

	var existing models.Vorvertrag
	if err := db.Where("participant_id = ?", participant.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Für diesen Teilnehmer liegt bereits ein Vorvertrag vor!", nil)
	}

	status := models.VorvertragStatusSigned
	if reqData.Declined {
		status = models.VorvertragStatusDeclined
	} else {
		for _, consent := range reqData.Consents {
			if !consent.Accepted {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Alle Zustimmungen sind für den Vorvertrag erforderlich!", nil)
			}
		}
		if reqData.SignedName == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Die Unterschrift fehlt!", nil)
		}
	}

	consentsJSON, err := json.Marshal(reqData.Consents)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Zustimmungen konnten nicht verarbeitet werden!", nil)
	}

	now := time.Now()
	vorvertrag := models.Vorvertrag{
		TenantID:      tenant.ID,
		ParticipantID: participant.ID,
		Consents:      consentsJSON,
		SignatureData: reqData.SignatureData,
		SignedName:    reqData.SignedName,
		Status:        status,
		SignedAt:      &now,
	}

	if err := db.Create(&vorvertrag).Error; err != nil {
		log.Printf("Error creating vorvertrag: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Vorvertrag konnte nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Vorvertrag gespeichert.", vorvertrag)
}
