package documentController

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"foerderpilot/config"
	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/utils"

	"github.com/gofiber/fiber/v2"
)

// Upload decodes a base64 payload, writes it to the file store under a
// tenant/participant-scoped key and inserts a pending document row.
func Upload(c *fiber.Ctx) error {
	participant, errResp := findParticipantParam(c, "participantId")
	if participant == nil {
		return errResp
	}

	reqData := new(struct {
		Type     string `json:"type"`
		FileName string `json:"file_name"`
		MimeType string `json:"mime_type"`
		Data     string `json:"data"` // base64
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	fileData, err := base64.StdEncoding.DecodeString(reqData.Data)
	if err != nil || len(fileData) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Dateiinhalt konnte nicht gelesen werden!", nil)
	}

	key := utils.BuildDocumentKey(participant.TenantID, participant.ID, reqData.Type, reqData.FileName)
	fileURL, err := utils.SaveFile(fileData, key)
	if err != nil {
		log.Printf("Error storing document file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Datei konnte nicht gespeichert werden!", nil)
	}

	document := models.Document{
		TenantID:         participant.TenantID,
		ParticipantID:    participant.ID,
		Type:             reqData.Type,
		FileURL:          fileURL,
		FileKey:          key,
		FileName:         reqData.FileName,
		MimeType:         reqData.MimeType,
		SizeBytes:        int64(len(fileData)),
		ValidationStatus: models.ValidationStatusPending,
	}

	if err := database.Database.Db.Create(&document).Error; err != nil {
		log.Printf("Error creating document row: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Dokument konnte nicht gespeichert werden!", nil)
	}

	utils.SendDocumentUploadedEmail(tenantOf(participant.TenantID), participant,
		utils.DocumentTypeLabel(document.Type))

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Dokument hochgeladen.", document)
}

// List returns a participant's documents.
func List(c *fiber.Ctx) error {
	participant, errResp := findParticipantParam(c, "participantId")
	if participant == nil {
		return errResp
	}

	var documents []models.Document
	err := database.Database.Db.
		Where("participant_id = ? AND is_deleted = false", participant.ID).
		Order("created_at DESC").Find(&documents).Error
	if err != nil {
		log.Printf("Error listing documents: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Dokumente konnten nicht geladen werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", documents)
}

// Get returns one document.
func Get(c *fiber.Ctx) error {
	document, errResp := findDocument(c)
	if document == nil {
		return errResp
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", document)
}

// Validate runs the LLM vision check on a document. The row moves through
// validating to valid/invalid/manual_review; an LLM API failure parks the
// document in manual review and the error is reported to the caller.
func Validate(c *fiber.Ctx) error {
	document, errResp := findDocument(c)
	if document == nil {
		return errResp
	}

	db := database.Database.Db

	document.ValidationStatus = models.ValidationStatusValidating
	if err := db.Save(document).Error; err != nil {
		log.Printf("Error marking document validating: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Dokument konnte nicht gespeichert werden!", nil)
	}

	path := filepath.Join(config.AppConfig.UploadDir, filepath.FromSlash(document.FileKey))
	fileData, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading stored document: %v", err)
		document.ValidationStatus = models.ValidationStatusManualReview
		db.Save(document)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Datei konnte nicht gelesen werden!", nil)
	}

	result, err := utils.ValidateDocument(fileData, document.MimeType, document.Type)
	if err != nil {
		log.Printf("Error validating document %d: %v", document.ID, err)
		document.ValidationStatus = models.ValidationStatusManualReview
		db.Save(document)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Automatische Prüfung fehlgeschlagen, Dokument wird manuell geprüft!", nil)
	}

	raw, err := json.Marshal(result)
	if err != nil {
		log.Printf("Error serializing validation result: %v", err)
	}

	now := time.Now()
	document.ValidationStatus = utils.MapValidationStatus(result)
	document.ValidationResult = raw
	document.ValidatedAt = &now

	if err := db.Save(document).Error; err != nil {
		log.Printf("Error saving validation result: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Prüfergebnis konnte nicht gespeichert werden!", nil)
	}

	var participant models.Participant
	if err := db.First(&participant, document.ParticipantID).Error; err == nil {
		utils.SendDocumentValidatedEmail(tenantOf(document.TenantID), &participant,
			utils.DocumentTypeLabel(document.Type), document.ValidationStatus)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dokument geprüft.", document)
}

// SetStatus lets a reviewer override the validation status manually.
func SetStatus(c *fiber.Ctx) error {
	document, errResp := findDocument(c)
	if document == nil {
		return errResp
	}

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}
	if !models.ValidValidationStatus(reqData.Status) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unbekannter Status!", nil)
	}

	document.ValidationStatus = reqData.Status
	if reqData.Status == models.ValidationStatusValid && document.ValidatedAt == nil {
		now := time.Now()
		document.ValidatedAt = &now
	}
	if err := database.Database.Db.Save(document).Error; err != nil {
		log.Printf("Error saving document status: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Status konnte nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Status gespeichert.", document)
}

// Delete soft-deletes a document and removes the stored file.
func Delete(c *fiber.Ctx) error {
	document, errResp := findDocument(c)
	if document == nil {
		return errResp
	}

	document.IsDeleted = true
	if err := database.Database.Db.Save(document).Error; err != nil {
		log.Printf("Error deleting document: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Dokument konnte nicht gelöscht werden!", nil)
	}
	if err := utils.DeleteFile(document.FileKey); err != nil {
		log.Printf("Error removing stored file %s: %v", document.FileKey, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dokument gelöscht.", nil)
}

// findParticipantParam loads a participant by the given route param and
// enforces tenant ownership before any document side effect happens.
func findParticipantParam(c *fiber.Ctx, param string) (*models.Participant, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Teilnehmer-ID!", nil)
	}

	var participant models.Participant
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&participant).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Teilnehmer nicht gefunden!", nil)
	}

	user := middleware.CurrentUser(c)
	if user != nil && !user.IsSuperAdmin() && user.Role != models.RoleKompassReviewer {
		if user.TenantID == nil || *user.TenantID != participant.TenantID {
			return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Zugriff auf diesen Teilnehmer nicht erlaubt!", nil)
		}
	}
	return &participant, nil
}

// findDocument loads the document from the :id param and enforces tenant
// ownership.
func findDocument(c *fiber.Ctx) (*models.Document, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Dokument-ID!", nil)
	}

	var document models.Document
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&document).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Dokument nicht gefunden!", nil)
	}

	user := middleware.CurrentUser(c)
	if user != nil && !user.IsSuperAdmin() && user.Role != models.RoleKompassReviewer {
		if user.TenantID == nil || *user.TenantID != document.TenantID {
			return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Zugriff auf dieses Dokument nicht erlaubt!", nil)
		}
	}
	return &document, nil
}

func tenantOf(tenantID uint) *models.Tenant {
	var tenant models.Tenant
	if err := database.Database.Db.First(&tenant, tenantID).Error; err != nil {
		return nil
	}
	return &tenant
}
