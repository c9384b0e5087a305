package participantController

import (
	"log"
	"time"

	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/utils"

	"github.com/gofiber/fiber/v2"
)

type participantRequest struct {
	CourseID     uint       `json:"course_id"`
	ScheduleID   *uint      `json:"schedule_id"`
	Salutation   string     `json:"salutation"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Street       string     `json:"street"`
	ZipCode      string     `json:"zip_code"`
	City         string     `json:"city"`
	BirthDate    *time.Time `json:"birth_date"`
	CompanyName  string     `json:"company_name"`
	FoundingDate *time.Time `json:"founding_date"`
	Notes        string     `json:"notes"`
}

// ListParticipants returns the tenant's participants, filterable by course,
// schedule and status, searchable by name or email.
func ListParticipants(c *fiber.Ctx) error {
	tenantID := middleware.ScopeTenantID(c)
	db := database.Database.Db

	query := db.Where("tenant_id = ? AND is_deleted = false", tenantID)
	if courseID := c.QueryInt("courseId"); courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}
	if scheduleID := c.QueryInt("scheduleId"); scheduleID > 0 {
		query = query.Where("schedule_id = ?", scheduleID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like)
	}

	var participants []models.Participant
	if err := query.Order("created_at DESC").Find(&participants).Error; err != nil {
		log.Printf("Error listing participants: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Teilnehmer konnten nicht geladen werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", participants)
}

// GetParticipant returns one participant with documents, Vorvertrag and
// workflow answers.
func GetParticipant(c *fiber.Ctx) error {
	participant, errResp := FindParticipant(c)
	if participant == nil {
		return errResp
	}

	db := database.Database.Db

	var documents []models.Document
	db.Where("participant_id = ? AND is_deleted = false", participant.ID).
		Order("created_at DESC").Find(&documents)

	var vorvertrag models.Vorvertrag
	haveVorvertrag := db.Where("participant_id = ?", participant.ID).
		First(&vorvertrag).Error == nil

	var answers []models.ParticipantWorkflowAnswer
	db.Where("participant_id = ?", participant.ID).Find(&answers)

	data := fiber.Map{
		"participant": participant,
		"documents":   documents,
		"answers":     answers,
	}
	if haveVorvertrag {
		data["vorvertrag"] = vorvertrag
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", data)
}

// CreateParticipant creates a participant from the admin dashboard.
func CreateParticipant(c *fiber.Ctx) error {
	reqData := new(participantRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	tenantID := middleware.ScopeTenantID(c)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND tenant_id = ? AND is_deleted = false", reqData.CourseID, tenantID).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Kurs nicht gefunden!", nil)
	}

	participant := models.Participant{
		TenantID:           tenantID,
		CourseID:           course.ID,
		ScheduleID:         reqData.ScheduleID,
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
		FundingPercentage:  course.SubsidyPercentage,
		FundingAmountCents: utils.FundingAmountCents(course.PriceGrossCents, course.SubsidyPercentage),
		Status:             models.ParticipantStatusRegistered,
		Notes:              reqData.Notes,
	}

	if err := db.Create(&participant).Error; err != nil {
		log.Printf("Error creating participant: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Teilnehmer konnte nicht angelegt werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Teilnehmer angelegt.", participant)
}

// UpdateParticipant updates contact and company data.
func UpdateParticipant(c *fiber.Ctx) error {
	participant, errResp := FindParticipant(c)
	if participant == nil {
		return errResp
	}

	reqData := new(participantRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	participant.Salutation = reqData.Salutation
	participant.FirstName = reqData.FirstName
	participant.LastName = reqData.LastName
	participant.Email = reqData.Email
	participant.Phone = reqData.Phone
	participant.Street = reqData.Street
	participant.ZipCode = reqData.ZipCode
	participant.City = reqData.City
	participant.BirthDate = reqData.BirthDate
	participant.CompanyName = reqData.CompanyName
	participant.FoundingDate = reqData.FoundingDate
	participant.Notes = reqData.Notes

	if err := database.Database.Db.Save(participant).Error; err != nil {
		log.Printf("Error updating participant: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Teilnehmer konnte nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Teilnehmer gespeichert.", participant)
}

// UpdateStatus sets the participant status. Any status may be set to any
// other; a notification is sent exactly when the status actually changes.
func UpdateStatus(c *fiber.Ctx) error {
	participant, errResp := FindParticipant(c)
	if participant == nil {
		return errResp
	}

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}
	if !models.ValidParticipantStatus(reqData.Status) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unbekannter Status!", nil)
	}

	oldStatus := participant.Status
	if oldStatus == reqData.Status {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Status unverändert.", participant)
	}

	participant.Status = reqData.Status
	if err := database.Database.Db.Save(participant).Error; err != nil {
		log.Printf("Error updating participant status: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Status konnte nicht gespeichert werden!", nil)
	}

	utils.SendStatusChangeEmail(tenantOf(participant.TenantID), participant, oldStatus, participant.Status)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Status gespeichert.", participant)
}

// AssignSchedule attaches a participant to a concrete course running.
func AssignSchedule(c *fiber.Ctx) error {
	participant, errResp := FindParticipant(c)
	if participant == nil {
		return errResp
	}

	reqData := new(struct {
		ScheduleID uint `json:"schedule_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	db := database.Database.Db

	var schedule models.CourseSchedule
	err := db.Where("id = ? AND course_id = ? AND tenant_id = ? AND is_deleted = false",
		reqData.ScheduleID, participant.CourseID, participant.TenantID).First(&schedule).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Termin nicht gefunden!", nil)
	}

	if schedule.Capacity > 0 {
		var count int64
		db.Model(&models.Participant{}).
			Where("schedule_id = ? AND is_deleted = false AND id <> ?", schedule.ID, participant.ID).
			Count(&count)
		if count >= int64(schedule.Capacity) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Dieser Termin ist bereits ausgebucht!", nil)
		}
	}

	participant.ScheduleID = &schedule.ID
	if err := db.Save(participant).Error; err != nil {
		log.Printf("Error assigning schedule: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Termin konnte nicht zugewiesen werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Termin zugewiesen.", participant)
}

// DeleteParticipant soft-deletes a participant.
func DeleteParticipant(c *fiber.Ctx) error {
	participant, errResp := FindParticipant(c)
	if participant == nil {
		return errResp
	}

	participant.IsDeleted = true
	if err := database.Database.Db.Save(participant).Error; err != nil {
		log.Printf("Error deleting participant: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Teilnehmer konnte nicht gelöscht werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Teilnehmer gelöscht.", nil)
}

// FindParticipant loads the participant from the :id param and enforces
// tenant ownership: an existing row of a foreign tenant is forbidden, a
// missing row is not found.
func FindParticipant(c *fiber.Ctx) (*models.Participant, error) {
	id, err := c.ParamsInt("id")
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

// tenantOf loads a tenant for email branding; nil on failure is fine, the
// default branding is used then.
func tenantOf(tenantID uint) *models.Tenant {
	var tenant models.Tenant
	if err := database.Database.Db.First(&tenant, tenantID).Error; err != nil {
		return nil
	}
	return &tenant
}
