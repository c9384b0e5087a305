package sammelterminController

import (
	"log"
	"time"

	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"

	"github.com/gofiber/fiber/v2"
)

type sammelterminRequest struct {
	CourseID           uint      `json:"course_id"`
	Title              string    `json:"title"`
	AppointmentDate    time.Time `json:"appointment_date"`
	SubmissionDeadline time.Time `json:"submission_deadline"`
	ReviewerName       string    `json:"reviewer_name"`
	ReviewerEmail      string    `json:"reviewer_email"`
	Notes              string    `json:"notes"`
}

// ListSammeltermine returns the tenant's appointments, optionally only the
// upcoming ones.
func ListSammeltermine(c *fiber.Ctx) error {
	tenantID := middleware.ScopeTenantID(c)
	db := database.Database.Db

	query := db.Where("tenant_id = ? AND is_deleted = false", tenantID)
	if c.Query("upcoming") == "true" {
		query = query.Where("appointment_date >= ?", time.Now())
	}
	if courseID := c.QueryInt("courseId"); courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}

	var termine []models.Sammeltermin
	if err := query.Order("appointment_date ASC").Find(&termine).Error; err != nil {
		log.Printf("Error listing sammeltermine: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Sammeltermine konnten nicht geladen werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", termine)
}

// GetSammeltermin returns one appointment.
func GetSammeltermin(c *fiber.Ctx) error {
	termin, errResp := findSammeltermin(c)
	if termin == nil {
		return errResp
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", termin)
}

// CreateSammeltermin schedules a group submission appointment for a course.
func CreateSammeltermin(c *fiber.Ctx) error {
	reqData := new(sammelterminRequest)
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

	termin := models.Sammeltermin{
		TenantID:           tenantID,
		CourseID:           course.ID,
		Title:              reqData.Title,
		AppointmentDate:    reqData.AppointmentDate,
		SubmissionDeadline: reqData.SubmissionDeadline,
		ReviewerName:       reqData.ReviewerName,
		ReviewerEmail:      reqData.ReviewerEmail,
		Notes:              reqData.Notes,
	}

	if err := db.Create(&termin).Error; err != nil {
		log.Printf("Error creating sammeltermin: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Sammeltermin konnte nicht angelegt werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Sammeltermin angelegt.", termin)
}

// UpdateSammeltermin updates an appointment. Moving the date re-arms the
// reminder.
func UpdateSammeltermin(c *fiber.Ctx) error {
	termin, errResp := findSammeltermin(c)
	if termin == nil {
		return errResp
	}

	reqData := new(sammelterminRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	if !reqData.AppointmentDate.Equal(termin.AppointmentDate) {
		termin.ReminderSent = false
	}
	termin.Title = reqData.Title
	termin.AppointmentDate = reqData.AppointmentDate
	termin.SubmissionDeadline = reqData.SubmissionDeadline
	termin.ReviewerName = reqData.ReviewerName
	termin.ReviewerEmail = reqData.ReviewerEmail
	termin.Notes = reqData.Notes

	if err := database.Database.Db.Save(termin).Error; err != nil {
		log.Printf("Error updating sammeltermin: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Sammeltermin konnte nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sammeltermin gespeichert.", termin)
}

// DeleteSammeltermin soft-deletes an appointment.
func DeleteSammeltermin(c *fiber.Ctx) error {
	termin, errResp := findSammeltermin(c)
	if termin == nil {
		return errResp
	}

	termin.IsDeleted = true
	if err := database.Database.Db.Save(termin).Error; err != nil {
		log.Printf("Error deleting sammeltermin: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Sammeltermin konnte nicht gelöscht werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sammeltermin gelöscht.", nil)
}

func findSammeltermin(c *fiber.Ctx) (*models.Sammeltermin, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Termin-ID!", nil)
	}

	var termin models.Sammeltermin
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&termin).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sammeltermin nicht gefunden!", nil)
	}

	user := middleware.CurrentUser(c)
	if user != nil && !user.IsSuperAdmin() && user.Role != models.RoleKompassReviewer {
		if user.TenantID == nil || *user.TenantID != termin.TenantID {
			return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Zugriff auf diesen Sammeltermin nicht erlaubt!", nil)
		}
	}
	return &termin, nil
}
