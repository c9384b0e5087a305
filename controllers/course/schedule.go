package courseController

import (
	"log"
	"time"

	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"

	"github.com/gofiber/fiber/v2"
)

type scheduleRequest struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Capacity  int       `json:"capacity"`
	Location  string    `json:"location"`
}

// scheduleWithCount augments a schedule with its participant count.
type scheduleWithCount struct {
	models.CourseSchedule
	ParticipantCount int64 `json:"participant_count"`
}

// ListSchedules returns the schedules of a course with participant counts.
func ListSchedules(c *fiber.Ctx) error {
	course, errResp := findCourse(c)
	if course == nil {
		return errResp
	}

	db := database.Database.Db

	var schedules []models.CourseSchedule
	err := db.Where("course_id = ? AND is_deleted = false", course.ID).
		Order("start_date ASC").Find(&schedules).Error
	if err != nil {
		log.Printf("Error listing schedules: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Termine konnten nicht geladen werden!", nil)
	}

	result := make([]scheduleWithCount, 0, len(schedules))
	for _, s := range schedules {
		var count int64
		db.Model(&models.Participant{}).
			Where("schedule_id = ? AND is_deleted = false", s.ID).Count(&count)
		result = append(result, scheduleWithCount{CourseSchedule: s, ParticipantCount: count})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", result)
}

// CreateSchedule adds a concrete running to a course.
func CreateSchedule(c *fiber.Ctx) error {
	course, errResp := findCourse(c)
	if course == nil {
		return errResp
	}

	reqData := new(scheduleRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}
	if !reqData.EndDate.After(reqData.StartDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Das Enddatum muss nach dem Startdatum liegen!", nil)
	}

	schedule := models.CourseSchedule{
		TenantID:  course.TenantID,
		CourseID:  course.ID,
		StartDate: reqData.StartDate,
		EndDate:   reqData.EndDate,
		Capacity:  reqData.Capacity,
		Location:  reqData.Location,
		Status:    models.ScheduleStatusScheduled,
	}

	if err := database.Database.Db.Create(&schedule).Error; err != nil {
		log.Printf("Error creating schedule: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Termin konnte nicht angelegt werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Termin angelegt.", schedule)
}

// UpdateSchedule updates dates, capacity and location of a schedule.
func UpdateSchedule(c *fiber.Ctx) error {
	schedule, errResp := findSchedule(c)
	if schedule == nil {
		return errResp
	}

	reqData := new(scheduleRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}
	if !reqData.EndDate.After(reqData.StartDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Das Enddatum muss nach dem Startdatum liegen!", nil)
	}

	schedule.StartDate = reqData.StartDate
	schedule.EndDate = reqData.EndDate
	schedule.Capacity = reqData.Capacity
	schedule.Location = reqData.Location

	if err := database.Database.Db.Save(schedule).Error; err != nil {
		log.Printf("Error updating schedule: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Termin konnte nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Termin gespeichert.", schedule)
}

// SetScheduleStatus moves a schedule through its lifecycle.
func SetScheduleStatus(c *fiber.Ctx) error {
	schedule, errResp := findSchedule(c)
	if schedule == nil {
		return errResp
	}

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}
	if !models.ValidScheduleStatus(reqData.Status) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unbekannter Status!", nil)
	}

	schedule.Status = reqData.Status
	if err := database.Database.Db.Save(schedule).Error; err != nil {
		log.Printf("Error updating schedule status: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Termin konnte nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Status gespeichert.", schedule)
}

// DeleteSchedule soft-deletes a schedule.
func DeleteSchedule(c *fiber.Ctx) error {
	schedule, errResp := findSchedule(c)
	if schedule == nil {
		return errResp
	}

	schedule.IsDeleted = true
	if err := database.Database.Db.Save(schedule).Error; err != nil {
		log.Printf("Error deleting schedule: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Termin konnte nicht gelöscht werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Termin gelöscht.", nil)
}

// findSchedule loads the schedule from the :scheduleId param and enforces
// tenant ownership.
func findSchedule(c *fiber.Ctx) (*models.CourseSchedule, error) {
	id, err := c.ParamsInt("scheduleId")
	if err != nil || id <= 0 {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Termin-ID!", nil)
	}

	var schedule models.CourseSchedule
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&schedule).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Termin nicht gefunden!", nil)
	}

	user := middleware.CurrentUser(c)
	if user != nil && !user.IsSuperAdmin() && user.Role != models.RoleKompassReviewer {
		if user.TenantID == nil || *user.TenantID != schedule.TenantID {
			return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Zugriff auf diesen Termin nicht erlaubt!", nil)
		}
	}
	return &schedule, nil
}
