package courseController

import (
	"log"

	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/utils"

	"github.com/gofiber/fiber/v2"
)

// courseRequest carries the writable course fields.
type courseRequest struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	PriceNetCents     int64  `json:"price_net_cents"`
	PriceGrossCents   int64  `json:"price_gross_cents"`
	SubsidyPercentage int    `json:"subsidy_percentage"`
	DurationHours     int    `json:"duration_hours"`
	MaxParticipants   int    `json:"max_participants"`
	StartText         string `json:"start_text"`
}

// ListCourses returns the tenant's courses, optionally filtered.
func ListCourses(c *fiber.Ctx) error {
	tenantID := middleware.ScopeTenantID(c)
	db := database.Database.Db

	query := db.Where("tenant_id = ? AND is_deleted = false", tenantID)
	if c.Query("published") == "true" {
		query = query.Where("is_published = true")
	}
	if c.Query("active") == "true" {
		query = query.Where("is_active = true")
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		log.Printf("Error listing courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Kurse konnten nicht geladen werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", courses)
}

// GetCourse returns one course of the tenant.
func GetCourse(c *fiber.Ctx) error {
	course, errResp := findCourse(c)
	if course == nil {
		return errResp
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", course)
}

// CreateCourse creates a course for the tenant. The gross price is derived
// from the net price when not supplied.
func CreateCourse(c *fiber.Ctx) error {
	reqData := new(courseRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	gross := reqData.PriceGrossCents
	if gross == 0 && reqData.PriceNetCents > 0 {
		gross = utils.GrossFromNet(reqData.PriceNetCents)
	}
	subsidy := reqData.SubsidyPercentage
	if subsidy == 0 {
		subsidy = 90
	}

	course := models.Course{
		TenantID:          middleware.ScopeTenantID(c),
		Title:             reqData.Title,
		Description:       reqData.Description,
		PriceNetCents:     reqData.PriceNetCents,
		PriceGrossCents:   gross,
		SubsidyPercentage: subsidy,
		DurationHours:     reqData.DurationHours,
		MaxParticipants:   reqData.MaxParticipants,
		StartText:         reqData.StartText,
		IsActive:          true,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Kurs konnte nicht angelegt werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Kurs angelegt.", course)
}

// UpdateCourse updates the writable fields of a course.
func UpdateCourse(c *fiber.Ctx) error {
	course, errResp := findCourse(c)
	if course == nil {
		return errResp
	}

	reqData := new(courseRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.PriceNetCents = reqData.PriceNetCents
	course.PriceGrossCents = reqData.PriceGrossCents
	if course.PriceGrossCents == 0 && course.PriceNetCents > 0 {
		course.PriceGrossCents = utils.GrossFromNet(course.PriceNetCents)
	}
	if reqData.SubsidyPercentage > 0 {
		course.SubsidyPercentage = reqData.SubsidyPercentage
	}
	course.DurationHours = reqData.DurationHours
	course.MaxParticipants = reqData.MaxParticipants
	course.StartText = reqData.StartText

	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Kurs konnte nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Kurs gespeichert.", course)
}

// SetPublished toggles the public visibility of a course.
func SetPublished(c *fiber.Ctx) error {
	course, errResp := findCourse(c)
	if course == nil {
		return errResp
	}

	reqData := new(struct {
		IsPublished bool `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	course.IsPublished = reqData.IsPublished
	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error publishing course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Kurs konnte nicht gespeichert werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Kurs gespeichert.", course)
}

// DeleteCourse soft-deletes a course.
func DeleteCourse(c *fiber.Ctx) error {
	course, errResp := findCourse(c)
	if course == nil {
		return errResp
	}

	course.IsDeleted = true
	course.IsActive = false
	course.IsPublished = false
	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Kurs konnte nicht gelöscht werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Kurs gelöscht.", nil)
}

// findCourse loads the course from the :id param and enforces tenant
// ownership. On failure it returns nil plus the already-written response.
func findCourse(c *fiber.Ctx) (*models.Course, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Kurs-ID!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&course).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Kurs nicht gefunden!", nil)
	}

	user := middleware.CurrentUser(c)
	if user != nil && !user.IsSuperAdmin() && user.Role != models.RoleKompassReviewer {
		if user.TenantID == nil || *user.TenantID != course.TenantID {
			return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Zugriff auf diesen Kurs nicht erlaubt!", nil)
		}
	}
	return &course, nil
}
