package workflowController

import (
	"log"

	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type questionRequest struct {
	Position  int            `json:"position"`
	Prompt    string         `json:"prompt"`
	HelpText  string         `json:"help_text"`
	FieldType string         `json:"field_type"`
	Options   datatypes.JSON `json:"options"`
	Required  bool           `json:"required"`
}

// ListTemplates returns the templates visible to the tenant: its own plus
// the system-scoped ones.
func ListTemplates(c *fiber.Ctx) error {
	tenantID := middleware.ScopeTenantID(c)

	var templates []models.WorkflowTemplate
	err := database.Database.Db.
		Where("is_deleted = false AND (tenant_id = ? OR tenant_id IS NULL)", tenantID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = false").Order("position ASC")
		}).
		Find(&templates).Error
	if err != nil {
		log.Printf("Error listing workflow templates: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Fragebögen konnten nicht geladen werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", templates)
}

// CreateTemplate creates a questionnaire. Tenant admins create
// tenant-scoped templates; only super admins may create system-scoped ones
// (empty tenant scope).
func CreateTemplate(c *fiber.Ctx) error {
	reqData := new(struct {
		Name        string `json:"name"`
		CourseID    *uint  `json:"course_id"`
		SystemScope bool   `json:"system_scope"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	user := middleware.CurrentUser(c)

	template := models.WorkflowTemplate{
		Name:     reqData.Name,
		CourseID: reqData.CourseID,
		IsActive: true,
	}
	if reqData.SystemScope {
		if user == nil || !user.IsSuperAdmin() {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Systemweite Fragebögen kann nur der Super-Admin anlegen!", nil)
		}
	} else {
		tenantID := middleware.ScopeTenantID(c)
		if tenantID == 0 {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Kein Anbieter für diese Anfrage ermittelt!", nil)
		}
		template.TenantID = &tenantID
	}

	if err := database.Database.Db.Create(&template).Error; err != nil {
		log.Printf("Error creating workflow template: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Fragebogen konnte nicht angelegt werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Fragebogen angelegt.", template)
}

// AddQuestion appends a question to a template.
func AddQuestion(c *fiber.Ctx) error {
	template, errResp := findTemplate(c)
	if template == nil {
		return errResp
	}

	reqData := new(questionRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	fieldType := reqData.FieldType
	if fieldType == "" {
		fieldType = models.FieldTypeTextarea
	}

	question := models.WorkflowQuestion{
		TemplateID: template.ID,
		Position:   reqData.Position,
		Prompt:     reqData.Prompt,
		HelpText:   reqData.HelpText,
		FieldType:  fieldType,
		Options:    reqData.Options,
		Required:   reqData.Required,
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		log.Printf("Error creating workflow question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Frage konnte nicht angelegt werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Frage angelegt.", question)
}

// DeleteQuestion soft-deletes a question.
func DeleteQuestion(c *fiber.Ctx) error {
	template, errResp := findTemplate(c)
	if template == nil {
		return errResp
	}

	questionID, err := c.ParamsInt("questionId")
	if err != nil || questionID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Fragen-ID!", nil)
	}

	db := database.Database.Db

	var question models.WorkflowQuestion
	if err := db.Where("id = ? AND template_id = ? AND is_deleted = false", questionID, template.ID).
		First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Frage nicht gefunden!", nil)
	}

	question.IsDeleted = true
	if err := db.Save(&question).Error; err != nil {
		log.Printf("Error deleting workflow question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Frage konnte nicht gelöscht werden!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Frage gelöscht.", nil)
}

// GetForCourse resolves the questionnaire for a course: a course-scoped
// template wins over the tenant-wide one, which wins over the system one.
func GetForCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Kurs-ID!", nil)
	}

	tenantID := middleware.ScopeTenantID(c)
	db := database.Database.Db

	template, err := ResolveTemplate(db, tenantID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Kein Fragebogen für diesen Kurs hinterlegt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", template)
}

// ResolveTemplate implements the course > tenant > system scope resolution.
func ResolveTemplate(db *gorm.DB, tenantID, courseID uint) (*models.WorkflowTemplate, error) {
	load := func(query *gorm.DB) (*models.WorkflowTemplate, error) {
		var template models.WorkflowTemplate
		err := query.Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = false").Order("position ASC")
		}).First(&template).Error
		if err != nil {
			return nil, err
		}
		return &template, nil
	}

	base := "is_active = true AND is_deleted = false"

	if t, err := load(db.Where(base+" AND tenant_id = ? AND course_id = ?", tenantID, courseID)); err == nil {
		return t, nil
	}
	if t, err := load(db.Where(base+" AND tenant_id = ? AND course_id IS NULL", tenantID)); err == nil {
		return t, nil
	}
	return load(db.Where(base + " AND tenant_id IS NULL AND course_id IS NULL"))
}

// SaveAnswers upserts a participant's answers, one row per question.
func SaveAnswers(c *fiber.Ctx) error {
	participant, errResp := findParticipant(c)
	if participant == nil {
		return errResp
	}

	reqData := new(struct {
		Answers []struct {
			QuestionID uint   `json:"question_id"`
			Answer     string `json:"answer"`
		} `json:"answers"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
	}

	db := database.Database.Db

	for _, item := range reqData.Answers {
		var answer models.ParticipantWorkflowAnswer
		err := db.Where("participant_id = ? AND question_id = ?", participant.ID, item.QuestionID).
			First(&answer).Error
		if err != nil {
			answer = models.ParticipantWorkflowAnswer{
				TenantID:      participant.TenantID,
				ParticipantID: participant.ID,
				QuestionID:    item.QuestionID,
			}
		}
		answer.Answer = item.Answer
		if err := db.Save(&answer).Error; err != nil {
			log.Printf("Error saving workflow answer: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Antworten konnten nicht gespeichert werden!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Antworten gespeichert.", nil)
}

// GenerateNarrative turns the participant's answers into the formal
// justification text via the LLM and stores it alongside the answers.
func GenerateNarrative(c *fiber.Ctx) error {
	participant, errResp := findParticipant(c)
	if participant == nil {
		return errResp
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, participant.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Kurs nicht gefunden!", nil)
	}

	var answers []models.ParticipantWorkflowAnswer
	if err := db.Where("participant_id = ?", participant.ID).Find(&answers).Error; err != nil || len(answers) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Es liegen noch keine Antworten vor!", nil)
	}

	qa := make([]utils.NarrativeQA, 0, len(answers))
	for _, answer := range answers {
		var question models.WorkflowQuestion
		prompt := ""
		if err := db.First(&question, answer.QuestionID).Error; err == nil {
			prompt = question.Prompt
		}
		qa = append(qa, utils.NarrativeQA{Question: prompt, Answer: answer.Answer})
	}

	narrative, err := utils.GenerateNarrative(course.Title, qa)
	if err != nil {
		log.Printf("Error generating narrative for participant %d: %v", participant.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Begründung konnte nicht erstellt werden!", nil)
	}

	for i := range answers {
		answers[i].GeneratedNarrative = narrative
		if err := db.Save(&answers[i]).Error; err != nil {
			log.Printf("Error saving narrative: %v", err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Begründung erstellt.", fiber.Map{
		"narrative": narrative,
	})
}

// findTemplate loads a template and enforces scope: system templates are
// only writable by super admins, tenant templates only by their tenant.
func findTemplate(c *fiber.Ctx) (*models.WorkflowTemplate, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Fragebogen-ID!", nil)
	}

	var template models.WorkflowTemplate
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&template).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Fragebogen nicht gefunden!", nil)
	}

	user := middleware.CurrentUser(c)
	if template.TenantID == nil {
		if user == nil || !user.IsSuperAdmin() {
			return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Systemweite Fragebögen kann nur der Super-Admin bearbeiten!", nil)
		}
		return &template, nil
	}
	if user != nil && !user.IsSuperAdmin() {
		if user.TenantID == nil || *user.TenantID != *template.TenantID {
			return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Zugriff auf diesen Fragebogen nicht erlaubt!", nil)
		}
	}
	return &template, nil
}

// findParticipant mirrors the ownership check of the participant router.
func findParticipant(c *fiber.Ctx) (*models.Participant, error) {
	id, err := c.ParamsInt("participantId")
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
