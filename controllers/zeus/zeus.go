package zeusController

import (
	"log"
	"strings"

	"foerderpilot/database"
	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/utils"

	"github.com/gofiber/fiber/v2"
)

// ParticipantExport is the read-only JSON document for manual entry into
// the Z-EU-S portal.
type ParticipantExport struct {
	Participant struct {
		ID           uint   `json:"id"`
		Salutation   string `json:"salutation"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		Street       string `json:"street"`
		ZipCode      string `json:"zip_code"`
		City         string `json:"city"`
		BirthDate    string `json:"birth_date,omitempty"`
		CompanyName  string `json:"company_name"`
		FoundingDate string `json:"founding_date,omitempty"`
		Status       string `json:"status"`
	} `json:"participant"`
	Course struct {
		Title              string `json:"title"`
		DurationHours      int    `json:"duration_hours"`
		PriceNetCents      int64  `json:"price_net_cents"`
		PriceGrossCents    int64  `json:"price_gross_cents"`
		SubsidyPercentage  int    `json:"subsidy_percentage"`
		FundingAmountCents int64  `json:"funding_amount_cents"`
		ScheduleStart      string `json:"schedule_start,omitempty"`
		ScheduleEnd        string `json:"schedule_end,omitempty"`
	} `json:"course"`
	Narrative struct {
		Questions []NarrativeAnswer `json:"questions"`
		Text      string            `json:"text"`
	} `json:"narrative"`
	Documents struct {
		Complete bool                `json:"complete"`
		Missing  []string            `json:"missing"`
		ByType   map[string]DocState `json:"by_type"`
	} `json:"documents"`
}

type NarrativeAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type DocState struct {
	Uploaded         bool   `json:"uploaded"`
	ValidationStatus string `json:"validation_status,omitempty"`
}

// ExportParticipant returns the Z-EU-S document for one participant.
func ExportParticipant(c *fiber.Ctx) error {
	id, err := c.ParamsInt("participantId")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Teilnehmer-ID!", nil)
	}

	export, errResp := buildExport(c, uint(id))
	if export == nil {
		return errResp
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", export)
}

// ExportCourse returns the Z-EU-S documents for every participant of a
// course in an application-ready status.
func ExportCourse(c *fiber.Ctx) error {
	participants, errResp := courseParticipants(c)
	if participants == nil {
		return errResp
	}

	exports := make([]*ParticipantExport, 0, len(participants))
	for _, p := range participants {
		export, errResp := buildExport(c, p.ID)
		if export == nil {
			return errResp
		}
		exports = append(exports, export)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", exports)
}

// ExportCourseXLSX renders the same data as a spreadsheet for manual portal
// entry.
func ExportCourseXLSX(c *fiber.Ctx) error {
	participants, errResp := courseParticipants(c)
	if participants == nil {
		return errResp
	}

	rows := make([]utils.ZeusRow, 0, len(participants))
	for _, p := range participants {
		export, errResp := buildExport(c, p.ID)
		if export == nil {
			return errResp
		}

		row := utils.ZeusRow{
			ParticipantID:     export.Participant.ID,
			Salutation:        export.Participant.Salutation,
			FirstName:         export.Participant.FirstName,
			LastName:          export.Participant.LastName,
			Email:             export.Participant.Email,
			BirthDate:         export.Participant.BirthDate,
			Street:            export.Participant.Street,
			ZipCode:           export.Participant.ZipCode,
			City:              export.Participant.City,
			CompanyName:       export.Participant.CompanyName,
			FoundingDate:      export.Participant.FoundingDate,
			CourseTitle:       export.Course.Title,
			CourseStart:       export.Course.ScheduleStart,
			PriceGross:        utils.FormatEuro(export.Course.PriceGrossCents),
			FundingPercentage: export.Course.SubsidyPercentage,
			FundingAmount:     utils.FormatEuro(export.Course.FundingAmountCents),
			Status:            utils.StatusLabel(export.Participant.Status),
			DocumentsComplete: export.Documents.Complete,
			Narrative:         export.Narrative.Text,
		}
		missing := make([]string, 0, len(export.Documents.Missing))
		for _, m := range export.Documents.Missing {
			missing = append(missing, utils.DocumentTypeLabel(m))
		}
		row.MissingDocuments = strings.Join(missing, ", ")
		rows = append(rows, row)
	}

	workbook, err := utils.BuildZeusWorkbook(rows)
	if err != nil {
		log.Printf("Error building zeus workbook: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Export konnte nicht erstellt werden!", nil)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="zeus-export.xlsx"`)
	return c.Send(workbook)
}

// courseParticipants loads the exportable participants of the :courseId
// course after the tenant ownership check.
func courseParticipants(c *fiber.Ctx) ([]models.Participant, error) {
	courseID, err := c.ParamsInt("courseId")
	if err != nil || courseID <= 0 {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Kurs-ID!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Kurs nicht gefunden!", nil)
	}
	if errResp := checkTenant(c, course.TenantID); errResp != nil {
		return nil, errResp
	}

	var participants []models.Participant
	if err := db.Where("course_id = ? AND is_deleted = false AND status <> ?",
		course.ID, models.ParticipantStatusDroppedOut).
		Order("last_name ASC").Find(&participants).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Teilnehmer konnten nicht geladen werden!", nil)
	}
	return participants, nil
}

// buildExport assembles one participant's export after the ownership check.
func buildExport(c *fiber.Ctx, participantID uint) (*ParticipantExport, error) {
	db := database.Database.Db

	var participant models.Participant
	if err := db.Where("id = ? AND is_deleted = false", participantID).First(&participant).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Teilnehmer nicht gefunden!", nil)
	}
	if errResp := checkTenant(c, participant.TenantID); errResp != nil {
		return nil, errResp
	}

	var course models.Course
	if err := db.First(&course, participant.CourseID).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Kurs nicht gefunden!", nil)
	}

	export := &ParticipantExport{}
	export.Participant.ID = participant.ID
	export.Participant.Salutation = participant.Salutation
	export.Participant.FirstName = participant.FirstName
	export.Participant.LastName = participant.LastName
	export.Participant.Email = participant.Email
	export.Participant.Phone = participant.Phone
	export.Participant.Street = participant.Street
	export.Participant.ZipCode = participant.ZipCode
	export.Participant.City = participant.City
	export.Participant.CompanyName = participant.CompanyName
	export.Participant.Status = participant.Status
	if participant.BirthDate != nil {
		export.Participant.BirthDate = participant.BirthDate.Format("2006-01-02")
	}
	if participant.FoundingDate != nil {
		export.Participant.FoundingDate = participant.FoundingDate.Format("2006-01-02")
	}

	export.Course.Title = course.Title
	export.Course.DurationHours = course.DurationHours
	export.Course.PriceNetCents = course.PriceNetCents
	export.Course.PriceGrossCents = course.PriceGrossCents
	export.Course.SubsidyPercentage = participant.FundingPercentage
	export.Course.FundingAmountCents = participant.FundingAmountCents
	if export.Course.SubsidyPercentage == 0 {
		export.Course.SubsidyPercentage = course.SubsidyPercentage
	}
	if export.Course.FundingAmountCents == 0 {
		export.Course.FundingAmountCents = utils.FundingAmountCents(course.PriceGrossCents, export.Course.SubsidyPercentage)
	}

	if participant.ScheduleID != nil {
		var schedule models.CourseSchedule
		if err := db.First(&schedule, *participant.ScheduleID).Error; err == nil {
			export.Course.ScheduleStart = schedule.StartDate.Format("2006-01-02")
			export.Course.ScheduleEnd = schedule.EndDate.Format("2006-01-02")
		}
	}

	// Narrative answers
	var answers []models.ParticipantWorkflowAnswer
	db.Where("participant_id = ?", participant.ID).Find(&answers)
	for _, answer := range answers {
		var question models.WorkflowQuestion
		prompt := ""
		if err := db.First(&question, answer.QuestionID).Error; err == nil {
			prompt = question.Prompt
		}
		export.Narrative.Questions = append(export.Narrative.Questions, NarrativeAnswer{
			Question: prompt,
			Answer:   answer.Answer,
		})
		if export.Narrative.Text == "" && answer.GeneratedNarrative != "" {
			export.Narrative.Text = answer.GeneratedNarrative
		}
	}

	// Document completeness over the eligibility-phase types
	var documents []models.Document
	db.Where("participant_id = ? AND is_deleted = false", participant.ID).Find(&documents)

	export.Documents.ByType = make(map[string]DocState, len(models.EligibilityDocumentTypes))
	export.Documents.Complete = true
	for _, docType := range models.EligibilityDocumentTypes {
		state := DocState{}
		for _, doc := range documents {
			if doc.Type == docType {
				state.Uploaded = true
				state.ValidationStatus = doc.ValidationStatus
				break
			}
		}
		export.Documents.ByType[docType] = state
		if !state.Uploaded || state.ValidationStatus != models.ValidationStatusValid {
			export.Documents.Complete = false
			export.Documents.Missing = append(export.Documents.Missing, docType)
		}
	}
	if export.Documents.Missing == nil {
		export.Documents.Missing = []string{}
	}

	return export, nil
}

// checkTenant applies the usual ownership rule for export reads.
func checkTenant(c *fiber.Ctx, tenantID uint) error {
	user := middleware.CurrentUser(c)
	if user != nil && !user.IsSuperAdmin() && user.Role != models.RoleKompassReviewer {
		if user.TenantID == nil || *user.TenantID != tenantID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Zugriff auf diese Daten nicht erlaubt!", nil)
		}
	}
	return nil
}
