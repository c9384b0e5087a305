package zeusController

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeusApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/zeus/participant/:participantId", middleware.JWTMiddleware, ExportParticipant)
	app.Get("/api/zeus/course/:courseId/export.xlsx", middleware.JWTMiddleware, ExportCourseXLSX)
	return app
}

func TestExportParticipant(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)

	tenant := testutil.CreateTenant(t, db, "Akademie", "akademie")
	admin := testutil.CreateUser(t, db, &tenant.ID, models.RoleAdmin, "admin@test.local", "secret123")
	course := testutil.CreateCourse(t, db, tenant.ID, "Digital Marketing", 250000)
	participant := testutil.CreateParticipant(t, db, tenant.ID, course.ID,
		"max@test.local", models.ParticipantStatusDocumentsSubmitted)
	participant.FundingPercentage = 90
	participant.FundingAmountCents = 225000
	require.NoError(t, db.Save(participant).Error)

	// one valid eligibility document, the rest missing
	require.NoError(t, db.Create(&models.Document{
		TenantID:         tenant.ID,
		ParticipantID:    participant.ID,
		Type:             models.DocTypeBusinessRegistration,
		FileKey:          "tenant-1/participant-1/gewerbe.pdf",
		ValidationStatus: models.ValidationStatusValid,
	}).Error)

	app := zeusApp()
	req := httptest.NewRequest(http.MethodGet, "/api/zeus/participant/1", nil)
	req.Header.Set("Authorization", testutil.AuthHeader(t, admin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data ParticipantExport `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	export := body.Data

	assert.Equal(t, "Max", export.Participant.FirstName)
	assert.Equal(t, "Digital Marketing", export.Course.Title)
	assert.Equal(t, 90, export.Course.SubsidyPercentage)
	assert.Equal(t, int64(225000), export.Course.FundingAmountCents)

	assert.False(t, export.Documents.Complete)
	assert.True(t, export.Documents.ByType[models.DocTypeBusinessRegistration].Uploaded)
	assert.NotContains(t, export.Documents.Missing, models.DocTypeBusinessRegistration)
	assert.Contains(t, export.Documents.Missing, models.DocTypeTaxAssessment)
}

func TestExportCourseXLSX(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)

	tenant := testutil.CreateTenant(t, db, "Akademie", "akademie")
	admin := testutil.CreateUser(t, db, &tenant.ID, models.RoleAdmin, "admin@test.local", "secret123")
	foreignAdmin := testutil.CreateUser(t, db, nil, models.RoleAdmin, "other@test.local", "secret123")
	course := testutil.CreateCourse(t, db, tenant.ID, "Buchhaltung", 100000)

	testutil.CreateParticipant(t, db, tenant.ID, course.ID,
		"max@test.local", models.ParticipantStatusEnrolled)
	testutil.CreateParticipant(t, db, tenant.ID, course.ID,
		"raus@test.local", models.ParticipantStatusDroppedOut)

	app := zeusApp()

	t.Run("spreadsheet download", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/zeus/course/1/export.xlsx", nil)
		req.Header.Set("Authorization", testutil.AuthHeader(t, admin))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			resp.Header.Get(fiber.HeaderContentType))
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "zeus-export.xlsx")
	})

	t.Run("foreign tenant is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/zeus/course/1/export.xlsx", nil)
		req.Header.Set("Authorization", testutil.AuthHeader(t, foreignAdmin))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
