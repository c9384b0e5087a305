package documentController

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foerderpilot/config"
	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func documentApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/documents/participant/:participantId", middleware.JWTMiddleware, Upload)
	app.Patch("/api/documents/:id/status", middleware.JWTMiddleware, SetStatus)
	return app
}

func uploadRequest(t *testing.T, app *fiber.App, auth, participantID string, payload map[string]string) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost,
		"/api/documents/participant/"+participantID, strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func countFiles(t *testing.T, root string) int {
	t.Helper()
	count := 0
	err := filepath.Walk(root, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			count++
		}
		return nil
	})
	require.NoError(t, err)
	return count
}

func TestUpload(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)
	rec := testutil.RecordEmails(t)

	tenantA := testutil.CreateTenant(t, db, "Anbieter A", "anbieter-a")
	tenantB := testutil.CreateTenant(t, db, "Anbieter B", "anbieter-b")

	adminA := testutil.CreateUser(t, db, &tenantA.ID, models.RoleAdmin, "admin-a@test.local", "secret123")
	adminB := testutil.CreateUser(t, db, &tenantB.ID, models.RoleAdmin, "admin-b@test.local", "secret123")

	course := testutil.CreateCourse(t, db, tenantA.ID, "Projektmanagement", 200000)
	testutil.CreateParticipant(t, db, tenantA.ID, course.ID,
		"max@test.local", models.ParticipantStatusDocumentsPending)

	app := documentApp()
	payload := map[string]string{
		"type":      models.DocTypeBusinessRegistration,
		"file_name": "gewerbe.pdf",
		"mime_type": "application/pdf",
		"data":      base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 test")),
	}

	t.Run("cross-tenant upload leaves no trace", func(t *testing.T) {
		resp := uploadRequest(t, app, testutil.AuthHeader(t, adminB), "1", payload)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var count int64
		db.Model(&models.Document{}).Count(&count)
		assert.Zero(t, count)
		assert.Zero(t, countFiles(t, config.AppConfig.UploadDir))
		assert.Zero(t, rec.Count())
	})

	t.Run("upload stores file and pending row", func(t *testing.T) {
		resp := uploadRequest(t, app, testutil.AuthHeader(t, adminA), "1", payload)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var document models.Document
		require.NoError(t, db.First(&document).Error)
		assert.Equal(t, models.ValidationStatusPending, document.ValidationStatus)
		assert.Equal(t, tenantA.ID, document.TenantID)
		assert.True(t, strings.HasPrefix(document.FileKey, "tenant-1/participant-1/"), document.FileKey)

		stored := filepath.Join(config.AppConfig.UploadDir, filepath.FromSlash(document.FileKey))
		data, err := os.ReadFile(stored)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 test", string(data))

		require.Equal(t, 1, rec.Count())
		assert.Equal(t, "max@test.local", rec.Last(t).To)
	})

	t.Run("broken base64 is rejected", func(t *testing.T) {
		bad := map[string]string{
			"type":      models.DocTypeCV,
			"file_name": "cv.pdf",
			"data":      "not*base64",
		}
		resp := uploadRequest(t, app, testutil.AuthHeader(t, adminA), "1", bad)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSetStatus(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)
	testutil.RecordEmails(t)

	tenant := testutil.CreateTenant(t, db, "Akademie", "akademie")
	admin := testutil.CreateUser(t, db, &tenant.ID, models.RoleAdmin, "admin@test.local", "secret123")
	course := testutil.CreateCourse(t, db, tenant.ID, "Buchhaltung", 100000)
	participant := testutil.CreateParticipant(t, db, tenant.ID, course.ID,
		"max@test.local", models.ParticipantStatusDocumentsPending)

	document := models.Document{
		TenantID:         tenant.ID,
		ParticipantID:    participant.ID,
		Type:             models.DocTypeTaxAssessment,
		FileKey:          "tenant-1/participant-1/tax.pdf",
		FileName:         "tax.pdf",
		ValidationStatus: models.ValidationStatusManualReview,
	}
	require.NoError(t, db.Create(&document).Error)

	app := documentApp()

	setStatus := func(status string) *http.Response {
		body := strings.NewReader(`{"status":"` + status + `"}`)
		req := httptest.NewRequest(http.MethodPatch, "/api/documents/1/status", body)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", testutil.AuthHeader(t, admin))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	t.Run("manual approval stamps validation time", func(t *testing.T) {
		resp := setStatus(models.ValidationStatusValid)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var saved models.Document
		require.NoError(t, db.Session(&gorm.Session{}).First(&saved, document.ID).Error)
		assert.Equal(t, models.ValidationStatusValid, saved.ValidationStatus)
		require.NotNil(t, saved.ValidatedAt)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		resp := setStatus("maybe")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
