package registerController

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foerderpilot/middleware"
	"foerderpilot/models"
	"foerderpilot/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func funnelApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.ResolveTenant)
	app.Get("/api/register/courses", ListPublicCourses)
	app.Post("/api/register/submit", Submit)
	app.Post("/api/register/vorvertrag/:participantId", SignVorvertrag)
	return app
}

func funnelPost(t *testing.T, app *fiber.App, host, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "http://"+host+path, strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSubmit(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)
	rec := testutil.RecordEmails(t)

	tenant := testutil.CreateTenant(t, db, "Akademie", "akademie")
	course := testutil.CreateCourse(t, db, tenant.ID, "Digital Marketing", 250000)

	app := funnelApp()
	host := "akademie.foerderpilot.de"

	t.Run("registration snapshots funding and mails a welcome", func(t *testing.T) {
		resp := funnelPost(t, app, host, "/api/register/submit", fiber.Map{
			"course_id":  course.ID,
			"first_name": "Max",
			"last_name":  "Mustermann",
			"email":      "max@test.local",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var participant models.Participant
		require.NoError(t, db.First(&participant).Error)
		assert.Equal(t, models.ParticipantStatusDocumentsPending, participant.Status)
		assert.Equal(t, 90, participant.FundingPercentage)
		assert.Equal(t, int64(225000), participant.FundingAmountCents)

		require.Equal(t, 1, rec.Count())
		assert.Equal(t, "max@test.local", rec.Last(t).To)
	})

	t.Run("unknown host finds no provider", func(t *testing.T) {
		resp := funnelPost(t, app, "niemand.foerderpilot.de", "/api/register/submit", fiber.Map{
			"course_id": course.ID,
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("full course rejects further registrations", func(t *testing.T) {
		course.MaxParticipants = 1
		require.NoError(t, db.Save(course).Error)

		resp := funnelPost(t, app, host, "/api/register/submit", fiber.Map{
			"course_id":  course.ID,
			"first_name": "Erika",
			"last_name":  "Musterfrau",
			"email":      "erika@test.local",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestSignVorvertrag(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)
	testutil.RecordEmails(t)

	tenant := testutil.CreateTenant(t, db, "Akademie", "akademie")
	course := testutil.CreateCourse(t, db, tenant.ID, "Buchhaltung", 100000)
	participant := testutil.CreateParticipant(t, db, tenant.ID, course.ID,
		"max@test.local", models.ParticipantStatusDocumentsPending)

	app := funnelApp()
	host := "akademie.foerderpilot.de"
	path := fmt.Sprintf("/api/register/vorvertrag/%d", participant.ID)

	consents := []fiber.Map{
		{"key": "agb", "label": "AGB", "accepted": true},
		{"key": "datenschutz", "label": "Datenschutz", "accepted": true},
	}

	t.Run("missing consent is rejected", func(t *testing.T) {
		resp := funnelPost(t, app, host, path, fiber.Map{
			"consents": []fiber.Map{
				{"key": "agb", "label": "AGB", "accepted": false},
			},
			"signed_name": "Max Mustermann",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("signing stores the vorvertrag", func(t *testing.T) {
		resp := funnelPost(t, app, host, path, fiber.Map{
			"consents":       consents,
			"signed_name":    "Max Mustermann",
			"signature_data": "data:image/png;base64,abc",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var saved models.Vorvertrag
		require.NoError(t, db.First(&saved).Error)
		assert.Equal(t, models.VorvertragStatusSigned, saved.Status)
		require.NotNil(t, saved.SignedAt)
	})

	t.Run("second vorvertrag is rejected", func(t *testing.T) {
		resp := funnelPost(t, app, host, path, fiber.Map{
			"consents":       consents,
			"signed_name":    "Max Mustermann",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}
