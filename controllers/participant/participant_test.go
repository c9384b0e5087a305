package participantController

import (
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

func statusApp() *fiber.App {
	app := fiber.New()
	app.Patch("/api/participants/:id/status", middleware.JWTMiddleware, UpdateStatus)
	app.Get("/api/participants/:id", middleware.JWTMiddleware, GetParticipant)
	return app
}

func patchStatus(t *testing.T, app *fiber.App, auth, id, status string) *http.Response {
	t.Helper()
	body := strings.NewReader(`{"status":"` + status + `"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/participants/"+id+"/status", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestUpdateStatus(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)
	rec := testutil.RecordEmails(t)

	tenant := testutil.CreateTenant(t, db, "Akademie", "akademie")
	admin := testutil.CreateUser(t, db, &tenant.ID, models.RoleAdmin, "admin@test.local", "secret123")
	course := testutil.CreateCourse(t, db, tenant.ID, "Digital Marketing", 250000)
	participant := testutil.CreateParticipant(t, db, tenant.ID, course.ID,
		"max@test.local", models.ParticipantStatusRegistered)

	auth := testutil.AuthHeader(t, admin)
	app := statusApp()
	id := "1"

	t.Run("change sends exactly one notification", func(t *testing.T) {
		resp := patchStatus(t, app, auth, id, models.ParticipantStatusEnrolled)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var saved models.Participant
		require.NoError(t, db.First(&saved, participant.ID).Error)
		assert.Equal(t, models.ParticipantStatusEnrolled, saved.Status)

		require.Equal(t, 1, rec.Count())
		msg := rec.Last(t)
		assert.Equal(t, "max@test.local", msg.To)
		// the notification names both statuses
		assert.Contains(t, msg.Text, models.ParticipantStatusRegistered)
		assert.Contains(t, msg.Text, models.ParticipantStatusEnrolled)
	})

	t.Run("same status sends nothing", func(t *testing.T) {
		before := rec.Count()
		resp := patchStatus(t, app, auth, id, models.ParticipantStatusEnrolled)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, before, rec.Count())
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		resp := patchStatus(t, app, auth, id, "impossible")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestParticipantOwnership(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)
	testutil.RecordEmails(t)

	tenantA := testutil.CreateTenant(t, db, "Anbieter A", "anbieter-a")
	tenantB := testutil.CreateTenant(t, db, "Anbieter B", "anbieter-b")

	adminB := testutil.CreateUser(t, db, &tenantB.ID, models.RoleAdmin, "admin-b@test.local", "secret123")
	reviewer := testutil.CreateUser(t, db, nil, models.RoleKompassReviewer, "review@test.local", "secret123")

	course := testutil.CreateCourse(t, db, tenantA.ID, "Buchhaltung", 100000)
	testutil.CreateParticipant(t, db, tenantA.ID, course.ID,
		"max@test.local", models.ParticipantStatusRegistered)

	app := statusApp()

	get := func(auth, id string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/participants/"+id, nil)
		req.Header.Set("Authorization", auth)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	t.Run("foreign tenant row is forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, get(testutil.AuthHeader(t, adminB), "1"))
	})

	t.Run("missing row is not found", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(testutil.AuthHeader(t, adminB), "999"))
	})

	t.Run("reviewer reads across tenants", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(testutil.AuthHeader(t, reviewer), "1"))
	})
}
