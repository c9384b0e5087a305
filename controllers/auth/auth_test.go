package authController

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foerderpilot/models"
	"foerderpilot/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/auth/request-reset", RequestReset)
	app.Post("/api/auth/reset-password", ResetPassword)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestRequestReset(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)
	rec := testutil.RecordEmails(t)

	tenant := testutil.CreateTenant(t, db, "Akademie", "akademie")
	user := testutil.CreateUser(t, db, &tenant.ID, models.RoleAdmin, "known@test.local", "secret123")

	app := authApp()

	knownResp, knownBody := postJSON(t, app, "/api/auth/request-reset", `{"email":"known@test.local"}`)
	unknownResp, unknownBody := postJSON(t, app, "/api/auth/request-reset", `{"email":"nobody@test.local"}`)

	t.Run("response never leaks account existence", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, knownResp.StatusCode)
		assert.Equal(t, http.StatusOK, unknownResp.StatusCode)
		assert.Equal(t, knownBody, unknownBody)
	})

	t.Run("known account gets a token and one email", func(t *testing.T) {
		var saved models.User
		require.NoError(t, db.First(&saved, user.ID).Error)
		assert.NotEmpty(t, saved.ResetToken)
		require.NotNil(t, saved.ResetTokenExpiry)
		assert.True(t, saved.ResetTokenExpiry.After(time.Now()))

		require.Equal(t, 1, rec.Count())
		msg := rec.Last(t)
		assert.Equal(t, "known@test.local", msg.To)
		assert.Contains(t, msg.Text, saved.ResetToken)
	})
}

func TestResetPassword(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)
	testutil.RecordEmails(t)

	tenant := testutil.CreateTenant(t, db, "Akademie", "akademie")
	user := testutil.CreateUser(t, db, &tenant.ID, models.RoleUser, "reset@test.local", "oldpassword")

	app := authApp()

	t.Run("valid token sets the new password", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour)
		user.ResetToken = "valid-token"
		user.ResetTokenExpiry = &expiry
		require.NoError(t, db.Save(user).Error)

		resp, _ := postJSON(t, app, "/api/auth/reset-password",
			`{"token":"valid-token","password":"brandnewpw"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var saved models.User
		require.NoError(t, db.First(&saved, user.ID).Error)
		assert.Empty(t, saved.ResetToken)
		assert.Nil(t, saved.ResetTokenExpiry)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("brandnewpw")))
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expiry := time.Now().Add(-time.Minute)
		user.ResetToken = "expired-token"
		user.ResetTokenExpiry = &expiry
		require.NoError(t, db.Save(user).Error)

		resp, _ := postJSON(t, app, "/api/auth/reset-password",
			`{"token":"expired-token","password":"whatever123"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		resp, _ := postJSON(t, app, "/api/auth/reset-password",
			`{"token":"no-such-token","password":"whatever123"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
