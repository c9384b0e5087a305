package funnelValidator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handlerProbe records whether the wrapped handler was ever reached.
type handlerProbe struct{ called bool }

func (p *handlerProbe) handler(c *fiber.Ctx) error {
	p.called = true
	return c.SendString("ok")
}

func post(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestFoerdercheckValidator(t *testing.T) {
	now := time.Now()

	build := func() (*fiber.App, *handlerProbe) {
		probe := &handlerProbe{}
		app := fiber.New()
		app.Post("/check", Foerdercheck(), probe.handler)
		return app, probe
	}

	t.Run("valid payload reaches the handler", func(t *testing.T) {
		app, probe := build()
		resp := post(t, app, "/check", fiber.Map{
			"employment_type":     "selbstaendig",
			"income_ratio_percent": 80,
			"self_employed_since": now.AddDate(-2, 0, 0),
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, probe.called)
	})

	t.Run("four months of self-employment never reaches the handler", func(t *testing.T) {
		app, probe := build()
		resp := post(t, app, "/check", fiber.Map{
			"employment_type":     "selbstaendig",
			"income_ratio_percent": 80,
			"self_employed_since": now.AddDate(0, -4, 0),
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.False(t, probe.called)
	})

	t.Run("voucher eight months ago never reaches the handler", func(t *testing.T) {
		app, probe := build()
		resp := post(t, app, "/check", fiber.Map{
			"employment_type":     "selbstaendig",
			"income_ratio_percent": 80,
			"self_employed_since": now.AddDate(-2, 0, 0),
			"used_prior_voucher":  true,
			"prior_voucher_date":  now.AddDate(0, -8, 0),
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.False(t, probe.called)
	})

	t.Run("missing employment type is rejected", func(t *testing.T) {
		app, probe := build()
		resp := post(t, app, "/check", fiber.Map{
			"income_ratio_percent": 80,
			"self_employed_since": now.AddDate(-2, 0, 0),
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.False(t, probe.called)
	})
}

func TestSubmitValidator(t *testing.T) {
	build := func() (*fiber.App, *handlerProbe) {
		probe := &handlerProbe{}
		app := fiber.New()
		app.Post("/submit", Submit(), probe.handler)
		return app, probe
	}

	t.Run("complete registration passes", func(t *testing.T) {
		app, probe := build()
		resp := post(t, app, "/submit", fiber.Map{
			"course_id":  1,
			"first_name": "Max",
			"last_name":  "Mustermann",
			"email":      "max@test.local",
			"zip_code":   "50667",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, probe.called)
	})

	t.Run("bad zip code is rejected", func(t *testing.T) {
		app, probe := build()
		resp := post(t, app, "/submit", fiber.Map{
			"course_id":  1,
			"first_name": "Max",
			"last_name":  "Mustermann",
			"email":      "max@test.local",
			"zip_code":   "123",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.False(t, probe.called)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		app, probe := build()
		resp := post(t, app, "/submit", fiber.Map{
			"course_id":  1,
			"first_name": "Max",
			"last_name":  "Mustermann",
			"email":      "not-an-email",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.False(t, probe.called)
	})
}
