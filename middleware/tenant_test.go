package middleware_test

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

func tenantTestApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.ResolveTenant)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		tenant := middleware.CurrentTenant(c)
		if tenant == nil {
			return c.JSON(fiber.Map{"subdomain": nil})
		}
		return c.JSON(fiber.Map{"subdomain": tenant.Subdomain})
	})
	app.Get(middleware.SuperAdminPrefix+"/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func resolvedSubdomain(t *testing.T, app *fiber.App, host string) (string, int) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "http://"+host+"/whoami", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Subdomain string `json:"subdomain"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return body.Subdomain, resp.StatusCode
}

func TestResolveTenant(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)

	tenant := testutil.CreateTenant(t, db, "Akademie Nord", "akademie")
	tenant.CustomDomain = "kurse.example.de"
	require.NoError(t, db.Save(tenant).Error)

	inactive := testutil.CreateTenant(t, db, "Alte Schule", "alt")
	inactive.IsActive = false
	require.NoError(t, db.Save(inactive).Error)

	app := tenantTestApp()

	t.Run("subdomain", func(t *testing.T) {
		sub, status := resolvedSubdomain(t, app, "akademie.foerderpilot.de")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "akademie", sub)
	})

	t.Run("subdomain with port", func(t *testing.T) {
		sub, status := resolvedSubdomain(t, app, "akademie.foerderpilot.de:8080")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "akademie", sub)
	})

	t.Run("custom domain wins", func(t *testing.T) {
		sub, status := resolvedSubdomain(t, app, "kurse.example.de")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "akademie", sub)
	})

	t.Run("unknown subdomain resolves nothing", func(t *testing.T) {
		sub, status := resolvedSubdomain(t, app, "niemand.foerderpilot.de")
		assert.Equal(t, http.StatusOK, status)
		assert.Empty(t, sub)
	})

	t.Run("bare hosts resolve nothing", func(t *testing.T) {
		for _, host := range []string{"localhost:3000", "127.0.0.1:3000", "www.foerderpilot.de"} {
			sub, status := resolvedSubdomain(t, app, host)
			assert.Equal(t, http.StatusOK, status, "host %s", host)
			assert.Empty(t, sub, "host %s", host)
		}
	})

	t.Run("inactive tenant is rejected", func(t *testing.T) {
		_, status := resolvedSubdomain(t, app, "alt.foerderpilot.de")
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("super admin routes skip resolution", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"http://alt.foerderpilot.de"+middleware.SuperAdminPrefix+"/ping", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestTenantScoped(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)

	tenantA := testutil.CreateTenant(t, db, "Anbieter A", "anbieter-a")
	tenantB := testutil.CreateTenant(t, db, "Anbieter B", "anbieter-b")

	adminA := testutil.CreateUser(t, db, &tenantA.ID, models.RoleAdmin, "admin-a@test.local", "secret123")
	superAdmin := testutil.CreateUser(t, db, nil, models.RoleSuperAdmin, "root@test.local", "secret123")

	app := fiber.New()
	app.Use(middleware.ResolveTenant)
	app.Get("/scoped", middleware.JWTMiddleware, middleware.TenantScoped, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	call := func(host string, user *models.User) int {
		req := httptest.NewRequest(http.MethodGet, "http://"+host+"/scoped", nil)
		req.Header.Set("Authorization", testutil.AuthHeader(t, user))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	t.Run("admin on own tenant", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, call("anbieter-a.foerderpilot.de", adminA))
	})

	t.Run("admin on foreign tenant", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, call("anbieter-b.foerderpilot.de", adminA))
	})

	t.Run("super admin bypasses tenant pinning", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, call("anbieter-b.foerderpilot.de", superAdmin))
	})

	_ = tenantB
}
