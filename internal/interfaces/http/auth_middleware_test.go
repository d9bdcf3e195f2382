package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
	apphttp "github.com/jhoicas/ecobazaar-storefront/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fixedSession identidad fija devuelta por Current (nil = invitado).
type fixedSession struct{ id *entity.Identity }

func (f fixedSession) Current() *entity.Identity { return f.id }

// buildTestApp construye una aplicación Fiber mínima con:
//   - SessionMiddleware para cargar la identidad en locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(id *entity.Identity, allowedRoles ...entity.Role) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.SessionMiddleware(fixedSession{id: id}),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

func identityFor(role entity.Role) *entity.Identity {
	return &entity.Identity{ID: 1, Email: "x@eco.test", Role: role}
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	resp := doRequest(t, buildTestApp(identityFor(entity.RoleAdmin), entity.RoleAdmin))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ADMIN", decodeBody(t, resp)["role"])
}

func TestRequireRole_UsuarioNoAccedeRutaAdmin(t *testing.T) {
	resp := doRequest(t, buildTestApp(identityFor(entity.RoleUser), entity.RoleAdmin))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeBody(t, resp)["code"])
}

func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	app := buildTestApp(identityFor(entity.RoleSeller), entity.RoleSeller, entity.RoleAdmin)
	assert.Equal(t, fiber.StatusOK, doRequest(t, app).StatusCode)
}

func TestRequireRole_SinSesion401(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil, entity.RoleUser))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "NO_SESSION", decodeBody(t, resp)["code"])
}

func TestRequireIdentity(t *testing.T) {
	build := func(id *entity.Identity) *fiber.App {
		app := fiber.New()
		app.Get("/protected", apphttp.SessionMiddleware(fixedSession{id: id}), apphttp.RequireIdentity(),
			func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
		return app
	}
	assert.Equal(t, fiber.StatusUnauthorized, doRequest(t, build(nil)).StatusCode)
	assert.Equal(t, fiber.StatusNoContent, doRequest(t, build(identityFor(entity.RoleUser))).StatusCode)
}
