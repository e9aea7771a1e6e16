package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tienda/internal/middleware"
	"tienda/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type errorsBody struct {
	Errors []validation.Violation `json:"errors"`
	Error  string                 `json:"error"`
}

func newGatedApp(rules validation.RuleSet) (*fiber.App, *int) {
	calls := 0
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(zap.NewNop())})
	app.Post("/items/:id", middleware.Gate(rules), func(c *fiber.Ctx) error {
		calls++
		in := middleware.ValidatedInput(c)
		name, _ := in.BodyField("name")
		return c.JSON(fiber.Map{"id": in.Param("id"), "name": name})
	})
	return app, &calls
}

func send(t *testing.T, app *fiber.App, target, contentType, payload string) (*http.Response, errorsBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(payload))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body errorsBody
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func TestGate_CollectsAllViolations(t *testing.T) {
	app, calls := newGatedApp(validation.UpdateRules)

	resp, body := send(t, app, "/items/abc", fiber.MIMEApplicationJSON, `{}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, body.Errors, 6)
	assert.Equal(t, validation.MsgInvalidID, body.Errors[0].Msg)
	assert.Equal(t, 0, *calls, "handler must not run when validation fails")
}

func TestGate_PassesValidInputToHandler(t *testing.T) {
	app, calls := newGatedApp(validation.CreateRules)

	req := httptest.NewRequest(http.MethodPost, "/items/7", strings.NewReader(`{"name":"PS5","price":600}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "7", got["id"])
	assert.Equal(t, "PS5", got["name"])
	assert.Equal(t, 1, *calls)
}

func TestGate_NonJSONBodyIsReadAsEmpty(t *testing.T) {
	app, _ := newGatedApp(validation.CreateRules)

	resp, body := send(t, app, "/items/1", "text/plain", `name=PS5&price=600`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, body.Errors, 4)
}

func TestGate_MalformedJSON(t *testing.T) {
	app, calls := newGatedApp(validation.CreateRules)

	resp, body := send(t, app, "/items/1", fiber.MIMEApplicationJSON, `{"name":`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, middleware.MsgInvalidJSON, body.Errors[0].Msg)
	assert.Equal(t, 0, *calls)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(zap.NewNop())})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("connection refused")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body errorsBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, middleware.MsgInternalError, body.Error)
	assert.NotContains(t, body.Error, "connection refused")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
