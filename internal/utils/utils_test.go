package utils

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLocale(t *testing.T) {
	defer SetDefaultLocale("pl")

	assert.Equal(t, language.Polish, Locale(""))
	assert.Equal(t, language.Polish, Locale("pl-PL,pl;q=0.9"))
	assert.Equal(t, language.English, Locale("en-GB,en;q=0.8"))
	assert.Equal(t, language.English, Locale("de-DE,en;q=0.5"))
	assert.Equal(t, language.Polish, Locale("fr-FR"))

	SetDefaultLocale("en")
	assert.Equal(t, language.English, Locale("fr-FR"))
	assert.Equal(t, language.Polish, Locale("pl"))
}

func TestMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ErrorResponse(c, Message(c, MsgNotFound), fiber.StatusNotFound, "data.notfound")
	})

	req := httptest.NewRequest("GET", "/?x=1", nil)
	req.Header.Set("Accept-Language", "en-US")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body ErrorResponseStruct
	require.NoError(t, decode(resp.Body, &body))
	assert.Equal(t, "Resource not found.", body.Message)
	assert.False(t, body.Ok)
	assert.Equal(t, "/?x=1", body.URL)
	assert.Equal(t, "data.notfound", body.Type)
}

func TestListResponseNeverNull(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		var none []string
		return ListResponse(c, none)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, decode(resp.Body, &body))
	assert.Equal(t, []interface{}{}, body["items"])
	assert.Equal(t, float64(0), body["count"])
}

func TestPingService(t *testing.T) {
	srv := httptest.NewServer(nil)
	defer srv.Close()

	ctx := context.Background()
	assert.NoError(t, PingAuthorizer(ctx, srv.URL))
	assert.Error(t, PingService(ctx, "http://127.0.0.1:1", time.Second))
	assert.Error(t, PingService(ctx, "://bad", 0))
	assert.Error(t, PingService(ctx, "not a url", 0), "no host")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, PingService(cancelled, srv.URL, 0))
}

func decode(r io.Reader, v interface{}) error {
	return json.NewDecoder(r).Decode(v)
}
