package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cyclenote/internal/db"
	"github.com/terraincognita07/cyclenote/internal/i18n"
	"github.com/terraincognita07/cyclenote/internal/services"
	"github.com/terraincognita07/cyclenote/internal/templates"
)

var testNow = time.Date(2024, time.February, 10, 9, 30, 0, 0, time.UTC)

var regularHistory = []string{"2023-11-06", "2023-12-04", "2024-01-01"}

type testAppOptions struct {
	store               services.PeriodStore
	submitRatePerMinute int
}

func newTestApp(t *testing.T, records ...string) (*fiber.App, *db.MemoryStore) {
	t.Helper()

	store := db.NewMemoryStore(records...)
	return newTestAppWithOptions(t, testAppOptions{store: store}), store
}

func newTestAppWithOptions(t *testing.T, options testAppOptions) *fiber.App {
	t.Helper()

	i18nManager, err := i18n.NewManager(i18n.LangEN, i18n.EmbeddedLocales())
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	handler, err := NewHandler(services.NewSummaryService(options.store), Options{
		Location:            time.UTC,
		I18n:                i18nManager,
		Templates:           templates.Files,
		SecretKey:           "test-secret-key",
		SubmitRatePerMinute: options.submitRatePerMinute,
		Logger:              log,
		Now:                 func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return app
}

type failingPeriodStore struct {
	appendErr error
	listErr   error
}

func (store failingPeriodStore) Append(context.Context, string) error {
	return store.appendErr
}

func (store failingPeriodStore) List(context.Context) ([]string, error) {
	if store.listErr != nil {
		return nil, store.listErr
	}
	return []string{}, nil
}

var errStoreUnavailable = errors.New("store unavailable")

func mustTest(t *testing.T, app *fiber.App, request *http.Request) *http.Response {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func formRequest(path string, values string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

func responseCookie(response *http.Response, name string) *http.Cookie {
	for _, cookie := range response.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func listRecords(t *testing.T, store services.PeriodStore) []string {
	t.Helper()

	records, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	return records
}
