package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskmanager_web/internal/models"
	"taskmanager_web/internal/services"
	"taskmanager_web/internal/stubapi"
)

func newTestServer(t *testing.T) (*echo.Echo, *stubapi.Store) {
	t.Helper()
	store := stubapi.NewStore()
	api := httptest.NewServer(stubapi.New(store, log.New()).Echo())
	t.Cleanup(api.Close)

	logger := log.New()
	e, err := newServer(services.NewTaskService(api.URL+stubapi.BasePath, 0, logger), logger)
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	return e, store
}

func TestServerPages(t *testing.T) {
	e, store := newTestServer(t)
	store.Create(models.Task{Title: "Water plants"})

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{name: "list", path: "/", wantCode: http.StatusOK, wantBody: "Water plants"},
		{name: "create", path: "/create", wantCode: http.StatusOK, wantBody: "Create Task"},
		{name: "create trailing slash", path: "/create/", wantCode: http.StatusOK, wantBody: "Create Task"},
		{name: "edit trailing slash", path: "/edit/1/", wantCode: http.StatusOK, wantBody: `value="Water plants"`},
		{name: "edit missing", path: "/edit/5", wantCode: http.StatusNotFound, wantBody: "Task Not Found"},
		{name: "unknown", path: "/nowhere/", wantCode: http.StatusNotFound, wantBody: "Page Not Found"},
		{name: "healthz", path: "/healthz", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantCode {
				t.Fatalf("GET %s = %d; want %d", tt.path, rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("GET %s missing %q", tt.path, tt.wantBody)
			}
			if rec.Header().Get(echo.HeaderXRequestID) == "" {
				t.Errorf("GET %s has no request id", tt.path)
			}
		})
	}
}

func TestServerFormActions(t *testing.T) {
	e, store := newTestServer(t)

	post := func(path string, form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	tests := []struct {
		name       string
		path       string
		form       url.Values
		wantNotice string
	}{
		{name: "create", path: "/create", form: url.Values{"title": {"Call mum"}}, wantNotice: "created"},
		{name: "edit", path: "/edit/1", form: url.Values{"title": {"Call mum back"}}, wantNotice: "updated"},
		{name: "complete", path: "/tasks/1/complete", wantNotice: "completed"},
		{name: "delete trailing slash", path: "/tasks/1/delete/", wantNotice: "deleted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(tt.path, tt.form)
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("POST %s = %d; want 303", tt.path, rec.Code)
			}
			if loc := rec.Header().Get(echo.HeaderLocation); loc != "/?notice="+tt.wantNotice {
				t.Errorf("POST %s Location = %q", tt.path, loc)
			}
		})
	}

	if len(store.All()) != 0 {
		t.Errorf("expected the task to be gone, got %+v", store.All())
	}
}
