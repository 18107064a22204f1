package stubapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskmanager_web/internal/models"
)

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServerRoutes(t *testing.T) {
	srv := New(nil, log.New())
	e := srv.Echo()
	srv.Store().Create(models.Task{Title: "Seeded"})

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		wantCode int
		wantBody string
	}{
		{name: "list", method: http.MethodGet, target: BasePath, wantCode: http.StatusOK, wantBody: `"title":"Seeded"`},
		{name: "get", method: http.MethodGet, target: BasePath + "/1", wantCode: http.StatusOK, wantBody: `"id":1`},
		{name: "create", method: http.MethodPost, target: BasePath, body: `{"title":"New","description":"d","completed":false}`, wantCode: http.StatusCreated, wantBody: `"id":2`},
		{name: "update", method: http.MethodPut, target: BasePath + "/2", body: `{"title":"Renamed","description":"","completed":true}`, wantCode: http.StatusOK, wantBody: `"title":"Renamed"`},
		{name: "complete", method: http.MethodPatch, target: BasePath + "/complete/1", wantCode: http.StatusOK, wantBody: `"completed":true`},
		{name: "delete", method: http.MethodDelete, target: BasePath + "/2", wantCode: http.StatusNoContent},
		{name: "get deleted", method: http.MethodGet, target: BasePath + "/2", wantCode: http.StatusNotFound, wantBody: `"message":"Task not found with id: 2"`},
		{name: "bad id", method: http.MethodGet, target: BasePath + "/abc", wantCode: http.StatusBadRequest, wantBody: `"status":400`},
		{name: "malformed body", method: http.MethodPost, target: BasePath, body: `{"title":`, wantCode: http.StatusBadRequest, wantBody: "Malformed task body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, tt.method, tt.target, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("%s %s = %d; want %d (%s)", tt.method, tt.target, rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body %s missing %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestServerErrorBodyShape(t *testing.T) {
	e := New(nil, log.New()).Echo()

	rec := serve(e, http.MethodDelete, BasePath+"/8", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]interface{}
	if err := sonic.ConfigStd.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"timestamp", "message", "status"} {
		if _, ok := body[key]; !ok {
			t.Errorf("error body missing %q: %v", key, body)
		}
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Errorf("expected a request id header")
	}
}
