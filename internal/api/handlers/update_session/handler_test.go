package update_session

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/mentorhub/MH-SessionService/internal/api/middleware"
	"github.com/mentorhub/MH-SessionService/internal/service/sessions"
	"github.com/mentorhub/MH-SessionService/internal/service/sessions/models"
)

type fakeService struct {
	resp *models.SessionResponse
	err  error
}

func (f *fakeService) Update(_ context.Context, _ int64, _ *models.UpdateSessionRequest) (*models.SessionResponse, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(svc SessionService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/sessions/{sessionId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/5", bytes.NewReader([]byte(body)))
	req.Header.Set("X-User-ID", "2")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{resp: &models.SessionResponse{ID: 5, Status: "cancelled"}}

	rec := doRequest(svc, `{"status":"cancelled"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "not found", err: sessions.ErrSessionNotFound, wantCode: http.StatusNotFound},
		{name: "access denied", err: sessions.ErrAccessDenied, wantCode: http.StatusForbidden},
		{name: "empty update", err: sessions.ErrEmptyUpdate, wantCode: http.StatusBadRequest},
		{name: "invalid status transition", err: sessions.ErrInvalidStatusTransition, wantCode: http.StatusBadRequest},
		{name: "invalid input", err: sessions.ErrInvalidInput, wantCode: http.StatusBadRequest},
		{name: "internal", err: sessions.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(&fakeService{err: tt.err}, `{"status":"completed"}`)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandle_BadSessionID(t *testing.T) {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/sessions/{sessionId}", NewHandler(&fakeService{}, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/abc", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("X-User-ID", "2")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
