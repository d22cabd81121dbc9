package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"instantapply/models"
)

func setupTestRouter(controller *InstantApplyController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/applications/instant-apply", controller.InstantApply)
	r.GET("/api/applications/:userId", controller.ListAttempts)
	return r
}

func newTestController(t *testing.T) (*InstantApplyController, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// The orchestrator is only reached after validation and profile load
	// succeed; these tests stop before that.
	return NewInstantApplyController(
		models.NewUserProfileModel(db),
		models.NewApplicationAttemptModel(db),
		nil,
	), mock
}

func TestInstantApplyValidation(t *testing.T) {
	controller, _ := newTestController(t)
	router := setupTestRouter(controller)

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
	}{
		{"missing user id", map[string]interface{}{"job_urls": []string{"https://jobs.lever.co/a/1"}}, http.StatusBadRequest},
		{"missing job urls", map[string]interface{}{"user_id": 42}, http.StatusBadRequest},
		{"empty job urls", map[string]interface{}{"user_id": 42, "job_urls": []string{}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/applications/instant-apply", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestInstantApplyTooManyURLs(t *testing.T) {
	controller, _ := newTestController(t)
	router := setupTestRouter(controller)

	urls := make([]string, 21)
	for i := range urls {
		urls[i] = "https://jobs.lever.co/acme/1"
	}
	payload, _ := json.Marshal(map[string]interface{}{"user_id": 42, "job_urls": urls})

	req := httptest.NewRequest(http.MethodPost, "/api/applications/instant-apply", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInstantApplyProfileNotFound(t *testing.T) {
	controller, mock := newTestController(t)
	router := setupTestRouter(controller)

	mock.ExpectQuery("SELECT id, user_id").WithArgs(42).WillReturnError(sql.ErrNoRows)

	payload, _ := json.Marshal(map[string]interface{}{
		"user_id":  42,
		"job_urls": []string{"https://jobs.lever.co/acme/1"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/applications/instant-apply", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAttemptsInvalidUserID(t *testing.T) {
	controller, _ := newTestController(t)
	router := setupTestRouter(controller)

	req := httptest.NewRequest(http.MethodGet, "/api/applications/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
