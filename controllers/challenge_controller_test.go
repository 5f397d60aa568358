// file: controllers/challenge_controller_test.go
package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dalibouzir/MeriemBooking-sub000/middleware"
	"github.com/dalibouzir/MeriemBooking-sub000/models"
	"github.com/dalibouzir/MeriemBooking-sub000/services"
)

// fakeSettingsReader serves a canned settings row.
type fakeSettingsReader struct {
	settings *models.ChallengeSettings
	err      error
}

func (f *fakeSettingsReader) Get(_ context.Context) (*models.ChallengeSettings, error) {
	return f.settings, f.err
}

func testSettings() *models.ChallengeSettings {
	return &models.ChallengeSettings{
		ID:              1,
		Title:           "تحدي 30 يوم",
		Subtitle:        "طاقة وتركيز",
		Capacity:        30,
		MeetingURL:      "https://meet.example.com/challenge",
		StartsAt:        time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Timezone:        "Africa/Tunis",
		IsActive:        true,
	}
}

func setupChallengeRouter(svc services.RegistrationServiceInterface, settings services.SettingsReader) *gin.Engine {
	router := setupTestRouter()
	router.Use(middleware.Locale())
	cc := NewChallengeController(svc, settings, "https://coach.example.com")
	router.GET("/api/challenge", cc.GetChallenge)
	router.POST("/api/challenge/register", cc.Register)
	router.GET("/api/challenge/stats", cc.GetStats)
	router.POST("/api/challenge/registrations/:id/link-copied", cc.MarkLinkCopied)
	router.POST("/api/challenge/registrations/:id/link-saved", cc.MarkLinkSaved)
	router.GET("/api/challenge/qrcode", cc.QRCode)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetChallenge_OmitsMeetingLink(t *testing.T) {
	svc := new(services.MockRegistrationService)
	svc.On("Stats", mock.Anything).Return(models.ChallengeStats{Capacity: 30, ConfirmedCount: 12, WaitlistCount: 2, Remaining: 18}, nil)
	router := setupChallengeRouter(svc, &fakeSettingsReader{settings: testSettings()})

	req, _ := http.NewRequest("GET", "/api/challenge", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "تحدي 30 يوم")
	assert.NotContains(t, w.Body.String(), "meet.example.com", "meeting link must stay out of the public payload")

	var resp struct {
		Stats models.ChallengeStats `json:"stats"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 18, resp.Stats.Remaining)
}

func TestRegister_Success(t *testing.T) {
	remaining := 17
	svc := new(services.MockRegistrationService)
	svc.On("Register", mock.Anything, mock.Anything).Return(models.RegistrationResult{
		Status:         models.OutcomeSuccess,
		RegistrationID: "reg-1",
		Remaining:      &remaining,
	}, nil)
	router := setupChallengeRouter(svc, &fakeSettingsReader{settings: testSettings()})

	w := postJSON(router, "/api/challenge/register", models.RegisterRequest{Name: "Leila", Email: "leila@example.com"})

	assert.Equal(t, http.StatusCreated, w.Code)

	var result models.RegistrationResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.OutcomeSuccess, result.Status)
	assert.Equal(t, "reg-1", result.RegistrationID)
	// default language is Arabic
	assert.Equal(t, registrationMessages["success"]["ar"], result.Message)
}

func TestRegister_FullGoesToWaitlist(t *testing.T) {
	remaining := 0
	svc := new(services.MockRegistrationService)
	svc.On("Register", mock.Anything, mock.Anything).Return(models.RegistrationResult{
		Status:         models.OutcomeFull,
		RegistrationID: "reg-2",
		Remaining:      &remaining,
	}, nil)
	router := setupChallengeRouter(svc, &fakeSettingsReader{settings: testSettings()})

	w := postJSON(router, "/api/challenge/register?lang=en", models.RegisterRequest{Name: "Omar", Email: "omar@example.com"})

	assert.Equal(t, http.StatusOK, w.Code)

	var result models.RegistrationResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.OutcomeFull, result.Status)
	assert.Equal(t, registrationMessages["full"]["en"], result.Message)
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	svc := new(services.MockRegistrationService)
	svc.On("Register", mock.Anything, mock.Anything).Return(models.RegistrationResult{
		Status:         models.OutcomeAlreadyRegistered,
		RegistrationID: "reg-1",
		ExistingStatus: models.StatusConfirmed,
	}, nil)
	router := setupChallengeRouter(svc, &fakeSettingsReader{settings: testSettings()})

	w := postJSON(router, "/api/challenge/register", models.RegisterRequest{Name: "Leila", Email: "LEILA@example.com"})

	assert.Equal(t, http.StatusOK, w.Code)

	var result models.RegistrationResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.OutcomeAlreadyRegistered, result.Status)
	assert.Equal(t, models.StatusConfirmed, result.ExistingStatus)
}

func TestRegister_ValidationError(t *testing.T) {
	svc := new(services.MockRegistrationService)
	svc.On("Register", mock.Anything, mock.Anything).Return(models.RegistrationResult{}, &services.ValidationError{Field: "email", Message: "a valid email is required"})
	router := setupChallengeRouter(svc, &fakeSettingsReader{settings: testSettings()})

	w := postJSON(router, "/api/challenge/register", models.RegisterRequest{Name: "Leila", Email: "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "a valid email is required")
}

func TestRegister_ClosedChallenge(t *testing.T) {
	svc := new(services.MockRegistrationService)
	svc.On("Register", mock.Anything, mock.Anything).Return(models.RegistrationResult{
		Status: models.OutcomeError,
		Error:  "registration is currently closed",
	}, nil)
	router := setupChallengeRouter(svc, &fakeSettingsReader{settings: testSettings()})

	w := postJSON(router, "/api/challenge/register", models.RegisterRequest{Name: "Leila", Email: "leila@example.com"})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetStats_StoreFailure(t *testing.T) {
	svc := new(services.MockRegistrationService)
	svc.On("Stats", mock.Anything).Return(models.ChallengeStats{}, errors.New("db down"))
	router := setupChallengeRouter(svc, &fakeSettingsReader{settings: testSettings()})

	req, _ := http.NewRequest("GET", "/api/challenge/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMarkLinkCopied(t *testing.T) {
	svc := new(services.MockRegistrationService)
	svc.On("MarkLinkCopied", "reg-1").Return(true)
	svc.On("MarkLinkCopied", "missing").Return(false)
	router := setupChallengeRouter(svc, &fakeSettingsReader{settings: testSettings()})

	w := postJSON(router, "/api/challenge/registrations/reg-1/link-copied", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)

	w = postJSON(router, "/api/challenge/registrations/missing/link-copied", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestQRCode_ReturnsPNG(t *testing.T) {
	svc := new(services.MockRegistrationService)
	router := setupChallengeRouter(svc, &fakeSettingsReader{settings: testSettings()})

	req, _ := http.NewRequest("GET", "/api/challenge/qrcode", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}
