// file: controllers/admin_controller_test.go
package controllers

import (
	"bytes"
	"context"
	"encoding/json"
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
	"github.com/dalibouzir/MeriemBooking-sub000/store"
)

// ------------------ store mocks ------------------

type mockSettingsStore struct {
	mock.Mock
}

func (m *mockSettingsStore) Get(ctx context.Context) (*models.ChallengeSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeSettings), args.Error(1)
}

func (m *mockSettingsStore) Patch(ctx context.Context, patch models.ChallengeSettingsPatch) (*models.ChallengeSettings, error) {
	args := m.Called(ctx, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeSettings), args.Error(1)
}

type mockProductStore struct {
	mock.Mock
}

func (m *mockProductStore) List(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductStore) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductStore) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductStore) Update(ctx context.Context, p models.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductStore) IncrementDownloads(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ------------------ setup ------------------

type adminFixture struct {
	router        *gin.Engine
	registrations *services.MockRegistrationService
	booking       *services.MockBookingService
	settings      *mockSettingsStore
	products      *mockProductStore
	cookie        *http.Cookie
}

const adminTestPassword = "s3cret-admin"

func setupAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	f := &adminFixture{
		registrations: new(services.MockRegistrationService),
		booking:       new(services.MockBookingService),
		settings:      new(mockSettingsStore),
		products:      new(mockProductStore),
	}

	router := setupTestRouter()
	ac := NewAdminController(f.registrations, f.booking, f.settings, f.products,
		"coach@example.com", hashPassword(adminTestPassword))

	router.POST("/admin/login", ac.Login)
	admin := router.Group("/admin", middleware.AdminRequired())
	{
		admin.POST("/logout", ac.Logout)
		admin.GET("/settings", ac.GetSettings)
		admin.PATCH("/settings", ac.PatchSettings)
		admin.GET("/registrations", ac.ListRegistrations)
		admin.POST("/registrations/:id/promote", ac.PromoteRegistration)
		admin.DELETE("/registrations/:id", ac.DeleteRegistration)
		admin.POST("/email", ac.BulkEmail)
		admin.POST("/slots", ac.CreateSlot)
		admin.DELETE("/slots/:id", ac.DeleteSlot)
		admin.GET("/reservations", ac.ListReservations)
		admin.POST("/products", ac.CreateProduct)
		admin.PUT("/products/:id", ac.UpdateProduct)
		admin.DELETE("/products/:id", ac.DeleteProduct)
	}

	f.router = router
	f.cookie = setSession(router, "/test/grant-admin", map[string]interface{}{"isAdmin": true})
	if f.cookie == nil {
		t.Fatal("failed to obtain admin session cookie")
	}
	return f
}

func (f *adminFixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(f.cookie)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// ------------------ authentication ------------------

func TestLogin_Success(t *testing.T) {
	f := setupAdminFixture(t)

	payload, _ := json.Marshal(loginRequest{Email: "Coach@Example.com", Password: adminTestPassword})
	req, _ := http.NewRequest("POST", "/admin/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestLogin_WrongPassword(t *testing.T) {
	f := setupAdminFixture(t)

	payload, _ := json.Marshal(loginRequest{Email: "coach@example.com", Password: "wrong"})
	req, _ := http.NewRequest("POST", "/admin/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutes_RejectWithoutSession(t *testing.T) {
	f := setupAdminFixture(t)

	req, _ := http.NewRequest("GET", "/admin/registrations", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ------------------ settings ------------------

func TestPatchSettings_RejectsNegativeCapacity(t *testing.T) {
	f := setupAdminFixture(t)

	capacity := -5
	w := f.do("PATCH", "/admin/settings", models.ChallengeSettingsPatch{Capacity: &capacity})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.settings.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything)
}

func TestPatchSettings_AppliesPartialUpdate(t *testing.T) {
	f := setupAdminFixture(t)

	capacity := 40
	updated := testSettings()
	updated.Capacity = capacity
	f.settings.On("Patch", mock.Anything, mock.MatchedBy(func(p models.ChallengeSettingsPatch) bool {
		return p.Capacity != nil && *p.Capacity == capacity && p.Title == nil
	})).Return(updated, nil)

	w := f.do("PATCH", "/admin/settings", models.ChallengeSettingsPatch{Capacity: &capacity})

	assert.Equal(t, http.StatusOK, w.Code)
	f.settings.AssertExpectations(t)
}

// ------------------ registrations ------------------

func TestListRegistrations_PassesFilter(t *testing.T) {
	f := setupAdminFixture(t)

	f.registrations.On("List", mock.Anything, models.RegistrationFilter{
		Status: models.StatusWaitlist,
		Search: "leila",
		Limit:  25,
		Offset: 50,
	}).Return([]models.ChallengeRegistration{{ID: "reg-9", Status: models.StatusWaitlist}}, nil)

	w := f.do("GET", "/admin/registrations?status=waitlist&search=leila&limit=25&offset=50", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	f.registrations.AssertExpectations(t)
}

func TestPromoteRegistration_Success(t *testing.T) {
	f := setupAdminFixture(t)
	f.registrations.On("Promote", mock.Anything, "reg-9").Return(nil)

	w := f.do("POST", "/admin/registrations/reg-9/promote", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPromoteRegistration_NoCapacity(t *testing.T) {
	f := setupAdminFixture(t)
	f.registrations.On("Promote", mock.Anything, "reg-9").Return(store.ErrNoCapacity)

	w := f.do("POST", "/admin/registrations/reg-9/promote", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no remaining capacity")
}

func TestPromoteRegistration_NotFound(t *testing.T) {
	f := setupAdminFixture(t)
	f.registrations.On("Promote", mock.Anything, "missing").Return(store.ErrNotFound)

	w := f.do("POST", "/admin/registrations/missing/promote", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRegistration(t *testing.T) {
	f := setupAdminFixture(t)
	f.registrations.On("Delete", mock.Anything, "reg-9").Return(nil)

	w := f.do("DELETE", "/admin/registrations/reg-9", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBulkEmail_ReportsSentCount(t *testing.T) {
	f := setupAdminFixture(t)
	f.registrations.On("BulkEmail", mock.Anything, "waitlist", "Seats opened", "<p>hi</p>").Return(4, nil)

	w := f.do("POST", "/admin/email", bulkEmailRequest{Segment: "waitlist", Subject: "Seats opened", HTML: "<p>hi</p>"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sent":4`)
}

func TestBulkEmail_UnknownSegment(t *testing.T) {
	f := setupAdminFixture(t)
	f.registrations.On("BulkEmail", mock.Anything, "vip", "x", "y").
		Return(0, &services.ValidationError{Field: "segment", Message: "unknown segment"})

	w := f.do("POST", "/admin/email", bulkEmailRequest{Segment: "vip", Subject: "x", HTML: "y"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ------------------ slots ------------------

func TestCreateSlot(t *testing.T) {
	f := setupAdminFixture(t)

	startsAt := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	f.booking.On("CreateSlot", mock.Anything, startsAt, 30).
		Return(&models.FreeCallSlot{ID: "slot-1", StartsAt: startsAt, Minutes: 30, IsOpen: true}, nil)

	w := f.do("POST", "/admin/slots", createSlotRequest{StartsAt: startsAt, Minutes: 30})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "slot-1")
}

func TestCreateSlot_RejectsMissingFields(t *testing.T) {
	f := setupAdminFixture(t)

	w := f.do("POST", "/admin/slots", createSlotRequest{Minutes: 0})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.booking.AssertNotCalled(t, "CreateSlot", mock.Anything, mock.Anything, mock.Anything)
}

// ------------------ products ------------------

func TestCreateProduct(t *testing.T) {
	f := setupAdminFixture(t)

	product := models.Product{Slug: "morning-guide", TitleAr: "دليل الصباح", IsFree: true}
	created := product
	created.ID = "prod-1"
	f.products.On("Create", mock.Anything, mock.Anything).Return(&created, nil)

	w := f.do("POST", "/admin/products", product)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "prod-1")
}

func TestCreateProduct_RequiresSlugAndTitle(t *testing.T) {
	f := setupAdminFixture(t)

	w := f.do("POST", "/admin/products", models.Product{TitleEn: "Guide"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	f := setupAdminFixture(t)
	f.products.On("Delete", mock.Anything, "missing").Return(store.ErrNotFound)

	w := f.do("DELETE", "/admin/products/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
