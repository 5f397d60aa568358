// Package controllers controllers/admin_controller.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
	"github.com/dalibouzir/MeriemBooking-sub000/models"
	"github.com/dalibouzir/MeriemBooking-sub000/services"
	"github.com/dalibouzir/MeriemBooking-sub000/store"
)

// SettingsStoreInterface is the slice of the settings store the admin
// controller depends on.
type SettingsStoreInterface interface {
	Get(ctx context.Context) (*models.ChallengeSettings, error)
	Patch(ctx context.Context, patch models.ChallengeSettingsPatch) (*models.ChallengeSettings, error)
}

// ProductStoreInterface covers the product CRUD used by the admin panel.
type ProductStoreInterface interface {
	List(ctx context.Context) ([]models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Create(ctx context.Context, p models.Product) (*models.Product, error)
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
	IncrementDownloads(ctx context.Context, id string) error
}

// checkPasswordHash verifies the provided password against the stored
// bcrypt hash.
func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AdminController serves the session-gated admin API: login, settings,
// the registrations table, promotion, bulk email, slots, and products.
type AdminController struct {
	registrations services.RegistrationServiceInterface
	booking       services.BookingServiceInterface
	settings      SettingsStoreInterface
	products      ProductStoreInterface

	adminEmail        string
	adminPasswordHash string
}

// NewAdminController creates a new AdminController.
func NewAdminController(
	registrations services.RegistrationServiceInterface,
	booking services.BookingServiceInterface,
	settings SettingsStoreInterface,
	products ProductStoreInterface,
	adminEmail, adminPasswordHash string,
) *AdminController {
	return &AdminController{
		registrations:     registrations,
		booking:           booking,
		settings:          settings,
		products:          products,
		adminEmail:        strings.ToLower(strings.TrimSpace(adminEmail)),
		adminPasswordHash: adminPasswordHash,
	}
}

// ------------------ authentication ------------------

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the credentials against the configured admin account and
// marks the session as admin on success.
func (ac *AdminController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != ac.adminEmail || !checkPasswordHash(req.Password, ac.adminPasswordHash) {
		logger.Warn.Printf("[Login] rejected login attempt for %s", email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	session := sessions.Default(c)
	session.Set("isAdmin", true)
	if err := session.Save(); err != nil {
		logger.Error.Printf("[Login] failed to save session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}

	logger.Info.Printf("[Login] admin %s logged in", email)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout clears the admin session.
func (ac *AdminController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("[Logout] failed to save session: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ------------------ challenge settings ------------------

// GetSettings returns the full settings row, meeting link included.
func (ac *AdminController) GetSettings(c *gin.Context) {
	settings, err := ac.settings.Get(c.Request.Context())
	if err != nil {
		logger.Error.Printf("[GetSettings] failed to load settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// PatchSettings applies a partial update. Lowering capacity never evicts
// confirmed registrants; it only throttles future admissions.
func (ac *AdminController) PatchSettings(c *gin.Context) {
	var patch models.ChallengeSettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if patch.Capacity != nil && *patch.Capacity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must not be negative"})
		return
	}

	settings, err := ac.settings.Patch(c.Request.Context(), patch)
	if err != nil {
		logger.Error.Printf("[PatchSettings] update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ------------------ registrations ------------------

// ListRegistrations returns the registrations table with optional status,
// search, and paging filters.
func (ac *AdminController) ListRegistrations(c *gin.Context) {
	filter := models.RegistrationFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}
	if v := c.Query("since"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			filter.Since = &ts
		}
	}
	if v := c.Query("until"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			filter.Until = &ts
		}
	}

	regs, err := ac.registrations.List(c.Request.Context(), filter)
	if err != nil {
		logger.Error.Printf("[ListRegistrations] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list registrations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"registrations": regs, "count": len(regs)})
}

// PromoteRegistration moves a waitlisted registrant into a confirmed seat,
// subject to the same capacity check as registration itself.
func (ac *AdminController) PromoteRegistration(c *gin.Context) {
	id := c.Param("id")
	err := ac.registrations.Promote(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "registration not found"})
	case errors.Is(err, store.ErrNoCapacity):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "no remaining capacity"})
	case errors.Is(err, store.ErrNotWaitlisted):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "registration is not waitlisted"})
	default:
		logger.Error.Printf("[PromoteRegistration] promote %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "promotion failed"})
	}
}

// DeleteRegistration removes a registrant. Freed seats are not backfilled
// automatically; promotion stays an explicit admin action.
func (ac *AdminController) DeleteRegistration(c *gin.Context) {
	id := c.Param("id")
	if err := ac.registrations.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "registration not found"})
			return
		}
		logger.Error.Printf("[DeleteRegistration] delete %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type bulkEmailRequest struct {
	Segment string `json:"segment"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// BulkEmail sends an announcement to a registrant segment (confirmed,
// waitlist, or all) and reports how many messages went out.
func (ac *AdminController) BulkEmail(c *gin.Context) {
	var req bulkEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sent, err := ac.registrations.BulkEmail(c.Request.Context(), req.Segment, req.Subject, req.HTML)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
			return
		}
		logger.Error.Printf("[BulkEmail] segment %s failed: %v", req.Segment, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bulk email failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}

// ------------------ free-call slots ------------------

type createSlotRequest struct {
	StartsAt time.Time `json:"starts_at"`
	Minutes  int       `json:"minutes"`
}

// CreateSlot opens a new free-call slot.
func (ac *AdminController) CreateSlot(c *gin.Context) {
	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.StartsAt.IsZero() || req.Minutes <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "starts_at and a positive minutes are required"})
		return
	}

	slot, err := ac.booking.CreateSlot(c.Request.Context(), req.StartsAt, req.Minutes)
	if err != nil {
		logger.Error.Printf("[CreateSlot] create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create slot"})
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// DeleteSlot removes a slot.
func (ac *AdminController) DeleteSlot(c *gin.Context) {
	id := c.Param("id")
	if err := ac.booking.DeleteSlot(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "slot not found"})
			return
		}
		logger.Error.Printf("[DeleteSlot] delete %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete slot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListReservations returns all call reservations, newest first.
func (ac *AdminController) ListReservations(c *gin.Context) {
	reservations, err := ac.booking.ListReservations(c.Request.Context())
	if err != nil {
		logger.Error.Printf("[ListReservations] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reservations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations, "count": len(reservations)})
}

// ------------------ products ------------------

// CreateProduct adds a digital product.
func (ac *AdminController) CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if p.Slug == "" || p.TitleAr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug and title_ar are required"})
		return
	}

	created, err := ac.products.Create(c.Request.Context(), p)
	if err != nil {
		logger.Error.Printf("[CreateProduct] create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProduct replaces a product's editable fields.
func (ac *AdminController) UpdateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p.ID = c.Param("id")

	if err := ac.products.Update(c.Request.Context(), p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		logger.Error.Printf("[UpdateProduct] update %s failed: %v", p.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteProduct removes a product.
func (ac *AdminController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := ac.products.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		logger.Error.Printf("[DeleteProduct] delete %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
