// Package controllers controllers/challenge_controller.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
	"github.com/dalibouzir/MeriemBooking-sub000/middleware"
	"github.com/dalibouzir/MeriemBooking-sub000/models"
	"github.com/dalibouzir/MeriemBooking-sub000/services"
)

// ChallengeController serves the public challenge endpoints: the landing
// data, registration, stats, and the post-registration engagement marks.
type ChallengeController struct {
	service  services.RegistrationServiceInterface
	settings services.SettingsReader
	appURL   string
}

// NewChallengeController creates a new ChallengeController.
func NewChallengeController(service services.RegistrationServiceInterface, settings services.SettingsReader, appURL string) *ChallengeController {
	return &ChallengeController{service: service, settings: settings, appURL: appURL}
}

// publicSettings is the challenge page payload. The meeting link is
// deliberately absent; registrants receive it by email only.
type publicSettings struct {
	Title           string           `json:"title"`
	Subtitle        string           `json:"subtitle"`
	Description     string           `json:"description"`
	Benefits        []string         `json:"benefits"`
	Requirements    []string         `json:"requirements"`
	FAQ             []models.FAQItem `json:"faq"`
	StartsAt        string           `json:"starts_at"`
	DurationMinutes int              `json:"duration_minutes"`
	Timezone        string           `json:"timezone"`
	IsActive        bool             `json:"is_active"`
}

// GetChallenge returns the public challenge settings plus the live
// capacity projection.
func (cc *ChallengeController) GetChallenge(c *gin.Context) {
	settings, err := cc.settings.Get(c.Request.Context())
	if err != nil {
		logger.Error.Printf("[GetChallenge] failed to load settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load challenge"})
		return
	}
	stats, err := cc.service.Stats(c.Request.Context())
	if err != nil {
		logger.Error.Printf("[GetChallenge] failed to load stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"challenge": publicSettings{
			Title:           settings.Title,
			Subtitle:        settings.Subtitle,
			Description:     settings.Description,
			Benefits:        settings.Benefits,
			Requirements:    settings.Requirements,
			FAQ:             settings.FAQ,
			StartsAt:        settings.StartsAt.UTC().Format(time.RFC3339),
			DurationMinutes: settings.DurationMinutes,
			Timezone:        settings.Timezone,
			IsActive:        settings.IsActive,
		},
		"stats": stats,
	})
}

// Register handles a registration attempt. The outcome (seat, waitlist,
// duplicate) is decided atomically in the store; this handler only maps it
// onto HTTP and attaches the localized message.
func (cc *ChallengeController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": models.OutcomeError, "error": "invalid request body"})
		return
	}

	lang := middleware.Lang(c)
	result, err := cc.service.Register(c.Request.Context(), req)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"status": models.OutcomeError, "field": verr.Field, "error": verr.Message})
			return
		}
		logger.Error.Printf("[Register] unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": models.OutcomeError, "error": outcomeMessage(models.OutcomeError, lang)})
		return
	}

	result.Message = outcomeMessage(result.Status, lang)
	switch result.Status {
	case models.OutcomeSuccess:
		c.JSON(http.StatusCreated, result)
	case models.OutcomeError:
		c.JSON(http.StatusServiceUnavailable, result)
	default: // full, already_registered
		c.JSON(http.StatusOK, result)
	}
}

// GetStats returns the capacity projection on its own, for pages that
// poll the seat counter.
func (cc *ChallengeController) GetStats(c *gin.Context) {
	stats, err := cc.service.Stats(c.Request.Context())
	if err != nil {
		logger.Error.Printf("[GetStats] failed to load stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// MarkLinkCopied records that a registrant copied the meeting link.
// Best-effort: an unknown id is reported but never an error page.
func (cc *ChallengeController) MarkLinkCopied(c *gin.Context) {
	ok := cc.service.MarkLinkCopied(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"ok": ok})
}

// MarkLinkSaved records that a registrant saved the meeting invite.
func (cc *ChallengeController) MarkLinkSaved(c *gin.Context) {
	ok := cc.service.MarkLinkSaved(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"ok": ok})
}

// QRCode serves a PNG QR code pointing at the challenge page, for print
// material and story posts.
func (cc *ChallengeController) QRCode(c *gin.Context) {
	png, err := services.GenerateQRCode(cc.appURL+"/challenge", 256, nil)
	if err != nil {
		logger.Error.Printf("[QRCode] generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
