// Package services holds the business services behind the HTTP handlers.
// File: services/registration_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
	"github.com/dalibouzir/MeriemBooking-sub000/models"
	"github.com/dalibouzir/MeriemBooking-sub000/store"
)

// emailPattern is deliberately loose: one @, no whitespace, a dot in the
// domain. Real validation happens when the confirmation email is delivered.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError rejects malformed input before it reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RegistrationStoreInterface is the slice of the store the service needs.
type RegistrationStoreInterface interface {
	Register(ctx context.Context, name, email, phone string) (store.RegisterOutcome, error)
	Promote(ctx context.Context, id string) error
	Stats(ctx context.Context) (models.ChallengeStats, error)
	MarkLinkCopied(ctx context.Context, id string) error
	MarkLinkSaved(ctx context.Context, id string) error
	List(ctx context.Context, filter models.RegistrationFilter) ([]models.ChallengeRegistration, error)
	Emails(ctx context.Context, status string) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// SettingsReader supplies the meeting link and schedule for confirmations.
type SettingsReader interface {
	Get(ctx context.Context) (*models.ChallengeSettings, error)
}

// StatsBroadcaster pushes a fresh stats projection to connected admin
// dashboards. Implemented by the websocket package.
type StatsBroadcaster interface {
	BroadcastStats(stats models.ChallengeStats)
}

// RegistrationServiceInterface is what the controllers depend on.
type RegistrationServiceInterface interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.RegistrationResult, error)
	Stats(ctx context.Context) (models.ChallengeStats, error)
	Promote(ctx context.Context, id string) error
	MarkLinkCopied(id string) bool
	MarkLinkSaved(id string) bool
	List(ctx context.Context, filter models.RegistrationFilter) ([]models.ChallengeRegistration, error)
	Delete(ctx context.Context, id string) error
	BulkEmail(ctx context.Context, segment, subject, html string) (int, error)
}

// RegistrationService orchestrates the registration flow: validation, the
// atomic store decision, then the fire-and-forget side effects (email,
// pixel, dashboard broadcast). Side effects never change the committed
// registration.
type RegistrationService struct {
	store       RegistrationStoreInterface
	settings    SettingsReader
	mailer      EmailServiceInterface
	pixel       PixelServiceInterface
	broadcaster StatsBroadcaster
}

var _ RegistrationServiceInterface = (*RegistrationService)(nil)

// NewRegistrationService creates the service. mailer, pixel and broadcaster
// may be nil, which disables the corresponding side effect.
func NewRegistrationService(
	st RegistrationStoreInterface,
	settings SettingsReader,
	mailer EmailServiceInterface,
	pixel PixelServiceInterface,
	broadcaster StatsBroadcaster,
) *RegistrationService {
	return &RegistrationService{
		store:       st,
		settings:    settings,
		mailer:      mailer,
		pixel:       pixel,
		broadcaster: broadcaster,
	}
}

// ---------------- registration ----------------

// Register validates the input, runs the atomic registration, and maps the
// store outcome to the client-facing result. Expected business outcomes
// (duplicate email, full challenge) are results, not errors; only store
// failures return the error status.
func (s *RegistrationService) Register(ctx context.Context, req models.RegisterRequest) (models.RegistrationResult, error) {
	if err := validateRegistration(req); err != nil {
		return models.RegistrationResult{}, err
	}

	email := store.NormalizeEmail(req.Email)
	out, err := s.store.Register(ctx, strings.TrimSpace(req.Name), email, strings.TrimSpace(req.Phone))
	if err != nil {
		var dup *store.AlreadyRegisteredError
		switch {
		case errors.As(err, &dup):
			logger.Info.Printf("[RegistrationService.Register] already_registered for %s", email)
			return models.RegistrationResult{
				Status:         models.OutcomeAlreadyRegistered,
				RegistrationID: dup.ID,
				ExistingStatus: dup.Status,
			}, nil
		case errors.Is(err, store.ErrChallengeClosed):
			return models.RegistrationResult{
				Status: models.OutcomeError,
				Error:  "registration is currently closed",
			}, nil
		default:
			// detail stays in the server log; the caller gets a safe message
			logger.Error.Printf("[RegistrationService.Register] store failure: %v", err)
			return models.RegistrationResult{
				Status: models.OutcomeError,
				Error:  "registration failed, please try again",
			}, nil
		}
	}

	result := models.RegistrationResult{
		RegistrationID: out.RegistrationID,
		Remaining:      &out.Remaining,
	}
	if out.Status == models.StatusConfirmed {
		result.Status = models.OutcomeSuccess
	} else {
		result.Status = models.OutcomeFull
	}

	// side effects are best-effort and must never delay or undo the
	// committed registration
	go s.sendConfirmation(strings.TrimSpace(req.Name), email, out.Status)
	go s.forwardPixelEvent(email, out.Status)
	go s.broadcastStats()

	return result, nil
}

func validateRegistration(req models.RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	email := store.NormalizeEmail(req.Email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "email is not valid"}
	}
	return nil
}

// ---------------- side effects ----------------

func (s *RegistrationService) sendConfirmation(name, email, status string) {
	if s.mailer == nil {
		return
	}

	settings, err := s.settings.Get(context.Background())
	if err != nil {
		logger.Error.Printf("[RegistrationService.sendConfirmation] cannot load settings for %s: %v", email, err)
		return
	}

	var subject, body string
	if status == models.StatusConfirmed {
		subject = "مقعدك مؤكد — Your seat is confirmed"
		body = fmt.Sprintf(
			`<p>أهلاً %s، تم تأكيد تسجيلك في التحدي.</p>
<p>Hi %s, your registration is confirmed.</p>
<p>Join link: <a href="%s">%s</a></p>`,
			name, name, settings.MeetingURL, settings.MeetingURL)
	} else {
		subject = "أنت على قائمة الانتظار — You are on the waitlist"
		body = fmt.Sprintf(
			`<p>أهلاً %s، التحدي مكتمل حالياً وتمت إضافتك إلى قائمة الانتظار.</p>
<p>Hi %s, the challenge is currently full and you have been added to the waitlist. We will email you as soon as a seat frees up.</p>`,
			name, name)
	}

	if err := s.mailer.Send(email, subject, body); err != nil {
		logger.Error.Printf("[RegistrationService.sendConfirmation] send to %s failed: %v", email, err)
	}
}

func (s *RegistrationService) forwardPixelEvent(email, status string) {
	if s.pixel == nil {
		return
	}
	event := "CompleteRegistration"
	if status == models.StatusWaitlist {
		event = "Lead"
	}
	if err := s.pixel.Forward(event, email); err != nil {
		logger.Warn.Printf("[RegistrationService.forwardPixelEvent] %s for %s failed: %v", event, email, err)
	}
}

func (s *RegistrationService) broadcastStats() {
	if s.broadcaster == nil {
		return
	}
	stats, err := s.store.Stats(context.Background())
	if err != nil {
		logger.Warn.Printf("[RegistrationService.broadcastStats] stats read failed: %v", err)
		return
	}
	s.broadcaster.BroadcastStats(stats)
}

// ---------------- reads & admin operations ----------------

// Stats returns the capacity projection.
func (s *RegistrationService) Stats(ctx context.Context) (models.ChallengeStats, error) {
	return s.store.Stats(ctx)
}

// Promote flips a waitlisted registration to confirmed and, on success,
// emails the registrant the meeting link and refreshes the dashboards.
func (s *RegistrationService) Promote(ctx context.Context, id string) error {
	if err := s.store.Promote(ctx, id); err != nil {
		return err
	}

	go s.notifyPromoted(id)
	go s.broadcastStats()
	return nil
}

func (s *RegistrationService) notifyPromoted(id string) {
	if s.mailer == nil {
		return
	}

	regs, err := s.store.List(context.Background(), models.RegistrationFilter{Status: models.StatusConfirmed})
	if err != nil {
		logger.Warn.Printf("[RegistrationService.notifyPromoted] lookup after promoting %s failed: %v", id, err)
		return
	}
	for _, reg := range regs {
		if reg.ID == id {
			s.sendConfirmation(reg.Name, reg.Email, models.StatusConfirmed)
			return
		}
	}
}

// MarkLinkCopied stamps the copy-engagement timestamp. Analytics only:
// failures are logged and reported as false, never escalated.
func (s *RegistrationService) MarkLinkCopied(id string) bool {
	if err := s.store.MarkLinkCopied(context.Background(), id); err != nil {
		logger.Warn.Printf("[RegistrationService.MarkLinkCopied] %s: %v", id, err)
		return false
	}
	return true
}

// MarkLinkSaved stamps the save-engagement timestamp, same contract as
// MarkLinkCopied.
func (s *RegistrationService) MarkLinkSaved(id string) bool {
	if err := s.store.MarkLinkSaved(context.Background(), id); err != nil {
		logger.Warn.Printf("[RegistrationService.MarkLinkSaved] %s: %v", id, err)
		return false
	}
	return true
}

// List returns registrations for the admin dashboard.
func (s *RegistrationService) List(ctx context.Context, filter models.RegistrationFilter) ([]models.ChallengeRegistration, error) {
	return s.store.List(ctx, filter)
}

// Delete removes a registration and refreshes the dashboards. The freed
// seat is only handed out by a later registration or promotion.
func (s *RegistrationService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	go s.broadcastStats()
	return nil
}

// BulkEmail sends a campaign to a registration segment ("confirmed",
// "waitlist" or "all"). Best-effort: per-recipient failures are logged and
// skipped; the count of successful sends is returned.
func (s *RegistrationService) BulkEmail(ctx context.Context, segment, subject, html string) (int, error) {
	if s.mailer == nil {
		return 0, errors.New("email dispatch is not configured")
	}

	status := ""
	switch segment {
	case "confirmed":
		status = models.StatusConfirmed
	case "waitlist":
		status = models.StatusWaitlist
	case "all", "":
	default:
		return 0, &ValidationError{Field: "segment", Message: "must be confirmed, waitlist or all"}
	}

	emails, err := s.store.Emails(ctx, status)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, email := range emails {
		if err := s.mailer.Send(email, subject, html); err != nil {
			logger.Warn.Printf("[RegistrationService.BulkEmail] send to %s failed: %v", email, err)
			continue
		}
		sent++
	}
	logger.Info.Printf("[RegistrationService.BulkEmail] segment=%s sent=%d/%d", segment, sent, len(emails))
	return sent, nil
}
