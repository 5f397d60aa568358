// Package models defines data structures used across the application.
// File: models/challenge.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// ----------------------- registration status -----------------------

// Registration statuses. A registration is either holding a seat within
// capacity or parked on the waitlist; there is no third state.
const (
	StatusConfirmed = "confirmed"
	StatusWaitlist  = "waitlist"
)

// Registration outcomes returned to the client.
const (
	OutcomeSuccess           = "success"
	OutcomeFull              = "full"
	OutcomeAlreadyRegistered = "already_registered"
	OutcomeError             = "error"
)

// ----------------------- challenge settings -----------------------

// FAQItem is one question/answer pair shown on the challenge page.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ChallengeSettings is the singleton configuration row for the challenge:
// the capacity ceiling, the schedule, and the display copy.
type ChallengeSettings struct {
	ID              int            `json:"id" db:"id"`
	Title           string         `json:"title" db:"title"`
	Subtitle        string         `json:"subtitle" db:"subtitle"`
	Description     string         `json:"description" db:"description"`
	Benefits        pq.StringArray `json:"benefits" db:"benefits"`
	Requirements    pq.StringArray `json:"requirements" db:"requirements"`
	FAQ             []FAQItem      `json:"faq" db:"-"`
	FAQRaw          []byte         `json:"-" db:"faq"`
	Capacity        int            `json:"capacity" db:"capacity"`
	MeetingURL      string         `json:"meeting_url" db:"meeting_url"`
	StartsAt        time.Time      `json:"starts_at" db:"starts_at"`
	DurationMinutes int            `json:"duration_minutes" db:"duration_minutes"`
	Timezone        string         `json:"timezone" db:"timezone"`
	IsActive        bool           `json:"is_active" db:"is_active"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// ChallengeSettingsPatch carries a partial update of the settings row.
// Nil fields keep their prior values; updated_at is refreshed on every call.
type ChallengeSettingsPatch struct {
	Title           *string    `json:"title"`
	Subtitle        *string    `json:"subtitle"`
	Description     *string    `json:"description"`
	Benefits        []string   `json:"benefits"`
	Requirements    []string   `json:"requirements"`
	FAQ             []FAQItem  `json:"faq"`
	Capacity        *int       `json:"capacity"`
	MeetingURL      *string    `json:"meeting_url"`
	StartsAt        *time.Time `json:"starts_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	Timezone        *string    `json:"timezone"`
	IsActive        *bool      `json:"is_active"`
}

// ----------------------- registration model -----------------------

// ChallengeRegistration is one registrant, confirmed or waitlisted.
// Email is stored normalized (trimmed, lowercased) and acts as the natural
// dedup key.
type ChallengeRegistration struct {
	ID           string     `json:"id" db:"id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	Phone        string     `json:"phone" db:"phone"`
	Status       string     `json:"status" db:"status"`
	LinkCopiedAt *time.Time `json:"link_copied_at" db:"link_copied_at"`
	LinkSavedAt  *time.Time `json:"link_saved_at" db:"link_saved_at"`
}

// RegisterRequest is the payload for a registration attempt.
type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// RegistrationResult is the outcome of one registration attempt, as decided
// by the atomic registration transaction. RegistrationID and Remaining are
// present on success/full; ExistingStatus is present on already_registered.
type RegistrationResult struct {
	Status         string `json:"status"`
	RegistrationID string `json:"registration_id,omitempty"`
	Remaining      *int   `json:"remaining,omitempty"`
	ExistingStatus string `json:"existing_status,omitempty"`
	Error          string `json:"error,omitempty"`
	Message        string `json:"message,omitempty"`
}

// ----------------------- stats projection -----------------------

// ChallengeStats is the read-side capacity projection shown in the UI and
// consulted by the promotion flow.
type ChallengeStats struct {
	Capacity       int `json:"capacity" db:"capacity"`
	ConfirmedCount int `json:"confirmed_count" db:"confirmed_count"`
	WaitlistCount  int `json:"waitlist_count" db:"waitlist_count"`
	Remaining      int `json:"remaining" db:"-"`
}

// IsFull reports whether no confirmed seats remain.
func (s ChallengeStats) IsFull() bool {
	return s.ConfirmedCount >= s.Capacity
}

// ----------------------- admin listing -----------------------

// RegistrationFilter narrows the admin registration listing.
type RegistrationFilter struct {
	Status string // "", "confirmed" or "waitlist"
	Search string // matches name or email, case-insensitive
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}
