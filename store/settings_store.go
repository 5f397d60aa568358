// File: store/settings_store.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
	"github.com/dalibouzir/MeriemBooking-sub000/models"
)

// SettingsStore reads and patches the singleton challenge_settings row.
type SettingsStore struct {
	db *sqlx.DB
}

// NewSettingsStore creates a SettingsStore on the given connection.
func NewSettingsStore(db *sqlx.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

const settingsColumns = `id, title, subtitle, description, benefits, requirements, faq,
	capacity, meeting_url, starts_at, duration_minutes, timezone, is_active, updated_at`

// Get returns the settings singleton.
func (s *SettingsStore) Get(ctx context.Context) (*models.ChallengeSettings, error) {
	var settings models.ChallengeSettings
	err := s.db.GetContext(ctx, &settings,
		`SELECT `+settingsColumns+` FROM challenge_settings WHERE id = 1`)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load challenge settings: %w", err)
	}

	if err := decodeFAQ(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Patch applies a partial update: only non-nil fields touch the row, and
// updated_at is refreshed on every call. Returns the row after the update.
func (s *SettingsStore) Patch(ctx context.Context, patch models.ChallengeSettingsPatch) (*models.ChallengeSettings, error) {
	sets := []string{"updated_at = now()"}
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Subtitle != nil {
		add("subtitle", *patch.Subtitle)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Benefits != nil {
		add("benefits", pq.StringArray(patch.Benefits))
	}
	if patch.Requirements != nil {
		add("requirements", pq.StringArray(patch.Requirements))
	}
	if patch.FAQ != nil {
		raw, err := json.Marshal(patch.FAQ)
		if err != nil {
			return nil, fmt.Errorf("encode faq: %w", err)
		}
		add("faq", raw)
	}
	if patch.Capacity != nil {
		add("capacity", *patch.Capacity)
	}
	if patch.MeetingURL != nil {
		add("meeting_url", *patch.MeetingURL)
	}
	if patch.StartsAt != nil {
		add("starts_at", *patch.StartsAt)
	}
	if patch.DurationMinutes != nil {
		add("duration_minutes", *patch.DurationMinutes)
	}
	if patch.Timezone != nil {
		add("timezone", *patch.Timezone)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}

	query := `UPDATE challenge_settings SET ` + strings.Join(sets, ", ") +
		` WHERE id = 1 RETURNING ` + settingsColumns

	var settings models.ChallengeSettings
	err := s.db.GetContext(ctx, &settings, query, args...)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("patch challenge settings: %w", err)
	}

	if err := decodeFAQ(&settings); err != nil {
		return nil, err
	}

	logger.Info.Printf("[SettingsStore.Patch] Settings updated (%d fields)", len(sets)-1)
	return &settings, nil
}

func decodeFAQ(settings *models.ChallengeSettings) error {
	settings.FAQ = []models.FAQItem{}
	if len(settings.FAQRaw) == 0 {
		return nil
	}
	if err := json.Unmarshal(settings.FAQRaw, &settings.FAQ); err != nil {
		return fmt.Errorf("decode faq: %w", err)
	}
	return nil
}
