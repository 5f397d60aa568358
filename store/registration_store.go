// File: store/registration_store.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
	"github.com/dalibouzir/MeriemBooking-sub000/models"
)

// RegistrationStore owns all reads and writes on challenge_registrations.
type RegistrationStore struct {
	db *sqlx.DB
}

// NewRegistrationStore creates a RegistrationStore on the given connection.
func NewRegistrationStore(db *sqlx.DB) *RegistrationStore {
	return &RegistrationStore{db: db}
}

// RegisterOutcome is the decision of one registration transaction.
type RegisterOutcome struct {
	RegistrationID string
	Status         string // confirmed or waitlist
	Remaining      int
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Every email comparison in this store goes through this normalization.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ---------------- atomic registration ----------------

// Register decides confirmed-vs-waitlist placement for one registrant and
// inserts the row, all inside a single transaction. The settings row is
// locked FOR UPDATE first, which serializes concurrent registrations on the
// same capacity pool: the confirmed count read below cannot go stale before
// the insert commits, so confirmed rows can never exceed capacity.
func (s *RegistrationStore) Register(ctx context.Context, name, email, phone string) (RegisterOutcome, error) {
	var out RegisterOutcome
	email = NormalizeEmail(email)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return out, fmt.Errorf("begin registration tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var settings struct {
		Capacity int  `db:"capacity"`
		IsActive bool `db:"is_active"`
	}
	err = tx.GetContext(ctx, &settings,
		`SELECT capacity, is_active FROM challenge_settings WHERE id = 1 FOR UPDATE`)
	if err != nil {
		return out, fmt.Errorf("lock challenge settings: %w", err)
	}
	if !settings.IsActive {
		return out, ErrChallengeClosed
	}

	// dedup check inside the same transaction as the insert
	var existing struct {
		ID     string `db:"id"`
		Status string `db:"status"`
	}
	err = tx.GetContext(ctx, &existing,
		`SELECT id, status FROM challenge_registrations WHERE lower(email) = $1`, email)
	if err == nil {
		logger.Info.Printf("[RegistrationStore.Register] Duplicate registration attempt for %s (existing status=%s)", email, existing.Status)
		return out, &AlreadyRegisteredError{ID: existing.ID, Status: existing.Status}
	}
	if err != sql.ErrNoRows {
		return out, fmt.Errorf("check existing registration: %w", err)
	}

	var confirmed int
	err = tx.GetContext(ctx, &confirmed,
		`SELECT count(*) FROM challenge_registrations WHERE status = $1`, models.StatusConfirmed)
	if err != nil {
		return out, fmt.Errorf("count confirmed registrations: %w", err)
	}

	status := models.StatusConfirmed
	remaining := settings.Capacity - confirmed - 1
	if confirmed >= settings.Capacity {
		status = models.StatusWaitlist
		remaining = 0
	}

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO challenge_registrations (id, name, email, phone, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, name, email, phone, status)
	if err != nil {
		return out, fmt.Errorf("insert registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return out, fmt.Errorf("commit registration: %w", err)
	}

	logger.Info.Printf("[RegistrationStore.Register] %s registered as %s (remaining=%d)", email, status, remaining)
	out = RegisterOutcome{RegistrationID: id, Status: status, Remaining: remaining}
	return out, nil
}

// ---------------- promotion ----------------

// Promote flips one waitlisted registration to confirmed, re-checking
// capacity under the same settings lock the registration path takes. The
// conditional UPDATE makes the check-then-write atomic: a registration that
// is not on the waitlist, or a pool with no free seats, mutates nothing.
func (s *RegistrationStore) Promote(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin promotion tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var capacity int
	err = tx.GetContext(ctx, &capacity,
		`SELECT capacity FROM challenge_settings WHERE id = 1 FOR UPDATE`)
	if err != nil {
		return fmt.Errorf("lock challenge settings: %w", err)
	}

	var confirmed int
	err = tx.GetContext(ctx, &confirmed,
		`SELECT count(*) FROM challenge_registrations WHERE status = $1`, models.StatusConfirmed)
	if err != nil {
		return fmt.Errorf("count confirmed registrations: %w", err)
	}
	if confirmed >= capacity {
		logger.Warn.Printf("[RegistrationStore.Promote] Rejected promotion of %s: %d/%d seats taken", id, confirmed, capacity)
		return ErrNoCapacity
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE challenge_registrations SET status = $1 WHERE id = $2 AND status = $3`,
		models.StatusConfirmed, id, models.StatusWaitlist)
	if err != nil {
		return fmt.Errorf("promote registration: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("promote registration: %w", err)
	}
	if rows == 0 {
		// distinguish a missing row from one in the wrong status
		var status string
		err = tx.GetContext(ctx, &status,
			`SELECT status FROM challenge_registrations WHERE id = $1`, id)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("look up registration %s: %w", id, err)
		}
		return ErrNotWaitlisted
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit promotion: %w", err)
	}

	logger.Info.Printf("[RegistrationStore.Promote] Promoted %s to confirmed (%d/%d seats now taken)", id, confirmed+1, capacity)
	return nil
}

// ---------------- stats projection ----------------

// Stats computes the read-side capacity projection. Read-committed is
// enough here: anything that gates a write re-checks under the settings
// lock.
func (s *RegistrationStore) Stats(ctx context.Context) (models.ChallengeStats, error) {
	var stats models.ChallengeStats
	err := s.db.GetContext(ctx, &stats, `
		SELECT s.capacity,
		       (SELECT count(*) FROM challenge_registrations WHERE status = 'confirmed') AS confirmed_count,
		       (SELECT count(*) FROM challenge_registrations WHERE status = 'waitlist')  AS waitlist_count
		FROM challenge_settings s
		WHERE s.id = 1`)
	if err != nil {
		return stats, fmt.Errorf("compute challenge stats: %w", err)
	}

	stats.Remaining = stats.Capacity - stats.ConfirmedCount
	if stats.Remaining < 0 {
		stats.Remaining = 0
	}
	return stats, nil
}

// ---------------- engagement marks ----------------

// MarkLinkCopied stamps link_copied_at with the current time. Repeated
// calls refresh the timestamp; this feeds engagement analytics only.
func (s *RegistrationStore) MarkLinkCopied(ctx context.Context, id string) error {
	return s.markEngagement(ctx, "link_copied_at", id)
}

// MarkLinkSaved stamps link_saved_at with the current time.
func (s *RegistrationStore) MarkLinkSaved(ctx context.Context, id string) error {
	return s.markEngagement(ctx, "link_saved_at", id)
}

func (s *RegistrationStore) markEngagement(ctx context.Context, column, id string) error {
	// column is one of two hard-coded names, never caller input
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE challenge_registrations SET %s = now() WHERE id = $1`, column), id)
	if err != nil {
		return fmt.Errorf("mark %s: %w", column, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark %s: %w", column, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- admin listing ----------------

// List returns registrations matching the filter, newest first.
func (s *RegistrationStore) List(ctx context.Context, filter models.RegistrationFilter) ([]models.ChallengeRegistration, error) {
	query := `SELECT id, created_at, name, email, phone, status, link_copied_at, link_saved_at
	          FROM challenge_registrations`
	var conds []string
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conds = append(conds, fmt.Sprintf("(lower(name) LIKE $%d OR lower(email) LIKE $%d)", len(args), len(args)))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.Until != nil {
		args = append(args, *filter.Until)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	regs := []models.ChallengeRegistration{}
	if err := s.db.SelectContext(ctx, &regs, query, args...); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

// Emails returns the normalized addresses of registrations in the given
// status, or of everyone when status is empty. Used by the bulk email send.
func (s *RegistrationStore) Emails(ctx context.Context, status string) ([]string, error) {
	query := `SELECT email FROM challenge_registrations`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}

	emails := []string{}
	if err := s.db.SelectContext(ctx, &emails, query, args...); err != nil {
		return nil, fmt.Errorf("list registration emails: %w", err)
	}
	return emails, nil
}

// Delete removes a registration outright. Freed seats are only handed out
// by later registrations or promotions; nothing is reshuffled here.
func (s *RegistrationStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM challenge_registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	logger.Info.Printf("[RegistrationStore.Delete] Deleted registration %s", id)
	return nil
}
