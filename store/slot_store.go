// File: store/slot_store.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
	"github.com/dalibouzir/MeriemBooking-sub000/models"
)

// SlotStore manages free-call slots and their reservations.
type SlotStore struct {
	db *sqlx.DB
}

// NewSlotStore creates a SlotStore on the given connection.
func NewSlotStore(db *sqlx.DB) *SlotStore {
	return &SlotStore{db: db}
}

// GetSlot returns one slot by id.
func (s *SlotStore) GetSlot(ctx context.Context, id string) (*models.FreeCallSlot, error) {
	var slot models.FreeCallSlot
	err := s.db.GetContext(ctx, &slot,
		`SELECT id, starts_at, minutes, is_open, is_booked FROM free_call_slots WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", id, err)
	}
	return &slot, nil
}

// ListOpen returns open, unbooked, future slots, soonest first.
func (s *SlotStore) ListOpen(ctx context.Context) ([]models.FreeCallSlot, error) {
	slots := []models.FreeCallSlot{}
	err := s.db.SelectContext(ctx, &slots,
		`SELECT id, starts_at, minutes, is_open, is_booked
		 FROM free_call_slots
		 WHERE is_open AND NOT is_booked AND starts_at > now()
		 ORDER BY starts_at`)
	if err != nil {
		return nil, fmt.Errorf("list open slots: %w", err)
	}
	return slots, nil
}

// Reserve books a slot for one caller. The conditional UPDATE takes the
// slot atomically: two concurrent reservations on the same slot cannot both
// see it free, so a slot never carries two reservations.
func (s *SlotStore) Reserve(ctx context.Context, req models.BookSlotRequest) (*models.CallReservation, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin reservation tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE free_call_slots SET is_booked = true
		 WHERE id = $1 AND is_open AND NOT is_booked`, req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("take slot: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("take slot: %w", err)
	}
	if rows == 0 {
		logger.Warn.Printf("[SlotStore.Reserve] Slot %s is closed or already booked", req.SlotID)
		return nil, ErrSlotUnavailable
	}

	reservation := &models.CallReservation{
		ID:     uuid.NewString(),
		SlotID: req.SlotID,
		Name:   req.Name,
		Email:  NormalizeEmail(req.Email),
		Phone:  req.Phone,
		Notes:  req.Notes,
	}
	err = tx.GetContext(ctx, &reservation.CreatedAt,
		`INSERT INTO call_reservations (id, slot_id, name, email, phone, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		reservation.ID, reservation.SlotID, reservation.Name,
		reservation.Email, reservation.Phone, reservation.Notes)
	if err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reservation: %w", err)
	}

	logger.Info.Printf("[SlotStore.Reserve] %s reserved slot %s", reservation.Email, req.SlotID)
	return reservation, nil
}

// SetCalendarEventID records the provider event id on a reservation after
// the calendar invite is created. Best-effort bookkeeping.
func (s *SlotStore) SetCalendarEventID(ctx context.Context, reservationID, eventID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE call_reservations SET calendar_event_id = $1 WHERE id = $2`,
		eventID, reservationID)
	if err != nil {
		return fmt.Errorf("set calendar event id: %w", err)
	}
	return nil
}

// CreateSlot opens a new bookable slot.
func (s *SlotStore) CreateSlot(ctx context.Context, startsAt time.Time, minutes int) (*models.FreeCallSlot, error) {
	slot := &models.FreeCallSlot{
		ID:       uuid.NewString(),
		StartsAt: startsAt,
		Minutes:  minutes,
		IsOpen:   true,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO free_call_slots (id, starts_at, minutes) VALUES ($1, $2, $3)`,
		slot.ID, slot.StartsAt, slot.Minutes)
	if err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}
	return slot, nil
}

// DeleteSlot removes a slot and, via the FK cascade, its reservation.
func (s *SlotStore) DeleteSlot(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM free_call_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListReservations returns every reservation, newest first.
func (s *SlotStore) ListReservations(ctx context.Context) ([]models.CallReservation, error) {
	reservations := []models.CallReservation{}
	err := s.db.SelectContext(ctx, &reservations,
		`SELECT id, slot_id, created_at, name, email, phone, notes, calendar_event_id
		 FROM call_reservations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}
