// File: models/booking.go
package models

import "time"

// ----------------------- free-call booking -----------------------

// FreeCallSlot is a single bookable discovery-call slot. Each slot holds
// exactly one reservation; a slot with is_booked set is no longer offered.
type FreeCallSlot struct {
	ID       string    `json:"id" db:"id"`
	StartsAt time.Time `json:"starts_at" db:"starts_at"`
	Minutes  int       `json:"minutes" db:"minutes"`
	IsOpen   bool      `json:"is_open" db:"is_open"`
	IsBooked bool      `json:"is_booked" db:"is_booked"`
}

// CallReservation records who booked a slot. CalendarEventID is filled in
// after the calendar invite is created, best-effort.
type CallReservation struct {
	ID              string    `json:"id" db:"id"`
	SlotID          string    `json:"slot_id" db:"slot_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	Name            string    `json:"name" db:"name"`
	Email           string    `json:"email" db:"email"`
	Phone           string    `json:"phone" db:"phone"`
	Notes           string    `json:"notes" db:"notes"`
	CalendarEventID string    `json:"calendar_event_id" db:"calendar_event_id"`
}

// BookSlotRequest is the payload for reserving a free-call slot.
type BookSlotRequest struct {
	SlotID string `json:"slot_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Notes  string `json:"notes"`
}
