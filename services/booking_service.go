// File: services/booking_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
	"github.com/dalibouzir/MeriemBooking-sub000/models"
	"github.com/dalibouzir/MeriemBooking-sub000/store"
)

// SlotStoreInterface is the slice of the slot store the booking flow needs.
type SlotStoreInterface interface {
	GetSlot(ctx context.Context, id string) (*models.FreeCallSlot, error)
	ListOpen(ctx context.Context) ([]models.FreeCallSlot, error)
	Reserve(ctx context.Context, req models.BookSlotRequest) (*models.CallReservation, error)
	SetCalendarEventID(ctx context.Context, reservationID, eventID string) error
	CreateSlot(ctx context.Context, startsAt time.Time, minutes int) (*models.FreeCallSlot, error)
	DeleteSlot(ctx context.Context, id string) error
	ListReservations(ctx context.Context) ([]models.CallReservation, error)
}

// BookingServiceInterface is what the booking controller depends on.
type BookingServiceInterface interface {
	ListOpenSlots(ctx context.Context) ([]models.FreeCallSlot, error)
	Book(ctx context.Context, req models.BookSlotRequest) (*models.CallReservation, error)
	CreateSlot(ctx context.Context, startsAt time.Time, minutes int) (*models.FreeCallSlot, error)
	DeleteSlot(ctx context.Context, id string) error
	ListReservations(ctx context.Context) ([]models.CallReservation, error)
}

// BookingService reserves free-call slots and fires the calendar invite
// and confirmation email afterwards, best-effort.
type BookingService struct {
	slots    SlotStoreInterface
	calendar CalendarServiceInterface
	mailer   EmailServiceInterface
}

var _ BookingServiceInterface = (*BookingService)(nil)

// NewBookingService creates the booking service. calendar and mailer may
// be nil, which disables the corresponding side effect.
func NewBookingService(slots SlotStoreInterface, calendar CalendarServiceInterface, mailer EmailServiceInterface) *BookingService {
	return &BookingService{slots: slots, calendar: calendar, mailer: mailer}
}

// ListOpenSlots returns the bookable slots.
func (s *BookingService) ListOpenSlots(ctx context.Context) ([]models.FreeCallSlot, error) {
	return s.slots.ListOpen(ctx)
}

// Book validates the request, reserves the slot atomically, then creates
// the calendar invite and emails the caller without blocking the response.
func (s *BookingService) Book(ctx context.Context, req models.BookSlotRequest) (*models.CallReservation, error) {
	if req.SlotID == "" {
		return nil, &ValidationError{Field: "slot_id", Message: "slot_id is required"}
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	email := store.NormalizeEmail(req.Email)
	if !emailPattern.MatchString(email) {
		return nil, &ValidationError{Field: "email", Message: "email is not valid"}
	}

	slot, err := s.slots.GetSlot(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}

	reservation, err := s.slots.Reserve(ctx, req)
	if err != nil {
		return nil, err
	}

	go s.createInvite(*slot, *reservation)
	return reservation, nil
}

func (s *BookingService) createInvite(slot models.FreeCallSlot, res models.CallReservation) {
	ctx := context.Background()

	if s.calendar != nil {
		eventID, err := s.calendar.CreateEvent(ctx, slot, res)
		if err != nil {
			logger.Warn.Printf("[BookingService.createInvite] calendar event for %s failed: %v", res.Email, err)
		} else if err := s.slots.SetCalendarEventID(ctx, res.ID, eventID); err != nil {
			logger.Warn.Printf("[BookingService.createInvite] recording event id for %s failed: %v", res.ID, err)
		}
	}

	if s.mailer != nil {
		body := fmt.Sprintf(
			`<p>أهلاً %s، تم حجز مكالمتك المجانية.</p>
<p>Hi %s, your free discovery call is booked. A calendar invite is on its way.</p>`,
			res.Name, res.Name)
		if err := s.mailer.Send(res.Email, "تم تأكيد حجزك — Your call is booked", body); err != nil {
			logger.Warn.Printf("[BookingService.createInvite] confirmation email to %s failed: %v", res.Email, err)
		}
	}
}

// CreateSlot opens a new bookable slot (admin).
func (s *BookingService) CreateSlot(ctx context.Context, startsAt time.Time, minutes int) (*models.FreeCallSlot, error) {
	if minutes <= 0 {
		minutes = 30
	}
	return s.slots.CreateSlot(ctx, startsAt, minutes)
}

// DeleteSlot removes a slot (admin).
func (s *BookingService) DeleteSlot(ctx context.Context, id string) error {
	return s.slots.DeleteSlot(ctx, id)
}

// ListReservations returns every reservation (admin).
func (s *BookingService) ListReservations(ctx context.Context) ([]models.CallReservation, error) {
	return s.slots.ListReservations(ctx)
}
