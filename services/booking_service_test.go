// file: services/booking_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dalibouzir/MeriemBooking-sub000/models"
	"github.com/dalibouzir/MeriemBooking-sub000/store"
)

type mockSlotStore struct {
	mock.Mock
}

func (m *mockSlotStore) GetSlot(ctx context.Context, id string) (*models.FreeCallSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FreeCallSlot), args.Error(1)
}

func (m *mockSlotStore) ListOpen(ctx context.Context) ([]models.FreeCallSlot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.FreeCallSlot), args.Error(1)
}

func (m *mockSlotStore) Reserve(ctx context.Context, req models.BookSlotRequest) (*models.CallReservation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CallReservation), args.Error(1)
}

func (m *mockSlotStore) SetCalendarEventID(ctx context.Context, reservationID, eventID string) error {
	args := m.Called(ctx, reservationID, eventID)
	return args.Error(0)
}

func (m *mockSlotStore) CreateSlot(ctx context.Context, startsAt time.Time, minutes int) (*models.FreeCallSlot, error) {
	args := m.Called(ctx, startsAt, minutes)
	return args.Get(0).(*models.FreeCallSlot), args.Error(1)
}

func (m *mockSlotStore) DeleteSlot(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSlotStore) ListReservations(ctx context.Context) ([]models.CallReservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CallReservation), args.Error(1)
}

type fakeCalendar struct {
	created chan string
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, slot models.FreeCallSlot, res models.CallReservation) (string, error) {
	f.created <- res.Email
	return "evt-1", nil
}

func TestBook_RejectsInvalidInput(t *testing.T) {
	slots := &mockSlotStore{}
	svc := NewBookingService(slots, nil, nil)

	_, err := svc.Book(context.Background(), models.BookSlotRequest{Name: "Amira", Email: "a@b.com"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "slot_id", verr.Field)

	_, err = svc.Book(context.Background(), models.BookSlotRequest{SlotID: "slot-1", Name: "Amira", Email: "nope"})
	assert.ErrorAs(t, err, &verr)
	slots.AssertNotCalled(t, "Reserve")
}

func TestBook_ReservesAndCreatesInvite(t *testing.T) {
	slot := &models.FreeCallSlot{ID: "slot-1", StartsAt: time.Now().Add(24 * time.Hour), Minutes: 30}
	req := models.BookSlotRequest{SlotID: "slot-1", Name: "Amira", Email: "amira@example.com"}

	slots := &mockSlotStore{}
	slots.On("GetSlot", mock.Anything, "slot-1").Return(slot, nil)
	slots.On("Reserve", mock.Anything, req).
		Return(&models.CallReservation{ID: "res-1", SlotID: "slot-1", Name: "Amira", Email: "amira@example.com"}, nil)
	slots.On("SetCalendarEventID", mock.Anything, "res-1", "evt-1").Return(nil)

	calendar := &fakeCalendar{created: make(chan string, 1)}
	mailer := newFakeMailer()

	svc := NewBookingService(slots, calendar, mailer)
	res, err := svc.Book(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "res-1", res.ID)

	assert.Equal(t, "amira@example.com", waitFor(t, calendar.created))
	assert.Equal(t, "amira@example.com", waitFor(t, mailer.sent))
}

func TestBook_SlotUnavailable(t *testing.T) {
	slot := &models.FreeCallSlot{ID: "slot-1"}
	slots := &mockSlotStore{}
	slots.On("GetSlot", mock.Anything, "slot-1").Return(slot, nil)
	slots.On("Reserve", mock.Anything, mock.Anything).Return(nil, store.ErrSlotUnavailable)

	svc := NewBookingService(slots, nil, nil)
	_, err := svc.Book(context.Background(), models.BookSlotRequest{SlotID: "slot-1", Name: "Amira", Email: "amira@example.com"})
	assert.ErrorIs(t, err, store.ErrSlotUnavailable)
}
