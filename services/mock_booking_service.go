// File: services/mock_booking_service.go
package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dalibouzir/MeriemBooking-sub000/models"
)

// Ensure MockBookingService implements BookingServiceInterface
var _ BookingServiceInterface = (*MockBookingService)(nil)

// MockBookingService is a mock implementation for controller tests.
type MockBookingService struct {
	mock.Mock
}

// ListOpenSlots (Mocked)
func (m *MockBookingService) ListOpenSlots(ctx context.Context) ([]models.FreeCallSlot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.FreeCallSlot), args.Error(1)
}

// Book (Mocked)
func (m *MockBookingService) Book(ctx context.Context, req models.BookSlotRequest) (*models.CallReservation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CallReservation), args.Error(1)
}

// CreateSlot (Mocked)
func (m *MockBookingService) CreateSlot(ctx context.Context, startsAt time.Time, minutes int) (*models.FreeCallSlot, error) {
	args := m.Called(ctx, startsAt, minutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FreeCallSlot), args.Error(1)
}

// DeleteSlot (Mocked)
func (m *MockBookingService) DeleteSlot(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListReservations (Mocked)
func (m *MockBookingService) ListReservations(ctx context.Context) ([]models.CallReservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CallReservation), args.Error(1)
}
