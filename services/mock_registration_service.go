// File: services/mock_registration_service.go
package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dalibouzir/MeriemBooking-sub000/models"
)

// Ensure MockRegistrationService implements RegistrationServiceInterface
var _ RegistrationServiceInterface = (*MockRegistrationService)(nil)

// MockRegistrationService is a mock implementation for controller tests.
type MockRegistrationService struct {
	mock.Mock
}

// Register (Mocked)
func (m *MockRegistrationService) Register(ctx context.Context, req models.RegisterRequest) (models.RegistrationResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.RegistrationResult), args.Error(1)
}

// Stats (Mocked)
func (m *MockRegistrationService) Stats(ctx context.Context) (models.ChallengeStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ChallengeStats), args.Error(1)
}

// Promote (Mocked)
func (m *MockRegistrationService) Promote(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MarkLinkCopied (Mocked)
func (m *MockRegistrationService) MarkLinkCopied(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

// MarkLinkSaved (Mocked)
func (m *MockRegistrationService) MarkLinkSaved(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

// List (Mocked)
func (m *MockRegistrationService) List(ctx context.Context, filter models.RegistrationFilter) ([]models.ChallengeRegistration, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.ChallengeRegistration), args.Error(1)
}

// Delete (Mocked)
func (m *MockRegistrationService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// BulkEmail (Mocked)
func (m *MockRegistrationService) BulkEmail(ctx context.Context, segment, subject, html string) (int, error) {
	args := m.Called(ctx, segment, subject, html)
	return args.Int(0), args.Error(1)
}
