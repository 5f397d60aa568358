// File: services/calendar_service.go
package services

import (
	"context"
	"fmt"
	"time"

	calendarv3 "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
	"github.com/dalibouzir/MeriemBooking-sub000/models"
)

// CalendarServiceInterface creates the calendar invite for a booked
// free call. Invites are best-effort: a failed invite never cancels the
// reservation.
type CalendarServiceInterface interface {
	CreateEvent(ctx context.Context, slot models.FreeCallSlot, res models.CallReservation) (string, error)
}

// GoogleCalendarService creates events on a shared coaching calendar using
// a service account.
type GoogleCalendarService struct {
	srv        *calendarv3.Service
	calendarID string
}

var _ CalendarServiceInterface = (*GoogleCalendarService)(nil)

// NewGoogleCalendarService builds the calendar client from service-account
// credentials JSON.
func NewGoogleCalendarService(ctx context.Context, credentialsJSON []byte, calendarID string) (*GoogleCalendarService, error) {
	srv, err := calendarv3.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(calendarv3.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init calendar client: %w", err)
	}
	return &GoogleCalendarService{srv: srv, calendarID: calendarID}, nil
}

// CreateEvent inserts the call on the coaching calendar with the invitee
// as an attendee and returns the provider event id.
func (g *GoogleCalendarService) CreateEvent(ctx context.Context, slot models.FreeCallSlot, res models.CallReservation) (string, error) {
	end := slot.StartsAt.Add(time.Duration(slot.Minutes) * time.Minute)

	event := &calendarv3.Event{
		Summary:     fmt.Sprintf("Discovery call — %s", res.Name),
		Description: res.Notes,
		Start:       &calendarv3.EventDateTime{DateTime: slot.StartsAt.Format(time.RFC3339)},
		End:         &calendarv3.EventDateTime{DateTime: end.Format(time.RFC3339)},
		Attendees: []*calendarv3.EventAttendee{
			{Email: res.Email, DisplayName: res.Name},
		},
	}

	created, err := g.srv.Events.Insert(g.calendarID, event).Context(ctx).SendUpdates("all").Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}

	logger.Info.Printf("[GoogleCalendarService.CreateEvent] event %s created for %s", created.Id, res.Email)
	return created.Id, nil
}
