// File: services/pixel_service.go
package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
)

// PixelServiceInterface forwards a server-side marketing event. Forwarding
// is analytics plumbing: callers log failures and never surface them.
type PixelServiceInterface interface {
	Forward(eventName, email string) error
}

// MetaPixelService posts events to the Meta Conversions API. Emails are
// SHA-256 hashed before leaving the server, as the API requires.
type MetaPixelService struct {
	pixelID     string
	accessToken string
	endpoint    string
	httpClient  *http.Client
	now         func() time.Time
}

var _ PixelServiceInterface = (*MetaPixelService)(nil)

// NewMetaPixelService creates a Conversions API forwarder.
func NewMetaPixelService(pixelID, accessToken string) *MetaPixelService {
	return &MetaPixelService{
		pixelID:     pixelID,
		accessToken: accessToken,
		endpoint:    "https://graph.facebook.com/v19.0",
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		now:         time.Now,
	}
}

// Forward sends one event with the hashed email as user data.
func (p *MetaPixelService) Forward(eventName, email string) error {
	hash := sha256.Sum256([]byte(email))

	payload := map[string]interface{}{
		"data": []map[string]interface{}{
			{
				"event_name":    eventName,
				"event_time":    p.now().Unix(),
				"action_source": "website",
				"user_data": map[string]interface{}{
					"em": []string{hex.EncodeToString(hash[:])},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode pixel payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/events?access_token=%s", p.endpoint, p.pixelID, p.accessToken)
	resp, err := p.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("forward pixel event: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("pixel endpoint returned %d: %s", resp.StatusCode, detail)
	}

	logger.Debug.Printf("[MetaPixelService.Forward] %s forwarded", eventName)
	return nil
}
