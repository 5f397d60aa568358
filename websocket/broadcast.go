// Package websocket handles real-time stats updates for the admin dashboard.
// file: websocket/broadcast.go
package websocket

import (
	"encoding/json"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
	"github.com/dalibouzir/MeriemBooking-sub000/models"
)

// HandleMessages listens for messages on the broadcast channel and
// distributes them to every connected dashboard. Run once, from main.
func HandleMessages() {
	for msg := range broadcast {
		connectionsMutex.Lock()
		for c := range connections {
			select {
			case c.send <- msg:
			default:
				logger.Warn.Printf("Dropping broadcast message for connection %v", c.conn.RemoteAddr())
			}
		}
		connectionsMutex.Unlock()
	}
}

// BroadcastMessage sends a message to all connected dashboards.
func BroadcastMessage(message map[string]interface{}) {
	msg, err := json.Marshal(message)
	if err != nil {
		logger.Error.Printf("Error marshalling message: %v", err)
		return
	}
	broadcast <- msg
}

// Feed adapts the broadcast channel to the services.StatsBroadcaster
// interface so the registration service can push updates without knowing
// about connections.
type Feed struct{}

// NewFeed returns the process-wide stats feed.
func NewFeed() *Feed {
	return &Feed{}
}

// BroadcastStats pushes a fresh capacity projection to every dashboard
// and publishes the matching CloudWatch gauges.
func (f *Feed) BroadcastStats(stats models.ChallengeStats) {
	logger.Debug.Printf("Broadcasting stats: confirmed=%d waitlist=%d remaining=%d",
		stats.ConfirmedCount, stats.WaitlistCount, stats.Remaining)

	BroadcastMessage(map[string]interface{}{
		"action":          "statsUpdated",
		"capacity":        stats.Capacity,
		"confirmed_count": stats.ConfirmedCount,
		"waitlist_count":  stats.WaitlistCount,
		"remaining":       stats.Remaining,
	})

	go PublishChallengeStats(stats)
}

// SendBroadcastMessage allows raw byte data to be sent over the broadcast channel
func SendBroadcastMessage(data []byte) {
	broadcast <- data
}
