package analytics

import (
	"time"

	"github.com/google/uuid"
)

// DashboardResponse is the per-property operational snapshot the staff
// dashboard polls.
type DashboardResponse struct {
	PropertyID          uuid.UUID        `json:"property_id"`
	TotalGuests         int64            `json:"total_guests"`
	GuestsByStage       map[string]int64 `json:"guests_by_stage"`
	OutstandingRequests int64            `json:"outstanding_requests"`
	MessagesSentToday   int64            `json:"messages_sent_today"`
	ArrivalsToday       int64            `json:"arrivals_today"`
	DeparturesToday     int64            `json:"departures_today"`
	GeneratedAt         time.Time        `json:"generated_at"`
}
