package domain

import "time"

// Venue is a single restaurant site belonging to a tenant.
// All records are backend-owned; the client never generates IDs or
// timestamps.
type Venue struct {
	VenueID   string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
