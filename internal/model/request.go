package model

import "time"

// CrisisRequest is a single reported need as enriched by the backend.
// The client never mutates these records; it only reads and displays them.
type CrisisRequest struct {
	// ID is the backend identifier for this request.
	ID string `json:"id"`

	// OriginalMessage is the free-text crisis message as submitted.
	OriginalMessage string `json:"original_message"`

	// MessageSource is the channel the message arrived through
	// (see MessageSources).
	MessageSource string `json:"message_source"`

	// Status is the lifecycle status (use Status* constants).
	Status string `json:"status"`

	// UrgencyLevel is the backend's four-tier classification
	// (use Urgency* constants).
	UrgencyLevel string `json:"urgency_level"`

	// UrgencyScore is the backend's rounded priority score on a 0-10 scale.
	UrgencyScore float64 `json:"urgency_score"`

	// NeedType is the extracted need category, empty when not detected.
	NeedType string `json:"need_type"`

	// Quantity is the extracted amount needed, nil when not specified.
	Quantity *int `json:"quantity"`

	// QuantityUnit qualifies Quantity (e.g. "units", "litres").
	QuantityUnit string `json:"quantity_unit"`

	// LocationText is the extracted location, empty when not detected.
	LocationText string `json:"location_text"`

	CreatedAt     time.Time `json:"created_at"`
	CreatedByName string    `json:"created_by_name"`
}

// Match is a candidate pairing between a crisis request's need and an
// NGO-held resource, scored by suitability. Read-only.
type Match struct {
	NGOName           string  `json:"ngo_name"`
	ResourceName      string  `json:"resource_name"`
	MatchScore        float64 `json:"match_score"`
	QuantityAvailable int     `json:"quantity_available"`
	Unit              string  `json:"unit"`
	Location          string  `json:"location"`
	DistanceKm        float64 `json:"distance_km"`
	ContactPhone      string  `json:"contact_phone"`
	Reasoning         string  `json:"reasoning"`
}
