package api

import "github.com/crisis-matcher/dispatch/internal/model"

// LoginData is the payload of POST /auth/login and /auth/register.
type LoginData struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// LoginRequest carries dispatcher credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries a new dispatcher account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// CreateCrisisRequest is the body of POST /crisis.
type CreateCrisisRequest struct {
	OriginalMessage string `json:"original_message"`
	MessageSource   string `json:"message_source"`
}

// UpdateStatusRequest is the body of PUT /crisis/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// DatabaseStats summarizes the backend's matching pass.
type DatabaseStats struct {
	TotalMatchesFound int `json:"total_matches_found"`
}

// CreateCrisisResult is the payload of POST /crisis: the created record,
// the extracted entities with the full urgency breakdown, and the matches
// found in real time.
type CreateCrisisResult struct {
	CrisisRequest     model.CrisisRequest `json:"crisis_request"`
	ExtractedEntities model.UrgencyData   `json:"extracted_entities"`
	Matches           []model.Match       `json:"matches"`
	ProcessingTimeMs  int64               `json:"processing_time_ms"`
	DatabaseStats     *DatabaseStats      `json:"database_stats"`
}

// CrisisDetail is the payload of GET /crisis/:id.
type CrisisDetail struct {
	CrisisRequest model.CrisisRequest `json:"crisis_request"`
	Matches       []model.Match       `json:"matches"`
}

// CrisisFilter holds the dashboard's list constraints. An empty field
// means "no constraint" and is omitted from the query string entirely.
type CrisisFilter struct {
	Status       string
	UrgencyLevel string
	NeedType     string
}
