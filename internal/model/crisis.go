package model

// Crisis request lifecycle statuses as defined by the dispatch backend.
const (
	StatusPending    = "pending"
	StatusMatched    = "matched"
	StatusDispatched = "dispatched"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Urgency levels assigned by the backend's scoring pipeline.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// StatusValues lists the statuses the dashboard filter cycles through.
// The leading empty string means "no constraint".
var StatusValues = []string{
	"",
	StatusPending,
	StatusMatched,
	StatusDispatched,
	StatusCompleted,
	StatusCancelled,
}

// UrgencyValues lists the urgency levels the dashboard filter cycles through.
var UrgencyValues = []string{
	"",
	UrgencyCritical,
	UrgencyHigh,
	UrgencyMedium,
	UrgencyLow,
}

// NeedTypeValues lists the need types the dashboard filter cycles through.
var NeedTypeValues = []string{
	"",
	"medical",
	"food",
	"water",
	"shelter",
	"blankets",
	"rescue",
}

// SourceManual is the default channel for messages typed in by a dispatcher.
const SourceManual = "Manual"

// MessageSources lists the channels a crisis message can arrive through.
var MessageSources = []string{
	SourceManual,
	"SMS",
	"WhatsApp",
	"Twitter",
	"Facebook",
	"Phone",
}

// ExampleMessages are static convenience texts offered on the create-crisis
// form. Selecting one only pre-fills the message field.
var ExampleMessages = []string{
	"Need 50 blankets urgently in Jayanagar area, temperature dropping fast",
	"EMERGENCY! Doctor needed at MG Road metro station - heart attack patient",
	"100 families stranded in Yelahanka without food or water for 2 days",
	"Building collapsed in Indiranagar, need rescue team and ambulances NOW",
}

// DemoEmail and DemoPassword are the demo dispatcher credentials that the
// login view can prefill.
const (
	DemoEmail    = "dispatcher@crisis-matcher.org"
	DemoPassword = "dispatcher123"
)
