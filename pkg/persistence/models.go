package persistence

import "time"

// Message is one stored chat transcript line.
type Message struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Intent    string    `json:"intent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Message roles.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Configuration is one saved panel configuration.
type Configuration struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Summary   string    `json:"summary"`
	Snapshot  string    `json:"snapshot,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NameCount is a labeled counter used in analytics breakdowns.
type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DayCount is a per-day counter for trend charts.
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// Analytics is the aggregate view served by the admin dashboard.
type Analytics struct {
	TotalSessions       int64       `json:"total_sessions"`
	TotalMessages       int64       `json:"total_messages"`
	SavedConfigurations int64       `json:"saved_configurations"`
	TopPanels           []NameCount `json:"top_panels"`
	TopPurposes         []NameCount `json:"top_purposes"`
	IntentBreakdown     []NameCount `json:"intent_breakdown"`
	DailySessions       []DayCount  `json:"daily_sessions"`
}
