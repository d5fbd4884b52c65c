package bot

// SelectedPanel records the model a customer settled on and the category it
// was sold from.
type SelectedPanel struct {
	Category string `json:"category"`
	Model    string `json:"model"`
}

// Slots holds everything collected from the customer so far. Pointer booleans
// distinguish "not asked yet" from an explicit No.
type Slots struct {
	PanelCategory string         `json:"panel_category,omitempty"`
	Selected      *SelectedPanel `json:"selected_panel,omitempty"`
	Purpose       string         `json:"purpose,omitempty"`
	Width         float64        `json:"width,omitempty"`
	Height        float64        `json:"height,omitempty"`
	RentalDays    int            `json:"rental_days,omitempty"`
	Quantity      int            `json:"quantity,omitempty"`
	Accessories   string         `json:"accessories,omitempty"`
	Controller    *bool          `json:"include_controller,omitempty"`
	Installation  *bool          `json:"installation,omitempty"`
	Delivery      string         `json:"delivery_location,omitempty"`
	CompanyName   string         `json:"company_name,omitempty"`
	ContactPerson string         `json:"contact_person,omitempty"`
	Mobile        string         `json:"mobile,omitempty"`
	Email         string         `json:"email,omitempty"`
	Saved         bool           `json:"saved,omitempty"`
}

// HasSize reports whether both screen dimensions were collected.
func (s *Slots) HasSize() bool {
	return s.Width > 0 && s.Height > 0
}

// maxIntentHistory bounds the per-session intent trail.
const maxIntentHistory = 50

// Flow is the conversation-control side of a session.
type Flow struct {
	CurrentStep   Step     `json:"current_step"`
	Modifying     bool     `json:"modifying,omitempty"`
	PendingMods   []string `json:"pending_mods,omitempty"`
	IntentHistory []string `json:"intent_history,omitempty"`
	MessageCount  int      `json:"message_count"`
}

// State is the full mutable conversation state for one session. It is not
// safe for concurrent use; callers serialize access per session.
type State struct {
	Slots Slots `json:"slots"`
	Flow  Flow  `json:"flow"`
}

// NewState returns a fresh state positioned at the greeting.
func NewState() *State {
	return &State{Flow: Flow{CurrentStep: StepGreeting}}
}

// Reset clears everything back to a fresh conversation. Used when a customer
// keeps talking after saving a configuration.
func (st *State) Reset() {
	*st = State{Flow: Flow{CurrentStep: StepGreeting}}
}

func (st *State) pushIntent(name string) {
	st.Flow.IntentHistory = append(st.Flow.IntentHistory, name)
	if len(st.Flow.IntentHistory) > maxIntentHistory {
		st.Flow.IntentHistory = st.Flow.IntentHistory[len(st.Flow.IntentHistory)-maxIntentHistory:]
	}
}
