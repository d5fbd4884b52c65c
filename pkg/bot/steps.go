package bot

// Step identifies one stop in the sales-configuration flow.
type Step string

const (
	StepGreeting       Step = "greeting"
	StepPanelCategory  Step = "panel_category"
	StepPanelSelection Step = "panel_selection"
	StepRentalDuration Step = "rental_duration"
	StepSizeInput      Step = "size_input"
	StepPurposeInput   Step = "purpose_input"
	StepAccessories    Step = "accessories_selection"
	StepQuantity       Step = "quantity_input"
	StepController     Step = "controller_inclusion"
	StepInstallation   Step = "installation"
	StepDelivery       Step = "delivery_location"
	StepClientInfo     Step = "client_info"
	StepContactPerson  Step = "contact_person"
	StepMobile         Step = "mobile_number"
	StepEmail          Step = "email_address"
	StepReview         Step = "review_confirmation"
	StepFinal          Step = "final_action"
	StepModifyOptions  Step = "modify_options"
	StepMultiMods      Step = "multiple_modifications"
	StepEnd            Step = "end"
)

type stepSpec struct {
	next   Step
	prompt string
}

// transitions is the linear flow table. prompt is the question asked while
// the conversation sits at that step. Side branches (rental duration, the
// modify subsystem) route themselves from their handlers.
var transitions = map[Step]stepSpec{
	StepGreeting: {
		next:   StepPanelCategory,
		prompt: "Hi there! I'm XIGI Assistant. I can help you configure the right LED panel for your space. Would you like to start with Indoor, Outdoor or Rental panels?",
	},
	StepPanelCategory: {
		next:   StepPanelSelection,
		prompt: "Would you like to start with Indoor, Outdoor or Rental panels?",
	},
	StepPanelSelection: {
		next:   StepSizeInput,
		prompt: "Great! Please select a panel from the options below.",
	},
	StepRentalDuration: {
		next:   StepSizeInput,
		prompt: "How many days do you need the panels for?",
	},
	StepSizeInput: {
		next:   StepPurposeInput,
		prompt: "Please enter your screen width and height in feet (e.g., '10x6 ft').",
	},
	StepPurposeInput: {
		next:   StepAccessories,
		prompt: "Where will you use the LED panel? (e.g., Mall, Event Hall, Studio, Outdoor Stage, Church, Manufacturing Factory)",
	},
	StepAccessories: {
		next:   StepQuantity,
		prompt: "Would you like a complete kit with your panels? (Essential Kit / Professional Kit / No)",
	},
	StepQuantity: {
		next:   StepController,
		prompt: "How many panels do you need?",
	},
	StepController: {
		next:   StepInstallation,
		prompt: "Would you like to include controller, cabinets, and mounting structure? (Yes/No)",
	},
	StepInstallation: {
		next:   StepDelivery,
		prompt: "Do you need on-site installation support? (Yes/No)",
	},
	StepDelivery: {
		next:   StepClientInfo,
		prompt: "Please provide delivery location.",
	},
	StepClientInfo: {
		next:   StepContactPerson,
		prompt: "Please provide your company name.",
	},
	StepContactPerson: {
		next:   StepMobile,
		prompt: "Please provide contact person name.",
	},
	StepMobile: {
		next:   StepEmail,
		prompt: "Please provide mobile number.",
	},
	StepEmail: {
		next:   StepReview,
		prompt: "Please provide email address.",
	},
	StepReview: {
		next:   StepFinal,
		prompt: "All information collected. Would you like to review your configuration? (Yes/No)",
	},
	StepFinal: {
		next:   StepEnd,
		prompt: "Would you like to save this configuration or modify something? (Save/Modify)",
	},
	StepModifyOptions: {
		next:   StepReview,
		prompt: "What would you like to modify? (size, quantity, delivery, purpose, panel, controller, installation, contact, rental duration)",
	},
	StepMultiMods: {
		next:   StepReview,
		prompt: "Please provide the new values separated by commas.",
	},
}

// nextStep returns the linear successor of a step.
func nextStep(s Step) Step {
	if spec, ok := transitions[s]; ok {
		return spec.next
	}
	return StepEnd
}

// stepPrompt returns the question asked while the conversation is at a step.
func stepPrompt(s Step) string {
	return transitions[s].prompt
}
