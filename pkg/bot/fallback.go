package bot

import "context"

// statefulFollowUp rescues a conversation whose step is unknown, typically
// state restored from an older schema. With a panel on file it asks for the
// first missing detail; without one it gives up and lets the general
// fallback run.
func (e *Engine) statefulFollowUp(st *State) (Reply, bool) {
	if st.Slots.Selected == nil {
		return Reply{}, false
	}

	s := &st.Slots
	var next Step
	switch {
	case s.Selected.Category == "rental" && s.RentalDays == 0:
		next = StepRentalDuration
	case !s.HasSize():
		next = StepSizeInput
	case s.Purpose == "":
		next = StepPurposeInput
	case s.Accessories == "":
		next = StepAccessories
	case s.Quantity == 0:
		next = StepQuantity
	case s.Controller == nil:
		next = StepController
	case s.Installation == nil:
		next = StepInstallation
	case s.Delivery == "":
		next = StepDelivery
	case s.CompanyName == "":
		next = StepClientInfo
	case s.ContactPerson == "":
		next = StepContactPerson
	case s.Mobile == "":
		next = StepMobile
	case s.Email == "":
		next = StepEmail
	default:
		next = StepReview
	}

	st.Flow.CurrentStep = next
	if next == StepAccessories {
		return e.askAccessories(st), true
	}
	return textReply("Let's continue with your configuration. " + stepPrompt(next)), true
}

// generalFallback is the last resort: try the LLM, else steer back to the
// configuration flow.
func (e *Engine) generalFallback(ctx context.Context, msg string) Reply {
	if e.answerer != nil {
		if answer, err := e.answerer.Answer(ctx, msg); err == nil && trimmed(answer) != "" {
			return textReply(trimmed(answer))
		}
	}
	return buttonsReply("I can help you configure the right LED panel for your space. Would you like to start with Indoor, Outdoor or Rental panels?",
		"", e.categoryButtons())
}
