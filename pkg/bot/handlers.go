package bot

import (
	"strconv"
	"strings"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/intent"
)

type stepHandler func(e *Engine, t *turn, msg string, st *State) Reply

var stepHandlers = map[Step]stepHandler{
	StepGreeting:       (*Engine).handleGreetingStep,
	StepPanelCategory:  (*Engine).handlePanelCategory,
	StepPanelSelection: (*Engine).handlePanelSelection,
	StepRentalDuration: (*Engine).handleRentalDuration,
	StepSizeInput:      (*Engine).handleSizeInput,
	StepPurposeInput:   (*Engine).handlePurposeStep,
	StepAccessories:    (*Engine).handleAccessoriesStep,
	StepQuantity:       (*Engine).handleQuantityStep,
	StepController:     (*Engine).handleControllerStep,
	StepInstallation:   (*Engine).handleInstallationStep,
	StepDelivery:       (*Engine).handleDeliveryStep,
	StepClientInfo:     (*Engine).handleClientInfoStep,
	StepContactPerson:  (*Engine).handleContactStep,
	StepMobile:         (*Engine).handleMobileStep,
	StepEmail:          (*Engine).handleEmailStep,
	StepReview:         (*Engine).handleReviewStep,
	StepFinal:          (*Engine).handleFinalStep,
	StepModifyOptions:  (*Engine).handleModifyOptionsStep,
	StepMultiMods:      (*Engine).handleMultiModsStep,
}

func trimmed(s string) string { return strings.TrimSpace(s) }

func isYes(m string) bool {
	for _, w := range []string{"yes", "yeah", "yep", "sure", "ok", "okay"} {
		if strings.Contains(m, w) {
			return true
		}
	}
	return m == "y"
}

func isNo(m string) bool {
	for _, w := range []string{"no", "nope", "skip", "none"} {
		if strings.Contains(m, w) {
			return true
		}
	}
	return m == "n"
}

// parseYesNo returns nil when the message is neither a yes nor a no.
func parseYesNo(m string) *bool {
	m = strings.ToLower(m)
	// "no" substring matching must not swallow words like "know".
	if isYes(m) {
		v := true
		return &v
	}
	if isNo(m) {
		v := false
		return &v
	}
	return nil
}

func parseInt(s string) (int, bool) {
	nums := intent.Numbers(s)
	if len(nums) == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(nums[0], 64)
	if err != nil || f < 1 {
		return 0, false
	}
	return int(f), true
}

// advance applies the shared post-collection routing: a modification returns
// straight to review with a refreshed summary, a normal turn moves to the
// next step and asks its question.
func (e *Engine) advance(st *State, field string, next Step) Reply {
	if st.Flow.Modifying {
		return e.modified(st, field)
	}
	st.Flow.CurrentStep = next
	return textReply(stepPrompt(next))
}

func (e *Engine) modified(st *State, field string) Reply {
	st.Flow.Modifying = false
	st.Flow.CurrentStep = StepReview
	return summaryReply(field + " updated!\n\n" + buildSummary(&st.Slots) +
		"\n\nWould you like to save this configuration or modify something else? (Save/Modify)")
}

func (e *Engine) categoryButtons() []string {
	cats := e.catalog.Categories()
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = titleCase(c)
	}
	return out
}

// currentCategory picks the category to sell accessories and bundles from.
func (st *State) currentCategory() string {
	if st.Slots.Selected != nil {
		return st.Slots.Selected.Category
	}
	if st.Slots.PanelCategory != "" {
		return st.Slots.PanelCategory
	}
	return "indoor"
}

func (e *Engine) handleGreetingStep(_ *turn, _ string, st *State) Reply {
	st.Flow.CurrentStep = StepPanelCategory
	return buttonsReply(stepPrompt(StepGreeting), "", e.categoryButtons())
}

func (e *Engine) handlePanelCategory(_ *turn, msg string, st *State) Reply {
	m := strings.ToLower(msg)
	for _, cat := range e.catalog.Categories() {
		if strings.Contains(m, cat) {
			st.Slots.PanelCategory = cat
			st.Flow.CurrentStep = StepPanelSelection
			return buttonsReply(stepPrompt(StepPanelSelection), cat, e.catalog.ModelKeys(cat))
		}
	}
	return buttonsReply("Please choose a panel category to continue.", "", e.categoryButtons())
}

func (e *Engine) handlePanelSelection(_ *turn, msg string, st *State) Reply {
	if toks := intent.PanelTokens(msg); len(toks) > 0 {
		return e.selectPanel(toks[0], st)
	}
	cat := st.currentCategory()
	e.recorder.RecordValidationFailure("panel_selection")
	return buttonsReply("Please select one of the panel models below.", cat, e.catalog.ModelKeys(cat))
}

// selectPanel records a model choice and routes the flow forward. Shared by
// the select_panel interrupt and the panel_selection step.
func (e *Engine) selectPanel(model string, st *State) Reply {
	category := ""
	spec, ok := e.catalog.LookupIn(st.Slots.PanelCategory, model)
	if ok {
		category = st.Slots.PanelCategory
	} else {
		category, spec, ok = e.catalog.Lookup(model)
	}
	if !ok {
		return textReply("I couldn't find that panel model. Please pick one from the list, e.g., P3mm or P4mm.")
	}

	st.Slots.Selected = &SelectedPanel{Category: category, Model: spec.Model}
	st.Slots.PanelCategory = category
	if st.Flow.Modifying {
		return e.modified(st, "Panel")
	}

	var b strings.Builder
	b.WriteString("Perfect Choice: " + spec.Model + "\n\n")
	b.WriteString(formatSpecs(category, spec))
	if s := formatBundles(e.catalog, category); s != "" {
		b.WriteString("\n" + s)
	}
	if s := formatAccessories(e.catalog, category); s != "" {
		b.WriteString("\n" + s)
	}

	switch {
	case category == "rental" && st.Slots.RentalDays == 0:
		st.Flow.CurrentStep = StepRentalDuration
	case !st.Slots.HasSize():
		st.Flow.CurrentStep = StepSizeInput
	case st.Slots.Purpose == "":
		st.Flow.CurrentStep = StepPurposeInput
	}
	if p := stepPrompt(st.Flow.CurrentStep); p != "" {
		b.WriteString("\n" + p)
	}
	return textReply(b.String())
}

func (e *Engine) handleRentalDuration(_ *turn, msg string, st *State) Reply {
	days, ok := parseInt(msg)
	if !ok {
		e.recorder.RecordValidationFailure("rental_duration")
		return textReply("Please enter the rental duration in days (e.g., '5').")
	}
	st.Slots.RentalDays = days
	return e.advance(st, "Rental duration", StepSizeInput)
}

func (e *Engine) handleSizeInput(_ *turn, msg string, st *State) Reply {
	nums := intent.Numbers(msg)
	if len(nums) < 2 {
		e.recorder.RecordValidationFailure("size")
		return textReply("Please provide both width and height, e.g., '10x6 ft'.")
	}
	w, errW := strconv.ParseFloat(nums[0], 64)
	h, errH := strconv.ParseFloat(nums[1], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		e.recorder.RecordValidationFailure("size")
		return textReply("Please provide both width and height, e.g., '10x6 ft'.")
	}
	st.Slots.Width, st.Slots.Height = w, h
	if st.Flow.Modifying {
		return e.modified(st, "Size")
	}
	if st.Slots.Purpose != "" {
		return e.askAccessories(st)
	}
	st.Flow.CurrentStep = StepPurposeInput
	return textReply(stepPrompt(StepPurposeInput))
}

// askAccessories moves to the kit question with bundle quick replies.
func (e *Engine) askAccessories(st *State) Reply {
	st.Flow.CurrentStep = StepAccessories
	cat := st.currentCategory()
	buttons := make([]string, 0, 3)
	for _, b := range e.catalog.Bundles(cat) {
		buttons = append(buttons, b.Name)
	}
	buttons = append(buttons, "No")
	return buttonsReply(stepPrompt(StepAccessories), cat, buttons)
}

func (e *Engine) handlePurposeStep(_ *turn, msg string, st *State) Reply {
	return e.handlePurpose(msg, st)
}

// handlePurpose records the application purpose and steers the flow: forward
// when a panel is already chosen, toward a recommended category when the
// customer led with the purpose.
func (e *Engine) handlePurpose(msg string, st *State) Reply {
	if len(trimmed(msg)) <= 2 {
		e.recorder.RecordValidationFailure("purpose")
		return textReply(stepPrompt(StepPurposeInput))
	}
	profile, matched := e.catalog.Purpose(msg)
	if matched {
		st.Slots.Purpose = profile.Key
	} else {
		st.Slots.Purpose = trimmed(msg)
	}
	if st.Flow.Modifying {
		return e.modified(st, "Purpose")
	}

	guide := formatPurposeGuide(profile)
	if st.Slots.Selected != nil {
		if !st.Slots.HasSize() {
			st.Flow.CurrentStep = StepSizeInput
			return textReply(guide + "\n" + stepPrompt(StepSizeInput))
		}
		r := e.askAccessories(st)
		r.Text = guide + "\n" + r.Text
		return r
	}

	cat := profile.PanelCategory
	if !e.catalog.HasCategory(cat) {
		cat = "indoor"
	}
	st.Slots.PanelCategory = cat
	st.Flow.CurrentStep = StepPanelCategory
	return buttonsReply(
		guide+"\nBased on your purpose, I recommend our "+titleCase(cat)+" range. Please select a panel:",
		cat, e.catalog.ModelKeys(cat))
}

func (e *Engine) handleAccessoriesStep(_ *turn, msg string, st *State) Reply {
	m := strings.ToLower(msg)
	cat := st.currentCategory()
	if bundle, ok := e.catalog.MatchBundle(cat, m); ok {
		st.Slots.Accessories = bundle.Name
	} else if isNo(m) {
		st.Slots.Accessories = "None"
	} else {
		e.recorder.RecordValidationFailure("accessories")
		r := e.askAccessories(st)
		r.Text = "Please pick one of the kits below, or say No to skip."
		return r
	}
	return e.advance(st, "Accessories", StepQuantity)
}

func (e *Engine) handleQuantityStep(_ *turn, msg string, st *State) Reply {
	qty, ok := parseInt(msg)
	if !ok {
		e.recorder.RecordValidationFailure("quantity")
		return textReply("Please enter the number of panels as a number (e.g., '4').")
	}
	st.Slots.Quantity = qty
	return e.advance(st, "Quantity", StepController)
}

func (e *Engine) handleControllerStep(_ *turn, msg string, st *State) Reply {
	v := parseYesNo(msg)
	if v == nil {
		e.recorder.RecordValidationFailure("controller")
		return textReply(stepPrompt(StepController))
	}
	st.Slots.Controller = v
	return e.advance(st, "Controller", StepInstallation)
}

func (e *Engine) handleInstallationStep(_ *turn, msg string, st *State) Reply {
	v := parseYesNo(msg)
	if v == nil {
		e.recorder.RecordValidationFailure("installation")
		return textReply(stepPrompt(StepInstallation))
	}
	st.Slots.Installation = v
	return e.advance(st, "Installation", StepDelivery)
}

func (e *Engine) handleDeliveryStep(_ *turn, msg string, st *State) Reply {
	if len(trimmed(msg)) <= 1 {
		e.recorder.RecordValidationFailure("delivery")
		return textReply(stepPrompt(StepDelivery))
	}
	st.Slots.Delivery = trimmed(msg)
	return e.advance(st, "Delivery location", StepClientInfo)
}

func (e *Engine) handleClientInfoStep(_ *turn, msg string, st *State) Reply {
	if len(trimmed(msg)) <= 1 {
		e.recorder.RecordValidationFailure("company")
		return textReply(stepPrompt(StepClientInfo))
	}
	st.Slots.CompanyName = trimmed(msg)
	return e.advance(st, "Company", StepContactPerson)
}

func (e *Engine) handleContactStep(_ *turn, msg string, st *State) Reply {
	if len(trimmed(msg)) <= 1 {
		e.recorder.RecordValidationFailure("contact")
		return textReply(stepPrompt(StepContactPerson))
	}
	st.Slots.ContactPerson = trimmed(msg)
	return e.advance(st, "Contact person", StepMobile)
}

func (e *Engine) handleMobileStep(_ *turn, msg string, st *State) Reply {
	phone := intent.ExtractPhone(msg)
	if phone == "" {
		e.recorder.RecordValidationFailure("mobile")
		return textReply("That doesn't look like a valid mobile number. Please provide a 7-15 digit number.")
	}
	st.Slots.Mobile = phone
	return e.advance(st, "Mobile number", StepEmail)
}

func (e *Engine) handleEmailStep(_ *turn, msg string, st *State) Reply {
	email := intent.ExtractEmail(msg)
	if email == "" {
		e.recorder.RecordValidationFailure("email")
		return textReply("That doesn't look like a valid email address. Please try again.")
	}
	st.Slots.Email = email
	return e.advance(st, "Email", StepReview)
}

func (e *Engine) handleReviewStep(t *turn, msg string, st *State) Reply {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "modify"):
		return e.handleModifyOptions(msg, st)
	case strings.Contains(m, "save"):
		return e.finalize(t, st)
	case isYes(m):
		st.Flow.CurrentStep = StepFinal
		return summaryReply(buildSummary(&st.Slots) + "\n\n" + stepPrompt(StepFinal))
	case isNo(m):
		st.Flow.CurrentStep = StepModifyOptions
		return textReply(stepPrompt(StepModifyOptions))
	}
	return textReply(stepPrompt(StepReview))
}

func (e *Engine) handleFinalStep(t *turn, msg string, st *State) Reply {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "save"), isYes(m):
		return e.finalize(t, st)
	case strings.Contains(m, "modify"):
		return e.handleModifyOptions(msg, st)
	}
	return textReply(stepPrompt(StepFinal))
}

// finalize marks the configuration saved and records it.
func (e *Engine) finalize(t *turn, st *State) Reply {
	summary := buildSummary(&st.Slots)
	st.Slots.Saved = true
	st.Flow.CurrentStep = StepEnd
	st.Flow.Modifying = false
	st.Flow.PendingMods = nil
	e.recorder.RecordConfigurationSaved()
	e.logConfiguration(t.ctx, t.sessionID, summary, st)
	return summaryReply("Configuration saved! Our team will contact you soon.\n\n" + summary)
}

func (e *Engine) handleModifyOptionsStep(_ *turn, msg string, st *State) Reply {
	return e.handleModifyOptions(msg, st)
}

func (e *Engine) handleMultiModsStep(_ *turn, msg string, st *State) Reply {
	return e.handleMultiMods(msg, st)
}
