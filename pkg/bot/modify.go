package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/intent"
)

// Modifiable fields in flow order. Keywords map customer phrasing onto a
// canonical field; the field maps onto the step that re-collects it.
type modField struct {
	name     string
	step     Step
	keywords []string
}

var modFields = []modField{
	{"panel", StepPanelSelection, []string{"panel", "model"}},
	{"rental duration", StepRentalDuration, []string{"rental", "duration"}},
	{"size", StepSizeInput, []string{"size", "dimension"}},
	{"purpose", StepPurposeInput, []string{"purpose"}},
	{"quantity", StepQuantity, []string{"quantity", "count"}},
	{"controller", StepController, []string{"controller"}},
	{"installation", StepInstallation, []string{"installation"}},
	{"delivery", StepDelivery, []string{"delivery", "location"}},
	{"contact", StepClientInfo, []string{"contact", "company"}},
	{"mobile", StepMobile, []string{"mobile", "phone"}},
	{"email", StepEmail, []string{"email"}},
}

func matchModFields(msg string) []modField {
	m := strings.ToLower(msg)
	var out []modField
	for _, f := range modFields {
		for _, kw := range f.keywords {
			if strings.Contains(m, kw) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// handleModifyOptions parses "modify X" requests. One field jumps straight to
// its step in modifying mode; several fields go through the comma-separated
// batch update.
func (e *Engine) handleModifyOptions(msg string, st *State) Reply {
	fields := matchModFields(msg)
	switch len(fields) {
	case 0:
		st.Flow.CurrentStep = StepModifyOptions
		return textReply(stepPrompt(StepModifyOptions))
	case 1:
		f := fields[0]
		st.Flow.Modifying = true
		st.Flow.CurrentStep = f.step
		if f.step == StepPanelSelection {
			cat := st.currentCategory()
			return buttonsReply("Okay, let's update the panel. Please select a model:", cat, e.catalog.ModelKeys(cat))
		}
		return textReply("Okay, let's update the " + f.name + ". " + stepPrompt(f.step))
	}

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	st.Flow.Modifying = true
	st.Flow.PendingMods = names
	st.Flow.CurrentStep = StepMultiMods
	return textReply(fmt.Sprintf("You want to modify: %s. Please provide the new values in that order, separated by commas.",
		strings.Join(names, ", ")))
}

// handleMultiMods applies a comma-separated batch of new values. The batch is
// all-or-nothing: a count mismatch or an unparsable value changes nothing.
func (e *Engine) handleMultiMods(msg string, st *State) Reply {
	if len(st.Flow.PendingMods) == 0 {
		st.Flow.CurrentStep = StepModifyOptions
		return textReply(stepPrompt(StepModifyOptions))
	}

	parts := strings.Split(msg, ",")
	for i := range parts {
		parts[i] = trimmed(parts[i])
	}
	if len(parts) != len(st.Flow.PendingMods) {
		e.recorder.RecordValidationFailure("multiple_modifications")
		return textReply(fmt.Sprintf("I need %d values separated by commas, in this order: %s.",
			len(st.Flow.PendingMods), strings.Join(st.Flow.PendingMods, ", ")))
	}

	apply := make([]func(), 0, len(parts))
	for i, field := range st.Flow.PendingMods {
		fn, err := e.stageModValue(field, parts[i], st)
		if err != nil {
			e.recorder.RecordValidationFailure("multiple_modifications")
			return textReply(fmt.Sprintf("I couldn't read a valid value for %s (%q). Nothing was changed; please resend all values.",
				field, parts[i]))
		}
		apply = append(apply, fn)
	}
	for _, fn := range apply {
		fn()
	}

	updated := strings.Join(st.Flow.PendingMods, ", ")
	st.Flow.PendingMods = nil
	st.Flow.Modifying = false
	st.Flow.CurrentStep = StepReview
	return summaryReply("Updated: " + updated + "!\n\n" + buildSummary(&st.Slots) +
		"\n\nWould you like to save this configuration or modify something else? (Save/Modify)")
}

// stageModValue validates one batch value and returns the closure that writes
// it. Writes are deferred so a later parse failure leaves the slots intact.
func (e *Engine) stageModValue(field, val string, st *State) (func(), error) {
	switch field {
	case "panel":
		category := ""
		spec, ok := e.catalog.LookupIn(st.Slots.PanelCategory, val)
		if ok {
			category = st.Slots.PanelCategory
		} else {
			category, spec, ok = e.catalog.Lookup(val)
		}
		if !ok {
			return nil, fmt.Errorf("unknown panel model %q", val)
		}
		return func() {
			st.Slots.Selected = &SelectedPanel{Category: category, Model: spec.Model}
			st.Slots.PanelCategory = category
		}, nil
	case "rental duration":
		n, ok := parseInt(val)
		if !ok {
			return nil, fmt.Errorf("invalid duration %q", val)
		}
		return func() { st.Slots.RentalDays = n }, nil
	case "size":
		nums := intent.Numbers(val)
		if len(nums) < 2 {
			return nil, fmt.Errorf("invalid size %q", val)
		}
		w, errW := strconv.ParseFloat(nums[0], 64)
		h, errH := strconv.ParseFloat(nums[1], 64)
		if errW != nil || errH != nil || w <= 0 || h <= 0 {
			return nil, fmt.Errorf("invalid size %q", val)
		}
		return func() { st.Slots.Width, st.Slots.Height = w, h }, nil
	case "purpose":
		if len(val) <= 2 {
			return nil, fmt.Errorf("invalid purpose %q", val)
		}
		purpose := val
		if p, matched := e.catalog.Purpose(val); matched {
			purpose = p.Key
		}
		return func() { st.Slots.Purpose = purpose }, nil
	case "quantity":
		n, ok := parseInt(val)
		if !ok {
			return nil, fmt.Errorf("invalid quantity %q", val)
		}
		return func() { st.Slots.Quantity = n }, nil
	case "controller":
		v := parseYesNo(val)
		if v == nil {
			return nil, fmt.Errorf("invalid controller choice %q", val)
		}
		return func() { st.Slots.Controller = v }, nil
	case "installation":
		v := parseYesNo(val)
		if v == nil {
			return nil, fmt.Errorf("invalid installation choice %q", val)
		}
		return func() { st.Slots.Installation = v }, nil
	case "delivery":
		if len(val) <= 1 {
			return nil, fmt.Errorf("invalid delivery location %q", val)
		}
		return func() { st.Slots.Delivery = val }, nil
	case "contact":
		if len(val) <= 1 {
			return nil, fmt.Errorf("invalid contact %q", val)
		}
		return func() { st.Slots.ContactPerson = val }, nil
	case "mobile":
		phone := intent.ExtractPhone(val)
		if phone == "" {
			return nil, fmt.Errorf("invalid mobile number %q", val)
		}
		return func() { st.Slots.Mobile = phone }, nil
	case "email":
		email := intent.ExtractEmail(val)
		if email == "" {
			return nil, fmt.Errorf("invalid email %q", val)
		}
		return func() { st.Slots.Email = email }, nil
	}
	return nil, fmt.Errorf("unknown field %q", field)
}
