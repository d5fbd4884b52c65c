package bot

import (
	"fmt"
	"strings"
)

// buildSummary renders the configuration recap shown at review time and
// stored with a saved configuration.
func buildSummary(s *Slots) string {
	if *s == (Slots{}) {
		return "No configuration details collected yet."
	}

	var lines []string

	if s.Selected != nil {
		lines = append(lines, fmt.Sprintf("Type: %s, Model: %s", titleCase(s.Selected.Category), s.Selected.Model))
	} else if s.PanelCategory != "" {
		lines = append(lines, fmt.Sprintf("Type: %s", titleCase(s.PanelCategory)))
	}
	if s.RentalDays > 0 {
		lines = append(lines, fmt.Sprintf("Rental duration: %d days", s.RentalDays))
	}
	if s.Purpose != "" {
		lines = append(lines, fmt.Sprintf("Purpose: %s", titleCase(s.Purpose)))
	}
	if s.HasSize() {
		lines = append(lines, fmt.Sprintf("Size: %s x %s (ft)", trimNumber(s.Width), trimNumber(s.Height)))
	}
	if s.Quantity > 0 {
		lines = append(lines, fmt.Sprintf("Quantity: %d", s.Quantity))
	}
	if s.Accessories != "" {
		lines = append(lines, fmt.Sprintf("Accessories: %s", s.Accessories))
	}
	// The boolean flags always print, unanswered reads as No.
	lines = append(lines, fmt.Sprintf("Include controller: %s", yesNo(s.Controller)))
	lines = append(lines, fmt.Sprintf("Installation required: %s", yesNo(s.Installation)))
	if s.Delivery != "" {
		lines = append(lines, fmt.Sprintf("Delivery: %s", s.Delivery))
	}
	if s.CompanyName != "" {
		contact := s.ContactPerson
		if contact == "" {
			contact = "-"
		}
		lines = append(lines, fmt.Sprintf("Company: %s (Contact: %s, %s, %s)", s.CompanyName, contact, s.Mobile, s.Email))
	}

	return "Configuration Summary:\n" + strings.Join(lines, "\n")
}
