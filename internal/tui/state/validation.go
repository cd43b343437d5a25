package state

import "fmt"

// UpdateValidationStatus runs validation and updates the warning message
func (m *Model) UpdateValidationStatus() {
	result := m.Validator.ValidateSettings(m.Settings)
	m.ValidationConflicts = result.Conflicts

	if len(result.Conflicts) > 0 {
		m.ValidationWarning = fmt.Sprintf("⚠ %d settings warning(s): %s", len(result.Conflicts), result.Conflicts[0].Description)
	} else {
		m.ValidationWarning = ""
	}
}
