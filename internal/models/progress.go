package models

// TimeProgress is the computed state of one time window. It is recomputed on
// every clock tick and never persisted.
type TimeProgress struct {
	Percentage float64 `json:"percentage"` // unclamped; may be < 0 or > 100
	Label      string  `json:"label"`
	Subtext    string  `json:"subtext"`
	ColorClass string  `json:"colorClass"` // presentation hint, see constants.Color*
	IsActive   bool    `json:"isActive"`   // whether now falls inside the window
}

// Clamped returns Percentage limited to [0, 100] for rendering.
func (p TimeProgress) Clamped() float64 {
	return min(max(p.Percentage, 0), 100)
}
