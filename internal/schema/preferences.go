package schema

// DefaultDays is the number of days requested when the user gave no
// frequency hint.
const DefaultDays = 3

// MaxDays caps every generated program.
const MaxDays = 7

// Preferences are optional structured hints that steer generation.
// They are embedded in prompts and saved programs, never stored alone.
type Preferences struct {
	Goal            *string  `json:"goal" binding:"omitempty,max=200"`
	Level           *string  `json:"level" binding:"omitempty,max=80"`
	SessionsPerWeek *int     `json:"sessions_per_week" binding:"omitempty,min=1,max=7"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,min=10,max=180"`
	DaysOfWeek      []string `json:"days_of_week" binding:"omitempty,max=14,dive,min=1,max=20"`
	Equipment       []string `json:"equipment" binding:"omitempty,max=30,dive,max=80"`
	Constraints     *string  `json:"constraints" binding:"omitempty,max=1000"`
}

// Normalize makes an explicit list of training days win over
// sessions_per_week.
func (p *Preferences) Normalize() {
	if p == nil {
		return
	}
	if n := len(p.DaysOfWeek); n > 0 {
		if n > MaxDays {
			n = MaxDays
		}
		p.SessionsPerWeek = &n
	}
}

// TargetDays returns how many days a program built from p must contain.
func TargetDays(p *Preferences) int {
	if p == nil {
		return DefaultDays
	}
	n := DefaultDays
	switch {
	case len(p.DaysOfWeek) > 0:
		n = len(p.DaysOfWeek)
	case p.SessionsPerWeek != nil:
		n = *p.SessionsPerWeek
	}
	if n > MaxDays {
		n = MaxDays
	}
	if n < 1 {
		n = DefaultDays
	}
	return n
}
