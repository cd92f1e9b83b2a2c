// Package schema holds the typed contracts shared by the generation client,
// the persistence layer and the HTTP API: the program union and the
// generation preferences.
package schema

import (
	"encoding/json"
	"errors"
)

// Program status discriminators.
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
)

// Intensity of a training day.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// RejectionCode explains why the model refused to build a program.
type RejectionCode string

const (
	CodeNotFitness RejectionCode = "NOT_FITNESS"
	CodeTooVague   RejectionCode = "TOO_VAGUE"
)

// Exercise is one movement inside a training day.
// Reps is free text so it can carry counts or durations ("8-12", "45s").
type Exercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
}

// Day is a single training session of a program.
type Day struct {
	Day               int        `json:"day"`
	Focus             string     `json:"focus"`
	Intensity         Intensity  `json:"intensity"`
	DurationMinutes   int        `json:"duration_minutes"`
	Equipment         []string   `json:"equipment"`
	Warmup            []string   `json:"warmup"`
	Exercises         []Exercise `json:"exercises"`
	Cooldown          []string   `json:"cooldown"`
	EstimatedCalories int        `json:"estimated_calories"`
}

// ProgramOK is an accepted plan.
type ProgramOK struct {
	Days []Day `json:"days"`
}

// ProgramRejected is an explicit refusal with guidance for the user.
type ProgramRejected struct {
	Code    RejectionCode `json:"code"`
	Message string        `json:"message"`
	Hints   []string      `json:"hints"`
}

// Program is either an accepted plan or a rejection. Exactly one of OK and
// Rejected is set; the JSON form carries the "status" discriminator.
type Program struct {
	OK       *ProgramOK
	Rejected *ProgramRejected
}

// NewOK wraps an accepted plan.
func NewOK(days []Day) *Program {
	return &Program{OK: &ProgramOK{Days: days}}
}

// NewRejected wraps a rejection.
func NewRejected(code RejectionCode, message string, hints []string) *Program {
	return &Program{Rejected: &ProgramRejected{Code: code, Message: message, Hints: hints}}
}

// Status returns the discriminator of the populated variant.
func (p *Program) Status() string {
	if p.Rejected != nil {
		return StatusRejected
	}
	return StatusOK
}

// IsRejected reports whether the program is a rejection.
func (p *Program) IsRejected() bool {
	return p.Rejected != nil
}

type okJSON struct {
	Status string `json:"status"`
	Days   []Day  `json:"days"`
}

type rejectedJSON struct {
	Status  string        `json:"status"`
	Code    RejectionCode `json:"code"`
	Message string        `json:"message"`
	Hints   []string      `json:"hints"`
}

var errHybridProgram = errors.New("program must hold exactly one of ok or rejected")

// MarshalJSON writes the populated variant with its status discriminator.
func (p Program) MarshalJSON() ([]byte, error) {
	switch {
	case p.OK != nil && p.Rejected == nil:
		return json.Marshal(okJSON{Status: StatusOK, Days: p.OK.Days})
	case p.Rejected != nil && p.OK == nil:
		hints := p.Rejected.Hints
		if hints == nil {
			hints = []string{}
		}
		return json.Marshal(rejectedJSON{
			Status:  StatusRejected,
			Code:    p.Rejected.Code,
			Message: p.Rejected.Message,
			Hints:   hints,
		})
	default:
		return nil, errHybridProgram
	}
}

// UnmarshalJSON parses and validates a program. Invalid payloads never
// produce a partially filled Program.
func (p *Program) UnmarshalJSON(data []byte) error {
	parsed, err := ParseBytes(data)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}
