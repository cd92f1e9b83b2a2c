package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SyntaxError means the text is not JSON at all.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return "invalid program JSON: " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ValidationError means the text is JSON but does not match the program
// contract. Problems lists one entry per offending field.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "program validation failed: " + strings.Join(e.Problems, "; ")
}

func newValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

// IsSyntaxError reports whether err is (or wraps) a JSON syntax failure.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// IsValidationError reports whether err is (or wraps) a schema failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// The wire types mirror the public ones with pointers so that a missing key
// is distinguishable from a zero value.

type wireExercise struct {
	Name        *string `json:"name" validate:"required"`
	Sets        *int    `json:"sets" validate:"required,min=1,max=10"`
	Reps        *string `json:"reps" validate:"required"`
	RestSeconds *int    `json:"rest_seconds" validate:"required,min=0,max=600"`
}

type wireDay struct {
	Day               *int           `json:"day" validate:"required,min=1,max=14"`
	Focus             *string        `json:"focus" validate:"required"`
	Intensity         *string        `json:"intensity" validate:"required,oneof=low medium high"`
	DurationMinutes   *int           `json:"duration_minutes" validate:"required,min=10,max=180"`
	Equipment         []string       `json:"equipment" validate:"required,max=5"`
	Warmup            []string       `json:"warmup" validate:"required,max=3"`
	Exercises         []wireExercise `json:"exercises" validate:"required,min=4,max=6,dive"`
	Cooldown          []string       `json:"cooldown" validate:"required,max=3"`
	EstimatedCalories *int           `json:"estimated_calories" validate:"required,min=0,max=2000"`
}

type wireOK struct {
	Days []wireDay `json:"days" validate:"required,min=1,max=7,dive"`
}

type wireRejected struct {
	Code    *string  `json:"code" validate:"required,oneof=NOT_FITNESS TOO_VAGUE"`
	Message *string  `json:"message" validate:"required"`
	Hints   []string `json:"hints" validate:"required,min=1,max=3"`
}

type wireStatus struct {
	Status *string `json:"status"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report JSON names instead of Go field names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Parse parses model output text into a validated Program.
func Parse(text string) (*Program, error) {
	return ParseBytes([]byte(text))
}

// ParseBytes parses raw JSON into a validated Program. It fails with
// *SyntaxError when data is not JSON and *ValidationError when the JSON
// does not satisfy either variant of the union.
func ParseBytes(data []byte) (*Program, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &SyntaxError{Err: err}
	}
	if _, ok := raw.(map[string]interface{}); !ok {
		return nil, newValidationError("program: expected a JSON object")
	}

	var head wireStatus
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, newValidationError("status: " + typeProblem(err))
	}
	if head.Status == nil {
		return nil, newValidationError("status: field required")
	}

	switch *head.Status {
	case StatusOK:
		var w wireOK
		if err := decodeStrict(data, &w); err != nil {
			return nil, err
		}
		if err := validate.Struct(w); err != nil {
			return nil, fromValidator(err)
		}
		return w.toProgram(), nil
	case StatusRejected:
		var w wireRejected
		if err := decodeStrict(data, &w); err != nil {
			return nil, err
		}
		if err := validate.Struct(w); err != nil {
			return nil, fromValidator(err)
		}
		return w.toProgram(), nil
	default:
		return nil, newValidationError(fmt.Sprintf("status: must be %q or %q, got %q", StatusOK, StatusRejected, *head.Status))
	}
}

// decodeStrict decodes into a wire type; type mismatches become validation
// errors since the text is already known to be valid JSON.
func decodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return newValidationError(typeProblem(err))
	}
	return nil
}

func typeProblem(err error) string {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		field := te.Field
		if field == "" {
			field = "value"
		}
		return fmt.Sprintf("%s: expected %s, got %s", field, te.Type.String(), te.Value)
	}
	return err.Error()
}

func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newValidationError(err.Error())
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return newValidationError(problems...)
}

func describe(fe validator.FieldError) string {
	// Namespace looks like "wireOK.days[0].exercises[2].rest_seconds".
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return path + ": field required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s: must contain at least %s items", path, fe.Param())
		}
		return fmt.Sprintf("%s: must be >= %s", path, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s: must contain at most %s items", path, fe.Param())
		}
		return fmt.Sprintf("%s: must be <= %s", path, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", path, fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s", path, fe.Tag())
	}
}

func (w wireOK) toProgram() *Program {
	days := make([]Day, len(w.Days))
	for i, d := range w.Days {
		exercises := make([]Exercise, len(d.Exercises))
		for j, e := range d.Exercises {
			exercises[j] = Exercise{
				Name:        *e.Name,
				Sets:        *e.Sets,
				Reps:        *e.Reps,
				RestSeconds: *e.RestSeconds,
			}
		}
		days[i] = Day{
			Day:               *d.Day,
			Focus:             *d.Focus,
			Intensity:         Intensity(*d.Intensity),
			DurationMinutes:   *d.DurationMinutes,
			Equipment:         d.Equipment,
			Warmup:            d.Warmup,
			Exercises:         exercises,
			Cooldown:          d.Cooldown,
			EstimatedCalories: *d.EstimatedCalories,
		}
	}
	return NewOK(days)
}

func (w wireRejected) toProgram() *Program {
	return NewRejected(RejectionCode(*w.Code), *w.Message, w.Hints)
}
