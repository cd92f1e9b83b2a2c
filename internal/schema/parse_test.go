package schema

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

const validExercises = `[
	{"name":"Push-up","sets":3,"reps":"8-12","rest_seconds":60},
	{"name":"Squat","sets":4,"reps":"10","rest_seconds":90},
	{"name":"Plank","sets":3,"reps":"45s","rest_seconds":30},
	{"name":"Row","sets":3,"reps":"12","rest_seconds":60}
]`

func okJSONWith(exercises string) string {
	return `{"status":"ok","days":[{"day":1,"focus":"full body","intensity":"medium","duration_minutes":45,
		"equipment":["dumbbells"],"warmup":["jumping jacks"],"exercises":` + exercises + `,
		"cooldown":["stretch"],"estimated_calories":350}]}`
}

func TestParse_OK(t *testing.T) {
	p, err := Parse(okJSONWith(validExercises))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.IsRejected() || p.OK == nil {
		t.Fatalf("expected ok variant, got %+v", p)
	}
	if len(p.OK.Days) != 1 || len(p.OK.Days[0].Exercises) != 4 {
		t.Fatalf("unexpected days: %+v", p.OK.Days)
	}
	if got := p.OK.Days[0].Exercises[2].Reps; got != "45s" {
		t.Errorf("reps = %q, want 45s", got)
	}
}

func TestParse_Rejected(t *testing.T) {
	p, err := Parse(`{"status":"rejected","code":"NOT_FITNESS","message":"Only workouts.","hints":["Ask for a plan"]}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !p.IsRejected() || p.OK != nil {
		t.Fatalf("expected rejected variant, got %+v", p)
	}
	if p.Rejected.Code != CodeNotFitness {
		t.Errorf("code = %q", p.Rejected.Code)
	}
}

func TestParse_Failures(t *testing.T) {
	missingRest := strings.Replace(validExercises, `,"rest_seconds":60}`, `}`, 1)

	tests := []struct {
		name       string
		input      string
		wantSyntax bool
		wantField  string
	}{
		{"not json", "Here is your plan: {", true, ""},
		{"trailing prose", `{"status":"ok"} thanks`, true, ""},
		{"array", `[1,2]`, false, "program"},
		{"missing status", `{"days":[]}`, false, "status"},
		{"unknown status", `{"status":"maybe"}`, false, "status"},
		{"missing rest_seconds", okJSONWith(missingRest), false, "rest_seconds"},
		{"too few exercises", okJSONWith(`[{"name":"a","sets":1,"reps":"1","rest_seconds":0}]`), false, "exercises"},
		{"sets out of range", okJSONWith(strings.Replace(validExercises, `"sets":3`, `"sets":11`, 1)), false, "sets"},
		{"sets as string", okJSONWith(strings.Replace(validExercises, `"sets":3`, `"sets":"3"`, 1)), false, "sets"},
		{"bad intensity", strings.Replace(okJSONWith(validExercises), `"medium"`, `"extreme"`, 1), false, "intensity"},
		{"no days", `{"status":"ok","days":[]}`, false, "days"},
		{"bad code", `{"status":"rejected","code":"NOPE","message":"m","hints":["h"]}`, false, "code"},
		{"too many hints", `{"status":"rejected","code":"TOO_VAGUE","message":"m","hints":["a","b","c","d"]}`, false, "hints"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse() = %+v, want error", p)
			}
			if p != nil {
				t.Errorf("Parse() returned a partial program on error")
			}
			if got := IsSyntaxError(err); got != tt.wantSyntax {
				t.Errorf("IsSyntaxError = %v, want %v (err=%v)", got, tt.wantSyntax, err)
			}
			if !tt.wantSyntax {
				if !IsValidationError(err) {
					t.Fatalf("expected validation error, got %T: %v", err, err)
				}
				if !strings.Contains(err.Error(), tt.wantField) {
					t.Errorf("error %q does not mention %q", err.Error(), tt.wantField)
				}
			}
		})
	}
}

func TestProgram_JSONRoundTrip(t *testing.T) {
	inputs := []string{
		okJSONWith(validExercises),
		`{"status":"rejected","code":"TOO_VAGUE","message":"Need more detail","hints":["Say your goal","Say your level"]}`,
	}
	for _, in := range inputs {
		original, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		var back Program
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if !reflect.DeepEqual(*original, back) {
			t.Errorf("round trip mismatch:\n got  %+v\n want %+v", back, *original)
		}
	}
}

func TestProgram_MarshalRejectsHybrid(t *testing.T) {
	p := Program{OK: &ProgramOK{}, Rejected: &ProgramRejected{}}
	if _, err := json.Marshal(p); err == nil {
		t.Error("expected error marshalling a hybrid program")
	}
	if _, err := json.Marshal(Program{}); err == nil {
		t.Error("expected error marshalling an empty program")
	}
}

func TestTargetDays(t *testing.T) {
	three, five, nine := 3, 5, 9
	tests := []struct {
		name  string
		prefs *Preferences
		want  int
	}{
		{"no preferences", nil, 3},
		{"empty preferences", &Preferences{}, 3},
		{"sessions per week", &Preferences{SessionsPerWeek: &five}, 5},
		{"days of week", &Preferences{DaysOfWeek: []string{"mon", "wed", "fri"}}, 3},
		{"days of week wins", &Preferences{SessionsPerWeek: &five, DaysOfWeek: []string{"mon", "tue"}}, 2},
		{"capped", &Preferences{SessionsPerWeek: &nine}, 7},
		{"explicit three", &Preferences{SessionsPerWeek: &three}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetDays(tt.prefs); got != tt.want {
				t.Errorf("TargetDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPreferences_Normalize(t *testing.T) {
	five := 5
	p := &Preferences{SessionsPerWeek: &five, DaysOfWeek: []string{"mon", "wed", "fri"}}
	p.Normalize()
	if p.SessionsPerWeek == nil || *p.SessionsPerWeek != 3 {
		t.Fatalf("SessionsPerWeek = %v, want 3", p.SessionsPerWeek)
	}

	var nilPrefs *Preferences
	nilPrefs.Normalize()
}
