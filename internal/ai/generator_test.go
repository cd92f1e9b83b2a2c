package ai

import (
	"alcyxob/fitcoach-api/internal/schema"
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

const validProgram = `{"status":"ok","days":[{"day":1,"focus":"full body","intensity":"medium",
"duration_minutes":45,"equipment":["dumbbells"],"warmup":["jumping jacks"],
"exercises":[{"name":"Goblet squat","sets":3,"reps":"10","rest_seconds":60},
{"name":"Push-up","sets":3,"reps":"12","rest_seconds":60},
{"name":"Row","sets":3,"reps":"10","rest_seconds":60},
{"name":"Plank","sets":3,"reps":"45s","rest_seconds":45}],
"cooldown":["stretch"],"estimated_calories":300}]}`

// Same program with rest_seconds dropped from the first exercise.
var missingRest = strings.Replace(validProgram, `"reps":"10","rest_seconds":60},`, `"reps":"10"},`, 1)

const rejected = `{"status":"rejected","code":"NOT_FITNESS","message":"Only workouts.","hints":["Ask for a plan"]}`

type stubModel struct {
	responses []*Response
	errs      []error
	calls     []Request
}

func (m *stubModel) Respond(ctx context.Context, req Request) (*Response, error) {
	i := len(m.calls)
	m.calls = append(m.calls, req)
	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return &Response{Status: StatusIncomplete}, nil
}

func text(s string) *Response {
	return &Response{Status: "completed", OutputText: s}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name         string
		responses    []*Response
		errs         []error
		wantCalls    int
		wantRejected bool
		wantErr      bool
		repairAt     int // index of the call expected to use the repair prompt, -1 for none
	}{
		{
			name:      "first attempt valid",
			responses: []*Response{text(validProgram)},
			wantCalls: 1,
			repairAt:  -1,
		},
		{
			name:         "rejection is a result",
			responses:    []*Response{text(rejected)},
			wantCalls:    1,
			wantRejected: true,
			repairAt:     -1,
		},
		{
			name:      "not json retries without repair",
			responses: []*Response{text("sure! here is your plan"), text(validProgram)},
			wantCalls: 2,
			repairAt:  -1,
		},
		{
			name:      "schema failure is repaired",
			responses: []*Response{text(missingRest), text(validProgram)},
			wantCalls: 2,
			repairAt:  1,
		},
		{
			name:      "failed repair falls back to generation",
			responses: []*Response{text(missingRest), text("nope"), text(validProgram)},
			wantCalls: 3,
			repairAt:  1,
		},
		{
			name:      "transport error then success",
			responses: []*Response{nil, text(validProgram)},
			errs:      []error{errors.New("connection reset")},
			wantCalls: 2,
			repairAt:  -1,
		},
		{
			name:      "always incomplete",
			wantCalls: 3,
			wantErr:   true,
			repairAt:  -1,
		},
		{
			name:      "empty text",
			responses: []*Response{text("  "), text(""), text("")},
			wantCalls: 3,
			wantErr:   true,
			repairAt:  -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &stubModel{responses: tt.responses, errs: tt.errs}
			gen := NewGenerator(model, "", DefaultRetries)

			program, err := gen.Generate(context.Background(), "3 day full body", nil)
			if len(model.calls) != tt.wantCalls {
				t.Fatalf("model calls = %d, want %d", len(model.calls), tt.wantCalls)
			}
			if tt.wantErr {
				var genErr *GenerationError
				if !errors.As(err, &genErr) {
					t.Fatalf("Generate() error = %v, want *GenerationError", err)
				}
				if genErr.Attempts != DefaultRetries+1 {
					t.Errorf("Attempts = %d, want %d", genErr.Attempts, DefaultRetries+1)
				}
				return
			}
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if program.IsRejected() != tt.wantRejected {
				t.Errorf("IsRejected() = %v, want %v", program.IsRejected(), tt.wantRejected)
			}

			for i, call := range model.calls {
				isRepair := call.System == repairSystemPrompt
				if isRepair != (i == tt.repairAt) {
					t.Errorf("call %d repair = %v", i, isRepair)
				}
				wantTokens := generateMaxTokens
				if isRepair {
					wantTokens = repairMaxTokens
				}
				if call.MaxOutputTokens != wantTokens || call.ReasoningEffort != EffortLow || call.Model != DefaultModel {
					t.Errorf("call %d = %+v", i, call)
				}
			}
		})
	}
}

func TestGenerate_RepairPromptCarriesBadJSON(t *testing.T) {
	model := &stubModel{responses: []*Response{text(missingRest), text(validProgram)}}
	if _, err := NewGenerator(model, "", 0).Generate(context.Background(), "legs", nil); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	repair := model.calls[1].User
	if !strings.Contains(repair, missingRest) {
		t.Error("repair prompt does not contain the bad JSON")
	}
	if !strings.Contains(repair, "rest_seconds") {
		t.Error("repair prompt does not mention the failing field")
	}
}

func TestGenerate_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := &stubModel{}
	_, err := NewGenerator(model, "", DefaultRetries).Generate(ctx, "legs", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate() error = %v, want context.Canceled", err)
	}
	if len(model.calls) != 0 {
		t.Errorf("model calls = %d, want 0", len(model.calls))
	}
}

func TestBuildUserPrompt(t *testing.T) {
	p, err := BuildUserPrompt("get stronger", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p, "Preferences (may be null):\nnull") {
		t.Errorf("prompt without preferences should embed null:\n%s", p)
	}
	if !strings.Contains(p, "Output exactly 3 days") {
		t.Errorf("prompt should target 3 days:\n%s", p)
	}

	prefs := &schema.Preferences{DaysOfWeek: []string{"mon", "wed", "fri", "sat"}}
	prefs.Normalize()
	p, err = BuildUserPrompt("get stronger", prefs)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p, `"days_of_week":["mon","wed","fri","sat"]`) {
		t.Errorf("prompt should embed preferences JSON:\n%s", p)
	}
	if !strings.Contains(p, `"sessions_per_week":4`) || !strings.Contains(p, "Output exactly 4 days") {
		t.Errorf("prompt should target 4 days:\n%s", p)
	}
}

func TestBuildRepairPrompt_Truncates(t *testing.T) {
	long := strings.Repeat("x", maxRepairErrorLen+500)
	p := BuildRepairPrompt(long, "{}")
	if strings.Contains(p, strings.Repeat("x", maxRepairErrorLen+1)) {
		t.Error("validation error was not truncated")
	}
	if !strings.Contains(p, strings.Repeat("x", maxRepairErrorLen)) {
		t.Error("validation error truncated too much")
	}
}

func TestBuildRepairPrompt_TruncatesOnRunes(t *testing.T) {
	long := strings.Repeat("é", maxRepairErrorLen+10)
	p := BuildRepairPrompt(long, "{}")
	if !utf8.ValidString(p) {
		t.Error("repair prompt is not valid UTF-8")
	}
	if !strings.Contains(p, strings.Repeat("é", maxRepairErrorLen)) || strings.Contains(p, strings.Repeat("é", maxRepairErrorLen+1)) {
		t.Errorf("want exactly %d runes of the validation error", maxRepairErrorLen)
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		want string
	}{
		{"nil", nil, ""},
		{"output_text wins", &Response{OutputText: "  {}  ", Output: []OutputItem{{Type: "message", Content: []ContentPart{{Type: "output_text", Text: "x"}}}}}, "{}"},
		{"fallback joins message parts", &Response{Output: []OutputItem{
			{Type: "reasoning", Content: []ContentPart{{Type: "output_text", Text: "ignored"}}},
			{Type: "message", Content: []ContentPart{{Type: "output_text", Text: `{"a":`}, {Type: "refusal", Text: "no"}, {Type: "output_text", Text: "1} "}}},
		}}, `{"a":1}`},
		{"nothing", &Response{Output: []OutputItem{{Type: "message"}}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractText(tt.resp); got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}
