package ai

import (
	"context"
	"strings"
)

// Reasoning effort accepted by the Responses API.
const (
	EffortLow    = "low"
	EffortMedium = "medium"
	EffortHigh   = "high"
)

// StatusIncomplete marks a response that ran out of output budget.
const StatusIncomplete = "incomplete"

// Model is the text generation backend used by the Generator.
type Model interface {
	Respond(ctx context.Context, req Request) (*Response, error)
}

// Request is a single system + user exchange.
type Request struct {
	Model           string
	System          string
	User            string
	MaxOutputTokens int
	ReasoningEffort string
}

// Response holds the parts of a model response the generator reads.
type Response struct {
	Status     string       `json:"status"`
	OutputText string       `json:"output_text"`
	Output     []OutputItem `json:"output"`
}

type OutputItem struct {
	Type    string        `json:"type"`
	Content []ContentPart `json:"content"`
}

type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ExtractText returns the generated text of resp. The convenience
// OutputText field wins; otherwise the output_text parts of every message
// item are joined in order. The result is trimmed and may be empty.
func ExtractText(resp *Response) string {
	if resp == nil {
		return ""
	}
	if out := strings.TrimSpace(resp.OutputText); out != "" {
		return out
	}

	var b strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				b.WriteString(part.Text)
			}
		}
	}
	return strings.TrimSpace(b.String())
}
