package ai

import (
	"alcyxob/fitcoach-api/internal/schema"
	"encoding/json"
	"fmt"
)

// maxRepairErrorLen bounds the validation report sent back to the model.
const maxRepairErrorLen = 1200

const systemPrompt = `You are a fitness coach assistant that outputs ONLY valid JSON.
No markdown, no code fences, no extra keys, no commentary.

You must output exactly ONE JSON object, and nothing else.

Your job is to either:
- Return a structured workout program (status="ok"), OR
- Reject the request (status="rejected") if the user text is not about workouts/fitness or is too vague.

Reject if:
- The request is unrelated to training/fitness/workouts/nutrition for training.
- The request is about coding, essays, math, translation, politics, etc.
- The request is too vague to build a plan (e.g., "hi", "help", "make a plan" with no details) AND there are no usable preferences.

If rejected:
- status must be "rejected"
- code must be "NOT_FITNESS" or "TOO_VAGUE"
- message must be short and clear
- hints should contain 1 to 3 concrete suggestions.

If ok:
- status must be "ok"
- days must be a list sorted by day ascending
- day starts at 1
- Provide warmup, cooldown, equipment list, estimated_calories, and exercises.
- focus must be very short (e.g., "upper body", "cardio", "full body").

Schema rules:
- Top-level keys must be exactly: status, days (no other keys).
- Each day must include ALL keys: day, focus, intensity, duration_minutes, equipment, warmup, exercises, cooldown, estimated_calories.
- Each exercise must include EXACT keys: name, sets, reps, rest_seconds. Use "reps" for both reps or time (e.g., "45s" or "8-12" or "1 min on / 30s off"). Do NOT use "reps_or_time".
- Do not output any extra keys anywhere.

Hard limits:
- Output at most 7 days.
- If sessions_per_week is provided, output exactly that many days (max 7).
- If sessions_per_week is missing, output 3 days.
- For warmup and cooldown: max 3 items each.
- For equipment: max 5 items.
- For exercises: 4 to 6 exercises per day.
Keep strings short (<= 60 chars).

Do not provide reasoning. Output the shortest valid JSON possible.
If you output anything other than a single JSON object, you fail.
`

const repairSystemPrompt = `You fix JSON to match a strict schema.
Return ONLY a JSON object. No markdown. No commentary.

Rules:
- Keep the same meaning.
- Remove extra keys.
- Rename wrong keys to the correct ones.
- Ensure required fields exist with reasonable values.
- Output must validate against the program schema.
`

// BuildUserPrompt embeds the request text, the preferences as JSON (or
// null) and the number of days the program must contain.
func BuildUserPrompt(text string, prefs *schema.Preferences) (string, error) {
	prefBlock := "null"
	if prefs != nil {
		raw, err := json.Marshal(prefs)
		if err != nil {
			return "", fmt.Errorf("failed to encode preferences: %w", err)
		}
		prefBlock = string(raw)
	}

	return fmt.Sprintf(`User request:
%s

Preferences (may be null):
%s

Output exactly %d days if the request is accepted.

Reminder: Use reps as a string for reps OR time. Example reps values: "8-12", "45s", "1 min on / 30s off".

Return ONLY valid JSON for the program response.
No markdown, no comments, no extra keys.`, text, prefBlock, schema.TargetDays(prefs)), nil
}

// BuildRepairPrompt asks the model to correct badJSON given the
// validation report validationErr.
func BuildRepairPrompt(validationErr, badJSON string) string {
	if r := []rune(validationErr); len(r) > maxRepairErrorLen {
		validationErr = string(r[:maxRepairErrorLen])
	}
	return fmt.Sprintf(`Fix this JSON so it validates.

Validation errors:
%s

Bad JSON:
%s

Output ONLY the corrected JSON.`, validationErr, badJSON)
}
