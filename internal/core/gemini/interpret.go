package gemini

import (
	"encoding/json"
	"strings"
)

const (
	emptyResponseMessage = "Empty response from API. Please try again."
	noTextFieldMessage   = "No 'text' field found in response. Please check the API response format."
	noTextContentMessage = "Could not find text content in response."

	// maxRawEcho bounds how much of an unrecognized body is echoed back in
	// diagnostics; upstream error payloads can be arbitrarily large.
	maxRawEcho = 2048
)

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Interpret extracts the generated text from a raw generateContent response.
// It always returns a value: the generated text on success, a diagnostic
// string otherwise. Structured parsing is tried first; if the body is not
// valid JSON at all, a heuristic scan for the first "text" field takes over.
func Interpret(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return emptyResponseMessage
	}

	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return scanTextField(body)
	}

	// candidates[0].content.parts[0].text is the upstream success contract.
	if len(resp.Candidates) > 0 {
		parts := resp.Candidates[0].Content.Parts
		if len(parts) > 0 && parts[0].Text != nil {
			return strings.TrimSpace(*parts[0].Text)
		}
	}

	if resp.Error != nil {
		return "API Error: " + resp.Error.Message
	}

	return "Could not extract text from response. Raw response: " + boundedEcho(body)
}

// scanTextField is the forgiving fallback for malformed JSON: locate the
// first "text" key textually and lift the quoted string after its colon.
// Escaped quotes inside the value will cut it short; that is accepted, the
// scan only exists to salvage something from schema-drifted responses.
func scanTextField(body string) string {
	idx := strings.Index(body, `"text"`)
	if idx == -1 {
		return noTextFieldMessage
	}
	rest := body[idx+len(`"text"`):]

	colon := strings.Index(rest, ":")
	if colon == -1 {
		return noTextContentMessage
	}
	rest = rest[colon+1:]

	first := strings.Index(rest, `"`)
	if first == -1 {
		return noTextContentMessage
	}
	rest = rest[first+1:]

	second := strings.Index(rest, `"`)
	if second == -1 {
		return noTextContentMessage
	}

	extracted := rest[:second]
	extracted = strings.ReplaceAll(extracted, `\n`, "\n")
	extracted = strings.ReplaceAll(extracted, `\"`, `"`)
	extracted = strings.ReplaceAll(extracted, `\t`, "\t")
	return strings.TrimSpace(extracted)
}

func boundedEcho(body string) string {
	if len(body) <= maxRawEcho {
		return body
	}
	return body[:maxRawEcho] + "..."
}
