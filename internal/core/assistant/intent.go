package assistant

import "ai-study-buddy/internal/core/gemini"

// Intent is the closed set of request categories. It selects the prompt
// preamble and the generation tuning; adding one is a compile-time change
// because every switch over Intent is exhaustive.
type Intent int

const (
	IntentGeneral Intent = iota
	IntentCode
	IntentExplain
	IntentQuiz
	IntentDocument
	IntentSummary
)

func (i Intent) String() string {
	switch i {
	case IntentGeneral:
		return "general"
	case IntentCode:
		return "code"
	case IntentExplain:
		return "explain"
	case IntentQuiz:
		return "quiz"
	case IntentDocument:
		return "document"
	case IntentSummary:
		return "summary"
	}
	return "general"
}

// ParseIntent maps the wire-level query type to an Intent. Unknown strings
// map to IntentGeneral, matching the behavior clients already rely on.
func ParseIntent(queryType string) Intent {
	switch queryType {
	case "code":
		return IntentCode
	case "explain":
		return IntentExplain
	case "quiz":
		return IntentQuiz
	case "document":
		return IntentDocument
	case "summary", "summarize":
		return IntentSummary
	default:
		return IntentGeneral
	}
}

// Params returns the fixed generation tuning for an intent.
func Params(i Intent) gemini.GenerationParams {
	switch i {
	case IntentCode:
		return gemini.GenerationParams{Temperature: 0.2, MaxOutputTokens: 1024}
	case IntentExplain:
		return gemini.GenerationParams{Temperature: 0.7, MaxOutputTokens: 1024}
	case IntentQuiz:
		return gemini.GenerationParams{Temperature: 0.2, MaxOutputTokens: 4096}
	case IntentDocument:
		return gemini.GenerationParams{Temperature: 0.7, MaxOutputTokens: 2048}
	case IntentSummary:
		return gemini.GenerationParams{Temperature: 0.7, MaxOutputTokens: 2048}
	case IntentGeneral:
		return gemini.GenerationParams{Temperature: 0.7, MaxOutputTokens: 1024}
	}
	return gemini.GenerationParams{Temperature: 0.7, MaxOutputTokens: 1024}
}
