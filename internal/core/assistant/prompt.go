package assistant

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"ai-study-buddy/internal/core/extract"
)

const (
	// Document content beyond this many characters is cut and marked.
	maxEmbeddedChars = 12000
	truncationMarker = "\n\n[Content truncated for length...]"

	// Extracted text at or below this trimmed length is too thin to analyze;
	// the composer falls back to the metadata-only prompt.
	minUsableChars = 50

	defaultDifficulty          = "medium"
	defaultAnalysisInstruction = "Provide general analysis and feedback"
	defaultFallbackInstruction = "Provide general document feedback"
)

// preamble returns the per-intent system text prepended to the user content.
func preamble(i Intent) string {
	switch i {
	case IntentCode:
		return "You are an expert programming assistant. Provide clear, concise code help with explanations. " +
			"If there are errors, explain what's wrong and how to fix them. " +
			"If it's a concept, explain it with examples."
	case IntentExplain:
		return "You are a patient teacher. Explain this concept in simple, easy-to-understand terms. " +
			"Use analogies and real-world examples. Break down complex ideas into smaller parts."
	case IntentQuiz:
		return "You are a quiz master. Create clear, fair, and educational questions. " +
			"Ensure questions test understanding and options are well-distracted."
	case IntentDocument:
		return "You are a professional document analyst. Provide thorough, constructive, and actionable feedback. " +
			"Be specific about strengths and areas for improvement with concrete examples."
	case IntentSummary:
		return "You are a summarization expert. Extract key information and present it clearly. " +
			"Maintain the original meaning while being concise."
	case IntentGeneral:
		return "You are a helpful AI study buddy. Provide accurate, educational, and engaging responses. " +
			"Be clear and supportive in your explanations."
	}
	return preamble(IntentGeneral)
}

// ComposeChat builds the prompt for general, code and explain requests:
// preamble plus the raw user message, no further structuring.
func ComposeChat(intent Intent, message string) string {
	return preamble(intent) + "\n\n" + message
}

const quizTemplate = `Generate a %d-question multiple choice quiz on the topic: "%s".
Difficulty level: %s.

Format requirements:
- Each question should be clear and concise
- Provide exactly 4 options (A, B, C, D) for each question
- Mark the correct answer clearly
- Questions should test understanding, not just memorization
- Make options plausible but distinct

Format each question like this:
Question: [question text]
A) [option A]
B) [option B]
C) [option C]
D) [option D]
Correct: [A/B/C/D]

Generate exactly %d questions.`

// ComposeQuiz builds the quiz prompt. The A-D option labels and the
// "Correct:" line are a textual contract downstream parsers rely on.
// QuestionCount is bounds-checked upstream, never clamped here.
func ComposeQuiz(spec QuizSpec) string {
	difficulty := strings.TrimSpace(spec.Difficulty)
	if difficulty == "" {
		difficulty = defaultDifficulty
	}
	body := fmt.Sprintf(quizTemplate, spec.QuestionCount, spec.Topic, difficulty, spec.QuestionCount)
	return preamble(IntentQuiz) + "\n\n" + body
}

const contentAnalysisTemplate = `You are an expert document analyzer. Please analyze this document and provide detailed feedback based on the user's specific instructions.

===== USER INSTRUCTIONS =====
"%s"

===== DOCUMENT CONTENT =====
Filename: %s
Filetype: %s
Filesize: %d bytes

CONTENT:
%s

===== ANALYSIS REQUEST =====
Please provide a comprehensive analysis with:

1. CONTENT SUMMARY:
   - Main topics and key points covered
   - Overall purpose and primary message
   - Target audience assessment

2. QUALITY ASSESSMENT:
   - Key strengths and effective elements
   - Areas needing improvement
   - Clarity, organization, and structure

3. SPECIFIC FEEDBACK:
   - Direct responses to user instructions: "%s"
   - Actionable recommendations with examples
   - Concrete improvement suggestions

4. PROFESSIONAL RECOMMENDATIONS:
   - Best practices implementation
   - Industry standards alignment
   - Enhancement opportunities

Focus on being specific, constructive, and providing concrete examples. If suggesting changes, show exactly how they should be implemented.`

const fallbackAnalysisTemplate = `You are an expert document analyzer. Please provide detailed feedback on the document based on the user's instructions.

===== DOCUMENT INFORMATION =====
- Filename: %s
- Filetype: %s
- Size: %d bytes
- User Instructions: "%s"

===== ANALYSIS REQUEST =====
Since the document content cannot be directly accessed, please provide comprehensive guidance on:

1. DOCUMENT TYPE BEST PRACTICES:
   - Industry standards for %s files
   - Common structures and formats expected
   - Professional presentation requirements

2. CONTENT STRATEGY:
   - Key elements that should be included
   - Optimal information organization
   - Audience engagement techniques

3. QUALITY IMPROVEMENT:
   - Common issues to avoid for this document type
   - Enhancement opportunities
   - Professional presentation standards

4. SPECIFIC RECOMMENDATIONS:
   - Actionable improvement steps
   - Tools and resources for enhancement
   - Best practice examples

5. USER INSTRUCTION FOCUS:
   - Direct advice based on: "%s"
   - Step-by-step implementation guide
   - Expected outcomes and benefits

Provide specific, actionable advice that the user can implement immediately.`

// ComposeDocument builds the document analysis prompt. The content branch is
// taken only when extraction produced more than minUsableChars of trimmed
// text; otherwise the fallback branch asks for generic best-practice guidance
// and never claims to have read the document.
func ComposeDocument(spec DocumentSpec, content *extract.Content) string {
	if content != nil && utf8.RuneCountInString(strings.TrimSpace(content.Text)) > minUsableChars {
		instructions := strings.TrimSpace(spec.Instructions)
		if instructions == "" {
			instructions = defaultAnalysisInstruction
		}
		body := fmt.Sprintf(contentAnalysisTemplate,
			instructions,
			spec.Filename,
			spec.MediaType,
			spec.Size,
			capContent(content.Text),
			instructions,
		)
		return preamble(IntentDocument) + "\n\n" + body
	}

	instructions := strings.TrimSpace(spec.Instructions)
	if instructions == "" {
		instructions = defaultFallbackInstruction
	}
	body := fmt.Sprintf(fallbackAnalysisTemplate,
		spec.Filename,
		spec.MediaType,
		spec.Size,
		instructions,
		spec.MediaType,
		instructions,
	)
	return preamble(IntentDocument) + "\n\n" + body
}

// capContent counts characters, not bytes, and cuts on a rune boundary so
// multi-byte text is never split mid-sequence.
func capContent(text string) string {
	if utf8.RuneCountInString(text) > maxEmbeddedChars {
		return string([]rune(text)[:maxEmbeddedChars]) + truncationMarker
	}
	return text
}

const summaryTemplate = `Please summarize the following text. %s

Text to summarize:
%s

Focus on:
- Main ideas and key points
- Important details and facts
- Overall purpose or conclusion`

// ComposeSummary builds the summarization prompt; the style only selects the
// length instruction, the source text is embedded unmodified.
func ComposeSummary(spec SummarySpec) string {
	var lengthInstruction string
	switch spec.Style {
	case "brief":
		lengthInstruction = "Provide a very brief summary (2-3 sentences)."
	case "bullet":
		lengthInstruction = "Provide a summary in bullet points."
	case "detailed":
		lengthInstruction = "Provide a detailed summary with key points."
	default:
		lengthInstruction = "Provide a concise summary."
	}
	body := fmt.Sprintf(summaryTemplate, lengthInstruction, spec.Text)
	return preamble(IntentSummary) + "\n\n" + body
}
