package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-study-buddy/internal/core/gemini"
	"ai-study-buddy/pkg/apperror/status"

	"github.com/stretchr/testify/require"
)

const successBody = `{"candidates":[{"content":{"parts":[{"text":"Hi"}]}}]}`

type fakeInvoker struct {
	calls      int
	lastPrompt string
	raw        []byte
	err        error
}

func (f *fakeInvoker) Invoke(_ context.Context, prompt string, _ gemini.GenerationParams) ([]byte, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.raw, f.err
}

func newTestService(fake *fakeInvoker) *Service {
	return NewService(fake)
}

func TestChatReturnsInterpretedAnswer(t *testing.T) {
	fake := &fakeInvoker{raw: []byte(successBody)}
	svc := newTestService(fake)

	answer, err := svc.Chat(context.Background(), ChatInput{Intent: IntentGeneral, Message: "hello"})
	require.NoError(t, err)
	require.Equal(t, "Hi", answer)
	require.Equal(t, 1, fake.calls)
	require.Contains(t, fake.lastPrompt, "hello")
}

func TestChatEmptyMessageNeverReachesClient(t *testing.T) {
	fake := &fakeInvoker{raw: []byte(successBody)}
	svc := newTestService(fake)

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := svc.Chat(context.Background(), ChatInput{Intent: IntentGeneral, Message: msg})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "message=%q", msg)
		require.Equal(t, status.MissingMessage, verr.Code, "message=%q", msg)
	}
	require.Zero(t, fake.calls)
}

func TestGenerateQuizValidation(t *testing.T) {
	fake := &fakeInvoker{raw: []byte(successBody)}
	svc := newTestService(fake)

	cases := []struct {
		name     string
		spec     QuizSpec
		want     string
		wantCode status.ErrorCode
	}{
		{"empty topic", QuizSpec{Topic: "  ", QuestionCount: 5}, "quiz topic is required", status.MissingQuizTopic},
		{"count zero", QuizSpec{Topic: "Go", QuestionCount: 0}, "question count must be between 1 and 20", status.InvalidQuestionCount},
		{"count too high", QuizSpec{Topic: "Go", QuestionCount: 21}, "question count must be between 1 and 20", status.InvalidQuestionCount},
	}
	for _, tc := range cases {
		_, err := svc.GenerateQuiz(context.Background(), tc.spec)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, tc.name)
		require.Equal(t, tc.want, verr.Error(), tc.name)
		require.Equal(t, tc.wantCode, verr.Code, tc.name)
	}
	require.Zero(t, fake.calls, "validation failures must not reach the network")
}

func TestGenerateQuizCountBounds(t *testing.T) {
	fake := &fakeInvoker{raw: []byte(successBody)}
	svc := newTestService(fake)

	for _, n := range []int{1, 20} {
		answer, err := svc.GenerateQuiz(context.Background(), QuizSpec{Topic: "Go", QuestionCount: n})
		require.NoError(t, err, "count=%d", n)
		require.Equal(t, "Hi", answer)
	}
	require.Equal(t, 2, fake.calls)
}

func TestAnalyzeDocumentValidation(t *testing.T) {
	fake := &fakeInvoker{raw: []byte(successBody)}
	svc := newTestService(fake)

	cases := []struct {
		name     string
		spec     DocumentSpec
		wantCode status.ErrorCode
	}{
		{"empty file", DocumentSpec{Filename: "a.txt", MediaType: "text/plain"}, status.MissingFile},
		{"oversized file", DocumentSpec{Filename: "a.txt", MediaType: "text/plain", Data: make([]byte, 5*1024*1024+1)}, status.FileTooLarge},
		{"disallowed type", DocumentSpec{Filename: "a.zip", MediaType: "application/zip", Data: []byte("zip")}, status.UnsupportedFileType},
	}
	for _, tc := range cases {
		_, err := svc.AnalyzeDocument(context.Background(), tc.spec)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, tc.name)
		require.Equal(t, tc.wantCode, verr.Code, tc.name)
	}
	require.Zero(t, fake.calls)
}

func TestAnalyzeDocumentContentBranch(t *testing.T) {
	fake := &fakeInvoker{raw: []byte(successBody)}
	svc := newTestService(fake)

	text := strings.Repeat("useful content ", 10)
	spec := DocumentSpec{
		Filename:  "notes.txt",
		MediaType: "text/plain",
		Size:      int64(len(text)),
		Data:      []byte(text),
	}
	answer, err := svc.AnalyzeDocument(context.Background(), spec)
	require.NoError(t, err)
	require.Equal(t, "Hi", answer)
	require.Contains(t, fake.lastPrompt, "===== DOCUMENT CONTENT =====")
	require.Contains(t, fake.lastPrompt, text)
}

func TestAnalyzeDocumentFallsBackForImages(t *testing.T) {
	fake := &fakeInvoker{raw: []byte(successBody)}
	svc := newTestService(fake)

	spec := DocumentSpec{
		Filename:  "scan.png",
		MediaType: "image/png",
		Size:      4,
		Data:      []byte{0x89, 0x50, 0x4e, 0x47},
	}
	_, err := svc.AnalyzeDocument(context.Background(), spec)
	require.NoError(t, err)
	require.Contains(t, fake.lastPrompt, "cannot be directly accessed")
	require.NotContains(t, fake.lastPrompt, "===== DOCUMENT CONTENT =====")
}

func TestSummarizeValidation(t *testing.T) {
	fake := &fakeInvoker{raw: []byte(successBody)}
	svc := newTestService(fake)

	_, err := svc.Summarize(context.Background(), SummarySpec{Text: "  "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, status.MissingSummaryText, verr.Code)
	require.Zero(t, fake.calls)
}

func TestTransportFailureBecomesApology(t *testing.T) {
	fake := &fakeInvoker{err: &gemini.TransportError{Err: errors.New("connection reset")}}
	svc := newTestService(fake)

	answer, err := svc.GenerateQuiz(context.Background(), QuizSpec{Topic: "Go", QuestionCount: 3})
	require.NoError(t, err, "transport failures resolve to a value, not an error")
	require.Contains(t, answer, "try generating the quiz again")

	answer, err = svc.Chat(context.Background(), ChatInput{Intent: IntentCode, Message: "fix this"})
	require.NoError(t, err)
	require.Contains(t, answer, "programming question")

	answer, err = svc.AnalyzeDocument(context.Background(), DocumentSpec{
		Filename: "a.txt", MediaType: "text/plain", Data: []byte("x"),
	})
	require.NoError(t, err)
	require.Contains(t, answer, "uploading your document")
}

func TestMissingKeySurfacesAsError(t *testing.T) {
	fake := &fakeInvoker{err: gemini.ErrNotConfigured}
	svc := newTestService(fake)

	_, err := svc.Chat(context.Background(), ChatInput{Intent: IntentGeneral, Message: "hello"})
	require.ErrorIs(t, err, gemini.ErrNotConfigured)
}

func TestMalformedResponseDegradesToDiagnostic(t *testing.T) {
	fake := &fakeInvoker{raw: []byte(`broken {"text": "salvaged"`)}
	svc := newTestService(fake)

	answer, err := svc.Chat(context.Background(), ChatInput{Intent: IntentGeneral, Message: "hello"})
	require.NoError(t, err)
	require.Equal(t, "salvaged", answer)
}
