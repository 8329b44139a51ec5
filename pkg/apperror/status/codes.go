package status

// ErrorCode is a numeric code to classify API errors in a stable way
type ErrorCode int

// Reserved ranges by domain:
//   0-999:     client/validation errors
//   1000-1999: internal errors

// Client/validation errors start at 0
const (
	InvalidRequestBody ErrorCode = iota // 0
	MissingMessage                      // 1
	MissingQuizTopic                    // 2
	InvalidQuestionCount                // 3
	MissingFile                         // 4
	FileTooLarge                        // 5
	UnsupportedFileType                 // 6
	MissingSummaryText                  // 7
)

// Internal errors start at 1000
const (
	Internal      ErrorCode = 1000 + iota // 1000
	NotConfigured                         // 1001
)

// SuccessCode mirrors ErrorCode for success envelopes
type SuccessCode int

const (
	OK SuccessCode = 200
)
