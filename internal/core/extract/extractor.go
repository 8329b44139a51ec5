package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Content is the plain text pulled out of an uploaded file.
type Content struct {
	Text      string
	MediaType string
	Size      int64
}

// FromBytes converts uploaded file bytes into plain text. A nil return means
// the file is unextractable (unsupported type, broken PDF, empty text layer);
// that is not an error, callers fall back to a metadata-only prompt.
// FromBytes never panics and never returns an error.
func FromBytes(data []byte, mediaType string) *Content {
	switch {
	case mediaType == "text/plain":
		// Verbatim decode; byte length is preserved.
		return &Content{Text: string(data), MediaType: mediaType, Size: int64(len(data))}

	case mediaType == "application/pdf":
		text := pdfText(data)
		if strings.TrimSpace(text) == "" {
			// A scanned PDF has no text layer; an empty string would make a
			// degenerate prompt, so it falls through to the fallback path.
			return nil
		}
		return &Content{Text: text, MediaType: mediaType, Size: int64(len(data))}

	default:
		// image/* (no OCR) and Word documents are not extracted.
		return nil
	}
}

// pdfText renders a PDF to plain text page by page. Parse errors and panics
// from the pdf library are swallowed into an empty result.
func pdfText(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String()
}
