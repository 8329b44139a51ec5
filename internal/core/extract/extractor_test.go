package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromBytesPlainTextIsVerbatim(t *testing.T) {
	data := []byte("line one\nline two\tend")
	content := FromBytes(data, "text/plain")
	require.NotNil(t, content)
	require.Equal(t, string(data), content.Text)
	require.Len(t, content.Text, len(data))
	require.Equal(t, "text/plain", content.MediaType)
	require.Equal(t, int64(len(data)), content.Size)
}

func TestFromBytesImagesAreUnsupported(t *testing.T) {
	require.Nil(t, FromBytes([]byte{0x89, 0x50, 0x4e, 0x47}, "image/png"))
	require.Nil(t, FromBytes([]byte("jpegdata"), "image/jpeg"))
}

func TestFromBytesWordDocumentsAreUnsupported(t *testing.T) {
	require.Nil(t, FromBytes([]byte("doc"), "application/msword"))
	require.Nil(t, FromBytes([]byte("docx"), "application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
}

func TestFromBytesUnknownTypeIsUnsupported(t *testing.T) {
	require.Nil(t, FromBytes([]byte("zip"), "application/zip"))
}

func TestFromBytesBrokenPDFIsNilNotError(t *testing.T) {
	// Not a PDF at all; parser failure must map to nil, never panic.
	require.Nil(t, FromBytes([]byte("definitely not a pdf"), "application/pdf"))
	require.Nil(t, FromBytes([]byte("%PDF-1.4 truncated header only"), "application/pdf"))
}

func TestFromBytesEmptyPDFIsNilNotEmptyString(t *testing.T) {
	require.Nil(t, FromBytes([]byte{}, "application/pdf"))
}
