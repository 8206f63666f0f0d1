package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{"pdf", "report.pdf", true},
		{"docx", "notes.docx", true},
		{"upper case", "REPORT.PDF", true},
		{"mixed case", "Notes.DocX", true},
		{"multiple dots uses last", "archive.tar.pdf", true},
		{"last segment wins", "report.pdf.exe", false},
		{"no dot", "pdf", false},
		{"trailing dot", "report.", false},
		{"leading dot only", ".pdf", true},
		{"doc is not docx", "old.doc", false},
		{"empty", "", false},
		{"path with dots in dir", "dir.pdf/readme", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.filename))
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatPDF, DetectFormat("a.b.PDF"))
	assert.Equal(t, FormatDOCX, DetectFormat("thesis.docx"))
	assert.Equal(t, FormatUnknown, DetectFormat("thesis.odt"))
}
