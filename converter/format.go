// Package converter turns uploaded PDF and DOCX documents into embeddable
// HTML fragments.
package converter

import "strings"

// Format is the declared type of an uploaded document.
type Format string

const (
	FormatUnknown Format = ""
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
)

var allowedFormats = map[string]Format{
	"pdf":  FormatPDF,
	"docx": FormatDOCX,
}

// Extension returns the case-folded text after the last '.' in name, or ""
// when name has no '.'.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// DetectFormat classifies name by its final extension.
func DetectFormat(name string) Format {
	return allowedFormats[Extension(name)]
}

// Allowed reports whether name carries an accepted extension.
func Allowed(name string) bool {
	return DetectFormat(name) != FormatUnknown
}
