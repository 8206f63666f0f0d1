package staging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"My Report 2024.pdf", "My_Report_2024.pdf"},
		{"../../etc/passwd.pdf", "etc_passwd.pdf"},
		{`C:\Users\me\notes.docx`, "C_Users_me_notes.docx"},
		{"résumé.docx", "resume.docx"},
		{"  .hidden.pdf", "hidden.pdf"},
		{"a;rm -rf;.pdf", "arm_-rf.pdf"},
		{"日本語.pdf", "pdf"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}
