package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizerStripsScripts(t *testing.T) {
	out := NewSanitizer().Sanitize(`<p onclick="steal()">hi</p><script>alert(1)</script><a href="javascript:alert(1)">x</a>`)

	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "hi")
}

func TestSanitizerKeepsConverterMarkup(t *testing.T) {
	in := `<div class="pdf-content"><div class="pdf-page" data-page="1"><p>Hello</p></div></div>`
	assert.Equal(t, in, NewSanitizer().Sanitize(in))
}
