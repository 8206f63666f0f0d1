package converter

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/ledongthuc/pdf"

	"inkwell-cms/models"
)

type pdfConverter struct{}

// NewPDFConverter extracts the plain text of every page. Layout and images
// are dropped.
func NewPDFConverter() Converter {
	return &pdfConverter{}
}

func (c *pdfConverter) Format() Format { return FormatPDF }

func (c *pdfConverter) Name() string { return "pdf" }

func (c *pdfConverter) Convert(ctx context.Context, path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", models.ConversionError("could not open pdf", err)
	}
	defer f.Close()

	var b strings.Builder
	b.WriteString(`<div class="pdf-content">`)
	for n := 1; n <= r.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, `<div class="pdf-page" data-page="%d"><p>%s</p></div>`, n, html.EscapeString(pageText(r.Page(n))))
	}
	b.WriteString(`</div>`)
	return b.String(), nil
}

// pageText yields "" for pages without a text layer.
func pageText(p pdf.Page) string {
	if p.V.IsNull() {
		return ""
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
