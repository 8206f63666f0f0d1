package converter

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-cms/models"
	"inkwell-cms/testutils"
)

func convertDOCX(t *testing.T, body string) (string, error) {
	t.Helper()
	path := writeTemp(t, "doc.docx", testutils.DOCX(body))
	return NewRegistry().Convert(context.Background(), path, FormatDOCX)
}

func TestDOCXHeadingsAndParagraphs(t *testing.T) {
	html, err := convertDOCX(t,
		testutils.Paragraph("Title", "Annual Report")+
			testutils.Paragraph("Heading2", "Summary")+
			testutils.Paragraph("", "Revenue grew & costs fell."))
	require.NoError(t, err)

	assert.Equal(t,
		`<div class="docx-content"><h1>Annual Report</h1><h2>Summary</h2><p>Revenue grew &amp; costs fell.</p></div>`,
		html)
	assert.True(t, utf8.ValidString(html))
}

func TestDOCXRunFormatting(t *testing.T) {
	body := `<w:p>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t>bold</w:t></w:r>` +
		`<w:r><w:t xml:space="preserve"> and </w:t></w:r>` +
		`<w:r><w:rPr><w:i/><w:b w:val="0"/></w:rPr><w:t>italic</w:t></w:r>` +
		`<w:r><w:br/><w:t>next</w:t></w:r>` +
		`</w:p>`

	html, err := convertDOCX(t, body)
	require.NoError(t, err)
	assert.Equal(t,
		`<div class="docx-content"><p><strong>bold</strong> and <em>italic</em><br/>next</p></div>`,
		html)
}

func TestDOCXListsAndTables(t *testing.T) {
	item := func(text string) string {
		return `<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>` +
			`<w:r><w:t>` + text + `</w:t></w:r></w:p>`
	}
	body := item("first") + item("second") +
		testutils.Paragraph("", "between") +
		`<w:tbl><w:tr><w:tc>` + testutils.Paragraph("", "a1") + `</w:tc><w:tc>` + testutils.Paragraph("", "b1") + `</w:tc></w:tr></w:tbl>`

	html, err := convertDOCX(t, body)
	require.NoError(t, err)
	assert.Equal(t,
		`<div class="docx-content"><ul><li>first</li><li>second</li></ul><p>between</p>`+
			`<table><tr><td><p>a1</p></td><td><p>b1</p></td></tr></table></div>`,
		html)
}

func TestDOCXNestedTable(t *testing.T) {
	inner := `<w:tbl><w:tr><w:tc>` + testutils.Paragraph("", "in") + `</w:tc></w:tr></w:tbl>`
	body := `<w:tbl><w:tr><w:tc>` + inner + `</w:tc><w:tc>` + testutils.Paragraph("", "B") + `</w:tc></w:tr></w:tbl>`

	html, err := convertDOCX(t, body)
	require.NoError(t, err)
	assert.Equal(t,
		`<div class="docx-content"><table><tr><td><table><tr><td><p>in</p></td></tr></table></td>`+
			`<td><p>B</p></td></tr></table></div>`,
		html)
}

func TestDOCXTextBoxRenderedOnce(t *testing.T) {
	box := testutils.Paragraph("", "boxed")
	drawing := `<w:p><w:r>` +
		`<mc:AlternateContent xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"` +
		` xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"` +
		` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:v="urn:schemas-microsoft-com:vml">` +
		`<mc:Choice Requires="wps"><w:drawing><wps:wsp>` +
		`<a:p><a:r><a:t>shape label</a:t></a:r></a:p>` +
		`<wps:txbx><w:txbxContent>` + box + `</w:txbxContent></wps:txbx>` +
		`</wps:wsp></w:drawing></mc:Choice>` +
		`<mc:Fallback><w:pict><v:shape><v:textbox><w:txbxContent>` + box + `</w:txbxContent></v:textbox></v:shape></w:pict></mc:Fallback>` +
		`</mc:AlternateContent>` +
		`</w:r></w:p>`

	html, err := convertDOCX(t, drawing+testutils.Paragraph("", "after"))
	require.NoError(t, err)
	assert.Equal(t, `<div class="docx-content"><p>boxed</p><p>after</p></div>`, html)
	assert.NotContains(t, html, "shape label")
}

func TestDOCXSkipsEmptyParagraphs(t *testing.T) {
	html, err := convertDOCX(t, `<w:p/>`+testutils.Paragraph("", "only")+`<w:p><w:r><w:t>   </w:t></w:r></w:p>`)
	require.NoError(t, err)
	assert.Equal(t, `<div class="docx-content"><p>only</p></div>`, html)
}

func TestDOCXEmptyDocument(t *testing.T) {
	_, err := convertDOCX(t, `<w:p/>`)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConversion)
	assert.Contains(t, err.Error(), "no readable content")
}

func TestDOCXNotAZip(t *testing.T) {
	path := writeTemp(t, "fake.docx", []byte("plain text pretending to be a docx"))

	_, err := NewRegistry().Convert(context.Background(), path, FormatDOCX)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConversion)
	assert.Contains(t, err.Error(), "could not open docx archive")
}

func TestDOCXMalformedXML(t *testing.T) {
	_, err := convertDOCX(t, `<w:p><w:r><w:t>unterminated</w:r></w:p>`)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConversion)
}

func TestRegistryUnknownFormat(t *testing.T) {
	_, err := NewRegistry().Convert(context.Background(), "/nonexistent", FormatUnknown)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConversion)
}

type panickingConverter struct{}

func (panickingConverter) Convert(context.Context, string) (string, error) { panic("engine exploded") }
func (panickingConverter) Format() Format                                  { return FormatPDF }
func (panickingConverter) Name() string                                    { return "pdf" }

func TestRegistryRecoversEnginePanic(t *testing.T) {
	r := NewRegistry()
	r.Register(panickingConverter{})

	_, err := r.Convert(context.Background(), "/whatever.pdf", FormatPDF)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConversion)
	assert.Contains(t, err.Error(), "engine exploded")
}
