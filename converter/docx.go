package converter

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"inkwell-cms/models"
)

const (
	docxBodyPart    = "word/document.xml"
	maxDocxBodySize = 64 << 20

	wordNamespace          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	compatibilityNamespace = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

type docxConverter struct{}

// NewDOCXConverter maps WordprocessingML onto HTML: paragraphs, headings,
// quotes, bold/italic/underline runs, line breaks, bullet lists and tables.
func NewDOCXConverter() Converter {
	return &docxConverter{}
}

func (c *docxConverter) Format() Format { return FormatDOCX }

func (c *docxConverter) Name() string { return "docx" }

func (c *docxConverter) Convert(ctx context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", models.ConversionError("could not open docx archive", err)
	}
	defer zr.Close()

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", models.ConversionError("not a word document", fmt.Errorf("missing %s", docxBodyPart))
	}

	rc, err := part.Open()
	if err != nil {
		return "", models.ConversionError("could not read document body", err)
	}
	defer rc.Close()

	root, err := parseDocumentXML(ctx, io.LimitReader(rc, maxDocxBodySize))
	if err != nil {
		return "", err
	}
	if root.FirstChild == nil {
		return "", models.ConversionError("document has no readable content", nil)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", models.ConversionError("could not render html", err)
	}
	return buf.String(), nil
}

type docxRun struct {
	bold, italic, underline bool
	nodes                   []*html.Node
}

type docxParagraph struct {
	style    string
	numbered bool
	runs     []*html.Node
}

// docxWalker tracks where the decoder is inside the body. containers is the
// stack of nodes paragraphs are appended to: the root, then table cells.
// table and rows nest the same way for tables inside cells.
type docxWalker struct {
	containers []*html.Node
	table      []*html.Node
	rows       []*html.Node
	paras      []*docxParagraph
	run        *docxRun
	inRunProps bool
	inText     bool
}

func parseDocumentXML(ctx context.Context, r io.Reader) (*html.Node, error) {
	root := element(atom.Div, html.Attribute{Key: "class", Val: "docx-content"})
	w := &docxWalker{containers: []*html.Node{root}}

	dec := xml.NewDecoder(r)
	skip := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, models.ConversionError("malformed document xml", err)
		}

		// mc:Fallback repeats the content of mc:Choice for older readers.
		switch t := tok.(type) {
		case xml.StartElement:
			if skip > 0 || (t.Name.Space == compatibilityNamespace && t.Name.Local == "Fallback") {
				skip++
				continue
			}
			if t.Name.Space == wordNamespace {
				w.start(t)
			}
		case xml.EndElement:
			if skip > 0 {
				skip--
				continue
			}
			if t.Name.Space == wordNamespace {
				w.end(t)
			}
		case xml.CharData:
			if skip == 0 && w.inText && w.run != nil {
				w.run.nodes = append(w.run.nodes, &html.Node{Type: html.TextNode, Data: string(t)})
			}
		}
	}
	return root, nil
}

func (w *docxWalker) start(t xml.StartElement) {
	switch t.Name.Local {
	case "tbl":
		table := element(atom.Table)
		w.current().AppendChild(table)
		w.table = append(w.table, table)
	case "tr":
		if len(w.table) > 0 {
			row := element(atom.Tr)
			w.table[len(w.table)-1].AppendChild(row)
			w.rows = append(w.rows, row)
		}
	case "tc":
		if len(w.rows) > 0 {
			cell := element(atom.Td)
			w.rows[len(w.rows)-1].AppendChild(cell)
			w.containers = append(w.containers, cell)
		}
	case "p":
		w.paras = append(w.paras, &docxParagraph{})
	case "pStyle":
		if p := w.para(); p != nil {
			p.style = attr(t, "val")
		}
	case "numPr":
		if p := w.para(); p != nil {
			p.numbered = true
		}
	case "r":
		w.run = &docxRun{}
	case "rPr":
		w.inRunProps = w.run != nil
	case "b":
		if w.inRunProps {
			w.run.bold = toggleOn(t)
		}
	case "i":
		if w.inRunProps {
			w.run.italic = toggleOn(t)
		}
	case "u":
		if w.inRunProps {
			w.run.underline = attr(t, "val") != "none"
		}
	case "t":
		w.inText = true
	case "tab":
		if w.run != nil {
			w.run.nodes = append(w.run.nodes, &html.Node{Type: html.TextNode, Data: "\t"})
		}
	case "br", "cr":
		if w.run != nil {
			w.run.nodes = append(w.run.nodes, element(atom.Br))
		}
	}
}

func (w *docxWalker) end(t xml.EndElement) {
	switch t.Name.Local {
	case "t":
		w.inText = false
	case "rPr":
		w.inRunProps = false
	case "r":
		if p := w.para(); w.run != nil && p != nil {
			p.runs = append(p.runs, w.run.render()...)
		}
		w.run = nil
	case "p":
		if p := w.para(); p != nil {
			w.paras = w.paras[:len(w.paras)-1]
			w.flush(p)
		}
	case "tc":
		if len(w.containers) > 1 {
			w.containers = w.containers[:len(w.containers)-1]
		}
	case "tr":
		if len(w.rows) > 0 {
			w.rows = w.rows[:len(w.rows)-1]
		}
	case "tbl":
		if len(w.table) > 0 {
			w.table = w.table[:len(w.table)-1]
		}
	}
}

// para is the innermost open paragraph; text boxes nest paragraphs.
func (w *docxWalker) para() *docxParagraph {
	if len(w.paras) == 0 {
		return nil
	}
	return w.paras[len(w.paras)-1]
}

func (w *docxWalker) current() *html.Node {
	return w.containers[len(w.containers)-1]
}

// flush appends a finished paragraph to the current container. Paragraphs
// with no text are dropped; consecutive list paragraphs share one <ul>.
func (w *docxWalker) flush(p *docxParagraph) {
	if !hasText(p.runs) {
		return
	}

	parent := w.current()
	if p.numbered {
		list := parent.LastChild
		if list == nil || list.DataAtom != atom.Ul {
			list = element(atom.Ul)
			parent.AppendChild(list)
		}
		parent = list
	}

	block := element(blockFor(p))
	for _, n := range p.runs {
		block.AppendChild(n)
	}
	parent.AppendChild(block)
}

func blockFor(p *docxParagraph) atom.Atom {
	if p.numbered {
		return atom.Li
	}
	style := strings.ToLower(strings.ReplaceAll(p.style, " ", ""))
	switch {
	case style == "title":
		return atom.H1
	case style == "subtitle":
		return atom.H2
	case strings.HasPrefix(style, "heading") && len(style) == len("heading")+1:
		switch style[len(style)-1] {
		case '1':
			return atom.H1
		case '2':
			return atom.H2
		case '3':
			return atom.H3
		case '4':
			return atom.H4
		case '5':
			return atom.H5
		case '6':
			return atom.H6
		}
	case strings.Contains(style, "quote"):
		return atom.Blockquote
	}
	return atom.P
}

// render wraps the run's text in the inline elements its properties call for.
func (r *docxRun) render() []*html.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	nodes := r.nodes
	for _, wrap := range []struct {
		on  bool
		tag atom.Atom
	}{{r.underline, atom.U}, {r.italic, atom.Em}, {r.bold, atom.Strong}} {
		if !wrap.on {
			continue
		}
		outer := element(wrap.tag)
		for _, n := range nodes {
			outer.AppendChild(n)
		}
		nodes = []*html.Node{outer}
	}
	return nodes
}

func hasText(nodes []*html.Node) bool {
	for _, n := range nodes {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if hasText([]*html.Node{c}) {
				return true
			}
		}
	}
	return false
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(t xml.StartElement, local string) string {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// toggleOn reads w:b / w:i, where a bare element means on.
func toggleOn(t xml.StartElement) bool {
	switch attr(t, "val") {
	case "0", "false", "off":
		return false
	default:
		return true
	}
}
