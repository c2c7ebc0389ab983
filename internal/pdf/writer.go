// Package pdf writes minimal PDF 1.4 documents with nothing but Helvetica
// text lines. It covers the export snapshots this service needs without
// pulling in a rendering engine.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
)

const linesPerPage = 54

// Document accumulates text lines and paginates them on render.
type Document struct {
	lines []string
}

func NewDocument(title string) *Document {
	d := &Document{}
	d.lines = append(d.lines, title, strings.Repeat("=", len(title)), "")
	return d
}

func (d *Document) Heading(text string) {
	if len(d.lines) > 3 {
		d.lines = append(d.lines, "")
	}
	d.lines = append(d.lines, text, strings.Repeat("-", len(text)))
}

func (d *Document) Line(format string, args ...any) {
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
}

func (d *Document) Field(label, value string) {
	if value == "" {
		value = "-"
	}
	d.lines = append(d.lines, fmt.Sprintf("%s: %s", label, value))
}

// Checkbox renders a presence indicator. Used for document slots, where only
// whether something was provided matters, never the content behind it.
func (d *Document) Checkbox(label string, checked bool) {
	box := "[ ]"
	if checked {
		box = "[X]"
	}
	d.lines = append(d.lines, fmt.Sprintf("%s %s", box, label))
}

func (d *Document) Blank() {
	d.lines = append(d.lines, "")
}

// Bytes renders the accumulated lines as a paginated PDF.
func (d *Document) Bytes() ([]byte, error) {
	lines := d.lines
	if len(lines) == 0 {
		lines = []string{""}
	}

	var pages [][]string
	for start := 0; start < len(lines); start += linesPerPage {
		end := start + linesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}

	// Objects: 1 catalog, 2 page tree, 3 font, then a page object and a
	// content stream per page.
	pageObjNum := func(i int) int { return 4 + i*2 }
	contentObjNum := func(i int) int { return 5 + i*2 }

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", pageObjNum(i))
	}

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
			strings.Join(kids, " "), len(pages)),
		"3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
	}

	for i, pageLines := range pages {
		var content strings.Builder
		content.WriteString("BT\n/F1 11 Tf\n13 TL\n50 800 Td\n")
		for j, line := range pageLines {
			escaped := escape(line)
			if j == 0 {
				content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
				continue
			}
			content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
		}
		content.WriteString("ET")
		stream := content.String()

		objects = append(objects, fmt.Sprintf(
			"%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n",
			pageObjNum(i), contentObjNum(i)))
		objects = append(objects, fmt.Sprintf(
			"%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			contentObjNum(i), len(stream), stream))
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func escape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
