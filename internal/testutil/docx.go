package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`<Override PartName="/word/settings.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"/>` +
		`</Types>`

	packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`</Relationships>`

	documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings" Target="settings.xml"/>` +
		`</Relationships>`

	settingsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:settings xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:zoom w:percent="100"/></w:settings>`

	documentOpen = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"><w:body>`

	documentClose = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`
)

// Escape escapes text for inclusion in XML.
func Escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// Run returns a w:r holding text.
func Run(text string) string {
	return `<w:r><w:rPr><w:rFonts w:ascii="Arial"/><w:sz w:val="20"/></w:rPr>` +
		`<w:t xml:space="preserve">` + Escape(text) + `</w:t></w:r>`
}

// Para returns a paragraph whose text is split across the given runs.
func Para(runs ...string) string {
	var b strings.Builder
	b.WriteString(`<w:p>`)
	for _, r := range runs {
		b.WriteString(Run(r))
	}
	b.WriteString(`</w:p>`)
	return b.String()
}

// DrawingPara returns a paragraph holding text followed by an inline drawing.
func DrawingPara(text string) string {
	return `<w:p>` + Run(text) + `<w:r><w:drawing><wp:inline><wp:extent cx="100" cy="100"/>` +
		`<wp:docPr id="7" name="Old picture"/></wp:inline></w:drawing></w:r></w:p>`
}

// FieldPara returns a paragraph with a complex field around text.
func FieldPara(text string) string {
	return `<w:p><w:r><w:fldChar w:fldCharType="begin"/></w:r>` +
		`<w:r><w:instrText xml:space="preserve"> PAGEREF _Toc1 \h </w:instrText></w:r>` +
		`<w:r><w:fldChar w:fldCharType="separate"/></w:r>` + Run(text) +
		`<w:r><w:fldChar w:fldCharType="end"/></w:r></w:p>`
}

// TableXML returns a table with one paragraph per cell.
func TableXML(rows [][]string) string {
	var b strings.Builder
	b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/></w:tblPr>`)
	for _, row := range rows {
		b.WriteString(`<w:tr>`)
		for _, cell := range row {
			b.WriteString(`<w:tc>`)
			if cell == "" {
				b.WriteString(`<w:p/>`)
			} else {
				b.WriteString(Para(cell))
			}
			b.WriteString(`</w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)
	return b.String()
}

// DocumentXML wraps body markup into a complete main document part.
func DocumentXML(body ...string) string {
	return documentOpen + strings.Join(body, "") + documentClose
}

// WriteDocx writes a minimal Word package whose body holds the given blocks.
func WriteDocx(t *testing.T, path string, body ...string) {
	t.Helper()

	WriteDocxParts(t, path, map[string]string{"word/document.xml": DocumentXML(body...)})
}

// WriteDocxParts writes a minimal Word package, replacing or adding the given parts.
func WriteDocxParts(t *testing.T, path string, parts map[string]string) {
	t.Helper()

	data, err := DocxBytes(parts)
	require.NoError(t, err)
	WriteFile(t, path, data)
}

// DocxBytes builds a minimal Word package, replacing or adding the given parts.
func DocxBytes(parts map[string]string) ([]byte, error) {
	all := map[string]string{
		"[Content_Types].xml":          contentTypesXML,
		"_rels/.rels":                  packageRelsXML,
		"word/_rels/document.xml.rels": documentRelsXML,
		"word/settings.xml":            settingsXML,
		"word/document.xml":            DocumentXML(),
	}
	for name, content := range parts {
		all[name] = content
	}

	order := []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/_rels/document.xml.rels", "word/settings.xml"}
	for name := range parts {
		if !containsString(order, name) {
			order = append(order, name)
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(all[name])); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadDocxPart returns the raw content of a part of the package at path.
func ReadDocxPart(t *testing.T, path, name string) string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()
		var b bytes.Buffer
		_, err = b.ReadFrom(rc)
		require.NoError(t, err)
		return b.String()
	}
	require.Failf(t, "part not found", "%s has no part %s", path, name)
	return ""
}

// DocxHasPart reports whether the package at path contains the named part.
func DocxHasPart(path, name string) bool {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	defer func() { _ = zr.Close() }()
	for _, f := range zr.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
