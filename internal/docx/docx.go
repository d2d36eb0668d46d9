// Package docx edits WordprocessingML packages in place: paragraph text,
// paragraph and run formatting, tables, drawings and settings.
package docx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// Package part names.
const (
	DocumentPart     = "word/document.xml"
	DocumentRelsPart = "word/_rels/document.xml.rels"
	SettingsPart     = "word/settings.xml"
	ContentTypesPart = "[Content_Types].xml"
)

// Namespace URIs used when creating elements.
const (
	NamespaceW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NamespaceWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	NamespaceA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NamespacePic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	NamespaceRel = "http://schemas.openxmlformats.org/package/2006/relationships"

	relTypeImage    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeSettings = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
)

// ErrNotDocument is returned when the package has no main document part.
var ErrNotDocument = errors.New("not a word document")

type entry struct {
	name string
	data []byte
}

// Document is an opened DOCX package held in memory.
type Document struct {
	entries []*entry
	parsed  map[string]*etree.Document
}

// Open reads the package at path.
func Open(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = zr.Close() }()

	d := &Document{parsed: make(map[string]*etree.Document)}
	for _, f := range zr.File {
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s from %s: %w", f.Name, path, err)
		}
		d.entries = append(d.entries, &entry{name: f.Name, data: data})
	}

	main, err := d.Part(DocumentPart)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if main.Root() == nil || main.Root().SelectElement("w:body") == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNotDocument)
	}
	return d, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

func (d *Document) entry(name string) *entry {
	for _, e := range d.entries {
		if e.name == name {
			return e
		}
	}
	return nil
}

// HasPart reports whether the package contains the named part.
func (d *Document) HasPart(name string) bool {
	return d.entry(name) != nil
}

// Part returns the parsed XML of a package part. Parsed parts are written
// back on Save.
func (d *Document) Part(name string) (*etree.Document, error) {
	if doc, ok := d.parsed[name]; ok {
		return doc, nil
	}
	e := d.entry(name)
	if e == nil {
		if name == DocumentPart {
			return nil, ErrNotDocument
		}
		return nil, fmt.Errorf("part %s not found", name)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(e.data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	d.parsed[name] = doc
	return doc, nil
}

// PutPart stores raw bytes, adding the part when it does not exist.
func (d *Document) PutPart(name string, data []byte) {
	delete(d.parsed, name)
	if e := d.entry(name); e != nil {
		e.data = data
		return
	}
	d.entries = append(d.entries, &entry{name: name, data: data})
}

// Body returns the w:body element of the main document.
func (d *Document) Body() *etree.Element {
	doc, err := d.Part(DocumentPart)
	if err != nil || doc.Root() == nil {
		return nil
	}
	return doc.Root().SelectElement("w:body")
}

// Paragraphs returns the body paragraphs in document order, including those
// wrapped in content controls.
func (d *Document) Paragraphs() []*Paragraph {
	body := d.Body()
	if body == nil {
		return nil
	}
	return blockParagraphs(body)
}

// Tables returns the body tables followed by the header and footer tables.
func (d *Document) Tables() []*Table {
	var tables []*Table
	if body := d.Body(); body != nil {
		tables = append(tables, blockTables(body)...)
	}
	for _, root := range d.headerFooterRoots() {
		tables = append(tables, blockTables(root)...)
	}
	return tables
}

// HeaderFooterParagraphs returns the top-level paragraphs of every header and footer part.
func (d *Document) HeaderFooterParagraphs() []*Paragraph {
	var out []*Paragraph
	for _, root := range d.headerFooterRoots() {
		out = append(out, blockParagraphs(root)...)
	}
	return out
}

func (d *Document) headerFooterRoots() []*etree.Element {
	var names []string
	for _, e := range d.entries {
		base := filepath.Base(e.name)
		if !strings.HasPrefix(e.name, "word/") || filepath.Ext(base) != ".xml" {
			continue
		}
		if strings.HasPrefix(base, "header") || strings.HasPrefix(base, "footer") {
			names = append(names, e.name)
		}
	}
	sort.Strings(names)

	var roots []*etree.Element
	for _, n := range names {
		doc, err := d.Part(n)
		if err != nil || doc.Root() == nil {
			continue
		}
		roots = append(roots, doc.Root())
	}
	return roots
}

// Save writes the package to path through a temporary file in the same directory.
func (d *Document) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".docx-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := d.write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

func (d *Document) write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, e := range d.entries {
		data := e.data
		if doc, ok := d.parsed[e.name]; ok {
			b, err := doc.WriteToBytes()
			if err != nil {
				return fmt.Errorf("serialize %s: %w", e.name, err)
			}
			data = b
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: e.name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("write %s: %w", e.name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize package: %w", err)
	}
	return nil
}

func blockParagraphs(container *etree.Element) []*Paragraph {
	var out []*Paragraph
	for _, c := range container.ChildElements() {
		switch {
		case isW(c, "p"):
			out = append(out, &Paragraph{el: c})
		case isW(c, "sdt"):
			if content := c.SelectElement("w:sdtContent"); content != nil {
				out = append(out, blockParagraphs(content)...)
			}
		}
	}
	return out
}

func blockTables(container *etree.Element) []*Table {
	var out []*Table
	for _, c := range container.ChildElements() {
		switch {
		case isW(c, "tbl"):
			out = append(out, &Table{el: c})
		case isW(c, "sdt"):
			if content := c.SelectElement("w:sdtContent"); content != nil {
				out = append(out, blockTables(content)...)
			}
		}
	}
	return out
}

func isW(el *etree.Element, tag string) bool {
	return el.Space == "w" && el.Tag == tag
}
