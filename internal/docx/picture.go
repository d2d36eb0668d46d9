package docx

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

var contentTypeByExt = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
}

// Picture is an image ready to be embedded.
type Picture struct {
	Data []byte
	// Ext is the file extension without the dot: png or jpeg.
	Ext string
	// Size of the drawing in EMU.
	Width  int64
	Height int64
}

// AddPicture appends an inline drawing of pic to the paragraph, storing the
// image under word/media and registering its relationship and content type.
func (d *Document) AddPicture(p *Paragraph, pic Picture) error {
	ext := strings.ToLower(strings.TrimPrefix(pic.Ext, "."))
	contentType, ok := contentTypeByExt[ext]
	if !ok {
		return fmt.Errorf("unsupported picture format %q", pic.Ext)
	}
	if len(pic.Data) == 0 || pic.Width <= 0 || pic.Height <= 0 {
		return errors.New("empty picture")
	}

	mediaName := d.nextMediaName(ext)
	d.PutPart(mediaName, pic.Data)

	if err := d.registerContentType(ext, contentType); err != nil {
		return err
	}
	relID, err := d.addRelationship(relTypeImage, strings.TrimPrefix(mediaName, "word/"))
	if err != nil {
		return err
	}

	id := d.nextDrawingID()
	run, err := drawingRun(relID, id, path.Base(mediaName), pic.Width, pic.Height)
	if err != nil {
		return err
	}
	p.el.AddChild(run)
	return nil
}

func (d *Document) nextMediaName(ext string) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("word/media/product%d.%s", i, ext)
		if !d.HasPart(name) {
			return name
		}
	}
}

func (d *Document) registerContentType(ext, contentType string) error {
	doc, err := d.Part(ContentTypesPart)
	if err != nil {
		return err
	}
	root := doc.Root()
	for _, def := range root.SelectElements("Default") {
		if strings.EqualFold(def.SelectAttrValue("Extension", ""), ext) {
			return nil
		}
	}
	def := etree.NewElement("Default")
	def.CreateAttr("Extension", ext)
	def.CreateAttr("ContentType", contentType)
	root.InsertChildAt(0, def)
	return nil
}

// addRelationship registers a target of the main document and returns its id.
func (d *Document) addRelationship(relType, target string) (string, error) {
	doc, err := d.Part(DocumentRelsPart)
	if err != nil {
		return "", err
	}
	root := doc.Root()

	maxID := 0
	for _, rel := range root.SelectElements("Relationship") {
		id := strings.TrimPrefix(rel.SelectAttrValue("Id", ""), "rId")
		if n, err := strconv.Atoi(id); err == nil && n > maxID {
			maxID = n
		}
	}
	relID := "rId" + strconv.Itoa(maxID+1)

	rel := root.CreateElement("Relationship")
	rel.CreateAttr("Id", relID)
	rel.CreateAttr("Type", relType)
	rel.CreateAttr("Target", target)
	return relID, nil
}

// nextDrawingID returns an unused wp:docPr id.
func (d *Document) nextDrawingID() int {
	maxID := 0
	if body := d.Body(); body != nil {
		for _, pr := range body.FindElements(".//wp:docPr") {
			if n, err := strconv.Atoi(pr.SelectAttrValue("id", "")); err == nil && n > maxID {
				maxID = n
			}
		}
	}
	return maxID + 1
}

const drawingTemplate = `<w:r xmlns:w="%[6]s"><w:drawing>` +
	`<wp:inline xmlns:wp="%[7]s" distT="0" distB="0" distL="0" distR="0">` +
	`<wp:extent cx="%[4]d" cy="%[5]d"/>` +
	`<wp:docPr id="%[2]d" name="Picture %[2]d"/>` +
	`<wp:cNvGraphicFramePr><a:graphicFrameLocks xmlns:a="%[8]s" noChangeAspect="1"/></wp:cNvGraphicFramePr>` +
	`<a:graphic xmlns:a="%[8]s"><a:graphicData uri="%[9]s">` +
	`<pic:pic xmlns:pic="%[9]s">` +
	`<pic:nvPicPr><pic:cNvPr id="0" name="%[3]s"/><pic:cNvPicPr/></pic:nvPicPr>` +
	`<pic:blipFill><a:blip xmlns:r="%[10]s" r:embed="%[1]s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>` +
	`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%[4]d" cy="%[5]d"/></a:xfrm>` +
	`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>` +
	`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`

func drawingRun(relID string, id int, name string, cx, cy int64) (*etree.Element, error) {
	markup := fmt.Sprintf(drawingTemplate, relID, id, name, cx, cy,
		NamespaceW, NamespaceWP, NamespaceA, NamespacePic, NamespaceR)
	frag := etree.NewDocument()
	if err := frag.ReadFromString(markup); err != nil {
		return nil, fmt.Errorf("build drawing: %w", err)
	}
	run := frag.Root()
	frag.RemoveChild(run)
	return run, nil
}
