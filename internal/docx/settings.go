package docx

import "github.com/beevik/etree"

// SetUpdateFieldsOnOpen asks Word to refresh fields such as the table of
// contents and page numbers when the document is opened.
func (d *Document) SetUpdateFieldsOnOpen() error {
	if !d.HasPart(SettingsPart) {
		d.PutPart(SettingsPart, []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
			`<w:settings xmlns:w="`+NamespaceW+`"/>`))
		if err := d.registerOverride("/"+SettingsPart,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"); err != nil {
			return err
		}
		if _, err := d.addRelationship(relTypeSettings, "settings.xml"); err != nil {
			return err
		}
	}

	doc, err := d.Part(SettingsPart)
	if err != nil {
		return err
	}
	root := doc.Root()
	el := root.SelectElement("w:updateFields")
	if el == nil {
		el = etree.NewElement("w:updateFields")
		root.AddChild(el)
	}
	setVal(el, "true")
	return nil
}

// UpdateFieldsOnOpen reports whether the settings request a field refresh.
func (d *Document) UpdateFieldsOnOpen() bool {
	if !d.HasPart(SettingsPart) {
		return false
	}
	doc, err := d.Part(SettingsPart)
	if err != nil || doc.Root() == nil {
		return false
	}
	el := doc.Root().SelectElement("w:updateFields")
	return el != nil && el.SelectAttrValue("w:val", "") == "true"
}

func (d *Document) registerOverride(partName, contentType string) error {
	doc, err := d.Part(ContentTypesPart)
	if err != nil {
		return err
	}
	root := doc.Root()
	for _, o := range root.SelectElements("Override") {
		if o.SelectAttrValue("PartName", "") == partName {
			return nil
		}
	}
	o := root.CreateElement("Override")
	o.CreateAttr("PartName", partName)
	o.CreateAttr("ContentType", contentType)
	return nil
}
