package docx

import "encoding/xml"

// XML namespaces used in DOCX files
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPR  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsCT  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCP  = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC  = "http://purl.org/dc/elements/1.1/"
	nsDCT = "http://purl.org/dc/terms/"
	nsXSI = "http://www.w3.org/2001/XMLSchema-instance"
	nsEP  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body.
type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	XMLName    xml.Name          `xml:"p"`
	Properties paragraphPropsXML `xml:"pPr"`
	Runs       []runXML          `xml:"r"`
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style         styleRefXML      `xml:"pStyle"`
	Justification justificationXML `xml:"jc"`
	Spacing       spacingXML       `xml:"spacing"`
	Indent        indentXML        `xml:"ind"`
	OutlineLvl    outlineLvlXML    `xml:"outlineLvl"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// justificationXML represents text justification.
type justificationXML struct {
	Val string `xml:"val,attr"` // left, center, right, both
}

// spacingXML represents paragraph spacing.
type spacingXML struct {
	Before string `xml:"before,attr"` // Space before in twips
	After  string `xml:"after,attr"`  // Space after in twips
	Line   string `xml:"line,attr"`   // Line spacing
}

// indentXML represents paragraph indentation.
type indentXML struct {
	Left      string `xml:"left,attr"`
	Right     string `xml:"right,attr"`
	FirstLine string `xml:"firstLine,attr"`
	Hanging   string `xml:"hanging,attr"`
}

// outlineLvlXML represents outline level.
type outlineLvlXML struct {
	Val string `xml:"val,attr"`
}

// runXML represents a text run (<w:r>).
// Content keeps text, tabs and breaks in document order.
type runXML struct {
	Properties runPropsXML
	Content    []runContent
}

// runContentKind identifies an inline item inside a run.
type runContentKind int

const (
	contentText runContentKind = iota
	contentTab
	contentBreak
)

// runContent is one inline item of a run.
type runContent struct {
	Kind runContentKind
	Text string // for contentText
	Page bool   // for contentBreak: type="page"
}

// UnmarshalXML decodes a run while preserving the order of its children.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := d.DecodeElement(&r.Properties, &t); err != nil {
					return err
				}
			case "t":
				var tx textXML
				if err := d.DecodeElement(&tx, &t); err != nil {
					return err
				}
				r.Content = append(r.Content, runContent{Kind: contentText, Text: tx.Value})
			case "tab":
				r.Content = append(r.Content, runContent{Kind: contentTab})
				if err := d.Skip(); err != nil {
					return err
				}
			case "br", "cr":
				var br breakXML
				if err := d.DecodeElement(&br, &t); err != nil {
					return err
				}
				r.Content = append(r.Content, runContent{Kind: contentBreak, Page: br.Type == "page"})
			case "AlternateContent":
				// Emoji and symbol fallbacks carry plain text.
				var ac alternateContentXML
				if err := d.DecodeElement(&ac, &t); err != nil {
					return err
				}
				for _, tx := range ac.Fallback.Text {
					r.Content = append(r.Content, runContent{Kind: contentText, Text: tx.Value})
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// alternateContentXML represents mc:AlternateContent for emoji fallbacks.
type alternateContentXML struct {
	Fallback fallbackXML `xml:"Fallback"`
}

// fallbackXML represents mc:Fallback containing text.
type fallbackXML struct {
	Text []textXML `xml:"r>t"`
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold      boolXML      `xml:"b"`
	Italic    boolXML      `xml:"i"`
	Underline underlineXML `xml:"u"`
	Strike    boolXML      `xml:"strike"`
	FontSize  sizeXML      `xml:"sz"`
	Font      fontXML      `xml:"rFonts"`
	Color     colorXML     `xml:"color"`
	Highlight highlightXML `xml:"highlight"`
}

// boolXML represents a boolean attribute.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// on reports whether a toggle property is present and not switched off.
func (b boolXML) on() bool {
	return b.XMLName.Local != "" && b.Val != "false" && b.Val != "0"
}

// underlineXML represents underline style.
type underlineXML struct {
	Val string `xml:"val,attr"` // single, double, etc.
}

// sizeXML represents font size (in half-points).
type sizeXML struct {
	Val string `xml:"val,attr"`
}

// fontXML represents font settings.
type fontXML struct {
	ASCII    string `xml:"ascii,attr"`
	HAnsi    string `xml:"hAnsi,attr"`
	CS       string `xml:"cs,attr"`
	EastAsia string `xml:"eastAsia,attr"`
}

// colorXML represents text color.
type colorXML struct {
	Val string `xml:"val,attr"` // Hex color or "auto"
}

// highlightXML represents highlight color.
type highlightXML struct {
	Val string `xml:"val,attr"` // Color name like "yellow"
}

// textXML represents text content (<w:t>).
type textXML struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr"` // preserve
	Value   string   `xml:",chardata"`
}

// breakXML represents a break (line or page).
type breakXML struct {
	Type string `xml:"type,attr"` // page, column, textWrapping
}
