package docx

import "encoding/xml"

// Write-side part structures. encoding/xml does not emit namespace prefixes
// on its own, so element and attribute names carry the "w:" prefix literally
// and the root elements declare the namespaces.

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Part names inside the package.
const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
)

// Content and relationship types.
const (
	ctRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML           = "application/xml"
	ctDocument      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles        = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctCore          = "application/vnd.openxmlformats-package.core-properties+xml"
	ctApp           = "application/vnd.openxmlformats-officedocument.extended-properties+xml"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCore           = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relApp            = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
)

// contentTypesOut is [Content_Types].xml.
type contentTypesOut struct {
	XMLName   xml.Name      `xml:"Types"`
	Xmlns     string        `xml:"xmlns,attr"`
	Defaults  []defaultOut  `xml:"Default"`
	Overrides []overrideOut `xml:"Override"`
}

type defaultOut struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideOut struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// relationshipsOut is a .rels part.
type relationshipsOut struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []relationshipOut `xml:"Relationship"`
}

type relationshipOut struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// documentOut is word/document.xml.
type documentOut struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    bodyOut  `xml:"w:body"`
}

type bodyOut struct {
	Paragraphs []paragraphOut `xml:"w:p"`
	Section    sectionOut     `xml:"w:sectPr"`
}

type paragraphOut struct {
	Runs []runOut `xml:"w:r"`
}

// runOut is a run; its inline items keep their order.
type runOut struct {
	Items []any
}

type textOut struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

type tabOut struct {
	XMLName xml.Name `xml:"w:tab"`
}

type breakOut struct {
	XMLName xml.Name `xml:"w:br"`
}

// sectionOut holds page size and margins in twips.
type sectionOut struct {
	PageSize   pageSizeOut   `xml:"w:pgSz"`
	PageMargin pageMarginOut `xml:"w:pgMar"`
}

type pageSizeOut struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type pageMarginOut struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

// stylesOut is word/styles.xml.
type stylesOut struct {
	XMLName     xml.Name       `xml:"w:styles"`
	XmlnsW      string         `xml:"xmlns:w,attr"`
	DocDefaults docDefaultsOut `xml:"w:docDefaults"`
	Styles      []styleOut     `xml:"w:style"`
}

type docDefaultsOut struct {
	RPr runPropsOut `xml:"w:rPrDefault>w:rPr"`
}

type styleOut struct {
	Type    string      `xml:"w:type,attr"`
	Default string      `xml:"w:default,attr,omitempty"`
	StyleID string      `xml:"w:styleId,attr"`
	Name    valOut      `xml:"w:name"`
	QFormat *struct{}   `xml:"w:qFormat"`
	RPr     runPropsOut `xml:"w:rPr"`
}

type valOut struct {
	Val string `xml:"w:val,attr"`
}

type runPropsOut struct {
	Fonts fontsOut `xml:"w:rFonts"`
	Size  valOut   `xml:"w:sz"`
	SizeC valOut   `xml:"w:szCs"`
}

type fontsOut struct {
	ASCII    string `xml:"w:ascii,attr"`
	HAnsi    string `xml:"w:hAnsi,attr"`
	EastAsia string `xml:"w:eastAsia,attr"`
	CS       string `xml:"w:cs,attr"`
}

// corePropertiesOut is docProps/core.xml.
type corePropertiesOut struct {
	XMLName     xml.Name   `xml:"cp:coreProperties"`
	XmlnsCP     string     `xml:"xmlns:cp,attr"`
	XmlnsDC     string     `xml:"xmlns:dc,attr"`
	XmlnsDCT    string     `xml:"xmlns:dcterms,attr"`
	XmlnsXSI    string     `xml:"xmlns:xsi,attr"`
	Title       string     `xml:"dc:title,omitempty"`
	Subject     string     `xml:"dc:subject,omitempty"`
	Creator     string     `xml:"dc:creator,omitempty"`
	Keywords    string     `xml:"cp:keywords,omitempty"`
	Description string     `xml:"dc:description,omitempty"`
	Created     *w3cdtfOut `xml:"dcterms:created"`
	Modified    *w3cdtfOut `xml:"dcterms:modified"`
}

type w3cdtfOut struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// appPropertiesOut is docProps/app.xml.
type appPropertiesOut struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	Application string   `xml:"Application"`
	Paragraphs  int      `xml:"Paragraphs"`
}
