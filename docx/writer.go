package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Default style values, matching Word's blank document.
const (
	DefaultFontName = "Calibri"
	DefaultFontSize = 11.0

	// MaxFontSize is the largest size w:sz can carry (3276 half-points).
	MaxFontSize = 1638.0

	applicationName = "reportdoc"
)

// US Letter page with one inch margins, in twips.
const (
	pageWidth  = 12240
	pageHeight = 15840
	margin     = 1440
	edge       = 720
)

// zipModTime is stamped on every part so identical documents encode to
// identical bytes.
var zipModTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

var (
	// ErrInvalidText is returned when run text cannot be represented in XML 1.0.
	ErrInvalidText = errors.New("docx: text contains characters not allowed in XML")
	// ErrInvalidFont is returned for an empty font name or an out of range size.
	ErrInvalidFont = errors.New("docx: invalid font")
)

// Font is a font family and a size in points.
type Font struct {
	Name string
	Size float64
}

// halfPoints returns the size in half-points, rounded to the nearest half point.
func (f Font) halfPoints() int {
	return int(math.Round(f.Size * 2))
}

// Validate reports whether the font can be written.
func (f Font) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: empty font name", ErrInvalidFont)
	}
	if math.IsNaN(f.Size) || f.halfPoints() < 1 || f.Size > MaxFontSize {
		return fmt.Errorf("%w: size %v out of range (0.5-%v pt)", ErrInvalidFont, f.Size, MaxFontSize)
	}
	if strings.ContainsAny(f.Name, "\r\n\t") || !isXMLText(f.Name) {
		return fmt.Errorf("%w: font name %q", ErrInvalidFont, f.Name)
	}
	return nil
}

// Properties holds the core document properties.
type Properties struct {
	Title       string
	Subject     string
	Creator     string
	Keywords    []string
	Description string
	Created     time.Time // zero means omitted
	Modified    time.Time // zero means omitted
}

// Document is a word-processing document under construction.
// It is created empty, filled by appending paragraphs, then encoded.
type Document struct {
	font       Font
	props      Properties
	paragraphs []*Paragraph
}

// Paragraph is an ordered sequence of runs.
type Paragraph struct {
	runs []*Run
}

// Run is a span of text sharing the paragraph's formatting.
// Newlines become line breaks and tabs become tab stops.
type Run struct {
	Text string
}

// New returns an empty document with Word's default font.
func New() *Document {
	return &Document{
		font: Font{Name: DefaultFontName, Size: DefaultFontSize},
	}
}

// SetDefaultFont sets the document-wide default font used by the Normal style.
func (d *Document) SetDefaultFont(f Font) {
	d.font = f
}

// DefaultFont returns the document-wide default font.
func (d *Document) DefaultFont() Font {
	return d.font
}

// SetProperties replaces the core document properties.
func (d *Document) SetProperties(p Properties) {
	p.Keywords = append([]string(nil), p.Keywords...)
	d.props = p
}

// Properties returns the core document properties.
func (d *Document) Properties() Properties {
	p := d.props
	p.Keywords = append([]string(nil), p.Keywords...)
	return p
}

// AddParagraph appends an empty paragraph and returns it.
func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{}
	d.paragraphs = append(d.paragraphs, p)
	return p
}

// Paragraphs returns the paragraphs in document order.
func (d *Document) Paragraphs() []*Paragraph {
	return append([]*Paragraph(nil), d.paragraphs...)
}

// AddRun appends a run with the given text.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text}
	p.runs = append(p.runs, r)
	return r
}

// Runs returns the runs in order.
func (p *Paragraph) Runs() []*Run {
	return append([]*Run(nil), p.runs...)
}

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Validate checks that the document can be encoded.
func (d *Document) Validate() error {
	if err := d.font.Validate(); err != nil {
		return err
	}
	for i, p := range d.paragraphs {
		for j, r := range p.runs {
			if !isXMLText(r.Text) {
				return fmt.Errorf("%w: paragraph %d, run %d", ErrInvalidText, i+1, j+1)
			}
		}
	}
	props := []string{d.props.Title, d.props.Subject, d.props.Creator, d.props.Description}
	props = append(props, d.props.Keywords...)
	for _, s := range props {
		if !isXMLText(s) {
			return fmt.Errorf("%w: document properties", ErrInvalidText)
		}
	}
	return nil
}

// EncodeError reports a failure to encode a package part.
type EncodeError struct {
	Part string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("docx: encoding %s: %v", e.Part, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// WriteTo encodes the document as a DOCX package. Validation and part
// encoding happen before anything is written to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}

	parts, err := d.encodeParts()
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: zipModTime,
		})
		if err != nil {
			return 0, &EncodeError{Part: p.name, Err: err}
		}
		if _, err := fw.Write(p.data); err != nil {
			return 0, &EncodeError{Part: p.name, Err: err}
		}
	}
	if err := zw.Close(); err != nil {
		return 0, &EncodeError{Part: "package", Err: err}
	}

	return buf.WriteTo(w)
}

// Save encodes the document and writes it to filename, replacing any
// existing file.
func (d *Document) Save(filename string) error {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return err
	}
	return os.WriteFile(filename, buf.Bytes(), 0o644)
}

// part is one named, encoded package member.
type part struct {
	name string
	data []byte
}

// encodeParts marshals every part in package order.
func (d *Document) encodeParts() ([]part, error) {
	builders := []struct {
		name string
		v    any
	}{
		{partContentTypes, contentTypes()},
		{partRootRels, rootRelationships()},
		{partCore, d.coreProperties()},
		{partApp, d.appProperties()},
		{partDocument, d.documentPart()},
		{partDocumentRels, documentRelationships()},
		{partStyles, d.stylesPart()},
	}

	parts := make([]part, 0, len(builders))
	for _, b := range builders {
		data, err := marshalPart(b.v)
		if err != nil {
			return nil, &EncodeError{Part: b.name, Err: err}
		}
		parts = append(parts, part{name: b.name, data: data})
	}
	return parts, nil
}

// marshalPart encodes v with the standard XML declaration.
func marshalPart(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func contentTypes() contentTypesOut {
	return contentTypesOut{
		Xmlns: nsCT,
		Defaults: []defaultOut{
			{Extension: "rels", ContentType: ctRelationships},
			{Extension: "xml", ContentType: ctXML},
		},
		Overrides: []overrideOut{
			{PartName: "/" + partDocument, ContentType: ctDocument},
			{PartName: "/" + partStyles, ContentType: ctStyles},
			{PartName: "/" + partCore, ContentType: ctCore},
			{PartName: "/" + partApp, ContentType: ctApp},
		},
	}
}

func rootRelationships() relationshipsOut {
	return relationshipsOut{
		Xmlns: nsPR,
		Relationships: []relationshipOut{
			{ID: "rId1", Type: relOfficeDocument, Target: partDocument},
			{ID: "rId2", Type: relCore, Target: partCore},
			{ID: "rId3", Type: relApp, Target: partApp},
		},
	}
}

func documentRelationships() relationshipsOut {
	return relationshipsOut{
		Xmlns: nsPR,
		Relationships: []relationshipOut{
			{ID: "rId1", Type: relStyles, Target: "styles.xml"},
		},
	}
}

func (d *Document) coreProperties() corePropertiesOut {
	cp := corePropertiesOut{
		XmlnsCP:     nsCP,
		XmlnsDC:     nsDC,
		XmlnsDCT:    nsDCT,
		XmlnsXSI:    nsXSI,
		Title:       d.props.Title,
		Subject:     d.props.Subject,
		Creator:     d.props.Creator,
		Keywords:    strings.Join(d.props.Keywords, ", "),
		Description: d.props.Description,
	}
	if !d.props.Created.IsZero() {
		cp.Created = &w3cdtfOut{Type: "dcterms:W3CDTF", Value: d.props.Created.UTC().Format(time.RFC3339)}
	}
	if !d.props.Modified.IsZero() {
		cp.Modified = &w3cdtfOut{Type: "dcterms:W3CDTF", Value: d.props.Modified.UTC().Format(time.RFC3339)}
	}
	return cp
}

func (d *Document) appProperties() appPropertiesOut {
	return appPropertiesOut{
		Xmlns:       nsEP,
		Application: applicationName,
		Paragraphs:  len(d.paragraphs),
	}
}

func (d *Document) documentPart() documentOut {
	body := bodyOut{
		Paragraphs: make([]paragraphOut, 0, len(d.paragraphs)),
		Section: sectionOut{
			PageSize: pageSizeOut{W: pageWidth, H: pageHeight},
			PageMargin: pageMarginOut{
				Top: margin, Right: margin, Bottom: margin, Left: margin,
				Header: edge, Footer: edge,
			},
		},
	}
	for _, p := range d.paragraphs {
		po := paragraphOut{Runs: make([]runOut, 0, len(p.runs))}
		for _, r := range p.runs {
			po.Runs = append(po.Runs, runOut{Items: runItems(r.Text)})
		}
		body.Paragraphs = append(body.Paragraphs, po)
	}
	return documentOut{XmlnsW: nsW, XmlnsR: nsR, Body: body}
}

func (d *Document) stylesPart() stylesOut {
	rpr := runPropsOut{
		Fonts: fontsOut{
			ASCII:    d.font.Name,
			HAnsi:    d.font.Name,
			EastAsia: d.font.Name,
			CS:       d.font.Name,
		},
		Size:  valOut{Val: strconv.Itoa(d.font.halfPoints())},
		SizeC: valOut{Val: strconv.Itoa(d.font.halfPoints())},
	}
	return stylesOut{
		XmlnsW:      nsW,
		DocDefaults: docDefaultsOut{RPr: rpr},
		Styles: []styleOut{
			{
				Type:    "paragraph",
				Default: "1",
				StyleID: "Normal",
				Name:    valOut{Val: "Normal"},
				QFormat: &struct{}{},
				RPr:     rpr,
			},
		},
	}
}

// runItems splits run text into text, tab and break items.
func runItems(text string) []any {
	var items []any
	start := 0
	flush := func(end int) {
		if end > start {
			items = append(items, textItem(text[start:end]))
		}
	}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			flush(i)
			items = append(items, breakOut{})
			start = i + 1
		case '\t':
			flush(i)
			items = append(items, tabOut{})
			start = i + 1
		}
	}
	flush(len(text))
	return items
}

// textItem wraps s in <w:t>, preserving edge whitespace.
func textItem(s string) textOut {
	t := textOut{Value: s}
	if strings.TrimSpace(s) != s {
		t.Space = "preserve"
	}
	return t
}

// isXMLText reports whether s is valid UTF-8 made only of XML 1.0 characters.
// Carriage returns are rejected too: XML parsers fold them into newlines.
func isXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}
