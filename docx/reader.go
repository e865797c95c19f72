// Package docx reads and writes DOCX (Office Open XML) word-processing
// documents.
//
// Documents are built in memory with New, AddParagraph and AddRun, then
// encoded with WriteTo or Save. Reader re-opens a package and exposes its
// paragraphs in order with fully resolved run formatting.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader  *zip.Reader
	closer     io.Closer
	document   *documentXML
	styles     *stylesXML
	resolver   *StyleResolver
	rels       *relationshipsXML
	coreProps  *corePropertiesXML
	appProps   *appPropertiesXML
	paragraphs []ParagraphInfo
}

// ParagraphInfo is a parsed paragraph with resolved styles.
type ParagraphInfo struct {
	Text      string
	StyleID   string
	StyleName string
	IsHeading bool
	Level     int // heading level (1-9) or 0 for non-headings
	Runs      []ResolvedRun
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// NewReader reads a DOCX package from ra, which holds size bytes.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{
		zipReader: zr,
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	// Styles are optional, and needed before paragraphs are resolved.
	if err := r.parseStyles(); err != nil {
		r.styles = nil
	}
	r.resolver = NewStyleResolver(r.styles)

	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	// Metadata is optional.
	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		partContentTypes,
		partDocument,
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// PageCount returns the number of "pages" in the document.
// DOCX has no fixed pagination, so the whole document counts as one page.
func (r *Reader) PageCount() (int, error) {
	return 1, nil
}

// Paragraphs returns the body paragraphs in document order.
func (r *Reader) Paragraphs() []ParagraphInfo {
	return append([]ParagraphInfo(nil), r.paragraphs...)
}

// Text returns the document text with paragraphs separated by a blank line.
func (r *Reader) Text() (string, error) {
	if r.document == nil {
		return "", fmt.Errorf("document not parsed")
	}

	texts := make([]string, 0, len(r.paragraphs))
	for _, para := range r.paragraphs {
		texts = append(texts, para.Text)
	}
	return strings.Join(texts, "\n\n"), nil
}

// DefaultFont returns the font that applies to paragraphs without an
// explicit style.
func (r *Reader) DefaultFont() Font {
	style := r.resolver.Resolve("")
	return Font{Name: style.FontName, Size: style.FontSize}
}

// Metadata returns the core document properties.
// Created and Modified are left zero; their raw values are not parsed.
func (r *Reader) Metadata() Properties {
	var meta Properties
	if r.coreProps == nil {
		return meta
	}
	meta.Title = r.coreProps.Title
	meta.Subject = r.coreProps.Subject
	meta.Creator = r.coreProps.Creator
	meta.Description = r.coreProps.Description
	if r.coreProps.Keywords != "" {
		for _, kw := range strings.Split(r.coreProps.Keywords, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				meta.Keywords = append(meta.Keywords, kw)
			}
		}
	}
	return meta
}

// Application returns the name of the application that wrote the document.
func (r *Reader) Application() string {
	if r.appProps == nil {
		return ""
	}
	return r.appProps.Application
}

// parseRelationships parses the document relationships file.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent(partDocumentRels)
	if err != nil {
		// Relationships file is optional
		return nil
	}

	r.rels = &relationshipsXML{}
	return xml.Unmarshal(data, r.rels)
}

// stylesPart returns the styles part name from the relationships, falling
// back to the conventional location.
func (r *Reader) stylesPart() string {
	if r.rels != nil {
		for _, rel := range r.rels.Relationships {
			if rel.Type == relStyles && rel.TargetMode != "External" {
				return "word/" + strings.TrimPrefix(rel.Target, "/word/")
			}
		}
	}
	return partStyles
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent(partDocument)
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}

	r.processParagraphs()

	return nil
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() error {
	data, err := r.getFileContent(r.stylesPart())
	if err != nil {
		return err
	}

	r.styles = &stylesXML{}
	return xml.Unmarshal(data, r.styles)
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent(partCore)
	if err != nil {
		return
	}

	props := &corePropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.coreProps = props
	}
}

// parseAppProperties parses application metadata.
func (r *Reader) parseAppProperties() {
	data, err := r.getFileContent(partApp)
	if err != nil {
		return
	}

	props := &appPropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.appProps = props
	}
}

// processParagraphs processes all paragraphs in the document.
func (r *Reader) processParagraphs() {
	if r.document == nil || r.document.Body == nil {
		return
	}

	r.paragraphs = make([]ParagraphInfo, 0, len(r.document.Body.Paragraphs))

	for _, p := range r.document.Body.Paragraphs {
		r.paragraphs = append(r.paragraphs, r.processParagraph(p))
	}
}

// processParagraph processes a single paragraph.
func (r *Reader) processParagraph(p paragraphXML) ParagraphInfo {
	parsed := ParagraphInfo{
		StyleID: p.Properties.Style.Val,
	}

	var sb strings.Builder
	for _, run := range p.Runs {
		runText := extractRunText(run)
		if runText == "" {
			continue
		}
		sb.WriteString(runText)

		resolved := r.resolver.ResolveRun(parsed.StyleID, run.Properties)
		resolved.Text = runText
		parsed.Runs = append(parsed.Runs, *resolved)
	}
	parsed.Text = sb.String()

	style := r.resolver.Resolve(parsed.StyleID)
	parsed.StyleName = style.Name
	parsed.IsHeading = style.IsHeading
	parsed.Level = style.HeadingLevel

	return parsed
}

// extractRunText extracts text from a run element.
func extractRunText(run runXML) string {
	var sb strings.Builder
	for _, c := range run.Content {
		switch c.Kind {
		case contentText:
			sb.WriteString(c.Text)
		case contentTab:
			sb.WriteByte('\t')
		case contentBreak:
			if c.Page {
				sb.WriteString("\n\n")
			} else {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
