package reportdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/tsawler/reportdoc/docx"
	"github.com/tsawler/reportdoc/format"
)

// Builder provides a fluent interface for building a report document.
// Builder is immutable - each method returns a new Builder instance.
//
// Example:
//
//	err := reportdoc.New(text).
//	    Font("Arial").
//	    FontSize(11).
//	    Save("report.docx")
type Builder struct {
	text    string
	options BuildOptions
	logger  *slog.Logger
	err     error
}

// clone creates a copy of the Builder for immutability.
func (b *Builder) clone() *Builder {
	return &Builder{
		text:    b.text,
		options: b.options.clone(),
		logger:  b.logger,
		err:     b.err,
	}
}

// fail records the first invalid option.
func (b *Builder) fail(reason string) *Builder {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %s", ErrInvalidOption, reason)
	}
	return b
}

// Font sets the default font family.
func (b *Builder) Font(name string) *Builder {
	newB := b.clone()
	name = strings.TrimSpace(name)
	if name == "" {
		return newB.fail("empty font name")
	}
	newB.options.font.Name = name
	return newB
}

// FontSize sets the default font size in points. Sizes are stored in
// half-point units, so 10.5 is kept exactly and 10.3 rounds to 10.5.
func (b *Builder) FontSize(points float64) *Builder {
	newB := b.clone()
	if math.IsNaN(points) || points < 0.5 || points > docx.MaxFontSize {
		return newB.fail(fmt.Sprintf("font size %v out of range (0.5-%v pt)", points, docx.MaxFontSize))
	}
	newB.options.font.Size = points
	return newB
}

// Overwrite controls whether Save replaces an existing file.
// The default is true. With false, Save fails with an error matching
// both ErrIO and fs.ErrExist when the output file already exists.
func (b *Builder) Overwrite(overwrite bool) *Builder {
	newB := b.clone()
	newB.options.overwrite = overwrite
	return newB
}

// Title sets the document title property.
func (b *Builder) Title(title string) *Builder {
	newB := b.clone()
	newB.options.title = title
	return newB
}

// Subject sets the document subject property.
func (b *Builder) Subject(subject string) *Builder {
	newB := b.clone()
	newB.options.subject = subject
	return newB
}

// Author sets the document creator property.
func (b *Builder) Author(author string) *Builder {
	newB := b.clone()
	newB.options.author = author
	return newB
}

// Keywords sets the document keywords.
func (b *Builder) Keywords(keywords ...string) *Builder {
	newB := b.clone()
	newB.options.keywords = append([]string(nil), keywords...)
	return newB
}

// Description sets the document description property.
func (b *Builder) Description(description string) *Builder {
	newB := b.clone()
	newB.options.description = description
	return newB
}

// CreatedAt sets the creation and modification timestamps. Without it the
// package carries no timestamps and identical input gives identical bytes.
func (b *Builder) CreatedAt(t time.Time) *Builder {
	newB := b.clone()
	newB.options.created = t.UTC().Truncate(time.Second)
	return newB
}

// WithLogger sets the logger used for build progress. A nil logger
// discards output.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	newB := b.clone()
	if logger == nil {
		logger = discardLogger
	}
	newB.logger = logger
	return newB
}

// Segments returns the paragraph segments the document will contain.
func (b *Builder) Segments() []string {
	return Segments(b.text)
}

// Document builds the in-memory document without encoding it.
// The default style is set before any paragraph is added.
func (b *Builder) Document() (*docx.Document, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.options.font.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	doc := docx.New()
	doc.SetDefaultFont(b.options.font)
	doc.SetProperties(b.options.properties())

	segments := b.Segments()
	for _, s := range segments {
		doc.AddParagraph().AddRun(s)
	}

	b.logger.Debug("document assembled",
		"paragraphs", len(segments),
		"font", b.options.font.Name,
		"size", b.options.font.Size)

	return doc, nil
}

// Bytes returns the encoded DOCX package.
func (b *Builder) Bytes() ([]byte, error) {
	doc, err := b.Document()
	if err != nil {
		return nil, err
	}
	return encode(doc)
}

// WriteTo encodes the document and writes it to w. Nothing is written
// when encoding fails.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	data, err := b.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		return int64(n), &IOError{Op: "write", Err: err}
	}
	return int64(n), nil
}

// Save encodes the document and writes it to outputPath.
//
// The whole package is encoded in memory before the file is touched, so an
// encoding failure leaves the destination unchanged. With overwrite enabled
// the file is replaced atomically; otherwise an existing file is an error.
// The parent directory must already exist.
func (b *Builder) Save(outputPath string) error {
	if outputPath == "" {
		return &IOError{Op: "create", Path: outputPath, Err: errors.New("empty output path")}
	}

	data, err := b.Bytes()
	if err != nil {
		b.logger.Error("encoding report failed", "path", outputPath, "error", err)
		return err
	}

	if f := format.Detect(outputPath); f != format.DOCX {
		b.logger.Warn("output path does not end in .docx", "path", outputPath, "format", f.String())
	}

	if err := writeFile(outputPath, data, b.options.overwrite); err != nil {
		b.logger.Error("writing report failed", "path", outputPath, "error", err)
		return err
	}

	b.logger.Info("report written",
		"path", outputPath,
		"paragraphs", len(b.Segments()),
		"bytes", len(data))
	return nil
}

// encode serializes doc into a DOCX package.
func encode(doc *docx.Document) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, newSerializationError(err)
	}
	return buf.Bytes(), nil
}
