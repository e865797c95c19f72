// Package reportdoc turns a plain-text report into a DOCX document.
//
// The text is split into paragraphs on blank lines. Each non-empty segment
// becomes one paragraph holding a single run, and the whole document uses
// one default font family and size.
//
// Basic usage:
//
//	if err := reportdoc.Build(text, "/tmp/report.docx"); err != nil {
//	    // handle error
//	}
//
// With options:
//
//	err := reportdoc.New(text).
//	    Font("Arial").
//	    FontSize(11).
//	    Title("Project Report").
//	    Overwrite(false).
//	    Save("/tmp/report.docx")
//
// Failures to write the file satisfy errors.Is(err, ErrIO); text that cannot
// be encoded satisfies errors.Is(err, ErrSerialization).
package reportdoc

import (
	"io"
	"log/slog"
)

// discardLogger is used until WithLogger supplies a real one.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// New returns a Builder for the given report text with default options:
// Arial 11pt, overwriting any existing output file.
//
// Example:
//
//	err := reportdoc.New(text).Save("report.docx")
func New(text string) *Builder {
	return &Builder{
		text:    text,
		options: defaultOptions(),
		logger:  discardLogger,
	}
}

// Build writes text to outputPath as a DOCX document using the default
// options. It is shorthand for New(text).Save(outputPath).
func Build(text, outputPath string) error {
	return New(text).Save(outputPath)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := reportdoc.Must(reportdoc.New(text).Document())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
