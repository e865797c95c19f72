package reportdoc

import (
	"time"

	"github.com/tsawler/reportdoc/docx"
)

// Default style applied to every paragraph.
const (
	DefaultFont     = "Arial"
	DefaultFontSize = 11.0
)

// BuildOptions holds configuration for building a report document.
type BuildOptions struct {
	// Style
	font docx.Font

	// Persistence
	overwrite bool // replace an existing output file

	// Core properties
	title       string
	subject     string
	author      string
	keywords    []string
	description string
	created     time.Time
}

// defaultOptions returns the default build options.
func defaultOptions() BuildOptions {
	return BuildOptions{
		font:      docx.Font{Name: DefaultFont, Size: DefaultFontSize},
		overwrite: true,
	}
}

// clone creates a deep copy of BuildOptions.
func (o BuildOptions) clone() BuildOptions {
	newOpts := o

	if o.keywords != nil {
		newOpts.keywords = make([]string, len(o.keywords))
		copy(newOpts.keywords, o.keywords)
	}

	return newOpts
}

// properties returns the core document properties.
func (o BuildOptions) properties() docx.Properties {
	return docx.Properties{
		Title:       o.title,
		Subject:     o.subject,
		Creator:     o.author,
		Keywords:    o.keywords,
		Description: o.description,
		Created:     o.created,
		Modified:    o.created,
	}
}
