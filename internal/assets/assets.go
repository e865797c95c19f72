// Package assets holds data files compiled into the binary.
package assets

import _ "embed"

// ReportName is the file name used for the default output document.
const ReportName = "B9IS121_Report.docx"

// Report is the text of the project report, paragraphs separated by blank lines.
//
//go:embed report.txt
var Report string
