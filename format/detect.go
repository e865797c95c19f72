// Package format recognises the ZIP-based office document formats.
package format

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a document package format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// ODT indicates an OpenDocument Text (.odt) document.
	ODT
	// XLSX indicates a Microsoft Excel (.xlsx) document.
	XLSX
	// PPTX indicates a Microsoft PowerPoint (.pptx) document.
	PPTX
)

// zipMagic starts every local file header.
var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case ODT:
		return "ODT"
	case XLSX:
		return "XLSX"
	case PPTX:
		return "PPTX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case ODT:
		return ".odt"
	case XLSX:
		return ".xlsx"
	case PPTX:
		return ".pptx"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".odt":
		return ODT
	case ".xlsx":
		return XLSX
	case ".pptx":
		return PPTX
	default:
		return Unknown
	}
}

// IsZIP reports whether data starts with a ZIP local file header. Every
// supported format is a ZIP package, so use DetectFromReader to tell them apart.
func IsZIP(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}

// DetectFromReader inspects the package content to determine its format.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, len(zipMagic))
	n, err := r.ReadAt(magic, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return Unknown, err
	}
	if !IsZIP(magic[:n]) {
		return Unknown, nil
	}

	return detectZIPFormat(r, size)
}

// DetectFile opens filename and inspects its content.
func DetectFile(filename string) (Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}
	return DetectFromReader(f, info.Size())
}

// detectZIPFormat inspects a ZIP archive to determine if it's DOCX, XLSX, PPTX or ODT.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	// OpenDocument stores its media type in an uncompressed "mimetype" entry.
	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			break
		}
		data, _ := io.ReadAll(io.LimitReader(rc, 256))
		rc.Close()
		if strings.Contains(string(data), "application/vnd.oasis.opendocument.text") {
			return ODT, nil
		}
	}

	// Office Open XML packages need [Content_Types].xml plus a main part folder.
	hasContentTypes := false
	found := Unknown
	for _, f := range zr.File {
		switch {
		case f.Name == "[Content_Types].xml":
			hasContentTypes = true
		case found != Unknown:
		case f.Name == "word/document.xml":
			found = DOCX
		case strings.HasPrefix(f.Name, "xl/"):
			found = XLSX
		case strings.HasPrefix(f.Name, "ppt/"):
			found = PPTX
		}
	}
	if !hasContentTypes {
		return Unknown, nil
	}

	return found, nil
}
