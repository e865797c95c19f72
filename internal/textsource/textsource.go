// Package textsource loads report text from files in a named character
// encoding and converts it to UTF-8.
package textsource

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Auto asks Decode to sniff the encoding from the content.
const Auto = "auto"

// maxSize bounds how much text is read from a source.
const maxSize = 32 << 20

var (
	// ErrUnknownEncoding is returned for an encoding label that is not recognised.
	ErrUnknownEncoding = errors.New("textsource: unknown encoding")
	// ErrTooLarge is returned when a source exceeds the size limit.
	ErrTooLarge = errors.New("textsource: source too large")
)

// Load reads the file at path and decodes it using the encoding label.
func Load(path, label string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open text source: %w", err)
	}
	defer f.Close()

	text, err := Decode(f, label)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return text, nil
}

// Decode reads r and converts it to UTF-8.
//
// label is any WHATWG encoding label ("utf-8", "windows-1252", "latin1",
// "utf-16le", ...), or "auto" to detect the encoding from a byte order mark
// or the content itself. An empty label means UTF-8. A leading byte order
// mark always wins over the label and is stripped from the result.
func Decode(r io.Reader, label string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxSize {
		return "", ErrTooLarge
	}

	enc, err := lookup(label, data)
	if err != nil {
		return "", err
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(decoded), nil
}

// lookup resolves an encoding label. data is only consulted for Auto.
func lookup(label string, data []byte) (encoding.Encoding, error) {
	label = strings.ToLower(strings.TrimSpace(label))

	switch label {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case Auto:
		enc, _, _ := charset.DetermineEncoding(sniffPrefix(data), "text/plain")
		return enc, nil
	}

	enc, _ := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	return enc, nil
}

// sniffPrefix returns the leading bytes used for detection.
func sniffPrefix(data []byte) []byte {
	const n = 1024
	if len(data) > n {
		return data[:n]
	}
	return data
}

// Name returns the canonical name for an encoding label, or an error when
// the label is not recognised. Auto is returned unchanged.
func Name(label string) (string, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "":
		return "utf-8", nil
	case Auto:
		return Auto, nil
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	return name, nil
}
