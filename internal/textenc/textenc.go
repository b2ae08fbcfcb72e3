// =============================================================================
// kf2ate - Text Encoding Module
// =============================================================================
//
// This module resolves the encoding names used in the configuration to
// golang.org/x/text encodings and wraps readers and writers with them.
//
// Decoding never substitutes silently: x/text decoders turn malformed input
// into U+FFFD, so callers check decoded text with Valid.
//
// =============================================================================

package textenc

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Names commonly seen in Japanese address-book tooling that the IANA index
// does not resolve, or resolves differently.
var encodingOverrides = map[string]encoding.Encoding{
	"shift_jis":   japanese.ShiftJIS,
	"shift-jis":   japanese.ShiftJIS,
	"sjis":        japanese.ShiftJIS,
	"cp932":       japanese.ShiftJIS,
	"windows-31j": japanese.ShiftJIS,
	"euc-jp":      japanese.EUCJP,
	"eucjp":       japanese.EUCJP,
	"utf-8":       unicode.UTF8,
	"utf8":        unicode.UTF8,
	"utf-8-bom":   unicode.UTF8BOM,
	"utf8-bom":    unicode.UTF8BOM,
	"":            unicode.UTF8,
}

// Lookup returns the encoding registered under name, case-insensitively.
func Lookup(name string) (encoding.Encoding, error) {
	if e, ok := encodingOverrides[strings.ToLower(strings.TrimSpace(name))]; ok {
		return e, nil
	}
	e, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding '%s'", name)
	}
	if e == nil {
		return nil, fmt.Errorf("no charmap defined for encoding '%s'", name)
	}
	return e, nil
}

// NewReader decodes r from enc to UTF-8. Plain UTF-8 input is passed through
// unchanged so that invalid bytes survive for Valid to catch.
func NewReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == unicode.UTF8 {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// Valid reports whether s, read through NewReader with enc, was decoded
// without loss. Decoders replace undecodable bytes with utf8.RuneError.
func Valid(enc encoding.Encoding, s string) bool {
	if enc == unicode.UTF8 {
		return utf8.ValidString(s)
	}
	return !strings.ContainsRune(s, utf8.RuneError)
}

// NewWriter encodes UTF-8 written to the returned writer into enc. Runes
// that enc cannot represent fail the write. Close flushes pending bytes and
// leaves w open.
func NewWriter(w io.Writer, enc encoding.Encoding) io.WriteCloser {
	return transform.NewWriter(w, enc.NewEncoder())
}
