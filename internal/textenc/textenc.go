// Package textenc maps configured encoding names onto golang.org/x/text
// codecs and implements the two decoding policies used by the toolkit:
// dropping undecodable bytes for file reads and replacing them for
// process output.
package textenc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultName is the encoding used when none is configured.
const DefaultName = "utf-8"

// Codec converts between Go strings and one text encoding.
type Codec struct {
	name string
	enc  encoding.Encoding
	utf8 bool
}

// Lookup resolves an encoding label such as "utf-8", "gbk" or "latin1".
// Labels are matched against the IANA registry, after mapping Python codec
// names onto it; WHATWG labels are accepted only when IANA has no codec.
func Lookup(name string) (*Codec, error) {
	label := strings.TrimSpace(name)
	if label == "" {
		label = DefaultName
	}
	key := strings.ReplaceAll(strings.ToLower(label), "_", "-")
	if key == "utf-8-sig" || key == "utf8-sig" {
		return newCodec("utf-8-sig", unicode.UTF8BOM), nil
	}
	if alias, ok := pythonAliases[key]; ok {
		label = alias
	} else if strings.HasPrefix(key, "cp125") && len(key) == 6 {
		label = "windows-" + key[2:]
	}

	for _, candidate := range []string{label, key} {
		enc, err := ianaindex.IANA.Encoding(candidate)
		if err != nil || enc == nil {
			continue
		}
		canonical, err := ianaindex.MIME.Name(enc)
		if err != nil || canonical == "" {
			canonical = candidate
		}
		return newCodec(strings.ToLower(canonical), enc), nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = strings.ToLower(label)
	}
	return newCodec(canonical, enc), nil
}

// pythonAliases maps Python codec names that are not IANA labels.
var pythonAliases = map[string]string{
	"ascii":     "us-ascii",
	"646":       "us-ascii",
	"utf8":      "utf-8",
	"u8":        "utf-8",
	"utf":       "utf-8",
	"cp65001":   "utf-8",
	"latin-1":   "iso-8859-1",
	"latin":     "iso-8859-1",
	"iso8859-1": "iso-8859-1",
	"8859":      "iso-8859-1",
	"utf16":     "utf-16",
	"utf-16-le": "utf-16le",
	"utf-16-be": "utf-16be",
}

func newCodec(name string, enc encoding.Encoding) *Codec {
	return &Codec{
		name: name,
		enc:  enc,
		utf8: enc == unicode.UTF8,
	}
}

// MustLookup is Lookup for encodings known to exist.
func MustLookup(name string) *Codec {
	c, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the canonical encoding name.
func (c *Codec) Name() string {
	return c.name
}

// Encode converts s into the codec's byte representation. Characters the
// encoding cannot represent are an error.
func (c *Codec) Encode(s string) ([]byte, error) {
	if c.utf8 {
		return []byte(s), nil
	}
	out, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode as %s: %w", c.name, err)
	}
	return out, nil
}

// DecodeDropping decodes b and silently drops byte sequences that are not
// valid in the encoding.
func (c *Codec) DecodeDropping(b []byte) string {
	if c.utf8 {
		return dropInvalidUTF8(b)
	}
	decoded, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return dropInvalidUTF8(b)
	}
	// x/text decoders emit U+FFFD for undecodable input.
	return strings.ReplaceAll(string(decoded), string(utf8.RuneError), "")
}

// DecodeReplacing decodes b, substituting U+FFFD for invalid sequences.
func (c *Codec) DecodeReplacing(b []byte) string {
	if c.utf8 {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	decoded, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return string(decoded)
}

func dropInvalidUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			b = b[1:]
			continue
		}
		sb.WriteString(string(b[:size]))
		b = b[size:]
	}
	return sb.String()
}

// Truncate returns the first limit characters of s and whether anything was
// cut. A non-positive limit disables truncation.
func Truncate(s string, limit int) (string, bool) {
	if limit <= 0 || len(s) <= limit {
		return s, false
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i], true
		}
		count++
	}
	return s, false
}
