// Package textenc classifies raw file bytes into a supported text encoding
// and converts between on-disk bytes and in-memory UTF-8 strings. Detection
// is a pure function of the bytes: BOM sniffing first, then content
// heuristics. Nothing in this package touches the filesystem.
package textenc

import "fmt"

// Encoding identifies one of the supported on-disk text encodings.
type Encoding int

const (
	// Utf8NoBom is UTF-8 without a byte-order mark. It is also the
	// fallback for empty input.
	Utf8NoBom Encoding = iota
	// Utf8WithBom is UTF-8 preceded by EF BB BF.
	Utf8WithBom
	// Ascii is a pure 7-bit byte stream.
	Ascii
	// Utf16Le is little-endian UTF-16 with a FF FE BOM.
	Utf16Le
	// Utf16Be is big-endian UTF-16 with a FE FF BOM.
	Utf16Be
	// Utf32Le is little-endian UTF-32 with a FF FE 00 00 BOM.
	Utf32Le
	// SystemDefault is the platform narrow encoding. Bytes carrying it did
	// not validate as UTF-8; they are passed through untouched on decode
	// and encode.
	SystemDefault
	// AutoDetect is only meaningful in requests: it asks the server to use
	// the detected encoding on read. It is not a writable target and
	// resolves to Utf8NoBom when it reaches a write.
	AutoDetect
)

// String returns the wire name of the encoding, matching the request format.
func (e Encoding) String() string {
	switch e {
	case Utf8NoBom:
		return "utf8"
	case Utf8WithBom:
		return "utf8-bom"
	case Ascii:
		return "ascii"
	case Utf16Le:
		return "utf16le"
	case Utf16Be:
		return "utf16be"
	case Utf32Le:
		return "utf32le"
	case SystemDefault:
		return "system"
	case AutoDetect:
		return "auto"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// Parse maps a wire name to an Encoding. Matching is exact and
// case-sensitive on the documented lowercase names; an empty name means
// "no preference" and resolves to Utf8NoBom.
func Parse(name string) (Encoding, error) {
	switch name {
	case "", "utf8":
		return Utf8NoBom, nil
	case "utf8-bom":
		return Utf8WithBom, nil
	case "ascii":
		return Ascii, nil
	case "utf16le":
		return Utf16Le, nil
	case "utf16be":
		return Utf16Be, nil
	case "utf32le":
		return Utf32Le, nil
	case "system":
		return SystemDefault, nil
	case "auto":
		return AutoDetect, nil
	default:
		return Utf8NoBom, fmt.Errorf("unsupported encoding %q", name)
	}
}

// BOM returns the byte-order mark written for this encoding, or nil when
// none is written.
func (e Encoding) BOM() []byte {
	switch e {
	case Utf8WithBom:
		return []byte{0xEF, 0xBB, 0xBF}
	case Utf16Le:
		return []byte{0xFF, 0xFE}
	case Utf16Be:
		return []byte{0xFE, 0xFF}
	case Utf32Le:
		return []byte{0xFF, 0xFE, 0x00, 0x00}
	default:
		return nil
	}
}

// ByteWidth returns the width of one code unit in bytes.
func (e Encoding) ByteWidth() int {
	switch e {
	case Utf16Le, Utf16Be:
		return 2
	case Utf32Le:
		return 4
	default:
		return 1
	}
}
