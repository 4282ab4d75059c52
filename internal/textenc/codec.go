package textenc

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Decode converts on-disk bytes in the given encoding to an in-memory
// string. A leading BOM belonging to the encoding is stripped; it is part
// of the encoding descriptor, not of the content. SystemDefault bytes pass
// through untouched.
func Decode(data []byte, enc Encoding) (string, error) {
	data = bytes.TrimPrefix(data, enc.BOM())

	switch enc {
	case Utf16Le:
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decode utf16le: %w", err)
		}
		return string(decoded), nil
	case Utf16Be:
		decoded, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decode utf16be: %w", err)
		}
		return string(decoded), nil
	case Utf32Le:
		decoded, err := utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decode utf32le: %w", err)
		}
		return string(decoded), nil
	default:
		// Utf8NoBom, Utf8WithBom, Ascii, SystemDefault: code units are bytes.
		return string(data), nil
	}
}

// Encode converts an in-memory string to the on-disk byte representation of
// the given encoding, including its BOM when the encoding carries one.
// AutoDetect is not a writable target and resolves to Utf8NoBom.
func Encode(content string, enc Encoding) ([]byte, error) {
	if enc == AutoDetect {
		enc = Utf8NoBom
	}

	switch enc {
	case Utf16Le:
		encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("encode utf16le: %w", err)
		}
		return append(enc.BOM(), encoded...), nil
	case Utf16Be:
		encoded, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("encode utf16be: %w", err)
		}
		return append(enc.BOM(), encoded...), nil
	case Utf32Le:
		encoded, err := utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewEncoder().Bytes([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("encode utf32le: %w", err)
		}
		return append(enc.BOM(), encoded...), nil
	case Ascii:
		for i, r := range content {
			if r > 0x7F {
				return nil, fmt.Errorf("content is not representable as ascii: %q at offset %d", r, i)
			}
		}
		return []byte(content), nil
	case Utf8WithBom:
		return append(enc.BOM(), content...), nil
	default:
		// Utf8NoBom, SystemDefault.
		return []byte(content), nil
	}
}
