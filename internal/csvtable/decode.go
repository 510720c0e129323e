package csvtable

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// candidateEncoding is one entry of the prioritized decode chain.
type candidateEncoding struct {
	name   string
	decode func([]byte) (string, error)
}

// candidateEncodings is the fixed fallback order: UTF-8 first, then the
// legacy single-byte encodings. The first candidate that decodes and parses
// wins; the list mirrors what uploads from spreadsheet tools actually use.
var candidateEncodings = []candidateEncoding{
	{name: "utf-8", decode: decodeUTF8},
	{name: "latin-1", decode: decodeCharmap(charmap.ISO8859_1)},
	{name: "cp1252", decode: decodeCharmap(charmap.Windows1252)},
	{name: "iso-8859-1", decode: decodeCharmap(charmap.ISO8859_1)},
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("invalid UTF-8 byte sequence")
	}
	return string(data), nil
}

func decodeCharmap(cm *charmap.Charmap) func([]byte) (string, error) {
	return func(data []byte) (string, error) {
		out, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}
