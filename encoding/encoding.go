// Package encoding resolves charset labels to golang.org/x/text
// encodings for the parser's byte-decoding override. It exists so the
// rest of treedom never imports the x/text encoding packages directly
// (the package names, "unicode" in particular, clash with the stdlib).
package encoding

import (
	"strings"

	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Keys are normalized labels: lower case with "-", "_" and spaces
// stripped, so one entry covers "Shift_JIS", "shift-jis" and
// "shiftjis" alike. iso-8859-1 deliberately resolves to windows-1252,
// matching how documents labeled latin-1 are written in practice.
var labels = map[string]enc.Encoding{
	"utf8": unicode.UTF8,

	"eucjp":     japanese.EUCJP,
	"shiftjis":  japanese.ShiftJIS,
	"cp932":     japanese.ShiftJIS,
	"iso2022jp": japanese.ISO2022JP,

	"big5":     traditionalchinese.Big5,
	"euckr":    korean.EUCKR,
	"hzgb2312": simplifiedchinese.HZGB2312,

	"iso88592":  charmap.ISO8859_2,
	"iso88593":  charmap.ISO8859_3,
	"iso88594":  charmap.ISO8859_4,
	"iso88595":  charmap.ISO8859_5,
	"iso88596":  charmap.ISO8859_6,
	"iso88597":  charmap.ISO8859_7,
	"iso88598":  charmap.ISO8859_8,
	"iso885910": charmap.ISO8859_10,
	"iso885913": charmap.ISO8859_13,
	"iso885914": charmap.ISO8859_14,
	"iso885915": charmap.ISO8859_15,
	"iso885916": charmap.ISO8859_16,

	"iso88591":    charmap.Windows1252,
	"latin1":      charmap.Windows1252,
	"windows1252": charmap.Windows1252,
	"windows1250": charmap.Windows1250,
	"windows1251": charmap.Windows1251,
	"windows1253": charmap.Windows1253,
	"windows1254": charmap.Windows1254,
	"windows1255": charmap.Windows1255,
	"windows1256": charmap.Windows1256,
	"windows1257": charmap.Windows1257,
	"windows1258": charmap.Windows1258,
	"windows874":  charmap.Windows874,

	"koi8r": charmap.KOI8R,
	"koi8u": charmap.KOI8U,

	"ibm866":       charmap.CodePage866,
	"cp866":        charmap.CodePage866,
	"macintosh":    charmap.Macintosh,
	"xmaccyrillic": charmap.MacintoshCyrillic,
}

// Load resolves a charset label to its encoding, or nil when the label
// is unknown.
func Load(name string) enc.Encoding {
	key := strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(name))
	return labels[key]
}
