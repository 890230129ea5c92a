package source

import (
	"bytes"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalizeContent applies every load-time rewrite and reports which ones fired.
func normalizeContent(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if bytes.HasPrefix(content, utf8BOM) {
		content = content[len(utf8BOM):]
		flags |= FileHadBOM
	}
	if out, changed := normalizeCRLF(content); changed {
		content = out
		flags |= FileNormalizedCRLF
	}
	if out, changed := normalizeNFC(content); changed {
		content = out
		flags |= FileNormalizedNFC
	}
	return content, flags
}

// normalizeCRLF folds "\r\n" into "\n"; lone '\r' is kept.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if bytes.IndexByte(content, '\r') < 0 {
		return content, false
	}
	out := make([]byte, 0, len(content))
	changed := false
	for i := 0; i < len(content); i++ {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			changed = true
			continue
		}
		out = append(out, content[i])
	}
	return out, changed
}

// normalizeNFC rewrites non-ASCII text (comments, directive payloads) to NFC
// so that byte offsets are stable across editors. ASCII input is untouched.
func normalizeNFC(content []byte) ([]byte, bool) {
	ascii := true
	for _, b := range content {
		if b >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii || norm.NFC.IsNormal(content) {
		return content, false
	}
	return norm.NFC.Bytes(content), true
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 16+len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- Add checks the file count, content length is bounded by Conv in callers
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// число переводов строк строго левее off
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	if line == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	start := lineIdx[line-1] + 1
	return LineCol{Line: uint32(line + 1), Col: off - start + 1} // #nosec G115 -- line <= len(lineIdx)
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
