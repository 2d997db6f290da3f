package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// headerFolder strips combining marks so an accented header like
// "Funcionário" matches the bare "funcionario" alias.
var headerFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeHeader(header string) string {
	folded, _, err := transform.String(headerFolder, header)
	if err != nil {
		folded = header
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Resolve returns the value stored under the first candidate alias that
// matches one of the row's headers. Matching ignores case, surrounding
// whitespace and accents; the value comes back untouched, read through
// the row's original key. The second return is false when no candidate
// matches. Pure function of its two inputs.
func Resolve(row map[string]string, candidates []string) (string, bool) {
	index := make(map[string]string, len(row))
	for key := range row {
		index[normalizeHeader(key)] = key
	}

	for _, candidate := range candidates {
		if originalKey, ok := index[normalizeHeader(candidate)]; ok {
			return row[originalKey], true
		}
	}

	return "", false
}
