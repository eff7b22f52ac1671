package completion

import (
	"strings"

	"github.com/sadopc/gotermsql/internal/dialect"
)

// maxPrevWords bounds how many non-keyword tokens precede wordPart that the
// word detector will collect (spec §3: "a short window of preceding
// non-keyword words").
const maxPrevWords = 3

// maxScanBack bounds how far left of the cursor the detector will scan,
// so a single huge unbroken document can't make completion unbounded.
const maxScanBack = 4096

// WordDetectorOutput is the result of running the word detector on a
// document at a cursor offset (spec §3, §4.1).
type WordDetectorOutput struct {
	WordPart          string
	WordStart         int
	WordEnd           int
	PrevKeyWord       string
	PrevKeyWordOffset int
	PrevWords         []string // most-recent-first
	PrevDelimiter     string
	NextWord          string
}

// ShiftOffset moves the start of the replacement span (WordStart) by delta;
// WordEnd is left unchanged. Used by the classifier when it rewrites the prefix (spec §4.3's `*`
// handling).
func (w *WordDetectorOutput) ShiftOffset(delta int) {
	w.WordStart += delta
}

// isIdentChar reports whether r can appear inside a SQL identifier
// fragment (letters, digits, underscore, and the dialect's struct
// separator).
func isIdentChar(r rune, sep byte) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	case byte(r) == sep:
		return true
	default:
		return false
	}
}

// DetectWord scans doc leftward and rightward from offset to produce the
// word-detector output (spec §4.1).
func DetectWord(doc Document, offset int, dlt *dialect.Dialect) WordDetectorOutput {
	sep := dlt.GetStructSeparator()

	wordStart := offset
	for wordStart > 0 && offset-wordStart < maxScanBack {
		r, ok := doc.CharAt(wordStart - 1)
		if !ok || !isIdentChar(r, sep) {
			break
		}
		wordStart--
	}
	wordPart := readRange(doc, wordStart, offset)

	out := WordDetectorOutput{
		WordPart:  wordPart,
		WordStart: wordStart,
		WordEnd:   offset,
	}

	// Scan leftward across delimiter + word tokens.
	pos := wordStart
	for pos > 0 && offset-pos < maxScanBack {
		// Skip a run of non-identifier characters (the delimiter).
		runStart := pos
		for pos > 0 {
			r, ok := doc.CharAt(pos - 1)
			if !ok || isIdentChar(r, sep) {
				break
			}
			pos--
		}
		if pos == runStart {
			// No delimiter characters and no identifier run: stop.
			break
		}
		delim := readRange(doc, pos, runStart)
		if len(out.PrevWords) == 0 && out.PrevKeyWord == "" {
			out.PrevDelimiter = delim
		}

		// Collect the preceding identifier token, if any.
		tokEnd := pos
		for pos > 0 {
			r, ok := doc.CharAt(pos - 1)
			if !ok || !isIdentChar(r, sep) {
				break
			}
			pos--
		}
		if pos == tokEnd {
			// Delimiter ran straight into the start of the document.
			break
		}
		tok := readRange(doc, pos, tokEnd)
		if tok == "" {
			continue
		}

		if isKeywordToken(tok, dlt) {
			out.PrevKeyWord = strings.ToUpper(tok)
			out.PrevKeyWordOffset = pos
			break
		}

		out.PrevWords = append(out.PrevWords, tok)
		if len(out.PrevWords) >= maxPrevWords {
			break
		}
	}
	// Scan rightward for nextWord.
	end := offset
	for end < doc.Len() {
		r, ok := doc.CharAt(end)
		if !ok || !isIdentChar(r, sep) {
			break
		}
		end++
	}
	out.NextWord = readRange(doc, offset, end)

	return out
}

// significantDelimiter strips whitespace out of a PrevDelimiter-style run,
// since DetectWord captures the whole punctuation-and-whitespace span
// between tokens (spec §3) but callers that pattern-match specific
// punctuation (",", "(", "(*") care only about the punctuation itself.
func significantDelimiter(delim string) string {
	var b strings.Builder
	for _, r := range delim {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isKeywordToken(tok string, dlt *dialect.Dialect) bool {
	return dlt.GetKeywordType(tok) == dialect.KeywordTypeKeyword
}

func readRange(doc Document, from, to int) string {
	if to <= from {
		return ""
	}
	var b strings.Builder
	b.Grow(to - from)
	for i := from; i < to; i++ {
		r, ok := doc.CharAt(i)
		if !ok {
			// Bad offset mid-range: stop, treating the rest as unknown
			// (spec §7).
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsQuoted reports whether token is dialect-quoted.
func IsQuoted(token string, dlt *dialect.Dialect) bool { return dlt.IsQuoted(token) }

// RemoveQuotes strips one layer of dialect quoting from token.
func RemoveQuotes(token string, dlt *dialect.Dialect) string { return dlt.RemoveQuotes(token) }

// SplitIdentifier splits token on the dialect's struct separator,
// respecting quoting.
func SplitIdentifier(token string, dlt *dialect.Dialect) []string { return dlt.SplitIdentifier(token) }

// ContainsSeparator reports whether token contains the dialect's struct
// separator outside of quoting.
func ContainsSeparator(token string, dlt *dialect.Dialect) bool { return dlt.ContainsSeparator(token) }
