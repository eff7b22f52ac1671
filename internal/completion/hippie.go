package completion

import "strings"

// HippieProposals implements the in-document "hippie" word completion
// post-step (spec §4.7 step 5): scan the document text up to the cursor
// for distinct identifier-like words of length >= len(prefix) that start
// with prefix, excluding words containing "." or already present in
// exclude, and emit them as LITERAL proposals.
func HippieProposals(doc Document, upTo int, prefix string, exclude map[string]bool) []Proposal {
	if upTo > doc.Len() {
		upTo = doc.Len()
	}
	words := extractWords(doc, upTo)

	lowerPrefix := strings.ToLower(prefix)
	seen := make(map[string]bool, len(words))
	out := make([]Proposal, 0)
	for _, w := range words {
		if len(w) < len(prefix) {
			continue
		}
		if strings.Contains(w, ".") {
			continue
		}
		lw := strings.ToLower(w)
		if !strings.HasPrefix(lw, lowerPrefix) {
			continue
		}
		if seen[lw] || exclude[lw] {
			continue
		}
		if lw == lowerPrefix {
			continue
		}
		seen[lw] = true
		out = append(out, Proposal{
			DisplayString: w,
			ReplaceString: w,
			CursorOffset:  len(w),
			Kind:          KindLiteral,
		})
	}
	return out
}

func extractWords(doc Document, upTo int) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < upTo; i++ {
		r, ok := doc.CharAt(i)
		if !ok {
			flush()
			continue
		}
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return words
}
