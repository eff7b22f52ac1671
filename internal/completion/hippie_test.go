package completion

import "testing"

func TestHippieProposals_MatchesPriorWordInDocument(t *testing.T) {
	doc := StringDocument("SELECT customer_id, customer_name FROM cust")
	out := HippieProposals(doc, doc.Len(), "cust", nil)

	found := false
	for _, p := range out {
		if p.DisplayString == "customer_id" {
			found = true
			if p.Kind != KindLiteral {
				t.Errorf("Kind = %v, want KindLiteral", p.Kind)
			}
		}
	}
	if !found {
		t.Fatalf("out = %+v, want customer_id among hippie matches", out)
	}
}

func TestHippieProposals_ExcludesQualifiedWords(t *testing.T) {
	doc := StringDocument("SELECT u.customer_id FROM users u WHERE cust")
	out := HippieProposals(doc, doc.Len(), "cust", nil)
	for _, p := range out {
		if p.DisplayString == "u.customer_id" {
			t.Fatal("dotted words must be excluded from hippie completion")
		}
	}
}

func TestHippieProposals_DedupesCaseInsensitively(t *testing.T) {
	doc := StringDocument("SELECT Customer, customer FROM t WHERE cust")
	out := HippieProposals(doc, doc.Len(), "cust", nil)
	count := 0
	for range out {
		count++
	}
	if count != 1 {
		t.Fatalf("out = %+v, want exactly one deduped match", out)
	}
}

func TestHippieProposals_ExcludesExactPrefixMatch(t *testing.T) {
	doc := StringDocument("SELECT cust FROM t WHERE cust")
	out := HippieProposals(doc, doc.Len(), "cust", nil)
	for _, p := range out {
		if p.DisplayString == "cust" {
			t.Fatal("a word identical to the prefix itself must not be proposed")
		}
	}
}

func TestHippieProposals_HonorsExcludeSet(t *testing.T) {
	doc := StringDocument("SELECT customer_id FROM t WHERE cust")
	out := HippieProposals(doc, doc.Len(), "cust", map[string]bool{"customer_id": true})
	for _, p := range out {
		if p.DisplayString == "customer_id" {
			t.Fatal("excluded words must not be proposed")
		}
	}
}

func TestHippieProposals_StopsAtUpTo(t *testing.T) {
	doc := StringDocument("SELECT customer_id FROM t")
	out := HippieProposals(doc, len("SELECT cust"), "cust", nil)
	for _, p := range out {
		if p.DisplayString == "customer_id" {
			t.Fatal("words after upTo must not be scanned")
		}
	}
}

func TestExtractWords_SplitsOnNonIdentChars(t *testing.T) {
	doc := StringDocument("SELECT a, b_c FROM t.x")
	words := extractWords(doc, doc.Len())
	want := []string{"SELECT", "a", "b_c", "FROM", "t", "x"}
	if len(words) != len(want) {
		t.Fatalf("words = %v, want %v", words, want)
	}
	for i, w := range want {
		if words[i] != w {
			t.Errorf("words[%d] = %q, want %q", i, words[i], w)
		}
	}
}
