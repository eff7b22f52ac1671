package completion

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ClassifyPartition returns the partition verdict for the text immediately
// before the cursor (spec §3's {CODE, STRING, QUOTED_IDENT}). It tokenizes
// the statement text with chroma's SQL lexer (the same lexer
// internal/theme uses for editor syntax highlighting) and inspects which
// token kind covers the cursor; if the lexer can't be found or tokenizing
// fails, it falls back to the teacher's original quote-parity heuristic so
// a partition verdict is always produced (spec §7).
func ClassifyPartition(statementText string, cursorOffsetInStatement int) Partition {
	if cursorOffsetInStatement < 0 || cursorOffsetInStatement > len(statementText) {
		cursorOffsetInStatement = len(statementText)
	}

	lex := lexers.Get("sql")
	if lex == nil {
		return fallbackPartition(statementText[:cursorOffsetInStatement])
	}

	iter, err := lex.Tokenise(nil, statementText)
	if err != nil {
		return fallbackPartition(statementText[:cursorOffsetInStatement])
	}

	pos := 0
	for _, tok := range iter.Tokens() {
		tokLen := len(tok.Value)
		if cursorOffsetInStatement > pos && cursorOffsetInStatement <= pos+tokLen {
			switch {
			case tok.Type.InCategory(chroma.LiteralString):
				return PartitionString
			case tok.Type == chroma.NameVariable || tok.Type == chroma.LiteralStringBacktick:
				return PartitionQuotedIdent
			default:
				return PartitionCode
			}
		}
		pos += tokLen
	}
	return PartitionCode
}

// fallbackPartition mirrors the teacher's insideStringLiteral: an odd
// number of unescaped single quotes before the cursor means the cursor is
// inside a string literal.
func fallbackPartition(before string) Partition {
	count := strings.Count(before, "'")
	if count%2 != 0 {
		return PartitionString
	}
	return PartitionCode
}
