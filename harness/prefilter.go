package harness

import (
	"github.com/nmatch/rebacktrack/literal"
	"github.com/nmatch/rebacktrack/prefilter"
)

// buildPrefilter constructs a prefilter.Prefilter directly from host-supplied
// literal hints, the way prefilter.NewBuilder is normally fed literals
// extracted from a parsed pattern (literal.Extractor.ExtractPrefixes) — here
// the literals come from the caller instead, since lowering a pattern string
// to literals is parsing, and parsing is out of scope for backref and its
// harness alike. Returns nil if requiredLiterals is empty or no strategy in
// prefilter's selection table fits (in which case the harness falls back to
// scanning every start position).
func buildPrefilter(requiredLiterals [][]byte) prefilter.Prefilter {
	if len(requiredLiterals) == 0 {
		return nil
	}
	lits := make([]literal.Literal, 0, len(requiredLiterals))
	for _, b := range requiredLiterals {
		if len(b) == 0 {
			continue
		}
		lits = append(lits, literal.NewLiteral(b, false))
	}
	if len(lits) == 0 {
		return nil
	}
	seq := literal.NewSeq(lits...)
	return prefilter.NewBuilder(seq, nil).Build()
}
