package harness

import (
	"github.com/nmatch/rebacktrack/backref"
	"github.com/nmatch/rebacktrack/prefilter"
)

// Matcher drives a backref.Engine for patterns needing backreferences,
// counted quantifiers requiring true counting, or capture-writing
// lookaround, narrowing the haystack with a literal prefilter before paying
// for the expensive backtracking attempt — the same "skip ahead to a
// plausible start, then run the real matcher" shape a prefiltered DFA/NFA
// engine uses, one level up, in front of backref instead of a finite
// automaton.
//
// A Matcher does not parse patterns. Building the backref.Program and
// supplying RequiredLiterals are the host's job, matching backref's own
// "pattern compilation is external" stance (see backref's package doc).
type Matcher struct {
	Engine    *backref.Engine
	Prefilter prefilter.Prefilter
	Config    Config
}

// NewMatcher builds a Matcher around engine. requiredLiterals are byte
// sequences the host knows must appear in any match; when non-empty and
// Config.EnablePrefilter is set, they seed a prefilter, and the search
// starts at the first position where one of them occurs instead of at 0.
// A match that begins before that position is not found.
func NewMatcher(engine *backref.Engine, requiredLiterals [][]byte, cfg Config) *Matcher {
	m := &Matcher{Engine: engine, Config: cfg}
	if cfg.CaseInsensitive {
		engine.CaseInsensitive = true
	}
	if cfg.EnablePrefilter {
		m.Prefilter = buildPrefilter(requiredLiterals)
	}
	return m
}

// FindSubmatchIndex returns the capture array (group 0 first) of the
// leftmost match that starts at or after the prefilter's first candidate
// position (index 0 when there is no prefilter), or nil if there is none.
//
// When the engine's Program.InitialLoopBack is set, a single Engine.Execute
// call already retries every later start position internally by backtracking
// through the program's own anchored-initial/unanchored-initial loop edge;
// the prefilter's job here is only to pick a better-than-zero starting point,
// not to replace that retry loop.
func (m *Matcher) FindSubmatchIndex(s string, compactStringHint bool) ([]int, error) {
	start := 0
	if m.Prefilter != nil {
		cand := m.Prefilter.Find([]byte(s), 0)
		if cand == -1 {
			return nil, nil
		}
		start = cand
	}

	cursor := backref.NewStringCursor(s, compactStringHint)
	frame := m.Engine.CreateFrame(cursor, start, start, cursor.Length())
	return m.Engine.Execute(frame, compactStringHint)
}
