package backref

import "sync/atomic"

// Engine is one instance of the backtracking fallback matcher, parameterized
// by a single Program and a registry of sub-executors for its lookaround
// states. Lookaround sub-programs are themselves independent Engine
// instances with their own Program (never the parent's), so there is no
// possibility of a lookaround recursing into its own parent.
//
// An Engine is single-threaded and synchronous: a running match holds one
// Frame and its backtrackStack, mutating both in place with no internal
// yield points. The Program is immutable after construction and safe to
// share across concurrently running Frames on distinct Engine call sites
// that reference it — but an individual Engine value's per-call internals
// (the backtrackStack below) are not reused across concurrent calls, so
// typical hosts build one Engine per in-flight match rather than share one.
type Engine struct {
	Program      *Program
	SubExecutors []*Engine

	// CaseInsensitive enables the default-fold-then-char-by-char-fold
	// backreference comparison described in §6.
	CaseInsensitive bool

	// EqualsIgnoreCase is the char-by-char case-folding predicate consulted
	// when CaseInsensitive is set and the cursor's own default folding
	// fails a backreference comparison.
	EqualsIgnoreCase func(a, b rune) bool

	// Cancelled is polled at the top of every dispatcher step. A nil
	// pointer means the match can never be cancelled. The host sets it to
	// enforce wall-clock limits; the engine has no timeout of its own.
	Cancelled *atomic.Bool
}

// CreateFrame allocates a Frame sized to this engine's Program and seeded
// over the given input window, implementing the createFrame(input,
// fromIndex, index, maxIndex) host interface.
func (e *Engine) CreateFrame(input Cursor, fromIndex, index, maxIndex int) *Frame {
	f := NewFrame(e.Program, input, fromIndex, index, maxIndex)
	f.pc = e.startState()
	return f
}

// startState returns the program's entry point: the first anchored initial
// state, or, if the program has none, the first unanchored initial state
// (InvalidState if it has neither). Retrying at later start positions is
// done by the program's own anchored-initial -> unanchored-initial edge.
func (e *Engine) startState() StateID {
	for id := range e.Program.States {
		s := &e.Program.States[id]
		if s.Kind == KindInitialOrFinal && s.AnchoredInitial {
			return StateID(id)
		}
	}
	for id := range e.Program.States {
		s := &e.Program.States[id]
		if s.Kind == KindInitialOrFinal && s.UnanchoredInitial {
			return StateID(id)
		}
	}
	return InvalidState
}

// Execute runs frame until a result is produced or the backtrack stack is
// exhausted, returning the winning capture array or nil for no match.
// Execute does not read compactStringHint: character decoding is fixed by
// the Cursor frame was built with (see NewStringCursor), and sub-frames
// reuse that same Cursor.
func (e *Engine) Execute(frame *Frame, compactStringHint bool) ([]int, error) {
	return e.run(frame)
}

// run drives the dispatcher loop. It is factored out of Execute so the
// Sub-Matcher Driver can reuse it for nested lookaround engines without
// going through the public compactStringHint-carrying signature.
func (e *Engine) run(frame *Frame) ([]int, error) {
	if frame.pc == InvalidState {
		frame.pc = e.startState()
	}
	var stack backtrackStack
	for {
		if e.Cancelled != nil && e.Cancelled.Load() {
			return nil, ErrCancelled
		}
		outcome, err := e.step(frame, &stack)
		if err != nil {
			return nil, err
		}
		switch outcome {
		case stepMatched:
			return frame.result, nil
		case stepFailed:
			return nil, nil
		case stepContinue:
			// f.pc was updated in place; loop.
		}
	}
}
