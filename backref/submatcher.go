package backref

// runSubMatcher is the Sub-Matcher Driver: it invokes the nested Engine
// registered for state's lookaround id and, for a non-inlined positive
// lookaround that writes captures, splices the sub-match's capture array
// into outer (the caller's live frame) after a successful match.
//
// outer is nil when called from transitionMatches' inlined path, where the
// lookaround must not perturb any caller frame (§4.5).
func (e *Engine) runSubMatcher(state *State, f *Frame, outer *Frame) (bool, error) {
	if state.SubExecutor < 0 || state.SubExecutor >= len(e.SubExecutors) {
		return false, &FatalError{Err: ErrMissingSubExecutor}
	}
	sub := e.SubExecutors[state.SubExecutor]
	if sub == nil {
		return false, &FatalError{Err: ErrMissingSubExecutor}
	}

	seedIndex := f.index
	subFrame := sub.CreateFrame(f.input, f.fromIndex, seedIndex, f.maxIndex)
	subFrame.pc = sub.startState()

	result, err := sub.run(subFrame)
	if err != nil {
		return false, err
	}
	matched := result != nil

	if outer != nil && matched && !state.Negated && sub.Program.WritesCaptures() {
		mergeCaptures(outer.Captures, result)
	}
	return matched, nil
}

// mergeCaptures overwrites dst's slots with src's wherever src has an
// actual value (src is authoritative only where it wrote something); slots
// src never touched are left as dst already had them.
func mergeCaptures(dst, src []int) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		if src[i] >= 0 {
			dst[i] = src[i]
		}
	}
}
