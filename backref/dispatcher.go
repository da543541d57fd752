package backref

// stepOutcome is the tri-state result of one dispatcher cycle.
type stepOutcome int

const (
	// stepContinue means f.pc was advanced; keep looping.
	stepContinue stepOutcome = iota
	// stepMatched means f.result holds the winning capture array.
	stepMatched
	// stepFailed means the backtrack stack is exhausted with no queued
	// result: overall failure.
	stepFailed
)

// step runs one State Dispatcher cycle starting from f.pc.
func (e *Engine) step(f *Frame, stack *backtrackStack) (stepOutcome, error) {
	state := e.Program.State(f.pc)
	if state == nil {
		return stepFailed, &FatalError{State: f.pc, Err: ErrUnreachableState}
	}

	if state.Kind == KindInitialOrFinal && isFinalReached(state, f.index, f.maxIndex, e.Program.Dir) {
		f.result = append([]int(nil), f.Captures...)
		return stepMatched, nil
	}

	if state.Kind == KindLookaround && !state.Inlineable {
		matched, err := e.runSubMatcher(state, f, f)
		if err != nil {
			return stepFailed, err
		}
		if matched == state.Negated {
			return e.backtrack(f, stack), nil
		}
	}

	c, width, atEnd := e.readChar(f)

	firstMatch := -1
	var winnerAdvance int
	var winnerTarget *State
	for i := len(state.Out) - 1; i >= 0; i-- {
		tr := &state.Out[i]
		target := e.Program.State(tr.Target)
		if target == nil {
			return stepFailed, &FatalError{State: tr.Target, Err: ErrUnreachableState}
		}

		ok, advance, err := e.transitionMatches(f, tr, target, c, width, atEnd)
		if err != nil {
			return stepFailed, err
		}
		if !ok {
			continue
		}

		if firstMatch != -1 {
			e.deferAlternative(f, stack, &state.Out[firstMatch])
		}
		firstMatch = i
		winnerAdvance = advance
		winnerTarget = target
	}

	if firstMatch == -1 {
		return e.backtrack(f, stack), nil
	}

	winner := &state.Out[firstMatch]
	if err := e.updateState(f, winner, winnerTarget, winnerAdvance); err != nil {
		return stepFailed, err
	}
	f.pc = winner.Target
	return stepContinue, nil
}

// deferAlternative pushes a lower-priority successor onto the backtrack
// stack (or, if it leads straight to an unanchored final state, as a
// queued result candidate) so it can be tried later if the transition now
// being committed to the live frame ultimately fails.
func (e *Engine) deferAlternative(f *Frame, stack *backtrackStack, tr *Transition) {
	target := e.Program.State(tr.Target)
	if target != nil && target.Kind == KindInitialOrFinal && target.UnanchoredFinal && !target.AnchoredFinal {
		clone := f.clone()
		c, width, atEnd := e.readChar(clone)
		if ok, advance, err := e.transitionMatches(clone, tr, target, c, width, atEnd); err == nil && ok {
			_ = e.updateState(clone, tr, target, advance)
		}
		stack.pushResult(clone.Captures)
		return
	}

	clone := f.clone()
	if target != nil {
		c, width, atEnd := e.readChar(clone)
		if ok, advance, err := e.transitionMatches(clone, tr, target, c, width, atEnd); err == nil && ok {
			_ = e.updateState(clone, tr, target, advance)
		}
	}
	stack.push(clone, tr.Target)
}

// backtrack implements §4.4's discipline: a queued result always wins over
// further exploration, then the most recently deferred alternative, then
// overall failure.
func (e *Engine) backtrack(f *Frame, stack *backtrackStack) stepOutcome {
	if stack.canPopResult() {
		f.result = stack.popResult()
		return stepMatched
	}
	if stack.canPop() {
		stack.pop(f)
		return stepContinue
	}
	return stepFailed
}

// readChar reads the character at f's current position for the program's
// scan direction, reporting whether the cursor is at the end of the scan in
// that direction.
func (e *Engine) readChar(f *Frame) (c rune, width int, atEnd bool) {
	if e.Program.Dir == Forward {
		if f.index >= f.maxIndex {
			return 0, 0, true
		}
		c, width = f.input.CharAt(f.index)
		return c, width, false
	}
	if f.index <= 0 {
		return 0, 0, true
	}
	width = f.input.PrevWidth(f.index)
	c, _ = f.input.CharAt(f.index - width)
	return c, width, false
}

// isFinalReached reports whether state, standing at index with the program
// scanning in dir, is accepting. maxIndex is the frame's region bound for
// Forward scans (the Backward direction's anchor is always absolute index 0,
// since lookbehind always scans toward the start of the whole input).
func isFinalReached(state *State, index, maxIndex int, dir Direction) bool {
	if state.UnanchoredFinal {
		return true
	}
	if !state.AnchoredFinal {
		return false
	}
	if dir == Forward {
		return index == maxIndex
	}
	return index == 0
}
