package backref

// updateState is the Frame Updater: given a transition already judged
// admissible by transitionMatches, apply its effects to f in place — group
// boundaries first, then quantifier guards in guard order (reversed for
// backward execution), then the new input index.
func (e *Engine) updateState(f *Frame, tr *Transition, target *State, advance int) error {
	applyBoundaries(f, tr.Boundaries)

	dir := e.Program.Dir
	guards := tr.Guards
	for n := 0; n < len(guards); n++ {
		idx := n
		if dir == Backward {
			idx = len(guards) - 1 - n
		}
		g := guards[idx]
		q := g.Quant
		switch g.kind(dir) {
		case GuardEnter, GuardEnterInc, GuardLoop, GuardLoopInc:
			f.QuantCounts[q.Index]++
		case GuardExit, GuardExitReset:
			f.QuantCounts[q.Index] = 0
		case GuardEnterZeroWidth:
			if q.HasZeroWidth() {
				f.ZeroWidth[q.ZeroWidthIndex] = f.index
			}
		case GuardEnterEmptyMatch:
			if !tr.CaretGuard && !tr.DollarGuard {
				f.QuantCounts[q.Index] = q.Min
			} else {
				f.QuantCounts[q.Index]++
			}
		case GuardExitZeroWidth:
			// No state change at update time; it is purely an admissibility
			// test in transitionMatches.
		}
	}

	newIndex, err := getNewIndex(target, f.index, dir, advance)
	if err != nil {
		return err
	}
	f.index = newIndex
	return nil
}

func applyBoundaries(f *Frame, gb GroupBoundaries) {
	for _, slot := range gb.Update {
		f.Captures[slot] = f.index
	}
	for _, slot := range gb.Clear {
		f.Captures[slot] = -1
	}
}

// getNewIndex computes the post-transition cursor index from the target
// state's kind and the pre-computed advance (character width or captured
// backreference length).
func getNewIndex(target *State, index int, dir Direction, advance int) (int, error) {
	switch target.Kind {
	case KindCharacterClass:
		if dir == Forward {
			return index + advance, nil
		}
		return index - advance, nil
	case KindInitialOrFinal:
		// Only the initialLoopBack retry-at-next-position edge (entering an
		// Initial state) advances the cursor; a transition into a Final
		// state is the whole-match acceptance bookkeeping and must not
		// consume, or every match would overshoot its true end by one.
		if target.AnchoredInitial || target.UnanchoredInitial {
			if dir == Forward {
				return index + advance, nil
			}
			return index - advance, nil
		}
		return index, nil
	case KindLookaround, KindEmptyMatch:
		return index, nil
	case KindBackReference:
		if advance == 0 {
			return index, nil
		}
		if dir == Forward {
			return index + advance, nil
		}
		return index - advance, nil
	default:
		return index, &FatalError{State: InvalidState, Err: ErrUnreachableState}
	}
}
