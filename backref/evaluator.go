package backref

// transitionMatches is the Transition Evaluator: it tests whether tr is
// admissible from f's current position without mutating anything. On
// success it also returns advance, the number of cursor index units the
// Frame Updater should move by if this transition is committed — the width
// of the consumed character for CharacterClass/InitialOrFinal targets, the
// captured region's length for a non-empty BackReference, 0 otherwise. This
// keeps the character decode and backreference length computation (already
// needed to answer the admissibility question) from being done twice.
func (e *Engine) transitionMatches(f *Frame, tr *Transition, target *State, c rune, cWidth int, atEnd bool) (ok bool, advance int, err error) {
	dir := e.Program.Dir

	if tr.CaretGuard && f.index != 0 {
		return false, 0, nil
	}
	if tr.DollarGuard && f.index != f.maxIndex {
		return false, 0, nil
	}

	// Programs are immutable and shared across concurrently running frames,
	// so guard order is walked by index rather than by reversing the slice
	// in place.
	guards := tr.Guards
	for n := 0; n < len(guards); n++ {
		i := n
		if dir == Backward {
			i = len(guards) - 1 - n
		}
		g := guards[i]
		q := g.Quant
		switch g.kind(dir) {
		case GuardEnter, GuardLoop:
			if q.Max != Unbounded && f.QuantCounts[q.Index] == q.Max {
				return false, 0, nil
			}
		case GuardExit:
			if f.QuantCounts[q.Index] < q.Min {
				return false, 0, nil
			}
		case GuardExitZeroWidth:
			if q.HasZeroWidth() && f.ZeroWidth[q.ZeroWidthIndex] == f.index {
				if q.NoCounter || f.QuantCounts[q.Index] > q.Min {
					return false, 0, nil
				}
			}
		case GuardEnterEmptyMatch:
			if f.QuantCounts[q.Index] >= q.Min {
				return false, 0, nil
			}
		default:
			// GuardEnterInc, GuardLoopInc, GuardExitReset, GuardEnterZeroWidth
			// admit unconditionally at test time; they only act in updateState.
		}
	}

	switch target.Kind {
	case KindInitialOrFinal:
		if target.UnanchoredInitial && atEnd {
			return false, 0, nil
		}
		if target.AnchoredFinal && !atEnd {
			return false, 0, nil
		}
		return true, cWidth, nil

	case KindCharacterClass:
		if atEnd || !target.Class.Contains(c) {
			return false, 0, nil
		}
		return true, cWidth, nil

	case KindLookaround:
		if target.Inlineable {
			matched, err := e.runSubMatcher(target, f, nil)
			if err != nil {
				return false, 0, err
			}
			return matched != target.Negated, 0, nil
		}
		// Dispatcher runs this upon entry (step 2); admit for now so the
		// transition can be taken and the lookaround state reached.
		return true, 0, nil

	case KindBackReference:
		start, end, isSet := resolveGroupBounds(tr.Boundaries, f.Captures, target.GroupNumber, f.index)
		if !isSet || end <= start {
			return true, 0, nil
		}
		length := end - start
		if dir == Forward {
			if f.index+length > f.maxIndex {
				return false, 0, nil
			}
			if e.regionEquals(f.input, start, f.index, length) {
				return true, length, nil
			}
			return false, 0, nil
		}
		if f.index-length < 0 {
			return false, 0, nil
		}
		if e.regionEquals(f.input, start-length, f.index-length, length) {
			return true, length, nil
		}
		return false, 0, nil

	case KindEmptyMatch:
		return true, 0, nil

	default:
		return false, 0, &FatalError{State: InvalidState, Err: ErrUnreachableState}
	}
}

// regionEquals checks the default-folded region match first, then, if that
// fails under case-insensitive matching, falls back to the engine's
// char-by-char EqualsIgnoreCase predicate as described in §6.
func (e *Engine) regionEquals(input Cursor, a, b, length int) bool {
	if input.RegionMatches(a, b, length, e.CaseInsensitive) {
		return true
	}
	if !e.CaseInsensitive || e.EqualsIgnoreCase == nil {
		return false
	}
	return e.regionEqualsFold(input, a, b, length)
}

// regionEqualsFold walks both regions rune-by-rune using the engine's
// case-folding predicate. It is the slow path, reached only when the
// cursor's default folding already failed on a case-insensitive match.
func (e *Engine) regionEqualsFold(input Cursor, a, b, length int) bool {
	enda, endb := a+length, b+length
	for a < enda && b < endb {
		ra, wa := input.CharAt(a)
		rb, wb := input.CharAt(b)
		if wa == 0 || wb == 0 || !e.EqualsIgnoreCase(ra, rb) {
			return false
		}
		a += wa
		b += wb
	}
	return a == enda && b == endb
}

// resolveGroupBounds answers the backreference's "what does group mean right
// now" question by consulting the transition's own GroupBoundaries overlay
// before falling back to the live capture array, per §4.3.
func resolveGroupBounds(gb GroupBoundaries, captures []int, group int, current int) (start, end int, isSet bool) {
	startSlot, endSlot := 2*group, 2*group+1
	s, sset := overlaySlot(gb, captures, startSlot, current)
	e, eset := overlaySlot(gb, captures, endSlot, current)
	if !sset || !eset {
		return 0, 0, false
	}
	return s, e, true
}

func overlaySlot(gb GroupBoundaries, captures []int, slot int, current int) (value int, isSet bool) {
	for _, u := range gb.Update {
		if u == slot {
			return current, true
		}
	}
	for _, c := range gb.Clear {
		if c == slot {
			return -1, false
		}
	}
	if slot < 0 || slot >= len(captures) {
		return -1, false
	}
	v := captures[slot]
	return v, v >= 0
}
