package backref

// frag is a continuation-passing-style NFA fragment used only by tests to
// hand-assemble small Programs without a pattern parser (parsing is out of
// scope for this package; see doc.go). Given the StateID its fragment should
// transition to on completion, a frag builds whatever states it needs and
// returns its own entry StateID. This mirrors how a real compiler's AST
// lowering pass would emit a Program, minus the AST and the parser in front
// of it.
type frag func(b *Builder, next StateID) StateID

// seq chains fragments so frags[i]'s continuation is frags[i+1]'s entry.
func seq(frags ...frag) frag {
	return func(b *Builder, next StateID) StateID {
		for i := len(frags) - 1; i >= 0; i-- {
			next = frags[i](b, next)
		}
		return next
	}
}

// lit consumes one character from set.
func lit(set CharSet) frag {
	return func(b *Builder, next StateID) StateID {
		id := b.AddCharacterClass(set)
		b.AddTransition(id, Simple(next))
		return id
	}
}

// emptyMatch is a zero-width marker state with no guards, used to splice
// group boundaries onto otherwise-plain edges.
func emptyMatch() frag {
	return func(b *Builder, next StateID) StateID {
		id := b.AddEmptyMatch()
		b.AddTransition(id, Simple(next))
		return id
	}
}

// backreference requires the input at the cursor to equal capture group.
func backreference(group int) frag {
	return func(b *Builder, next StateID) StateID {
		id := b.AddBackReference(group)
		b.AddTransition(id, Simple(next))
		return id
	}
}

// group wraps inner with capture-boundary writes for the given group number:
// Update[2*group] on entry, Update[2*group+1] on exit.
func group(num int, inner frag) frag {
	return func(b *Builder, next StateID) StateID {
		closeID := b.AddEmptyMatch()
		b.AddTransition(closeID, Transition{Target: next, Boundaries: GroupBoundaries{Update: []int{2*num + 1}}})
		innerStart := inner(b, closeID)
		openID := b.AddEmptyMatch()
		b.AddTransition(openID, Transition{Target: innerStart, Boundaries: GroupBoundaries{Update: []int{2 * num}}})
		return openID
	}
}

// repeat builds a {min,max} loop around inner. greedy controls whether the
// consume branch or the exit branch has higher dispatch priority (Out[0]).
// zeroWidth requests a zero-width witness guard on the consume edge, for
// patterns like (a*)* whose inner body can match empty. The Quantifier is
// registered lazily, inside the returned frag, since the real Builder isn't
// constructed until buildProgram runs.
func repeat(min, max int, zeroWidth bool, greedy bool, inner frag) frag {
	return func(b *Builder, next StateID) StateID {
		q := b.AddQuantifier(min, max, zeroWidth)
		loopHead := b.AddEmptyMatch()
		bodyEnd := b.AddEmptyMatch()

		// The loop-back edge (completed iteration -> try another) is where a
		// zero-width iteration gets vetoed: if this iteration's body left the
		// cursor exactly where GuardEnterZeroWidth marked it on the way in,
		// looping again would spin forever, so reject the edge and let
		// backtrack() fall through to the exit alternative already deferred
		// at loopHead.
		loopBackGuards := []QuantifierGuard(nil)
		if zeroWidth {
			loopBackGuards = []QuantifierGuard{{Quant: q, Kind: GuardExitZeroWidth, ReverseKind: GuardExitZeroWidth}}
		}
		b.AddTransition(bodyEnd, Transition{Target: loopHead, Guards: loopBackGuards})
		bodyStart := inner(b, bodyEnd)

		consumeGuards := []QuantifierGuard{{Quant: q, Kind: GuardLoop, ReverseKind: GuardLoop}}
		if zeroWidth {
			consumeGuards = append(consumeGuards,
				QuantifierGuard{Quant: q, Kind: GuardEnterZeroWidth, ReverseKind: GuardEnterZeroWidth})
		}
		consumeT := Transition{Target: bodyStart, Guards: consumeGuards}

		exitT := Transition{Target: next, Guards: []QuantifierGuard{{Quant: q, Kind: GuardExit, ReverseKind: GuardExit}}}

		if greedy {
			b.AddTransition(loopHead, consumeT)
			b.AddTransition(loopHead, exitT)
		} else {
			b.AddTransition(loopHead, exitT)
			b.AddTransition(loopHead, consumeT)
		}
		return loopHead
	}
}

// lookaround wraps state as a Lookaround node referencing sub as the
// registered sub-executor.
func lookaround(subIdx int, negated bool, dir Direction, inlineable bool) frag {
	return func(b *Builder, next StateID) StateID {
		id := b.AddLookaround(subIdx, negated, dir, inlineable)
		b.AddTransition(id, Simple(next))
		return id
	}
}

// buildProgram assembles a complete forward or backward Program: an anchored
// initial state feeding body, terminating at a plain (unanchored) final
// state, with numGroups capture slots (including group 0, written here).
func buildProgram(dir Direction, numGroups, numQuantifiers, numZeroWidth int, body frag) *Program {
	b := NewBuilder(dir)
	b.SetNumCaptureGroups(numGroups)
	final := b.AddInitialOrFinal(false, false, false, true)
	closeWhole := b.AddEmptyMatch()
	b.AddTransition(closeWhole, Transition{Target: final, Boundaries: GroupBoundaries{Update: []int{1}}})
	bodyStart := body(b, closeWhole)
	start := b.AddEmptyMatch()
	b.AddTransition(start, Transition{Target: bodyStart, Boundaries: GroupBoundaries{Update: []int{0}}})
	initID := b.AddInitialOrFinal(true, false, false, false)
	b.AddTransition(initID, Simple(start))
	p := b.Build()
	// buildProgram's own bookkeeping (quantifiers, zero-width slots) is
	// already tracked by the Builder from AddQuantifier calls inside body;
	// numQuantifiers/numZeroWidth are accepted for call-site documentation
	// and cross-checked here rather than trusted blindly.
	if p.NumQuantifiers != numQuantifiers {
		panic("buildProgram: quantifier count mismatch")
	}
	if p.NumZeroWidthQuantifiers != numZeroWidth {
		panic("buildProgram: zero-width quantifier count mismatch")
	}
	return p
}

func runForward(p *Program, input string, fromIndex int) []int {
	e := &Engine{Program: p}
	cur := NewStringCursor(input, true)
	f := e.CreateFrame(cur, fromIndex, fromIndex, cur.Length())
	result, err := e.Execute(f, true)
	if err != nil {
		panic(err)
	}
	return result
}
