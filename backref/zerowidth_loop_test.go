package backref

import (
	"reflect"
	"testing"
)

// (a*)*b: the outer star's body can itself match zero characters (when the
// inner a* takes none), so the outer quantifier needs the zero-width witness
// or it would spin forever re-entering an iteration that makes no progress.
// This is the pattern spec.md's design notes single out by name.
func TestNestedStarZeroWidthTermination(t *testing.T) {
	inner := repeat(0, Unbounded, false, true, lit(aSet))
	outer := repeat(0, Unbounded, true, true, inner)
	p := buildProgram(Forward, 1, 2, 1, seq(outer, lit(bSet)))

	cases := []struct {
		input string
		want  []int
	}{
		{"b", []int{0, 1}},
		{"aaab", []int{0, 4}},
		{"c", nil},
	}
	for _, tc := range cases {
		got := runForward(p, tc.input, 0)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("input %q: got %v, want %v", tc.input, got, tc.want)
		}
	}
}

// (?:^)* has no real counter to speak of — every iteration is the same
// zero-width assertion at the same position, so NoCounter tells
// exitZeroWidth to reject the empty iteration outright rather than comparing
// against a {min,max} that was never meaningful to begin with.
func TestNoCounterZeroWidthQuantifier(t *testing.T) {
	b := NewBuilder(Forward)
	b.SetNumCaptureGroups(1)

	final := b.AddInitialOrFinal(false, false, false, true)
	closeWhole := b.AddEmptyMatch()
	b.AddTransition(closeWhole, Transition{Target: final, Boundaries: GroupBoundaries{Update: []int{1}}})
	bodyConsumer := b.AddCharacterClass(aSet)
	b.AddTransition(bodyConsumer, Simple(closeWhole))

	q := b.AddQuantifier(0, Unbounded, true)
	q.NoCounter = true

	loopHead := b.AddEmptyMatch()
	bodyEnd := b.AddEmptyMatch()
	b.AddTransition(bodyEnd, Transition{
		Target: loopHead,
		Guards: []QuantifierGuard{{Quant: q, Kind: GuardExitZeroWidth, ReverseKind: GuardExitZeroWidth}},
	})
	caretState := b.AddEmptyMatch()
	b.AddTransition(caretState, Transition{Target: bodyEnd, CaretGuard: true})
	b.AddTransition(loopHead, Transition{
		Target: caretState,
		Guards: []QuantifierGuard{
			{Quant: q, Kind: GuardEnterZeroWidth, ReverseKind: GuardEnterZeroWidth},
		},
	})
	b.AddTransition(loopHead, Transition{Target: bodyConsumer})

	start := b.AddEmptyMatch()
	b.AddTransition(start, Transition{Target: loopHead, Boundaries: GroupBoundaries{Update: []int{0}}})
	initID := b.AddInitialOrFinal(true, false, false, false)
	b.AddTransition(initID, Simple(start))

	p := b.Build()
	got := runForward(p, "a", 0)
	want := []int{0, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
