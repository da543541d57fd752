package backref

// Builder constructs a Program incrementally using a low-level API: it hands
// out StateIDs as states are added and leaves pattern parsing and AST
// lowering — the steps that would normally produce the calls made against
// this API — to the host compiler.
type Builder struct {
	states          []State
	dir             Direction
	numCaptures     int
	quantifiers     []Quantifier
	numZeroWidth    int
	initialLoopBack bool
}

// NewBuilder creates an empty Builder for a Program running in dir.
func NewBuilder(dir Direction) *Builder {
	return &Builder{dir: dir}
}

// SetNumCaptureGroups records how many capturing groups (including group 0)
// the finished Program's capture array must hold.
func (b *Builder) SetNumCaptureGroups(n int) *Builder {
	b.numCaptures = n
	return b
}

// SetInitialLoopBack marks the program as needing the anchored-initial ->
// unanchored-initial loop-back transition described in §3.
func (b *Builder) SetInitialLoopBack(v bool) *Builder {
	b.initialLoopBack = v
	return b
}

// AddQuantifier registers a new Quantifier and returns a pointer to it for
// use in QuantifierGuard. A later AddQuantifier call may reallocate the
// Builder's backing slice; the returned pointer then refers to the old copy,
// which stays usable (see Build).
func (b *Builder) AddQuantifier(min, max int, zeroWidth bool) *Quantifier {
	q := Quantifier{Index: len(b.quantifiers), Min: min, Max: max, ZeroWidthIndex: -1}
	if zeroWidth {
		q.ZeroWidthIndex = b.numZeroWidth
		b.numZeroWidth++
	}
	b.quantifiers = append(b.quantifiers, q)
	return &b.quantifiers[len(b.quantifiers)-1]
}

// AddState appends a fully-formed state (built by the caller via the State
// literal) and returns its id.
func (b *Builder) AddState(s State) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, s)
	return id
}

// AddInitialOrFinal adds an InitialOrFinal state with the given flags.
func (b *Builder) AddInitialOrFinal(anchoredInitial, unanchoredInitial, anchoredFinal, unanchoredFinal bool) StateID {
	return b.AddState(State{
		Kind:              KindInitialOrFinal,
		AnchoredInitial:   anchoredInitial,
		UnanchoredInitial: unanchoredInitial,
		AnchoredFinal:     anchoredFinal,
		UnanchoredFinal:   unanchoredFinal,
	})
}

// AddCharacterClass adds a CharacterClass state over the given set.
func (b *Builder) AddCharacterClass(set CharSet) StateID {
	return b.AddState(State{Kind: KindCharacterClass, Class: set})
}

// AddEmptyMatch adds an EmptyMatch marker state.
func (b *Builder) AddEmptyMatch() StateID {
	return b.AddState(State{Kind: KindEmptyMatch})
}

// AddBackReference adds a BackReference state for the given group number.
func (b *Builder) AddBackReference(group int) StateID {
	return b.AddState(State{Kind: KindBackReference, GroupNumber: group})
}

// AddLookaround adds a Lookaround state. inlineable must be computed by the
// caller from the rule in §4.5 (exactly one predecessor, and either negated
// or the sub-program writes no captures) since the Builder does not track
// predecessor counts.
func (b *Builder) AddLookaround(subExecutor int, negated bool, lookDir Direction, inlineable bool) StateID {
	return b.AddState(State{
		Kind:        KindLookaround,
		SubExecutor: subExecutor,
		Negated:     negated,
		LookDir:     lookDir,
		Inlineable:  inlineable,
	})
}

// AddTransition appends tr to state id's successor list, in priority order:
// call it for the highest-priority edge first, then each subsequent
// lower-priority alternative, since Out[0] is what the dispatcher commits to
// whenever it matches.
func (b *Builder) AddTransition(id StateID, tr Transition) {
	b.states[id].Out = append(b.states[id].Out, tr)
}

// Simple constructs a Transition with no group boundaries or guards, the
// common case for a plain epsilon or character-class edge.
func Simple(target StateID) Transition {
	return Transition{Target: target}
}

// Build finalizes the Program. Quantifier pointers handed out earlier by
// AddQuantifier stay valid even if the backing slice has since grown and
// moved: a Quantifier is immutable config (its {min,max} never change after
// construction), only Frame.QuantCounts[q.Index] changes per match, so an
// older copy left behind by a slice reallocation still reads correctly.
func (b *Builder) Build() *Program {
	return &Program{
		States:                  b.states,
		Dir:                     b.dir,
		NumCaptureGroups:        b.numCaptures,
		NumQuantifiers:          len(b.quantifiers),
		NumZeroWidthQuantifiers: b.numZeroWidth,
		InitialLoopBack:         b.initialLoopBack,
	}
}
