package backref

// Frame is the complete mutable state of a single in-progress match attempt:
// input bounds, program counter, capture boundaries, quantifier counters, and
// zero-width witnesses. The layout is a flat struct-of-arrays (one []int
// block per concern) so the Frame.clone taken when the dispatcher defers an
// alternative is a handful of bulk slice copies rather than a deep object
// graph walk.
type Frame struct {
	input     Cursor
	fromIndex int
	index     int

	// maxIndex bounds the scan: Forward reads/final-acceptance treat it as
	// the end of input, letting a host restrict a match attempt to a region
	// shorter than the whole Cursor without copying. Backward scans are
	// always bounded by absolute index 0.
	maxIndex int

	// pc is the state this frame resumes at while suspended on the stack.
	pc StateID

	// Captures is length 2*NumCaptureGroups; -1 means unset.
	Captures []int

	// QuantCounts is length NumQuantifiers.
	QuantCounts []int

	// ZeroWidth is length NumZeroWidthQuantifiers: the input index at which
	// the quantifier last committed an empty iteration, or -1.
	ZeroWidth []int

	// result holds a captured result once a final state has been reached;
	// nil until then.
	result []int
}

// NewFrame allocates a Frame sized for program and seeded over the given
// input window, matching the createFrame(input, fromIndex, index, maxIndex)
// host interface from §6 of the engine's contract.
func NewFrame(program *Program, input Cursor, fromIndex, index, maxIndex int) *Frame {
	f := &Frame{
		input:     input,
		fromIndex: fromIndex,
		index:     index,
		maxIndex:  maxIndex,
		pc:        InvalidState,
	}
	f.Captures = newIntSlice(2*program.NumCaptureGroups, -1)
	f.QuantCounts = newIntSlice(program.NumQuantifiers, 0)
	f.ZeroWidth = newIntSlice(program.NumZeroWidthQuantifiers, -1)
	return f
}

func newIntSlice(n, fill int) []int {
	if n == 0 {
		return nil
	}
	s := make([]int, n)
	if fill != 0 {
		for i := range s {
			s[i] = fill
		}
	}
	return s
}

// clone makes a deep, independent copy of the frame, used when the
// dispatcher defers a lower-priority successor to the backtrack stack while
// committing a higher-priority one to the live frame.
func (f *Frame) clone() *Frame {
	c := &Frame{
		input:     f.input,
		fromIndex: f.fromIndex,
		index:     f.index,
		maxIndex:  f.maxIndex,
		pc:        f.pc,
	}
	if f.Captures != nil {
		c.Captures = append([]int(nil), f.Captures...)
	}
	if f.QuantCounts != nil {
		c.QuantCounts = append([]int(nil), f.QuantCounts...)
	}
	if f.ZeroWidth != nil {
		c.ZeroWidth = append([]int(nil), f.ZeroWidth...)
	}
	return c
}

// Index returns the frame's current input cursor position.
func (f *Frame) Index() int { return f.index }

// Result returns the capture array recorded when a final state was first
// reached, or nil if the frame has not (yet) produced one.
func (f *Frame) Result() []int { return f.result }
