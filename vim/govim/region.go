package govim

import "unicode"

// countProduct combines the count typed before an operator with the count
// typed before its motion. Zero means no count was typed. The product is
// capped at MaxCount.
func countProduct(a, b int) int {
	switch {
	case a == 0:
		return b
	case b == 0:
		return a
	case a > MaxCount/b:
		return MaxCount
	}
	return a * b
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// ResolveRegion computes the span operator op acts on when combined with
// jump. The motion is applied count times from the cursor and the positions
// before and after are compared. On success the cursor is left at the start
// of the region; on failure it is not moved.
func ResolveRegion(e *Editor, op Key, count int, jump JumpDescriptor) (Region, error) {
	start := e.cursor
	if e.buf.Len() == 0 {
		return Region{}, ErrEmptyBuffer
	}

	if jump.Key == op {
		lines := atLeastOne(count)
		end := start.Row + lines
		if end > e.buf.Len() {
			end = e.buf.Len()
		}
		r := LineRegion(start.Row, end)
		e.cursor = r.Start
		return r, nil
	}

	m, ok := motionHandlers[jump.Key]
	if !ok {
		return Region{}, &InvalidSequenceError{Keys: op.String() + jump.Key.String(), Reason: "not a motion"}
	}
	n := count
	if !m.absolute {
		n = atLeastOne(n)
	}

	e.operatorPending = true
	defer func() { e.operatorPending = false }()

	kind := m.kind
	var moved bool
	if op.IsRune('c') && (jump.Key.IsRune('w') || jump.Key.IsRune('W')) && !e.isBlankAt(start) {
		// cw on a word changes to the end of the word, like ce
		moved = changeWordEnd(e, n, jump.Key.IsRune('W'))
		kind = motionInclusive
	} else {
		moved = m.fn(e, n, jump.Arg)
	}
	after := e.cursor
	e.cursor = start
	if !moved {
		if jump.Key.IsRune('n') || jump.Key.IsRune('N') {
			return Region{}, ErrPatternNotFound
		}
		return Region{}, ErrMotionFailed
	}

	var r Region
	switch kind {
	case motionLinewise:
		// the end row counts only when the motion moved forward
		switch {
		case after.Row > start.Row:
			r = LineRegion(start.Row, after.Row+1)
		case after.Row < start.Row:
			r = LineRegion(after.Row, start.Row)
		default:
			r = LineRegion(start.Row, start.Row+1)
		}

	case motionToEOL:
		r = Region{Start: start, End: Position{Row: after.Row, Col: e.buf.LineLen(after.Row)}}

	case motionInclusive:
		r = Region{Start: start, End: after}.Ordered()
		if r.End.Col < e.buf.LineLen(r.End.Row) {
			r.End.Col++
		}

	default:
		r = Region{Start: start, End: after}.Ordered()
		if r.End.Row > r.Start.Row {
			r = e.adjustExclusive(r, jump.Key.IsRune('w') || jump.Key.IsRune('W'))
		}
	}

	e.cursor = r.Start
	return r, nil
}

// adjustExclusive applies vi's rules for an exclusive motion that ends on a
// later line. A word motion stops at the end of the last word it moved over.
// Otherwise an end in column 0 is pulled back to the end of the previous
// line, and when the start is at or before the first non-blank the region
// becomes line-wise.
func (e *Editor) adjustExclusive(r Region, word bool) Region {
	row := r.End.Row - 1
	if word {
		r.End = Position{Row: row, Col: e.buf.LineLen(row)}
		if r.Empty() {
			return LineRegion(r.Start.Row, r.Start.Row+1)
		}
		return r
	}
	if r.End.Col != 0 {
		return r
	}
	if r.Start.Col <= firstNonBlank(e.lineRunes(r.Start.Row)) {
		return LineRegion(r.Start.Row, r.End.Row)
	}
	r.End = Position{Row: row, Col: e.buf.LineLen(row)}
	return r
}

// changeWordEnd moves to the end of the count'th word, counting the word
// under the cursor as the first one even when the cursor is on its last
// character
func changeWordEnd(e *Editor, count int, big bool) bool {
	line := e.lineRunes(e.cursor.Row)
	col := e.cursor.Col
	c := classify(line[col], big)
	atEnd := col+1 >= len(line) || classify(line[col+1], big) != c
	if atEnd {
		count--
	}
	if count > 0 {
		repeatMotion(count, func() bool { return wordEndOnce(e, big) })
	}
	return true
}

func (e *Editor) isBlankAt(p Position) bool {
	r, ok := e.buf.RuneAt(p)
	return !ok || unicode.IsSpace(r)
}
