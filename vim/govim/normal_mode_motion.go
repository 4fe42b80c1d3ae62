package govim

import "unicode"

// motionFunc moves the cursor count times (or to line count for absolute
// motions) and reports whether it moved
type motionFunc func(e *Editor, count int, arg rune) bool

type motionKind int

const (
	motionExclusive motionKind = iota
	motionInclusive
	motionLinewise
	motionToEOL
)

type motion struct {
	fn   motionFunc
	kind motionKind
	// absolute motions take their count as an argument (G) rather than as
	// a repeat count
	absolute bool
	// vertical motions keep the desired column
	vertical bool
	// needsArg motions take a target character (f, F, t, T)
	needsArg bool
}

var motionHandlers = map[Key]motion{
	Rune('h'):           {fn: moveLeft},
	Named(KeyLeft):      {fn: moveLeft},
	Ctrl('h'):           {fn: moveLeft},
	Named(KeyBackspace): {fn: moveLeft},
	Rune('l'):           {fn: moveRight},
	Named(KeyRight):     {fn: moveRight},
	Rune(' '):           {fn: moveRight},
	Rune('j'):           {fn: moveDown, kind: motionLinewise, vertical: true},
	Named(KeyDown):      {fn: moveDown, kind: motionLinewise, vertical: true},
	Ctrl('n'):           {fn: moveDown, kind: motionLinewise, vertical: true},
	Rune('k'):           {fn: moveUp, kind: motionLinewise, vertical: true},
	Named(KeyUp):        {fn: moveUp, kind: motionLinewise, vertical: true},
	Ctrl('p'):           {fn: moveUp, kind: motionLinewise, vertical: true},
	Rune('0'):           {fn: moveToLineStart},
	Named(KeyHome):      {fn: moveToLineStart},
	Rune('^'):           {fn: moveToFirstNonBlank},
	Rune('$'):           {fn: moveToLineEnd, kind: motionToEOL},
	Named(KeyEnd):       {fn: moveToLineEnd, kind: motionToEOL},
	Rune('w'):           {fn: moveWordForward},
	Rune('W'):           {fn: moveBigWordForward},
	Rune('b'):           {fn: moveWordBackward},
	Rune('B'):           {fn: moveBigWordBackward},
	Rune('e'):           {fn: moveWordEnd, kind: motionInclusive},
	Rune('E'):           {fn: moveBigWordEnd, kind: motionInclusive},
	Rune('G'):           {fn: moveToLine, kind: motionLinewise, absolute: true},
	Rune('+'):           {fn: moveNextLineStart, kind: motionLinewise},
	Named(KeyEnter):     {fn: moveNextLineStart, kind: motionLinewise},
	Rune('-'):           {fn: movePrevLineStart, kind: motionLinewise},
	Rune('_'):           {fn: moveCurrentLineStart, kind: motionLinewise, absolute: true},
	Rune('f'):           {fn: findForward, kind: motionInclusive, needsArg: true},
	Rune('t'):           {fn: tillForward, kind: motionInclusive, needsArg: true},
	Rune('F'):           {fn: findBackward, needsArg: true},
	Rune('T'):           {fn: tillBackward, needsArg: true},
	Rune(';'):           {fn: repeatFind, kind: motionInclusive},
	Rune(','):           {fn: repeatFindReverse},
	Rune('%'):           {fn: moveToMatchingBracket, kind: motionInclusive, absolute: true},
	Rune(')'):           {fn: moveSentenceForward},
	Rune('('):           {fn: moveSentenceBackward},
	Rune('}'):           {fn: moveParagraphForward},
	Rune('{'):           {fn: moveParagraphBackward},
	Rune('n'):           {fn: searchNext},
	Rune('N'):           {fn: searchPrev},
	Ctrl('f'):           {fn: pageForward, kind: motionLinewise},
	Named(KeyPageDown):  {fn: pageForward, kind: motionLinewise},
	Ctrl('b'):           {fn: pageBackward, kind: motionLinewise},
	Named(KeyPageUp):    {fn: pageBackward, kind: motionLinewise},
}

// IsMotion reports whether k is a motion key
func IsMotion(k Key) bool {
	_, ok := motionHandlers[k]
	return ok
}

// motionNeedsArg reports whether motion k takes a target character
func motionNeedsArg(k Key) bool {
	return motionHandlers[k].needsArg
}

func (e *Editor) lineRunes(row int) []rune {
	if row < 0 || row >= e.buf.Len() {
		return nil
	}
	return e.buf.lines[row]
}

func (e *Editor) lastCol(row int) int {
	n := e.buf.LineLen(row)
	if n == 0 || e.operatorPending {
		return n
	}
	return n - 1
}

func moveLeft(e *Editor, count int, _ rune) bool {
	if e.cursor.Col == 0 {
		return false
	}
	e.cursor.Col -= count
	if e.cursor.Col < 0 {
		e.cursor.Col = 0
	}
	return true
}

func moveRight(e *Editor, count int, _ rune) bool {
	last := e.lastCol(e.cursor.Row)
	if e.cursor.Col >= last {
		return false
	}
	e.cursor.Col += count
	if e.cursor.Col > last {
		e.cursor.Col = last
	}
	return true
}

func moveDown(e *Editor, count int, _ rune) bool {
	if e.cursor.Row >= e.buf.Len()-1 {
		return false
	}
	e.cursor.Row += count
	if e.cursor.Row > e.buf.Len()-1 {
		e.cursor.Row = e.buf.Len() - 1
	}
	e.cursor.Col = e.wantCol
	e.setCursorKeepColumn(e.cursor)
	return true
}

func moveUp(e *Editor, count int, _ rune) bool {
	if e.cursor.Row == 0 {
		return false
	}
	e.cursor.Row -= count
	if e.cursor.Row < 0 {
		e.cursor.Row = 0
	}
	e.cursor.Col = e.wantCol
	e.setCursorKeepColumn(e.cursor)
	return true
}

func moveToLineStart(e *Editor, _ int, _ rune) bool {
	e.cursor.Col = 0
	return true
}

func firstNonBlank(line []rune) int {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	if len(line) == 0 {
		return 0
	}
	return len(line) - 1
}

func moveToFirstNonBlank(e *Editor, _ int, _ rune) bool {
	e.cursor.Col = firstNonBlank(e.lineRunes(e.cursor.Row))
	return true
}

// moveToLineEnd moves to the last character of the (count-1)th next line
func moveToLineEnd(e *Editor, count int, _ rune) bool {
	row := e.cursor.Row + count - 1
	if row >= e.buf.Len() {
		return false
	}
	e.cursor.Row = row
	e.cursor.Col = e.buf.LineLen(row) - 1
	if e.cursor.Col < 0 {
		e.cursor.Col = 0
	}
	return true
}

// moveToLine goes to line count (1-based); a zero count means the last line
func moveToLine(e *Editor, count int, _ rune) bool {
	if e.buf.Len() == 0 {
		return false
	}
	row := e.buf.Len() - 1
	if count > 0 && count-1 < row {
		row = count - 1
	}
	e.cursor.Row = row
	e.cursor.Col = firstNonBlank(e.lineRunes(row))
	return true
}

func moveNextLineStart(e *Editor, count int, _ rune) bool {
	if !moveDown(e, count, 0) {
		return false
	}
	return moveToFirstNonBlank(e, 1, 0)
}

func movePrevLineStart(e *Editor, count int, _ rune) bool {
	if !moveUp(e, count, 0) {
		return false
	}
	return moveToFirstNonBlank(e, 1, 0)
}

func moveCurrentLineStart(e *Editor, count int, _ rune) bool {
	if count > 1 && !moveDown(e, count-1, 0) {
		return false
	}
	return moveToFirstNonBlank(e, 1, 0)
}

type charClass int

const (
	classBlank charClass = iota
	classPunct
	classWord
)

func classify(r rune, big bool) charClass {
	switch {
	case unicode.IsSpace(r):
		return classBlank
	case big:
		return classWord
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	default:
		return classPunct
	}
}

func moveWordForward(e *Editor, count int, _ rune) bool {
	return repeatMotion(count, func() bool { return wordForwardOnce(e, false) })
}

func moveBigWordForward(e *Editor, count int, _ rune) bool {
	return repeatMotion(count, func() bool { return wordForwardOnce(e, true) })
}

func moveWordBackward(e *Editor, count int, _ rune) bool {
	return repeatMotion(count, func() bool { return wordBackwardOnce(e, false) })
}

func moveBigWordBackward(e *Editor, count int, _ rune) bool {
	return repeatMotion(count, func() bool { return wordBackwardOnce(e, true) })
}

func moveWordEnd(e *Editor, count int, _ rune) bool {
	return repeatMotion(count, func() bool { return wordEndOnce(e, false) })
}

func moveBigWordEnd(e *Editor, count int, _ rune) bool {
	return repeatMotion(count, func() bool { return wordEndOnce(e, true) })
}

// repeatMotion runs once count times; it succeeds if the first step moved
func repeatMotion(count int, once func() bool) bool {
	moved := false
	for i := 0; i < count; i++ {
		if !once() {
			break
		}
		moved = true
	}
	return moved
}

func wordForwardOnce(e *Editor, big bool) bool {
	p := e.cursor
	line := e.lineRunes(p.Row)
	if p.Col < len(line) {
		if c := classify(line[p.Col], big); c != classBlank {
			for p.Col < len(line) && classify(line[p.Col], big) == c {
				p.Col++
			}
		}
	}
	for {
		line = e.lineRunes(p.Row)
		for p.Col < len(line) && classify(line[p.Col], big) == classBlank {
			p.Col++
		}
		if p.Col < len(line) {
			break
		}
		if p.Row+1 >= e.buf.Len() {
			p.Col = e.lastCol(p.Row)
			if p == e.cursor {
				return false
			}
			e.cursor = p
			return true
		}
		p = Position{Row: p.Row + 1}
		if len(e.lineRunes(p.Row)) == 0 {
			break
		}
	}
	e.cursor = p
	return true
}

// stepBack moves p one character back across line breaks. Empty lines are
// visited at column 0.
func (e *Editor) stepBack(p Position) (Position, bool) {
	if p.Col > 0 {
		p.Col--
		return p, true
	}
	if p.Row == 0 {
		return p, false
	}
	p.Row--
	p.Col = e.buf.LineLen(p.Row) - 1
	if p.Col < 0 {
		p.Col = 0
	}
	return p, true
}

// stepForward moves p one character forward across line breaks
func (e *Editor) stepForward(p Position) (Position, bool) {
	if p.Col+1 < e.buf.LineLen(p.Row) {
		p.Col++
		return p, true
	}
	if p.Row+1 >= e.buf.Len() {
		return p, false
	}
	return Position{Row: p.Row + 1}, true
}

func (e *Editor) classAt(p Position, big bool) charClass {
	r, ok := e.buf.RuneAt(p)
	if !ok {
		return classBlank
	}
	return classify(r, big)
}

func wordBackwardOnce(e *Editor, big bool) bool {
	p, ok := e.stepBack(e.cursor)
	if !ok {
		return false
	}
	for e.classAt(p, big) == classBlank && e.buf.LineLen(p.Row) > 0 {
		prev, ok := e.stepBack(p)
		if !ok {
			break
		}
		p = prev
	}
	line := e.lineRunes(p.Row)
	if len(line) > 0 {
		c := classify(line[p.Col], big)
		for p.Col > 0 && classify(line[p.Col-1], big) == c {
			p.Col--
		}
	}
	e.cursor = p
	return true
}

func wordEndOnce(e *Editor, big bool) bool {
	p, ok := e.stepForward(e.cursor)
	if !ok {
		return false
	}
	for e.classAt(p, big) == classBlank {
		next, ok := e.stepForward(p)
		if !ok {
			break
		}
		p = next
	}
	line := e.lineRunes(p.Row)
	if p.Col < len(line) {
		c := classify(line[p.Col], big)
		for p.Col+1 < len(line) && classify(line[p.Col+1], big) == c {
			p.Col++
		}
	}
	e.cursor = p
	return true
}

// findInLine moves to the count'th occurrence of target on the current line.
// Till stops one character short; skip jumps over a target right next to the
// cursor so ';' after t makes progress.
func findInLine(e *Editor, count int, target rune, forward, till, skip bool) bool {
	line := e.lineRunes(e.cursor.Row)
	step := 1
	if !forward {
		step = -1
	}
	col := e.cursor.Col
	if till && skip {
		col += step
	}
	for found := 0; found < count; {
		col += step
		if col < 0 || col >= len(line) {
			return false
		}
		if line[col] == target {
			found++
		}
	}
	if till {
		col -= step
	}
	if col == e.cursor.Col {
		return false
	}
	e.cursor.Col = col
	return true
}

func findForward(e *Editor, count int, arg rune) bool {
	e.lastFind = JumpDescriptor{Key: Rune('f'), Arg: arg}
	return findInLine(e, count, arg, true, false, false)
}

func tillForward(e *Editor, count int, arg rune) bool {
	e.lastFind = JumpDescriptor{Key: Rune('t'), Arg: arg}
	return findInLine(e, count, arg, true, true, false)
}

func findBackward(e *Editor, count int, arg rune) bool {
	e.lastFind = JumpDescriptor{Key: Rune('F'), Arg: arg}
	return findInLine(e, count, arg, false, false, false)
}

func tillBackward(e *Editor, count int, arg rune) bool {
	e.lastFind = JumpDescriptor{Key: Rune('T'), Arg: arg}
	return findInLine(e, count, arg, false, true, false)
}

func repeatFind(e *Editor, count int, _ rune) bool {
	f := e.lastFind
	if f.Arg == 0 {
		return false
	}
	forward := f.Key.Rune == 'f' || f.Key.Rune == 't'
	till := f.Key.Rune == 't' || f.Key.Rune == 'T'
	return findInLine(e, count, f.Arg, forward, till, true)
}

func repeatFindReverse(e *Editor, count int, _ rune) bool {
	f := e.lastFind
	if f.Arg == 0 {
		return false
	}
	forward := f.Key.Rune == 'F' || f.Key.Rune == 'T'
	till := f.Key.Rune == 't' || f.Key.Rune == 'T'
	return findInLine(e, count, f.Arg, forward, till, true)
}

var bracketPairs = map[rune]struct {
	match   rune
	forward bool
}{
	'(': {')', true}, ')': {'(', false},
	'[': {']', true}, ']': {'[', false},
	'{': {'}', true}, '}': {'{', false},
}

// moveToMatchingBracket jumps to the bracket matching the first bracket at
// or after the cursor on the current line
func moveToMatchingBracket(e *Editor, _ int, _ rune) bool {
	line := e.lineRunes(e.cursor.Row)
	p := e.cursor
	for p.Col < len(line) {
		if _, ok := bracketPairs[line[p.Col]]; ok {
			break
		}
		p.Col++
	}
	if p.Col >= len(line) {
		return false
	}
	open := line[p.Col]
	pair := bracketPairs[open]
	depth := 1
	for {
		var ok bool
		if pair.forward {
			p, ok = e.stepForward(p)
		} else {
			p, ok = e.stepBack(p)
		}
		if !ok {
			return false
		}
		r, has := e.buf.RuneAt(p)
		if !has {
			continue
		}
		switch r {
		case open:
			depth++
		case pair.match:
			depth--
			if depth == 0 {
				e.cursor = p
				return true
			}
		}
	}
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSentenceCloser(r rune) bool {
	return r == ')' || r == ']' || r == '"' || r == '\''
}

// isSentenceStart reports whether a sentence begins at p: the first
// non-blank after a '.', '!' or '?' (optionally followed by closing
// brackets or quotes) and white space, after an empty line, or at the start
// of the buffer. An empty line following text is a sentence of its own.
func (e *Editor) isSentenceStart(p Position) bool {
	if e.buf.LineLen(p.Row) == 0 {
		return p.Row == 0 || e.buf.LineLen(p.Row-1) > 0
	}
	if r, _ := e.buf.RuneAt(p); unicode.IsSpace(r) {
		return false
	}
	q := p
	skipped := false
	for {
		prev, ok := e.stepBack(q)
		if !ok {
			return true
		}
		if prev.Row != q.Row {
			skipped = true
			if e.buf.LineLen(prev.Row) == 0 {
				return true
			}
		}
		r, _ := e.buf.RuneAt(prev)
		if unicode.IsSpace(r) {
			skipped = true
			q = prev
			continue
		}
		if !skipped {
			return false
		}
		for isSentenceCloser(r) && prev.Col > 0 {
			prev.Col--
			r, _ = e.buf.RuneAt(prev)
		}
		return isSentenceEnd(r)
	}
}

func moveSentenceForward(e *Editor, count int, _ rune) bool {
	return repeatMotion(count, func() bool {
		p := e.cursor
		for {
			next, ok := e.stepForward(p)
			if !ok {
				if p == e.cursor {
					return false
				}
				e.cursor = p
				return true
			}
			p = next
			if e.isSentenceStart(p) {
				e.cursor = p
				return true
			}
		}
	})
}

func moveSentenceBackward(e *Editor, count int, _ rune) bool {
	return repeatMotion(count, func() bool {
		p := e.cursor
		for {
			prev, ok := e.stepBack(p)
			if !ok {
				if p == e.cursor {
					return false
				}
				e.cursor = p
				return true
			}
			p = prev
			if e.isSentenceStart(p) {
				e.cursor = p
				return true
			}
		}
	})
}

func moveParagraphForward(e *Editor, count int, _ rune) bool {
	return repeatMotion(count, func() bool {
		row := e.cursor.Row
		last := e.buf.Len() - 1
		if row >= last {
			return false
		}
		for row < last && e.buf.LineLen(row) == 0 {
			row++
		}
		for row < last && e.buf.LineLen(row) > 0 {
			row++
		}
		col := 0
		if e.buf.LineLen(row) > 0 {
			col = e.lastCol(row)
		}
		e.cursor = Position{Row: row, Col: col}
		return true
	})
}

func moveParagraphBackward(e *Editor, count int, _ rune) bool {
	return repeatMotion(count, func() bool {
		row := e.cursor.Row
		if row == 0 && e.cursor.Col == 0 {
			return false
		}
		for row > 0 && e.buf.LineLen(row) == 0 {
			row--
		}
		for row > 0 && e.buf.LineLen(row) > 0 {
			row--
		}
		e.cursor = Position{Row: row}
		return true
	})
}

func pageSize(e *Editor) int {
	if e.height > 2 {
		return e.height - 2
	}
	return 1
}

func pageForward(e *Editor, count int, _ rune) bool {
	if e.cursor.Row >= e.buf.Len()-1 {
		return false
	}
	n := pageSize(e) * count
	e.top += n
	if e.top > e.buf.Len()-1 {
		e.top = e.buf.Len() - 1
	}
	moveDown(e, n, 0)
	if e.cursor.Row < e.top {
		e.cursor.Row = e.top
	}
	return moveToFirstNonBlank(e, 1, 0)
}

func pageBackward(e *Editor, count int, _ rune) bool {
	if e.cursor.Row == 0 {
		return false
	}
	n := pageSize(e) * count
	e.top -= n
	if e.top < 0 {
		e.top = 0
	}
	moveUp(e, n, 0)
	return moveToFirstNonBlank(e, 1, 0)
}
