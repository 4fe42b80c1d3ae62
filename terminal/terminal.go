// Package terminal decodes raw terminal input into editor key events
package terminal

import (
	"bufio"
	"errors"
	"io"

	"github.com/slzatz/vix/vim/govim"
)

// ErrNoInput indicates that there is no input when reading from keyboard
// in raw mode. This happens when a read timeout is set and no key was
// pressed.
var ErrNoInput = errors.New("no input")

const esc = 27

// escape sequences after ESC
var specialKeys = map[[4]byte]govim.KeyName{
	{'[', 'A', 0, 0}:     govim.KeyUp,
	{'[', 'B', 0, 0}:     govim.KeyDown,
	{'[', 'D', 0, 0}:     govim.KeyLeft,
	{'[', 'C', 0, 0}:     govim.KeyRight,
	{'O', 'A', 0, 0}:     govim.KeyUp,
	{'O', 'B', 0, 0}:     govim.KeyDown,
	{'O', 'D', 0, 0}:     govim.KeyLeft,
	{'O', 'C', 0, 0}:     govim.KeyRight,
	{'[', '5', '~', 0}:   govim.KeyPageUp,
	{'[', '6', '~', 0}:   govim.KeyPageDown,
	{'[', 'H', 0, 0}:     govim.KeyHome,
	{'[', 'F', 0, 0}:     govim.KeyEnd,
	{'O', 'H', 0, 0}:     govim.KeyHome,
	{'O', 'F', 0, 0}:     govim.KeyEnd,
	{'[', '1', '~', 0}:   govim.KeyHome,
	{'[', '4', '~', 0}:   govim.KeyEnd,
	{'[', '3', '~', 0}:   govim.KeyDelete,
}

// Reader reads key events from a raw mode terminal
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadKey reads one key, decoding VT100 escape sequences and control
// characters. A lone ESC with nothing buffered behind it is the Esc key.
func (kr *Reader) ReadKey() (govim.Key, error) {
	r, n, err := kr.r.ReadRune()
	if err != nil {
		return govim.Key{}, err
	}
	if n == 0 {
		return govim.Key{}, ErrNoInput
	}

	if r != esc {
		return decode(r), nil
	}
	if kr.r.Buffered() == 0 {
		return govim.Named(govim.KeyEsc), nil
	}

	var stack [4]byte
	for j := range stack {
		b, err := kr.r.ReadByte()
		if err != nil {
			return govim.Key{}, err
		}
		stack[j] = b
		if name, found := specialKeys[stack]; found {
			return govim.Named(name), nil
		}
		if j == 0 && b != '[' && b != 'O' {
			return govim.Key{Rune: rune(b), Mods: govim.ModAlt}, nil
		}
		if kr.r.Buffered() == 0 {
			break
		}
	}
	// unknown sequence; the bytes read are dropped
	return govim.Named(govim.KeyEsc), nil
}

// decode maps a single rune to a key event
func decode(r rune) govim.Key {
	switch r {
	case '\r', '\n':
		return govim.Named(govim.KeyEnter)
	case '\t':
		return govim.Named(govim.KeyTab)
	case 127, 8:
		return govim.Named(govim.KeyBackspace)
	case 0:
		return govim.Ctrl('@')
	case 28, 29, 30, 31:
		return govim.Ctrl(r + '@')
	}
	if r < ' ' {
		return govim.Ctrl(r + 'a' - 1)
	}
	return govim.Rune(r)
}
