package govim

import "strings"

// KeyName identifies keys that have no printable rune
type KeyName int

const (
	KeyNone KeyName = iota
	KeyEsc
	KeyEnter
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
)

// Modifier is a set of key modifiers
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
)

// Key is a single key event: a character plus modifiers, or a named key
type Key struct {
	Rune rune
	Name KeyName
	Mods Modifier
}

// Rune returns the key event for a plain character
func Rune(r rune) Key { return Key{Rune: r} }

// Ctrl returns the key event for Ctrl plus a letter
func Ctrl(r rune) Key { return Key{Rune: r, Mods: ModCtrl} }

// Named returns the key event for a named key
func Named(n KeyName) Key { return Key{Name: n} }

// IsRune reports whether k is the unmodified character r
func (k Key) IsRune(r rune) bool {
	return k.Name == KeyNone && k.Mods == 0 && k.Rune == r
}

// Printable reports whether the key inserts a character in insert mode
func (k Key) Printable() bool {
	return k.Name == KeyNone && k.Mods == 0 && k.Rune >= ' '
}

// IsEsc reports whether the key is Esc or Ctrl-[
func (k Key) IsEsc() bool {
	return k.Name == KeyEsc || (k.Mods == ModCtrl && k.Rune == '[')
}

var keyNames = map[KeyName]string{
	KeyEsc:       "<Esc>",
	KeyEnter:     "<CR>",
	KeyBackspace: "<BS>",
	KeyTab:       "<Tab>",
	KeyUp:        "<Up>",
	KeyDown:      "<Down>",
	KeyLeft:      "<Left>",
	KeyRight:     "<Right>",
	KeyHome:      "<Home>",
	KeyEnd:       "<End>",
	KeyPageUp:    "<PageUp>",
	KeyPageDown:  "<PageDown>",
	KeyDelete:    "<Del>",
}

func (k Key) String() string {
	if k.Name != KeyNone {
		return keyNames[k.Name]
	}
	if k.Mods&ModCtrl != 0 {
		return "<C-" + string(k.Rune) + ">"
	}
	return string(k.Rune)
}

// ParseKeys turns a vi-style key string ("3dw", "cwHi<Esc>", "<C-r>")
// into key events. It is used by tests and by the repeat facility.
func ParseKeys(s string) []Key {
	var keys []Key
	for len(s) > 0 {
		if s[0] == '<' {
			if end := strings.IndexByte(s, '>'); end > 0 {
				if k, ok := parseNamedKey(s[:end+1]); ok {
					keys = append(keys, k)
					s = s[end+1:]
					continue
				}
			}
		}
		r := []rune(s)[0]
		keys = append(keys, Rune(r))
		s = s[len(string(r)):]
	}
	return keys
}

func parseNamedKey(s string) (Key, bool) {
	for name, text := range keyNames {
		if strings.EqualFold(text, s) {
			return Named(name), true
		}
	}
	if len(s) == 5 && strings.HasPrefix(strings.ToUpper(s), "<C-") {
		return Ctrl(rune(strings.ToLower(s)[3])), true
	}
	return Key{}, false
}
