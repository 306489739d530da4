// Package input translates GLFW key events into libmpv key names.
// Windows driven through the render API get no input of their own, so
// the host forwards keys with the "keypress" command.
package input

import (
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var named = map[glfw.Key]string{
	glfw.KeySpace:     "SPACE",
	glfw.KeyEnter:     "ENTER",
	glfw.KeyKPEnter:   "KP_ENTER",
	glfw.KeyEscape:    "ESC",
	glfw.KeyTab:       "TAB",
	glfw.KeyBackspace: "BS",
	glfw.KeyDelete:    "DEL",
	glfw.KeyInsert:    "INS",
	glfw.KeyLeft:      "LEFT",
	glfw.KeyRight:     "RIGHT",
	glfw.KeyUp:        "UP",
	glfw.KeyDown:      "DOWN",
	glfw.KeyPageUp:    "PGUP",
	glfw.KeyPageDown:  "PGDWN",
	glfw.KeyHome:      "HOME",
	glfw.KeyEnd:       "END",
	glfw.KeyF1:        "F1",
	glfw.KeyF2:        "F2",
	glfw.KeyF3:        "F3",
	glfw.KeyF4:        "F4",
	glfw.KeyF5:        "F5",
	glfw.KeyF6:        "F6",
	glfw.KeyF7:        "F7",
	glfw.KeyF8:        "F8",
	glfw.KeyF9:        "F9",
	glfw.KeyF10:       "F10",
	glfw.KeyF11:       "F11",
	glfw.KeyF12:       "F12",
}

// US layout; shifted forms are what mpv's input.conf expects.
var punct = map[glfw.Key][2]string{
	glfw.KeyMinus:        {"-", "_"},
	glfw.KeyEqual:        {"=", "+"},
	glfw.KeyLeftBracket:  {"[", "{"},
	glfw.KeyRightBracket: {"]", "}"},
	glfw.KeyBackslash:    {"\\", "|"},
	glfw.KeySemicolon:    {";", ":"},
	glfw.KeyApostrophe:   {"'", "\""},
	glfw.KeyComma:        {",", "<"},
	glfw.KeyPeriod:       {".", ">"},
	glfw.KeySlash:        {"/", "?"},
	glfw.KeyGraveAccent:  {"`", "~"},
	glfw.Key0:            {"0", ")"},
	glfw.Key1:            {"1", "!"},
	glfw.Key2:            {"2", "@"},
	glfw.Key3:            {"3", "SHARP"},
	glfw.Key4:            {"4", "$"},
	glfw.Key5:            {"5", "%"},
	glfw.Key6:            {"6", "^"},
	glfw.Key7:            {"7", "&"},
	glfw.Key8:            {"8", "*"},
	glfw.Key9:            {"9", "("},
}

// Name returns the libmpv key name for key with mods, e.g. "Ctrl+LEFT",
// "F" or "SPACE". It reports false for keys libmpv has no name for,
// including bare modifier presses.
func Name(key glfw.Key, mods glfw.ModifierKey) (string, bool) {
	shift := mods&glfw.ModShift != 0

	var base string
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		r := rune('a' + (key - glfw.KeyA))
		if shift {
			r -= 'a' - 'A'
		}
		base, shift = string(r), false
	case punct[key] != [2]string{}:
		p := punct[key]
		if shift {
			base = p[1]
		} else {
			base = p[0]
		}
		shift = false
	default:
		n, ok := named[key]
		if !ok {
			return "", false
		}
		base = n
	}

	var b strings.Builder
	if mods&glfw.ModControl != 0 {
		b.WriteString("Ctrl+")
	}
	if mods&glfw.ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if mods&glfw.ModSuper != 0 {
		b.WriteString("Meta+")
	}
	// shift is folded into letters and symbols, kept for named keys
	if shift {
		b.WriteString("Shift+")
	}
	b.WriteString(base)
	return b.String(), true
}
