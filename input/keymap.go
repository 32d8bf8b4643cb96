// Package input maps raw input names from a driver (key names, words typed
// on a command line, JSON move fields) onto rules directions.
package input

import (
	"strings"

	"github.com/battlesnakeio/classic/rules"
)

// Keymap maps lower case input names to directions.
type Keymap map[string]rules.Direction

// DefaultKeymap understands direction words, arrow keys, wasd and hjkl.
var DefaultKeymap = Keymap{
	"up":    rules.DirectionUp,
	"down":  rules.DirectionDown,
	"left":  rules.DirectionLeft,
	"right": rules.DirectionRight,

	"arrowup":    rules.DirectionUp,
	"arrowdown":  rules.DirectionDown,
	"arrowleft":  rules.DirectionLeft,
	"arrowright": rules.DirectionRight,

	"w": rules.DirectionUp,
	"s": rules.DirectionDown,
	"a": rules.DirectionLeft,
	"d": rules.DirectionRight,

	"k": rules.DirectionUp,
	"j": rules.DirectionDown,
	"h": rules.DirectionLeft,
	"l": rules.DirectionRight,
}

// Lookup returns the direction bound to name. Anything unknown, including
// the empty string, is DirectionNone so the engine keeps its heading.
func (k Keymap) Lookup(name string) rules.Direction {
	return k[strings.ToLower(strings.TrimSpace(name))]
}

// Bind adds or replaces a binding.
func (k Keymap) Bind(name string, dir rules.Direction) {
	k[strings.ToLower(strings.TrimSpace(name))] = dir
}
