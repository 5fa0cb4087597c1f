package javapoet

import (
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
)

// Modifier is a Java declaration modifier. Declaration order follows the constant order.
type Modifier uint8

const (
	Public Modifier = iota + 1
	Protected
	Private
	Abstract
	Default
	Static
	Sealed
	NonSealed
	Final
	Transient
	Volatile
	Synchronized
	Native
	Strictfp
)

var modifierNames = [...]string{
	Public:       "public",
	Protected:    "protected",
	Private:      "private",
	Abstract:     "abstract",
	Default:      "default",
	Static:       "static",
	Sealed:       "sealed",
	NonSealed:    "non-sealed",
	Final:        "final",
	Transient:    "transient",
	Volatile:     "volatile",
	Synchronized: "synchronized",
	Native:       "native",
	Strictfp:     "strictfp",
}

func (m Modifier) String() string {
	if m == 0 || int(m) >= len(modifierNames) {
		return fmt.Sprintf("Modifier(%d)", uint8(m))
	}
	return modifierNames[m]
}

// ParseModifier maps a keyword such as "public" or "non-sealed" to its Modifier.
func ParseModifier(s string) (Modifier, error) {
	for m := Public; m <= Strictfp; m++ {
		if modifierNames[m] == s {
			return m, nil
		}
	}
	return 0, errors.Mark(errors.Newf("unknown modifier: %s", s), ErrInvalidArgument)
}

func validModifiers(mods []Modifier) error {
	for _, m := range mods {
		if m < Public || m > Strictfp {
			return invalidArgf("invalid modifier: %d", uint8(m))
		}
	}
	return nil
}

func hasModifier(mods []Modifier, m Modifier) bool {
	return slices.Contains(mods, m)
}

// sortedModifiers returns mods in declaration order without duplicates or implicit ones.
func sortedModifiers(mods, implicit []Modifier) []Modifier {
	out := make([]Modifier, 0, len(mods))
	for _, m := range mods {
		if hasModifier(implicit, m) || slices.Contains(out, m) {
			continue
		}
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}
