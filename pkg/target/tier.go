package target

import (
	"fmt"
	"strings"
)

// Tier is the capability tier of a browser.
type Tier string

const (
	// ES2020 browsers can run the modern build loaded as a module script.
	ES2020 Tier = "es2020"
	// Legacy browsers get the transpiled build.
	Legacy Tier = "legacy"
)

// Modern is an alias for ES2020.
const Modern = ES2020

func (t Tier) String() string { return string(t) }

// IsModern reports whether t is the es2020 tier.
func (t Tier) IsModern() bool { return t == ES2020 }

// ParseTier converts an override value into a Tier.
// Matching ignores surrounding whitespace and case; "modern" is accepted for es2020.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ES2020), "modern":
		return ES2020, nil
	case string(Legacy):
		return Legacy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
}
