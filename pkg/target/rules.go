package target

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Masterminds/semver/v3"
)

// Rule identifies one browser family and the first version of it that can
// run the es2020 build.
type Rule struct {
	Name       string
	Identity   *regexp.Regexp
	Version    *regexp.Regexp // first capture group holds the major version
	MinVersion *semver.Version
}

// NewRule compiles a rule. It returns ErrInvalidRule when a pattern does not
// compile, the version pattern has no capture group or minVersion is not a
// version.
func NewRule(name, identity, version, minVersion string) (Rule, error) {
	idRe, err := regexp.Compile(identity)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %s identity: %v", ErrInvalidRule, name, err)
	}
	verRe, err := regexp.Compile(version)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %s version: %v", ErrInvalidRule, name, err)
	}
	if verRe.NumSubexp() < 1 {
		return Rule{}, fmt.Errorf("%w: %s version pattern has no capture group", ErrInvalidRule, name)
	}
	minV, err := semver.NewVersion(minVersion)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %s min version: %v", ErrInvalidRule, name, err)
	}
	return Rule{Name: name, Identity: idRe, Version: verRe, MinVersion: minV}, nil
}

// MustRule is like NewRule but panics on error. Intended for package-level tables.
func MustRule(name, identity, version string, minMajor int) Rule {
	r, err := NewRule(name, identity, version, strconv.Itoa(minMajor))
	if err != nil {
		panic(err)
	}
	return r
}

// Matches reports whether ua carries this rule's identity token.
func (r Rule) Matches(ua string) bool {
	return r.Identity != nil && r.Identity.MatchString(ua)
}

// version extracts the major version from ua.
func (r Rule) version(ua string) (*semver.Version, bool) {
	if r.Version == nil {
		return nil, false
	}
	m := r.Version.FindStringSubmatch(ua)
	if len(m) < 2 || m[1] == "" {
		return nil, false
	}
	// Majors semver cannot parse, such as one that overflows uint64, count as
	// no version and so fall to legacy.
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, false
	}
	return v, true
}

// Browser rules in evaluation order. Versions come from caniuse data for the
// features the es2020 build relies on: dynamic import, nullish coalescing,
// optional chaining, BigInt, Promise.allSettled, globalThis and
// String.prototype.matchAll.
var defaultRules = []Rule{
	// Edge UAs contain "Chrome/".
	MustRule("edge", `Edg/`, `Edg/(\d+)`, 80),
	// Opera UAs contain "Chrome/".
	MustRule("opera", `OPR/`, `OPR/(\d+)`, 67),
	// Chrome UAs contain "Safari/".
	MustRule("chrome", `Chrome/`, `Chrome/(\d+)`, 80),
	// Chrome on iOS runs on the system WebKit. CriOS reached 100 well after
	// iOS Safari 14, so 100 is a safe floor.
	MustRule("chrome-ios", `CriOS/`, `CriOS/(\d+)`, 100),
	MustRule("safari", `Safari/`, `Version/(\d+)`, 14),
	MustRule("firefox", `Firefox/`, `Firefox/(\d+)`, 74),
}

// DefaultRules returns a copy of the built-in ordered rule list.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}
