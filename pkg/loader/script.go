package loader

import (
	"strings"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/config"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/target"
)

const (
	// DefaultURLPrefix is where both builds are published.
	DefaultURLPrefix = "https://js.userflow.com/"
	// BundleName is the file name of the script within each tier directory.
	BundleName = "userflow.js"
)

// Script is one concrete variant of the deferred script.
type Script struct {
	Tier target.Tier
	URL  string
	// Module is set for the es2020 build, which must be loaded as a module script.
	Module bool
	// Forced is set when the tier came from an override rather than detection.
	Forced bool
	// Rule and Version describe the detection when Forced is false.
	Rule    string
	Version string
}

// Overrides is the configuration slot an embedder can fill to bypass
// detection. Keys match the environment variable names.
type Overrides struct {
	BrowserTarget string `env:"USERFLOWJS_BROWSER_TARGET"`
	ES2020URL     string `env:"USERFLOWJS_ES2020_URL"`
	LegacyURL     string `env:"USERFLOWJS_LEGACY_URL"`
}

// OverridesFromMap reads overrides from a key/value mapping such as a page's
// configuration object. Unknown keys are ignored.
func OverridesFromMap(values map[string]string) (Overrides, error) {
	var o Overrides
	if err := config.Parse(&o, config.WithValues(values)); err != nil {
		return Overrides{}, err
	}
	return o, nil
}

// LoadOverrides reads overrides from the process environment.
func LoadOverrides() (Overrides, error) {
	var o Overrides
	if err := config.Parse(&o); err != nil {
		return Overrides{}, err
	}
	return o, nil
}

// Validate reports ErrUnknownTier (from package target) when BrowserTarget is
// set to something other than a tier name.
func (o Overrides) Validate() error {
	if o.BrowserTarget == "" {
		return nil
	}
	_, err := target.ParseTier(o.BrowserTarget)
	return err
}

// URLFor returns the override URL for tier, empty if none is set.
func (o Overrides) URLFor(tier target.Tier) string {
	if tier == target.ES2020 {
		return o.ES2020URL
	}
	return o.LegacyURL
}

// Select picks the script variant for a user agent.
//
// Priority: a forced tier override, then a forced URL for the chosen tier,
// then the classifier result, then the default URL layout under prefix.
// An unrecognised forced tier falls back to legacy.
func Select(ua string, o Overrides, c target.Detector, prefix string) Script {
	var s Script
	if o.BrowserTarget != "" {
		tier, err := target.ParseTier(o.BrowserTarget)
		if err != nil {
			tier = target.Legacy
		}
		s.Tier, s.Forced = tier, true
	} else {
		if c == nil {
			c = target.Default()
		}
		res := c.Detect(ua)
		s.Tier, s.Rule, s.Version = res.Tier, res.Rule, res.Version
	}

	s.Module = s.Tier == target.ES2020
	s.URL = o.URLFor(s.Tier)
	if s.URL == "" {
		s.URL = DefaultURL(prefix, s.Tier)
	}
	return s
}

// DefaultURL builds the conventional bundle URL for tier under prefix.
// An empty prefix means DefaultURLPrefix.
func DefaultURL(prefix string, tier target.Tier) string {
	if prefix == "" {
		prefix = DefaultURLPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + string(tier) + "/" + BundleName
}
