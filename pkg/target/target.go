package target

// Result describes how a user agent was classified.
type Result struct {
	Tier Tier
	// Rule is the name of the rule whose identity matched, empty if none did.
	Rule string
	// Version is the extracted major version, empty if none was found.
	Version string
}

// Classifier evaluates an ordered rule list. The zero value has no rules and
// classifies everything as Legacy.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over rules, in the given order.
func New(rules ...Rule) *Classifier {
	r := make([]Rule, len(rules))
	copy(r, rules)
	return &Classifier{rules: r}
}

var defaultClassifier = New(defaultRules...)

// Default returns the classifier over DefaultRules.
func Default() *Classifier { return defaultClassifier }

// Classify returns the tier for ua using the built-in rules.
func Classify(ua string) Tier { return defaultClassifier.Classify(ua) }

// Classify returns the tier for ua.
func (c *Classifier) Classify(ua string) Tier {
	return c.Detect(ua).Tier
}

// Detect classifies ua and reports which rule decided it.
// The first rule whose identity matches is authoritative; later rules are
// never consulted even if they would match too.
func (c *Classifier) Detect(ua string) Result {
	if c == nil {
		return Result{Tier: Legacy}
	}
	for _, rule := range c.rules {
		if !rule.Matches(ua) {
			continue
		}
		res := Result{Tier: Legacy, Rule: rule.Name}
		v, ok := rule.version(ua)
		if !ok {
			return res
		}
		res.Version = v.Original()
		if rule.MinVersion != nil && !v.LessThan(rule.MinVersion) {
			res.Tier = ES2020
		}
		return res
	}
	return Result{Tier: Legacy}
}

// Rules returns a copy of the classifier's rules.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}
