package lint

import "strings"

// defaultMaxComplexity is the cyclomatic-complexity ceiling applied
// when no WithMaxComplexity option is given.
const defaultMaxComplexity = 10

type config struct {
	strict         bool
	maxComplexity  int
	shadowWarnings bool
	rules          map[string]bool // nil means every rule category is enabled
}

// Option configures a Linter, following the functional-options
// convention interp.Option and parser.Option already use.
type Option func(*config)

// WithStrict promotes warnings (unused, shadow, complexity) to errors,
// matching spec §7's "a strict mode promotes some [issues] to errors".
func WithStrict() Option {
	return func(c *config) { c.strict = true }
}

// WithMaxComplexity overrides the cyclomatic-complexity ceiling a
// function body is compared against.
func WithMaxComplexity(n int) Option {
	return func(c *config) { c.maxComplexity = n }
}

// WithShadowWarnings enables the shadowing check, off by default since
// spec §4.5 notes it fires "only when the rule is enabled".
func WithShadowWarnings() Option {
	return func(c *config) { c.shadowWarnings = true }
}

// WithRules restricts which rule categories run, mirroring the
// original linter's `set_rules(rule_filter)` comma-separated category
// list (`"unused,undefined"`, `"shadowing"`, `"complexity"`, ...).
// "unused" covers every unused-binding kind (let/parameter/loop
// variable/match binding) in one category, same as the original's
// `set_rules` expanding "unused" into its four `LintRule::Unused*`
// variants. "style"/"security"/"performance" parse without error but
// enable nothing — the original `LintRule` enum declares those three
// variants too, but `analyze_expr` never emits a StyleViolation,
// Security, or Performance issue either, so there is no check here to
// gate. An unrecognized category is silently ignored, matching the
// original's `_ => {}` fallthrough.
func WithRules(ruleFilter string) Option {
	return func(c *config) {
		c.rules = map[string]bool{}
		for _, part := range strings.Split(ruleFilter, ",") {
			switch strings.TrimSpace(part) {
			case "unused":
				c.rules["unused"] = true
			case "undefined":
				c.rules["undefined"] = true
			case "shadowing":
				c.rules["shadowing"] = true
				c.shadowWarnings = true
			case "complexity":
				c.rules["complexity"] = true
			}
		}
	}
}

func newConfig(opts ...Option) config {
	c := config{maxComplexity: defaultMaxComplexity}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) severity(base Severity) Severity {
	if c.strict && base == SeverityWarning {
		return SeverityError
	}
	return base
}

// enabled reports whether rule category name should run. A nil rules
// set (the default, no WithRules call) means every category is on.
func (c config) enabled(name string) bool {
	if c.rules == nil {
		return true
	}
	return c.rules[name]
}
