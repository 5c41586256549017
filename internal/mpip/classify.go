package mpip

import "strings"

// UnknownInterface is the label used when no rule matches.
const UnknownInterface = "unknown"

// InterfaceRule assigns Interface to a run whose MPIP environment variable
// contains any of Match, compared case-insensitively.
type InterfaceRule struct {
	Interface string
	Match     []string
}

// DefaultInterfaceRules is the built-in classification table.
func DefaultInterfaceRules() []InterfaceRule {
	return []InterfaceRule{
		{Interface: "tcp", Match: []string{"tcp"}},
		{Interface: "opx", Match: []string{"opx", "omni"}},
	}
}

// Classifier decides the network interface label of a run.
type Classifier struct {
	// Rules are tried in order; the first matching rule wins.
	Rules []InterfaceRule
}

// NewClassifier returns a Classifier using rules, or the default table when
// rules is empty.
func NewClassifier(rules []InterfaceRule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultInterfaceRules()
	}
	return &Classifier{Rules: rules}
}

// Classify returns override unchanged when it is non-empty. Otherwise it
// matches envVar against the rules and falls back to UnknownInterface.
func (c *Classifier) Classify(override, envVar string) string {
	if override != "" {
		return override
	}

	env := strings.ToLower(envVar)
	if env == "" {
		return UnknownInterface
	}
	for _, rule := range c.Rules {
		for _, token := range rule.Match {
			token = strings.ToLower(token)
			if token != "" && strings.Contains(env, token) {
				return rule.Interface
			}
		}
	}
	return UnknownInterface
}
