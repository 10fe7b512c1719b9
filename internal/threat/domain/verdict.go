package domain

import "strings"

// Rule names the check that classified card data as suspicious.
type Rule string

const (
	RuleNone           Rule = ""
	RuleEmpty          Rule = "empty"
	RuleBuiltinPattern Rule = "builtin_pattern"
	RuleBlacklist      Rule = "blacklist"
	RuleUserPattern    Rule = "user_pattern"
)

// Verdict is the outcome of classifying card data.
// Match holds the matching pattern, or the blacklist reason. It never holds the card data.
type Verdict struct {
	Suspicious bool
	Rule       Rule
	Match      string
}

// Classify runs the checks in order and stops at the first match:
// empty input, built-in patterns, blacklisted fingerprint, user patterns.
func Classify(cardData string, blacklist *Blacklist) Verdict {
	if cardData == "" {
		return Verdict{Suspicious: true, Rule: RuleEmpty}
	}

	upper := strings.ToUpper(cardData)
	for _, pattern := range BuiltinPatterns {
		if strings.Contains(upper, pattern) {
			return Verdict{Suspicious: true, Rule: RuleBuiltinPattern, Match: pattern}
		}
	}

	if blacklist != nil {
		if entry := blacklist.Find(Fingerprint(cardData)); entry != nil {
			return Verdict{Suspicious: true, Rule: RuleBlacklist, Match: entry.Reason}
		}

		for _, pattern := range blacklist.Patterns {
			if pattern != "" && strings.Contains(upper, strings.ToUpper(pattern)) {
				return Verdict{Suspicious: true, Rule: RuleUserPattern, Match: pattern}
			}
		}
	}

	return Verdict{}
}
