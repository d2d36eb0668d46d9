package assembler

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Rule replaces every occurrence of Match with Replace.
type Rule struct {
	Match   string
	Replace string
}

// Substitution applies a set of rules in one pass over the text. At any
// position the longest matching rule wins, and replaced text is never
// scanned again.
type Substitution struct {
	rules    []Rule
	replacer *strings.Replacer
}

// NewSubstitution builds a substitution. Rules with an empty match are ignored;
// for duplicate matches the first rule wins.
func NewSubstitution(rules []Rule) *Substitution {
	seen := make(map[string]bool, len(rules))
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Match == "" || seen[r.Match] {
			continue
		}
		seen[r.Match] = true
		kept = append(kept, r)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return utf8.RuneCountInString(kept[i].Match) > utf8.RuneCountInString(kept[j].Match)
	})

	pairs := make([]string, 0, 2*len(kept))
	for _, r := range kept {
		pairs = append(pairs, r.Match, r.Replace)
	}
	return &Substitution{rules: kept, replacer: strings.NewReplacer(pairs...)}
}

// Rules returns the effective rules, longest match first.
func (s *Substitution) Rules() []Rule {
	return append([]Rule(nil), s.rules...)
}

// Apply returns the substituted text and whether any rule matched.
func (s *Substitution) Apply(text string) (string, bool) {
	if len(s.rules) == 0 || text == "" {
		return text, false
	}
	out := s.replacer.Replace(text)
	return out, out != text || s.matches(text)
}

// matches covers rules whose replacement equals the matched text.
func (s *Substitution) matches(text string) bool {
	for _, r := range s.rules {
		if strings.Contains(text, r.Match) {
			return true
		}
	}
	return false
}
