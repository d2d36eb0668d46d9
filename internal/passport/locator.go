// Package passport locates product passports and extracts their technical data.
package passport

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultPattern matches any PDF whose name contains the article.
const DefaultPattern = "*{ART}*.pdf"

var articlePlaceholders = []string{"{ART}", "{article}"}

var globEscaper = strings.NewReplacer(`*`, `[*]`, `?`, `[?]`, `[`, `[[]`, `\`, `\\`)

// Locator finds the passport file of an article inside a directory.
type Locator struct {
	dir     string
	pattern string
}

// NewLocator creates a locator. An empty pattern falls back to DefaultPattern.
func NewLocator(dir, pattern string) *Locator {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	return &Locator{dir: dir, pattern: pattern}
}

// Find returns the first passport, in lexical order, matching the article.
// No match is reported with found == false and a nil error.
func (l *Locator) Find(article string) (string, bool, error) {
	if strings.TrimSpace(article) == "" {
		return "", false, errors.New("empty article")
	}

	escaped := globEscaper.Replace(article)
	name := l.pattern
	for _, ph := range articlePlaceholders {
		name = strings.ReplaceAll(name, ph, escaped)
	}

	matches, err := filepath.Glob(filepath.Join(l.dir, name))
	if err != nil {
		return "", false, fmt.Errorf("passport pattern %q: %w", l.pattern, err)
	}
	if len(matches) == 0 {
		return "", false, nil
	}
	sort.Strings(matches)
	return matches[0], true, nil
}
