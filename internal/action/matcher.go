package action

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/actiongraph/internal/asset"
)

// InputMatcher is a predicate over asset identifiers built from include and
// exclude glob patterns. An empty include list means "match everything not
// excluded". Matchers are immutable after construction and safe for
// concurrent use.
type InputMatcher struct {
	include []string
	exclude []string
}

// NewInputMatcher validates all patterns and constructs the matcher.
// A malformed pattern fails construction with a *PatternError.
func NewInputMatcher(include, exclude []string) (*InputMatcher, error) {
	for _, pat := range include {
		if !doublestar.ValidatePattern(pat) {
			return nil, &PatternError{Pattern: pat}
		}
	}
	for _, pat := range exclude {
		if !doublestar.ValidatePattern(pat) {
			return nil, &PatternError{Pattern: pat}
		}
	}
	return &InputMatcher{
		include: slices.Clone(include),
		exclude: slices.Clone(exclude),
	}, nil
}

// Matches reports whether the asset's path matches at least one include
// pattern (or includes are empty) and no exclude pattern.
func (m *InputMatcher) Matches(id asset.ID) bool {
	if len(m.include) > 0 && !matchAny(m.include, id.Path) {
		return false
	}
	return !matchAny(m.exclude, id.Path)
}

func matchAny(patterns []string, path string) bool {
	for _, pat := range patterns {
		// Patterns are validated at construction; Match cannot fail here.
		if ok, _ := doublestar.Match(pat, path); ok {
			return true
		}
	}
	return false
}

// Equal compares the include and exclude pattern lists as sequences.
// Pattern order is preserved for display, so it participates in identity.
func (m *InputMatcher) Equal(o *InputMatcher) bool {
	if m == nil || o == nil {
		return m == o
	}
	return slices.Equal(m.include, o.include) && slices.Equal(m.exclude, o.exclude)
}

func (m *InputMatcher) String() string {
	var b strings.Builder
	if len(m.include) == 0 {
		b.WriteString("including everything")
	} else {
		fmt.Fprintf(&b, "including [%s]", strings.Join(m.include, ", "))
	}
	if len(m.exclude) > 0 {
		fmt.Fprintf(&b, ", excluding [%s]", strings.Join(m.exclude, ", "))
	}
	return b.String()
}

func (m *InputMatcher) writeCanonical(w io.Writer) {
	writeCount(w, len(m.include))
	for _, pat := range m.include {
		writeLengthPrefixed(w, []byte(pat))
	}
	writeCount(w, len(m.exclude))
	for _, pat := range m.exclude {
		writeLengthPrefixed(w, []byte(pat))
	}
}
