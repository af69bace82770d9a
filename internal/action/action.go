// Package action models declarative build actions: the binding of a builder
// to a package and a set of matched input assets. Actions and their input
// matchers are immutable value objects; the surrounding scheduler uses their
// Matches predicate to assign assets and their fingerprint for plan
// deduplication and diffing.
package action

import (
	"crypto/sha256"
	"encoding/hex"
	"reflect"
	"strings"

	"git.home.luguber.info/inful/actiongraph/internal/asset"
	"git.home.luguber.info/inful/actiongraph/internal/builder"
)

// Fingerprint is the stable identity hash of a build action. Actions that
// compare Equal always share a fingerprint, so it is safe as a map or set
// key for deduplication.
type Fingerprint string

func (f Fingerprint) String() string { return string(f) }

// BuildAction binds a builder to a package and an input matcher, together
// with the builder's options payload and activation policy flags. Immutable
// once constructed; all operations are safe for concurrent use.
type BuildAction struct {
	bld builder.Builder
	// builderTypeName is the identity key for the builder component.
	// Comparing builders by runtime type name is a known-imprecise choice:
	// two instances of the same type with different internal state compare
	// equal unless that state is surfaced through options. Kept for
	// compatibility with how plans are deduplicated across runs.
	builderTypeName string
	pkg             string
	matcher         *InputMatcher
	options         Options
	optional        bool
	hideOutput      bool
}

// Option configures optional fields of a BuildAction.
type Option func(*settings)

type settings struct {
	include    []string
	exclude    []string
	options    Options
	optional   bool
	hideOutput bool
}

// WithInclude sets the include glob patterns for the action's input matcher.
func WithInclude(patterns ...string) Option {
	return func(s *settings) { s.include = patterns }
}

// WithExclude sets the exclude glob patterns for the action's input matcher.
func WithExclude(patterns ...string) Option {
	return func(s *settings) { s.exclude = patterns }
}

// WithOptions sets the builder options payload. Defaults to empty.
func WithOptions(o Options) Option {
	return func(s *settings) { s.options = o }
}

// WithOptional marks the action optional: it runs only if a later phase
// reads one of its outputs.
func WithOptional() Option {
	return func(s *settings) { s.optional = true }
}

// WithHiddenOutput routes the action's outputs to the build cache instead
// of the source tree, allowing non-root target packages.
func WithHiddenOutput() Option {
	return func(s *settings) { s.hideOutput = true }
}

// New constructs a BuildAction. The package must be non-empty and the
// builder non-nil (*ConfigError otherwise); malformed glob patterns fail
// with *PatternError.
func New(b builder.Builder, pkg string, opts ...Option) (*BuildAction, error) {
	if b == nil {
		return nil, &ConfigError{Reason: "builder is required"}
	}
	if pkg == "" {
		return nil, &ConfigError{Reason: "package must not be empty"}
	}
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	m, err := NewInputMatcher(s.include, s.exclude)
	if err != nil {
		return nil, err
	}
	return &BuildAction{
		bld:             b,
		builderTypeName: reflect.TypeOf(b).String(),
		pkg:             pkg,
		matcher:         m,
		options:         s.options,
		optional:        s.optional,
		hideOutput:      s.hideOutput,
	}, nil
}

// Matches reports whether this action claims the asset as a primary input:
// the asset must belong to the action's package and pass the input matcher.
func (a *BuildAction) Matches(id asset.ID) bool {
	return id.Package == a.pkg && a.matcher.Matches(id)
}

// Builder returns the bound transformation unit.
func (a *BuildAction) Builder() builder.Builder { return a.bld }

// BuilderTypeName returns the identity key used for the builder component.
func (a *BuildAction) BuilderTypeName() string { return a.builderTypeName }

// Package returns the package the action is scoped to.
func (a *BuildAction) Package() string { return a.pkg }

// Options returns the builder options payload.
func (a *BuildAction) Options() Options { return a.options }

// IsOptional reports whether the action only runs on demand.
func (a *BuildAction) IsOptional() bool { return a.optional }

// HidesOutput reports whether outputs go to the build cache rather than
// the source tree.
func (a *BuildAction) HidesOutput() bool { return a.hideOutput }

// Equal reports whether two actions are interchangeable for plan purposes:
// same builder type name, package, input matcher, policy flags, and deeply
// equal options payloads.
func (a *BuildAction) Equal(o *BuildAction) bool {
	if a == nil || o == nil {
		return a == o
	}
	return a.builderTypeName == o.builderTypeName &&
		a.pkg == o.pkg &&
		a.matcher.Equal(o.matcher) &&
		a.optional == o.optional &&
		a.hideOutput == o.hideOutput &&
		a.options.Equal(o.options)
}

// Fingerprint hashes the same six components Equal compares, canonically
// encoded, so equal actions always hash equal.
func (a *BuildAction) Fingerprint() Fingerprint {
	h := sha256.New()
	writeLengthPrefixed(h, []byte(a.builderTypeName))
	writeLengthPrefixed(h, []byte(a.pkg))
	a.matcher.writeCanonical(h)
	flags := byte(0)
	if a.optional {
		flags |= 1
	}
	if a.hideOutput {
		flags |= 2
	}
	writeByte(h, flags)
	a.options.writeCanonical(h)
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}

// String renders the action for diagnostics, e.g.
// "copy(.copy) on including [lib/**] [optional]".
func (a *BuildAction) String() string {
	var b strings.Builder
	b.WriteString(a.bld.Label())
	b.WriteString(" on ")
	b.WriteString(a.matcher.String())
	var tags []string
	if a.optional {
		tags = append(tags, "optional")
	}
	if a.hideOutput {
		tags = append(tags, "hidden")
	}
	if len(tags) > 0 {
		b.WriteString(" [" + strings.Join(tags, ", ") + "]")
	}
	return b.String()
}
