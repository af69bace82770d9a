// Package builder defines the transformation units bound into build actions,
// plus a registry so configuration can refer to builders by name.
package builder

import (
	"context"

	"git.home.luguber.info/inful/actiongraph/internal/asset"
)

// Source provides read access to asset contents during a build step.
type Source interface {
	Read(ctx context.Context, id asset.ID) ([]byte, error)
}

// Sink receives the outputs a builder produces during a build step.
type Sink interface {
	Write(ctx context.Context, id asset.ID, data []byte) error
}

// Builder is a transformation unit that consumes a primary input asset and
// produces zero or more output assets. The action core never invokes Build;
// it only needs the label for diagnostics and the runtime type for identity.
type Builder interface {
	// Label returns a short human-readable description used in diagnostics.
	Label() string

	// OutputsFor maps a primary input to the asset ids this builder would
	// produce for it. The engine uses this for optional-action activation.
	OutputsFor(input asset.ID) []asset.ID

	// Build runs the transformation for one primary input.
	Build(ctx context.Context, input asset.ID, src Source, sink Sink) error
}
