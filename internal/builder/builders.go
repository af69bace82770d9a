package builder

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/actiongraph/internal/asset"
)

// CopyBuilder copies each primary input to a sibling asset with an extra
// extension appended to the path.
type CopyBuilder struct {
	// Extension appended to the input path, including the dot.
	Extension string
}

func (b *CopyBuilder) Label() string {
	return fmt.Sprintf("copy(%s)", b.Extension)
}

func (b *CopyBuilder) OutputsFor(input asset.ID) []asset.ID {
	return []asset.ID{asset.New(input.Package, input.Path+b.Extension)}
}

func (b *CopyBuilder) Build(ctx context.Context, input asset.ID, src Source, sink Sink) error {
	data, err := src.Read(ctx, input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	out := b.OutputsFor(input)[0]
	if err := sink.Write(ctx, out, data); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}

// SuffixBuilder rewrites the input extension to a generated-code extension,
// e.g. ".dart" inputs producing ".g.dart" outputs.
type SuffixBuilder struct {
	// From is the input extension the builder consumes, including the dot.
	From string
	// To is the output extension, including the dot.
	To string
}

func (b *SuffixBuilder) Label() string {
	return fmt.Sprintf("generate(%s->%s)", b.From, b.To)
}

func (b *SuffixBuilder) OutputsFor(input asset.ID) []asset.ID {
	if input.Extension() != b.From {
		return nil
	}
	return []asset.ID{input.ChangeExtension(b.To)}
}

func (b *SuffixBuilder) Build(ctx context.Context, input asset.ID, src Source, sink Sink) error {
	outs := b.OutputsFor(input)
	if len(outs) == 0 {
		return nil
	}
	data, err := src.Read(ctx, input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	if err := sink.Write(ctx, outs[0], data); err != nil {
		return fmt.Errorf("write %s: %w", outs[0], err)
	}
	return nil
}

func init() {
	Register("copy", func(options map[string]any) (Builder, error) {
		ext := ".copy"
		if v, ok := options["extension"]; ok {
			s, ok := v.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("copy builder: extension must be a non-empty string, got %v", v)
			}
			ext = s
		}
		return &CopyBuilder{Extension: ext}, nil
	})
	Register("generate", func(options map[string]any) (Builder, error) {
		b := &SuffixBuilder{From: ".dart", To: ".g.dart"}
		if v, ok := options["from"]; ok {
			s, ok := v.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("generate builder: from must be a non-empty string, got %v", v)
			}
			b.From = s
		}
		if v, ok := options["to"]; ok {
			s, ok := v.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("generate builder: to must be a non-empty string, got %v", v)
			}
			b.To = s
		}
		return b, nil
	})
}
