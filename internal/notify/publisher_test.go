package notify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/actiongraph/internal/plan"
)

func TestNilPublisherIsSafe(t *testing.T) {
	var p *Publisher
	d := &plan.Diff{Added: []plan.Change{{Description: "x"}}}
	assert.NoError(t, p.PublishDiff("sig", d))
	p.Close()
}

func TestEventPayloadShape(t *testing.T) {
	d := &plan.Diff{
		Added:     []plan.Change{{Description: "copy(.copy) on including [web/**]"}},
		Removed:   []plan.Change{{Description: "old action"}},
		Unchanged: 3,
	}
	ev := PlanChangeEvent{
		Signature: "sig",
		Unchanged: d.Unchanged,
	}
	for _, c := range d.Added {
		ev.Added = append(ev.Added, c.Description)
	}
	for _, c := range d.Removed {
		ev.Removed = append(ev.Removed, c.Description)
	}

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded PlanChangeEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ev, decoded)
}
