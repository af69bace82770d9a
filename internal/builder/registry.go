package builder

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a builder instance from its raw (already parsed)
// configuration options. Factories must not retain the options map.
type Factory func(options map[string]any) (Builder, error)

var (
	regMu    sync.RWMutex
	registry = map[string]Factory{}
)

// Register makes a builder factory available under the given name.
// Registering a duplicate name panics; registration happens at init time
// and a collision is a programming error.
func Register(name string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("builder %q registered twice", name))
	}
	registry[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	f, ok := registry[name]
	if !ok {
		names := make([]string, 0, len(registry))
		for n := range registry {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown builder %q (registered: %v)", name, names)
	}
	return f, nil
}

// Names returns the sorted names of all registered builders.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
