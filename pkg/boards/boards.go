// Package boards holds the pin tables and descriptors of the supported
// Numato boards.
package boards

import (
	"fmt"
	"sort"
	"sync"

	"github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"
)

// DefaultFlashPart is the Vivado cfgmem part used unless overridden.
const DefaultFlashPart = "n25q128-3.3v-spi-x1_x2_x4"

var (
	mu       sync.RWMutex
	registry = make(map[string]platform.Definition)
)

func init() {
	Register(MimasA7Mini)
	Register(Narvi)
}

// Register adds a board definition. Registering a name twice replaces the
// earlier definition.
func Register(def platform.Definition) {
	mu.Lock()
	defer mu.Unlock()
	registry[def.Name] = def
}

// Lookup returns the definition registered under name.
func Lookup(name string) (platform.Definition, error) {
	mu.RLock()
	defer mu.RUnlock()
	def, ok := registry[name]
	if !ok {
		return platform.Definition{}, fmt.Errorf("boards: unknown board %q", name)
	}
	return def, nil
}

// Names returns the registered board names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered definition, sorted by name.
func All() []platform.Definition {
	names := Names()
	mu.RLock()
	defer mu.RUnlock()
	defs := make([]platform.Definition, 0, len(names))
	for _, name := range names {
		defs = append(defs, registry[name])
	}
	return defs
}

// New looks up a board and builds its platform descriptor.
func New(name string, opts ...platform.Option) (*platform.Platform, error) {
	def, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return platform.New(def, opts...)
}
