package toolkit

import (
	"fmt"
	"sort"
	"sync"
)

// OperationFactory creates and looks up operations by name.
type OperationFactory interface {
	// Get returns the operation registered under name.
	Get(name string) (Operation, error)
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns every registered operation, sorted by name.
	GetAll() []Operation
	// Family returns the operations of a family, sorted by name.
	Family(family string) []Operation
	// Families returns the distinct family names in sorted order.
	Families() []string
	// Register adds an operation. Names must be unique.
	Register(op Operation) error
}

// DefaultFactory is the map-backed OperationFactory. It is safe for
// concurrent use.
type DefaultFactory struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

var _ OperationFactory = (*DefaultFactory)(nil)

// NewDefaultFactory returns a factory pre-populated with Builtin().
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{ops: make(map[string]Operation)}
	for _, op := range Builtin() {
		f.ops[op.Name()] = op
	}
	return f
}

// Get returns the operation registered under name.
func (f *DefaultFactory) Get(name string) (Operation, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	op, ok := f.ops[name]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", name)
	}
	return op, nil
}

// MustGet is like Get but panics on an unknown name. Intended for tests and
// static wiring.
func (f *DefaultFactory) MustGet(name string) Operation {
	op, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return op
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.ops))
	for name := range f.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns every registered operation, sorted by name.
func (f *DefaultFactory) GetAll() []Operation {
	return f.filter(func(Operation) bool { return true })
}

// Family returns the operations of the given family, sorted by name.
func (f *DefaultFactory) Family(family string) []Operation {
	return f.filter(func(op Operation) bool { return op.Family() == family })
}

// Families returns the distinct family names in sorted order.
func (f *DefaultFactory) Families() []string {
	seen := make(map[string]struct{})
	var families []string
	for _, op := range f.GetAll() {
		if _, ok := seen[op.Family()]; ok {
			continue
		}
		seen[op.Family()] = struct{}{}
		families = append(families, op.Family())
	}
	sort.Strings(families)
	return families
}

// Register adds op to the factory.
func (f *DefaultFactory) Register(op Operation) error {
	if op == nil || op.Name() == "" {
		return fmt.Errorf("operation must have a name")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.ops[op.Name()]; exists {
		return fmt.Errorf("operation %q already registered", op.Name())
	}
	f.ops[op.Name()] = op
	return nil
}

func (f *DefaultFactory) filter(keep func(Operation) bool) []Operation {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Operation, 0, len(f.ops))
	for _, op := range f.ops {
		if keep(op) {
			out = append(out, op)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
