package animation

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/animotion/engine/core"
)

// CustomPathFunc resolves a CustomPath step against target.
type CustomPathFunc func(target interface{}, arg string) (interface{}, error)

// Resolver walks target paths. Plain paths go through the property accessor,
// node paths through the scene graph and custom paths through the functions
// registered by tag.
type Resolver struct {
	mutex  sync.RWMutex
	custom map[string]CustomPathFunc
}

var defaultResolver = NewResolver()

func NewResolver() *Resolver {
	return &Resolver{
		custom: make(map[string]CustomPathFunc),
	}
}

// Register adds the resolution function for a custom path tag. A tag can only
// be registered once.
func (r *Resolver) Register(tag string, fn CustomPathFunc) error {
	if tag == "" || fn == nil {
		return fmt.Errorf("func Register - custom path requires a tag and a function")
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.custom[tag]; exists {
		return fmt.Errorf("custom path '%s' is already registered", tag)
	}
	r.custom[tag] = fn
	return nil
}

// Resolve applies a single path step to target.
func (r *Resolver) Resolve(target interface{}, path TargetPath) (interface{}, error) {
	switch p := path.(type) {
	case PropertyPath:
		return GetProperty(target, string(p))
	case IndexPath:
		return GetIndex(target, int(p))
	case HierarchyPath:
		return p.Get(target)
	case ComponentPath:
		return p.Get(target)
	case CustomPath:
		r.mutex.RLock()
		fn, ok := r.custom[p.Tag]
		r.mutex.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%w: no custom path registered for tag '%s'", core.ErrConfiguration, p.Tag)
		}
		return fn(target, p.Arg)
	case nil:
		return nil, fmt.Errorf("%w: empty target path", core.ErrConfiguration)
	default:
		return nil, fmt.Errorf("%w: unknown target path %T", core.ErrConfiguration, path)
	}
}

// ResolveAll applies every step of paths in order, starting at root.
func (r *Resolver) ResolveAll(root interface{}, paths []TargetPath) (interface{}, error) {
	target := root
	for i, p := range paths {
		next, err := r.Resolve(target, p)
		if err != nil {
			return nil, fmt.Errorf("path step %d: %w", i, err)
		}
		target = next
	}
	return target, nil
}
