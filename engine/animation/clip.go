package animation

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/animotion/engine/core"
)

// WrapMode decides what happens when playback passes the end of a clip.
type WrapMode int

const (
	// WrapModeNormal plays the clip once and holds the last frame.
	WrapModeNormal WrapMode = iota
	// WrapModeLoop restarts the clip from the beginning.
	WrapModeLoop
)

var wrapModeNames = map[WrapMode]string{
	WrapModeNormal: "normal",
	WrapModeLoop:   "loop",
}

func (w WrapMode) String() string {
	if name, ok := wrapModeNames[w]; ok {
		return name
	}
	return fmt.Sprintf("WrapMode(%d)", int(w))
}

func (w WrapMode) MarshalText() ([]byte, error) {
	if name, ok := wrapModeNames[w]; ok {
		return []byte(name), nil
	}
	return nil, fmt.Errorf("%w: unknown wrap mode %d", core.ErrConfiguration, int(w))
}

func (w *WrapMode) UnmarshalText(text []byte) error {
	for mode, name := range wrapModeNames {
		if name == string(text) {
			*w = mode
			return nil
		}
	}
	return fmt.Errorf("%w: unknown wrap mode '%s'", core.ErrConfiguration, text)
}

// Track drives one destination. Modifiers lead from the root to the
// destination; without an Adapter the last modifier must be a property or
// index path, which is written directly.
type Track struct {
	Modifiers []TargetPath
	Adapter   CurveValueAdapter
}

// Clip is a named set of tracks sharing a timeline.
type Clip struct {
	Name     string
	Duration float64
	WrapMode WrapMode
	Tracks   []*Track
}

// Binding is a track resolved against a concrete root.
type Binding struct {
	// Track is the index of the track in its clip.
	Track  int
	Target interface{}
	Setter Setter
}

// Apply hands an evaluated value to the bound destination.
func (b *Binding) Apply(value interface{}) {
	b.Setter.Set(value)
}

// Bind resolves a track against root.
func (t *Track) Bind(root interface{}, ctx *BindingContext) (interface{}, Setter, error) {
	if len(t.Modifiers) == 0 && t.Adapter == nil {
		return nil, nil, fmt.Errorf("%w: track has neither target path nor value adapter", core.ErrConfiguration)
	}

	modifiers := t.Modifiers
	var property TargetPath
	if t.Adapter == nil {
		property = modifiers[len(modifiers)-1]
		if !IsPropertyPath(property) {
			return nil, nil, fmt.Errorf("%w: track without value adapter shall end with a property path, got %T", core.ErrConfiguration, property)
		}
		modifiers = modifiers[:len(modifiers)-1]
	}

	target, err := ctx.resolver().ResolveAll(root, modifiers)
	if err != nil {
		return nil, nil, err
	}

	if t.Adapter != nil {
		setter, err := t.Adapter.ForTarget(target, ctx)
		if err != nil {
			return nil, nil, err
		}
		return target, setter, nil
	}

	setter, err := propertySetter(target, property)
	if err != nil {
		return nil, nil, err
	}
	return target, setter, nil
}

// propertySetter checks that the property exists before producing a setter,
// so a missing property is reported at bind time.
func propertySetter(target interface{}, path TargetPath) (Setter, error) {
	switch p := path.(type) {
	case PropertyPath:
		if _, err := GetProperty(target, string(p)); err != nil {
			return nil, err
		}
		return &PropertySetter{Target: target, Name: string(p)}, nil
	case IndexPath:
		if _, err := GetIndex(target, int(p)); err != nil {
			return nil, err
		}
		return &IndexSetter{Target: target, Index: int(p)}, nil
	default:
		return nil, fmt.Errorf("%w: %T is not a property path", core.ErrConfiguration, path)
	}
}

// Bind resolves every track of the clip against root. Tracks that fail are
// skipped; their errors are joined into the returned error while the
// remaining bindings are still returned.
func (c *Clip) Bind(root interface{}, ctx *BindingContext) ([]*Binding, error) {
	bindings := make([]*Binding, 0, len(c.Tracks))
	var errs []error
	for i, track := range c.Tracks {
		target, setter, err := track.Bind(root, ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("clip '%s' track %d: %w", c.Name, i, err))
			continue
		}
		bindings = append(bindings, &Binding{Track: i, Target: target, Setter: setter})
	}
	return bindings, errors.Join(errs...)
}
