package animation

import (
	"fmt"

	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/scene"
)

// TargetPath is one step from an object to the object a track drives. The set
// of variants is closed: PropertyPath, IndexPath, HierarchyPath, ComponentPath
// and CustomPath. New kinds of steps are added through Resolver.Register.
type TargetPath interface {
	isTargetPath()
}

// PropertyPath reads a named field or map entry of the current object.
type PropertyPath string

// IndexPath reads an element of the current indexed collection.
type IndexPath int

// HierarchyPath moves from a node to one of its descendants.
type HierarchyPath struct {
	Path string `toml:"path"`
}

// ComponentPath moves from a node to one of its components.
type ComponentPath struct {
	Component string `toml:"component"`
}

// CustomPath is resolved by the function registered for Tag.
type CustomPath struct {
	Tag string `toml:"tag"`
	Arg string `toml:"arg"`
}

func (PropertyPath) isTargetPath()  {}
func (IndexPath) isTargetPath()     {}
func (HierarchyPath) isTargetPath() {}
func (ComponentPath) isTargetPath() {}
func (CustomPath) isTargetPath()    {}

// CustomTargetPath is a path step that knows how to resolve itself.
type CustomTargetPath interface {
	TargetPath
	Get(target interface{}) (interface{}, error)
}

var (
	_ CustomTargetPath = HierarchyPath{}
	_ CustomTargetPath = ComponentPath{}
)

// IsPropertyPath reports whether path is a plain property name or index.
func IsPropertyPath(path TargetPath) bool {
	switch path.(type) {
	case PropertyPath, IndexPath:
		return true
	default:
		return false
	}
}

// IsCustomPath reports whether path is exactly of the path type T. T is
// usually HierarchyPath, ComponentPath or CustomPath, the tag registered kind.
func IsCustomPath[T TargetPath](path TargetPath) bool {
	_, ok := path.(T)
	return ok
}

func NewHierarchyPath(path string) HierarchyPath {
	return HierarchyPath{Path: path}
}

func (p HierarchyPath) Get(target interface{}) (interface{}, error) {
	node, ok := target.(*scene.Node)
	if !ok || node == nil {
		return nil, fmt.Errorf("%w: target of hierarchy path shall be a node, got %T", core.ErrTypeMismatch, target)
	}
	child := node.GetChildByPath(p.Path)
	if child == nil {
		return nil, fmt.Errorf("%w: node '%s' has no path '%s'", core.ErrResolution, node.Name, p.Path)
	}
	return child, nil
}

func NewComponentPath(component string) ComponentPath {
	return ComponentPath{Component: component}
}

func (p ComponentPath) Get(target interface{}) (interface{}, error) {
	node, ok := target.(*scene.Node)
	if !ok || node == nil {
		return nil, fmt.Errorf("%w: target of component path shall be a node, got %T", core.ErrTypeMismatch, target)
	}
	component := node.GetComponent(p.Component)
	if component == nil {
		return nil, fmt.Errorf("%w: node '%s' has no component '%s'", core.ErrResolution, node.Name, p.Component)
	}
	return component, nil
}
