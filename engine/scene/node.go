package scene

import (
	"strings"

	"github.com/google/uuid"
)

// PathSeparator separates node names in a hierarchy path.
const PathSeparator = "/"

// Component is a piece of data or behaviour attached to a Node.
type Component interface {
	// TypeName identifies the component kind; GetComponent looks components up by it.
	TypeName() string
}

// Attachable components are told which node they were attached to.
type Attachable interface {
	OnAttach(node *Node)
}

// Node is an element of the scene graph. A node owns its children and its
// components.
type Node struct {
	ID         uuid.UUID
	Name       string
	parent     *Node
	children   []*Node
	components []Component
}

func NewNode(name string) *Node {
	return &Node{
		ID:   uuid.New(),
		Name: name,
	}
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// AddChild re-parents child under n. The child is removed from its previous parent.
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// GetChildByName returns the first direct child with the given name.
func (n *Node) GetChildByName(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// GetChildByPath walks a slash separated list of child names starting at n.
// Empty segments are skipped, so the empty path resolves to n itself.
func (n *Node) GetChildByPath(path string) *Node {
	current := n
	for _, segment := range strings.Split(path, PathSeparator) {
		if segment == "" {
			continue
		}
		current = current.GetChildByName(segment)
		if current == nil {
			return nil
		}
	}
	return current
}

// Path returns the slash separated path from the root of n's hierarchy to n,
// excluding the root itself.
func (n *Node) Path() string {
	var segments []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		segments = append([]string{cur.Name}, segments...)
	}
	return strings.Join(segments, PathSeparator)
}

func (n *Node) AddComponent(c Component) {
	n.components = append(n.components, c)
	if a, ok := c.(Attachable); ok {
		a.OnAttach(n)
	}
}

// GetComponent returns the first attached component whose type name matches.
func (n *Node) GetComponent(typeName string) Component {
	for _, c := range n.components {
		if c.TypeName() == typeName {
			return c
		}
	}
	return nil
}

func (n *Node) Components() []Component {
	return n.components
}
