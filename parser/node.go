package parser

import (
	"sort"

	"github.com/htmlpack/inliner/token"
)

// Node is a node in the document tree.
// For element nodes Text will always be nil.
// For text nodes Name, Attributes and Children will be empty and Text will be set.
//
// All fields may be mutated freely while no traversal other than the one
// handing out the node is reading it; the tree is not safe for concurrent use.
type Node struct {
	Name       string
	Text       *string
	Attributes AttributeMap
	Children   []*Node
	// Range spans all tokens that were consumed to build this node.
	Range token.Position
}

// NewNode creates a new element node.
func NewNode(name string) *Node {
	return &Node{
		Name:       name,
		Attributes: NewAttributeMap(),
	}
}

// NewTextNode creates a node that will only contain text.
func NewTextNode(text string) *Node {
	return &Node{
		Text: &text,
	}
}

// IsText reports whether this is a text node.
func (n *Node) IsText() bool {
	return n.Text != nil
}

// AddChildren adds children to a node and can be used builder-style.
func (n *Node) AddChildren(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// AddAttribute adds an attribute to a node and can be used builder-style.
func (n *Node) AddAttribute(key, value string) *Node {
	n.Attributes.Set(key, value)
	return n
}

// AttributeMap is a simple wrapper around a map[string]string to make the
// handling of attributes easier. A key present with an empty value denotes a
// boolean attribute.
type AttributeMap map[string]string

func NewAttributeMap() AttributeMap {
	return make(map[string]string)
}

// Set sets a key to a value in this map.
func (a AttributeMap) Set(key, value string) {
	a[key] = value
}

// Get returns the value for key and whether the key is present at all.
func (a AttributeMap) Get(key string) (string, bool) {
	value, ok := a[key]
	return value, ok
}

// Has reports whether key is present.
func (a AttributeMap) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Delete removes key from this map.
func (a AttributeMap) Delete(key string) {
	delete(a, key)
}

// Keys returns all keys in lexicographic order.
func (a AttributeMap) Keys() []string {
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Tree is a simple wrapper over the root level nodes of a document.
// A document may have several roots, such as a doctype declaration followed
// by the root element.
type Tree struct {
	Nodes []*Node
}
