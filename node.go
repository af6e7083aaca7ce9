// SPDX-License-Identifier: MIT
package treeindex

type (
	// Node defines an interface for entities that can be read into an Index.
	//
	// Implementations may carry any extra payload; the Index stores references
	// to them without copying or inspecting anything beyond the two keys.
	Node[T Constraint] interface {
		// ID obtains the node's identifier.
		ID() T
		// Parent obtains the node's parent key, or the Index's root sentinel
		// for a top-level node.
		Parent() T
	}

	// Flat is a sample Node interface implementation.
	Flat[T Constraint] struct {
		id     T
		parent T

		// kind is an opaque classification tag, empty when absent.
		kind string
	}
)

// NewFlat instantiates a Flat node.
func NewFlat[T Constraint](id, parent T, kind ...string) *Flat[T] {
	f := &Flat[T]{id: id, parent: parent}
	if len(kind) > 0 {
		f.kind = kind[0]
	}

	return f
}

// ID obtains the identifier stored by the Flat node.
func (f *Flat[T]) ID() T { return f.id }

// Parent obtains the parent key stored by the Flat node.
func (f *Flat[T]) Parent() T { return f.parent }

// Kind obtains the classification tag stored by the Flat node.
func (f *Flat[T]) Kind() string { return f.kind }
