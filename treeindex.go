// SPDX-License-Identifier: MIT

// Package treeindex derives constant-time lookup structures from flat node
// collections: a by-id index, a by-parent index & traversal operations built
// on the two.
package treeindex

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// Constraint is a wrapper interface containing comparable & constraints.Ordered.
type Constraint interface {
	comparable
	constraints.Ordered
}

type (
	// Index holds a flat node collection & lookup structures derived from it.
	//
	// Synchronization is unnecessary, the type is designed for single write
	// multiple read: both indexes are built once by New & never mutated
	// afterwards.
	Index[T Constraint] struct {
		// cfg contains a pointer to a [Config] shared by the Index's operations.
		cfg *Config

		// root is the parent key marking top-level nodes.
		root T

		// nodes retains the source collection in its original order.
		nodes List[T]

		// byID maps an identifier to its node; a later duplicate overwrites an
		// earlier one.
		byID map[T]Node[T]

		// byParent maps a parent key to its direct children in collection order.
		byParent map[T]List[T]
	}

	// Config defines configuration options for an [Index]'s operations.
	Config struct {
		// Logger for [Index] messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool
	}

	// List is a type wrapper for []Node[T].
	List[T Constraint] []Node[T]

	// LevelList is a type wrapper for []List[T].
	LevelList[T Constraint] []List[T]

	// Option defines the Index functional option type.
	Option[T Constraint] func(*Index[T])
)

// Errors encountered when querying an Index.
var (
	ErrNotFound = errors.New("not found")

	ErrNoParents = errors.New("lacks parents")
	ErrNoLeaves  = errors.New("lacks leaves; structure is cyclic")
	ErrCycle     = errors.New("cyclic structure")
)

var defConfig = DefConfig()

// DefConfig obtains the package's [Index] default options.
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Debug:  false,
	}
}

// New indexes a flat node collection.
//
// The collection is retained by reference; neither it nor the nodes it holds
// may be mutated afterwards. Malformed input is accepted silently: a duplicate
// identifier shadows its predecessor in the by-id index only & a parent key
// need not name a node in the collection.
func New[T Constraint](nodes []Node[T], options ...Option[T]) *Index[T] {
	idx := &Index[T]{
		cfg:      defConfig,
		nodes:    nodes,
		byID:     make(map[T]Node[T], len(nodes)),
		byParent: make(map[T]List[T]),
	}

	for _, opt := range options {
		opt(idx)
	}

	for _, node := range nodes {
		idx.byID[node.ID()] = node
	}
	for _, node := range nodes {
		idx.byParent[node.Parent()] = append(idx.byParent[node.Parent()], node)
	}

	if idx.cfg.Debug {
		idx.cfg.Logger.Debugf("indexed %d node(s): %s", len(nodes), spew.Sprint(idx.byParent))
	}

	return idx
}

// WithConfig configures the [Index] [Config].
func WithConfig[T Constraint](cfg *Config) Option[T] {
	return func(idx *Index[T]) { idx.cfg = cfg }
}

// WithRoot configures the parent key marking top-level nodes.
//
// Defaults to the zero value of T.
func WithRoot[T Constraint](root T) Option[T] {
	return func(idx *Index[T]) { idx.root = root }
}

// Config retrieves the [Index]'s Config.
func (idx *Index[T]) Config() *Config { return idx.cfg }

// Root retrieves the [Index]'s root sentinel.
func (idx *Index[T]) Root() T { return idx.root }

// Len is the number of nodes in the indexed collection.
func (idx *Index[T]) Len() int { return len(idx.nodes) }

// All retrieves the indexed collection in its original order.
//
// The result shares backing storage with the Index & must be treated as
// read-only.
func (idx *Index[T]) All() List[T] { return idx.nodes }

// Get retrieves the node stored under an identifier.
func (idx *Index[T]) Get(_ context.Context, id T) (node Node[T], err error) {
	node, ok := idx.byID[id]
	if !ok {
		err = fmt.Errorf("(%v) %w", id, ErrNotFound)
	}

	return
}

// Children lists the immediate children for a parent key, in collection order.
//
// An unknown key yields an empty List, not an error; "no children" is an
// ordinary result. The result shares backing storage with the Index & must be
// treated as read-only.
func (idx *Index[T]) Children(_ context.Context, parent T) (children List[T]) {
	if children = idx.byParent[parent]; children == nil {
		children = List[T]{}
	}

	return
}

// AllChildren lists every descendant of a parent key: the direct children in
// collection order, then in turn each child's own descendants.
//
// A childless key yields an empty List. A parent chain that reaches back into
// itself fails with ErrCycle instead of recursing without bound.
func (idx *Index[T]) AllChildren(ctx context.Context, parent T) (children List[T], err error) {
	type frame struct {
		key  T
		kids List[T]
		next int
	}

	children = make(List[T], 0)
	children = append(children, idx.byParent[parent]...)

	// path holds the keys on the active expansion chain.
	path := map[T]struct{}{parent: {}}
	stack := []frame{{key: parent, kids: idx.byParent[parent]}}

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		top := &stack[len(stack)-1]
		if top.next >= len(top.kids) {
			delete(path, top.key)
			stack = stack[:len(stack)-1]
			continue
		}

		id := top.kids[top.next].ID()
		top.next++

		if _, ok := path[id]; ok {
			err = fmt.Errorf("(%v) %w", id, ErrCycle)
			return
		}
		path[id] = struct{}{}

		kids := idx.byParent[id]
		children = append(children, kids...)
		stack = append(stack, frame{key: id, kids: kids})
	}

	if idx.cfg.Debug {
		idx.cfg.Logger.Debugf("descendants of (%v): %+v", parent, children)
	}

	return
}

// AllParents lists a node's ancestors from the immediate parent upward,
// excluding the root sentinel.
//
// Unlike Children, absence is an error: an unknown identifier yields
// ErrNotFound & a node sitting directly under the root yields ErrNoParents. A
// dangling parent reference truncates the chain silently.
func (idx *Index[T]) AllParents(ctx context.Context, id T) (parents List[T], err error) {
	node, ok := idx.byID[id]
	if !ok {
		err = fmt.Errorf("(%v) %w", id, ErrNotFound)
		return
	}
	if node.Parent() == idx.root {
		err = fmt.Errorf("(%v) %w", id, ErrNoParents)
		return
	}

	parents = make(List[T], 0)
	visited := map[T]struct{}{id: {}}

	for node.Parent() != idx.root {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		parentID := node.Parent()
		if _, ok = visited[parentID]; ok {
			err = fmt.Errorf("(%v) %w", parentID, ErrCycle)
			return
		}

		parent, found := idx.byID[parentID]
		if !found {
			// Dangling reference: the chain truncates here.
			break
		}

		parents = append(parents, parent)
		visited[parentID] = struct{}{}
		node = parent
	}

	return
}

// Values lists the identifiers for a List.
func (l List[T]) Values(_ context.Context, sortValues ...bool) (values []T) {
	values = make([]T, len(l))
	for index := range l {
		values[index] = l[index].ID()
	}

	if len(sortValues) > 0 && sortValues[0] {
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	}

	return
}

// Values lists the identifiers for a LevelList.
func (l LevelList[T]) Values(ctx context.Context, sortValues ...bool) (values [][]T) {
	values = make([][]T, len(l))
	for index := range l {
		values[index] = l[index].Values(ctx, sortValues...)
	}

	return
}
