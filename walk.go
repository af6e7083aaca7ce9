// SPDX-License-Identifier: MIT
package treeindex

import "context"

// TraverseComm defines a channel to communicate info between [Index] traversal
// operations & their callers.
type TraverseComm[T Constraint] struct {
	node     Node[T]
	err      error
	newPeers bool
}

const traverseBufferSize = 10

// Node retrieves the traversed node.
func (t TraverseComm[T]) Node() Node[T] { return t.node }

// Err retrieves the traversal error, if any.
func (t TraverseComm[T]) Err() error { return t.err }

// Walk performs level-order traversal below a parent key, pushing the nodes it
// encounters to its channel argument.
//
// Each parent key is expanded at most once, so a malformed cyclic chain
// terminates instead of looping. A context.Context is used to terminate the
// walk operation.
func (idx *Index[T]) Walk(ctx context.Context, parent T, traverseChan chan TraverseComm[T]) {
	defer close(traverseChan)

	queue := idx.byParent[parent]
	expanded := map[T]struct{}{parent: {}}

	for len(queue) > 0 {
		// Iterate over the nodes at the current level.
		newPeers := true
		var next List[T]
		for _, node := range queue {
			select {
			case <-ctx.Done():
				traverseChan <- TraverseComm[T]{err: ctx.Err()}
				return
			default:
			}

			traverseChan <- TraverseComm[T]{node: node, newPeers: newPeers}
			newPeers = false

			id := node.ID()
			if _, ok := expanded[id]; ok {
				continue
			}
			expanded[id] = struct{}{}

			next = append(next, idx.byParent[id]...)
		}

		queue = next
	}
}

// AllChildrenByLevel lists the descendants of a parent key grouped by depth.
func (idx *Index[T]) AllChildrenByLevel(ctx context.Context, parent T) (children LevelList[T], err error) {
	children = make(LevelList[T], 0)
	traverseChan := make(chan TraverseComm[T], traverseBufferSize)

	go idx.Walk(ctx, parent, traverseChan)

	var peers List[T]
	for {
		resl, proceed := <-traverseChan
		if !proceed {
			break
		}
		if err = resl.err; err != nil {
			return
		}

		if !resl.newPeers {
			peers = append(peers, resl.node)
			continue
		}

		if len(peers) > 0 {
			children = append(children, peers)
		}
		peers = List[T]{resl.node}
	}

	if len(peers) > 0 {
		children = append(children, peers)
	}

	if idx.cfg.Debug {
		idx.cfg.Logger.Debugf("levels below (%v): %+v", parent, children)
	}

	return
}

// Leaves lists the terminal nodes reachable from the root sentinel.
//
// An empty result is an error: a non-empty acyclic collection always holds at
// least one childless node.
func (idx *Index[T]) Leaves(ctx context.Context) (leaves List[T], err error) {
	leaves = make(List[T], 0)
	traverseChan := make(chan TraverseComm[T], traverseBufferSize)

	go idx.Walk(ctx, idx.root, traverseChan)

	for {
		resl, proceed := <-traverseChan
		if !proceed {
			break
		}
		if err = resl.err; err != nil {
			return
		}

		if len(idx.byParent[resl.node.ID()]) < 1 {
			leaves = append(leaves, resl.node)
		}
	}

	if len(leaves) < 1 {
		err = ErrNoLeaves
	}

	return
}
