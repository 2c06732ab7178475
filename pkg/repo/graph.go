package repo

import (
	"github.com/odvcencio/gitlet/pkg/object"
)

const maxGraphSteps = 1_000_000

// graphStepsLimit lets tests tighten the traversal ceiling without affecting
// the production default.
var graphStepsLimit = maxGraphSteps

func graphLimit() int {
	if graphStepsLimit <= 0 || graphStepsLimit > maxGraphSteps {
		return maxGraphSteps
	}
	return graphStepsLimit
}

// Ancestry is every commit reachable from Tip over parent and merge-parent
// edges. Distance holds the length of the shortest path from Tip; Order lists
// the commits in breadth-first discovery order, Tip first.
type Ancestry struct {
	Tip      object.Hash
	Distance map[object.Hash]int
	Order    []object.Hash
}

// Contains reports whether id is tip or one of its ancestors.
func (a *Ancestry) Contains(id object.Hash) bool {
	_, ok := a.Distance[id]
	return ok
}

// Ancestors enumerates the ancestry of tip. The walk is an explicit
// breadth-first work list, so history depth never grows the call stack. The
// graph is checked for cycles first and a cycle fails with ErrCorruptGraph.
func (r *Repo) Ancestors(tip object.Hash) (*Ancestry, error) {
	if err := r.checkAcyclic(tip); err != nil {
		return nil, err
	}

	limit := graphLimit()
	anc := &Ancestry{
		Tip:      tip,
		Distance: map[object.Hash]int{tip: 0},
		Order:    []object.Hash{tip},
	}
	for i := 0; i < len(anc.Order); i++ {
		if i >= limit {
			return nil, &GraphError{ID: tip, Reason: "ancestor walk exceeded step limit"}
		}
		id := anc.Order[i]
		c, err := r.readCommit(id)
		if err != nil {
			return nil, err
		}
		d := anc.Distance[id]
		for _, p := range c.Parents() {
			if _, seen := anc.Distance[p]; seen {
				continue
			}
			anc.Distance[p] = d + 1
			anc.Order = append(anc.Order, p)
		}
	}
	return anc, nil
}

// checkAcyclic runs an iterative three-colour depth-first search from tip and
// fails on the first back edge.
func (r *Repo) checkAcyclic(tip object.Hash) error {
	const (
		white = iota
		grey
		black
	)
	type frame struct {
		id      object.Hash
		parents []object.Hash
		next    int
	}

	limit := graphLimit()
	color := make(map[object.Hash]int)
	push := func(stack []frame, id object.Hash) ([]frame, error) {
		c, err := r.readCommit(id)
		if err != nil {
			return nil, err
		}
		color[id] = grey
		return append(stack, frame{id: id, parents: c.Parents()}), nil
	}

	stack, err := push(nil, tip)
	if err != nil {
		return err
	}
	for steps := 0; len(stack) > 0; steps++ {
		if steps >= 2*limit {
			return &GraphError{ID: tip, Reason: "cycle check exceeded step limit"}
		}
		top := &stack[len(stack)-1]
		if top.next == len(top.parents) {
			color[top.id] = black
			stack = stack[:len(stack)-1]
			continue
		}
		p := top.parents[top.next]
		top.next++
		switch color[p] {
		case grey:
			return &GraphError{ID: p, Reason: "cycle in commit graph"}
		case white:
			if stack, err = push(stack, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// SplitPoint picks the merge base of two tips from their ancestries: of the
// commits in current.Order that given also reaches, the one closest to the
// given tip. Equal distances resolve to the commit current discovers first,
// so the result is not always the unique lowest common ancestor of a
// criss-cross history.
func SplitPoint(given, current *Ancestry) (object.Hash, bool) {
	var (
		best  object.Hash
		bestD int
		found bool
	)
	for _, id := range current.Order {
		d, ok := given.Distance[id]
		if !ok {
			continue
		}
		if !found || d < bestD {
			best, bestD, found = id, d, true
		}
	}
	return best, found
}

// IsAncestor reports whether ancestor is reachable from descendant.
func (r *Repo) IsAncestor(ancestor, descendant object.Hash) (bool, error) {
	anc, err := r.Ancestors(descendant)
	if err != nil {
		return false, err
	}
	return anc.Contains(ancestor), nil
}
