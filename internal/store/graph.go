package store

import (
	"sort"
	"strings"
)

// Overlaps reports whether a change at one path can change the value read
// at the other: the paths are equal or one lies inside the other.
func Overlaps(a, b string) bool {
	return a == b || strings.HasPrefix(a, b+".") || strings.HasPrefix(b, a+".")
}

// Graph maps store paths to the subscribers reading them. It keeps a reverse
// index so a subscriber can be dropped without scanning every path.
type Graph[S comparable] struct {
	byPath map[string]map[S]struct{}
	bySub  map[S]map[string]struct{}
	order  map[S]uint64
	seq    uint64
}

// NewGraph returns an empty graph.
func NewGraph[S comparable]() *Graph[S] {
	return &Graph[S]{
		byPath: make(map[string]map[S]struct{}),
		bySub:  make(map[S]map[string]struct{}),
		order:  make(map[S]uint64),
	}
}

// Subscribe records that s reads path.
func (g *Graph[S]) Subscribe(path string, s S) {
	subs, ok := g.byPath[path]
	if !ok {
		subs = make(map[S]struct{})
		g.byPath[path] = subs
	}
	subs[s] = struct{}{}

	paths, ok := g.bySub[s]
	if !ok {
		paths = make(map[string]struct{})
		g.bySub[s] = paths
		g.seq++
		g.order[s] = g.seq
	}
	paths[path] = struct{}{}
}

// Unsubscribe drops every path s reads.
func (g *Graph[S]) Unsubscribe(s S) {
	for path := range g.bySub[s] {
		subs := g.byPath[path]
		delete(subs, s)
		if len(subs) == 0 {
			delete(g.byPath, path)
		}
	}
	delete(g.bySub, s)
	delete(g.order, s)
}

// Subscribers returns the subscribers of every path overlapping one of
// changed, each once, in the order they first subscribed.
func (g *Graph[S]) Subscribers(changed ...string) []S {
	found := make(map[S]struct{})
	for path, subs := range g.byPath {
		for _, c := range changed {
			if Overlaps(path, c) {
				for s := range subs {
					found[s] = struct{}{}
				}
				break
			}
		}
	}

	out := make([]S, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return g.order[out[i]] < g.order[out[j]]
	})
	return out
}

// Paths returns the sorted paths s reads.
func (g *Graph[S]) Paths(s S) []string {
	out := make([]string, 0, len(g.bySub[s]))
	for p := range g.bySub[s] {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of subscribers.
func (g *Graph[S]) Len() int {
	return len(g.bySub)
}
