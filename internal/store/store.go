// Package store implements the hierarchical state store that drives
// data-bound attributes: typed values addressed by dot-separated paths,
// placeholder templates, derived paths and the subscription graph.
package store

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrNotMapping  = errors.New("path crosses a non-mapping value")
	ErrDerived     = errors.New("path is derived")
	ErrCycle       = errors.New("derivation cycle")
)

// Store is a tree of values addressed by paths such as "user.name".
// It is not safe for concurrent use.
type Store struct {
	root    Value
	derived map[string]*Template
	deps    *Graph[string] // input path -> derived paths reading it
}

// New returns an empty store.
func New() *Store {
	return &Store{
		root:    Value{kind: KindMap, m: map[string]Value{}},
		derived: make(map[string]*Template),
		deps:    NewGraph[string](),
	}
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	keys := strings.Split(path, ".")
	for _, k := range keys {
		if k == "" || strings.TrimSpace(k) != k || strings.ContainsAny(k, "{}|") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return keys, nil
}

// Get returns the value at path.
func (s *Store) Get(path string) (Value, bool) {
	keys, err := splitPath(path)
	if err != nil {
		return Value{}, false
	}
	cur := s.root
	for _, k := range keys {
		next, ok := cur.Field(k)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Eval resolves t against the store.
func (s *Store) Eval(t *Template) (Value, error) {
	return t.Eval(s.Get)
}

// Set stores v at path, creating intermediate mappings. It returns the
// touched paths: path itself followed by every derived path whose value
// changed as a result. Setting an equal value touches nothing.
func (s *Store) Set(path string, v Value) ([]string, error) {
	keys, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	for d := range s.derived {
		if d == path || strings.HasPrefix(path, d+".") {
			return nil, fmt.Errorf("set %q: %w", path, ErrDerived)
		}
	}
	if old, ok := s.Get(path); ok && old.Equal(v) {
		return nil, nil
	}
	if err := s.put(keys, v); err != nil {
		return nil, fmt.Errorf("set %q: %w", path, err)
	}
	return s.propagate([]string{path}), nil
}

func (s *Store) put(keys []string, v Value) error {
	root, err := put(s.root, true, keys, v)
	if err != nil {
		return err
	}
	s.root = root
	return nil
}

// put returns a copy of cur with v stored under keys. Mappings on the way
// are copied, never mutated.
func put(cur Value, exists bool, keys []string, v Value) (Value, error) {
	if len(keys) == 0 {
		return v, nil
	}
	var m map[string]Value
	switch {
	case exists && cur.kind == KindMap:
		m = make(map[string]Value, len(cur.m)+1)
		for k, c := range cur.m {
			m[k] = c
		}
	case !exists:
		m = make(map[string]Value, 1)
	default:
		return Value{}, fmt.Errorf("%w at %q", ErrNotMapping, keys[0])
	}
	child, ok := m[keys[0]]
	nv, err := put(child, ok, keys[1:], v)
	if err != nil {
		return Value{}, err
	}
	m[keys[0]] = nv
	return Value{kind: KindMap, m: m}, nil
}

// propagate re-evaluates derived paths reachable from touched and returns
// touched extended with every derived path whose value changed.
func (s *Store) propagate(touched []string) []string {
	seen := make(map[string]bool, len(touched))
	for _, p := range touched {
		seen[p] = true
	}
	queue := append([]string(nil), touched...)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range s.affected(p) {
			if !s.refresh(d) {
				continue
			}
			queue = append(queue, d)
			if !seen[d] {
				seen[d] = true
				touched = append(touched, d)
			}
		}
	}
	return touched
}

// affected returns the derived paths a change at p may invalidate: those
// reading an overlapping path and those stored inside p itself.
func (s *Store) affected(p string) []string {
	out := s.deps.Subscribers(p)
	for _, d := range s.Derived() {
		if strings.HasPrefix(d, p+".") && !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	return out
}

// refresh re-evaluates the derived path d and reports whether it changed.
// Missing inputs resolve to their defaults or empty strings.
func (s *Store) refresh(d string) bool {
	t, ok := s.derived[d]
	if !ok {
		return false
	}
	nv, _ := t.Eval(s.Get)
	if old, ok := s.Get(d); ok && old.Equal(nv) {
		return false
	}
	keys, _ := splitPath(d)
	return s.put(keys, nv) == nil
}

// Derive makes path a computed value of tmpl, re-evaluated whenever one of
// its inputs changes. Replacing a derivation is allowed; a derivation that
// would read its own output, directly or through other derivations, fails
// with ErrCycle. It returns the touched paths like Set.
func (s *Store) Derive(path, tmpl string) ([]string, error) {
	keys, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	t, err := ParseTemplate(tmpl)
	if err != nil {
		return nil, fmt.Errorf("derive %q: %w", path, err)
	}
	if s.reaches(t.Paths(), path, map[string]bool{}) {
		return nil, fmt.Errorf("derive %q from %q: %w", path, tmpl, ErrCycle)
	}

	nv, _ := t.Eval(s.Get)
	if _, err := put(s.root, true, keys, nv); err != nil {
		return nil, fmt.Errorf("derive %q: %w", path, err)
	}

	s.deps.Unsubscribe(path)
	for _, in := range t.Paths() {
		s.deps.Subscribe(in, path)
	}
	s.derived[path] = t

	if old, ok := s.Get(path); ok && old.Equal(nv) {
		return nil, nil
	}
	_ = s.put(keys, nv)
	return s.propagate([]string{path}), nil
}

// reaches reports whether reading inputs can observe target.
func (s *Store) reaches(inputs []string, target string, visited map[string]bool) bool {
	for _, in := range inputs {
		if Overlaps(in, target) {
			return true
		}
		for d, t := range s.derived {
			if visited[d] || !Overlaps(in, d) {
				continue
			}
			visited[d] = true
			if s.reaches(t.Paths(), target, visited) {
				return true
			}
		}
	}
	return false
}

// Derived returns the sorted derived paths.
func (s *Store) Derived() []string {
	out := make([]string, 0, len(s.derived))
	for d := range s.derived {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Load replaces the store content with a JSON object document and returns
// the top-level keys whose value changed, derived values included.
func (s *Store) Load(doc []byte) ([]string, error) {
	var raw map[string]any
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	v, err := FromInterface(raw)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	old := s.root
	s.root = v
	// Derivations may read each other; settle them in at most one pass each.
	for range len(s.derived) + 1 {
		changed := false
		for _, d := range s.Derived() {
			if s.refresh(d) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	var touched []string
	for _, k := range unionKeys(old, s.root) {
		a, okA := old.Field(k)
		b, okB := s.root.Field(k)
		if okA != okB || !a.Equal(b) {
			touched = append(touched, k)
		}
	}
	return touched, nil
}

func unionKeys(a, b Value) []string {
	set := make(map[string]bool)
	for k := range a.m {
		set[k] = true
	}
	for k := range b.m {
		set[k] = true
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the store as a nested JSON object with sorted keys.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.root.Interface())
}
