// Package contexts keeps the conversation contexts of one webhook request.
//
// Contexts arrive with fully qualified resource names
// (projects/<p>/agent/sessions/<s>/contexts/<name>) and are stored under
// their short name. Output re-qualifies them with the request session.
package contexts

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"strings"
)

var (
	ErrMissingName = errors.New("context name is missing")
	ErrInvalidName = errors.New("invalid context name")
	ErrInvalidType = errors.New("invalid argument type")
)

// Context is one conversation context. LifespanCount and Parameters are nil
// when unset.
type Context struct {
	Name          string
	LifespanCount *int
	Parameters    map[string]any
}

// Lifespan returns the lifespan count and whether it was set.
func (c Context) Lifespan() (int, bool) {
	if c.LifespanCount == nil {
		return 0, false
	}
	return *c.LifespanCount, true
}

func (c Context) clone() Context {
	out := Context{Name: c.Name, Parameters: maps.Clone(c.Parameters)}
	if c.LifespanCount != nil {
		n := *c.LifespanCount
		out.LifespanCount = &n
	}
	return out
}

// Store maps short context names to contexts. It is not safe for concurrent
// use; a store lives for exactly one request.
type Store struct {
	session  string
	names    []string
	contexts map[string]*Context
}

// New builds a store from the request's outputContexts. The input maps are
// not modified.
func New(input []map[string]any, session string) (*Store, error) {
	s := &Store{session: session, contexts: map[string]*Context{}}
	for i, raw := range input {
		ctx, err := parseContext(raw)
		if err != nil {
			return nil, fmt.Errorf("context %d: %w", i, err)
		}
		s.put(ctx)
	}
	return s, nil
}

// FromAny accepts the outputContexts value as produced by encoding/json.
// A nil value yields an empty store.
func FromAny(v any, session string) (*Store, error) {
	switch list := v.(type) {
	case nil:
		return New(nil, session)
	case []map[string]any:
		return New(list, session)
	case []any:
		input := make([]map[string]any, 0, len(list))
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("context %d: %w: must be an object, got %T", i, ErrInvalidType, item)
			}
			input = append(input, m)
		}
		return New(input, session)
	default:
		return nil, fmt.Errorf("%w: contexts must be a list, got %T", ErrInvalidType, v)
	}
}

func parseContext(raw map[string]any) (Context, error) {
	v, ok := raw["name"]
	if !ok || v == nil {
		return Context{}, ErrMissingName
	}
	name, ok := v.(string)
	if !ok {
		return Context{}, fmt.Errorf("%w: name must be a string, got %T", ErrInvalidType, v)
	}
	ctx := Context{Name: ShortName(name)}
	if v, ok := raw["lifespanCount"]; ok && v != nil {
		n, err := toInt(v)
		if err != nil {
			return Context{}, err
		}
		ctx.LifespanCount = &n
	}
	if v, ok := raw["parameters"]; ok && v != nil {
		params, ok := v.(map[string]any)
		if !ok {
			return Context{}, fmt.Errorf("%w: parameters must be an object, got %T", ErrInvalidType, v)
		}
		ctx.Parameters = maps.Clone(params)
	}
	return ctx, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
	}
	return 0, fmt.Errorf("%w: lifespanCount must be an integer, got %v", ErrInvalidType, v)
}

// ShortName strips everything up to the last "/" of a context resource name.
func ShortName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// put stores ctx, replacing any earlier record with the same short name but
// keeping its original position.
func (s *Store) put(ctx Context) {
	if _, ok := s.contexts[ctx.Name]; !ok {
		s.names = append(s.names, ctx.Name)
	}
	s.contexts[ctx.Name] = &ctx
}

func (s *Store) Session() string {
	return s.session
}

func (s *Store) Len() int {
	return len(s.names)
}

// Names lists short names in order of first appearance.
func (s *Store) Names() []string {
	return append([]string{}, s.names...)
}

// Option updates one field during Set.
type Option func(*Context)

func WithLifespan(n int) Option {
	return func(c *Context) {
		c.LifespanCount = &n
	}
}

// WithParameters replaces the context parameters. A nil map leaves them as is.
func WithParameters(params map[string]any) Option {
	return func(c *Context) {
		if params != nil {
			c.Parameters = maps.Clone(params)
		}
	}
}

// Set creates or updates the context called name. Fields without an option
// are left untouched.
func (s *Store) Set(name string, opts ...Option) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	ctx, ok := s.contexts[name]
	if !ok {
		ctx = &Context{Name: name}
		s.names = append(s.names, name)
		s.contexts[name] = ctx
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return nil
}

// Get returns a copy of the context called name.
func (s *Store) Get(name string) (Context, bool) {
	ctx, ok := s.contexts[name]
	if !ok {
		return Context{}, false
	}
	return ctx.clone(), true
}

// Delete expires the context by setting its lifespan to 0. The context stays
// in the store so the platform receives the deactivation.
func (s *Store) Delete(name string) error {
	return s.Set(name, WithLifespan(0))
}

// QualifiedName returns "<session>/contexts/<name>".
func (s *Store) QualifiedName(name string) string {
	return s.session + "/contexts/" + name
}

// Output returns the outputContexts array with qualified names. Stored
// contexts are not modified, so Output can be called repeatedly.
func (s *Store) Output() []map[string]any {
	out := make([]map[string]any, 0, len(s.names))
	for _, name := range s.names {
		ctx := s.contexts[name]
		wire := map[string]any{"name": s.QualifiedName(ctx.Name)}
		if ctx.LifespanCount != nil {
			wire["lifespanCount"] = *ctx.LifespanCount
		}
		if ctx.Parameters != nil {
			wire["parameters"] = maps.Clone(ctx.Parameters)
		}
		out = append(out, wire)
	}
	return out
}
