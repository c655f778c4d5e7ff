package richresponse

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// DecodeFunc builds a typed message from a whole wire message object.
type DecodeFunc func(msg map[string]any) (Message, error)

// Registry maps wire keys to decoders. New variants are added with Register;
// the dispatch in Decode never changes. A Registry is safe for concurrent
// use, so Register may run while requests are being decoded.
type Registry struct {
	mu       sync.RWMutex
	kinds    []string
	decoders map[string]DecodeFunc
}

func NewRegistry() *Registry {
	return &Registry{decoders: map[string]DecodeFunc{}}
}

// Default holds the built-in variants and backs the package level Decode.
var Default = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(KindText, decoder(DecodeText))
	r.MustRegister(KindQuickReplies, decoder(DecodeQuickReplies))
	r.MustRegister(KindCard, decoder(DecodeCard))
	r.MustRegister(KindImage, decoder(DecodeImage))
	r.MustRegister(KindPayload, decoder(DecodePayload))
	return r
}

func decoder[T Message](fn func(map[string]any) (T, error)) DecodeFunc {
	return func(msg map[string]any) (Message, error) {
		m, err := fn(msg)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

func (r *Registry) Register(kind string, fn DecodeFunc) error {
	if strings.TrimSpace(kind) == "" || fn == nil {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.decoders[kind]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, kind)
	}
	r.kinds = append(r.kinds, kind)
	r.decoders[kind] = fn
	return nil
}

func (r *Registry) MustRegister(kind string, fn DecodeFunc) {
	if err := r.Register(kind, fn); err != nil {
		panic("richresponse: " + err.Error())
	}
}

// Kinds lists registered wire keys in registration order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.kinds...)
}

// Decode picks the variant whose wire key is present in msg. Exactly one
// registered key must match; none or several fail with ErrUnsupportedMessage.
func (r *Registry) Decode(msg map[string]any) (Message, error) {
	var matched []string
	r.mu.RLock()
	for _, kind := range r.kinds {
		if _, ok := msg[kind]; ok {
			matched = append(matched, kind)
		}
	}
	var fn DecodeFunc
	if len(matched) == 1 {
		fn = r.decoders[matched[0]]
	}
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("%w: fields %s", ErrUnsupportedMessage, keyList(msg))
	}
	m, err := fn(msg)
	if err != nil {
		return nil, fmt.Errorf("decode %s message: %w", matched[0], err)
	}
	return m, nil
}

func Decode(msg map[string]any) (Message, error) {
	return Default.Decode(msg)
}

// KindName converts an UpperCamelCase type name to its lowerCamelCase wire
// key, e.g. QuickReplies to quickReplies.
func KindName(typeName string) string {
	r, size := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError {
		return typeName
	}
	return string(unicode.ToLower(r)) + typeName[size:]
}

func keyList(msg map[string]any) string {
	keys := make([]string, 0, len(msg))
	for k := range msg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "[" + strings.Join(keys, " ") + "]"
}
