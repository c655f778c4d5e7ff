package fulfillment

import "fmt"

// HandlerFunc handles one webhook request by mutating the client.
type HandlerFunc func(agent *WebhookClient) error

// Handler resolves the function that serves a given intent. It is
// implemented by HandlerFunc, which serves every intent, and by
// IntentHandlers, which selects by intent display name.
type Handler interface {
	Resolve(intent string) (HandlerFunc, error)
}

func (f HandlerFunc) Resolve(string) (HandlerFunc, error) {
	if f == nil {
		return nil, ErrInvalidHandler
	}
	return f, nil
}

// IntentHandlers maps intent display names to handlers.
type IntentHandlers map[string]HandlerFunc

func (m IntentHandlers) Resolve(intent string) (HandlerFunc, error) {
	f, ok := m[intent]
	if !ok || f == nil {
		return nil, fmt.Errorf("%w: no handler for intent %q", ErrInvalidHandler, intent)
	}
	return f, nil
}
