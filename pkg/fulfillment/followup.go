package fulfillment

import (
	"fmt"
	"maps"
)

// FollowupEvent asks the platform to match an intent by event instead of
// waiting for the next user query.
type FollowupEvent struct {
	Name         string
	LanguageCode string
	Parameters   map[string]any
}

func (e FollowupEvent) wire() map[string]any {
	out := map[string]any{"name": e.Name, "languageCode": e.LanguageCode}
	if e.Parameters != nil {
		out["parameters"] = maps.Clone(e.Parameters)
	}
	return out
}

func parseEvent(event any) (FollowupEvent, error) {
	switch e := event.(type) {
	case string:
		return FollowupEvent{Name: e}, nil
	case FollowupEvent:
		return e, nil
	case *FollowupEvent:
		if e != nil {
			return *e, nil
		}
	case map[string]any:
		return eventFromMap(e)
	}
	return FollowupEvent{}, fmt.Errorf("%w, got %T", ErrInvalidEvent, event)
}

func eventFromMap(m map[string]any) (FollowupEvent, error) {
	name, ok := m["name"].(string)
	if !ok {
		return FollowupEvent{}, fmt.Errorf("%w: name must be a string, got %T", ErrInvalidEvent, m["name"])
	}
	e := FollowupEvent{Name: name}
	if v, ok := m["languageCode"]; ok && v != nil {
		lang, ok := v.(string)
		if !ok {
			return FollowupEvent{}, fmt.Errorf("%w: languageCode must be a string, got %T", ErrInvalidEvent, v)
		}
		e.LanguageCode = lang
	}
	if v, ok := m["parameters"]; ok && v != nil {
		params, ok := v.(map[string]any)
		if !ok {
			return FollowupEvent{}, fmt.Errorf("%w: parameters must be an object, got %T", ErrInvalidEvent, v)
		}
		e.Parameters = params
	}
	return e, nil
}
