// Package fulfillment handles Dialogflow ES v2 fulfillment webhook requests.
//
// A WebhookClient wraps one WebhookRequest. Handler code reads the matched
// intent, parameters and contexts from it, queues rich responses and
// optionally a follow-up event, and the client assembles the
// WebhookResponse:
//
//	agent, err := fulfillment.ParseRequest(body)
//	if err != nil {
//		return err
//	}
//	err = agent.HandleRequest(fulfillment.HandlerFunc(func(agent *fulfillment.WebhookClient) error {
//		return agent.Add("How are you feeling today?")
//	}))
//
// A client serves exactly one request and is not safe for concurrent use.
package fulfillment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/YevheniiGera/dialogflow-fulfillment/pkg/contexts"
	"github.com/YevheniiGera/dialogflow-fulfillment/pkg/richresponse"
)

type WebhookClient struct {
	// Intent is the display name of the matched intent.
	Intent string
	Action string
	// Query is the original end-user query.
	Query string
	// Locale is the language code of the query.
	Locale     string
	Session    string
	Parameters map[string]any
	// Contexts holds the raw input contexts as received.
	Contexts                []map[string]any
	OriginalRequest         map[string]any
	AlternativeQueryResults []any

	// Context manages input and output contexts by short name.
	Context *contexts.Store
	// ConsoleMessages are the responses defined for the intent in the
	// Dialogflow console.
	ConsoleMessages []richresponse.Message

	requestSource string
	hasSource     bool

	messages []richresponse.Message
	followup *FollowupEvent
}

// ParseRequest decodes a JSON WebhookRequest body.
func ParseRequest(body []byte) (*WebhookClient, error) {
	return DecodeRequest(bytes.NewReader(body))
}

func DecodeRequest(r io.Reader) (*WebhookClient, error) {
	var raw any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	request, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: request must be an object, got %T", ErrInvalidRequest, raw)
	}
	return New(request)
}

// New builds a client from a decoded WebhookRequest object.
func New(request map[string]any) (*WebhookClient, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: request must be an object", ErrInvalidRequest)
	}
	c := &WebhookClient{}
	if err := c.processRequest(request); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *WebhookClient) processRequest(request map[string]any) error {
	queryResult, err := objectField(request, "queryResult", true)
	if err != nil {
		return err
	}
	intent, err := objectField(queryResult, "intent", false)
	if err != nil {
		return err
	}

	if c.Intent, err = stringField(intent, "displayName"); err != nil {
		return err
	}
	if c.Action, err = stringField(queryResult, "action"); err != nil {
		return err
	}
	if c.Query, err = stringField(queryResult, "queryText"); err != nil {
		return err
	}
	if c.Locale, err = stringField(queryResult, "languageCode"); err != nil {
		return err
	}
	if c.Session, err = stringField(request, "session"); err != nil {
		return err
	}

	if c.Parameters, err = objectField(queryResult, "parameters", false); err != nil {
		return err
	}
	if c.Parameters == nil {
		c.Parameters = map[string]any{}
	}
	if c.OriginalRequest, err = objectField(request, "originalDetectIntentRequest", false); err != nil {
		return err
	}
	if c.OriginalRequest == nil {
		c.OriginalRequest = map[string]any{}
	}
	if v, ok := c.OriginalRequest["source"]; ok && v != nil {
		source, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: originalDetectIntentRequest.source must be a string, got %T", ErrInvalidRequest, v)
		}
		c.requestSource, c.hasSource = source, true
	}
	if v, ok := request["alternativeQueryResults"].([]any); ok {
		c.AlternativeQueryResults = v
	}

	if c.Contexts, err = objectList(queryResult, "outputContexts"); err != nil {
		return err
	}
	if c.Context, err = contexts.New(c.Contexts, c.Session); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	rawMessages, err := objectList(queryResult, "fulfillmentMessages")
	if err != nil {
		return err
	}
	for i, raw := range rawMessages {
		msg, err := richresponse.Decode(raw)
		if err != nil {
			return fmt.Errorf("fulfillment message %d: %w", i, err)
		}
		c.ConsoleMessages = append(c.ConsoleMessages, msg)
	}
	return nil
}

// RequestSource returns originalDetectIntentRequest.source, if present.
func (c *WebhookClient) RequestSource() (string, bool) {
	return c.requestSource, c.hasSource
}

// Add queues responses. Each argument may be a string (sent as Text), a
// richresponse.Message, a wire message object, or a slice of those. Nothing
// is queued if any argument is invalid.
func (c *WebhookClient) Add(responses ...any) error {
	var queued []richresponse.Message
	for _, response := range responses {
		msgs, err := toMessages(response)
		if err != nil {
			return err
		}
		queued = append(queued, msgs...)
	}
	c.messages = append(c.messages, queued...)
	return nil
}

func toMessages(response any) ([]richresponse.Message, error) {
	switch list := response.(type) {
	case []string:
		out := make([]richresponse.Message, 0, len(list))
		for _, s := range list {
			out = append(out, richresponse.NewText(s))
		}
		return out, nil
	case []richresponse.Message:
		out := make([]richresponse.Message, 0, len(list))
		for _, item := range list {
			msg, err := toMessage(item)
			if err != nil {
				return nil, err
			}
			out = append(out, msg)
		}
		return out, nil
	case []any:
		out := make([]richresponse.Message, 0, len(list))
		for _, item := range list {
			msg, err := toMessage(item)
			if err != nil {
				return nil, err
			}
			out = append(out, msg)
		}
		return out, nil
	}
	msg, err := toMessage(response)
	if err != nil {
		return nil, err
	}
	return []richresponse.Message{msg}, nil
}

func toMessage(response any) (richresponse.Message, error) {
	switch r := response.(type) {
	case string:
		return richresponse.NewText(r), nil
	case map[string]any:
		return richresponse.Decode(r)
	case richresponse.Message:
		if v := reflect.ValueOf(r); v.Kind() != reflect.Pointer || !v.IsNil() {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w, got %T", ErrInvalidResponse, response)
}

// Messages returns the queued responses.
func (c *WebhookClient) Messages() []richresponse.Message {
	return append([]richresponse.Message{}, c.messages...)
}

// SetFollowupEvent sets the event to trigger after this response. event is
// an event name, a FollowupEvent or an EventInput object. The language code
// defaults to the request locale. A later call replaces an earlier one.
func (c *WebhookClient) SetFollowupEvent(event any) error {
	e, err := parseEvent(event)
	if err != nil {
		return err
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: event name is empty", ErrInvalidEvent)
	}
	if e.LanguageCode == "" {
		e.LanguageCode = c.Locale
	}
	c.followup = &e
	return nil
}

func (c *WebhookClient) FollowupEvent() (FollowupEvent, bool) {
	if c.followup == nil {
		return FollowupEvent{}, false
	}
	return *c.followup, true
}

// HandleRequest runs the handler resolved for the request intent. A handler
// error is returned as is.
func (c *WebhookClient) HandleRequest(handler Handler) error {
	if handler == nil {
		return ErrInvalidHandler
	}
	fn, err := handler.Resolve(c.Intent)
	if err != nil {
		return err
	}
	return fn(c)
}

func (c *WebhookClient) buildResponse() map[string]any {
	response := map[string]any{}
	if len(c.messages) > 0 {
		messages := make([]map[string]any, 0, len(c.messages))
		for _, msg := range c.messages {
			messages = append(messages, msg.Encode())
		}
		response["fulfillmentMessages"] = messages
	}
	if c.followup != nil {
		response["followupEventInput"] = c.followup.wire()
	}
	if c.Context.Len() > 0 {
		response["outputContexts"] = c.Context.Output()
	}
	if c.hasSource {
		response["source"] = c.requestSource
	}
	return response
}

// Response assembles the WebhookResponse from the current state. Every call
// returns a fresh map.
func (c *WebhookClient) Response() map[string]any {
	return c.buildResponse()
}
