// Package richresponse models the response messages a Dialogflow webhook can
// send back to the platform and maps them to and from the wire format.
//
// Every variant accepts zero fields. Fields that were never set are omitted
// when encoding, and decoding tolerates any missing optional field.
package richresponse

// Wire keys of the built-in message variants.
const (
	KindText         = "text"
	KindQuickReplies = "quickReplies"
	KindCard         = "card"
	KindImage        = "image"
	KindPayload      = "payload"
)

// Message is one typed rich response.
type Message interface {
	// Kind returns the wire key identifying the variant.
	Kind() string
	// Encode returns the wire representation, e.g. {"text": {"text": ["hi"]}}.
	Encode() map[string]any
}
