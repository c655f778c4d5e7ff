// Package protowire converts between the generic webhook maps used by
// package fulfillment and the Dialogflow v2 protobuf messages.
package protowire

import (
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/dialogflow/apiv2/dialogflowpb"
	"google.golang.org/protobuf/encoding/protojson"
)

var ErrInvalidResponse = errors.New("response does not match the WebhookResponse schema")

// RequestFromProto renders req in its JSON wire form, ready for
// fulfillment.New.
func RequestFromProto(req *dialogflowpb.WebhookRequest) (map[string]any, error) {
	raw, err := protojson.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal webhook request. %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode webhook request. %w", err)
	}
	return out, nil
}

// ResponseToProto parses a response map strictly: unknown fields and wrongly
// typed values are rejected.
func ResponseToProto(resp map[string]any) (*dialogflowpb.WebhookResponse, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	out := &dialogflowpb.WebhookResponse{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return out, nil
}

func ValidateResponse(resp map[string]any) error {
	_, err := ResponseToProto(resp)
	return err
}
