package richresponse

// Payload carries custom, integration specific content untouched.
type Payload struct {
	payload map[string]any
}

func NewPayload(payload map[string]any) *Payload {
	return (&Payload{}).SetPayload(payload)
}

// SetPayload stores a deep copy of payload. A nil payload unsets the field.
func (p *Payload) SetPayload(payload map[string]any) *Payload {
	p.payload = cloneMap(payload)
	return p
}

func (p *Payload) Payload() (map[string]any, bool) {
	if p.payload == nil {
		return nil, false
	}
	return cloneMap(p.payload), true
}

func (p *Payload) Kind() string { return KindPayload }

func (p *Payload) Encode() map[string]any {
	body := cloneMap(p.payload)
	if body == nil {
		body = map[string]any{}
	}
	return map[string]any{KindPayload: body}
}

func DecodePayload(msg map[string]any) (*Payload, error) {
	body, err := object(msg, KindPayload, KindPayload)
	if err != nil {
		return nil, err
	}
	return NewPayload(body), nil
}
