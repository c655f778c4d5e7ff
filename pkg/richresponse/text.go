package richresponse

// Text is a basic static text response.
type Text struct {
	text *string
}

func NewText(text string) *Text {
	return (&Text{}).SetText(text)
}

func (t *Text) SetText(text string) *Text {
	t.text = stringPtr(text)
	return t
}

func (t *Text) Text() (string, bool) {
	return deref(t.text)
}

func (t *Text) Kind() string { return KindText }

// Encode always emits a one element text array; the platform rejects an
// empty one.
func (t *Text) Encode() map[string]any {
	text, _ := t.Text()
	return map[string]any{
		KindText: map[string]any{"text": []string{text}},
	}
}

func DecodeText(msg map[string]any) (*Text, error) {
	body, err := object(msg, KindText, KindText)
	if err != nil {
		return nil, err
	}
	t := &Text{}
	texts, ok, err := optStrings(body, "text", "text.text")
	if err != nil {
		return nil, err
	}
	if ok && len(texts) > 0 {
		t.SetText(texts[0])
	}
	return t, nil
}
