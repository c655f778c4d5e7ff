package richresponse

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var allowUnexported = cmp.AllowUnexported(Text{}, QuickReplies{}, Card{}, Button{}, Image{}, Payload{})

func TestEmptyVariantsEncode(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want map[string]any
	}{
		{"text", &Text{}, map[string]any{"text": map[string]any{"text": []string{""}}}},
		{"quick replies", &QuickReplies{}, map[string]any{"quickReplies": map[string]any{}}},
		{"card", &Card{}, map[string]any{"card": map[string]any{}}},
		{"image", &Image{}, map[string]any{"image": map[string]any{}}},
		{"payload", &Payload{}, map[string]any{"payload": map[string]any{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.msg.Encode()); diff != "" {
				t.Fatalf("Encode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeSetFields(t *testing.T) {
	card := NewCard("title").
		SetSubtitle("subtitle").
		SetImageURL("https://test.url/image.jpg").
		SetButtons(NewButton("text 1", "postback 1"), Button{}.WithText("text 2"))

	want := map[string]any{
		"card": map[string]any{
			"title":    "title",
			"subtitle": "subtitle",
			"imageUri": "https://test.url/image.jpg",
			"buttons": []map[string]any{
				{"text": "text 1", "postback": "postback 1"},
				{"text": "text 2"},
			},
		},
	}
	if diff := cmp.Diff(want, card.Encode()); diff != "" {
		t.Fatalf("Card.Encode() mismatch (-want +got):\n%s", diff)
	}

	qr := (&QuickReplies{}).SetQuickReplies("reply 1", "reply 2")
	wantQR := map[string]any{"quickReplies": map[string]any{"quickReplies": []string{"reply 1", "reply 2"}}}
	if diff := cmp.Diff(wantQR, qr.Encode()); diff != "" {
		t.Fatalf("QuickReplies.Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{"text", NewText("this is a text")},
		{"empty text", NewText("")},
		{"quick replies", NewQuickReplies("title", "reply 1", "reply 2", "reply 3")},
		{"quick replies without title", (&QuickReplies{}).SetQuickReplies("a")},
		{"quick replies empty list", (&QuickReplies{}).SetQuickReplies()},
		{"card", NewCard("title").SetSubtitle("subtitle").SetImageURL("https://test.url/image.jpg").
			SetButtons(NewButton("text 1", "postback 1"), Button{}.WithPostback("postback 2"))},
		{"empty card", &Card{}},
		{"image", NewImage("https://test.url/image.jpg")},
		{"empty image", &Image{}},
		{"payload", NewPayload(map[string]any{"test key 1": "test value 1", "nested": map[string]any{"a": 1.0}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.msg.Encode())
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if diff := cmp.Diff(tt.msg, got, allowUnexported); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTripThroughJSON(t *testing.T) {
	card := NewCard("title").SetButtons(NewButton("yes", "y"))
	raw, err := json.Marshal(card.Encode())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var wire map[string]any
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	got, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff(Message(card), got, allowUnexported); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMissingOptionalFields(t *testing.T) {
	tests := []map[string]any{
		{"text": map[string]any{}},
		{"text": nil},
		{"quickReplies": map[string]any{}},
		{"card": map[string]any{"buttons": []any{map[string]any{}}}},
		{"image": map[string]any{}},
		{"payload": map[string]any{}},
	}
	for _, msg := range tests {
		if _, err := Decode(msg); err != nil {
			t.Fatalf("Decode(%v) error = %v", msg, err)
		}
	}

	text, err := DecodeText(map[string]any{"text": map[string]any{"text": []any{}}})
	if err != nil {
		t.Fatalf("DecodeText() error = %v", err)
	}
	if _, ok := text.Text(); ok {
		t.Fatal("expected text to stay unset for an empty text array")
	}
}

func TestDecodeInvalidTypes(t *testing.T) {
	tests := []struct {
		name  string
		msg   map[string]any
		field string
	}{
		{"text not list", map[string]any{"text": map[string]any{"text": "hi"}}, "text.text"},
		{"text item not string", map[string]any{"text": map[string]any{"text": []any{1.0}}}, "text.text[0]"},
		{"text body not object", map[string]any{"text": "hi"}, "text"},
		{"quick replies title", map[string]any{"quickReplies": map[string]any{"title": []any{"x"}}}, "quickReplies.title"},
		{"quick replies not list", map[string]any{"quickReplies": map[string]any{"quickReplies": "a"}}, "quickReplies.quickReplies"},
		{"card title", map[string]any{"card": map[string]any{"title": []any{"x"}}}, "card.title"},
		{"card subtitle", map[string]any{"card": map[string]any{"subtitle": 1.0}}, "card.subtitle"},
		{"card image", map[string]any{"card": map[string]any{"imageUri": true}}, "card.imageUri"},
		{"card buttons not list", map[string]any{"card": map[string]any{"buttons": "b"}}, "card.buttons"},
		{"card button not object", map[string]any{"card": map[string]any{"buttons": []any{"b"}}}, "card.buttons[0]"},
		{"card button postback", map[string]any{"card": map[string]any{"buttons": []any{
			map[string]any{"text": "ok"},
			map[string]any{"postback": 1.0},
		}}}, "card.buttons[1].postback"},
		{"image url", map[string]any{"image": map[string]any{"imageUri": []any{}}}, "image.imageUri"},
		{"payload not object", map[string]any{"payload": "nope"}, "payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.msg)
			if !errors.Is(err, ErrInvalidType) {
				t.Fatalf("expected ErrInvalidType, got %v", err)
			}
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected *FieldError, got %T", err)
			}
			if fieldErr.Field != tt.field {
				t.Fatalf("unexpected field %q, want %q", fieldErr.Field, tt.field)
			}
		})
	}
}

func TestEncodeReturnsCopies(t *testing.T) {
	payload := map[string]any{"k": "v"}
	p := NewPayload(payload)
	payload["k"] = "changed"
	p.Encode()["payload"].(map[string]any)["k"] = "mutated"

	got, _ := p.Payload()
	if got["k"] != "v" {
		t.Fatalf("payload leaked external mutation: %v", got)
	}

	nested := map[string]any{
		"google": map[string]any{
			"richResponse": map[string]any{"items": []any{map[string]any{"text": "v"}}},
			"tags":         []string{"a"},
		},
	}
	deep := NewPayload(nested)
	nested["google"].(map[string]any)["tags"].([]string)[0] = "changed"
	nested["google"].(map[string]any)["richResponse"].(map[string]any)["items"].([]any)[0] = "changed"
	encoded := deep.Encode()["payload"].(map[string]any)["google"].(map[string]any)
	encoded["richResponse"].(map[string]any)["items"] = nil
	encoded["tags"].([]string)[0] = "mutated"
	got, _ = deep.Payload()
	got["google"].(map[string]any)["extra"] = true

	want := map[string]any{
		"google": map[string]any{
			"richResponse": map[string]any{"items": []any{map[string]any{"text": "v"}}},
			"tags":         []string{"a"},
		},
	}
	if diff := cmp.Diff(want, deep.Encode()["payload"]); diff != "" {
		t.Fatalf("nested payload leaked mutation (-want +got):\n%s", diff)
	}

	qr := NewQuickReplies("t", "a")
	qr.Encode()["quickReplies"].(map[string]any)["quickReplies"].([]string)[0] = "b"
	replies, _ := qr.QuickReplies()
	if replies[0] != "a" {
		t.Fatalf("quick replies leaked mutation: %v", replies)
	}
}
