package voice

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/YevheniiGera/dialogflow-fulfillment/pkg/richresponse"
)

func TestSpeakable(t *testing.T) {
	tests := []struct {
		name string
		msg  richresponse.Message
		want []string
	}{
		{"text", richresponse.NewText("hello there"), []string{"hello there"}},
		{"blank text", richresponse.NewText("  "), nil},
		{"unset text", &richresponse.Text{}, nil},
		{"quick replies", richresponse.NewQuickReplies("How are you?", "Happy", "Sad"), []string{"How are you?", "Happy, Sad"}},
		{"card", richresponse.NewCard("Title").SetSubtitle("Subtitle"), []string{"Title", "Subtitle"}},
		{"image", richresponse.NewImage("https://test.url/image.jpg"), nil},
		{"payload", richresponse.NewPayload(map[string]any{"a": "b"}), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Speakable(tt.msg)); diff != "" {
				t.Fatalf("Speakable() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender(t *testing.T) {
	xml, err := Render([]richresponse.Message{
		richresponse.NewText("first line"),
		richresponse.NewImage("https://test.url/image.jpg"),
		richresponse.NewText("second line"),
	}, Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(xml, "<Response>") {
		t.Fatalf("expected a TwiML response, got %s", xml)
	}
	first := strings.Index(xml, "first line")
	second := strings.Index(xml, "second line")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected both lines in order, got %s", xml)
	}
	if strings.Count(xml, "<Say") != 2 {
		t.Fatalf("expected two Say verbs, got %s", xml)
	}
}

func TestRenderFallback(t *testing.T) {
	xml, err := Render(nil, Options{Fallback: "Sorry, nothing to say", Language: "en-US"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(xml, "Sorry, nothing to say") || !strings.Contains(xml, "en-US") {
		t.Fatalf("expected fallback Say, got %s", xml)
	}
}
