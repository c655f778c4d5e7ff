// Package voice renders queued fulfillment messages as TwiML for voice
// gateways that cannot display rich responses.
package voice

import (
	"fmt"
	"strings"

	"github.com/twilio/twilio-go/twiml"

	"github.com/YevheniiGera/dialogflow-fulfillment/pkg/richresponse"
)

type Options struct {
	Language string
	Voice    string
	// Fallback is spoken when no message has speakable text.
	Fallback string
}

func (o Options) say(text string) *twiml.VoiceSay {
	return &twiml.VoiceSay{Message: text, Language: o.Language, Voice: o.Voice}
}

// Render turns text, quick replies and card titles into <Say> verbs.
// Images and custom payloads have no voice rendering and are skipped.
func Render(msgs []richresponse.Message, opts Options) (string, error) {
	var verbs []twiml.Element
	for _, msg := range msgs {
		for _, line := range Speakable(msg) {
			verbs = append(verbs, opts.say(line))
		}
	}
	if len(verbs) == 0 && opts.Fallback != "" {
		verbs = append(verbs, opts.say(opts.Fallback))
	}

	xml, err := twiml.Voice(verbs)
	if err != nil {
		return "", fmt.Errorf("failed to create voice response: %w", err)
	}
	return xml, nil
}

// Speakable returns the lines of msg that make sense read aloud.
func Speakable(msg richresponse.Message) []string {
	var lines []string
	add := func(s string, ok bool) {
		if s = strings.TrimSpace(s); ok && s != "" {
			lines = append(lines, s)
		}
	}

	switch m := msg.(type) {
	case *richresponse.Text:
		add(m.Text())
	case *richresponse.QuickReplies:
		add(m.Title())
		if replies, ok := m.QuickReplies(); ok && len(replies) > 0 {
			add(strings.Join(replies, ", "), true)
		}
	case *richresponse.Card:
		add(m.Title())
		add(m.Subtitle())
	}
	return lines
}
