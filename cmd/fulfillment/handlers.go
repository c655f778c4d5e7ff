package main

import (
	"fmt"

	"github.com/YevheniiGera/dialogflow-fulfillment/pkg/contexts"
	"github.com/YevheniiGera/dialogflow-fulfillment/pkg/fulfillment"
	"github.com/YevheniiGera/dialogflow-fulfillment/pkg/richresponse"
)

func sampleHandlers() fulfillment.IntentHandlers {
	return fulfillment.IntentHandlers{
		"Default Welcome Intent":  welcome,
		"Default Fallback Intent": fallback,
		"Connect Call":            connectCall,
	}
}

func welcome(agent *fulfillment.WebhookClient) error {
	return agent.Add(
		"How are you feeling today?",
		(&richresponse.QuickReplies{}).SetQuickReplies("Happy :)", "Sad :("),
	)
}

func fallback(agent *fulfillment.WebhookClient) error {
	if err := agent.Context.Set("fallback", contexts.WithLifespan(1)); err != nil {
		return err
	}
	return agent.Add("I didn't get that. Can you say it again?")
}

func connectCall(agent *fulfillment.WebhookClient) error {
	name, ok := agent.Parameters["name"]
	if !ok || name == "" {
		return agent.Add("Ok. I cannot connect you right now")
	}
	return agent.Add(fmt.Sprintf("%s is busy. Talk to me", name))
}
