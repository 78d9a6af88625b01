// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package ssml

import (
	"encoding/json"
	"fmt"

	"github.com/actions-on-google/dialogflow-ssml-go/fulfillment"
	"google.golang.org/api/dialogflow/v2"
	"google.golang.org/api/googleapi"
)

// Intent display names configured in the Dialogflow agent.
const (
	WelcomeIntent       = "Welcome"
	FallbackIntent      = "Fallback"
	ChooseExampleIntent = "Choose Example"
)

// ElementParameter is the Choose Example parameter naming the example.
const ElementParameter = "element"

// Actions returns the fulfillment actions served by h.
func Actions(h *Handler) fulfillment.Actions {
	actions := fulfillment.NewActions()

	actions.Set(WelcomeIntent, func(q *dialogflow.GoogleCloudDialogflowV2WebhookRequest) (*dialogflow.GoogleCloudDialogflowV2WebhookResponse, error) {
		return h.Welcome().WebhookResponse()
	})
	actions.Set(FallbackIntent, func(q *dialogflow.GoogleCloudDialogflowV2WebhookRequest) (*dialogflow.GoogleCloudDialogflowV2WebhookResponse, error) {
		return h.Fallback().WebhookResponse()
	})
	actions.Set(ChooseExampleIntent, func(q *dialogflow.GoogleCloudDialogflowV2WebhookRequest) (*dialogflow.GoogleCloudDialogflowV2WebhookResponse, error) {
		return h.ChooseExample(parameter(q, ElementParameter)).WebhookResponse()
	})

	return actions
}

// parameter returns the raw JSON value of the named query parameter, or nil
// when the request carries no such parameter.
func parameter(q *dialogflow.GoogleCloudDialogflowV2WebhookRequest, name string) any {
	if q.QueryResult == nil || len(q.QueryResult.Parameters) == 0 {
		return nil
	}
	var parameters map[string]any
	if err := json.Unmarshal(q.QueryResult.Parameters, &parameters); err != nil {
		return nil
	}
	return parameters[name]
}

// Actions on Google payload carried in the webhook response.
type googlePayload struct {
	Google googleResponse `json:"google"`
}

type googleResponse struct {
	ExpectUserResponse bool         `json:"expectUserResponse"`
	RichResponse       richResponse `json:"richResponse"`
}

type richResponse struct {
	Items []richResponseItem `json:"items"`
}

type richResponseItem struct {
	SimpleResponse simpleResponse `json:"simpleResponse"`
}

type simpleResponse struct {
	TextToSpeech string `json:"textToSpeech,omitempty"`
	SSML         string `json:"ssml,omitempty"`
}

// WebhookResponse converts r into a Dialogflow webhook response. The plain
// text is set as the fulfillment text, and every segment becomes a simple
// response item of the Actions on Google rich response, in order.
func (r *Response) WebhookResponse() (*dialogflow.GoogleCloudDialogflowV2WebhookResponse, error) {
	payload := googlePayload{
		Google: googleResponse{
			ExpectUserResponse: true,
			RichResponse: richResponse{
				Items: make([]richResponseItem, 0, len(r.Segments)),
			},
		},
	}
	for _, s := range r.Segments {
		var item richResponseItem
		switch s.Kind {
		case PlainText:
			item.SimpleResponse.TextToSpeech = s.Text
		case MarkupSpeech:
			item.SimpleResponse.SSML = s.Text
		default:
			return nil, fmt.Errorf("ssml: unknown segment kind %d", s.Kind)
		}
		payload.Google.RichResponse.Items = append(payload.Google.RichResponse.Items, item)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ssml: encode payload: %w", err)
	}

	return &dialogflow.GoogleCloudDialogflowV2WebhookResponse{
		FulfillmentText: r.Text(),
		Payload:         googleapi.RawMessage(data),
	}, nil
}
