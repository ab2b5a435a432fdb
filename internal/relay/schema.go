package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	inputTypeChat  = "chat"
	outputTypeChat = "chat"
)

// RunRequest is the body posted to /api/v1/run/{flow}
type RunRequest struct {
	InputValue string `json:"input_value"`
	InputType  string `json:"input_type"`
	OutputType string `json:"output_type"`
}

// RunResponse mirrors the part of the run result the relay reads:
// outputs[0].outputs[0].outputs.message.message.text
type RunResponse struct {
	Outputs []OutputGroup `json:"outputs"`
}

type OutputGroup struct {
	Outputs []ComponentOutput `json:"outputs"`
}

type ComponentOutput struct {
	Outputs ComponentResults `json:"outputs"`
}

type ComponentResults struct {
	Message *MessageEnvelope `json:"message"`
}

type MessageEnvelope struct {
	Message *MessagePayload `json:"message"`
}

type MessagePayload struct {
	Text *string `json:"text"`
}

var (
	errNoOutputGroups = errors.New("response has no output groups")
	errNoOutputs      = errors.New("first output group has no outputs")
	errNoMessage      = errors.New("first output has no message")
	errNoText         = errors.New("message has no text")
)

func newRunRequest(message string) RunRequest {
	return RunRequest{
		InputValue: message,
		InputType:  inputTypeChat,
		OutputType: outputTypeChat,
	}
}

// decodeReply reads a run response and returns the assistant text.
// Any shape mismatch is a *ProcessingError.
func decodeReply(r io.Reader) (string, error) {
	var resp RunResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return "", &ProcessingError{Err: fmt.Errorf("decode run response: %w", err)}
	}
	text, err := resp.Text()
	if err != nil {
		return "", &ProcessingError{Err: err}
	}
	return text, nil
}

// Text walks the fixed reply path
func (r RunResponse) Text() (string, error) {
	if len(r.Outputs) == 0 {
		return "", errNoOutputGroups
	}
	group := r.Outputs[0]
	if len(group.Outputs) == 0 {
		return "", errNoOutputs
	}
	envelope := group.Outputs[0].Outputs.Message
	if envelope == nil || envelope.Message == nil {
		return "", errNoMessage
	}
	if envelope.Message.Text == nil {
		return "", errNoText
	}
	return *envelope.Message.Text, nil
}
