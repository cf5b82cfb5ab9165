package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"handoff/entity"
)

const defaultSlackAPIURL = "https://slack.com/api"

type SlackClient struct {
	httpClient *http.Client
	apiURL     string
	token      string
	channel    string
}

func NewSlackClient(token, channel string) *SlackClient {
	return &SlackClient{
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		apiURL:  defaultSlackAPIURL,
		token:   token,
		channel: channel,
	}
}

type postMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// NotifyAssistanceRequested posts the ticket to the operator channel via
// chat.postMessage together with the slash command the operator replies with.
func (c *SlackClient) NotifyAssistanceRequested(ctx context.Context, event entity.AssistanceRequested) error {
	text := fmt.Sprintf(
		"A caller needs a human answer.\n"+
			"Ticket: %s\n"+
			"Conversation: %s\n"+
			"Language: %s\n"+
			"Question: %s\n"+
			"Context: %s\n"+
			"Reply with: /answer %s <your answer>",
		event.TicketID,
		event.ConversationID,
		event.Language,
		event.Question,
		event.Context,
		event.TicketID,
	)

	payload, err := json.Marshal(postMessageRequest{
		Channel: c.channel,
		Text:    text,
	})
	if err != nil {
		return fmt.Errorf("could not marshal chat.postMessage request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/chat.postMessage", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not create chat.postMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chat.postMessage call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code for POST chat.postMessage: %d", resp.StatusCode)
	}

	var body postMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("could not decode chat.postMessage response: %w", err)
	}
	if !body.OK {
		return fmt.Errorf("chat.postMessage rejected: %s", body.Error)
	}

	return nil
}
