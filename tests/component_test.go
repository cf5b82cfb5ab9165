package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"handoff/entity"
	"handoff/gateway"
	"handoff/service"
	"handoff/signature"
)

const (
	httpAddress   = "127.0.0.1:18808"
	signingSecret = "component-test-signing-secret"
)

func TestComponent(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())

	slackMock := &gateway.SlackMock{}

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		svc := service.New(httpAddress, signingSecret, slackMock)
		assert.NoError(t, svc.Run(ctx))
	}()

	defer func() {
		http.DefaultClient.CloseIdleConnections()
		cancel()
		<-finished
	}()

	waitForHttpServer(t)

	t.Run("answered round trip", func(t *testing.T) {
		ticketID := createTicket(t, "is he covered?")

		assert.Eventually(t, func() bool {
			for _, n := range slackMock.Notified() {
				if n.TicketID == ticketID {
					return n.Question == "is he covered?"
				}
			}
			return false
		}, 5*time.Second, 50*time.Millisecond, "operator was never notified")

		type waitOutcome struct {
			statusCode int
			result     entity.WaitResult
		}
		outcome := make(chan waitOutcome, 1)
		go func() {
			statusCode, result := waitForTicket(t, ticketID, 30)
			outcome <- waitOutcome{statusCode, result}
		}()

		// The answer may land before or after the waiter attaches; the
		// one-answer buffer makes both orderings deliver it exactly once.
		time.Sleep(100 * time.Millisecond)

		reply := sendSlashCommand(t, time.Now(), "/answer", ticketID+" yes  he   is covered", http.StatusOK)
		assert.Contains(t, reply, "Answer delivered")

		got := <-outcome
		require.Equal(t, http.StatusOK, got.statusCode)
		assert.Equal(t, entity.WaitStatusAnswered, got.result.Status)
		assert.Equal(t, "yes he is covered", got.result.Answer)
	})

	t.Run("timeout when nobody answers", func(t *testing.T) {
		ticketID := createTicket(t, "still there?")

		start := time.Now()
		statusCode, result := waitForTicket(t, ticketID, 1)
		require.Equal(t, http.StatusOK, statusCode)
		assert.Equal(t, entity.WaitStatusTimeout, result.Status)
		assert.InDelta(t, 1.0, time.Since(start).Seconds(), 0.8)

		// The ticket is gone, a late answer is acknowledged as a no-op.
		reply := sendSlashCommand(t, time.Now(), "/answer", ticketID+" too late", http.StatusOK)
		assert.Contains(t, reply, "not found")
	})

	t.Run("wait on unknown ticket", func(t *testing.T) {
		statusCode, result := waitForTicket(t, "no-such-ticket", 1)
		assert.Equal(t, http.StatusNotFound, statusCode)
		assert.Equal(t, entity.WaitStatusNotFound, result.Status)
	})

	t.Run("unknown command is acknowledged", func(t *testing.T) {
		reply := sendSlashCommand(t, time.Now(), "/weather", "London", http.StatusOK)
		assert.Contains(t, reply, "Nothing to do")
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		form := url.Values{"command": {"/answer"}, "text": {"tkt yes"}}
		body := form.Encode()
		ts := strconv.FormatInt(time.Now().Unix(), 10)

		req := newSlackRequest(t, body, ts, "v0=0000000000000000000000000000000000000000000000000000000000000000")
		resp := lo.Must(http.DefaultClient.Do(req))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("stale timestamp is rejected despite valid signature", func(t *testing.T) {
		sendSlashCommand(t, time.Now().Add(-301*time.Second), "/answer", "tkt yes", http.StatusUnauthorized)
	})

	t.Run("interactivity acknowledgment", func(t *testing.T) {
		body := `{"type":"block_actions"}`
		ts := strconv.FormatInt(time.Now().Unix(), 10)
		sig := signature.Sign(signingSecret, ts, []byte(body))

		req := lo.Must(http.NewRequest(
			http.MethodPost,
			fmt.Sprintf("http://%s/slack/interact", httpAddress),
			strings.NewReader(body),
		))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Slack-Request-Timestamp", ts)
		req.Header.Set("X-Slack-Signature", sig)

		resp := lo.Must(http.DefaultClient.Do(req))
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ok", string(lo.Must(io.ReadAll(resp.Body))))
	})
}

func waitForHttpServer(t *testing.T) {
	t.Helper()

	require.Eventually(
		t,
		func() bool {
			resp, err := http.Get(fmt.Sprintf("http://%s/health", httpAddress))
			if err != nil {
				return false
			}
			defer resp.Body.Close()

			return resp.StatusCode == http.StatusOK
		},
		10*time.Second,
		50*time.Millisecond,
	)
}

func createTicket(t *testing.T, question string) string {
	t.Helper()

	payload := fmt.Sprintf(
		`{"conversation_id":"conv-1","language":"en","question":%q,"context":"policy 7"}`,
		question,
	)
	resp, err := http.Post(
		fmt.Sprintf("http://%s/assist/request", httpAddress),
		"application/json",
		strings.NewReader(payload),
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var response struct {
		TicketID string `json:"ticket_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	require.NotEmpty(t, response.TicketID)

	return response.TicketID
}

func waitForTicket(t *testing.T, ticketID string, timeoutSeconds int) (int, entity.WaitResult) {
	t.Helper()

	resp, err := http.Get(fmt.Sprintf(
		"http://%s/assist/wait?ticket_id=%s&timeout=%d",
		httpAddress, url.QueryEscape(ticketID), timeoutSeconds,
	))
	require.NoError(t, err)
	defer resp.Body.Close()

	var result entity.WaitResult
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	}

	return resp.StatusCode, result
}

func sendSlashCommand(t *testing.T, signedAt time.Time, command, text string, expectedStatusCode int) string {
	t.Helper()

	form := url.Values{
		"command":   {command},
		"text":      {text},
		"user_name": {"alice"},
	}
	body := form.Encode()
	ts := strconv.FormatInt(signedAt.Unix(), 10)

	req := newSlackRequest(t, body, ts, signature.Sign(signingSecret, ts, []byte(body)))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, expectedStatusCode, resp.StatusCode)

	return string(lo.Must(io.ReadAll(resp.Body)))
}

func newSlackRequest(t *testing.T, body, timestamp, sig string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(
		http.MethodPost,
		fmt.Sprintf("http://%s/slack/command", httpAddress),
		strings.NewReader(body),
	)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", sig)

	return req
}
