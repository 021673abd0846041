package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultNtfyServer is used when no server is configured.
const DefaultNtfyServer = "https://ntfy.sh"

const userAgent = "claude-notify"

// NtfyOptions holds the resolved ntfy destination.
type NtfyOptions struct {
	Server string
	Topic  string
	Token  string
}

// NtfySender publishes payloads to an ntfy topic.
type NtfySender struct {
	server string
	topic  string
	token  string
	client *http.Client
}

// NewNtfySender builds an ntfy sender. A missing topic is not an error here;
// it is reported by Send so the failure stays scoped to the ntfy channel.
func NewNtfySender(opts NtfyOptions, client *http.Client) *NtfySender {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	server := strings.TrimRight(strings.TrimSpace(opts.Server), "/")
	if server == "" {
		server = DefaultNtfyServer
	}
	return &NtfySender{
		server: server,
		topic:  strings.Trim(strings.TrimSpace(opts.Topic), "/"),
		token:  strings.TrimSpace(opts.Token),
		client: client,
	}
}

// Endpoint returns the URL messages are posted to.
func (n *NtfySender) Endpoint() string {
	return n.server + "/" + n.topic
}

// Send posts the message body to {server}/{topic}.
func (n *NtfySender) Send(ctx context.Context, p Payload) error {
	if n.topic == "" {
		return ErrTopicRequired
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Endpoint(), strings.NewReader(p.Message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if p.Title != "" {
		req.Header.Set("Title", p.Title)
	}
	req.Header.Set("Priority", strconv.Itoa(p.EffectivePriority()))
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
