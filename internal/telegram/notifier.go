package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"reviewsclient/internal/logging"
	"reviewsclient/internal/notify"
)

const DefaultAPIBase = "https://api.telegram.org"

// Notifier forwards messages to one Telegram chat.
type Notifier struct {
	botToken string
	chatID   string
	client   *http.Client
	apiBase  string
}

// New returns notify.Noop when the bot is not configured.
func New(botToken, chatID string) notify.Notifier {
	botToken, chatID = strings.TrimSpace(botToken), strings.TrimSpace(chatID)
	if botToken == "" || chatID == "" {
		return notify.Noop{}
	}
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		client:   defaultHTTPClient,
		apiBase:  DefaultAPIBase,
	}
}

// WithAPIBase points the notifier at another Bot API host (tests, proxies).
func (n *Notifier) WithAPIBase(base string, client *http.Client) *Notifier {
	n.apiBase = strings.TrimRight(base, "/")
	if client != nil {
		n.client = client
	}
	return n
}

func (n *Notifier) Notify(ctx context.Context, msg string) {
	if n == nil || n.botToken == "" {
		return
	}
	if err := n.send(ctx, msg); err != nil {
		logging.From(ctx).Warn("telegram.send", "err", err)
	}
}

var defaultHTTPClient = &http.Client{
	Timeout: 5 * time.Second,
}

func (n *Notifier) send(ctx context.Context, msg string) error {
	payload := map[string]string{
		"chat_id": n.chatID,
		"text":    msg,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status %s", resp.Status)
	}
	return nil
}
