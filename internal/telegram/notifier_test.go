package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewsclient/internal/notify"
)

func TestNewUnconfiguredIsNoop(t *testing.T) {
	for _, tc := range [][2]string{{"", ""}, {"token", ""}, {"", "123"}, {"  ", " "}} {
		if _, ok := New(tc[0], tc[1]).(notify.Noop); !ok {
			t.Errorf("New(%q, %q) should be Noop", tc[0], tc[1])
		}
	}
}

func TestNotifySendsMessage(t *testing.T) {
	var (
		gotPath string
		got     map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := New("abc:123", "42").(*Notifier).WithAPIBase(srv.URL, srv.Client())
	n.Notify(context.Background(), "You have 2 unread notifications.")

	if gotPath != "/botabc:123/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if got["chat_id"] != "42" || got["text"] != "You have 2 unread notifications." {
		t.Errorf("payload = %v", got)
	}
}

func TestSendReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()
	n := New("t", "1").(*Notifier).WithAPIBase(srv.URL, srv.Client())
	if err := n.send(context.Background(), "x"); err == nil {
		t.Error("expected error on 401")
	}
}
