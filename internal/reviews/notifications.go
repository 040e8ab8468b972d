package reviews

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"reviewsclient/internal/dispatch"
	"reviewsclient/internal/logging"
)

type Notification struct {
	ID   string
	Read bool
}

const unreadCountPath = "/api/notifications/unread_count/"

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.d.Do(ctx, dispatch.Request{Method: http.MethodGet, Path: unreadCountPath}, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// MarkAsRead has no visible effect; the next poll picks up the new count.
func (c *Client) MarkAsRead(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/notifications/%s/mark_as_read/", url.PathEscape(id))
	if err := c.d.Do(ctx, dispatch.Request{Method: http.MethodPost, Path: path}, nil); err != nil {
		logging.From(ctx).Warn("reviews.mark_as_read", "id", id, "err", err)
		return err
	}
	return nil
}
