package reviews

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"reviewsclient/internal/dispatch"
)

type Interaction struct {
	ReviewID string
	Helpful  bool
}

// InteractResult is the server's answer. NewCount is only set by servers
// that return the updated counter directly.
type InteractResult struct {
	NewCount *int   `json:"new_count"`
	Message  string `json:"message"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
	UserVote *bool  `json:"user_vote"`
}

// Interact sends exactly one vote. On success the review's counter is
// patched when the server returned one, otherwise the page reloads.
func (c *Client) Interact(ctx context.Context, in Interaction) (InteractResult, error) {
	var res InteractResult
	err := c.d.Do(ctx, dispatch.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/reviews/%s/interact/", url.PathEscape(in.ReviewID)),
		JSON:   map[string]bool{"helpful": in.Helpful},
	}, &res)
	if err != nil {
		c.alertFailure(err, MsgInteractFailed)
		return res, err
	}
	if res.NewCount != nil {
		c.page.SetCounter(in.ReviewID, *res.NewCount)
	} else {
		c.page.Reload()
	}
	return res, nil
}
