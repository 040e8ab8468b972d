package reviews

import (
	"context"
	"errors"

	"reviewsclient/internal/dispatch"
)

const (
	MsgAuthRequired   = "You must log in to continue."
	MsgInteractFailed = "Failed to send your feedback."
	MsgReportFailed   = "Failed to send the report."
	MsgReported       = "The review has been reported."
	MsgRatingFailed   = "Failed to submit your rating."
)

var (
	ErrNotReportAction = errors.New("form action is not a report endpoint")
	ErrInFlight        = errors.New("submission already in progress")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// Page is the part of the rendered page the actions touch.
type Page interface {
	Alert(msg string)
	Reload()
	SetCounter(reviewID string, n int)
}

type Doer interface {
	Do(ctx context.Context, r dispatch.Request, out any) error
}

type Client struct {
	d    Doer
	page Page
}

func NewClient(d Doer, page Page) *Client {
	return &Client{d: d, page: page}
}

// alertFailure shows the auth alert for 401s and fallback for anything else.
func (c *Client) alertFailure(err error, fallback string) {
	switch dispatch.Classify(err) {
	case dispatch.KindAuthRequired:
		c.page.Alert(MsgAuthRequired)
	case dispatch.KindFailure:
		c.page.Alert(fallback)
	}
}
