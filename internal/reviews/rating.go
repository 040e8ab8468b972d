package reviews

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"reviewsclient/internal/dispatch"
)

type Rating struct {
	Rating int
	Text   string
}

func (r Rating) form() url.Values {
	return url.Values{
		"rating":      {strconv.Itoa(r.Rating)},
		"review_text": {strings.TrimSpace(r.Text)},
	}
}

// RatingForm is one rendered rating form. Its Control is disabled for the
// whole submission and only comes back after an error; a successful
// submission reloads the page, which brings a fresh form.
type RatingForm struct {
	Action  string
	Control dispatch.Control
}

func NewRatingForm(action string) *RatingForm {
	return &RatingForm{Action: action}
}

func (c *Client) SubmitRating(ctx context.Context, f *RatingForm, r Rating) error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	if !f.Control.Disable() {
		return ErrInFlight
	}
	err := c.d.Do(ctx, dispatch.Request{Method: http.MethodPost, Path: f.Action, Form: r.form()}, nil)
	if err != nil {
		if dispatch.Classify(err) == dispatch.KindAuthRequired {
			c.page.Alert(MsgAuthRequired)
		} else if msg := dispatch.ServerMessage(err); msg != "" {
			c.page.Alert(msg)
		} else {
			c.page.Alert(MsgRatingFailed)
		}
		f.Control.Enable()
		return err
	}
	c.page.Reload()
	return nil
}
