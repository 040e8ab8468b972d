package reviews

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"reviewsclient/internal/dispatch"
)

const reportPrefix = "/report/"

// Report posts a report form to its action. Only /report/ actions are
// handled; anything else is refused before a request is made.
func (c *Client) Report(ctx context.Context, action string, form url.Values) error {
	if !strings.HasPrefix(action, reportPrefix) {
		return ErrNotReportAction
	}
	if form == nil {
		form = url.Values{}
	}
	err := c.d.Do(ctx, dispatch.Request{Method: http.MethodPost, Path: action, Form: form}, nil)
	if err != nil {
		c.alertFailure(err, MsgReportFailed)
		return err
	}
	c.page.Alert(MsgReported)
	c.page.Reload()
	return nil
}
