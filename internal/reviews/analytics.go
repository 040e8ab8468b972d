package reviews

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"reviewsclient/internal/dispatch"
)

type ProductRating struct {
	ProductID     int     `json:"product_id"`
	ProductName   string  `json:"product_name"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

// TopRatedProducts feeds the top products chart.
func (c *Client) TopRatedProducts(ctx context.Context, days int) ([]ProductRating, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out []ProductRating
	err := c.d.Do(ctx, dispatch.Request{Method: http.MethodGet, Path: "/api/top-rated-products/", Query: q}, &out)
	return out, err
}
