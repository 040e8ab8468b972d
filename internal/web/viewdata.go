package web

import (
	"time"

	"reviewsclient/internal/search"
)

type alertData struct {
	Message string
}

type reloadData struct {
	At time.Time
}

type counterData struct {
	ReviewID string
	Count    int
}

// badgeData mirrors the notification badge: Count is only shown when Visible.
type badgeData struct {
	Count   int
	Visible bool
}

type resultsData struct {
	Results []search.Result
}
