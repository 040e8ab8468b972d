// Package reviews holds the per-endpoint actions of the review site: the
// notification badge count, helpful/unhelpful interactions, review reports,
// rating submission and JWT login.
//
// Each action decides for itself what the page does on success. A 401 only
// ever produces the log-in alert; the page is left as it was.
package reviews
