package charts

import (
	"bytes"
	"errors"
	"testing"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderSentiment(t *testing.T) {
	tests := []struct {
		name    string
		in      Sentiment
		wantErr error
	}{
		{"mixed", Sentiment{Positive: 5, Negative: 2, Neutral: 1}, nil},
		{"single slice", Sentiment{Positive: 3}, nil},
		{"empty", Sentiment{}, ErrNoData},
		{"negative", Sentiment{Positive: 1, Negative: -1}, ErrBadInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := RenderSentiment(&buf, tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RenderSentiment() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && !bytes.HasPrefix(buf.Bytes(), pngMagic) {
				t.Error("output is not a PNG")
			}
		})
	}
}

func TestRenderTopProducts(t *testing.T) {
	tests := []struct {
		name    string
		labels  []string
		ratings []float64
		wantErr error
	}{
		{"ok", []string{"Phone", "Laptop", "Watch"}, []float64{4.5, 3.2, 5}, nil},
		{"clamped", []string{"Oversold"}, []float64{7}, nil},
		{"many bars", []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n"}, []float64{1, 2, 3, 4, 5, 1, 2, 3, 4, 5, 1, 2, 3, 4}, nil},
		{"empty", nil, nil, ErrNoData},
		{"mismatch", []string{"a"}, []float64{1, 2}, ErrBadInput},
		{"negative", []string{"a"}, []float64{-1}, ErrBadInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := RenderTopProducts(&buf, tt.labels, tt.ratings)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RenderTopProducts() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && !bytes.HasPrefix(buf.Bytes(), pngMagic) {
				t.Error("output is not a PNG")
			}
		})
	}
}
