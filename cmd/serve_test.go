package cmd

import (
	"testing"
	"time"
)

func TestHandlerTimeout(t *testing.T) {
	tests := []struct {
		upstream time.Duration
		want     time.Duration
	}{
		{0, 0},
		{-time.Second, 0},
		{10 * time.Second, 15 * time.Second},
	}
	for _, tt := range tests {
		if got := handlerTimeout(tt.upstream); got != tt.want {
			t.Errorf("handlerTimeout(%v) = %v, want %v", tt.upstream, got, tt.want)
		}
	}
}
