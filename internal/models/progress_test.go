package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress Progress
		fraction float64
		percent  int
		complete bool
	}{
		{name: "no items", progress: Progress{Done: 0, Total: 0}, fraction: 0, percent: 0, complete: true},
		{name: "none done", progress: Progress{Done: 0, Total: 3}, fraction: 0, percent: 0, complete: false},
		{name: "one of three", progress: Progress{Done: 1, Total: 3}, fraction: 1.0 / 3.0, percent: 33, complete: false},
		{name: "two of three", progress: Progress{Done: 2, Total: 3}, fraction: 2.0 / 3.0, percent: 67, complete: false},
		{name: "all done", progress: Progress{Done: 3, Total: 3}, fraction: 1, percent: 100, complete: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.fraction, tt.progress.Fraction(), 1e-9)
			assert.Equal(t, tt.percent, tt.progress.Percent())
			assert.Equal(t, tt.complete, tt.progress.Complete())
		})
	}
}

func TestAcceptStatus(t *testing.T) {
	assert.Equal(t, 1, AcceptStatusFromBool(true))
	assert.Equal(t, 0, AcceptStatusFromBool(false))

	a := &Annotation{AcceptStatus: 1}
	assert.True(t, a.Accepted())
	a.AcceptStatus = 0
	assert.False(t, a.Accepted())
}
