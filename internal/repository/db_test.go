package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolSize(t *testing.T) {
	tests := []struct {
		name             string
		maxOpen, maxIdle int
		wantOpen         int
		wantIdle         int
	}{
		{name: "configured", maxOpen: 10, maxIdle: 5, wantOpen: 10, wantIdle: 5},
		{name: "single connection raised", maxOpen: 1, maxIdle: 1, wantOpen: 2, wantIdle: 1},
		{name: "idle capped at open", maxOpen: 3, maxIdle: 8, wantOpen: 3, wantIdle: 3},
		{name: "zero idle", maxOpen: 4, maxIdle: 0, wantOpen: 4, wantIdle: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, idle := poolSize(tt.maxOpen, tt.maxIdle)
			assert.Equal(t, tt.wantOpen, open)
			assert.Equal(t, tt.wantIdle, idle)
		})
	}
}
