package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArchiveRepository_PruneKeepsEverythingWithoutPositiveLimit(t *testing.T) {
	tests := []struct {
		name string
		keep int
	}{
		{name: "zero", keep: 0},
		{name: "negative", keep: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := &archiveRepository{}

			// Act
			removed, err := repo.Prune(context.Background(), tt.keep)

			// Assert
			assert.NoError(t, err)
			assert.Zero(t, removed)
		})
	}
}
