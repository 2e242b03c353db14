package domain

import (
	"context"
)

// Service runs the catalog pipeline: read the song-metadata dataset, derive
// the songs and artists dimension tables and overwrite them in the lake.
type Service interface {
	Run(ctx context.Context) error
}
