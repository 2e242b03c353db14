package domain

import (
	"context"
)

// Service runs the activity pipeline: read the user-activity dataset, derive
// the users and time dimension tables, then join the playback records
// against the persisted songs table into the songplays fact table. The
// catalog pipeline must have written songs before Run is called.
type Service interface {
	Run(ctx context.Context) error
}
