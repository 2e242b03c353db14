// Package lake defines the storage boundary of the ETL: the filesystems raw
// records are read from and derived tables are written to, plus the error
// kinds every storage failure maps onto.
package lake

import (
	"errors"

	"github.com/spf13/afero"

	"github.com/soundlake/lakehouse/internal/config"
)

var (
	// ErrSchema reports a raw record whose shape does not match the expected
	// dataset schema. Fatal: the run aborts on the first occurrence.
	ErrSchema = errors.New("schema_mismatch")

	// ErrStorage reports an unreadable source or unwritable destination,
	// including the songs table being absent when the fact step re-reads it.
	ErrStorage = errors.New("storage_unavailable")
)

// Lake bundles the input and output filesystems of a run. Production wiring
// roots both at the configured base paths; tests swap in afero.NewMemMapFs.
type Lake struct {
	In  afero.Fs
	Out afero.Fs
}

// New roots the lake at the configured input and output base paths.
func New(cfg config.Config) *Lake {
	base := afero.NewOsFs()
	return &Lake{
		In:  afero.NewBasePathFs(base, cfg.InputPath),
		Out: afero.NewBasePathFs(base, cfg.OutputPath),
	}
}
