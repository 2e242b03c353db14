// Package pipeline orders the two pipelines of a run. The only mandatory
// dependency edge is that the catalog pipeline's songs write completes
// before the activity pipeline's fact step reads it back.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	activitydomain "github.com/soundlake/lakehouse/internal/activity/domain"
	catalogdomain "github.com/soundlake/lakehouse/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("invalid_runner_config")

type Params struct {
	fx.In

	Log      *zap.Logger
	Catalog  catalogdomain.Service
	Activity activitydomain.Service
}

type Runner struct {
	log      *zap.Logger
	catalog  catalogdomain.Service
	activity activitydomain.Service
}

func New(p Params) (*Runner, error) {
	if p.Log == nil || p.Catalog == nil || p.Activity == nil {
		return nil, ErrInvalidConfig
	}
	return &Runner{
		log:      p.Log.Named("pipeline"),
		catalog:  p.Catalog,
		activity: p.Activity,
	}, nil
}

// Run executes one full recomputation. The first error aborts the run; there
// is no partial-success mode and no retry.
func (r *Runner) Run(ctx context.Context) error {
	log := r.log.With(zap.String("run_id", uuid.NewString()))
	started := time.Now()

	log.Info("catalog pipeline starting")
	if err := r.catalog.Run(ctx); err != nil {
		log.Error("catalog pipeline failed", zap.Error(err))
		return fmt.Errorf("catalog pipeline: %w", err)
	}
	log.Info("catalog pipeline complete", zap.Duration("elapsed", time.Since(started)))

	// songs is durable from here on; the fact join may read it back.
	activityStarted := time.Now()
	log.Info("activity pipeline starting")
	if err := r.activity.Run(ctx); err != nil {
		log.Error("activity pipeline failed", zap.Error(err))
		return fmt.Errorf("activity pipeline: %w", err)
	}
	log.Info("activity pipeline complete", zap.Duration("elapsed", time.Since(activityStarted)))

	log.Info("run complete", zap.Duration("elapsed", time.Since(started)))
	return nil
}
