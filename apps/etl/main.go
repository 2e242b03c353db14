package main

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/soundlake/lakehouse/internal/activity"
	"github.com/soundlake/lakehouse/internal/catalog"
	"github.com/soundlake/lakehouse/internal/config"
	"github.com/soundlake/lakehouse/internal/lake"
	"github.com/soundlake/lakehouse/internal/observability"
	"github.com/soundlake/lakehouse/internal/pipeline"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		lake.Module,

		catalog.Module,
		activity.Module,
		pipeline.Module,

		// No server module: one synchronous run, then shutdown.
		fx.Invoke(RunPipelines),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func RunPipelines(lc fx.Lifecycle, sd fx.Shutdowner, runner *pipeline.Runner, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := runner.Run(context.Background()); err != nil {
					log.Error("etl run failed", zap.Error(err))
					_ = sd.Shutdown(fx.ExitCode(1))
					return
				}
				_ = sd.Shutdown()
			}()
			return nil
		},
	})
}
