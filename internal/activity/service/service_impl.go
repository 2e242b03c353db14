package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/soundlake/lakehouse/internal/activity/domain"
	catalogdomain "github.com/soundlake/lakehouse/internal/catalog/domain"
	"github.com/soundlake/lakehouse/internal/dataset"
	"github.com/soundlake/lakehouse/internal/lake"
	"github.com/soundlake/lakehouse/internal/lake/ndjson"
	"github.com/soundlake/lakehouse/internal/lake/parquetfs"
	"github.com/soundlake/lakehouse/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// recordPattern matches the year/month sharded layout of the activity logs.
const recordPattern = "log_data/*/*/*.json"

type Params struct {
	fx.In

	Log     *zap.Logger
	Lake    *lake.Lake
	GenID   *snowflake.Node
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	lake    *lake.Lake
	genID   *snowflake.Node
	metrics *metrics.Metrics
}

func NewService(p Params) activitydomain.Service {
	return &Service{
		log:     p.Log.Named("activity.service"),
		lake:    p.Lake,
		genID:   p.GenID,
		metrics: p.Metrics,
	}
}

func (s *Service) Run(ctx context.Context) error {
	records, err := s.readRecords(ctx)
	if err != nil {
		return err
	}
	s.metrics.RecordsRead(ctx, "log_data", int64(len(records)))

	plays := filterPlays(records)
	s.log.Info("activity records filtered",
		zap.Int("records", len(records)),
		zap.Int("playbacks", len(plays)),
	)

	users := buildUsers(plays)
	if err := parquetfs.Write(ctx, s.lake.Out, "users", users, nil); err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	s.metrics.RowsWritten(ctx, "users", int64(len(users)))
	s.log.Info("users table written", zap.Int("rows", len(users)))

	times := buildTimeRows(plays)
	if err := parquetfs.Write(ctx, s.lake.Out, "time", times, timePartitions); err != nil {
		return fmt.Errorf("write time: %w", err)
	}
	s.metrics.RowsWritten(ctx, "time", int64(len(times)))
	s.log.Info("time table written", zap.Int("rows", len(times)))

	// The fact step re-reads songs from the lake rather than from memory:
	// the catalog pipeline must already have made it durable.
	songs, err := parquetfs.Read[catalogdomain.Song](ctx, s.lake.Out, "songs")
	if err != nil {
		return fmt.Errorf("read songs for fact join: %w", err)
	}

	events := s.buildSongplays(plays, songs)
	if err := parquetfs.Write(ctx, s.lake.Out, "songplays", events, nil); err != nil {
		return fmt.Errorf("write songplays: %w", err)
	}
	s.metrics.RowsWritten(ctx, "songplays", int64(len(events)))
	s.log.Info("songplays table written", zap.Int("rows", len(events)))

	return nil
}

func (s *Service) readRecords(ctx context.Context) ([]activitydomain.ActivityRecord, error) {
	src := ndjson.NewSource(s.lake.In)
	var records []activitydomain.ActivityRecord
	err := src.Each(ctx, recordPattern, func(line []byte) error {
		rec, err := activitydomain.DecodeActivityRecord(line)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func filterPlays(records []activitydomain.ActivityRecord) []activitydomain.ActivityRecord {
	plays := make([]activitydomain.ActivityRecord, 0, len(records))
	for _, rec := range records {
		if rec.Page == activitydomain.PageNextSong {
			plays = append(plays, rec)
		}
	}
	return plays
}

// buildUsers is the users derivation: filter null keys, project the five
// user columns, distinct on the full tuple. A level change therefore yields
// one surviving row per level.
func buildUsers(plays []activitydomain.ActivityRecord) []activitydomain.User {
	rows := make([]activitydomain.User, 0, len(plays))
	for _, rec := range plays {
		if rec.UserID == "" {
			continue
		}
		rows = append(rows, activitydomain.User{
			UserID:    rec.UserID,
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
			Gender:    rec.Gender,
			Level:     rec.Level,
		})
	}
	return dataset.DistinctSorted(rows, func(r activitydomain.User) string {
		return dataset.Key(r.UserID, r.FirstName, r.LastName, r.Gender, r.Level)
	})
}

// buildTimeRows decomposes each playback timestamp, distinct on start_time.
func buildTimeRows(plays []activitydomain.ActivityRecord) []activitydomain.TimeRow {
	rows := make([]activitydomain.TimeRow, 0, len(plays))
	for _, rec := range plays {
		if rec.Ts == nil {
			continue
		}
		rows = append(rows, activitydomain.DecomposeTime(*rec.Ts))
	}
	return dataset.DistinctSorted(rows, func(r activitydomain.TimeRow) string {
		return dataset.Int(r.StartTime.UnixMilli())
	})
}

// buildSongplays left-joins the playback records against the songs dimension
// on exact title equality. Every playback yields at least one row; an
// ambiguous title multiplies rows, one per matching song.
func (s *Service) buildSongplays(plays []activitydomain.ActivityRecord, songs []catalogdomain.Song) []activitydomain.Songplay {
	byTitle := make(map[string][]catalogdomain.Song, len(songs))
	for _, song := range songs {
		byTitle[song.Title] = append(byTitle[song.Title], song)
	}

	events := make([]activitydomain.Songplay, 0, len(plays))
	for _, rec := range plays {
		var start time.Time
		if rec.Ts != nil {
			start = activitydomain.StartTime(*rec.Ts)
		}
		base := activitydomain.Songplay{
			StartTime: start,
			UserID:    rec.UserID,
			Level:     rec.Level,
			SessionID: rec.SessionID,
			Location:  rec.Location,
			UserAgent: rec.UserAgent,
		}

		matches := byTitle[rec.Song]
		if len(matches) == 0 {
			base.SongplayID = s.genID.Generate().Int64()
			events = append(events, base)
			continue
		}
		if len(matches) > 1 {
			s.log.Debug("ambiguous song title in fact join",
				zap.String("title", rec.Song),
				zap.Int("matches", len(matches)),
			)
		}
		for _, song := range matches {
			row := base
			row.SongplayID = s.genID.Generate().Int64()
			songID := song.SongID
			artistID := song.ArtistID
			row.SongID = &songID
			row.ArtistID = &artistID
			events = append(events, row)
		}
	}
	return events
}

func timePartitions(r activitydomain.TimeRow) []parquetfs.Partition {
	return []parquetfs.Partition{
		{Column: "year", Value: dataset.Int(int64(r.Year))},
		{Column: "month", Value: dataset.Int(int64(r.Month))},
	}
}
