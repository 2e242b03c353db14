package service

import (
	"context"
	"fmt"

	catalogdomain "github.com/soundlake/lakehouse/internal/catalog/domain"
	"github.com/soundlake/lakehouse/internal/dataset"
	"github.com/soundlake/lakehouse/internal/lake"
	"github.com/soundlake/lakehouse/internal/lake/ndjson"
	"github.com/soundlake/lakehouse/internal/lake/parquetfs"
	"github.com/soundlake/lakehouse/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// recordPattern matches the year/letter sharded layout of the catalog dataset.
const recordPattern = "song_data/*/*/*/*.json"

type Params struct {
	fx.In

	Log     *zap.Logger
	Lake    *lake.Lake
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	lake    *lake.Lake
	metrics *metrics.Metrics
}

func NewService(p Params) catalogdomain.Service {
	return &Service{
		log:     p.Log.Named("catalog.service"),
		lake:    p.Lake,
		metrics: p.Metrics,
	}
}

func (s *Service) Run(ctx context.Context) error {
	records, err := s.readRecords(ctx)
	if err != nil {
		return err
	}
	s.metrics.RecordsRead(ctx, "song_data", int64(len(records)))

	songs := buildSongs(records)
	if err := parquetfs.Write(ctx, s.lake.Out, "songs", songs, songPartitions); err != nil {
		return fmt.Errorf("write songs: %w", err)
	}
	s.metrics.RowsWritten(ctx, "songs", int64(len(songs)))
	s.log.Info("songs table written", zap.Int("rows", len(songs)))

	artists := buildArtists(records)
	if err := parquetfs.Write(ctx, s.lake.Out, "artists", artists, nil); err != nil {
		return fmt.Errorf("write artists: %w", err)
	}
	s.metrics.RowsWritten(ctx, "artists", int64(len(artists)))
	s.log.Info("artists table written", zap.Int("rows", len(artists)))

	return nil
}

func (s *Service) readRecords(ctx context.Context) ([]catalogdomain.CatalogRecord, error) {
	src := ndjson.NewSource(s.lake.In)
	var records []catalogdomain.CatalogRecord
	err := src.Each(ctx, recordPattern, func(line []byte) error {
		rec, err := catalogdomain.DecodeCatalogRecord(line)
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

// buildSongs is the songs derivation: filter null keys, project the five
// song columns, distinct on the full tuple.
func buildSongs(records []catalogdomain.CatalogRecord) []catalogdomain.Song {
	rows := make([]catalogdomain.Song, 0, len(records))
	for _, rec := range records {
		if rec.SongID == "" {
			continue
		}
		rows = append(rows, catalogdomain.Song{
			SongID:   rec.SongID,
			Title:    rec.Title,
			ArtistID: rec.ArtistID,
			Year:     rec.Year,
			Duration: rec.Duration,
		})
	}
	return dataset.DistinctSorted(rows, func(r catalogdomain.Song) string {
		return dataset.Key(r.SongID, r.Title, r.ArtistID, dataset.Int(int64(r.Year)), dataset.Float(r.Duration))
	})
}

// buildArtists mirrors buildSongs for the artists projection.
func buildArtists(records []catalogdomain.CatalogRecord) []catalogdomain.Artist {
	rows := make([]catalogdomain.Artist, 0, len(records))
	for _, rec := range records {
		if rec.ArtistID == "" {
			continue
		}
		rows = append(rows, catalogdomain.Artist{
			ArtistID:  rec.ArtistID,
			Name:      rec.ArtistName,
			Location:  rec.ArtistLocation,
			Latitude:  rec.ArtistLatitude,
			Longitude: rec.ArtistLongitude,
		})
	}
	return dataset.DistinctSorted(rows, func(r catalogdomain.Artist) string {
		return dataset.Key(r.ArtistID, r.Name, r.Location, dataset.FloatPtr(r.Latitude), dataset.FloatPtr(r.Longitude))
	})
}

func songPartitions(r catalogdomain.Song) []parquetfs.Partition {
	return []parquetfs.Partition{
		{Column: "year", Value: dataset.Int(int64(r.Year))},
		{Column: "artist_id", Value: r.ArtistID},
	}
}
