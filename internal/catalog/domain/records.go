// Package domain describes the catalog dataset: the raw song-metadata record
// and the two dimension tables derived from it.
package domain

import (
	"encoding/json"
	"fmt"

	"github.com/soundlake/lakehouse/internal/lake"
)

// CatalogRecord is one raw line of the song-metadata dataset.
type CatalogRecord struct {
	NumSongs        int      `json:"num_songs"`
	SongID          string   `json:"song_id"`
	Title           string   `json:"title"`
	ArtistID        string   `json:"artist_id"`
	ArtistName      string   `json:"artist_name"`
	ArtistLocation  string   `json:"artist_location"`
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
	Year            int32    `json:"year"`
	Duration        float64  `json:"duration"`
}

// DecodeCatalogRecord parses one NDJSON line. A line that does not match the
// catalog schema is fatal for the whole run.
func DecodeCatalogRecord(line []byte) (CatalogRecord, error) {
	var rec CatalogRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return CatalogRecord{}, fmt.Errorf("%w: catalog record: %v", lake.ErrSchema, err)
	}
	return rec, nil
}
