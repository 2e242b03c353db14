package domain

// Song is one row of the songs dimension table, partitioned on disk by
// (year, artist_id). Partition values are kept in-file as well, so reads
// never depend on parsing directory names.
type Song struct {
	SongID   string  `parquet:"song_id"`
	Title    string  `parquet:"title"`
	ArtistID string  `parquet:"artist_id"`
	Year     int32   `parquet:"year"`
	Duration float64 `parquet:"duration"`
}

// TableName returns the destination table name.
func (Song) TableName() string { return "songs" }

// Artist is one row of the artists dimension table.
type Artist struct {
	ArtistID  string   `parquet:"artist_id"`
	Name      string   `parquet:"name"`
	Location  string   `parquet:"location"`
	Latitude  *float64 `parquet:"latitude,optional"`
	Longitude *float64 `parquet:"longitude,optional"`
}

// TableName returns the destination table name.
func (Artist) TableName() string { return "artists" }
