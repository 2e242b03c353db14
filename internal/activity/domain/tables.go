package domain

import (
	"time"
)

// User is one row of the users dimension table. Dedup is on the full tuple,
// so a user whose level changed mid-dataset keeps one row per distinct tuple.
type User struct {
	UserID    string `parquet:"user_id"`
	FirstName string `parquet:"first_name"`
	LastName  string `parquet:"last_name"`
	Gender    string `parquet:"gender"`
	Level     string `parquet:"level"`
}

// TableName returns the destination table name.
func (User) TableName() string { return "users" }

// TimeRow is one row of the time dimension table, partitioned on disk by
// (year, month). Weekday is 1=Sunday through 7=Saturday; Week is the ISO
// 8601 week of year.
type TimeRow struct {
	StartTime time.Time `parquet:"start_time,timestamp(millisecond)"`
	Hour      int32     `parquet:"hour"`
	Day       int32     `parquet:"day"`
	Week      int32     `parquet:"week"`
	Month     int32     `parquet:"month"`
	Year      int32     `parquet:"year"`
	Weekday   int32     `parquet:"weekday"`
}

// TableName returns the destination table name.
func (TimeRow) TableName() string { return "time" }

// Songplay is one row of the songplays fact table. SongID and ArtistID are
// null when the played title has no match in the songs dimension.
type Songplay struct {
	SongplayID int64     `parquet:"songplay_id"`
	StartTime  time.Time `parquet:"start_time,timestamp(millisecond)"`
	UserID     string    `parquet:"user_id"`
	Level      string    `parquet:"level"`
	SongID     *string   `parquet:"song_id,optional"`
	ArtistID   *string   `parquet:"artist_id,optional"`
	SessionID  int64     `parquet:"session_id"`
	Location   string    `parquet:"location"`
	UserAgent  string    `parquet:"user_agent"`
}

// TableName returns the destination table name.
func (Songplay) TableName() string { return "songplays" }

// StartTime converts a raw epoch-millisecond value to the instant both the
// time and songplays tables must agree on bit-for-bit.
func StartTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// DecomposeTime derives the time-table row for one raw timestamp.
func DecomposeTime(ms int64) TimeRow {
	t := StartTime(ms)
	_, week := t.ISOWeek()
	return TimeRow{
		StartTime: t,
		Hour:      int32(t.Hour()),
		Day:       int32(t.Day()),
		Week:      int32(week),
		Month:     int32(t.Month()),
		Year:      int32(t.Year()),
		Weekday:   int32(t.Weekday()) + 1,
	}
}
