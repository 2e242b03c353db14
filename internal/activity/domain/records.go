// Package domain describes the user-activity dataset: the raw log record,
// the user and time dimension tables and the songplays fact table.
package domain

import (
	"encoding/json"
	"fmt"

	"github.com/soundlake/lakehouse/internal/lake"
)

// PageNextSong is the action label marking a playback event. Records with
// any other page feed nothing downstream.
const PageNextSong = "NextSong"

// ActivityRecord is one raw line of the user-activity log dataset. Ts is the
// event time in epoch milliseconds; it is null for a handful of malformed
// sessions, which the time table excludes.
type ActivityRecord struct {
	Artist        string  `json:"artist"`
	Auth          string  `json:"auth"`
	FirstName     string  `json:"firstName"`
	Gender        string  `json:"gender"`
	ItemInSession int64   `json:"itemInSession"`
	LastName      string  `json:"lastName"`
	Length        float64 `json:"length"`
	Level         string  `json:"level"`
	Location      string  `json:"location"`
	Method        string  `json:"method"`
	Page          string  `json:"page"`
	Registration  float64 `json:"registration"`
	SessionID     int64   `json:"sessionId"`
	Song          string  `json:"song"`
	Status        int     `json:"status"`
	Ts            *int64  `json:"ts"`
	UserAgent     string  `json:"userAgent"`
	UserID        string  `json:"userId"`
}

// DecodeActivityRecord parses one NDJSON line. A line that does not match
// the activity schema is fatal for the whole run.
func DecodeActivityRecord(line []byte) (ActivityRecord, error) {
	var rec ActivityRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return ActivityRecord{}, fmt.Errorf("%w: activity record: %v", lake.ErrSchema, err)
	}
	return rec, nil
}
