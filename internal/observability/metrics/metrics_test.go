package metrics

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("table", "songs"),
		attribute.String("song_id", "SOAAA111"),
		attribute.String("dataset", "song_data"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "table" && attrs[1].Key != "table" {
		t.Fatalf("expected table to be retained")
	}
	if attrs[0].Key != "dataset" && attrs[1].Key != "dataset" {
		t.Fatalf("expected dataset to be retained")
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordsRead(t.Context(), "song_data", 1)
	m.RowsWritten(t.Context(), "songs", 1)
}
