package export

import (
	"bytes"
	"testing"
	"time"

	"trainlab/internal/trainload"
)

func TestMarshalSeries(t *testing.T) {
	day := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	actual := []trainload.Point{
		{Date: day, CTL: 50, ATL: 55, TSB: -5},
		{Date: day.AddDate(0, 0, 1), CTL: 51, ATL: 58, TSB: -7},
	}
	ideal := []trainload.Point{
		{Date: day, CTL: 50, ATL: 50, TSB: 0},
	}

	data, err := MarshalSeries(actual, ideal)
	if err != nil {
		t.Fatalf("MarshalSeries failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty parquet output")
	}

	// Parquet files start and end with the PAR1 magic
	magic := []byte("PAR1")
	if !bytes.HasPrefix(data, magic) {
		t.Error("output missing parquet header magic")
	}
	if !bytes.HasSuffix(data, magic) {
		t.Error("output missing parquet footer magic")
	}
}

func TestMarshalSeriesEmpty(t *testing.T) {
	data, err := MarshalSeries(nil, nil)
	if err != nil {
		t.Fatalf("MarshalSeries failed on empty input: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected a valid empty parquet file")
	}
}
