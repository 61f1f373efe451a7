// Package export writes training-load time series to parquet files
// for analysis in external tooling.
package export

import (
	"fmt"
	"os"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"trainlab/internal/trainload"
)

type loadRow struct {
	Date    string  `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CTL     float64 `parquet:"name=ctl, type=DOUBLE"`
	ATL     float64 `parquet:"name=atl, type=DOUBLE"`
	TSB     float64 `parquet:"name=tsb, type=DOUBLE"`
	Form    string  `parquet:"name=form, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	IsIdeal bool    `parquet:"name=is_ideal, type=BOOLEAN"`
}

// MarshalSeries encodes actual and ideal load series as one parquet
// table. Either slice may be empty.
func MarshalSeries(actual, ideal []trainload.Point) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(loadRow), 4)
	if err != nil {
		return nil, fmt.Errorf("creating parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	write := func(points []trainload.Point, isIdeal bool) error {
		for _, p := range points {
			row := loadRow{
				Date:    p.Date.Format("2006-01-02"),
				CTL:     p.CTL,
				ATL:     p.ATL,
				TSB:     p.TSB,
				Form:    string(p.Form()),
				IsIdeal: isIdeal,
			}
			if err := pw.Write(row); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(actual, false); err != nil {
		_ = pw.WriteStop()
		return nil, fmt.Errorf("writing series rows: %w", err)
	}
	if err := write(ideal, true); err != nil {
		_ = pw.WriteStop()
		return nil, fmt.Errorf("writing ideal rows: %w", err)
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finishing parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("closing buffer: %w", err)
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

// WriteSeriesFile marshals the series and writes it to path
func WriteSeriesFile(path string, actual, ideal []trainload.Point) error {
	data, err := MarshalSeries(actual, ideal)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
