package trajectory

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	_ "modernc.org/sqlite"

	"github.com/san-kum/rkode/internal/dynamo"
)

type Format string

const (
	FormatText   Format = "text"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatCSV, FormatSQLite:
		return Format(s), nil
	case "txt":
		return FormatText, nil
	case "db":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("unknown output format: %s (available: text, csv, sqlite)", s)
}

func (f Format) Ext() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatSQLite:
		return ".db"
	default:
		return ".txt"
	}
}

// FileName is the conventional per-method destination, e.g. "rk4.txt".
func FileName(method string, f Format) string {
	return method + f.Ext()
}

// Output is a sink bound to an open destination.
type Output struct {
	dynamo.Sink
	closers []func() error
}

func (o *Output) Close() error {
	var errs []error
	for i := len(o.closers) - 1; i >= 0; i-- {
		if err := o.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Create opens path for the given format. A path of "-" writes text or CSV
// to stdout. SQLite output stores the points under runID.
func Create(path string, format Format, order int, runID string) (*Output, error) {
	if format == FormatSQLite {
		if path == "-" {
			return nil, fmt.Errorf("sqlite output needs a file path")
		}
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, err
		}
		sink, err := NewSQLite(db, runID)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &Output{Sink: sink, closers: []func() error{db.Close}}, nil
	}

	var (
		w       io.Writer = os.Stdout
		closers []func() error
	)
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		w = f
		closers = append(closers, f.Close)
	}

	if format == FormatCSV {
		sink := NewCSV(w, order)
		return &Output{Sink: sink, closers: append(closers, sink.Flush)}, nil
	}
	sink := NewText(w, order)
	return &Output{Sink: sink, closers: append(closers, sink.Flush)}, nil
}
