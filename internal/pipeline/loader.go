package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/source"
	"github.com/theirongolddev/bburn/internal/store"
)

// ErrNoSheetFetcher is returned when a sheet is requested without a client.
var ErrNoSheetFetcher = errors.New("no Google Sheets client configured")

// Request names the data source to load. The first set field wins, in the
// order File, Sheet, DB, Sample. An empty request loads an empty record set.
type Request struct {
	File   string
	Sheet  string
	DB     string
	Table  string
	Sample bool
}

// IsZero reports whether no source was requested.
func (r Request) IsZero() bool {
	return r.File == "" && r.Sheet == "" && r.DB == "" && !r.Sample
}

// Describe returns a short human label for the source.
func (r Request) Describe() string {
	switch {
	case r.File != "":
		return r.File
	case r.Sheet != "":
		return "sheet " + r.Sheet
	case r.DB != "":
		return fmt.Sprintf("%s:%s", r.DB, r.Table)
	case r.Sample:
		return "sample data"
	}
	return "no data"
}

// SheetFetcher retrieves the first worksheet behind a Google Sheets link.
type SheetFetcher interface {
	Fetch(ctx context.Context, ref string) (*model.RecordSet, error)
}

// ProgressFunc is called as loading moves through its stages.
type ProgressFunc func(stage string)

// LoadOptions carries the collaborators a load may need.
type LoadOptions struct {
	Sheets   SheetFetcher
	Progress ProgressFunc
}

// Load reads the requested source into a new session. Source failures are
// returned as-is; nothing is retried.
func Load(ctx context.Context, req Request, opts LoadOptions) (*Session, error) {
	progress := opts.Progress
	if progress == nil {
		progress = func(string) {}
	}

	var (
		rs  *model.RecordSet
		err error
	)
	switch {
	case req.File != "":
		progress("reading " + req.File)
		rs, err = source.Open(req.File)
	case req.Sheet != "":
		if opts.Sheets == nil {
			return nil, ErrNoSheetFetcher
		}
		progress("fetching sheet")
		rs, err = opts.Sheets.Fetch(ctx, req.Sheet)
	case req.DB != "":
		progress("reading table " + req.Table)
		rs, err = loadTable(ctx, req.DB, req.Table)
	case req.Sample:
		rs = source.Sample()
	default:
		rs = &model.RecordSet{}
	}
	if err != nil {
		return nil, err
	}

	progress(fmt.Sprintf("loaded %d rows", rs.Len()))
	return NewSession(rs, req.Describe()), nil
}

func loadTable(ctx context.Context, path, table string) (*model.RecordSet, error) {
	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.ReadTable(ctx, table)
}
