// Package sheets reads budget tables from Google Sheets.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/source"
)

const defaultTimeout = 30 * time.Second

var (
	// ErrNoCredentials indicates no service-account key was configured.
	ErrNoCredentials = errors.New("sheets: no service account credentials (set GOOGLE_APPLICATION_CREDENTIALS or sheets.credentials_file)")
	// ErrUnauthorized indicates the credentials cannot read the spreadsheet.
	ErrUnauthorized = errors.New("sheets: access denied (share the sheet with the service account)")
	// ErrNotFound indicates the spreadsheet or worksheet does not exist.
	ErrNotFound = errors.New("sheets: spreadsheet not found")
	// ErrRateLimited indicates the API quota was hit.
	ErrRateLimited = errors.New("sheets: rate limited")
)

// Options configures a Client. Exactly one credential source is needed
// unless Endpoint points at an unauthenticated test server.
type Options struct {
	CredentialsFile string
	CredentialsJSON []byte
	Timeout         time.Duration

	Endpoint   string
	HTTPClient *http.Client
}

// Client fetches worksheets through the Sheets v4 API.
type Client struct {
	svc     *gsheet.Service
	timeout time.Duration
}

// NewClient builds a read-only Sheets client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	var clientOpts []option.ClientOption

	switch {
	case opts.Endpoint != "":
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint), option.WithoutAuthentication())
	default:
		data := opts.CredentialsJSON
		if len(data) == 0 {
			if opts.CredentialsFile == "" {
				return nil, ErrNoCredentials
			}
			var err error
			data, err = os.ReadFile(opts.CredentialsFile)
			if err != nil {
				return nil, fmt.Errorf("sheets: reading credentials: %w", err)
			}
		}
		creds, err := google.CredentialsFromJSON(ctx, data, gsheet.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("sheets: parsing credentials: %w", err)
		}
		clientOpts = append(clientOpts, option.WithCredentials(creds))
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	svc, err := gsheet.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: creating service: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{svc: svc, timeout: timeout}, nil
}

// Fetch reads the worksheet referenced by ref, a sheet URL or bare
// spreadsheet ID. The first worksheet is used unless the URL names one with
// a gid fragment. The first non-blank row is the header.
func (c *Client) Fetch(ctx context.Context, ref string) (*model.RecordSet, error) {
	loc, err := ParseRef(ref)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ss, err := c.svc.Spreadsheets.Get(loc.SpreadsheetID).
		Fields("sheets.properties(sheetId,title,index)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(fmt.Sprintf("opening spreadsheet %s", loc.SpreadsheetID), err)
	}

	title, err := pickSheet(ss.Sheets, loc)
	if err != nil {
		return nil, err
	}

	resp, err := c.svc.Spreadsheets.Values.Get(loc.SpreadsheetID, quoteSheet(title)).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(fmt.Sprintf("reading sheet %q", title), err)
	}

	return source.FromRows(toRows(resp.Values)), nil
}

func pickSheet(sheets []*gsheet.Sheet, loc Ref) (string, error) {
	var first *gsheet.SheetProperties
	for _, s := range sheets {
		if s == nil || s.Properties == nil {
			continue
		}
		p := s.Properties
		if loc.HasGID && p.SheetId == loc.GID {
			return p.Title, nil
		}
		if first == nil || p.Index < first.Index {
			first = p
		}
	}
	if loc.HasGID {
		return "", fmt.Errorf("%w: no worksheet with gid %d", ErrNotFound, loc.GID)
	}
	if first == nil {
		return "", fmt.Errorf("%w: spreadsheet has no worksheets", ErrNotFound)
	}
	return first.Title, nil
}

func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func toRows(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		out := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				out[j] = fmt.Sprint(v)
			}
		}
		rows[i] = out
	}
	return rows
}

// classify maps API status codes onto the package's sentinel errors while
// keeping the API's own message.
func classify(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: %w: %s", op, ErrUnauthorized, apiErr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%s: %w", op, ErrRateLimited)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
