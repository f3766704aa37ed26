package sheets

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidRef is returned for links that do not name a spreadsheet.
var ErrInvalidRef = errors.New("sheets: not a Google Sheets link or spreadsheet ID")

var (
	pathIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)
	bareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{20,}$`)
)

// Ref locates one worksheet.
type Ref struct {
	SpreadsheetID string
	GID           int64
	HasGID        bool
}

// ParseRef extracts the spreadsheet ID, and the worksheet gid if present,
// from a share link such as
// https://docs.google.com/spreadsheets/d/<id>/edit#gid=0. A bare ID is
// accepted too.
func ParseRef(ref string) (Ref, error) {
	ref = strings.TrimSpace(ref)
	if bareIDPattern.MatchString(ref) {
		return Ref{SpreadsheetID: ref}, nil
	}

	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	m := pathIDPattern.FindStringSubmatch(u.Path)
	if m == nil {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}

	out := Ref{SpreadsheetID: m[1]}
	gid := u.Query().Get("gid")
	if frag, ferr := url.ParseQuery(u.Fragment); ferr == nil && frag.Get("gid") != "" {
		gid = frag.Get("gid")
	}
	if gid != "" {
		n, err := strconv.ParseInt(gid, 10, 64)
		if err != nil {
			return Ref{}, fmt.Errorf("%w: bad gid %q", ErrInvalidRef, gid)
		}
		out.GID, out.HasGID = n, true
	}
	return out, nil
}
