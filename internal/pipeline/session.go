package pipeline

import (
	"time"

	"github.com/theirongolddev/bburn/internal/model"
)

// Session holds the record set currently being analysed. Loading new data
// replaces it wholesale; components only read from it.
type Session struct {
	Records  *model.RecordSet
	Source   string
	LoadedAt time.Time
}

// NewSession wraps a freshly loaded record set.
func NewSession(rs *model.RecordSet, source string) *Session {
	if rs == nil {
		rs = &model.RecordSet{}
	}
	return &Session{Records: rs, Source: source, LoadedAt: time.Now()}
}

// Replace swaps in another record set.
func (s *Session) Replace(rs *model.RecordSet, source string) {
	*s = *NewSession(rs, source)
}

// Empty reports whether there are no rows to analyse.
func (s *Session) Empty() bool {
	return s == nil || s.Records.Len() == 0
}
