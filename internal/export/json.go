package export

import (
	"encoding/json"
	"io"

	"github.com/theirongolddev/bburn/internal/model"
)

// WriteAnalysisJSON writes the full analysis as indented JSON.
func WriteAnalysisJSON(w io.Writer, a model.Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}
