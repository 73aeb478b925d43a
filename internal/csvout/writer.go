package csvout

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jszwec/csvutil"

	"amzscraper/internal/model"
)

var unsafeChars = regexp.MustCompile(`[<>:"/\\|?*]+`)

// SanitizeTerm turns a search term into a filename-safe base name.
func SanitizeTerm(term string) string {
	return unsafeChars.ReplaceAllString(strings.TrimSpace(term), "_")
}

// Write serializes records to <dir>/<sanitized term>.csv, creating dir if
// needed and overwriting any previous run for the same term. The header row
// is always written, even with zero records. Returns the file path.
func Write(dir, term string, records []model.ProductRecord) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, SanitizeTerm(term)+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	if err := enc.EncodeHeader(model.ProductRecord{}); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, nil
}
