// Package export serializes ranked domains
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/uberswe/domainRadar/pkg/domain"
)

// DefaultFileName is the file name suggested for CSV downloads
const DefaultFileName = "domains-filtered.csv"

// Header is the fixed CSV column order
var Header = []string{"domain", "length", "hyphens", "digits", "readable", "score"}

// WriteCSV writes items to w as CSV, ratio and score rounded to two decimals
func WriteCSV(w io.Writer, items []domain.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, it := range items {
		row := []string{
			it.Domain,
			strconv.Itoa(it.Length),
			strconv.Itoa(it.HyphenCount),
			strconv.Itoa(it.DigitCount),
			strconv.FormatFloat(it.ReadableRatio, 'f', 2, 64),
			strconv.FormatFloat(it.Score, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", it.Domain, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
