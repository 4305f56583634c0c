// Package available implements the available command functionality
package available

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uberswe/domainRadar/pkg/config"
	"github.com/uberswe/domainRadar/pkg/domain"
	"github.com/uberswe/domainRadar/pkg/export"
	"github.com/uberswe/domainRadar/pkg/radar"
	"github.com/uberswe/domainRadar/pkg/source"
)

// DefaultLimit is the number of rows printed when no limit is given
const DefaultLimit = 100

// Options controls a single run of the available command
type Options struct {
	ConfigFile string
	Filter     domain.FilterConfig
	Limit      int
	CSVPath    string
	Refresh    bool
	AllDates   bool
	Out        io.Writer
}

// Candidates loads every configured list and returns the sanitized domain names.
// Freshly downloaded lists are recorded in the configuration file.
func Candidates(ctx context.Context, cfg *domain.Config, configFile string, refresh, allDates bool) ([]string, error) {
	loader := &source.Loader{
		Sources:  cfg.Sources,
		Cache:    source.NewCache(cfg.CacheDir, config.CacheMaxAge(cfg)),
		AllDates: allDates,
	}

	candidates, entries, err := loader.Load(ctx, refresh)
	if err != nil {
		return nil, err
	}

	if config.RecordDownloads(cfg, entries, time.Now()) && configFile != "" {
		if err := config.Save(cfg, configFile); err != nil {
			log.Error().Err(err).Msg("Failed to save updated configuration")
		}
	}
	return candidates, nil
}

// Run handles the available command functionality
func Run(ctx context.Context, cfg *domain.Config, opts Options) error {
	log.Info().Msg("Running available command to rank domains from the release lists")

	candidates, err := Candidates(ctx, cfg, opts.ConfigFile, opts.Refresh, opts.AllDates)
	if err != nil {
		return err
	}

	report := radar.Rank(candidates, opts.Filter)
	if report.PatternErr != nil {
		log.Warn().Err(report.PatternErr).Str("regex", opts.Filter.Regex).Msg("Ignoring invalid regex")
	}
	log.Info().Int("total", report.Total).Int("count", len(report.Items)).Msg("Filtered domain list")

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	limit := opts.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	DisplayTopDomains(out, report, limit)

	if opts.CSVPath != "" {
		if err := writeCSVFile(opts.CSVPath, report.Items); err != nil {
			return err
		}
		log.Info().Str("file", opts.CSVPath).Int("count", len(report.Items)).Msg("Exported ranked domains")
	}
	return nil
}

func writeCSVFile(name string, items []domain.Result) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	if err := export.WriteCSV(f, items); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DisplayTopDomains prints the ranked domains as a table.
// A negative limit prints every row.
func DisplayTopDomains(w io.Writer, report radar.Report, limit int) {
	fmt.Fprintf(w, "\nDomains in list: %d, after filters: %d\n", report.Total, len(report.Items))

	highlights := "---"
	if h := report.Highlights(); len(h) > 0 {
		highlights = strings.Join(h, ", ")
	}
	fmt.Fprintf(w, "Highlights: %s\n", highlights)
	fmt.Fprintln(w, "======================================")

	fmt.Fprintf(w, "%-5s %-30s %-8s %-7s %-7s %-7s %s\n",
		"Rank", "Domain", "Score", "Length", "Hyphens", "Digits", "Readable")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for i, d := range report.Top(limit) {
		fmt.Fprintf(w, "%-5d %-30s %-8.2f %-7d %-7d %-7d %.2f\n",
			i+1,
			d.Domain,
			d.Score,
			d.Length,
			d.HyphenCount,
			d.DigitCount,
			d.ReadableRatio)
	}
}
