package source

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uberswe/domainRadar/pkg/domain"
	"github.com/uberswe/domainRadar/pkg/util"
)

// ErrAllSourcesFailed is returned when not a single configured list could be loaded
var ErrAllSourcesFailed = errors.New("no domain list could be loaded")

// bardateLayout is the expiry date format of the Internetstiftelsen lists
const bardateLayout = "2006-01-02"

// ExtractDomains reduces sanitized lines of a list to domain names.
// Plain lists are returned unchanged. For bardate lists only the domain
// column of rows releasing on ref is kept, or of every row when allDates is set.
func ExtractDomains(lines []string, format domain.SourceFormat, ref time.Time, allDates bool) []string {
	if format != domain.FormatBardate {
		return lines
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		name, dateStr := parts[0], parts[1]
		if allDates {
			out = append(out, name)
			continue
		}

		expiry, err := time.Parse(bardateLayout, dateStr)
		if err != nil {
			log.Debug().Err(err).Str("domain", name).Str("date", dateStr).Msg("Failed to parse expiry date")
			continue
		}
		if util.SameDay(expiry, ref) {
			out = append(out, name)
		}
	}
	return out
}

// Loader turns the configured sources into one candidate list
type Loader struct {
	Sources  []domain.Source
	Cache    *Cache
	Fetchers func(src domain.Source) URLFetcher
	AllDates bool
	Now      func() time.Time
}

// Load fetches every source and returns the concatenated candidates in
// source order. Failing sources are logged and skipped.
func (l *Loader) Load(ctx context.Context, refresh bool) ([]string, []Entry, error) {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	newFetcher := l.Fetchers
	if newFetcher == nil {
		newFetcher = func(src domain.Source) URLFetcher { return NewHTTPFetcher(src.URL) }
	}

	ref := util.GetReferenceDate(now())
	var (
		candidates []string
		entries    []Entry
		lastErr    error
	)
	for _, src := range l.Sources {
		entry, err := l.Cache.Fetch(ctx, newFetcher(src), refresh)
		if err != nil {
			log.Error().Err(err).Str("url", src.URL).Msg("Failed to load domain list")
			lastErr = err
			continue
		}
		entries = append(entries, entry)

		names := ExtractDomains(util.SanitizeList(entry.Text), src.Format, ref, l.AllDates)
		log.Info().
			Str("url", src.URL).
			Str("format", string(src.Format)).
			Int("count", len(names)).
			Time("reference_date", ref).
			Msg("Domain list processed")
		candidates = append(candidates, names...)
	}

	if len(entries) == 0 && len(l.Sources) > 0 {
		return nil, nil, errors.Join(ErrAllSourcesFailed, lastErr)
	}
	return candidates, entries, nil
}
