// Package check looks up the registration status of the best ranked domains
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/uberswe/domainRadar/internal/available"
	"github.com/uberswe/domainRadar/pkg/api"
	"github.com/uberswe/domainRadar/pkg/domain"
	"github.com/uberswe/domainRadar/pkg/radar"
)

const (
	// DefaultTop is how many ranked domains are checked by default
	DefaultTop = 10
	// DefaultConcurrency is the number of lookups in flight
	DefaultConcurrency = 4
)

// LoopiaTLDs are the top-level domains the Loopia API is known to look up.
// Names under other TLDs are still sent but the answer is usually an error.
var LoopiaTLDs = map[string]bool{
	"se": true, "nu": true, "com": true, "net": true,
	"org": true, "info": true, "biz": true, "eu": true,
}

// ErrNoCredentials is returned when a real check is requested without Loopia credentials
var ErrNoCredentials = errors.New("no credentials found. Set them in config file or LOOPIA_USERNAME and LOOPIA_PASSWORD environment variables")

// Checker reports whether a domain can be registered
type Checker interface {
	CheckDomainIsFree(ctx context.Context, domainName string) (bool, error)
}

// Options controls a single run of the check command
type Options struct {
	ConfigFile  string
	Filter      domain.FilterConfig
	Top         int
	Concurrency int
	Dry         bool
	Refresh     bool
	AllDates    bool
	Out         io.Writer
}

// Run ranks the configured lists and checks the top candidates at Loopia
func Run(ctx context.Context, cfg *domain.Config, opts Options) error {
	if !opts.Dry && (cfg.Username == "" || cfg.Password == "") {
		return ErrNoCredentials
	}

	client, err := api.NewClient(cfg.Username, cfg.Password, opts.Dry)
	if err != nil {
		return err
	}

	candidates, err := available.Candidates(ctx, cfg, opts.ConfigFile, opts.Refresh, opts.AllDates)
	if err != nil {
		return err
	}

	top := opts.Top
	if top <= 0 {
		top = DefaultTop
	}
	report := radar.Rank(candidates, opts.Filter)
	if report.PatternErr != nil {
		log.Warn().Err(report.PatternErr).Str("regex", opts.Filter.Regex).Msg("Ignoring invalid regex")
	}
	names := make([]string, 0, top)
	for _, item := range report.Top(top) {
		names = append(names, item.Domain)
	}

	if foreign := UnservedNames(names); len(foreign) > 0 {
		log.Warn().
			Strs("domains", foreign).
			Msg("Loopia does not sell these top-level domains, expect lookups to fail")
	}

	results := CheckAll(ctx, client, names, opts.Concurrency)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	PrintResults(out, results)
	return nil
}

// UnservedNames returns the names whose top-level domain is not in LoopiaTLDs
func UnservedNames(names []string) []string {
	var out []string
	for _, name := range names {
		tld := strings.ToLower(name[strings.LastIndex(name, ".")+1:])
		if !LoopiaTLDs[tld] {
			out = append(out, name)
		}
	}
	return out
}

// CheckAll looks up every domain with at most concurrency lookups in flight.
// Results keep the order of names. A failed lookup is reported in its result
// and does not stop the others.
func CheckAll(ctx context.Context, checker Checker, names []string, concurrency int) []domain.CheckResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]domain.CheckResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			free, err := checker.CheckDomainIsFree(gctx, name)
			results[i] = domain.CheckResult{Domain: name, Free: free, Error: err}
			if err != nil {
				log.Warn().Err(err).Str("domain", name).Msg("Availability check failed")
				return nil
			}
			log.Debug().Str("domain", name).Bool("free", free).Msg("Availability checked")
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// PrintResults writes one line per checked domain
func PrintResults(w io.Writer, results []domain.CheckResult) {
	free := 0
	for _, r := range results {
		status := "taken"
		switch {
		case r.Error != nil:
			status = "error: " + r.Error.Error()
		case r.Free:
			status = "FREE"
			free++
		}
		fmt.Fprintf(w, "%-30s %s\n", r.Domain, status)
	}
	fmt.Fprintf(w, "\n%d of %d domains can be registered\n", free, len(results))
}
