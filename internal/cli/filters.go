package cli

import (
	"github.com/spf13/cobra"

	"github.com/uberswe/domainRadar/pkg/domain"
)

// filterFlags mirrors domain.FilterConfig on the command line. Numeric bounds
// are read as text so that an empty or malformed value means "unset".
type filterFlags struct {
	query        string
	mode         string
	regex        string
	startsWith   string
	endsWith     string
	minLength    string
	maxLength    string
	maxHyphens   string
	minReadable  string
	noNumbers    bool
	onlyLetters  bool
	onlyNoHyphen bool
	sortBy       string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.query, "query", "q", "", "Free-text query")
	fs.StringVar(&f.mode, "mode", "", "Query match mode: contains, starts, ends or regex")
	fs.StringVar(&f.regex, "regex", "", "Case-insensitive regular expression matched against the domain (ignored when invalid)")
	fs.StringVar(&f.startsWith, "starts-with", "", "Required prefix")
	fs.StringVar(&f.endsWith, "ends-with", "", "Required suffix")
	fs.StringVar(&f.minLength, "min-length", "", "Minimum length (empty = unset)")
	fs.StringVar(&f.maxLength, "max-length", "", "Maximum length (empty = unset)")
	fs.StringVar(&f.maxHyphens, "max-hyphens", "", "Maximum number of hyphens (empty = unset)")
	fs.StringVar(&f.minReadable, "min-readable", "", "Minimum vowel/consonant ratio (empty = unset)")
	fs.BoolVar(&f.noNumbers, "no-numbers", false, "Exclude domains containing digits")
	fs.BoolVar(&f.onlyLetters, "only-letters", false, "Keep only domains made of letters a-z")
	fs.BoolVar(&f.onlyNoHyphen, "no-hyphen", false, "Keep only domains without hyphens")
	fs.StringVar(&f.sortBy, "sort", "", "Sort key: score, length-asc, length-desc, hyphen or readable")
}

// config applies the flags that were set on top of base
func (f *filterFlags) config(cmd *cobra.Command, base domain.FilterConfig) domain.FilterConfig {
	cfg := base
	fs := cmd.Flags()

	if fs.Changed("query") {
		cfg.Query = f.query
	}
	if fs.Changed("mode") {
		cfg.Mode = domain.ParseMatchMode(f.mode)
	}
	if fs.Changed("regex") {
		cfg.Regex = f.regex
	}
	if fs.Changed("starts-with") {
		cfg.StartsWith = f.startsWith
	}
	if fs.Changed("ends-with") {
		cfg.EndsWith = f.endsWith
	}
	if fs.Changed("min-length") {
		cfg.MinLength = domain.ParseOptionalInt(f.minLength)
	}
	if fs.Changed("max-length") {
		cfg.MaxLength = domain.ParseOptionalInt(f.maxLength)
	}
	if fs.Changed("max-hyphens") {
		cfg.MaxHyphens = domain.ParseOptionalInt(f.maxHyphens)
	}
	if fs.Changed("min-readable") {
		cfg.MinReadable = domain.ParseOptionalFloat(f.minReadable)
	}
	if fs.Changed("no-numbers") {
		cfg.AllowNumbers = !f.noNumbers
	}
	if fs.Changed("only-letters") {
		cfg.OnlyLetters = f.onlyLetters
	}
	if fs.Changed("no-hyphen") {
		cfg.OnlyNoHyphen = f.onlyNoHyphen
	}
	if fs.Changed("sort") {
		cfg.SortBy = domain.ParseSortKey(f.sortBy)
	}
	return cfg
}
