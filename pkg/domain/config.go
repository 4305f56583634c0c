package domain

import (
	"bytes"
	"encoding/json"
)

// SourceFormat describes the line layout of a downloaded domain list
type SourceFormat string

const (
	// FormatPlain is one domain per line, e.g. the registro.br release list
	FormatPlain SourceFormat = "plain"
	// FormatBardate is "<domain> <YYYY-MM-DD>" per line, e.g. the Internetstiftelsen .se/.nu lists
	FormatBardate SourceFormat = "bardate"
)

// Source is a remote domain list
type Source struct {
	URL    string       `json:"url" yaml:"url"`
	Format SourceFormat `json:"format,omitempty" yaml:"format,omitempty"`
}

// BoundText is a numeric bound as written in the configuration file.
// JSON files may give it as a string or a number. Anything else reads as blank.
type BoundText string

// UnmarshalJSON accepts a JSON string or number and never fails
func (b *BoundText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*b = ""
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*b = BoundText(s)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*b = BoundText(n.String())
		}
	}
	return nil
}

// FilterDefaults is the filter block of the configuration file.
// Numeric fields are text so that blank or malformed values simply mean "unset".
type FilterDefaults struct {
	Query        string    `json:"query,omitempty" yaml:"query,omitempty"`
	Mode         string    `json:"mode,omitempty" yaml:"mode,omitempty"`
	Regex        string    `json:"regex,omitempty" yaml:"regex,omitempty"`
	StartsWith   string    `json:"starts_with,omitempty" yaml:"starts_with,omitempty"`
	EndsWith     string    `json:"ends_with,omitempty" yaml:"ends_with,omitempty"`
	MinLength    BoundText `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength    BoundText `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	MaxHyphens   BoundText `json:"max_hyphens,omitempty" yaml:"max_hyphens,omitempty"`
	MinReadable  BoundText `json:"min_readable,omitempty" yaml:"min_readable,omitempty"`
	AllowNumbers *bool     `json:"allow_numbers,omitempty" yaml:"allow_numbers,omitempty"`
	OnlyLetters  bool      `json:"only_letters,omitempty" yaml:"only_letters,omitempty"`
	OnlyNoHyphen bool      `json:"only_no_hyphen,omitempty" yaml:"only_no_hyphen,omitempty"`
	SortBy       string    `json:"sort_by,omitempty" yaml:"sort_by,omitempty"`
}

// FilterConfig converts the file representation into a FilterConfig.
// Fields that are missing from the file keep the values of DefaultFilterConfig.
func (d *FilterDefaults) FilterConfig() FilterConfig {
	cfg := DefaultFilterConfig()
	if d == nil {
		return cfg
	}

	cfg.Query = d.Query
	cfg.Regex = d.Regex
	cfg.StartsWith = d.StartsWith
	cfg.EndsWith = d.EndsWith
	cfg.OnlyLetters = d.OnlyLetters
	cfg.OnlyNoHyphen = d.OnlyNoHyphen
	if d.Mode != "" {
		cfg.Mode = ParseMatchMode(d.Mode)
	}
	if d.SortBy != "" {
		cfg.SortBy = ParseSortKey(d.SortBy)
	}
	if d.AllowNumbers != nil {
		cfg.AllowNumbers = *d.AllowNumbers
	}
	if d.MinLength != "" {
		cfg.MinLength = ParseOptionalInt(string(d.MinLength))
	}
	if d.MaxLength != "" {
		cfg.MaxLength = ParseOptionalInt(string(d.MaxLength))
	}
	if d.MaxHyphens != "" {
		cfg.MaxHyphens = ParseOptionalInt(string(d.MaxHyphens))
	}
	if d.MinReadable != "" {
		cfg.MinReadable = ParseOptionalFloat(string(d.MinReadable))
	}
	return cfg
}

// Config represents the configuration file structure
type Config struct {
	Username      string            `json:"username" yaml:"username"`
	Password      string            `json:"password" yaml:"password"`
	Sources       []Source          `json:"sources" yaml:"sources"`
	CacheDir      string            `json:"cache_dir" yaml:"cache_dir"`
	CacheMaxAge   string            `json:"cache_max_age" yaml:"cache_max_age"` // time.ParseDuration text
	CachedLists   map[string]string `json:"cached_lists" yaml:"cached_lists"`
	LastCacheTime string            `json:"last_cache_time" yaml:"last_cache_time"`
	Listen        string            `json:"listen" yaml:"listen"`
	Filters       *FilterDefaults   `json:"filters,omitempty" yaml:"filters,omitempty"`
}

// CheckResult is the outcome of an availability lookup
type CheckResult struct {
	Domain string
	Free   bool
	Error  error
}
