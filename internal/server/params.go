package server

import (
	"net/url"
	"strconv"

	"github.com/uberswe/domainRadar/pkg/domain"
)

// ParseFilter builds a FilterConfig from query parameters on top of defaults.
// Parameters that are absent keep the default, numeric parameters that are
// present but blank or malformed become unset.
func ParseFilter(q url.Values, defaults domain.FilterConfig) domain.FilterConfig {
	cfg := defaults

	if q.Has("q") {
		cfg.Query = q.Get("q")
	}
	if q.Has("mode") {
		cfg.Mode = domain.ParseMatchMode(q.Get("mode"))
	}
	if q.Has("regex") {
		cfg.Regex = q.Get("regex")
	}
	if q.Has("starts") {
		cfg.StartsWith = q.Get("starts")
	}
	if q.Has("ends") {
		cfg.EndsWith = q.Get("ends")
	}
	if q.Has("min_length") {
		cfg.MinLength = domain.ParseOptionalInt(q.Get("min_length"))
	}
	if q.Has("max_length") {
		cfg.MaxLength = domain.ParseOptionalInt(q.Get("max_length"))
	}
	if q.Has("max_hyphens") {
		cfg.MaxHyphens = domain.ParseOptionalInt(q.Get("max_hyphens"))
	}
	if q.Has("min_readable") {
		cfg.MinReadable = domain.ParseOptionalFloat(q.Get("min_readable"))
	}
	if q.Has("numbers") {
		cfg.AllowNumbers = parseBool(q.Get("numbers"), cfg.AllowNumbers)
	}
	if q.Has("letters") {
		cfg.OnlyLetters = parseBool(q.Get("letters"), cfg.OnlyLetters)
	}
	if q.Has("no_hyphen") {
		cfg.OnlyNoHyphen = parseBool(q.Get("no_hyphen"), cfg.OnlyNoHyphen)
	}
	if q.Has("sort") {
		cfg.SortBy = domain.ParseSortKey(q.Get("sort"))
	}
	return cfg
}

// parsePage reads offset and limit. A missing or malformed limit gives PageSize,
// a non-positive one the rest of the list.
func parsePage(q url.Values) (offset, limit int) {
	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err = strconv.Atoi(q.Get("limit"))
	if err != nil {
		limit = PageSize
	}
	return offset, limit
}

func parseBool(s string, fallback bool) bool {
	if s == "" {
		return true
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}
