package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/uberswe/domainRadar/pkg/domain"
	"github.com/uberswe/domainRadar/pkg/source"
	"github.com/uberswe/domainRadar/pkg/util"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOOPIA_USERNAME", "")
	t.Setenv("LOOPIA_PASSWORD", "")
	t.Setenv("DOMAINRADAR_SOURCE_URL", "")
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].URL != source.DefaultURL || cfg.Sources[0].Format != domain.FormatPlain {
		t.Errorf("Sources = %+v", cfg.Sources)
	}
	if cfg.CacheDir != "cache" || cfg.Listen != DefaultListen {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  "username": "user@loopiaapi",
  "password": "secret",
  "sources": [{"url": "https://data.internetstiftelsen.se/bardate_domains.txt", "format": "bardate"}, {"url": "https://example.com/list.txt"}],
  "cache_max_age": "6h",
  "filters": {"min_length": "", "max_hyphens": "0", "sort_by": "hyphen"}
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Username != "user@loopiaapi" || cfg.Password != "secret" {
		t.Errorf("credentials = %q/%q", cfg.Username, cfg.Password)
	}
	if len(cfg.Sources) != 2 || cfg.Sources[0].Format != domain.FormatBardate || cfg.Sources[1].Format != domain.FormatPlain {
		t.Errorf("Sources = %+v", cfg.Sources)
	}
	if CacheMaxAge(cfg) != 6*time.Hour {
		t.Errorf("CacheMaxAge = %v", CacheMaxAge(cfg))
	}

	fc := cfg.Filters.FilterConfig()
	if fc.SortBy != domain.SortHyphen || fc.MaxHyphens == nil || *fc.MaxHyphens != 0 {
		t.Errorf("filters = %+v", fc)
	}
	if fc.MinLength == nil || *fc.MinLength != 3 {
		t.Errorf("MinLength = %v, want default 3 for missing value", fc.MinLength)
	}
}

func TestLoadJSONNumericFilters(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"filters": {"min_length": 5, "max_length": "abc", "max_hyphens": 0, "min_readable": 0.25, "sort_by": "readable"}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	fc := cfg.Filters.FilterConfig()
	if fc.MinLength == nil || *fc.MinLength != 5 {
		t.Errorf("MinLength = %v, want 5", fc.MinLength)
	}
	if fc.MaxLength != nil {
		t.Errorf("MaxLength = %v, want unset", *fc.MaxLength)
	}
	if fc.MaxHyphens == nil || *fc.MaxHyphens != 0 {
		t.Errorf("MaxHyphens = %v, want 0", fc.MaxHyphens)
	}
	if fc.MinReadable == nil || *fc.MinReadable != 0.25 {
		t.Errorf("MinReadable = %v, want 0.25", fc.MinReadable)
	}
	if fc.SortBy != domain.SortReadable {
		t.Errorf("SortBy = %q", fc.SortBy)
	}
}

func TestLoadJSONOddFilterValues(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"filters": {"min_length": true, "max_length": null, "max_hyphens": [1], "min_readable": {"x": 1}}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	fc := cfg.Filters.FilterConfig()
	// blank values keep the defaults
	want := domain.DefaultFilterConfig()
	if fc.MinLength == nil || *fc.MinLength != *want.MinLength || fc.MaxHyphens == nil || *fc.MaxHyphens != *want.MaxHyphens {
		t.Errorf("filters = %+v", fc)
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
sources:
  - url: https://registro.br/dominio/lista-processo-liberacao.txt
listen: ":9090"
filters:
  query: casa
  mode: starts
  min_readable: "0.5"
  allow_numbers: false
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Listen != ":9090" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	fc := cfg.Filters.FilterConfig()
	if fc.Query != "casa" || fc.Mode != domain.MatchStarts || fc.AllowNumbers {
		t.Errorf("filters = %+v", fc)
	}
	if fc.MinReadable == nil || *fc.MinReadable != 0.5 {
		t.Errorf("MinReadable = %v", fc.MinReadable)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOOPIA_USERNAME", "env-user")
	t.Setenv("DOMAINRADAR_SOURCE_URL", "https://example.com/env.txt")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Username != "env-user" {
		t.Errorf("Username = %q", cfg.Username)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].URL != "https://example.com/env.txt" {
		t.Errorf("Sources = %+v", cfg.Sources)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	for _, name := range []string{"config.json", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := Default()
			cfg.CacheDir = "lists"
			cfg.LastCacheTime = "2025-01-10T05:00:00Z"

			if err := Save(cfg, path); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if loaded.CacheDir != "lists" || loaded.LastCacheTime != cfg.LastCacheTime {
				t.Errorf("loaded = %+v", loaded)
			}
		})
	}
}

func TestCacheMaxAgeInvalid(t *testing.T) {
	for _, v := range []string{"", "soon", "-1h"} {
		if got := CacheMaxAge(&domain.Config{CacheMaxAge: v}); got != util.DefaultCacheMaxAge {
			t.Errorf("CacheMaxAge(%q) = %v, want default", v, got)
		}
	}
}

func TestRecordDownloads(t *testing.T) {
	cfg := &domain.Config{}
	now := time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC)

	if RecordDownloads(cfg, []source.Entry{{URL: "u", Path: "p"}}, now) {
		t.Error("cached entries should not be recorded")
	}
	if !RecordDownloads(cfg, []source.Entry{{URL: "u", Path: "p", Downloaded: true}}, now) {
		t.Fatal("downloaded entry not recorded")
	}
	if cfg.CachedLists["u"] != "p" || cfg.LastCacheTime != "2025-01-10T05:00:00Z" {
		t.Errorf("cfg = %+v", cfg)
	}
}
