package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/uberswe/domainRadar/pkg/domain"
)

func newTestServer(t *testing.T, load LoadFunc) (*Server, *httptest.Server) {
	t.Helper()
	s := New(load, domain.FilterConfig{AllowNumbers: true})
	if err := s.Refresh(context.Background(), false); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func staticList(names ...string) LoadFunc {
	return func(context.Context, bool) ([]string, error) { return names, nil }
}

func getDomains(t *testing.T, ts *httptest.Server, query string) domainsResponse {
	t.Helper()
	resp, err := http.Get(ts.URL + "/api/domains?" + query)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out domainsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, staticList())
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestDomains(t *testing.T) {
	_, ts := newTestServer(t, staticList("casa-bela.com.br", "casa.com.br", "sol1.com.br", "lar.com.br"))

	out := getDomains(t, ts, "q=CASA&sort=length-asc")
	if out.Total != 4 || out.Count != 2 {
		t.Errorf("total/count = %d/%d, want 4/2", out.Total, out.Count)
	}
	if len(out.Items) != 2 || out.Items[0].Domain != "casa.com.br" || out.Items[1].Domain != "casa-bela.com.br" {
		t.Errorf("items = %+v", out.Items)
	}
	if out.Items[0].Length != 11 {
		t.Errorf("Length = %d, want 11", out.Items[0].Length)
	}

	out = getDomains(t, ts, "numbers=false&no_hyphen=1&limit=1&sort=length-desc")
	if out.Count != 2 || len(out.Items) != 1 || out.Items[0].Domain != "casa.com.br" {
		t.Errorf("count = %d, items = %+v", out.Count, out.Items)
	}
}

func TestDomainsPaging(t *testing.T) {
	_, ts := newTestServer(t, staticList("aa.br", "bb.br", "cc.br", "dd.br", "ee.br"))

	var seen []string
	offset := 0
	for page := 0; page < 5; page++ {
		out := getDomains(t, ts, "sort=length-asc&limit=2&offset="+strconv.Itoa(offset))
		if out.Offset != offset || out.Count != 5 {
			t.Fatalf("offset/count = %d/%d", out.Offset, out.Count)
		}
		for _, item := range out.Items {
			seen = append(seen, item.Domain)
		}
		if out.NextOffset == 0 {
			break
		}
		offset = out.NextOffset
	}
	if strings.Join(seen, ",") != "aa.br,bb.br,cc.br,dd.br,ee.br" {
		t.Errorf("pages = %q", seen)
	}

	out := getDomains(t, ts, "offset=10")
	if len(out.Items) != 0 || out.NextOffset != 0 {
		t.Errorf("past the end: %+v", out)
	}
}

func TestDomainsDefaultPageSize(t *testing.T) {
	names := make([]string, PageSize+5)
	for i := range names {
		names[i] = "nome" + strconv.Itoa(i)
	}
	_, ts := newTestServer(t, staticList(names...))

	out := getDomains(t, ts, "")
	if len(out.Items) != PageSize || out.NextOffset != PageSize {
		t.Errorf("items = %d, next_offset = %d", len(out.Items), out.NextOffset)
	}
	out = getDomains(t, ts, "limit=0")
	if len(out.Items) != PageSize+5 || out.NextOffset != 0 {
		t.Errorf("limit=0: items = %d, next_offset = %d", len(out.Items), out.NextOffset)
	}
}

func TestDomainsInvalidInputsAreIgnored(t *testing.T) {
	_, ts := newTestServer(t, staticList("a.com.br", "b.com.br"))

	out := getDomains(t, ts, "regex="+url.QueryEscape("([")+"&min_length=abc&max_hyphens=")
	if out.Count != 2 {
		t.Errorf("count = %d, want 2", out.Count)
	}
	if out.PatternError == "" {
		t.Error("expected pattern_error in response")
	}
}

func TestDomainsCSV(t *testing.T) {
	_, ts := newTestServer(t, staticList("teste", "bar-1"))

	resp, err := http.Get(ts.URL + "/api/domains.csv?sort=hyphen")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "domains-filtered.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body, _ := io.ReadAll(resp.Body)
	want := "domain,length,hyphens,digits,readable,score\nteste,5,0,0,0.67,102.10\nbar-1,5,1,1,0.50,91.30\n"
	if string(body) != want {
		t.Errorf("body =\n%s\nwant\n%s", body, want)
	}
}

func TestRefreshFailureKeepsList(t *testing.T) {
	calls := 0
	load := func(_ context.Context, force bool) ([]string, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("registro.br unavailable")
		}
		return []string{"a.com.br"}, nil
	}
	_, ts := newTestServer(t, load)

	resp, err := http.Post(ts.URL+"/api/refresh", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}

	out := getDomains(t, ts, "")
	if out.Total != 1 {
		t.Errorf("total = %d, want the previous list", out.Total)
	}
	if out.LoadError == "" {
		t.Error("expected load_error after failed refresh")
	}
}

func TestRefreshForces(t *testing.T) {
	var forced []bool
	load := func(_ context.Context, force bool) ([]string, error) {
		forced = append(forced, force)
		return []string{"a.com.br", "b.com.br"}, nil
	}
	_, ts := newTestServer(t, load)

	resp, err := http.Post(ts.URL+"/api/refresh", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if len(forced) != 2 || forced[0] || !forced[1] {
		t.Errorf("force flags = %v, want [false true]", forced)
	}
}
