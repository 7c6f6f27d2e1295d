package model

import (
	"encoding/json"
	"net"
	"net/url"
	"sort"
	"strings"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
)

// Deploys maps year -> month -> deployment count.
type Deploys map[int]map[int]int64

func (x Deploys) Has(year, month int) bool {
	months, ok := x[year]
	if !ok {
		return false
	}
	_, ok = months[month]
	return ok
}

func (x Deploys) Set(year, month int, n int64) {
	if _, ok := x[year]; !ok {
		x[year] = make(map[int]int64)
	}
	x[year][month] = n
}

// Sum returns the total over all buckets.
func (x Deploys) Sum() int64 {
	var total int64
	for _, months := range x {
		for _, n := range months {
			total += n
		}
	}
	return total
}

// RepoSummary is the per-repository aggregate. It is recomputed on every read.
type RepoSummary struct {
	URL        string          `json:"url"`
	URLHash    types.URLHash   `json:"url_hash,omitempty"`
	Count      int64           `json:"count"`
	Deploys    Deploys         `json:"deploys"`
	IsURL      bool            `json:"is_url"`
	Reputation json.RawMessage `json:"reputationStats"`

	*RepoLinks
}

// RepoLinks holds badge and button links of a repository.
type RepoLinks struct {
	BadgeImageURL  string `json:"badgeImageUrl"`
	BadgeMarkdown  string `json:"badgeMarkdown"`
	ButtonImageURL string `json:"buttonImageUrl"`
	ButtonLinkURL  string `json:"buttonLinkUrl"`
	ButtonMarkdown string `json:"buttonMarkdown"`
}

const deployButtonBaseURL = "https://bluemix.net/deploy?repository="

// NewRepoLinks builds links served from protocolAndHost (e.g.
// "https://tracker.example.com").
func NewRepoLinks(protocolAndHost string, hash types.URLHash, repositoryURL string) *RepoLinks {
	links := &RepoLinks{
		BadgeImageURL:  protocolAndHost + "/stats/" + hash.String() + "/badge.svg",
		ButtonImageURL: protocolAndHost + "/stats/" + hash.String() + "/button.svg",
		ButtonLinkURL:  deployButtonBaseURL + repositoryURL,
	}
	links.BadgeMarkdown = "![" + BadgeLabel + "](" + links.BadgeImageURL + ")"
	links.ButtonMarkdown = "[![" + ButtonLabel + "](" + links.ButtonImageURL + ")](" + links.ButtonLinkURL + ")"
	return links
}

// SummarySet folds grouped rows into summaries keyed by url, keeping the
// order in which urls were first seen.
type SummarySet struct {
	order []string
	byURL map[string]*RepoSummary
}

func NewSummarySet() *SummarySet {
	return &SummarySet{
		byURL: make(map[string]*RepoSummary),
	}
}

// Add folds one row. A (year, month) bucket is written at most once per
// summary; later rows for the same bucket are ignored and not counted.
func (x *SummarySet) Add(row GroupRow) {
	key := row.Key
	s, ok := x.byURL[key.URL]
	if !ok {
		s = &RepoSummary{
			URL:     key.URL,
			Deploys: make(Deploys),
			IsURL:   IsURL(key.URL),
		}
		switch {
		case key.Hash != "":
			s.URLHash = key.Hash
		case key.URL != "":
			s.URLHash = HashURL(key.URL)
		}
		x.byURL[key.URL] = s
		x.order = append(x.order, key.URL)
	}

	if s.Deploys.Has(key.Year, key.Month) {
		return
	}
	s.Deploys.Set(key.Year, key.Month, row.Value)
	s.Count += row.Value
}

func (x *SummarySet) Len() int { return len(x.order) }

// Get returns the summary of url, or nil.
func (x *SummarySet) Get(url string) *RepoSummary { return x.byURL[url] }

// URLs returns the distinct urls in encounter order.
func (x *SummarySet) URLs() []string {
	return append([]string{}, x.order...)
}

// Sorted returns summaries by descending count. Equal counts keep encounter
// order.
func (x *SummarySet) Sorted() []*RepoSummary {
	out := make([]*RepoSummary, 0, len(x.order))
	for _, u := range x.order {
		out = append(out, x.byURL[u])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// FoldRows builds a SummarySet from rows in delivery order.
func FoldRows(rows []GroupRow) *SummarySet {
	set := NewSummarySet()
	for _, row := range rows {
		set.Add(row)
	}
	return set
}

// IsURL reports whether s is an absolute http(s) URL whose host is an IP
// address or a domain name with a top level domain.
func IsURL(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return false
	}

	host := u.Hostname()
	if host == "" {
		return false
	}
	if net.ParseIP(host) != nil {
		return true
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}
	tld := labels[len(labels)-1]
	if len(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r > 0x7f) {
			return false
		}
	}

	return true
}
