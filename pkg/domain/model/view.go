package model

import (
	"cmp"
	"slices"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
)

// View names a grouped index over events.
type View string

const (
	// ViewByRepo is keyed by (url, year, month)
	ViewByRepo View = "by_repo"
	// ViewByRepoHash is keyed by (url_hash, url, year, month)
	ViewByRepoHash View = "by_repo_hash"
)

// Depth returns the number of key components of the view.
func (x View) Depth() int {
	switch x {
	case ViewByRepo:
		return 3
	case ViewByRepoHash:
		return 4
	default:
		return 0
	}
}

// GroupKey is the key tuple of a grouped row. Components beyond the query's
// group level are left zero.
type GroupKey struct {
	Hash  types.URLHash
	URL   string
	Year  int
	Month int
}

// GroupRow is one (key, count) row returned from a grouped range query.
type GroupRow struct {
	Key   GroupKey
	Value int64
}

// GroupQuery selects a view, an optional hash range and a group level.
// Level 0 reduces everything to one row; Level larger than the view depth is
// clamped to the depth.
type GroupQuery struct {
	View  View
	Hash  types.URLHash
	Level int
}

func (x GroupQuery) level() int {
	if x.Level < 0 {
		return 0
	}
	return min(x.Level, x.View.Depth())
}

// KeyOf returns the full key of event in view.
func KeyOf(view View, event *Event) GroupKey {
	at := event.DateReceived.UTC()
	key := GroupKey{
		URL:   event.RepositoryURL,
		Year:  at.Year(),
		Month: int(at.Month()),
	}
	if view == ViewByRepoHash {
		key.Hash = event.RepositoryURLHash
	}
	return key
}

// Truncate zeroes the key components past level.
func (x GroupKey) Truncate(view View, level int) GroupKey {
	var out GroupKey
	switch view {
	case ViewByRepo:
		if level >= 1 {
			out.URL = x.URL
		}
		if level >= 2 {
			out.Year = x.Year
		}
		if level >= 3 {
			out.Month = x.Month
		}
	case ViewByRepoHash:
		if level >= 1 {
			out.Hash = x.Hash
		}
		if level >= 2 {
			out.URL = x.URL
		}
		if level >= 3 {
			out.Year = x.Year
		}
		if level >= 4 {
			out.Month = x.Month
		}
	}
	return out
}

// CompareKeys orders keys the way the view index collates them.
func CompareKeys(view View, a, b GroupKey) int {
	if view == ViewByRepoHash {
		if c := cmp.Compare(a.Hash, b.Hash); c != 0 {
			return c
		}
	}
	return cmp.Or(
		cmp.Compare(a.URL, b.URL),
		cmp.Compare(a.Year, b.Year),
		cmp.Compare(a.Month, b.Month),
	)
}

// GroupEvents is the reference implementation of a grouped range query: it
// counts events per truncated key and returns rows in key order.
func GroupEvents(query GroupQuery, events []*Event) []GroupRow {
	level := query.level()
	counts := make(map[GroupKey]int64)
	for _, ev := range events {
		if query.View == ViewByRepoHash {
			if ev.RepositoryURLHash == "" {
				continue
			}
			if query.Hash != "" && ev.RepositoryURLHash != query.Hash {
				continue
			}
		}
		counts[KeyOf(query.View, ev).Truncate(query.View, level)]++
	}

	rows := make([]GroupRow, 0, len(counts))
	for key, n := range counts {
		rows = append(rows, GroupRow{Key: key, Value: n})
	}
	slices.SortFunc(rows, func(a, b GroupRow) int {
		return CompareKeys(query.View, a.Key, b.Key)
	})

	return rows
}
