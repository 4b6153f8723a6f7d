// Package search contains the pure logic for building a run's search plan:
// the cross-product of search terms and rotating filter axes.
package search

import (
	"math/rand"
	"time"
)

// DateBuckets lists the date-posted filter values from broadest to narrowest.
var DateBuckets = []string{"Any time", "Past month", "Past week", "Past 24 hours"}

// SortOrders lists the sort filter values rotated by alternate sort-by.
var SortOrders = []string{"Most relevant", "Most recent"}

// PlanConfig controls how the search plan is built.
type PlanConfig struct {
	SortBy              string // fixed sort order; empty = board default
	DatePosted          string // starting date bucket; empty = broadest
	AlternateSortBy     bool   // rotate through SortOrders per bucket
	CycleDatePosted     bool   // rotate through date buckets per term
	StopDateCycleAt24hr bool   // end the rotation at the narrowest bucket
}

// Page is one search the board will be asked to perform.
type Page struct {
	SortBy     string
	DatePosted string
}

// TermPlan groups the pages for a single search term. The per-term
// application cap applies across all of a term's pages.
type TermPlan struct {
	Term  string
	Pages []Page
}

// OrderTerms fixes the term order for a whole run. With randomize set the
// terms are shuffled exactly once; every cycle of the run then visits them in
// this same order. The input slice is never reordered in place. A nil rng
// falls back to a time-seeded source.
func OrderTerms(terms []string, randomize bool, rng *rand.Rand) []string {
	ordered := make([]string, len(terms))
	copy(ordered, terms)
	if !randomize {
		return ordered
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rng.Shuffle(len(ordered), func(i, j int) {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	})
	return ordered
}

// BuildPlan constructs the full plan for one cycle. Terms are searched in the
// order given; callers wanting a shuffled order pass terms through OrderTerms
// first.
func BuildPlan(terms []string, cfg PlanConfig) []TermPlan {
	buckets := bucketRotation(cfg)
	sorts := sortRotation(cfg)

	plan := make([]TermPlan, 0, len(terms))
	for _, term := range terms {
		tp := TermPlan{Term: term}
		for _, b := range buckets {
			for _, s := range sorts {
				tp.Pages = append(tp.Pages, Page{SortBy: s, DatePosted: b})
			}
		}
		plan = append(plan, tp)
	}
	return plan
}

// bucketRotation returns the date buckets a term is searched under, starting
// from the configured bucket and narrowing. Without the 24-hour stop the
// rotation wraps back through the broader buckets so a full cycle covers all
// of them exactly once.
func bucketRotation(cfg PlanConfig) []string {
	if !cfg.CycleDatePosted {
		if cfg.DatePosted == "" {
			return []string{DateBuckets[0]}
		}
		return []string{cfg.DatePosted}
	}

	start := 0
	for i, b := range DateBuckets {
		if b == cfg.DatePosted {
			start = i
			break
		}
	}

	rotation := append([]string{}, DateBuckets[start:]...)
	if !cfg.StopDateCycleAt24hr {
		rotation = append(rotation, DateBuckets[:start]...)
	}
	return rotation
}

func sortRotation(cfg PlanConfig) []string {
	if !cfg.AlternateSortBy {
		if cfg.SortBy == "" {
			return []string{SortOrders[0]}
		}
		return []string{cfg.SortBy}
	}
	return append([]string{}, SortOrders...)
}
