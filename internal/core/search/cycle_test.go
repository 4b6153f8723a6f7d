package search

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func TestBuildPlanFixedFilters(t *testing.T) {
	plan := BuildPlan([]string{"Security Engineer", "Python Developer"}, PlanConfig{
		SortBy:     "Most recent",
		DatePosted: "Past week",
	})

	if len(plan) != 2 {
		t.Fatalf("BuildPlan() returned %d term plans, want 2", len(plan))
	}
	for _, tp := range plan {
		if len(tp.Pages) != 1 {
			t.Fatalf("term %q has %d pages, want 1", tp.Term, len(tp.Pages))
		}
		want := Page{SortBy: "Most recent", DatePosted: "Past week"}
		if tp.Pages[0] != want {
			t.Errorf("term %q page = %+v, want %+v", tp.Term, tp.Pages[0], want)
		}
	}
}

func TestBuildPlanDefaults(t *testing.T) {
	plan := BuildPlan([]string{"Security Engineer"}, PlanConfig{})
	want := Page{SortBy: "Most relevant", DatePosted: "Any time"}
	if plan[0].Pages[0] != want {
		t.Errorf("default page = %+v, want %+v", plan[0].Pages[0], want)
	}
}

func TestBucketRotation(t *testing.T) {
	tests := []struct {
		name string
		cfg  PlanConfig
		want []string
	}{
		{
			name: "cycling stops at 24 hours",
			cfg: PlanConfig{
				DatePosted:          "Past month",
				CycleDatePosted:     true,
				StopDateCycleAt24hr: true,
			},
			want: []string{"Past month", "Past week", "Past 24 hours"},
		},
		{
			name: "cycling wraps without the stop",
			cfg: PlanConfig{
				DatePosted:      "Past week",
				CycleDatePosted: true,
			},
			want: []string{"Past week", "Past 24 hours", "Any time", "Past month"},
		},
		{
			name: "unknown bucket starts from the broadest",
			cfg: PlanConfig{
				CycleDatePosted:     true,
				StopDateCycleAt24hr: true,
			},
			want: []string{"Any time", "Past month", "Past week", "Past 24 hours"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bucketRotation(tt.cfg); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("bucketRotation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildPlanAlternatingSort(t *testing.T) {
	plan := BuildPlan([]string{"Security Engineer"}, PlanConfig{
		DatePosted:          "Past week",
		AlternateSortBy:     true,
		CycleDatePosted:     true,
		StopDateCycleAt24hr: true,
	})

	want := []Page{
		{SortBy: "Most relevant", DatePosted: "Past week"},
		{SortBy: "Most recent", DatePosted: "Past week"},
		{SortBy: "Most relevant", DatePosted: "Past 24 hours"},
		{SortBy: "Most recent", DatePosted: "Past 24 hours"},
	}
	if !reflect.DeepEqual(plan[0].Pages, want) {
		t.Errorf("pages = %+v, want %+v", plan[0].Pages, want)
	}
}

func TestOrderTermsShuffleIsSeedStable(t *testing.T) {
	terms := []string{"a", "b", "c", "d", "e"}

	first := OrderTerms(terms, true, rand.New(rand.NewSource(42)))
	second := OrderTerms(terms, true, rand.New(rand.NewSource(42)))
	if !reflect.DeepEqual(first, second) {
		t.Error("OrderTerms() differs across calls with the same seed")
	}

	// Input slice must not be reordered in place.
	if !reflect.DeepEqual(terms, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("OrderTerms() mutated input terms: %v", terms)
	}

	sorted := append([]string{}, first...)
	sort.Strings(sorted)
	if !reflect.DeepEqual(sorted, terms) {
		t.Errorf("OrderTerms() is not a permutation of the input: %v", first)
	}
}

func TestOrderTermsWithoutShuffleKeepsOrder(t *testing.T) {
	terms := []string{"c", "a", "b"}
	got := OrderTerms(terms, false, rand.New(rand.NewSource(1)))
	if !reflect.DeepEqual(got, terms) {
		t.Errorf("OrderTerms() = %v, want %v", got, terms)
	}
}

func TestBuildPlanKeepsGivenOrder(t *testing.T) {
	terms := []string{"c", "a", "b"}
	plan := BuildPlan(terms, PlanConfig{})
	for i, tp := range plan {
		if tp.Term != terms[i] {
			t.Errorf("plan[%d].Term = %q, want %q", i, tp.Term, terms[i])
		}
	}
}
