// Package filter contains the pure decision logic for listing selection.
// Decide evaluates a listing against the configured rules without side effects.
package filter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/example/applypilot/internal/models"
)

// Rules holds the filter configuration for one run.
type Rules struct {
	CompanyBadWords  []string // skip if found in the company description
	CompanyGoodWords []string // when non-empty, at least one must be found
	BadWords         []string // skip if found in title or description

	WorkModes        []string // allowed work modes; empty = no constraint
	JobTypes         []string // allowed job types; empty = no constraint
	ExperienceLevels []string // allowed experience levels; empty = no constraint

	EasyApplyOnly        bool
	HasSecurityClearance bool
	CurrentExperienceYrs int // -1 when unknown; skips listings demanding more
}

var yearsDemandRe = regexp.MustCompile(`(\d{1,2})\s*\+?\s*(?:years|yrs)`)

var clearancePhrases = []string{
	"security clearance",
	"secret clearance",
	"ts/sci",
	"clearance required",
}

// Decide applies the rules in order, first match wins.
// Deterministic given the same listing and rules.
func Decide(l models.Listing, r Rules) models.FilterDecision {
	about := strings.ToLower(l.AboutCompany)
	title := strings.ToLower(l.Title)
	desc := strings.ToLower(l.Description)

	// 1. Company blocklist
	if word := containsAny(about, r.CompanyBadWords); word != "" {
		return skip(l, models.ReasonCompanyBlocklist)
	}

	// 2. Company allowlist is an additional requirement only when non-empty
	if len(r.CompanyGoodWords) > 0 && containsAny(about, r.CompanyGoodWords) == "" {
		return skip(l, models.ReasonCompanyAllowlistMiss)
	}

	// 3. Title/description blocklist
	if containsAny(title, r.BadWords) != "" || containsAny(desc, r.BadWords) != "" {
		return skip(l, models.ReasonBadWord)
	}

	// 4. Tag constraints; an unknown tag on the listing never disqualifies
	if !tagAllowed(l.WorkMode, r.WorkModes) {
		return skip(l, models.ReasonWorkModeMismatch)
	}
	if !tagAllowed(l.JobType, r.JobTypes) {
		return skip(l, models.ReasonJobTypeMismatch)
	}
	if !tagAllowed(l.ExperienceLevel, r.ExperienceLevels) {
		return skip(l, models.ReasonExperienceMismatch)
	}

	// 5. Clearance demand when the candidate has none
	if !r.HasSecurityClearance && containsAny(desc, clearancePhrases) != "" {
		return skip(l, models.ReasonSecurityClearance)
	}

	// 6. Experience demand above the candidate's years
	if r.CurrentExperienceYrs >= 0 && maxYearsDemanded(desc) > r.CurrentExperienceYrs {
		return skip(l, models.ReasonExperienceTooHigh)
	}

	// 7. Quick-apply requirement
	if r.EasyApplyOnly && !l.QuickApply {
		return skip(l, models.ReasonNotQuickApply)
	}

	return models.FilterDecision{ListingID: l.ID, Outcome: models.FilterApply}
}

func skip(l models.Listing, reason string) models.FilterDecision {
	return models.FilterDecision{ListingID: l.ID, Outcome: models.FilterSkip, Reason: reason}
}

// containsAny returns the first needle found in haystack, case-insensitively.
// Empty needles are ignored.
func containsAny(haystack string, needles []string) string {
	for _, n := range needles {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(n)) {
			return n
		}
	}
	return ""
}

// tagAllowed reports whether the listing tag intersects the allowed set.
// An empty allowed set or an unknown listing tag always passes.
func tagAllowed(tag string, allowed []string) bool {
	if len(allowed) == 0 || tag == "" {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(tag, a) {
			return true
		}
	}
	return false
}

// maxYearsDemanded scans the description for "N+ years" style demands and
// returns the highest N, or 0 when none are stated.
func maxYearsDemanded(desc string) int {
	max := 0
	for _, m := range yearsDemandRe.FindAllStringSubmatch(desc, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}
