// Package models contains domain types for applypilot entities.
// Persistence is handled by the adapters layer.
package models

// Work mode constants as they appear on the board.
const (
	WorkModeOnSite = "On-site"
	WorkModeRemote = "Remote"
	WorkModeHybrid = "Hybrid"
)

// Listing represents one job posting discovered by a search.
// Immutable once fetched; the ID is an opaque identifier assigned by the board.
type Listing struct {
	ID              string
	Title           string
	Company         string
	Description     string
	AboutCompany    string
	Location        string
	WorkMode        string // On-site / Remote / Hybrid, empty if not shown
	JobType         string // Full-time, Contract, ... empty if not shown
	ExperienceLevel string // Entry level, Associate, ... empty if not shown
	PostedBucket    string // date-posted bucket the listing was found under
	Salary          string // raw salary text, empty if not shown
	QuickApply      bool   // in-product application flow vs external redirect
}

// FilterOutcome is the verdict of the listing filter.
type FilterOutcome string

const (
	FilterApply FilterOutcome = "apply"
	FilterSkip  FilterOutcome = "skip"
)

// Skip reasons produced by the listing filter.
const (
	ReasonCompanyBlocklist     = "company_blocklist"
	ReasonCompanyAllowlistMiss = "company_allowlist_miss"
	ReasonBadWord              = "bad_word"
	ReasonWorkModeMismatch     = "work_mode_mismatch"
	ReasonJobTypeMismatch      = "job_type_mismatch"
	ReasonExperienceMismatch   = "experience_mismatch"
	ReasonSecurityClearance    = "security_clearance"
	ReasonExperienceTooHigh    = "experience_too_high"
	ReasonNotQuickApply        = "not_quick_apply"
)

// FilterDecision is produced once per listing and never mutated.
type FilterDecision struct {
	ListingID string
	Outcome   FilterOutcome
	Reason    string // empty when Outcome is FilterApply
}
