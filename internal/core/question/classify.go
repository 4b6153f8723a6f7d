// Package question contains the pure text logic for screening questions:
// normalization, category classification, and option matching.
package question

import "strings"

// Category identifies a well-known question type with a direct config answer.
type Category string

const (
	CategoryUnknown        Category = ""
	CategoryExperience     Category = "experience"
	CategorySalary         Category = "salary"
	CategoryCurrentComp    Category = "current_compensation"
	CategoryNoticePeriod   Category = "notice_period"
	CategoryVisa           Category = "visa"
	CategoryCitizenship    Category = "citizenship"
	CategoryPhone          Category = "phone"
	CategoryCity           Category = "city"
	CategoryWebsite        Category = "website"
	CategoryProfileURL     Category = "profile_url"
	CategoryCoverLetter    Category = "cover_letter"
	CategorySummary        Category = "summary"
	CategoryConfidence     Category = "confidence"
	CategoryRecentEmployer Category = "recent_employer"
	CategoryFirstName      Category = "first_name"
	CategoryLastName       Category = "last_name"
	CategoryGender         Category = "gender"
	CategoryEthnicity      Category = "ethnicity"
	CategoryDisability     Category = "disability"
	CategoryVeteran        Category = "veteran"
)

// rule maps keyword phrases (matched against normalized text) to a category.
// Rules are evaluated in order, first match wins, so the more specific
// phrases come first.
type rule struct {
	category Category
	phrases  []string
}

var rules = []rule{
	{CategoryCoverLetter, []string{"cover letter"}},
	{CategoryNoticePeriod, []string{"notice period", "when can you start", "days until you can start"}},
	{CategoryCurrentComp, []string{"current salary", "current ctc", "current compensation", "present salary"}},
	{CategorySalary, []string{"salary expectation", "expected salary", "desired salary", "expected ctc", "compensation expectation", "desired compensation"}},
	{CategoryExperience, []string{"years of experience", "years of work experience", "how many years", "years have you worked"}},
	{CategoryVisa, []string{"sponsorship", "require visa", "need a visa", "work visa", "immigration"}},
	{CategoryCitizenship, []string{"citizen", "legally authorized to work", "authorized to work", "right to work", "work authorization"}},
	{CategoryProfileURL, []string{"linkedin profile", "linkedin url"}},
	{CategoryWebsite, []string{"website", "portfolio", "github"}},
	{CategoryPhone, []string{"phone", "mobile number", "contact number"}},
	{CategoryCity, []string{"current city", "current location", "which city", "where are you located", "where do you live"}},
	{CategoryRecentEmployer, []string{"current employer", "most recent employer", "last employer"}},
	{CategoryConfidence, []string{"rate yourself", "scale of 1", "out of 10", "proficiency level"}},
	{CategoryGender, []string{"gender"}},
	{CategoryEthnicity, []string{"ethnicity", "race"}},
	{CategoryDisability, []string{"disability"}},
	{CategoryVeteran, []string{"veteran"}},
	{CategoryFirstName, []string{"first name"}},
	{CategoryLastName, []string{"last name", "surname"}},
	{CategorySummary, []string{"about yourself", "tell us about", "describe yourself", "why should we hire"}},
}

// Normalize lowercases text, strips punctuation, and collapses whitespace.
// The result is the cache key for answered questions.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Classify determines the question category from its normalized text.
// Returns CategoryUnknown when no keyword rule matches.
func Classify(text string) Category {
	normalized := Normalize(text)
	for _, r := range rules {
		for _, p := range r.phrases {
			if strings.Contains(normalized, Normalize(p)) {
				return r.category
			}
		}
	}
	return CategoryUnknown
}

// MatchOption maps a resolved answer onto the available option set:
// exact equality first, then case-insensitive substring in either direction.
// Returns the matched option and whether a match was found.
func MatchOption(answer string, options []string) (string, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", false
	}

	for _, opt := range options {
		if opt == answer {
			return opt, true
		}
	}

	lower := strings.ToLower(answer)
	for _, opt := range options {
		optLower := strings.ToLower(opt)
		if strings.Contains(optLower, lower) || strings.Contains(lower, optLower) {
			return opt, true
		}
	}

	return "", false
}
