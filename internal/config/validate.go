package config

import "fmt"

var (
	validSortBy     = []string{"", "Most recent", "Most relevant"}
	validDatePosted = []string{"", "Any time", "Past month", "Past week", "Past 24 hours"}
	validWorkModes  = []string{"On-site", "Remote", "Hybrid"}
	validJobTypes   = []string{"Full-time", "Part-time", "Contract", "Temporary", "Volunteer", "Internship", "Other"}
	validExperience = []string{"Internship", "Entry level", "Associate", "Mid-Senior level", "Director", "Executive"}
	validProviders  = []string{"openai", "deepseek", "gemini"}
	validYesNo      = []string{"Yes", "No"}
	validDecline    = []string{"Yes", "No", "Decline", ""}
)

// Validate sanity-checks the full configuration. The engine treats any
// validation failure as a fatal startup error.
func (c *Config) Validate() error {
	if len(c.Search.Terms) == 0 {
		return fmt.Errorf("search.terms must have at least 1 entry")
	}
	if c.Search.SwitchNumber < 1 {
		return fmt.Errorf("search.switch_number must be >= 1, got %d", c.Search.SwitchNumber)
	}
	if err := checkOption("search.sort_by", c.Search.SortBy, validSortBy); err != nil {
		return err
	}
	if err := checkOption("search.date_posted", c.Search.DatePosted, validDatePosted); err != nil {
		return err
	}
	if err := checkList("search.work_modes", c.Search.WorkModes, validWorkModes); err != nil {
		return err
	}
	if err := checkList("search.job_types", c.Search.JobTypes, validJobTypes); err != nil {
		return err
	}
	if err := checkList("search.experience_levels", c.Search.Experience, validExperience); err != nil {
		return err
	}
	if c.Search.CycleRestSeconds < 0 {
		return fmt.Errorf("search.cycle_rest_seconds must be >= 0, got %d", c.Search.CycleRestSeconds)
	}

	if err := checkOption("profile.require_visa", c.Profile.RequireVisa, validYesNo); err != nil {
		return err
	}
	if err := checkOption("profile.disability_status", c.Profile.DisabilityStatus, validDecline); err != nil {
		return err
	}
	if err := checkOption("profile.veteran_status", c.Profile.VeteranStatus, validDecline); err != nil {
		return err
	}
	if c.Profile.DesiredSalary < 0 {
		return fmt.Errorf("profile.desired_salary must be >= 0, got %d", c.Profile.DesiredSalary)
	}
	if c.Profile.CurrentCompensation < 0 {
		return fmt.Errorf("profile.current_compensation must be >= 0, got %d", c.Profile.CurrentCompensation)
	}
	if c.Profile.NoticePeriodDays < 0 {
		return fmt.Errorf("profile.notice_period_days must be >= 0, got %d", c.Profile.NoticePeriodDays)
	}
	if c.Profile.ResumePath == "" {
		return fmt.Errorf("profile.resume_path must be set")
	}

	if c.AI.Enabled {
		if err := checkOption("ai.provider", c.AI.Provider, validProviders); err != nil {
			return err
		}
		if c.AI.Model == "" {
			return fmt.Errorf("ai.model must be set when ai.enabled is true")
		}
		if c.AI.TimeoutSeconds < 1 {
			return fmt.Errorf("ai.timeout_seconds must be >= 1, got %d", c.AI.TimeoutSeconds)
		}
	}

	if c.Filters.CurrentExperience < -1 {
		return fmt.Errorf("filters.current_experience must be >= -1, got %d", c.Filters.CurrentExperience)
	}

	if c.Behavior.ClickGapSeconds < 0 {
		return fmt.Errorf("behavior.click_gap_seconds must be >= 0, got %d", c.Behavior.ClickGapSeconds)
	}

	if c.Paths.AppliedHistory == "" || c.Paths.FailedHistory == "" {
		return fmt.Errorf("paths.applied_history and paths.failed_history must be set")
	}
	if c.Paths.StateDir == "" {
		return fmt.Errorf("paths.state_dir must be set")
	}

	return nil
}

func checkOption(name, value string, options []string) error {
	for _, o := range options {
		if value == o {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %v, got %q", name, options, value)
}

func checkList(name string, values, options []string) error {
	for _, v := range values {
		if err := checkOption(name, v, options); err != nil {
			return err
		}
	}
	return nil
}
