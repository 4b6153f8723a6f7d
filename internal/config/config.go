// Package config loads, saves, and validates the applypilot configuration.
// The engine receives the validated value once at startup and treats it as
// immutable; no component reads ambient state.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// ConfigDirName is the per-project configuration directory.
const ConfigDirName = ".applypilot"

// ProfileConfig holds the candidate's personal data and stock answers.
type ProfileConfig struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	Street     string `json:"street,omitempty"`
	State      string `json:"state,omitempty"`
	Zipcode    string `json:"zipcode,omitempty"`
	Country    string `json:"country"`

	// EEO / demographics; "Decline" is a valid answer for all of them
	Ethnicity        string `json:"ethnicity"`
	Gender           string `json:"gender"`
	DisabilityStatus string `json:"disability_status"`
	VeteranStatus    string `json:"veteran_status"`

	// Stock screening answers
	YearsOfExperience   string `json:"years_of_experience"`
	RequireVisa         string `json:"require_visa"` // Yes / No
	Website             string `json:"website,omitempty"`
	ProfileURL          string `json:"profile_url,omitempty"`
	Citizenship         string `json:"citizenship"`
	DesiredSalary       int    `json:"desired_salary"`
	CurrentCompensation int    `json:"current_compensation"`
	NoticePeriodDays    int    `json:"notice_period_days"`
	RecentEmployer      string `json:"recent_employer,omitempty"`
	ConfidenceLevel     string `json:"confidence_level"`

	// Longer-form texts used for fields and AI context
	Headline    string `json:"headline,omitempty"`
	Summary     string `json:"summary,omitempty"`
	CoverLetter string `json:"cover_letter,omitempty"`
	ProfileText string `json:"profile_text,omitempty"` // consolidated profile for the AI prompt

	ResumePath string `json:"resume_path"`
}

// AIConfig controls the LLM question-answering fallback.
type AIConfig struct {
	Enabled        bool   `json:"enabled"`
	Provider       string `json:"provider"` // openai / deepseek / gemini
	Model          string `json:"model"`
	APIURL         string `json:"api_url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds"`

	// APIKey comes from the environment only, never from the config file.
	APIKey string `json:"-"`
}

// SearchConfig controls term iteration and the rotating filter axes.
type SearchConfig struct {
	Terms          []string `json:"terms"`
	Location       string   `json:"location"`
	SwitchNumber   int      `json:"switch_number"` // max applications per term per cycle
	RandomizeOrder bool     `json:"randomize_order"`

	SortBy        string   `json:"sort_by,omitempty"`     // "", Most recent, Most relevant
	DatePosted    string   `json:"date_posted,omitempty"` // "", Any time, Past month, Past week, Past 24 hours
	Salary        string   `json:"salary,omitempty"`
	EasyApplyOnly bool     `json:"easy_apply_only"`
	WorkModes     []string `json:"work_modes,omitempty"`
	JobTypes      []string `json:"job_types,omitempty"`
	Experience    []string `json:"experience_levels,omitempty"`

	AlternateSortBy     bool `json:"alternate_sortby"`
	CycleDatePosted     bool `json:"cycle_date_posted"`
	StopDateCycleAt24hr bool `json:"stop_date_cycle_at_24hr"`

	RunNonStop       bool `json:"run_non_stop"`
	CycleRestSeconds int  `json:"cycle_rest_seconds"` // sleep between cycles when non-stop
}

// FilterConfig holds the listing skip rules.
type FilterConfig struct {
	CompanyBadWords   []string `json:"about_company_bad_words"`
	CompanyGoodWords  []string `json:"about_company_good_words,omitempty"`
	BadWords          []string `json:"bad_words"`
	SecurityClearance bool     `json:"security_clearance"`
	CurrentExperience int      `json:"current_experience"` // -1 disables the years filter
}

// BehaviorConfig holds throttling and pause knobs.
type BehaviorConfig struct {
	ClickGapSeconds          int  `json:"click_gap_seconds"`
	PauseBeforeSubmit        bool `json:"pause_before_submit"`
	PauseAtFailedQuestion    bool `json:"pause_at_failed_question"`
	OverwritePreviousAnswers bool `json:"overwrite_previous_answers"`
}

// PathsConfig holds the durable state locations.
type PathsConfig struct {
	AppliedHistory string `json:"applied_history"`
	FailedHistory  string `json:"failed_history"`
	StateDir       string `json:"state_dir"` // answer cache + event log database
}

// Config is the full applypilot configuration.
type Config struct {
	Profile  ProfileConfig  `json:"profile"`
	AI       AIConfig       `json:"ai"`
	Search   SearchConfig   `json:"search"`
	Filters  FilterConfig   `json:"filters"`
	Behavior BehaviorConfig `json:"behavior"`
	Paths    PathsConfig    `json:"paths"`

	// Board credentials come from the environment only.
	BoardUsername string `json:"-"`
	BoardPassword string `json:"-"`
}

// Default returns a config with the stock defaults.
func Default() *Config {
	return &Config{
		Profile: ProfileConfig{
			Country:             "United States",
			Ethnicity:           "Decline",
			Gender:              "Decline",
			DisabilityStatus:    "Decline",
			VeteranStatus:       "Decline",
			YearsOfExperience:   "0",
			RequireVisa:         "No",
			Citizenship:         "U.S. Citizen/Permanent Resident",
			DesiredSalary:       100000,
			CurrentCompensation: 80000,
			NoticePeriodDays:    14,
			ConfidenceLevel:     "7",
			ResumePath:          "resumes/resume.pdf",
		},
		AI: AIConfig{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			APIURL:         "https://api.openai.com/v1/",
			TimeoutSeconds: 30,
		},
		Search: SearchConfig{
			Location:            "United States",
			SwitchNumber:        30,
			DatePosted:          "Past month",
			Salary:              "$80,000+",
			EasyApplyOnly:       true,
			WorkModes:           []string{"On-site", "Remote", "Hybrid"},
			JobTypes:            []string{"Full-time", "Contract"},
			Experience:          []string{"Mid-Senior level", "Associate"},
			AlternateSortBy:     true,
			CycleDatePosted:     true,
			StopDateCycleAt24hr: true,
			CycleRestSeconds:    300,
		},
		Filters: FilterConfig{
			CompanyBadWords:   []string{"Crossover"},
			BadWords:          []string{"No C2C", "No Corp2Corp", ".NET", "Embedded Programming", "PHP", "Ruby", "CNC", "COBOL", "Mainframe"},
			CurrentExperience: -1,
		},
		Behavior: BehaviorConfig{
			ClickGapSeconds:       1,
			PauseBeforeSubmit:     true,
			PauseAtFailedQuestion: true,
		},
		Paths: PathsConfig{
			AppliedHistory: "history/applied.csv",
			FailedHistory:  "history/failed.csv",
			StateDir:       ConfigDirName,
		},
	}
}

// Load reads <dir>/.applypilot/config.json and overlays secrets from the
// environment. Returns an error if no config is found.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigDirName, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.loadEnv(dir)
	return &cfg, nil
}

// Save writes config.json under <dir>/.applypilot. Secrets are never written.
func Save(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ConfigDirName)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// loadEnv overlays secrets from <dir>/.env (if present) and the process
// environment. Missing entries leave the config untouched.
func (c *Config) loadEnv(dir string) {
	// Best effort; the process environment still applies without a .env file.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("BOARD_USERNAME"); v != "" {
		c.BoardUsername = v
	}
	if v := os.Getenv("BOARD_PASSWORD"); v != "" {
		c.BoardPassword = v
	}
}
