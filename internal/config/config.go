package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"jobwatch/internal/domain"
)

// Profile is one named search query.
type Profile struct {
	Name  string `yaml:"name"`
	Query string `yaml:"query"`
}

type Config struct {
	Home struct {
		Label string  `yaml:"label"`
		Lat   float64 `yaml:"lat"`
		Lon   float64 `yaml:"lon"`
	} `yaml:"home"`

	Proximity struct {
		NearKm   float64 `yaml:"near_km"`
		MidKm    float64 `yaml:"mid_km"`
		SpeedKmh float64 `yaml:"speed_kmh"`
	} `yaml:"proximity"`

	Search struct {
		Location           string `yaml:"location"`
		RadiusKm           int    `yaml:"radius_km"`
		Homeoffice         bool   `yaml:"homeoffice"`
		HomeofficeRadiusKm int    `yaml:"homeoffice_radius_km"`
		MaxAgeDays         int    `yaml:"max_age_days"`
		PageSize           int    `yaml:"page_size"`
		APIKey             string `yaml:"api_key"`
	} `yaml:"search"`

	Profiles []Profile `yaml:"profiles"`

	Keywords struct {
		Focus      []string `yaml:"focus"`
		Leadership []string `yaml:"leadership"`
		Negative   []string `yaml:"negative"`
	} `yaml:"keywords"`

	Scoring struct {
		MinScore        int    `yaml:"min_score"`
		OnlyRelevant    bool   `yaml:"only_relevant"`
		HideIrrelevant  bool   `yaml:"hide_irrelevant"`
		HomeofficeBonus int    `yaml:"homeoffice_bonus"`
		SortMode        string `yaml:"sort_mode"` // distance | relevance
	} `yaml:"scoring"`

	Cache struct {
		SearchTTLMinutes int `yaml:"search_ttl_minutes"`
		DetailTTLMinutes int `yaml:"detail_ttl_minutes"`
	} `yaml:"cache"`

	Orgs []domain.TargetOrg `yaml:"orgs"`

	Notify struct {
		Enabled  bool   `yaml:"enabled"`
		SMTPHost string `yaml:"smtp_host"`
		SMTPPort int    `yaml:"smtp_port"`
		Username string `yaml:"username"`
		From     string `yaml:"from"`
		To       string `yaml:"to"`
	} `yaml:"notify"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func Save(path string, cfg Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
