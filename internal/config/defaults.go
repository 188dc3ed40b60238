package config

import "jobwatch/internal/domain"

// Built-in keyword lists. Users edit these in the config file; a reset
// rewrites them from here.
var (
	DefaultFocusKeywords = []string{
		"thermoanalyse", "thermophysik", "thermal analysis", "thermophysical",
		"dsc", "tga", "lfa", "dilatometrie", "dilatometer", "sta", "dma", "tma",
		"wärmeleitfähigkeit", "thermal conductivity", "diffusivität", "diffusivity",
		"kalorimetrie", "calorimetry", "cp", "wärmekapazität", "heat capacity",
		"materialcharakterisierung", "material characterization",
		"analytik", "instrumentierung", "messgerät", "labor",
		"werkstoff", "werkstoffe", "polymer", "keramik", "metall",
		"f&e", "verfahrenstechnik", "physik", "physics",
	}
	DefaultLeadershipKeywords = []string{
		"laborleiter", "teamleiter", "gruppenleiter", "abteilungsleiter",
		"leiter", "head", "lead", "director", "manager", "principal",
	}
	DefaultNegativeKeywords = []string{
		"insurance", "versicherung",
		"assistant", "assistenz", "sekretariat",
		"office", "backoffice", "reception", "empfang",
		"vorstandsassistenz", "management assistant",
	}
)

// DefaultOrgs is the curated employer directory. Order matters: matching is
// first-hit-wins, so more specific terms come before broader ones.
var DefaultOrgs = []domain.TargetOrg{
	{Name: "NETZSCH-Gerätebau", MatchTerms: []string{"netzsch"}, CareerURL: "https://careers.netzsch.com", Priority: "high"},
	{Name: "Linseis Messgeräte", MatchTerms: []string{"linseis"}, CareerURL: "https://www.linseis.com/karriere", Priority: "high"},
	{Name: "TA Instruments", MatchTerms: []string{"ta instruments", "waters"}, CareerURL: "https://www.tainstruments.com/careers", Priority: "high"},
	{Name: "Mettler-Toledo", MatchTerms: []string{"mettler"}, CareerURL: "https://www.mt.com/careers"},
	{Name: "Anton Paar", MatchTerms: []string{"anton paar"}, CareerURL: "https://www.anton-paar.com/karriere"},
	{Name: "Fraunhofer-Gesellschaft", MatchTerms: []string{"fraunhofer"}, CareerURL: "https://jobs.fraunhofer.de"},
	{Name: "Helmholtz-Zentren", MatchTerms: []string{"helmholtz", "ufz"}, CareerURL: "https://www.helmholtz.de/karriere"},
	{Name: "Leibniz-Institute", MatchTerms: []string{"leibniz"}, CareerURL: "https://www.leibniz-gemeinschaft.de/karriere"},
}

// Default returns the full built-in configuration, written to disk on first
// run and used as the reset target.
func Default() Config {
	var cfg Config

	cfg.Home.Label = "06242 Braunsbedra"
	cfg.Home.Lat = 51.2861
	cfg.Home.Lon = 11.8900

	cfg.Proximity.NearKm = 25
	cfg.Proximity.MidKm = 60
	cfg.Proximity.SpeedKmh = 75

	cfg.Search.Location = "Leipzig"
	cfg.Search.RadiusKm = 50
	cfg.Search.Homeoffice = true
	cfg.Search.HomeofficeRadiusKm = 200
	cfg.Search.MaxAgeDays = 60
	cfg.Search.PageSize = 50
	cfg.Search.APIKey = "jobboerse-jobsuche"

	cfg.Profiles = []Profile{
		{Name: "R&D", Query: "Forschung Entwicklung R&D Thermoanalyse Thermophysik Analytik"},
		{Name: "Projektmanagement", Query: "Projektmanagement Project Manager Program Manager"},
		{Name: "Vertrieb", Query: "Vertrieb Sales Business Development Key Account Manager"},
	}

	cfg.Keywords.Focus = append([]string(nil), DefaultFocusKeywords...)
	cfg.Keywords.Leadership = append([]string(nil), DefaultLeadershipKeywords...)
	cfg.Keywords.Negative = append([]string(nil), DefaultNegativeKeywords...)

	cfg.Scoring.MinScore = 8
	cfg.Scoring.OnlyRelevant = true
	cfg.Scoring.HideIrrelevant = true
	cfg.Scoring.HomeofficeBonus = 0
	cfg.Scoring.SortMode = "distance"

	cfg.Cache.SearchTTLMinutes = 5
	cfg.Cache.DetailTTLMinutes = 60

	cfg.Orgs = append([]domain.TargetOrg(nil), DefaultOrgs...)

	cfg.Notify.SMTPPort = 587

	return cfg
}
