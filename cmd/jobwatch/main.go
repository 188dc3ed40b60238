package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"jobwatch/internal/config"
	"jobwatch/internal/domain"
	"jobwatch/internal/logger"
	"jobwatch/internal/notify"
	"jobwatch/internal/pipeline"
	"jobwatch/internal/provider"
	"jobwatch/internal/scheduler"
	"jobwatch/internal/secrets"
	"jobwatch/internal/state"
	"jobwatch/internal/store"
)

const usage = `jobwatch - Jobsuche beobachten, bewerten und vergleichen

Usage:
  jobwatch [search] [flags]        run a search and render the ranked list
  jobwatch details <rank|refnr>    show one hit with its full job description
  jobwatch watch [flags]           re-run every N minutes, mail new hits
  jobwatch snapshot save           persist the current ranked list
  jobwatch snapshot clear          delete the snapshot
  jobwatch snapshot show           print the saved snapshot summary
  jobwatch orgs                    list the employer directory with check state
  jobwatch check <org> [flags]     mark an organization checked / edit notes
  jobwatch export [flags]          dump check state as JSON or CSV
  jobwatch keywords show|set|reset edit the keyword lists as free text
  jobwatch smtp-pass set|clear     manage the notifier password in the keychain

The data directory defaults to .jobwatch_state (override with
JOBWATCH_DATA_DIR); config.yml in it is created on first run.
`

func main() {
	args := os.Args[1:]
	cmd := "search"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd = args[0]
		args = args[1:]
	}

	var err error
	switch cmd {
	case "search":
		err = runSearch(args)
	case "details":
		err = runDetails(args)
	case "keywords":
		err = runKeywords(args)
	case "watch":
		err = runWatch(args)
	case "snapshot":
		err = runSnapshot(args)
	case "orgs":
		err = runOrgs(args)
	case "check":
		err = runCheck(args)
	case "export":
		err = runExport(args)
	case "smtp-pass":
		err = runSMTPPass(args)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func dataDir() string {
	if d := os.Getenv("JOBWATCH_DATA_DIR"); d != "" {
		return d
	}
	return ".jobwatch_state"
}

// loadConfig bootstraps, loads and validates the user config. Warnings go to
// the log; validation errors abort.
func loadConfig(dir string) (config.Config, error) {
	path, err := config.EnsureUserConfig(dir)
	if err != nil {
		return config.Config{}, fmt.Errorf("config bootstrap: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("config load (%s): %w", path, err)
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Warn().Msg(w)
	}
	if !res.OK() {
		return config.Config{}, fmt.Errorf("invalid config (%s): %s", path, strings.Join(res.Errors, "; "))
	}
	return cfg, nil
}

// buildProvider wires the API client with its sqlite response cache and host
// limiter. The returned closer releases the cache DB.
func buildProvider(dir string, cfg config.Config) (*provider.Client, func(), error) {
	db, err := store.Open(filepath.Join(dir, "cache.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("open cache db: %w", err)
	}
	if err := store.Migrate(db.Pool); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate cache db: %w", err)
	}

	cache := &store.ResponseCache{DB: db.Pool}
	if err := cache.Prune(context.Background()); err != nil {
		log.Warn().Err(err).Msg("cache prune failed")
	}

	client := provider.New(provider.Options{
		APIKey:    cfg.Search.APIKey,
		Limiter:   provider.NewHostLimiter(1.0, 2),
		Cache:     cache,
		SearchTTL: time.Duration(cfg.Cache.SearchTTLMinutes) * time.Minute,
		DetailTTL: time.Duration(cfg.Cache.DetailTTLMinutes) * time.Minute,
	})
	return client, func() { _ = db.Close() }, nil
}

type searchFlags struct {
	profiles     string
	sortMode     string
	minScore     int
	showAll      bool
	breakdown    bool
	saveSnapshot bool
	sendMail     bool
	verbose      bool
}

func bindSearchFlags(fs *flag.FlagSet) *searchFlags {
	var f searchFlags
	fs.StringVar(&f.profiles, "profiles", "", "comma-separated profile names (default: all configured)")
	fs.StringVar(&f.sortMode, "sort", "", "sort mode: distance | relevance (default: config)")
	fs.IntVar(&f.minScore, "min-score", -1, "override minimum score filter")
	fs.BoolVar(&f.showAll, "all", false, "disable score and irrelevance filters")
	fs.BoolVar(&f.breakdown, "breakdown", false, "print the score breakdown per hit")
	fs.BoolVar(&f.saveSnapshot, "save-snapshot", false, "persist the result list as the new snapshot")
	fs.BoolVar(&f.sendMail, "notify", false, "mail a digest of new hits (needs notify config)")
	fs.BoolVar(&f.verbose, "v", false, "verbose logging")
	return &f
}

func (f *searchFlags) apply(cfg config.Config) (config.Config, error) {
	if f.profiles != "" {
		want := map[string]bool{}
		for _, n := range strings.Split(f.profiles, ",") {
			want[strings.TrimSpace(n)] = true
		}
		var sel []config.Profile
		for _, p := range cfg.Profiles {
			if want[p.Name] {
				sel = append(sel, p)
				delete(want, p.Name)
			}
		}
		for n := range want {
			return cfg, fmt.Errorf("unknown profile %q", n)
		}
		cfg.Profiles = sel
	}
	if f.sortMode != "" {
		if f.sortMode != "distance" && f.sortMode != "relevance" {
			return cfg, fmt.Errorf("invalid sort mode %q", f.sortMode)
		}
		cfg.Scoring.SortMode = f.sortMode
	}
	if f.minScore >= 0 {
		cfg.Scoring.MinScore = f.minScore
	}
	if f.showAll {
		cfg.Scoring.OnlyRelevant = false
		cfg.Scoring.HideIrrelevant = false
	}
	return cfg, nil
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	f := bindSearchFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger.Init(f.verbose)

	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	cfg, err = f.apply(cfg)
	if err != nil {
		return err
	}

	client, closeDB, err := buildProvider(dir, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	files := state.NewFileStore(dir)
	snap, err := state.LoadSnapshot(files)
	if err != nil {
		log.Warn().Err(err).Msg("snapshot unreadable, diffing against empty set")
	}

	res := pipeline.Run(context.Background(), client, cfg, snap.Keys())
	renderReport(res, snap, f.breakdown)

	if f.saveSnapshot {
		if err := state.SaveSnapshot(files, res.Jobs, time.Now()); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		fmt.Println("\nSnapshot gespeichert.")
	}
	if f.sendMail {
		if err := mailNewHits(cfg, res); err != nil {
			log.Warn().Err(err).Msg("digest mail failed")
		}
	}
	return nil
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	f := bindSearchFlags(fs)
	interval := fs.Int("interval", 30, "minutes between runs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger.Init(f.verbose)

	if *interval <= 0 {
		return fmt.Errorf("interval must be positive, got %d", *interval)
	}

	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	cfg, err = f.apply(cfg)
	if err != nil {
		return err
	}

	client, closeDB, err := buildProvider(dir, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	files := state.NewFileStore(dir)

	// Each tick diffs against the snapshot of the previous tick, reports only
	// what is genuinely new, then advances the snapshot.
	scheduler.Every(context.Background(), time.Duration(*interval)*time.Minute, "watch", func(ctx context.Context) error {
		snap, err := state.LoadSnapshot(files)
		if err != nil {
			log.Warn().Err(err).Msg("snapshot unreadable, diffing against empty set")
		}

		res := pipeline.Run(ctx, client, cfg, snap.Keys())
		renderReport(res, snap, false)

		if watchShouldMail(cfg, res) {
			if err := mailNewHits(cfg, res); err != nil {
				log.Warn().Err(err).Msg("digest mail failed")
			}
		}
		return state.SaveSnapshot(files, res.Jobs, time.Now())
	})
	return nil
}

// watchShouldMail gates the per-tick digest: without a configured notifier
// the loop must stay silent instead of logging a failure every interval.
func watchShouldMail(cfg config.Config, res pipeline.Result) bool {
	return cfg.Notify.Enabled && len(res.NewKeys) > 0
}

func runDetails(args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("details needs a rank or reference number")
	}
	selector := args[0]

	fs := flag.NewFlagSet("details", flag.ExitOnError)
	f := bindSearchFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	logger.Init(f.verbose)

	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	cfg, err = f.apply(cfg)
	if err != nil {
		return err
	}

	client, closeDB, err := buildProvider(dir, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	snap, _ := state.LoadSnapshot(state.NewFileStore(dir))
	res := pipeline.Run(context.Background(), client, cfg, snap.Keys())

	j, ok := findJob(res.Jobs, selector)
	if !ok {
		return fmt.Errorf("no hit matches %q (ranks run 1..%d)", selector, len(res.Jobs))
	}

	// a failed detail fetch still renders the summary fields
	j, err = pipeline.Enrich(context.Background(), client, j)
	if err != nil {
		log.Warn().Err(err).Msg("detail fetch failed, showing summary")
	}
	renderDetails(j, f.breakdown)
	return nil
}

// findJob resolves a selector against the ranked list: a number matches the
// displayed rank, anything else the identity key or bare reference number.
func findJob(jobs []domain.Job, sel string) (domain.Job, bool) {
	if n, err := strconv.Atoi(sel); err == nil {
		for _, j := range jobs {
			if j.Rank == n {
				return j, true
			}
		}
		return domain.Job{}, false
	}
	for _, j := range jobs {
		if j.Key == sel || strings.TrimPrefix(j.Key, "ba:") == sel {
			return j, true
		}
	}
	return domain.Job{}, false
}

func runKeywords(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("keywords needs a subcommand: show | set <list> | reset [list]")
	}
	logger.Init(false)

	path, err := config.EnsureUserConfig(dataDir())
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	switch args[0] {
	case "show":
		fmt.Println("# focus")
		fmt.Println(config.KeywordsToText(cfg.Keywords.Focus))
		fmt.Println("\n# leadership")
		fmt.Println(config.KeywordsToText(cfg.Keywords.Leadership))
		fmt.Println("\n# negative")
		fmt.Println(config.KeywordsToText(cfg.Keywords.Negative))
		return nil

	case "set":
		if len(args) < 2 {
			return fmt.Errorf("keywords set needs a list name: focus | leadership | negative")
		}
		list, err := keywordList(&cfg, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Begriffe für %q eingeben (eine pro Zeile oder kommagetrennt), Ende mit Ctrl-D:\n", args[1])
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		*list = config.ParseKeywords(string(text))
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Printf("%d Begriffe für %q gespeichert.\n", len(*list), args[1])
		return nil

	case "reset":
		if len(args) < 2 {
			cfg.Keywords.Focus = append([]string(nil), config.DefaultFocusKeywords...)
			cfg.Keywords.Leadership = append([]string(nil), config.DefaultLeadershipKeywords...)
			cfg.Keywords.Negative = append([]string(nil), config.DefaultNegativeKeywords...)
		} else {
			list, err := keywordList(&cfg, args[1])
			if err != nil {
				return err
			}
			switch args[1] {
			case "focus":
				*list = append([]string(nil), config.DefaultFocusKeywords...)
			case "leadership":
				*list = append([]string(nil), config.DefaultLeadershipKeywords...)
			case "negative":
				*list = append([]string(nil), config.DefaultNegativeKeywords...)
			}
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Println("Keyword-Listen zurückgesetzt.")
		return nil

	default:
		return fmt.Errorf("unknown keywords subcommand %q", args[0])
	}
}

// keywordList maps a list name to the config field holding it.
func keywordList(cfg *config.Config, name string) (*[]string, error) {
	switch name {
	case "focus":
		return &cfg.Keywords.Focus, nil
	case "leadership":
		return &cfg.Keywords.Leadership, nil
	case "negative":
		return &cfg.Keywords.Negative, nil
	default:
		return nil, fmt.Errorf("unknown keyword list %q (focus | leadership | negative)", name)
	}
}

func runSnapshot(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("snapshot needs a subcommand: save | clear | show")
	}
	logger.Init(false)

	dir := dataDir()
	files := state.NewFileStore(dir)

	switch args[0] {
	case "save":
		cfg, err := loadConfig(dir)
		if err != nil {
			return err
		}
		client, closeDB, err := buildProvider(dir, cfg)
		if err != nil {
			return err
		}
		defer closeDB()

		snap, _ := state.LoadSnapshot(files)
		res := pipeline.Run(context.Background(), client, cfg, snap.Keys())
		if err := state.SaveSnapshot(files, res.Jobs, time.Now()); err != nil {
			return err
		}
		fmt.Printf("Snapshot gespeichert: %d Treffer.\n", len(res.Jobs))
		return nil

	case "clear":
		if err := state.ClearSnapshot(files); err != nil {
			return err
		}
		fmt.Println("Snapshot gelöscht.")
		return nil

	case "show":
		snap, err := state.LoadSnapshot(files)
		if err != nil {
			return err
		}
		if snap.Timestamp == nil {
			fmt.Println("— noch kein Snapshot gespeichert")
			return nil
		}
		fmt.Printf("Snapshot vom %s: %d Treffer\n", *snap.Timestamp, len(snap.Items))
		for i, it := range snap.Items {
			fmt.Printf("%3d. %s | %s | %s | Score %d\n", i+1, it.Title, it.Company, it.Location, it.Score)
		}
		return nil

	default:
		return fmt.Errorf("unknown snapshot subcommand %q", args[0])
	}
}

func runOrgs(args []string) error {
	logger.Init(false)

	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	files := state.NewFileStore(dir)
	checks, err := state.LoadChecks(files)
	if err != nil {
		return err
	}

	for _, o := range cfg.Orgs {
		e := checks.Entry(o.Name)
		star := "  "
		if o.HighPriority() {
			star = "★ "
		}
		last := e.LastCheckedDate
		if last == "" {
			last = "nie geprüft"
		}
		fmt.Printf("%s%s\n", star, o.Name)
		fmt.Printf("    %s\n", o.CareerURL)
		fmt.Printf("    zuletzt: %s | interessant: %d (vorher %d, Δ%+d)\n", last, e.Count, e.PrevCount, e.Diff())
		if e.Notes != "" {
			fmt.Printf("    Notizen: %s\n", e.Notes)
		}
	}
	return nil
}

func runCheck(args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("check needs an organization name")
	}
	name := args[0]

	fs := flag.NewFlagSet("check", flag.ExitOnError)
	count := fs.Int("count", -1, "number of interesting postings found (marks checked)")
	notes := fs.String("notes", "", "set free-text notes")
	reset := fs.Bool("reset", false, "reset the organization to defaults")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	logger.Init(false)

	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	found := false
	for _, o := range cfg.Orgs {
		if o.Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("organization %q is not in the directory", name)
	}

	files := state.NewFileStore(dir)
	checks, err := state.LoadChecks(files)
	if err != nil {
		return err
	}

	switch {
	case *reset:
		checks.Reset(name)
		fmt.Printf("%s zurückgesetzt.\n", name)
	case *count >= 0:
		checks.MarkChecked(name, *count, time.Now())
		if *notes != "" {
			checks.SetNotes(name, *notes)
		}
		e := checks.Entry(name)
		fmt.Printf("%s geprüft: %d interessant (Δ%+d).\n", name, e.Count, e.Diff())
	case *notes != "":
		checks.SetNotes(name, *notes)
		fmt.Printf("Notizen für %s gespeichert.\n", name)
	default:
		return fmt.Errorf("nothing to do: pass -count, -notes or -reset")
	}

	return state.SaveChecks(files, checks)
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "json", "output format: json | csv")
	outPath := fs.String("o", "", "output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger.Init(false)

	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	files := state.NewFileStore(dir)
	checks, err := state.LoadChecks(files)
	if err != nil {
		return err
	}
	rows := state.ExportRows(cfg.Orgs, checks)

	out := os.Stdout
	if *outPath != "" {
		fh, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer fh.Close()
		out = fh
	}

	switch *format {
	case "json":
		return state.WriteJSON(out, rows)
	case "csv":
		return state.WriteCSV(out, rows)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func runSMTPPass(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("smtp-pass needs a subcommand: set | clear")
	}
	logger.Init(false)

	cfg, err := loadConfig(dataDir())
	if err != nil {
		return err
	}
	account := secrets.SMTPKeyringAccount(cfg)

	switch args[0] {
	case "set":
		fmt.Print("SMTP password: ")
		var pw string
		if _, err := fmt.Scanln(&pw); err != nil {
			return err
		}
		if err := secrets.SetSMTPPassword(account, pw); err != nil {
			return err
		}
		fmt.Println("Stored in keychain.")
		return nil
	case "clear":
		if err := secrets.DeleteSMTPPassword(account); err != nil {
			return err
		}
		fmt.Println("Removed from keychain.")
		return nil
	default:
		return fmt.Errorf("unknown smtp-pass subcommand %q", args[0])
	}
}

func mailNewHits(cfg config.Config, res pipeline.Result) error {
	if !cfg.Notify.Enabled {
		return fmt.Errorf("notify is not enabled in the config")
	}
	var fresh []domain.Job
	for _, j := range res.Jobs {
		if j.New {
			fresh = append(fresh, j)
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	pw, err := secrets.GetSMTPPassword(secrets.SMTPKeyringAccount(cfg))
	if err != nil {
		return err
	}

	msg, err := notify.NewRenderer().Render(fresh)
	if err != nil {
		return err
	}
	sender := notify.NewEmailSender(notify.EmailConfig{
		SMTPHost: cfg.Notify.SMTPHost,
		SMTPPort: cfg.Notify.SMTPPort,
		Username: cfg.Notify.Username,
		Password: pw,
		From:     cfg.Notify.From,
		To:       cfg.Notify.To,
		Enabled:  true,
	})
	return sender.Send(msg)
}
