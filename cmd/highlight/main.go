package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ddoberne/statcast-highlight-tool/internal/caption"
	"github.com/ddoberne/statcast-highlight-tool/internal/config"
	"github.com/ddoberne/statcast-highlight-tool/internal/database"
	"github.com/ddoberne/statcast-highlight-tool/internal/download"
	"github.com/ddoberne/statcast-highlight-tool/internal/leaderboard"
	"github.com/ddoberne/statcast-highlight-tool/internal/names"
	"github.com/ddoberne/statcast-highlight-tool/internal/pipeline"
	"github.com/ddoberne/statcast-highlight-tool/internal/rules"
	"github.com/ddoberne/statcast-highlight-tool/internal/savant"
	"github.com/ddoberne/statcast-highlight-tool/internal/statcast"
	"github.com/ddoberne/statcast-highlight-tool/internal/video"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "highlight",
	Short:   "Statcast leaderboards and highlight reels",
	Long:    "highlight ranks pitches by umpire misses, exit velocity, and win probability, then compiles the top clips into a single video.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(reelCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("highlight", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/highlight/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to set ffmpeg paths, browser options, and zone tolerance.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache and run history",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Printf("Database: %s\n\n", db.Path())
		fmt.Println("Cache:")
		fmt.Printf("  Days cached: %d\n", stats.CachedDays)
		fmt.Printf("  Pitches: %d\n", stats.CachedPitches)
		fmt.Printf("  Players resolved: %d\n", stats.ResolvedPlayers)
		fmt.Printf("\nRuns: %d\n", stats.Runs)

		runs, err := db.GetRecentRuns(5)
		if err != nil {
			return fmt.Errorf("getting runs: %w", err)
		}
		for _, r := range runs {
			out := "(no output)"
			if r.OutputPath != nil {
				out = *r.OutputPath
			}
			fmt.Printf("  %s %s..%s: %d selected, %d compiled, %d skipped -> %s\n",
				r.Rule, r.StartDate, r.EndDate, r.Selected, r.Compiled, r.Skipped, out)
		}
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List available scoring rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := rules.NewRegistry(cfg.Zone.Correction)
		fmt.Println("Rules:")
		for _, name := range registry.Names() {
			rule, err := registry.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Printf("  %-22s %s\n", name, rule.Description)
		}
		return nil
	},
}

// --- leaderboard command ---

var (
	startDate string
	endDate   string
	ruleName  string
	capSize   int
	daily     bool
	ascending bool
	teams     []string
	players   []int
)

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start)")
	cmd.Flags().StringVarP(&ruleName, "rule", "r", "worst_called_strikes", "Scoring rule")
	cmd.Flags().IntVarP(&capSize, "top", "n", 5, "Maximum number of entries")
	cmd.Flags().BoolVar(&daily, "daily", false, "Cap per calendar day instead of overall")
	cmd.Flags().BoolVar(&ascending, "ascending", false, "Sort ascending instead of descending")
	cmd.Flags().StringSliceVar(&teams, "teams", nil, "Restrict to these team abbreviations")
	cmd.Flags().IntSliceVar(&players, "players", nil, "Restrict to these MLB player IDs")
	cmd.MarkFlagRequired("start")
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print a ranked leaderboard for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()
		entries, err := buildLeaderboard(ctx, db)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No pitches matched.")
			return nil
		}

		gen := caption.New(namesClient(db))
		fmt.Printf("%s (%s to %s):\n", ruleName, startDate, endDate)
		for _, e := range entries {
			fmt.Println(gen.Line(ctx, e.Rank, e.Pitch, e.Flavor))
		}
		return nil
	},
}

// --- reel command ---

var (
	outputPath string
	maxClip    float64
	countdown  bool
	noCaptions bool
	awayFeed   bool
	noTrim     bool
)

var reelCmd = &cobra.Command{
	Use:   "reel",
	Short: "Compile the leaderboard into one highlight video",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()
		entries, err := buildLeaderboard(ctx, db)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("no pitches matched rule %q between %s and %s", ruleName, startDate, endDate)
		}
		fmt.Printf("Selected %d clips for %s.\n", len(entries), ruleName)

		gen := caption.New(namesClient(db))
		captions := make([]string, len(entries))
		for i, e := range entries {
			captions[i] = gen.Line(ctx, e.Rank, e.Pitch, e.Flavor)
		}

		session, err := savant.NewSession(savant.SessionConfig{
			BaseURL:      cfg.Savant.BaseURL,
			Headless:     cfg.Savant.Headless,
			SettleSearch: time.Duration(cfg.Savant.SettleSearchSeconds) * time.Second,
			SettleClick:  time.Duration(cfg.Savant.SettleClickSeconds) * time.Second,
		})
		if err != nil {
			return fmt.Errorf("starting browser: %w", err)
		}
		defer session.Close()

		out := outputPath
		if out == "" {
			out = cfg.Output.DefaultOutput
		}

		compiler := pipeline.New(
			session,
			download.New(5*time.Minute),
			video.NewEditor(cfg.Video.FFmpeg, cfg.Video.FFprobe),
		)
		maxSeconds := cfg.Video.MaxClipSeconds
		if maxClip > 0 {
			maxSeconds = maxClip
		}
		result, err := compiler.Run(ctx, entries, captions, pipeline.Options{
			OutputPath:     out,
			MaxClipSeconds: maxSeconds,
			TruncateLead:   !noTrim,
			LeadSeconds:    cfg.Video.LeadInSeconds,
			Countdown:      countdown,
			Captions:       !noCaptions,
			AwayFeed:       awayFeed,
		})
		if result != nil {
			for _, clip := range result.Clips {
				if clip.State == pipeline.StateSkipped {
					fmt.Printf("  #%d skipped: %s\n", clip.Rank, clip.Reason)
				}
			}
			if dbErr := db.InsertRun(ruleName, startDate, endDate,
				len(entries), result.Included, result.Skipped, result.OutputPath); dbErr != nil {
				log.Printf("recording run: %v", dbErr)
			}
		}
		if err != nil {
			return err
		}

		fmt.Printf("\n%s\n", result.Summary())
		fmt.Printf("Wrote %s\n", result.OutputPath)
		return nil
	},
}

func init() {
	addSelectionFlags(leaderboardCmd)
	addSelectionFlags(reelCmd)
	reelCmd.Flags().StringVarP(&outputPath, "out", "o", "", "Output video path")
	reelCmd.Flags().Float64Var(&maxClip, "max-clip", 0, "Per-clip duration cap in seconds (overrides config)")
	reelCmd.Flags().BoolVar(&countdown, "countdown", false, "Play clips worst-to-first")
	reelCmd.Flags().BoolVar(&noCaptions, "no-captions", false, "Skip caption overlays")
	reelCmd.Flags().BoolVar(&awayFeed, "away-feed", false, "Prefer the away broadcast feed")
	reelCmd.Flags().BoolVar(&noTrim, "no-trim", false, "Keep the full broadcast lead-in")
}

// buildLeaderboard fetches the pitch data for the flag-selected range and
// ranks it. Days already in the cache are not re-fetched.
func buildLeaderboard(ctx context.Context, db *database.DB) ([]leaderboard.Entry, error) {
	if endDate == "" {
		endDate = startDate
	}
	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD", d)
		}
	}
	if endDate < startDate {
		return nil, fmt.Errorf("end date %s is before start date %s", endDate, startDate)
	}

	client := statcast.NewClient(cfg.Statcast.BaseURL, cfg.Statcast.ChunkDays,
		time.Duration(cfg.Statcast.TimeoutSeconds)*time.Second)
	source := statcast.NewCachingSource(client, db)

	pitches, err := source.Fetch(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("fetching pitches: %w", err)
	}
	log.Printf("Loaded %d pitches for %s..%s", len(pitches), startDate, endDate)

	builder := leaderboard.New(rules.NewRegistry(cfg.Zone.Correction))
	return builder.Build(pitches, ruleName, leaderboard.Options{
		Teams:     teams,
		Players:   players,
		Cap:       capSize,
		Daily:     daily,
		Ascending: ascending,
	})
}

func namesClient(db *database.DB) *names.Client {
	return names.NewClient(cfg.Names.BaseURL, db, 10*time.Second)
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "highlight.db")
	return database.Open(dbPath)
}
