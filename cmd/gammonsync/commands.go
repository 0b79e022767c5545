package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mboeker/gammonsync/internal/config"
	"github.com/mboeker/gammonsync/internal/dailygammon"
	"github.com/mboeker/gammonsync/internal/database"
	"github.com/mboeker/gammonsync/internal/engine"
	"github.com/mboeker/gammonsync/internal/grid"
	"github.com/mboeker/gammonsync/internal/journal"
	"github.com/mboeker/gammonsync/internal/league"
	"github.com/mboeker/gammonsync/internal/metrics"
	"github.com/mboeker/gammonsync/internal/notifier"
	"github.com/mboeker/gammonsync/internal/notifier/slack"
)

var (
	dryRun       bool
	auto         bool
	historyLimit int
	playersFlag  string
)

func init() {
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Reconcile without saving the workbook or sending notifications")
	syncCmd.Flags().BoolVar(&auto, "auto", false, "Save the workbook without asking")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to show")
	initCmd.Flags().StringVar(&playersFlag, "players", "", "Comma-separated roster, each entry name[:userID]")
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(initCmd)
}

// leagueArg returns the league code argument, defaulting to the fourth
// division.
func leagueArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "4d"
}

func workbookPath(cfg config.Config, leagueCode string) string {
	return filepath.Join(cfg.DataDir, grid.WorkbookName(cfg.Season, leagueCode))
}

func openJournal(cfg config.Config) (journal.Journal, error) {
	db, err := database.InitDB(filepath.Join(cfg.DataDir, cfg.DBName), cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return journal.New(db), nil
}

var syncCmd = &cobra.Command{
	Use:   "sync [league]",
	Short: "Reconcile a league workbook against DailyGammon",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		leagueCode := leagueArg(args)

		path := workbookPath(cfg, leagueCode)
		store, err := grid.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open workbook %s: %w", path, err)
		}

		jour, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer jour.Close()

		metricsSvc := metrics.NewService(cfg.PushgatewayURL)
		var notif notifier.Notifier = notifier.Noop{}
		if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
			notif = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
		} else {
			log.Info("No Slack channel configured, run reports stay local")
		}
		client := dailygammon.NewClient(cfg.Login, cfg.Password)

		e := engine.New(store, client, notif, metricsSvc, jour)
		_, err = e.Run(cmd.Context(), engine.Options{
			League: leagueCode,
			Season: cfg.Season,
			DryRun: dryRun,
			Auto:   auto,
		})
		return err
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [league]",
	Short: "List recent reconciliation runs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadLocal()
		jour, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer jour.Close()

		var leagueCode string
		if len(args) > 0 {
			leagueCode = args[0]
		}
		reports, err := jour.History(cmd.Context(), leagueCode, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to read journal: %w", err)
		}
		if len(reports) == 0 {
			fmt.Println("No runs journaled yet.")
			return nil
		}
		for _, r := range reports {
			mode := "saved"
			switch {
			case r.DryRun:
				mode = "dry-run"
			case !r.Saved:
				mode = "unsaved"
			}
			fmt.Printf("%s  %-4s  %2d scores  %2d finals  %2d discovered  %2d warnings  %-7s  %s\n",
				r.StartedAt.Format("2006-01-02 15:04"),
				r.League,
				r.ScoresWritten, r.FinalsWritten, len(r.DiscoveredIDs), len(r.Warnings),
				mode, r.RunID)
		}
		return nil
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster [league]",
	Short: "Show the workbook roster and completion state",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadLocal()
		leagueCode := leagueArg(args)

		path := workbookPath(cfg, leagueCode)
		store, err := grid.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open workbook %s: %w", path, err)
		}
		roster, err := store.Roster()
		if err != nil {
			return fmt.Errorf("failed to read roster: %w", err)
		}

		fmt.Printf("Roster for league %s, season %s (%d players)\n", leagueCode, cfg.Season, len(roster))
		for _, p := range roster {
			if p.ExternalID != "" {
				fmt.Printf("  %-24s user %s\n", p.Name, p.ExternalID)
			} else {
				fmt.Printf("  %-24s (no user id)\n", p.Name)
			}
		}

		var identified, finished, missing int
		for _, row := range store.RowPlayers() {
			for _, col := range store.ColOpponents() {
				if league.Fold(row) == league.Fold(col) {
					continue
				}
				p := league.Pairing{Row: row, Col: col}
				_, ok, err := store.MatchID(p)
				if err != nil {
					// A malformed value still occupies its cell.
					ok = true
				}
				scores, err := store.Scores(p)
				if err != nil {
					continue
				}
				switch league.StateOf(ok, scores) {
				case league.StateFinished:
					finished++
				case league.StateIdentified:
					identified++
				default:
					missing++
				}
			}
		}
		fmt.Printf("Pairings: %d finished, %d identified, %d without id\n", finished, identified, missing)
		if store.Completed() {
			fmt.Println("All match identifiers filled.")
		}
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init [league]",
	Short: "Create an empty league workbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if playersFlag == "" {
			return fmt.Errorf("--players is required, e.g. --players \"mboeker:31672,hkolbe:28914\"")
		}
		roster, err := parseRoster(playersFlag)
		if err != nil {
			return err
		}
		cfg := config.LoadLocal()
		leagueCode := leagueArg(args)

		path := workbookPath(cfg, leagueCode)
		if err := grid.CreateWorkbook(path, dailygammon.DefaultBaseURL, roster); err != nil {
			return fmt.Errorf("failed to create workbook: %w", err)
		}
		fmt.Printf("Created %s with %d players\n", path, len(roster))
		return nil
	},
}

// parseRoster splits the comma-separated roster flag. Each entry is a player
// name, optionally followed by a colon and the DailyGammon user id.
func parseRoster(flag string) ([]league.Player, error) {
	var roster []league.Player
	for _, entry := range strings.Split(flag, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, id, _ := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("roster entry %q has no player name", entry)
		}
		roster = append(roster, league.Player{Name: name, ExternalID: strings.TrimSpace(id)})
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("roster flag %q lists no players", flag)
	}
	return roster, nil
}
