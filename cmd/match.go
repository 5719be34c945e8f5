package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/palettehq/artmatch/internal/ai"
	"github.com/palettehq/artmatch/internal/ai/gemini"
	"github.com/palettehq/artmatch/internal/artist"
	"github.com/palettehq/artmatch/internal/logger"
	"github.com/palettehq/artmatch/internal/matching"
	"github.com/palettehq/artmatch/internal/report"
	"github.com/palettehq/artmatch/internal/secrets"
	"github.com/palettehq/artmatch/internal/signals"
)

const (
	PromptShowMatches       = "Show ranked matches"
	PromptDetailedTopMatch  = "Detailed report for the top match"
	PromptRequirements      = "Show project requirements analysis"
	PromptReportByLocation  = "Report by location"
	PromptMatchesToFile     = "Dump matches to file"
	PromptAppendExcludeFile = "Append all matches to exclude file"
	PromptExit              = "Exit"
)

var errExit = errors.New("exit requested")

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank roster artists against a requester and a collaboration preference",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("roster", "r", "", "path to the roster file with artist profiles")
	matchCmd.Flags().String("requester", "", "id of the artist requesting the match")
	matchCmd.Flags().StringP("preference", "p", "", "collaboration preference text. Defaults to the requester's stored preference.")
	matchCmd.Flags().Float64("min-score", 0, "drop matches below this compatibility score")
	matchCmd.Flags().IntP("top", "n", 0, "keep only this many best matches. Zero keeps all.")
	matchCmd.Flags().StringP("exclude-file", "e", "", "special file with artists to exclude. Default is unset.")

	viper.BindPFlag("roster", matchCmd.Flags().Lookup("roster"))
	viper.BindPFlag("requester", matchCmd.Flags().Lookup("requester"))
	viper.BindPFlag("preference", matchCmd.Flags().Lookup("preference"))
	viper.BindPFlag("min-score", matchCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("top", matchCmd.Flags().Lookup("top"))
	viper.BindPFlag("exclude-file", matchCmd.Flags().Lookup("exclude-file"))
}

// match is the main command for the cli.
func match(_ *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the artmatch", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	zlog.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		zlog.Fatal("config is required")
	}

	if strings.TrimSpace(config.Roster) == "" {
		zlog.Fatal("roster file is required",
			zap.String("hint", "set the --roster flag or the 'roster' key in the configuration file"),
		)
	}

	roster, err := artist.LoadRoster(config.Roster)
	if err != nil {
		zlog.Fatal("loading roster", zap.Error(err))
	}

	zlog.Info("loading roster", zap.Int("count", roster.Len()))

	if roster.Len() == 0 {
		zlog.Info("exiting", zap.String("reason", "no artists in roster"))
		return
	}

	requesterID := strings.TrimSpace(config.Requester)
	if requesterID == "" {
		requesterID, err = selectRequester(roster)
		if err != nil {
			zlog.Fatal("selecting requester", zap.Error(err))
		}
	}

	enricher, err := prepareEnricher(ctx, config.AI, zlog)
	if err != nil {
		zlog.Warn("skipping AI enrichment", zap.Error(err))
	}

	extractor := signals.NewExtractor(nil)
	ranker := matching.NewRanker(extractor, nil, enricher, zlog)

	matches, err := ranker.Rank(ctx, requesterID, config.Preference, roster)
	if err != nil {
		zlog.Fatal("ranking failed", zap.Error(err))
	}

	if matches.Len() == 0 {
		zlog.Info("exiting", zap.String("reason", "no matches found"))
		return
	}

	refinerCfg := &matching.Config{
		MinScore:    config.MinScore,
		Top:         config.Top,
		ExcludeFile: config.ExcludeFile,
	}
	steps := []matching.Refiner{matching.NewMinScore(), matching.NewTop(), matching.NewExcludeFile()}

	matches, err = matching.Run(ctx, refinerCfg, matching.Deps{Logger: zlog}, steps, matches)
	if err != nil {
		zlog.Fatal("refining failed", zap.Error(err))
	}

	if matches.Len() == 0 {
		zlog.Info("exiting", zap.String("reason", "no matches left after refiners"))
		return
	}

	preference := strings.TrimSpace(config.Preference)
	if preference == "" {
		if requester := roster.FindByID(requesterID); requester != nil {
			preference = requester.PreferenceText
		}
	}

	prompt := promptui.Select{
		Label: "Choose an action",
		Items: []string{
			PromptShowMatches,
			PromptDetailedTopMatch,
			PromptRequirements,
			PromptReportByLocation,
			PromptMatchesToFile,
			PromptAppendExcludeFile,
			PromptExit,
		},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			zlog.Fatal("exiting", zap.Error(err))
		}

		zlog.Info("current list of matches", zap.Int("count", matches.Len()))

		if err := handleAction(action, zlog, extractor, matches, preference, config.ExcludeFile); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			zlog.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, zlog *zap.Logger, extractor *signals.Extractor, matches *matching.Matches, preference, excludeFile string) error {
	switch action {
	case PromptShowMatches:
		pretty, _ := json.MarshalIndent(summarize(matches), "", "  ")
		zlog.Info(string(pretty), zap.Int("matches count", matches.Len()))
		return nil
	case PromptDetailedTopMatch:
		fmt.Println(report.FormatDetailedMatch(matches.Top()))
		return nil
	case PromptRequirements:
		fmt.Println(report.FormatProjectRequirements(preference, extractor.AnalyzePreference(preference)))
		return nil
	case PromptReportByLocation:
		pretty, _ := json.MarshalIndent(matchedRoster(matches).ReportByLocation(), "", "  ")
		zlog.Info(string(pretty), zap.Int("matches count", matches.Len()))
		return nil
	case PromptMatchesToFile:
		filename, err := matches.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		zlog.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendExcludeFile:
		return appendToExcludeFile(zlog, matches, excludeFile)
	case PromptExit:
		zlog.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func appendToExcludeFile(zlog *zap.Logger, matches *matching.Matches, excludeFile string) error {
	if strings.TrimSpace(excludeFile) == "" {
		return errors.New("exclude file is not configured")
	}

	excluded, err := artist.GetExcludedArtistsFromFile(excludeFile)
	if err != nil {
		return err
	}

	excluded.Append(matchedRoster(matches).ToExcluded())

	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	zlog.Info("appended to exclude file", zap.String("filename", excludeFile))

	matches.Exclude(excluded.ArtistIDs())
	return nil
}

func summarize(matches *matching.Matches) []map[string]any {
	summary := make([]map[string]any, 0, matches.Len())
	for _, match := range matches.Items {
		summary = append(summary, map[string]any{
			"id":              match.Artist.ID,
			"name":            match.Artist.Name,
			"score":           match.Score,
			"tier":            match.Tier,
			"analysis_source": match.AnalysisSource,
			"insights":        match.Insights,
		})
	}
	return summary
}

func matchedRoster(matches *matching.Matches) *artist.Roster {
	roster := &artist.Roster{}
	for _, match := range matches.Items {
		roster.Items = append(roster.Items, match.Artist)
	}
	return roster
}

func selectRequester(roster *artist.Roster) (string, error) {
	items := make([]string, 0, roster.Len())
	for _, profile := range roster.Items {
		items = append(items, fmt.Sprintf("%s %s / %s", profile.ID, profile.Name, profile.Location))
	}

	requesterPrompt := promptui.Select{
		Label: "Choose the requesting artist and press ENTER",
		Items: items,
	}

	_, selected, err := requesterPrompt.Run()
	if err != nil {
		return "", err
	}

	return strings.Split(selected, " ")[0], nil
}

func prepareEnricher(ctx context.Context, cfg *AIConfig, zlog *zap.Logger) (ai.Enricher, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai enrichment is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	aiLogger := logger.WithCommonFields(zlog, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, aiLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewEnricher(generator, aiLogger, cfg.Gemini.MaxLogLength), nil
}
