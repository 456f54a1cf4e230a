package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/hupe1980/roundtable"
	"github.com/hupe1980/roundtable/config"
	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/logging"
	"github.com/hupe1980/roundtable/model"
	anthropicmodel "github.com/hupe1980/roundtable/model/anthropic"
	openaimodel "github.com/hupe1980/roundtable/model/openai"
	"github.com/hupe1980/roundtable/profile"
	"github.com/hupe1980/roundtable/token"
)

var (
	briefPath     string
	provider      string
	modelName     string
	teamPath      string
	sequential    bool
	heuristicOnly bool
	useTiktoken   bool
	maxMessages   int
	maxSeconds    int
	jsonOut       string
	quiet         bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a planning session for a project brief",
	Example: `  roundtable run --brief brief.yaml
  roundtable run --brief brief.yaml --provider anthropic
  roundtable run --brief brief.yaml --sequential --out result.json`,
	RunE: runSession,
}

func init() {
	runCmd.Flags().StringVar(&briefPath, "brief", "", "path to the project brief YAML (required)")
	runCmd.Flags().StringVar(&provider, "provider", "", "model provider: mock, anthropic or openai")
	runCmd.Flags().StringVar(&modelName, "model", "", "provider-specific model identifier")
	runCmd.Flags().StringVar(&teamPath, "team", "", "path to a custom team YAML")
	runCmd.Flags().BoolVar(&sequential, "sequential", false, "use the deterministic round-robin orchestrator")
	runCmd.Flags().BoolVar(&heuristicOnly, "heuristic-only", false, "skip model-backed willingness polls")
	runCmd.Flags().BoolVar(&useTiktoken, "tiktoken", false, "price the token budget with a real tokenizer")
	runCmd.Flags().IntVar(&maxMessages, "max-messages", 0, "override the message budget")
	runCmd.Flags().IntVar(&maxSeconds, "max-seconds", 0, "override the wall-clock budget in seconds")
	runCmd.Flags().StringVar(&jsonOut, "out", "", "write the full result as JSON to this file")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress the transcript, print only the summary")
	_ = runCmd.MarkFlagRequired("brief")
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := config.Read(cfgPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	brief, err := config.ReadBrief(briefPath)
	if err != nil {
		return err
	}

	logger := buildLogger(cfg.LogLevel)
	client, err := buildClient(cfg)
	if err != nil {
		return err
	}

	var estimator token.Estimator
	if useTiktoken {
		est, err := token.NewTiktokenEstimator("cl100k_base")
		if err != nil {
			return err
		}
		estimator = est
	}

	var profiles *profile.Store
	if cfg.TeamFile != "" {
		profiles, err = profile.LoadYAML(cfg.TeamFile)
		if err != nil {
			return err
		}
	}

	rt, err := roundtable.New(client, func(o *roundtable.Options) {
		o.Profiles = profiles
		o.Limits = cfg.Limits.ToLimits()
		o.Sequential = sequential
		o.HeuristicOnly = cfg.HeuristicOnly
		o.Estimator = estimator
		o.Logger = logger
	})
	if err != nil {
		return err
	}

	res, err := rt.Run(cmd.Context(), brief)
	if err != nil {
		return err
	}

	if !quiet {
		printTranscript(cmd, rt.Profiles(), res)
	}
	printSummary(cmd, res)

	sessionLog := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.ParseLevel(cfg.LogLevel),
		Format:    "text",
		Output:    os.Stderr,
		Component: "cli",
		SessionID: res.SessionID,
	})
	sessionLog.LogSessionComplete(
		string(res.Summary.TerminationReason),
		res.Summary.TotalMessages,
		res.Summary.TotalArtifacts,
		res.Summary.TotalTokens,
		res.Summary.Duration,
	)

	if jsonOut != "" {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		if err := os.WriteFile(jsonOut, data, 0o644); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	}
	return nil
}

// applyFlagOverrides layers explicitly set flags over the file config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("provider") {
		cfg.Provider = provider
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = modelName
	}
	if cmd.Flags().Changed("team") {
		cfg.TeamFile = teamPath
	}
	if cmd.Flags().Changed("heuristic-only") {
		cfg.HeuristicOnly = heuristicOnly
	}
	if cmd.Flags().Changed("max-messages") {
		cfg.Limits.MaxMessages = maxMessages
	}
	if cmd.Flags().Changed("max-seconds") {
		cfg.Limits.MaxSeconds = maxSeconds
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
}

func buildLogger(level string) logging.Logger {
	var slogLevel slog.Level
	switch logging.ParseLevel(level) {
	case logging.LogLevelDebug:
		slogLevel = slog.LevelDebug
	case logging.LogLevelWarn:
		slogLevel = slog.LevelWarn
	case logging.LogLevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})
	return logging.NewSlogAdapter(slog.New(handler))
}

func buildClient(cfg *config.Config) (model.Client, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return anthropicmodel.New(func(o *anthropicmodel.Options) {
			if cfg.Model != "" {
				o.Model = anthropic.Model(cfg.Model)
			}
			o.Temperature = cfg.Temperature
		}), nil
	case config.ProviderOpenAI:
		return openaimodel.New(func(o *openaimodel.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.Temperature = cfg.Temperature
		}), nil
	case config.ProviderMock:
		client := model.NewMockClient("offline")
		client.SetFallback("Here's my take: scope a small pilot first, validate it with real dispatchers, then expand.")
		return client, nil
	default:
		return nil, &core.ConfigurationError{Field: "provider", Reason: fmt.Sprintf("unknown provider %q", cfg.Provider)}
	}
}

func printTranscript(cmd *cobra.Command, profiles *profile.Store, res *core.Result) {
	names := make(map[string]string, profiles.Len())
	for _, p := range profiles.All() {
		names[p.ID] = p.DisplayName
	}
	for _, m := range res.Messages {
		name := names[m.AgentID]
		if name == "" {
			name = m.AgentID
		}
		cmd.Printf("[%s] (%s) %s\n\n", name, m.Type, m.Content)
	}
}

func printSummary(cmd *cobra.Command, res *core.Result) {
	s := res.Summary
	cmd.Printf("Session %s finished: %s\n", res.SessionID, s.TerminationReason)
	cmd.Printf("  messages: %d  rounds: %d  tokens: %d  duration: %s\n",
		s.TotalMessages, s.RoundsCompleted, s.TotalTokens, s.Duration.Round(time.Millisecond))
	if len(res.Artifacts) == 0 {
		return
	}
	cmd.Printf("  deliverables (%d):\n", len(res.Artifacts))
	arts := make([]core.Artifact, 0, len(res.Artifacts))
	for _, a := range res.Artifacts {
		arts = append(arts, a)
	}
	sort.Slice(arts, func(i, j int) bool { return arts[i].Timestamp.Before(arts[j].Timestamp) })
	for _, a := range arts {
		cmd.Printf("    - [%s] %s (by %s)\n", a.Type, a.Title, a.AuthorAgentID)
	}
}
