package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kunal/vetta/internal/app"
	"github.com/kunal/vetta/internal/evaluate"
	"github.com/kunal/vetta/internal/fallback"
	"github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/llm"
	"github.com/kunal/vetta/internal/policy"
	"github.com/kunal/vetta/internal/profile"
	"github.com/kunal/vetta/internal/qgen"
	"github.com/kunal/vetta/internal/store"
	"github.com/kunal/vetta/internal/transcript"
)

// runInterview opens the store, builds dependencies, and launches the TUI.
func runInterview(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	eventRepo := st.EventRepo()

	cfg := policy.Default()
	if n, _ := cmd.Flags().GetInt("questions"); n > 0 {
		cfg.MaxQuestions = n
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("session policy: %w", err)
	}

	heuristic := fallback.NewEvaluator(cfg)

	opts := app.Options{
		Pool: fallback.NewPool(),
	}

	// Build LLM provider (optional — the app runs offline without it).
	var primary interview.Evaluator = heuristic
	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Running offline: built-in question pool and heuristic scoring.")
	} else {
		opts.Generator = qgen.New(provider, qgen.DefaultConfig())
		primary = evaluate.New(provider, evaluate.DefaultConfig())
	}
	opts.Controller = interview.NewController(cfg, primary, heuristic)

	// Persist lifecycle and turn events as the session progresses.
	recorder := transcript.NewRecorder(eventRepo)
	opts.Controller.Subscribe(recorder.Observe)

	opts.Role, opts.Candidate, err = loadProfiles(cmd, provider)
	if err != nil {
		return err
	}

	return app.Run(opts)
}

// loadProfiles resolves the role and candidate, parsing free-text
// files through the LLM when given, falling back to built-in samples.
func loadProfiles(cmd *cobra.Command, provider llm.Provider) (profile.Role, profile.Candidate, error) {
	rolePath, _ := cmd.Flags().GetString("role")
	candPath, _ := cmd.Flags().GetString("candidate")

	role := profile.SampleRole()
	cand := profile.SampleCandidate()

	if rolePath == "" && candPath == "" {
		return role, cand, nil
	}
	if provider == nil {
		return role, cand, fmt.Errorf("--role and --candidate need an LLM provider to parse free text")
	}

	parser := profile.NewParser(provider)
	ctx := cmd.Context()

	if rolePath != "" {
		text, err := os.ReadFile(rolePath)
		if err != nil {
			return role, cand, fmt.Errorf("read role file: %w", err)
		}
		parsed, err := parser.ParseRole(ctx, string(text))
		if err != nil {
			return role, cand, fmt.Errorf("parse role: %w", err)
		}
		role = *parsed
	}
	if candPath != "" {
		text, err := os.ReadFile(candPath)
		if err != nil {
			return role, cand, fmt.Errorf("read candidate file: %w", err)
		}
		parsed, err := parser.ParseCandidate(ctx, string(text))
		if err != nil {
			return role, cand, fmt.Errorf("parse candidate: %w", err)
		}
		cand = *parsed
	}
	return role, cand, nil
}
