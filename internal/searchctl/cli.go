package searchctl

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func defaultAddr() string {
	if v := os.Getenv("SEARCHD_ADDR"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

// buildRootCmd is a convenience for help-only fallbacks.
func buildRootCmd() *cobra.Command { return buildRootCmdWith(&Config{Addr: defaultAddr()}) }

// buildRootCmdWith constructs the Cobra command tree wired to the fn* actions.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "searchctl",
		Short:         "Operator CLI for a running searchd",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("addr", cfg.Addr, "Base URL of searchd (defaults SEARCHD_ADDR or http://localhost:8080)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := cmd.InheritedFlags().Lookup("addr"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.Addr = v
			}
		}
	}

	health := &cobra.Command{Use: "health", Short: "Check /healthz", Example: "  searchctl health", RunE: func(cmd *cobra.Command, args []string) error {
		return fnHealth(cfg)
	}}

	status := &cobra.Command{Use: "status", Short: "Print /status", Example: "  searchctl status", RunE: func(cmd *cobra.Command, args []string) error {
		return fnStatus(cfg)
	}}

	predict := &cobra.Command{Use: "predict", Short: "Submit an observation file to /should_search", Example: "  searchctl predict -f observation.json", RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			return fmt.Errorf("predict requires -f <observation.json>")
		}
		return fnPredict(cfg, file)
	}}
	predict.Flags().StringP("file", "f", "", "Path to an observation JSON file")

	outcome := &cobra.Command{Use: "outcome <observation_id> <true|false>", Short: "Record a true outcome via /search_result", Example: "  searchctl outcome obs-0001 false", Args: cobra.ExactArgs(2), RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("outcome must be true or false, got %q", args[1])
		}
		return fnOutcome(cfg, args[0], v)
	}}

	list := &cobra.Command{Use: "list", Short: "List stored predictions", Example: "  searchctl list --limit 20", RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return fnList(cfg, limit)
	}}
	list.Flags().Int("limit", 100, "Maximum predictions to return")

	root.AddCommand(health, status, predict, outcome, list)
	return root
}

// Main runs the searchctl CLI and returns a process exit code.
func Main(args []string) int {
	cfg := &Config{Addr: defaultAddr()}
	root := buildRootCmdWith(cfg)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
