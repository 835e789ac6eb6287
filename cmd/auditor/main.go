package main

import (
	"fmt"
	"os"

	"github.com/google/go-github/v60/github"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/trivyignore-auditor/pkg/checker"
	"github.com/trivyignore-auditor/pkg/config"
	"github.com/trivyignore-auditor/pkg/ignorefile"
	"github.com/trivyignore-auditor/pkg/issues"
	"github.com/trivyignore-auditor/pkg/reporter"
	"github.com/trivyignore-auditor/pkg/tracker"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "trivyignore-auditor",
		Short:   "Detect stale entries in a CVE ignore file",
		Long:    `Cross-checks a .trivyignore-style suppression list against the Debian security tracker and fails when a suppressed CVE has been resolved upstream or never matches the tracker at all.`,
		Version: fmt.Sprintf("%s (%s)", version, commit),
		RunE:    run,
	}

	rootCmd.Flags().String("ignore-file", "", "Path to the ignore file (default .trivyignore)")
	rootCmd.Flags().String("distribution", "", "Target distribution/release to check statuses against (e.g. bullseye)")
	rootCmd.Flags().String("tracker-url", "", "Security tracker JSON dump URL (default Debian's)")
	rootCmd.Flags().String("output", "table", "Output format: json | sarif | table")
	rootCmd.Flags().String("repo", os.Getenv("GITHUB_REPOSITORY"), "GitHub repo (owner/repo) to track stale entries in")
	rootCmd.Flags().String("github-token", os.Getenv("GITHUB_TOKEN"), "GitHub token for API access")
	rootCmd.Flags().Bool("dry-run", false, "Report without creating or closing issues")
	rootCmd.Flags().String("config", ".trivyignore-auditor.yml", "Path to config file")
	rootCmd.Flags().String("log-level", "", "Log level: debug | info | warn | error")

	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load config file: %v (using defaults)\n", err)
		cfg = config.Default()
	}

	cfg = config.MergeFlags(cfg, cmd.Flags())
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)

	ignored, err := ignorefile.Parse(cfg.IgnoreFile)
	if err != nil {
		return err
	}
	logger.Infof("tracking %d ignored CVEs from %s", ignored.Len(), cfg.IgnoreFile)

	source := tracker.NewClient(cfg.TrackerURL)
	result, err := checker.New(source, logger).Check(ignored, cfg.Distribution)
	if err != nil {
		return err
	}

	if err := reporter.New(cfg.Output).Report(result); err != nil {
		return fmt.Errorf("report result: %w", err)
	}

	if err := reconcileIssues(cfg, result, logger); err != nil {
		logger.Errorf("reconcile issues: %v", err)
	}

	if len(result.Unmatched) > 0 {
		logger.Errorf("these CVEs have not been found: %v", result.Unmatched)
	}
	if result.Failed() {
		return fmt.Errorf("%d ignore entries are stale for %s", len(result.Resolved)+len(result.Unmatched), cfg.Distribution)
	}
	return nil
}

func reconcileIssues(cfg *config.Config, result *checker.Result, logger logrus.FieldLogger) error {
	if cfg.Repo == "" || cfg.Token == "" {
		return nil
	}
	if cfg.DryRun {
		logger.Info("dry-run mode: no issues will be created or closed")
		return nil
	}

	owner, repo, err := issues.ParseRepo(cfg.Repo)
	if err != nil {
		return err
	}

	client := github.NewClient(nil).WithAuthToken(cfg.Token)
	return issues.NewReconciler(client, owner, repo, cfg.Issues.Labels).Reconcile(issues.Entries(result))
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}
