package main

import (
	"io"
	"os"
	"slices"

	"github.com/fbkclanna/gerritfetch/internal/app"
	"github.com/fbkclanna/gerritfetch/internal/config"
	"github.com/fbkclanna/gerritfetch/internal/git"
	"github.com/fbkclanna/gerritfetch/internal/logging"
	"github.com/fbkclanna/gerritfetch/internal/ui"
	"github.com/fbkclanna/gerritfetch/internal/updater"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "gerritfetch [basedir]",
		Short: "Fetch a Gerrit change into its project's working copy",
		Long: `gerritfetch reads GERRIT_HOST, GERRIT_PROJECT and GERRIT_REFSPEC, checks the
host against an allow-list and runs

  git fetch https://$GERRIT_HOST/$GERRIT_PROJECT $GERRIT_REFSPEC
  git checkout FETCH_HEAD

inside <basedir>/<name> for a project named <org>/<name>. Missing variables,
disallowed hosts and missing working copies are logged and skipped.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, v, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default is ~/.gerritfetch/gerritfetch.yaml or ./gerritfetch.yaml)")
	pf.String("log-level", config.DefaultLogLevel, "Log level: trace, debug, info, warn, error")
	pf.String("log-format", config.DefaultLogFormat, "Log format: auto, pretty, json")
	pf.StringSlice("allowed-host", slices.Clone(config.DefaultAllowedHosts), "Review host changes may come from (repeatable)")

	cmd.Flags().Bool("strict", false, "Exit non-zero when git fetch or checkout fails")
	cmd.Flags().Bool("dry-run", false, "Log the git commands without running them")
	cmd.Flags().String("report", config.DefaultReport, "Print a run report to stdout: none, text, json, yaml")

	_ = v.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", pf.Lookup("log-format"))
	_ = v.BindPFlag("allowed_hosts", pf.Lookup("allowed-host"))
	_ = v.BindPFlag("strict", cmd.Flags().Lookup("strict"))
	_ = v.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	_ = v.BindPFlag("report", cmd.Flags().Lookup("report"))

	cmd.AddCommand(
		newDoctorCmd(v),
	)

	return cmd
}

// setup loads the configuration and builds the logger shared by all commands.
func setup(cmd *cobra.Command, v *viper.Viper) (*config.Config, *logging.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	return cfg, log, nil
}

func runFetch(cmd *cobra.Command, v *viper.Viper, args []string) error {
	cfg, log, err := setup(cmd, v)
	if err != nil {
		return err
	}

	basedir := "."
	if len(args) > 0 {
		basedir = args[0]
	}

	up := updater.New(newRunner(cmd, cfg), log)
	rep, err := app.Run(app.Options{
		BaseDir:      basedir,
		Lookup:       os.LookupEnv,
		AllowedHosts: cfg.AllowedHosts,
		Strict:       cfg.Strict,
	}, up, log)

	if werr := ui.WriteReport(cmd.OutOrStdout(), cfg.Report, rep); werr != nil && err == nil {
		err = werr
	}
	return err
}

// newRunner returns the git runner for cfg. git's own output goes to stderr
// whenever stdout carries a report.
func newRunner(cmd *cobra.Command, cfg *config.Config) git.Runner {
	if cfg.DryRun {
		return git.DryRunner{}
	}
	var stdout io.Writer = cmd.OutOrStdout()
	if cfg.Report != ui.FormatNone {
		stdout = cmd.ErrOrStderr()
	}
	return &git.ExecRunner{Stdout: stdout, Stderr: cmd.ErrOrStderr()}
}
