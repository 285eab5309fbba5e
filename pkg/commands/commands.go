package commands

import (
	"io"
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/heatcal/pkg/commands/options"
	"tableflip.dev/heatcal/pkg/config"
)

// env is the state shared by one command tree: the viper instance flags bind
// to, and the configuration and logger resolved before a command runs.
type env struct {
	v      *viper.Viper
	co     *options.ConfigOptions
	cfg    *config.Config
	log    *logrus.Logger
	closer io.Closer
	// logOut is where logging goes when log.file is unset.
	logOut io.Writer
}

func New() *cobra.Command {
	return newRoot(&env{
		v:      viper.New(),
		co:     &options.ConfigOptions{},
		logOut: os.Stderr,
	})
}

func newRoot(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatcal",
		Short: base.Wrap80("Calendar heatmaps of dated events on the command line."),
		Long: base.Wrap80("heatcal shades each day of a month or year by how many events " +
			"fall on it. Events come from a JSON, YAML or ICS file; hover or click a day in " +
			"the interactive view to see what happened."),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.load(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			e.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddConfigArgs(cmd, e.co, e.v)

	addCommands(cmd, e)
	closeAfterRun(cmd, e)
	return cmd
}

// closeAfterRun releases the log file once a command returns. Cobra skips
// post-run hooks when RunE fails, so the close is deferred inside the run.
func closeAfterRun(cmd *cobra.Command, e *env) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			defer e.close()
			return run(cmd, args)
		}
	}
	if run := cmd.Run; run != nil {
		cmd.Run = func(cmd *cobra.Command, args []string) {
			defer e.close()
			run(cmd, args)
		}
	}
	for _, c := range cmd.Commands() {
		closeAfterRun(c, e)
	}
}

func addCommands(topLevel *cobra.Command, e *env) {
	addUI(topLevel, e)
	addPrint(topLevel, e)
	addSVG(topLevel, e)
	addDays(topLevel, e)
	addGenerate(topLevel, e)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func (e *env) load(cmd *cobra.Command) error {
	cfg, err := config.Load(e.v, e.co.File)
	if err != nil {
		return err
	}
	out := e.logOut
	if cmd.Name() == "ui" {
		// The TUI owns the terminal.
		out = io.Discard
	}
	log, closer, err := cfg.Logger(out)
	if err != nil {
		return err
	}
	e.cfg, e.log, e.closer = cfg, log, closer
	log.WithField("config", e.v.ConfigFileUsed()).Debug("configuration loaded")
	return nil
}

func (e *env) close() {
	if e.closer != nil {
		_ = e.closer.Close()
		e.closer = nil
	}
}
