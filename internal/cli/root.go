package cli

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/alfredwf/internal/version"
	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/logging"
	"github.com/arthur-debert/alfredwf/pkg/ui/styles"
	"github.com/arthur-debert/alfredwf/pkg/workflow"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "alfredwf",
		Short: MsgRootShort,
		Long: `alfredwf inspects launcher workflows built with the alfredwf library:
their bundle information, the launcher variables in the current environment,
and their stored data, cache and settings.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			styles.Setup(os.Stdout)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newEnvCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

// openWorkflow builds a workflow for the directory in args, or the working
// directory.
func openWorkflow(args []string) (*workflow.Workflow, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid directory %s", dir)
	}
	return workflow.New(workflow.WithDir(abs))
}
