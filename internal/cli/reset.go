package cli

import (
	"fmt"

	"github.com/arthur-debert/alfredwf/pkg/logging"
	"github.com/arthur-debert/alfredwf/pkg/ui/styles"
	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [dir]",
		Short: MsgResetShort,
		Long: `Reset deletes the settings, stored data and cache of the workflow in dir
(default: the current directory). It is the command-line form of the
workflow:reset magic argument.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := openWorkflow(args)
			if err != nil {
				return err
			}
			defer func() { _ = wf.Close() }()

			done := logging.LogOperationStart(logging.GetLogger("cli.reset"), "reset")
			defer done()

			if err := wf.Reset(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgResetDone, styles.Render("Success", wf.BundleID()))
			return nil
		},
	}
}
