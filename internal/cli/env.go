package cli

import (
	"fmt"

	"github.com/arthur-debert/alfredwf/pkg/environ"
	"github.com/arthur-debert/alfredwf/pkg/ui/styles"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: MsgEnvShort,
		Long: `Env lists the alfred_* variables set in the current environment, as the
launcher provides them to workflow scripts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			vars := environ.FromOS().Launcher()
			if len(vars) == 0 {
				fmt.Fprintln(out, styles.Render("Muted", MsgNoLauncherVars))
				return nil
			}

			data := pterm.TableData{{"Variable", "Value"}}
			for _, k := range vars.Keys() {
				data = append(data, []string{k, vars[k]})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}
}
