package cli

import (
	"fmt"
	"io"

	"github.com/arthur-debert/alfredwf/pkg/logging"
	"github.com/arthur-debert/alfredwf/pkg/paths"
	"github.com/arthur-debert/alfredwf/pkg/ui/styles"
	"github.com/arthur-debert/alfredwf/pkg/workflow"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	var (
		readme bool
		magic  bool
	)

	cmd := &cobra.Command{
		Use:   "info [dir]",
		Short: MsgInfoShort,
		Long: `Info reads info.plist and the version file in a workflow directory
(default: the current directory) and prints the workflow's identity and
where its data and cache live.`,
		Example: `  # Describe the workflow in the current directory
  alfredwf info

  # Include the rendered readme
  alfredwf info ~/workflows/search --readme`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.info")

			wf, err := openWorkflow(args)
			if err != nil {
				return err
			}
			defer func() { _ = wf.Close() }()

			info, err := wf.Info()
			if err != nil {
				return err
			}
			logger.Debug().Str("bundleID", info.BundleID).Msg("Loaded info.plist")

			out := cmd.OutOrStdout()
			reg := styles.Default()
			fmt.Fprintln(out, reg.Render("Header", info.Name))

			ver := ""
			if v, err := wf.Version(); err == nil {
				ver = v.String()
			}
			dataDir, cacheDir := storageDirs(wf)

			printRow(out, reg, "Bundle ID", info.BundleID)
			printRow(out, reg, "Version", ver)
			printRow(out, reg, "Created by", info.CreatedBy)
			printRow(out, reg, "Website", info.WebAddress)
			printRow(out, reg, "Description", info.Description)
			printRow(out, reg, "Directory", wf.Dir())
			printRow(out, reg, "Data", dataDir)
			printRow(out, reg, "Cache", cacheDir)

			if magic {
				fmt.Fprintln(out)
				fmt.Fprintln(out, reg.Render("Header", MsgMagicHeader))
				for _, a := range wf.MagicActions() {
					fmt.Fprintln(out, reg.Render("Indent", reg.Render("FilePath", workflow.MagicPrefix+a.Keyword)+"  "+a.Description))
				}
			}

			if readme && info.Readme != "" {
				fmt.Fprintln(out)
				fmt.Fprint(out, renderMarkdown(info.Readme))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&readme, "readme", false, MsgFlagReadme)
	cmd.Flags().BoolVar(&magic, "magic", false, MsgFlagMagic)
	return cmd
}

// storageDirs resolves the data and cache directories without creating them.
func storageDirs(wf *workflow.Workflow) (string, string) {
	cfg := wf.Config()
	p := paths.New("")
	dataDir, cacheDir := cfg.DataDir, cfg.CacheDir
	if id := wf.BundleID(); id != "" {
		if dataDir == "" {
			dataDir = p.DataDir(id)
		}
		if cacheDir == "" {
			cacheDir = p.CacheDir(id)
		}
	}
	return dataDir, cacheDir
}

func printRow(out io.Writer, reg styles.Registry, label, value string) {
	if value == "" {
		value = reg.Render("Muted", MsgNoValue)
	}
	fmt.Fprintln(out, reg.Render("Label", label)+reg.Render("Value", value))
}
