package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/loader"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/origin"
)

var (
	selectUA     string
	selectPrefix string
	selectFormat string
)

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().StringVar(&selectUA, "ua", "", "User agent to select for")
	selectCmd.Flags().StringVar(&selectPrefix, "prefix", loader.DefaultURLPrefix, "Base URL of the published builds")
	selectCmd.Flags().StringVarP(&selectFormat, "format", "f", formatText, "Output format (text|json|yaml)")
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Show which build URL a browser would load",
	Long: "Applies the USERFLOWJS_BROWSER_TARGET, USERFLOWJS_ES2020_URL and\n" +
		"USERFLOWJS_LEGACY_URL overrides from the environment, then detection.",
	RunE: runSelect,
}

func runSelect(cmd *cobra.Command, args []string) error {
	overrides, err := loader.LoadOverrides()
	if err != nil {
		return err
	}
	if err := overrides.Validate(); err != nil {
		return err
	}

	d := origin.DecisionFrom(loader.Select(selectUA, overrides, nil, selectPrefix))
	return render(cmd.OutOrStdout(), selectFormat, d, func(w io.Writer) error {
		kind := "classic"
		if d.Module {
			kind = "module"
		}
		source := "detected"
		if d.Forced {
			source = "forced"
		}
		_, err := fmt.Fprintf(w, "%s (%s, %s)\n%s\n", d.Target, source, kind, d.URL)
		return err
	})
}
