package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/target"
)

var classifyFormat string

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVarP(&classifyFormat, "format", "f", formatText, "Output format (text|json|yaml)")
}

var classifyCmd = &cobra.Command{
	Use:   "classify [user-agent...]",
	Short: "Classify user agents into build tiers",
	Long: "Prints the tier, deciding rule and version for each user agent.\n" +
		"With no arguments, reads one user agent per line from stdin.",
	RunE: runClassify,
}

type classification struct {
	UserAgent string      `json:"user_agent" yaml:"user_agent"`
	Target    target.Tier `json:"target" yaml:"target"`
	Rule      string      `json:"rule,omitempty" yaml:"rule,omitempty"`
	Version   string      `json:"version,omitempty" yaml:"version,omitempty"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	agents := args
	if len(agents) == 0 {
		var err error
		if agents, err = readLines(cmd.InOrStdin()); err != nil {
			return err
		}
	}

	results := make([]classification, 0, len(agents))
	for _, ua := range agents {
		res := target.Default().Detect(ua)
		results = append(results, classification{
			UserAgent: ua,
			Target:    res.Tier,
			Rule:      res.Rule,
			Version:   res.Version,
		})
	}

	return render(cmd.OutOrStdout(), classifyFormat, results, func(w io.Writer) error {
		for _, r := range results {
			rule := r.Rule
			if rule == "" {
				rule = "-"
			} else if r.Version != "" {
				rule += "/" + r.Version
			}
			if _, err := fmt.Fprintf(w, "%-7s %-14s %s\n", r.Target, rule, r.UserAgent); err != nil {
				return err
			}
		}
		return nil
	})
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}
