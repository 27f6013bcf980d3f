package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbisina/verdescore/internal/match"
)

// categoriesCmd lists the built-in category catalogue
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the green project category catalogue",
	Long: `List every category the matcher and taxonomy evaluator know about,
with its regulatory activity code, policy weight, keywords and
technical screening thresholds.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range match.Catalog() {
			fmt.Printf("%s (%s)\n", c.Name, c.ActivityCode)
			fmt.Printf("  id:       %s\n", c.ID)
			fmt.Printf("  weight:   %.2f\n", c.Weight)
			fmt.Printf("  keywords: %s\n", strings.Join(c.Keywords, ", "))
			for _, th := range c.Thresholds {
				if th.Comparator == "compliant" {
					fmt.Printf("  screen:   %s\n", th.Description)
					continue
				}
				fmt.Printf("  screen:   %s %s %v %s (%s)\n", th.Metric, th.Comparator, th.Value, th.Unit, th.Description)
			}
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
