package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/contact"
)

var validateFlags = map[contact.Field]*string{}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check contact form values against the field rules",
	Long: `Runs every contact field rule against the given values and prints the
verdict per field. Exits non-zero when any field fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, f := range contact.Fields() {
			v := contact.Validate(f, *validateFlags[f])
			if v.Valid {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s ok\n", f)
				continue
			}
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", f, v.Message)
		}
		if failed > 0 {
			return fmt.Errorf("%d field(s) invalid", failed)
		}
		return nil
	},
}

func init() {
	for _, f := range contact.Fields() {
		validateFlags[f] = validateCmd.Flags().String(string(f), "", fmt.Sprintf("%s field value", f))
	}
	rootCmd.AddCommand(validateCmd)
}
