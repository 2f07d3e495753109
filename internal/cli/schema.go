package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"marquee/internal/payload"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of --json input lines",
		Long:  "Print the JSON Schema every input line must satisfy when marquee runs with --json.",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := payload.MarshalSchema(payload.Schema())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}
