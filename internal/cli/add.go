package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add YYYY-MM-DD",
		Short: "Record a period start date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := root.open(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.close()

			saved, err := env.summaries.Record(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			env.log.WithField("start_date", saved).Debug("period start recorded")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), env.i18n.Translatef(env.language, "form.saved", saved))
			return err
		},
	}
}
