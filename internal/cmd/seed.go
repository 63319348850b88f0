package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/recipebox/backend/internal/app"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample accounts and recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configLoader()
			if err != nil {
				return err
			}

			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d accounts and %d recipes\n", res.Accounts, res.Recipes)
			return nil
		},
	}
}
