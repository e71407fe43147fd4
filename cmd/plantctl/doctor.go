package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDiagnoseCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "diagnose IMAGE",
		Short: "Identify a plant disease from a leaf photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, f, err := openImage(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			c, _, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			res, err := c.Diagnose(cmd.Context(), *img)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}

			w := cmd.OutOrStdout()
			if res.IsHealthy {
				fmt.Fprintf(w, "Healthy (%.2f%%)\n", res.Confidence)
			} else {
				fmt.Fprintf(w, "%s (%.2f%%)\n", res.DiseaseName, res.Confidence)
			}
			fmt.Fprintln(w, res.Description)
			if len(res.Remedies) > 0 {
				fmt.Fprintf(w, "Remedies:\n  - %s\n", strings.Join(res.Remedies, "\n  - "))
			}
			if len(res.Prevention) > 0 {
				fmt.Fprintf(w, "Prevention:\n  - %s\n", strings.Join(res.Prevention, "\n  - "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}
