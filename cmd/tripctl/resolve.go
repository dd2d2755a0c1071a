package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newResolveCmd(factory serviceFactory, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     `resolve "<trip request>"`,
		Short:   "Turn a free-text request into an itinerary",
		Example: `  tripctl resolve "3 days in Lisbon for two, we like seafood and museums"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := factory(cmd.Context(), opts.verbose)
			if err != nil {
				return err
			}
			defer closeFn()

			resp, err := svc.ResolveTrip(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp, opts.compact)
		},
	}
}
