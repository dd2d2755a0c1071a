package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

func newPlanCmd(factory serviceFactory, opts *rootOptions) *cobra.Command {
	var paramsPath string
	var withDefaults bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build an itinerary from a JSON TripParameters file",
		Example: `  tripctl plan --params trip.json
  cat trip.json | tripctl plan --params - --defaults`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readParams(paramsPath, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read params: %w", err)
			}

			var params types.TripParameters
			if err := json.Unmarshal(raw, &params); err != nil {
				return fmt.Errorf("decode params: %w", err)
			}
			if withDefaults {
				params = params.WithDefaults()
			}
			if err := params.Validate(); err != nil {
				return err
			}

			svc, closeFn, err := factory(cmd.Context(), opts.verbose)
			if err != nil {
				return err
			}
			defer closeFn()

			resp, err := svc.ApplyFilters(cmd.Context(), params)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp, opts.compact)
		},
	}
	cmd.Flags().StringVarP(&paramsPath, "params", "p", "", `TripParameters JSON file, or "-" for stdin`)
	cmd.Flags().BoolVar(&withDefaults, "defaults", false, "fill omitted fields with the same defaults free-text requests get")
	_ = cmd.MarkFlagRequired("params")
	return cmd
}
