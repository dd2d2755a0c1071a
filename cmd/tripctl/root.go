package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	appLogger "github.com/FACorreiaa/go-trip-itinerary/app/logger"
	"github.com/FACorreiaa/go-trip-itinerary/config"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/trip"
	"github.com/FACorreiaa/go-trip-itinerary/internal/container"
)

// serviceFactory builds the trip service and a function releasing its resources.
type serviceFactory func(ctx context.Context, verbose bool) (trip.Service, func(), error)

func defaultServiceFactory(ctx context.Context, verbose bool) (trip.Service, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.InitConfig()
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = appLogger.New("development")
	}

	c, err := container.NewContainer(ctx, &cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return c.TripService, c.Close, nil
}

type rootOptions struct {
	verbose bool
	compact bool
}

func newRootCmd(factory serviceFactory) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "tripctl",
		Short: "Plan trip itineraries from the terminal",
		Long: `tripctl runs the itinerary pipeline without the HTTP server. It reads the
same config.yml and environment variables as the API.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline progress to stdout")
	root.PersistentFlags().BoolVar(&opts.compact, "compact", false, "print compact JSON")

	root.AddCommand(newResolveCmd(factory, opts), newPlanCmd(factory, opts))
	return root
}

func writeJSON(w io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func readParams(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
