package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/sandevgo/tripsmith/internal/config"
	"github.com/sandevgo/tripsmith/internal/service/budget"
	"github.com/sandevgo/tripsmith/internal/service/dispatch"
	"github.com/spf13/cobra"
)

var (
	lookupJSON    bool
	lookupYear    int
	budgetOrigin  string
	budgetComfort string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Query a data source directly, without the assistant",
}

var lookupBudgetCmd = &cobra.Command{
	Use:   "budget <place> <days>",
	Short: "Rough trip cost from regional price bands",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("days must be a number, got %q", args[1])
		}

		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx); err != nil {
			return err
		}

		origin := budgetOrigin
		if origin == "" {
			origin = config.NewAppConfig(ctx).HomeCity
		}

		est := budget.NewEstimator().Estimate(args[0], days, origin, budget.ParseComfort(budgetComfort))
		if lookupJSON {
			return writeJSON(cmd.OutOrStdout(), est)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), dispatch.FormatBudget(est))
		return err
	},
}

var lookupWeatherCmd = &cobra.Command{
	Use:   "weather <place> <month>",
	Short: "Climate normals for a place and month",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnrichment(cmd, func(ctx context.Context, enrich *enrichment) error {
			w, ok := enrich.weather.Summary(ctx, args[0], args[1], lookupYear)
			if lookupJSON {
				if !ok {
					return writeJSON(cmd.OutOrStdout(), nil)
				}
				return writeJSON(cmd.OutOrStdout(), w)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), dispatch.FormatWeather(w, ok))
			return err
		})
	},
}

var lookupEventsCmd = &cobra.Command{
	Use:   "events <place> <month>",
	Short: "Events at a place during a month",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnrichment(cmd, func(ctx context.Context, enrich *enrichment) error {
			found := enrich.events.Events(ctx, args[0], args[1], lookupYear)
			if lookupJSON {
				return writeJSON(cmd.OutOrStdout(), found)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), dispatch.FormatEvents(found))
			return err
		})
	},
}

func withEnrichment(cmd *cobra.Command, fn func(ctx context.Context, enrich *enrichment) error) error {
	ctx, flushLog := setupLogger(cmd.Context())
	defer flushLog()

	if err := initEnv(ctx); err != nil {
		return err
	}
	enrichCfg := config.NewEnrichmentConfig(ctx)
	enrich := newEnrichment(ctx, enrichCfg)
	defer release(ctx, enrich.services)

	return fn(ctx, enrich)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func init() {
	lookupCmd.PersistentFlags().BoolVar(&lookupJSON, "json", false, "print the raw payload as JSON")
	lookupCmd.PersistentFlags().IntVar(&lookupYear, "year", 0, "year to look at (default: next occurrence of the month)")

	lookupBudgetCmd.Flags().StringVar(&budgetOrigin, "origin", "", "origin city (default: TRIP_HOME_CITY)")
	lookupBudgetCmd.Flags().StringVar(&budgetComfort, "comfort", "standard", "comfort tier: budget, standard or comfort")

	lookupCmd.AddCommand(lookupBudgetCmd, lookupWeatherCmd, lookupEventsCmd)
	rootCmd.AddCommand(lookupCmd)
}
