// Package cli assembles the reference command-line host: a thin cobra
// shell around the kernel that loads a scenario, runs it for a fixed
// number of turns with no human decisions, and writes machine-readable
// results alongside a human-readable summary.
package cli

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/foodops/foodops-kernel/cmd/foodops/internal/scenario"
	"github.com/foodops/foodops-kernel/internal/events"
	"github.com/foodops/foodops-kernel/internal/ledger"
	"github.com/foodops/foodops-kernel/internal/simulation"
	"github.com/foodops/foodops-kernel/internal/stock"
	"github.com/foodops/foodops-kernel/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes per the documented run-simulation contract: 0 success, 2 bad
// input (missing/unreadable file or flags), 3 scenario failed validation,
// 4 a runtime error occurred mid-simulation.
const (
	ExitOK             = 0
	ExitInputError     = 2
	ExitScenarioError  = 3
	ExitRuntimeError   = 4
)

// exitError carries the process exit code alongside the error message.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

// NewRootCommand builds the foodops root command and its subcommands.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "foodops",
		Short:         "Deterministic turn-based restaurant business simulation",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunSimulationCommand())
	return root
}

func newRunSimulationCommand() *cobra.Command {
	var (
		scenarioPath string
		turns        int
		seed         int64
		outDir       string
	)

	cmd := &cobra.Command{
		Use:   "run-simulation",
		Short: "Run a scenario for a fixed number of turns with no human decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, scenarioPath, turns, seed, outDir)
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "path to a scenario YAML file (required)")
	cmd.Flags().IntVar(&turns, "turns", 0, "number of turns to run (0 = the scenario's own turn count)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "override the scenario's seed (0 = use the scenario's own seed)")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write results.json and turns.csv into")
	cmd.MarkFlagRequired("scenario")

	return cmd
}

func runSimulation(cmd *cobra.Command, scenarioPath string, turnsOverride int, seedOverride int64, outDir string) error {
	logLevel := telemetry.Level(os.Getenv("FOODOPS_LOG_LEVEL"))
	logger, err := telemetry.NewLogger(logLevel)
	if err != nil {
		return &exitError{code: ExitInputError, err: err}
	}
	defer logger.Sync()

	if scenarioPath == "" {
		return &exitError{code: ExitInputError, err: fmt.Errorf("--scenario is required")}
	}

	loaded, err := scenario.Load(scenarioPath)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return &exitError{code: ExitInputError, err: err}
		}
		return &exitError{code: ExitScenarioError, err: err}
	}

	turns := loaded.Turns
	if turnsOverride > 0 {
		turns = turnsOverride
	}
	if turns <= 0 {
		return &exitError{code: ExitInputError, err: fmt.Errorf("scenario declares no turns and --turns was not set")}
	}

	seed := loaded.Seed
	if seedOverride != 0 {
		seed = seedOverride
	}

	sim, err := simulation.New(loaded.Scenario, loaded.Catalog, loaded.Registry, seed, loaded.StartMonth)
	if err != nil {
		return &exitError{code: ExitScenarioError, err: err}
	}

	for _, spec := range loaded.Restaurants {
		if _, err := sim.AddRestaurant(spec); err != nil {
			return &exitError{code: ExitScenarioError, err: err}
		}
	}
	if err := loaded.ApplyMenus(sim); err != nil {
		return &exitError{code: ExitScenarioError, err: err}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return &exitError{code: ExitInputError, err: err}
	}

	var outcomes []simulation.TurnOutcome
	for i := 0; i < turns; i++ {
		outcome, err := sim.RunTurn()
		if err != nil {
			logger.Error("turn failed", zapErrorFields(i+1, err)...)
			return &exitError{code: ExitRuntimeError, err: err}
		}
		outcomes = append(outcomes, outcome)
		for _, w := range outcome.Warnings {
			logger.Warn("turn warning", zapErrorFields(outcome.Turn, w)...)
		}
	}

	if err := writeResultsJSON(filepath.Join(outDir, "results.json"), outcomes); err != nil {
		return &exitError{code: ExitRuntimeError, err: err}
	}
	if err := writeTurnsCSV(filepath.Join(outDir, "turns.csv"), outcomes); err != nil {
		return &exitError{code: ExitRuntimeError, err: err}
	}

	printSummary(cmd, outcomes)
	return nil
}

func printSummary(cmd *cobra.Command, outcomes []simulation.TurnOutcome) {
	out := cmd.OutOrStdout()
	for _, o := range outcomes {
		for _, r := range o.PerRestaurant {
			fmt.Fprintf(out, "turn %d  %-16s served=%-6d revenue=%-12s net_profit=%-12s cash=%-12s reputation=%.2f\n",
				o.Turn, r.RestaurantID, r.Served, r.Revenue.String(), r.NetProfit.String(), r.Cash.String(), r.Reputation)
		}
	}
}

// jsonOutcome mirrors simulation.TurnOutcome but renders warnings as their
// messages: the error interface marshals to JSON fine but loses all
// useful information (most concrete error types here carry no exported
// fields), so results.json never needs an Unmarshal counterpart for this.
type jsonOutcome struct {
	Turn          int                        `json:"turn"`
	PerRestaurant []simulation.TurnResult    `json:"per_restaurant"`
	NewEvents     []events.Instance          `json:"new_events"`
	LedgerDelta   []ledger.Entry             `json:"ledger_delta"`
	Waste         []stock.Lot                `json:"waste"`
	Warnings      []string                   `json:"warnings"`
}

func writeResultsJSON(path string, outcomes []simulation.TurnOutcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	out := make([]jsonOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		warnings := make([]string, len(o.Warnings))
		for i, w := range o.Warnings {
			warnings[i] = w.Error()
		}
		out = append(out, jsonOutcome{
			Turn:          o.Turn,
			PerRestaurant: o.PerRestaurant,
			NewEvents:     o.NewEvents,
			LedgerDelta:   o.LedgerDelta,
			Waste:         o.Waste,
			Warnings:      warnings,
		})
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeTurnsCSV(path string, outcomes []simulation.TurnOutcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"turn", "restaurant_id", "capacity", "served", "lost_customers", "utilization", "revenue", "cogs", "labor", "rent", "fixed", "net_profit", "reputation", "satisfaction", "cash"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, o := range outcomes {
		for _, r := range o.PerRestaurant {
			row := []string{
				strconv.Itoa(o.Turn),
				r.RestaurantID,
				strconv.FormatInt(r.Capacity, 10),
				strconv.FormatInt(r.Served, 10),
				strconv.FormatInt(r.LostCustomers, 10),
				strconv.FormatFloat(r.Utilization, 'f', 4, 64),
				r.Revenue.String(),
				r.COGS.String(),
				r.Labor.String(),
				r.Rent.String(),
				r.Fixed.String(),
				r.NetProfit.String(),
				strconv.FormatFloat(r.Reputation, 'f', 4, 64),
				strconv.FormatFloat(r.Satisfaction, 'f', 4, 64),
				r.Cash.String(),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func zapErrorFields(turn int, err error) []zap.Field {
	return []zap.Field{zap.Int("turn", turn), zap.Error(err)}
}

// ExitCode extracts the process exit code from an error returned by a
// command's RunE, defaulting to ExitRuntimeError for anything cobra itself
// raised (flag parsing, unknown subcommand) that wasn't wrapped as an
// exitError.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return ExitRuntimeError
}
