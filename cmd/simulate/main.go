// Package main runs a single burn simulation from the command line and
// prints the outcome, optionally exporting the day table as CSV.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"tokenomics-lab/internal/config"
	"tokenomics-lab/internal/domain"
	"tokenomics-lab/internal/reporting"
	"tokenomics-lab/internal/simulation"
	"tokenomics-lab/internal/storage/memory"
	"tokenomics-lab/internal/verification"
)

func main() {
	// Simulation parameters
	configPath := flag.String("config", "", "Path to YAML config file")
	scenarioID := flag.String("scenario", "", "Market scenario: bear, flat, base, bull, mania")
	initialPrice := flag.Float64("initial-price", domain.DefaultInitialPrice, "Initial token price in USD")
	yearlyChangePct := flag.Float64("yearly-change-pct", domain.DefaultYearlyPriceChangePct, "Yearly market price change percent")
	days := flag.Int("days", domain.DefaultHorizonDays, "Simulation horizon in days")
	volumes := flag.String("volumes", "", "Per-service daily volume overrides, e.g. \"Mixer=50000,eSIM=20000\"")
	token := flag.String("token", "", "Token display symbol")

	// Output
	csvPath := flag.String("csv", "", "Write the day table to this CSV file")
	outputJSON := flag.Bool("json", false, "Output the full run as JSON")
	verify := flag.Bool("verify", false, "Replay the stored run and check for divergence")
	quiet := flag.Bool("quiet", false, "Skip the parameter echo and day table preview")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[simulate] ", log.LstdFlags)

	// Track explicitly set flags so zero-valued overrides still apply.
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	fileCfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg, err := fileCfg.SimulationDefaults()
	if err != nil {
		logger.Fatalf("Invalid simulation defaults: %v", err)
	}

	// Apply flag overrides on top of the configured defaults
	if setFlags["initial-price"] {
		cfg.InitialPrice = *initialPrice
	}
	if setFlags["yearly-change-pct"] {
		cfg.YearlyPriceChangePct = *yearlyChangePct
	}
	if setFlags["days"] {
		cfg.HorizonDays = *days
	}
	if setFlags["token"] {
		cfg.TokenSymbol = *token
	}
	if *volumes != "" {
		if err := applyVolumes(&cfg, *volumes); err != nil {
			logger.Fatalf("Invalid --volumes: %v", err)
		}
	}
	if *scenarioID != "" {
		scenario, err := domain.ScenarioByID(*scenarioID)
		if err != nil {
			logger.Fatalf("Invalid scenario: %s. Must be bear, flat, base, bull, or mania", *scenarioID)
		}
		cfg = scenario.Apply(cfg)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	store := memory.NewRunStore(0)
	runner := simulation.NewRunner(simulation.RunnerOptions{
		RunStore: store,
		Logger:   logger,
	})

	logger.Printf("Running simulation: price=%.4f change=%+.1f%%/y horizon=%dd",
		cfg.InitialPrice, cfg.YearlyPriceChangePct, cfg.HorizonDays)

	run, err := runner.Run(ctx, cfg, domain.TriggerCLI)
	if err != nil {
		logger.Fatalf("Simulation failed: %v", err)
	}

	if *verify {
		verifier := verification.NewReplayVerifier(verification.ReplayVerifierOptions{RunStore: store})
		result, err := verifier.VerifyRun(ctx, run.RunID)
		if err != nil {
			logger.Fatalf("Verification failed: %v", err)
		}
		if !result.Match {
			for _, d := range result.Divergences {
				logger.Printf("Divergence: day=%d field=%s expected=%v actual=%v",
					d.Day, d.Field, d.Expected, d.Actual)
			}
			logger.Fatalf("Replay diverged on %d fields", len(result.Divergences))
		}
		logger.Printf("Replay verified: %d days match", result.DaysChecked)
	}

	if *csvPath != "" {
		if err := writeCSV(*csvPath, run); err != nil {
			logger.Fatalf("Failed to write CSV: %v", err)
		}
		logger.Printf("Day table written to %s", *csvPath)
	}

	// Output result
	if *outputJSON {
		output, _ := json.MarshalIndent(run, "", "  ")
		fmt.Println(string(output))
		return
	}

	printRun(run, *quiet)
}

// applyVolumes overrides daily volumes for the named services. Names are
// matched case-insensitively against the configured service list.
func applyVolumes(cfg *domain.SimulationConfig, spec string) error {
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("expected NAME=VOLUME, got %q", pair)
		}
		name = strings.TrimSpace(name)

		volume, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("volume for %q: %w", name, err)
		}

		found := false
		for i := range cfg.Services {
			if strings.EqualFold(cfg.Services[i].Name, name) {
				cfg.Services[i].DailyVolume = volume
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown service %q (have %s)", name, strings.Join(cfg.ServiceNames(), ", "))
		}
	}
	return nil
}

// writeCSV writes the run's day table to path.
func writeCSV(path string, run *domain.SimulationRun) error {
	out, err := reporting.RenderRecordsCSV(run.Config, run.Records)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(out), 0644)
}

// printRun outputs a human-readable simulation result.
func printRun(run *domain.SimulationRun, quiet bool) {
	cfg := run.Config
	s := run.Summary

	fmt.Println()
	fmt.Println("=== Simulation Result ===")
	fmt.Printf("Run ID:             %s\n", run.RunID)

	if !quiet {
		fmt.Printf("Token:              %s\n", cfg.TokenSymbol)
		fmt.Printf("Initial Price:      %.4f USD\n", cfg.InitialPrice)
		fmt.Printf("Yearly Change:      %+.1f%%\n", cfg.YearlyPriceChangePct)
		fmt.Printf("Horizon:            %d days\n", cfg.HorizonDays)
		fmt.Printf("Fixed Supply:       %.0f\n", cfg.FixedSupply)
		fmt.Println()

		fmt.Println("Services (day-1 burn estimate at initial price):")
		for i, est := range simulation.FirstDayEstimates(cfg) {
			svc := cfg.Services[i]
			fmt.Printf("  %-12s rate=%.1f%%  volume=%.0f  est=%.2f tokens\n",
				svc.Name, svc.BurnRate*100, svc.DailyVolume, est.Tokens)
		}
	}
	fmt.Println()

	fmt.Println("Summary:")
	fmt.Printf("  Final Price (no burn):    %.6f USD\n", s.FinalPriceNoBurn)
	fmt.Printf("  Final Price (with burn):  %.6f USD\n", s.FinalPriceWithBurn)
	fmt.Printf("  Price Uplift:             %.2f%%\n", s.PriceUpliftPct)
	fmt.Printf("  Total Burned:             %.2f tokens (%.2f%% of supply)\n", s.TotalBurned, s.SupplyDepletedPct)
	fmt.Printf("  Final Supply:             %.2f tokens\n", s.FinalSupply)
	fmt.Printf("  Avg Daily Burn:           %.2f tokens\n", s.AvgDailyBurn)
	fmt.Printf("  Peak Daily Burn:          %.2f tokens (day %d)\n", s.PeakDailyBurn, s.PeakDailyBurnDay)
	if s.SupplyFloorDay > 0 {
		fmt.Printf("  Supply Floor Reached:     day %d\n", s.SupplyFloorDay)
	}
	fmt.Println()

	fmt.Println("Burn by Service:")
	for _, svc := range s.Services {
		fmt.Printf("  %-12s %14.2f tokens  (%.1f%%)\n", svc.Service, svc.TotalBurned, svc.ShareOfBurnPct)
	}

	if quiet {
		return
	}

	fmt.Println()
	fmt.Println("Day Table:")
	fmt.Printf("  %5s  %16s  %16s  %18s  %14s\n",
		"Day", "Price (No Burn)", "Price (Burn)", "Remaining Supply", "Daily Burned")
	printRecordRows(run.Records)
}

// printRecordRows prints the whole table when short, otherwise the head
// and tail around an ellipsis row.
func printRecordRows(records []domain.DailyRecord) {
	const edge = 4
	if len(records) <= 2*edge {
		for _, r := range records {
			printRecordRow(r)
		}
		return
	}
	for _, r := range records[:edge] {
		printRecordRow(r)
	}
	fmt.Printf("  %5s\n", "...")
	for _, r := range records[len(records)-edge:] {
		printRecordRow(r)
	}
}

func printRecordRow(r domain.DailyRecord) {
	fmt.Printf("  %5d  %16.6f  %16.6f  %18.2f  %14.4f\n",
		r.Day, r.PriceNoBurn, r.PriceWithBurn, r.RemainingSupply, r.DailyBurned)
}
