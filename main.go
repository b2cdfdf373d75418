package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/alexbotov/slots/internal/audit"
	"github.com/alexbotov/slots/internal/config"
	"github.com/alexbotov/slots/internal/console"
	"github.com/alexbotov/slots/internal/domain"
	"github.com/alexbotov/slots/internal/game"
	"github.com/alexbotov/slots/internal/logging"
	"github.com/alexbotov/slots/internal/rng"
	"github.com/alexbotov/slots/internal/wallet"
	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("slots", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "path to a YAML config file")
		seed       = fs.Uint64("seed", 0, "seed for a reproducible session (0 uses crypto/rand)")
		simulate   = fs.Int64("simulate", 0, "simulate N rounds and print the return instead of playing")
		lines      = fs.Int("lines", 3, "lines per simulated round")
		bet        = fs.Int64("bet", 1, "bet per line for simulated rounds")
		jsonOut    = fs.Bool("json", false, "print the simulation report as JSON")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	// Optional; environment variables still apply without it.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auditSvc := audit.New(logger)

	rngSvc := rng.New()
	if *seed != 0 {
		rngSvc = rng.NewSeeded(*seed)
		logger.Info("using seeded random source", zap.Uint64("seed", *seed))
	}
	checkRNG(ctx, rngSvc, auditSvc, logger)

	if *simulate > 0 {
		err := runSimulation(ctx, cfg, rngSvc, auditSvc, game.SimulationConfig{
			Rounds: *simulate,
			Lines:  *lines,
			Bet:    *bet,
		}, *jsonOut)
		if err != nil {
			logger.Error("simulation failed", zap.Error(err))
			return fmt.Errorf("simulation failed: %w", err)
		}
		return nil
	}

	walletSvc := wallet.New(auditSvc, cfg.Game.Currency)
	engine, err := game.New(cfg, rngSvc, walletSvc, auditSvc)
	if err != nil {
		logger.Error("failed to create game engine", zap.Error(err))
		return fmt.Errorf("failed to create game engine: %w", err)
	}
	logger.Info("slot machine ready", engine.Fields()...)

	prompt := console.NewPrompter(os.Stdin, os.Stdout)
	session := console.NewSession(engine, walletSvc, auditSvc, prompt, logger)
	if err := session.Run(ctx); err != nil {
		logger.Error("session ended with error", zap.Error(err))
		return fmt.Errorf("session ended with error: %w", err)
	}
	return nil
}

// checkRNG runs the startup uniformity test. A failure is audited but does
// not stop play.
func checkRNG(ctx context.Context, rngSvc *rng.Service, auditSvc *audit.Service, logger *zap.Logger) {
	result, err := rngSvc.HealthCheck()
	severity := domain.SeverityInfo
	description := "RNG health check passed"
	if err != nil || !result.Healthy {
		severity = domain.SeverityCritical
		description = "RNG health check failed"
	}

	auditSvc.Log(ctx, audit.EventRNGHealthCheck, severity, description, result,
		audit.WithComponent("rng"))
	if err != nil {
		logger.Error("rng health check error", zap.Error(err))
	}
}

func runSimulation(ctx context.Context, cfg *config.Config, rngSvc *rng.Service, auditSvc *audit.Service, simCfg game.SimulationConfig, asJSON bool) error {
	report, err := game.Simulate(ctx, cfg.Game, simCfg, rngSvc)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	auditSvc.Log(ctx, audit.EventSimulationFinish, domain.SeverityInfo,
		fmt.Sprintf("Simulated %d rounds, RTP %s", report.Rounds, report.RTP),
		report, audit.WithComponent("simulator"))

	if asJSON {
		out, err := jsoniter.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	currency := cfg.Game.Currency
	fmt.Printf("Rounds:      %d (%d lines x %s, %s draws)\n", report.Rounds, report.Lines,
		domain.NewMoney(report.Bet, currency), report.DrawPolicy)
	fmt.Printf("Total bet:   %s\n", domain.NewMoney(report.TotalBet, currency))
	fmt.Printf("Total won:   %s\n", domain.NewMoney(report.TotalWin, currency))
	fmt.Printf("RTP:         %s\n", report.RTP.StringFixed(4))
	fmt.Printf("Hit rate:    %s\n", report.HitRate.StringFixed(4))

	lineNums := make([]int, 0, len(report.LineHits))
	for line := range report.LineHits {
		lineNums = append(lineNums, line)
	}
	sort.Ints(lineNums)
	for _, line := range lineNums {
		fmt.Printf("Line %d hits: %d\n", line, report.LineHits[line])
	}
	return nil
}
