package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/duedate/internal/clock"
	"github.com/sandeepkv93/duedate/internal/commands"
	"github.com/sandeepkv93/duedate/internal/config"
	"github.com/sandeepkv93/duedate/internal/logging"
	"github.com/sandeepkv93/duedate/internal/model"
	"github.com/sandeepkv93/duedate/internal/scheduler"
	"github.com/sandeepkv93/duedate/internal/service"
	"github.com/sandeepkv93/duedate/internal/storage"
	"github.com/sandeepkv93/duedate/internal/update"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "duedate failed: %v\n", err)
		os.Exit(1)
	}
}

// run executes args as a single command when given, otherwise starts the TUI.
func run(args []string) error {
	cfg, err := config.Load(os.Getenv("TASKD_CONFIG"))
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger, err := logging.Init(logging.ZapConfig{
		Level:      cfg.LogLevel,
		Encoding:   cfg.LogEncoding,
		OutputPath: cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.System{}
	calc := model.NewDueDateCalculator(clk, loc)
	logger.Info("starting duedate",
		zap.String("db_path", cfg.DBPath),
		zap.String("timezone", loc.String()),
		zap.Bool("interactive", len(args) == 0),
	)

	if len(args) > 0 {
		svc := service.NewTaskService(repo, calc, nil, logger)
		res, err := commands.Run(strings.Join(args, " "), svc.Handlers(ctx))
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		for _, line := range res.Lines {
			fmt.Println(line)
		}
		return nil
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer, clk)
	engine.Start()
	defer engine.Stop()

	svc := service.NewTaskService(repo, calc, engine, logger)
	if _, err := svc.RestoreAlarms(ctx); err != nil {
		logger.Warn("restore due alarms failed", zap.Error(err))
	}

	program := tea.NewProgram(update.NewModel(ctx, svc, engine.C()), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}
	logger.Info("duedate stopped", zap.Uint64("dropped_due_events", engine.Dropped()))
	return nil
}
