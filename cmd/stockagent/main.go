package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"stockagent/internal/adapters/config"
	"stockagent/internal/agents"
	"stockagent/internal/bootstrap"
	"stockagent/internal/services/analysis"
)

// Runs a single query through the stock analysis team and prints the answer.
func main() {
	configPath := flag.String("config", "", "Agents file (default: AGENTS_CONFIG_PATH or config.json)")
	query := flag.String("query", analysis.DefaultQuery, "Question for the stock analysis team")
	flag.Parse()

	if err := run(*configPath, *query); err != nil {
		fmt.Fprintln(os.Stderr, "stockagent:", err)
		os.Exit(1)
	}
}

func run(configPath, query string) error {
	fmt.Println("Initializing Stock Analysis System...")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap.New(ctx, cfg, bootstrap.Options{
		AgentsPath:    configPath,
		RequiredRoles: []agents.Role{agents.RoleWebSearch, agents.RoleFinance},
	})
	if err != nil {
		return err
	}
	defer c.Shutdown(context.Background())

	team, err := c.ScriptTeam()
	if err != nil {
		return err
	}

	svc, err := analysis.NewService(team.Agent, analysis.Options{
		AppName: cfg.App.Name,
		Timeout: cfg.Agents.QueryTimeout,
		Tracker: c.ErrorTracker,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nAnalyzing query: %s\n", query)
	fmt.Println(strings.Repeat("-", 50))

	printResult(os.Stdout, svc.Analyze(ctx, query))
	return nil
}

func printResult(w io.Writer, result analysis.Result) {
	if !result.OK() {
		fmt.Fprintf(w, "ERROR: %s\n", result.Text())
		return
	}
	fmt.Fprintln(w, "=== Stock Analysis Results ===")
	fmt.Fprintln(w, result.Text())
}
