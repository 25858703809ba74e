package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/agentlink/internal/adapters/console"
	httpadapter "github.com/PabloGalante/agentlink/internal/adapters/http"
	"github.com/PabloGalante/agentlink/internal/config"
	"github.com/PabloGalante/agentlink/internal/domain"
	"github.com/PabloGalante/agentlink/internal/observability"
)

var (
	configPath string
	logLevel   string
	port       string
	noLatency  bool
	userID     string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "agentlink",
	Short: "Agent Link - capture tasks, notes and automations by chatting",
	Long: `Agent Link is a conversational front end over a personal task, notes and
automation tracker. Intent matching is heuristic and deterministic.

Run "agentlink chat" for a terminal session or "agentlink serve" for the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath == "" {
			cfg, err = config.Load()
		} else {
			cfg, err = config.LoadFile(configPath)
		}
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		return observability.Init(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port != "" {
			cfg.Port = port
		}
		convSvc, workspaceSvc, err := buildServices(cfg, cfg.Latency)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           httpadapter.NewServer(convSvc, workspaceSvc, cfg.HistoryLimit),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := observability.WithFields("component", "http", "port", cfg.Port)

		errCh := make(chan error, 1)
		go func() {
			log.Info("agentlink API listening")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the agent in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		latency := cfg.Latency
		if noLatency {
			latency = 0
		}
		convSvc, workspaceSvc, err := buildServices(cfg, latency)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return console.New(convSvc, workspaceSvc, domain.UserID(userID)).Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List what the agent can do",
	RunE: func(cmd *cobra.Command, args []string) error {
		convSvc, _, err := buildServices(cfg, 0)
		if err != nil {
			return err
		}
		console.PrintFunctions(cmd.OutOrStdout(), convSvc)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	serveCmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides config)")
	chatCmd.Flags().BoolVar(&noLatency, "no-latency", false, "reply without the simulated thinking delay")
	chatCmd.Flags().StringVar(&userID, "user", "local", "user id for the console session")

	rootCmd.AddCommand(serveCmd, chatCmd, functionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
