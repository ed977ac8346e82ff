package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/splitledger/splitledger/internal/auth"
	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/service"
	"github.com/splitledger/splitledger/internal/storage/sqlite"
	"github.com/splitledger/splitledger/pkg/api"
	"github.com/splitledger/splitledger/pkg/logging"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "splitledgerd",
		Short:         "Group expense splitting and settlement server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.String("db-path", "./data/splitledger.db", "SQLite database path")
	flags.String("jwt-secret", "", "HMAC secret for bearer tokens")
	flags.Duration("token-ttl", 24*time.Hour, "bearer token lifetime")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	// Every flag is also settable as SPLITLEDGER_<FLAG> in the
	// environment, e.g. SPLITLEDGER_JWT_SECRET.
	viper.SetEnvPrefix("SPLITLEDGER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(flags)

	return cmd
}

func run() error {
	logger := logging.New(viper.GetString("log-level"), viper.GetString("log-format"))

	secret := viper.GetString("jwt-secret")
	if secret == "" {
		return errors.New("jwt-secret is required (flag --jwt-secret or SPLITLEDGER_JWT_SECRET)")
	}

	store, err := sqlite.New(viper.GetString("db-path"))
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", viper.GetString("db-path"))

	jwtManager := auth.NewJWTManager(secret, viper.GetDuration("token-ttl"))
	authenticator := auth.NewPasswordAuthenticator(store)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	// Auth runs outermost so the logging and metrics interceptors see
	// the resolved member identity. Register and Login must stay
	// reachable without a token, so the auth surface gets OptionalAuth.
	authed := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
		metrics.Interceptor(),
	)
	open := connect.WithInterceptors(
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(),
		metrics.Interceptor(),
	)

	mux := http.NewServeMux()

	authPath, authHandler := api.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store, logger), open)
	mux.Handle(authPath, authHandler)

	directoryPath, directoryHandler := api.NewDirectoryServiceHandler(
		service.NewDirectoryService(store, logger), authed)
	mux.Handle(directoryPath, directoryHandler)

	groupPath, groupHandler := api.NewGroupServiceHandler(
		service.NewGroupService(store, logger), authed)
	mux.Handle(groupPath, groupHandler)

	expensePath, expenseHandler := api.NewExpenseServiceHandler(
		service.NewExpenseService(store, logger), authed)
	mux.Handle(expensePath, expenseHandler)

	settlementPath, settlementHandler := api.NewSettlementServiceHandler(
		service.NewSettlementService(store, logger), authed)
	mux.Handle(settlementPath, settlementHandler)

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// h2c allows HTTP/2 without TLS; TLS belongs to the proxy in front.
	handler := h2c.NewHandler(corsMiddleware(mux), &http2.Server{})

	addr := viper.GetString("addr")
	logger.Info("splitledger server starting", "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
