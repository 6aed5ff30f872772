package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sakif/edumentor/internal/auth"
	"github.com/sakif/edumentor/internal/config"
	"github.com/sakif/edumentor/internal/db"
	"github.com/sakif/edumentor/internal/metrics"
	"github.com/sakif/edumentor/internal/model"
	"github.com/sakif/edumentor/internal/repository/sqlstore"
	"github.com/sakif/edumentor/internal/service"
)

// app is the dependency graph one command runs against.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	provider *db.Provider
	store    *sqlstore.DB
}

func openApp(ctx context.Context, cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := config.Load(ctx, opts.configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.Level(),
	}))

	provider := db.NewProvider(cfg.Database(), logger)
	if err := provider.Err(); err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		store:    sqlstore.New(provider, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.provider.Close(); err != nil {
		a.logger.Warn("closing database", slog.String("error", err.Error()))
	}
}

func (a *app) authService() (*service.AuthService, error) {
	if a.cfg.JWTSecret == "" {
		return nil, errors.New("EDUMENTOR_JWT_SECRET is not set")
	}
	tokens, err := auth.NewTokenIssuer(a.cfg.JWTSecret, auth.DefaultTokenTTL)
	if err != nil {
		return nil, err
	}
	return service.NewAuthService(a.store.Users(), a.store.Roles(), tokens, auth.NewPasswordHasher(), a.logger), nil
}

// actor resolves the user behind the access token printed by login,
// falling back to EDUMENTOR_TOKEN.
func (a *app) actor(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		token = os.Getenv("EDUMENTOR_TOKEN")
	}
	svc, err := a.authService()
	if err != nil {
		return nil, err
	}
	return svc.CurrentUser(ctx, token)
}

// withApp opens the app for the duration of fn, serving metrics alongside
// when --metrics-addr is set.
func withApp(opts *options, fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd, opts)
		if err != nil {
			return err
		}
		defer a.Close()

		if opts.metricsAddr != "" {
			srv, err := metrics.Listen(opts.metricsAddr, a.logger)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					a.logger.Warn("stopping metrics server", slog.String("error", err.Error()))
				}
			}()
		}
		return fn(cmd, a, args)
	}
}

func tokenFlag(cmd *cobra.Command, token *string) {
	cmd.Flags().StringVar(token, "token", "", "Access token printed by login (default $EDUMENTOR_TOKEN)")
}

// printJSON writes v indented.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable writes rows under header, tab separated and aligned.
func printTable(w io.Writer, header string, rows []string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, row := range rows {
		fmt.Fprintln(tw, row)
	}
	return tw.Flush()
}
