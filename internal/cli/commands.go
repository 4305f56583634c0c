package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/uberswe/domainRadar/internal/available"
	"github.com/uberswe/domainRadar/internal/check"
	"github.com/uberswe/domainRadar/internal/server"
	"github.com/uberswe/domainRadar/pkg/config"
)

func availableCmd(g *globalFlags) *cobra.Command {
	var (
		filters  filterFlags
		limit    int
		csvPath  string
		refresh  bool
		allDates bool
	)

	cmd := &cobra.Command{
		Use:   "available",
		Short: "Download the release lists and print the best ranked domains",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(g.configFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return available.Run(ctx, cfg, available.Options{
				ConfigFile: g.configFile,
				Filter:     filters.config(cmd, cfg.Filters.FilterConfig()),
				Limit:      limit,
				CSVPath:    csvPath,
				Refresh:    refresh,
				AllDates:   allDates,
				Out:        cmd.OutOrStdout(),
			})
		},
	}

	filters.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", available.DefaultLimit, "Maximum rows to print (-1 prints all)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also export every ranked domain to this CSV file")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Ignore cached lists and download again")
	cmd.Flags().BoolVar(&allDates, "all-dates", false, "For dated lists, keep domains of every release date")
	return cmd
}

func checkCmd(g *globalFlags) *cobra.Command {
	var (
		filters     filterFlags
		top         int
		concurrency int
		dry         bool
		refresh     bool
		allDates    bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check at Loopia whether the best ranked domains can be registered (.se, .nu and other TLDs Loopia sells)",
		Long: `Check at Loopia whether the best ranked domains can be registered.

Loopia only answers for the top-level domains it sells, such as .se, .nu and
.com. Names from other registries, like the default registro.br .br list, are
reported with a warning and usually come back as errors. Use --dry to try the
command without an account.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(g.configFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return check.Run(ctx, cfg, check.Options{
				ConfigFile:  g.configFile,
				Filter:      filters.config(cmd, cfg.Filters.FilterConfig()),
				Top:         top,
				Concurrency: concurrency,
				Dry:         dry,
				Refresh:     refresh,
				AllDates:    allDates,
				Out:         cmd.OutOrStdout(),
			})
		},
	}

	filters.register(cmd)
	cmd.Flags().IntVar(&top, "top", check.DefaultTop, "Number of ranked domains to check")
	cmd.Flags().IntVar(&concurrency, "concurrency", check.DefaultConcurrency, "Lookups in flight")
	cmd.Flags().BoolVar(&dry, "dry", false, "Dry‑run – don't hit Loopia API")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Ignore cached lists and download again")
	cmd.Flags().BoolVar(&allDates, "all-dates", false, "For dated lists, keep domains of every release date")
	return cmd
}

func serveCmd(g *globalFlags) *cobra.Command {
	var (
		listen   string
		allDates bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ranked list over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(g.configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(func(ctx context.Context, refresh bool) ([]string, error) {
				return available.Candidates(ctx, cfg, g.configFile, refresh, allDates)
			}, cfg.Filters.FilterConfig())

			// A failed first load is not fatal: the list stays empty until a refresh succeeds.
			_ = srv.Refresh(ctx, false)

			httpServer := &http.Server{
				Addr:              cfg.Listen,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("listen", cfg.Listen).Msg("HTTP server listening")
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				log.Info().Msg("Shutting down HTTP server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&listen, "listen", config.DefaultListen, "Address to listen on")
	cmd.Flags().BoolVar(&allDates, "all-dates", false, "For dated lists, keep domains of every release date")
	return cmd
}
