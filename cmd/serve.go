package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"overtrack/internal/logging"
	"overtrack/share"
	"overtrack/web"
	"overtrack/worklog"
)

var (
	serveUser      string
	serveFromMonth string
	serveToMonth   string
	serveSeed      bool
	serveNoOpen    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start an HTTP server with the monthly dashboard, the JSON API and the read-only shared report pages.

Listen address, public URL and logging are taken from the server.* and log.* configuration keys.`,
	Example: `
  # Start on the configured port and open the browser
  overtrack serve

  # Open the dashboard of one user, clamped to a month range
  overtrack serve --user demo_user_1 --from 2025-01 --to 2025-11

  # Start on an in-memory store loaded with the demo data
  overtrack serve --db :memory: --seed --no-open
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bounds, err := parseServeMonthBounds(serveFromMonth, serveToMonth, time.Now())
		if err != nil {
			return err
		}

		svc, cfg, closeStore, err := openDashboard()
		if err != nil {
			return err
		}
		defer closeStore()

		logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		if serveSeed {
			result, err := svc.Seed()
			if err != nil {
				return err
			}
			logger.Info("demo data loaded", zap.Int("users", result.Users), zap.Int("entries", result.Entries))
		}

		baseURL := cfg.Server.BaseURL()
		server := &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           withServeMonthRedirect(web.NewServer(svc, baseURL, logger), serveUser, bounds),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			logger.Info("listening", zap.String("addr", server.Addr), zap.String("url", baseURL))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		group.Go(func() error {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			logger.Info("server stopped")
			return nil
		})

		fmt.Printf("Listening on %s\n", baseURL)
		if !serveNoOpen {
			target := baseURL + "/"
			if strings.TrimSpace(serveUser) != "" {
				target = baseURL + userMonthPath(serveUser, bounds.defaultMonth)
			}
			if openErr := openURLInBrowser(target); openErr != nil {
				logger.Warn("failed to open browser", zap.Error(openErr))
			}
		}

		return group.Wait()
	},
}

type serveMonthBounds struct {
	from         worklog.Month
	to           worklog.Month
	defaultMonth worklog.Month
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveUser, "user", "", "User whose dashboard opens at /")
	serveCmd.Flags().StringVar(&serveFromMonth, "from", "", "Earliest month for the initial view, format YYYY-MM")
	serveCmd.Flags().StringVar(&serveToMonth, "to", "", "Latest month for the initial view, format YYYY-MM")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "Load the demo users and entries into an empty store before serving")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "Do not open browser automatically")
}

func parseServeMonthBounds(fromValue, toValue string, now time.Time) (serveMonthBounds, error) {
	var out serveMonthBounds

	parse := func(raw string) (worklog.Month, error) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return worklog.Month{}, nil
		}
		return worklog.ParseMonth(raw)
	}

	from, err := parse(fromValue)
	if err != nil {
		return out, fmt.Errorf("invalid --from value: %w", err)
	}
	to, err := parse(toValue)
	if err != nil {
		return out, fmt.Errorf("invalid --to value: %w", err)
	}
	if !from.IsZero() && !to.IsZero() && to.FirstDay().Before(from.FirstDay()) {
		return out, fmt.Errorf("invalid range: --from must be <= --to")
	}

	out.from = from
	out.to = to

	current := worklog.MonthOf(now)
	switch {
	case !from.IsZero() && current.FirstDay().Before(from.FirstDay()):
		out.defaultMonth = from
	case !to.IsZero() && current.FirstDay().After(to.FirstDay()):
		out.defaultMonth = to
	default:
		out.defaultMonth = current
	}

	return out, nil
}

// withServeMonthRedirect sends plain requests for / to the given user's
// default month. Shared report links (/?share=...) pass through.
func withServeMonthRedirect(next http.Handler, userID string, bounds serveMonthBounds) http.Handler {
	userID = strings.TrimSpace(userID)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != "" && r.Method == http.MethodGet && r.URL.Path == "/" && r.URL.Query().Get(share.QueryParam) == "" {
			http.Redirect(w, r, userMonthPath(userID, bounds.defaultMonth), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func userMonthPath(userID string, month worklog.Month) string {
	return "/users/" + url.PathEscape(userID) + "/month/" + month.String()
}

func openURLInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
