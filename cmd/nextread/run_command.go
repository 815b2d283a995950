package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"nextread/internal/augment"
	"nextread/internal/config"
	"nextread/internal/fetch"
	"nextread/internal/logging"
	"nextread/internal/metacache"
	"nextread/internal/render"
	"nextread/internal/scan"
)

const watchPollInterval = 500 * time.Millisecond

func newRunCommand(ctx *commandContext) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "run <page.html>",
		Short: "Scan a saved page and augment its book cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			pagePath := args[0]
			if _, err := os.Stat(pagePath); err != nil {
				return fmt.Errorf("open page %s: %w", pagePath, err)
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			sessionID := uuid.NewString()
			logger = logger.With(logging.String(logging.FieldSessionID, sessionID))

			store, err := metacache.Open(cfg)
			if err != nil {
				return fmt.Errorf("open metadata cache: %w", err)
			}
			defer store.Close()
			cache := metacache.NewCache(store, logger)

			scanner := scan.NewHTMLScanner(cfg.Scan.CardSelector)
			source := scan.NewReaderSource(scanner, func() (io.ReadCloser, error) {
				return os.Open(pagePath)
			})

			transport := fetch.NewHTTPTransport(cfg.SourceTimeout(), cfg.Source.UserAgent)
			fetcher := fetch.NewCatalogFetcher(transport, cfg.Source.BaseURL)

			if watch {
				return runWatch(cmd.Context(), cfg, pagePath, source, cache, fetcher, logger)
			}

			recorder := render.NewRecorder()
			o := augment.New(cfg, source, cache, fetcher, recorder, logger)
			defer o.Stop()

			if err := o.Start(cmd.Context()); err != nil {
				return fmt.Errorf("start augmentation: %w", err)
			}
			o.Wait()

			printRunSummary(cmd.OutOrStdout(), recorder.Results())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and re-scan when the page file changes")
	return cmd
}

// runWatch keeps the orchestrator alive and feeds it change notifications
// whenever the page file's mtime moves. The lock prevents two watchers from
// racing over the same cache database.
func runWatch(cmdCtx context.Context, cfg *config.Config, pagePath string, source scan.Source, cache *metacache.Cache, fetcher fetch.Fetcher, logger *slog.Logger) error {
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	lockPath := filepath.Join(cfg.Paths.CacheDir, "nextread.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another nextread watcher is already running")
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("release watch lock", logging.Error(err))
		}
	}()

	o := augment.New(cfg, source, cache, fetcher, render.NewLogRenderer(logger), logger)
	defer o.Stop()

	if err := o.Start(signalCtx); err != nil {
		return fmt.Errorf("start augmentation: %w", err)
	}
	logger.Info("watching page for changes",
		logging.String("page", pagePath),
		logging.String("lock", lockPath))

	lastMod := time.Time{}
	if info, err := os.Stat(pagePath); err == nil {
		lastMod = info.ModTime()
	}

	ticker := time.NewTicker(watchPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-signalCtx.Done():
			logger.Info("watcher shutting down")
			return nil
		case <-ticker.C:
			info, err := os.Stat(pagePath)
			if err != nil {
				logger.Warn("stat page", logging.Error(err))
				continue
			}
			if info.ModTime().After(lastMod) {
				lastMod = info.ModTime()
				o.NotifyChanged()
			}
		}
	}
}

func printRunSummary(out io.Writer, results []render.Result) {
	if len(results) == 0 {
		fmt.Fprintln(out, "No cards augmented")
		return
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		author := r.Query.Author
		if author == "" {
			author = "-"
		}
		rows = append(rows, []string{
			r.Query.Title,
			author,
			orDash(r.Metadata.Rating),
			orDash(r.Metadata.RatingCount),
			orDash(r.Metadata.PageCount),
			orDash(r.Metadata.Year),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Title", "Author", "Rating", "Ratings", "Pages", "Year"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	))
	fmt.Fprintf(out, "%d card(s) augmented\n", len(results))
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
