package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rollmill/cmd"
	"rollmill/internal/adapters/out/interchange"
	"rollmill/internal/core/application/usecases/commands"
	"rollmill/internal/core/application/usecases/queries"
	"rollmill/internal/pkg/logger"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	serviceName    = "rollmill"
	connectTimeout = 15 * time.Second
)

type runtimeDeps struct {
	cfg    cmd.Config
	logger *zap.Logger
	root   *cmd.CompositionRoot
}

// bootstrap loads the configuration, builds the logger and connects the
// storage. The returned cleanup closes the storage and flushes the logger.
func bootstrap(c *cli.Context) (runtimeDeps, func(), error) {
	cfg, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return runtimeDeps{}, nil, err
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile, Service: serviceName})
	if err != nil {
		return runtimeDeps{}, nil, err
	}

	ctx, cancel := context.WithTimeout(c.Context, connectTimeout)
	defer cancel()

	root, err := cmd.NewCompositionRoot(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return runtimeDeps{}, nil, err
	}

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := root.Close(closeCtx); err != nil {
			log.Error("storage close failed", zap.Error(err))
		}
		_ = log.Sync()
	}
	return runtimeDeps{cfg: cfg, logger: log, root: root}, cleanup, nil
}

func serve(c *cli.Context) error {
	deps, cleanup, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer cleanup()

	router, err := deps.root.CreateRouter()
	if err != nil {
		return err
	}

	jobManager, err := deps.root.CreateJobManager()
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", deps.cfg.HTTPPort)
		deps.logger.Info("http server listening", zap.String("addr", addr))
		if err := router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		deps.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), deps.cfg.ShutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func exportOrders(c *cli.Context) error {
	output := c.String("output")
	format, err := resolveFormat(c.String("format"), output)
	if err != nil {
		return err
	}
	if output == "" {
		output = format.FileName()
	}

	deps, cleanup, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer cleanup()

	orders, err := deps.root.CreateListOrdersQueryHandler().Handle(c.Context, queries.NewListOrdersQuery())
	if err != nil {
		return err
	}

	write := interchange.WriteJSON
	if format == interchange.FormatXLSX {
		write = interchange.WriteXLSX
	}
	if err = writeFile(output, func(w io.Writer) error { return write(w, orders) }); err != nil {
		return err
	}

	deps.logger.Info("orders exported", zap.String("file", output), zap.Int("count", len(orders)))
	return nil
}

func importOrders(c *cli.Context) error {
	input := c.String("input")
	format, err := resolveFormat(c.String("format"), input)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	read := interchange.ReadJSON
	if format == interchange.FormatXLSX {
		read = interchange.ReadXLSX
	}
	drafts, err := read(f)
	if err != nil {
		return err
	}

	importCmd, err := commands.NewImportOrdersCommand(drafts)
	if err != nil {
		return err
	}

	deps, cleanup, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := deps.root.CreateImportOrdersCommandHandler().Handle(c.Context, importCmd)
	if err != nil {
		return err
	}

	for _, failure := range report.Failures {
		deps.logger.Warn("record rejected",
			zap.Int("index", failure.Index),
			zap.String("order_number", failure.OrderNumber),
			zap.Error(failure.Err),
		)
	}
	deps.logger.Info("orders imported",
		zap.String("file", input),
		zap.Int("records", importCmd.Len()),
		zap.Int("created", len(report.Created)),
		zap.Int("failed", len(report.Failures)),
	)

	if len(report.Created) == 0 {
		return cli.Exit("no order was imported", 1)
	}
	return nil
}

func writeSample(c *cli.Context) error {
	output := c.String("output")
	if err := writeFile(output, interchange.WriteSampleXLSX); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "sample written to %s\n", output)
	return nil
}

// resolveFormat prefers the explicit flag and falls back to the extension
// of path.
func resolveFormat(flag, path string) (interchange.Format, error) {
	if flag != "" {
		return interchange.ParseFormat(flag)
	}
	if path == "" {
		return interchange.FormatJSON, nil
	}
	return interchange.FormatFromPath(path)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
