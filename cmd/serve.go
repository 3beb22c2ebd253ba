package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/julmat/internal/server"
)

var (
	flagServeAddr         string
	flagServeReadOnly     bool
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the checklist over HTTP with a change-event stream",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config, 127.0.0.1:8788)")
	serveCmd.Flags().BoolVar(&flagServeReadOnly, "readonly", false, "Refuse toggle, import and reset")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	addr := cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := server.New(server.Config{
		Addr:         addr,
		ReadOnly:     cfg.Server.ReadOnly || flagServeReadOnly,
		RateLimitRPS: cfg.Server.RateLimitRPS,
		RateBurst:    cfg.Server.RateBurst,
		EventsBuffer: flagServeEventsBuffer,
	}, cat, st, newSorter(), reg, logger)

	fmt.Printf("  julmat listening on http://%s\n", addr)
	fmt.Printf("  %d items in %d families from %s\n", len(cat.Items), len(cat.Families), cfg.General.DataSource)
	fmt.Println("  Stop with Ctrl+C")

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
