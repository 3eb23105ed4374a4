// Command dspexplorer runs the interactive filter design explorer: an HTTP
// server with a browser UI, plus a one-shot design mode for scripting.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/JWKennington/app-dsp-filter-design/config"
	"github.com/JWKennington/app-dsp-filter-design/dsp/filter/design"
	"github.com/JWKennington/app-dsp-filter-design/explorer"
	"github.com/JWKennington/app-dsp-filter-design/explorer/preset"
	"github.com/JWKennington/app-dsp-filter-design/server"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "dspexplorer",
	Short:        "Interactive pole-zero filter design explorer",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the explorer UI and JSON API",
	RunE:  runServe,
}

var designFlags struct {
	family  string
	ftype   string
	order   int
	domain  string
	cutoff1 float64
	cutoff2 float64
	ripple  float64
	atten   float64
}

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Design one filter and print its zeros, poles, and gain as JSON",
	RunE:  runDesign,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")

	designCmd.Flags().StringVar(&designFlags.family, "family", string(design.FamilyButterworth), "Approximation family")
	designCmd.Flags().StringVar(&designFlags.ftype, "type", string(design.TypeLowpass), "Band shape (low, high, bandpass, bandstop)")
	designCmd.Flags().IntVar(&designFlags.order, "order", 4, "Filter order")
	designCmd.Flags().StringVar(&designFlags.domain, "domain", string(design.DomainAnalog), "Transform domain (analog, digital)")
	designCmd.Flags().Float64Var(&designFlags.cutoff1, "cutoff1", 1.0, "First cutoff (rad/s, or fraction of Nyquist for digital)")
	designCmd.Flags().Float64Var(&designFlags.cutoff2, "cutoff2", 2.0, "Second cutoff, for bandpass and bandstop")
	designCmd.Flags().Float64Var(&designFlags.ripple, "ripple", 0, "Passband ripple in dB (Chebyshev I, Elliptic)")
	designCmd.Flags().Float64Var(&designFlags.atten, "atten", 0, "Stopband attenuation in dB (Chebyshev II, Elliptic)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(designCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	presets, err := preset.Open(cfg.PresetDBPath)
	if err != nil {
		return err
	}
	defer func() { _ = presets.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, log, explorer.NewStore(log), presets)

	return srv.Run(ctx)
}

func runDesign(_ *cobra.Command, _ []string) error {
	p := design.Params{
		Family:           design.Family(designFlags.family),
		Type:             design.Type(designFlags.ftype),
		Order:            designFlags.order,
		Domain:           design.Domain(designFlags.domain),
		Cutoff1:          designFlags.cutoff1,
		Cutoff2:          designFlags.cutoff2,
		PassbandRippleDB: designFlags.ripple,
		StopbandAttenDB:  designFlags.atten,
	}

	f := design.NewDesigner(nil).Design(p)

	out, err := json.MarshalIndent(f.ToState(), "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)

	return zc.Build()
}
