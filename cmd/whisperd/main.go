package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"whisperd/internal/common/fsutil"
	"whisperd/internal/config"
	"whisperd/internal/httpapi"
	"whisperd/internal/manager"
	"whisperd/internal/registry"
)

// envDefault returns the environment value for key, or fallback when unset.
func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func buildRootCmd() *cobra.Command {
	var (
		cfgPath string
		cfg     config.Config
	)
	root := &cobra.Command{
		Use:           "whisperd",
		Short:         "Local OpenAI-compatible speech-to-text server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				fileCfg, err := config.Load(cfgPath)
				if err != nil {
					return fmt.Errorf("load config %s: %w", cfgPath, err)
				}
				cfg = merge(fileCfg, cfg, cmd)
			}
			return run(cfg)
		},
	}
	f := root.Flags()
	f.StringVar(&cfgPath, "config", os.Getenv("WHISPERD_CONFIG"), "Optional config file (yaml/json/toml)")
	f.StringVar(&cfg.Addr, "addr", envDefault("WHISPERD_ADDR", ":8090"), "HTTP listen address, e.g. :8090")
	f.StringVar(&cfg.ModelsDir, "models-dir", envDefault("WHISPERD_MODELS_DIR", "~/.cache/whisperd"), "Directory holding ggml-*.bin model artifacts")
	f.StringVar(&cfg.TempDir, "temp-dir", envDefault("WHISPERD_TEMP_DIR", ""), "Directory for per-request audio spools (default: system temp)")
	f.StringVar(&cfg.DefaultModel, "default-model", envDefault("WHISPERD_MODEL", "large-v3-turbo"), "Default model when request omits model")
	f.StringVar(&cfg.Device, "device", envDefault("WHISPERD_DEVICE", "auto"), "Target device: cpu, cuda, or auto")
	f.StringVar(&cfg.ComputeType, "compute-type", envDefault("WHISPERD_COMPUTE_TYPE", "auto"), "Numeric precision: float16, int8, int8_float32, auto")
	f.IntVar(&cfg.BeamSize, "beam-size", envDefaultInt("WHISPERD_BEAM_SIZE", 5), "Decoding beam size")
	f.StringVar(&cfg.Language, "language", envDefault("WHISPERD_LANGUAGE", ""), "Language hint (empty: autodetect)")
	f.IntVar(&cfg.MaxUploadMB, "max-upload-mb", envDefaultInt("WHISPERD_MAX_UPLOAD_MB", 0), "Maximum upload size in MB (0: default)")
	f.IntVar(&cfg.MaxQueueDepth, "max-queue-depth", 0, "Queued requests per model before 429 (0: default)")
	f.IntVar(&cfg.MaxWaitSeconds, "max-wait-seconds", 0, "Queue wait before 429, seconds (0: default)")
	return root
}

// merge overlays flag values the user set explicitly on top of the file
// config; everything else comes from the file when present.
func merge(file, flags config.Config, cmd *cobra.Command) config.Config {
	out := file
	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if set("addr") || out.Addr == "" {
		out.Addr = flags.Addr
	}
	if set("models-dir") || out.ModelsDir == "" {
		out.ModelsDir = flags.ModelsDir
	}
	if set("temp-dir") || out.TempDir == "" {
		out.TempDir = flags.TempDir
	}
	if set("default-model") || out.DefaultModel == "" {
		out.DefaultModel = flags.DefaultModel
	}
	if set("device") || out.Device == "" {
		out.Device = flags.Device
	}
	if set("compute-type") || out.ComputeType == "" {
		out.ComputeType = flags.ComputeType
	}
	if set("beam-size") || out.BeamSize == 0 {
		out.BeamSize = flags.BeamSize
	}
	if set("language") || out.Language == "" {
		out.Language = flags.Language
	}
	if set("max-upload-mb") || out.MaxUploadMB == 0 {
		out.MaxUploadMB = flags.MaxUploadMB
	}
	if set("max-queue-depth") || out.MaxQueueDepth == 0 {
		out.MaxQueueDepth = flags.MaxQueueDepth
	}
	if set("max-wait-seconds") || out.MaxWaitSeconds == 0 {
		out.MaxWaitSeconds = flags.MaxWaitSeconds
	}
	return out
}

func run(cfg config.Config) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("svc", "whisperd").Logger()

	if cfg.TempDir != "" {
		expanded, err := fsutil.EnsureDir(cfg.TempDir)
		if err != nil {
			return fmt.Errorf("temp dir: %w", err)
		}
		cfg.TempDir = expanded
	}

	reg, err := registry.LoadDir(cfg.ModelsDir)
	if err != nil {
		return fmt.Errorf("scan models dir: %w", err)
	}
	logger.Info().Int("models", len(reg)).Str("dir", cfg.ModelsDir).Msg("scanned model cache")

	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Registry:      reg,
		ModelsDir:     cfg.ModelsDir,
		TempDir:       cfg.TempDir,
		DefaultModel:  cfg.DefaultModel,
		Device:        cfg.Device,
		ComputeType:   cfg.ComputeType,
		BeamSize:      cfg.BeamSize,
		Language:      cfg.Language,
		MaxQueueDepth: cfg.MaxQueueDepth,
		MaxWait:       time.Duration(cfg.MaxWaitSeconds) * time.Second,
	})
	mgr.SetLogger(logger)
	defer mgr.Close()

	httpapi.SetLogger(logger)
	if cfg.MaxUploadMB > 0 {
		httpapi.SetMaxUploadBytes(int64(cfg.MaxUploadMB) << 20)
	}
	if cfg.CORSEnabled {
		httpapi.SetCORSOptions(true, cfg.CORSOrigins,
			[]string{"GET", "POST", "OPTIONS"},
			[]string{"Accept", "Content-Type", "X-Log-Level"})
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(mgr)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("default_model", cfg.DefaultModel).Msg("whisperd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "whisperd:", err)
		os.Exit(1)
	}
}
