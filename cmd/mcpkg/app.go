package main

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mcpkg/internal/cache"
	"mcpkg/internal/config"
	"mcpkg/internal/download"
	"mcpkg/internal/envutil"
	"mcpkg/internal/logging"
	"mcpkg/internal/mc"
	"mcpkg/internal/metrics"
	"mcpkg/internal/provider"
	"mcpkg/internal/registry"
)

// app bundles the live components every subcommand operates against,
// built once per invocation by newApp.
type app struct {
	cfg     *config.Config
	reg     *registry.Mc
	cache   *cache.Cache
	dl      *download.Downloader
	metrics *metrics.Downloads
	log     *zap.Logger
}

// newApp loads configuration, wires provider backends, and seeds the
// registry, mirroring cmd/config's LoadConfig-then-build bootstrap shape
// but surfacing errors to cobra instead of panicking.
func newApp() (*app, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.Init(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.Download.TimeoutS) * time.Second}

	reg := registry.New()
	reg.SeedProviders(map[mc.ProviderID]mc.Ops{
		mc.ProviderModrinth:   provider.NewModrinth(httpClient, baseURLFor(cfg, "modrinth", "https://api.modrinth.com")),
		mc.ProviderCurseForge: provider.NewCurseForge(httpClient, baseURLFor(cfg, "curseforge", "https://api.curseforge.com/v1"), envutil.OrDefault("MCPKG_CURSEFORGE_API_KEY", "")),
		mc.ProviderHangar:     provider.NewHangar(httpClient, baseURLFor(cfg, "hangar", "https://hangar.papermc.io/api/v1")),
		mc.ProviderLocal:      provider.NewLocal(localDir(cfg)),
	})
	reg.SeedLoaders(nil)
	reg.SeedVersionsAll()
	registry.GlobalInit(reg)

	cch, err := cache.New(cfg.Cache.Dir, cfg.Cache.LRUSize)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	dlMetrics := metrics.NewDownloads()
	dl := download.NewDownloaderWithClient(httpClient, cfg.Download.Parallel, cfg.Download.Queue)
	dl.SetMetrics(dlMetrics)

	return &app{cfg: cfg, reg: reg, cache: cch, dl: dl, metrics: dlMetrics, log: logger}, nil
}

func (a *app) Close() {
	a.dl.Close()
	registry.GlobalShutdown()
}

func baseURLFor(cfg *config.Config, name, fallback string) string {
	if pc, ok := cfg.Providers[name]; ok && pc.BaseURL != "" {
		return pc.BaseURL
	}
	return fallback
}

func localDir(cfg *config.Config) string {
	if pc, ok := cfg.Providers["local"]; ok && pc.BaseURL != "" {
		return pc.BaseURL
	}
	return ".mcpkg/local"
}
