// @title         Spoofwatch API
// @version       0.1.0
// @description   ENS lookalike name checks and recent spoofing findings

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"spoofwatch/internal/modkit/repokit"
	"spoofwatch/internal/platform/chain"
	"spoofwatch/internal/platform/config"
	"spoofwatch/internal/platform/logger"
	phttp "spoofwatch/internal/platform/net/http"
	"spoofwatch/internal/platform/store"

	"spoofwatch/internal/services/api"
	findingsmod "spoofwatch/internal/services/findings/module"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	logOpt := logger.FromEnv()
	if os.Getenv("LOG_SERVICE") == "" {
		logOpt.Service = "spoofwatch-api"
	}
	logger.Init(logOpt)
	l := logger.Get()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// only the backend behind CORE_FINDINGS_SINK is opened
	st, err := store.Open(ctx, findingsmod.StoreConfig(root, "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(ctx, st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// ethereum node (SERVICE_ETH_RPC_URL), dialed on first use
	node := chain.New(chain.FromConfig(root))
	defer node.Close()

	// http server on CORE_API_PORT
	srv := phttp.NewServer(apiCfg)

	// mount our API
	if err := api.Mount(
		ctx,
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Chain:          node,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	); err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	// run until SIGINT/SIGTERM
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
