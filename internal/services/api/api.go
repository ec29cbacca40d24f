// Package api provides the HTTP API for the application
package api

import (
	"context"

	"spoofwatch/internal/platform/chain"
	"spoofwatch/internal/platform/config"
	perr "spoofwatch/internal/platform/errors"
	"spoofwatch/internal/platform/logger"
	phttp "spoofwatch/internal/platform/net/http"
	"spoofwatch/internal/platform/store"

	"spoofwatch/internal/modkit"
	"spoofwatch/internal/modkit/httpkit"
	"spoofwatch/internal/modkit/module"
	"spoofwatch/internal/modkit/swaggerkit"

	metahttp "spoofwatch/internal/services/api/meta/http"
	metamod "spoofwatch/internal/services/api/meta/module"
	findingsmod "spoofwatch/internal/services/findings/module"
	resolvermod "spoofwatch/internal/services/resolver/module"
	spoofdom "spoofwatch/internal/services/spoof/domain"
	spoofmod "spoofwatch/internal/services/spoof/module"
	spoofsvc "spoofwatch/internal/services/spoof/service"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Chain          chain.Reader
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount composes the modules and mounts them onto the given router.
// The findings table is created here when a storage sink is configured.
func Mount(ctx context.Context, r phttp.Router, opt Options) error {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		Chain: opt.Chain,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	resolver := resolvermod.New(deps)
	findings := findingsmod.New(deps)
	if err := findings.EnsureSchema(ctx); err != nil {
		return err
	}

	// leaf modules register first; spoof reads their ports back by name
	for _, m := range []module.Module{resolver, findings} {
		module.Register(m.Name(), m.Ports())
	}
	rp, ok := module.PortsAs[resolvermod.Ports](resolver.Name())
	if !ok {
		return perr.Configf("api: resolver ports not registered")
	}
	fp, ok := module.PortsAs[findingsmod.Ports](findings.Name())
	if !ok {
		return perr.Configf("api: findings ports not registered")
	}

	spoofOpts := []modkit.Option{
		modkit.WithPorts(spoofdom.Ports{
			Resolver: rp.Resolver,
			Sink:     fp.Writer,
			Logs:     opt.Chain,
		}),
	}
	// spoof routes fan out into many RPC reads; CORE_API_KEYS=client:key,... gates them
	apiCfg := deps.Cfg.Prefix("CORE_API_")
	if n := apiCfg.MayInt("MAX_INFLIGHT", 0); n > 0 {
		spoofOpts = append(spoofOpts, modkit.WithMiddlewares(httpkit.Throttle(n)))
	}
	if pairs := apiCfg.MayCSV("KEYS", nil); len(pairs) > 0 {
		gate, err := httpkit.KeyAuth(pairs)
		if err != nil {
			return err
		}
		spoofOpts = append(spoofOpts, modkit.WithMiddlewares(gate))
	}
	spoof := spoofmod.New(deps, spoofmod.Options{}, spoofOpts...)

	cfg := spoof.Config()
	det := metahttp.DetectorInfo{
		Registry:   resolvermod.FromConfig(deps.Cfg).Registry.Hex(),
		Controller: cfg.Controller.Hex(),
		AlertID:    cfg.Abbreviation + spoofdom.AlertSuffix,
		Workers:    spoofsvc.PoolSize,
		Thresholds: cfg.Candidates,
		Sink:       findingsmod.FromConfig(deps.Cfg).Sink,
	}

	mods := []module.Module{
		metamod.New(deps, det),
		findings,
		spoof,
	}

	// versioned API behind the shared stack
	httpkit.V1(r, httpkit.Stack(apiCfg), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
	return nil
}
