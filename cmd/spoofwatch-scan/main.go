package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"spoofwatch/internal/modkit"
	"spoofwatch/internal/modkit/module"
	"spoofwatch/internal/modkit/repokit"
	"spoofwatch/internal/platform/chain"
	"spoofwatch/internal/platform/config"
	"spoofwatch/internal/platform/logger"
	"spoofwatch/internal/platform/store"

	findingsmod "spoofwatch/internal/services/findings/module"
	progressdom "spoofwatch/internal/services/progress/domain"
	progressmod "spoofwatch/internal/services/progress/module"
	resolvermod "spoofwatch/internal/services/resolver/module"
	spoofdom "spoofwatch/internal/services/spoof/domain"
	spoofmod "spoofwatch/internal/services/spoof/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	var (
		fFrom   = flag.Uint64("from", 0, "first block to scan (inclusive)")
		fTo     = flag.Uint64("to", 0, "last block to scan (inclusive), 0 = current head")
		fPage   = flag.Uint64("page", 0, "blocks per eth_getLogs window (CORE_SPOOF_PAGE_BLOCKS)")
		fDryRun = flag.Bool("dry-run", false, "log findings without writing them to the sink")
		fResume = flag.Bool("resume", false, "start from the scan_pages ledger instead of -from (pg sink only)")
	)
	flag.Parse()

	logOpt := logger.FromEnv()
	if os.Getenv("LOG_SERVICE") == "" {
		logOpt.Service = "spoofwatch-scan"
	}
	logger.Init(logOpt)
	l := logger.Get()

	// Surface flags to modules that read FromConfig
	if *fPage > 0 {
		mustSetEnv("CORE_SPOOF_PAGE_BLOCKS", strconv.FormatUint(*fPage, 10))
	}
	if *fDryRun {
		mustSetEnv("CORE_SPOOF_DRY_RUN", "1")
	}

	root := config.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, findingsmod.StoreConfig(root, "scan"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(ctx, st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	node := chain.New(chain.FromConfig(root))
	defer node.Close()
	// a scan is useless without the node, fail before touching the ledger
	repokit.MustPing(ctx, "chain", node)

	// Shared deps for modules
	deps := modkit.Deps{
		Cfg:   root,
		PG:    st.PG,
		CH:    st.CH,
		Chain: node,
		Log:   *l,
	}

	rm := resolvermod.New(deps)
	fm := findingsmod.New(deps)
	if err := fm.EnsureSchema(ctx); err != nil {
		l.Fatal().Err(err).Msg("findings schema failed")
	}

	// page ledger lives next to pg findings
	var ledger progressdom.LedgerPort
	if deps.PG != nil {
		pm := progressmod.New(deps)
		if err := pm.EnsureSchema(ctx); err != nil {
			l.Fatal().Err(err).Msg("progress schema failed")
		}
		module.Register(pm.Name(), pm.Ports())
		ledger = module.MustPortsOf[progressmod.Ports](pm).Ledger
	} else if *fResume {
		l.Fatal().Msg("-resume needs CORE_FINDINGS_SINK=pg")
	}

	sm := spoofmod.New(
		deps,
		spoofmod.Options{},
		modkit.WithPorts(spoofdom.Ports{
			Resolver: module.MustPortsOf[resolvermod.Ports](rm).Resolver,
			Sink:     module.MustPortsOf[findingsmod.Ports](fm).Writer,
			Logs:     node,
			Progress: ledger,
		}),
	)
	module.Register(rm.Name(), rm.Ports())
	module.Register(fm.Name(), fm.Ports())
	module.Register(sm.Name(), sm.Ports())

	to := *fTo
	if to == 0 {
		head, err := node.BlockNumber(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("head lookup failed")
		}
		to = head
	}
	from := *fFrom
	if *fResume {
		next, ok, err := ledger.ResumeFrom(ctx, sm.Config().Controller.Hex())
		if err != nil {
			l.Fatal().Err(err).Msg("resume lookup failed")
		}
		if ok {
			from = next
		}
	}
	if from == 0 {
		from = to
	}
	if from > to {
		l.Info().Uint64("from", from).Uint64("to", to).Msg("nothing to scan")
		return
	}

	l.Info().Uint64("from", from).Uint64("to", to).Msg("scan starting")
	if err := module.MustPortsOf[spoofmod.Ports](sm).Runner.RunRange(ctx, from, to); err != nil {
		l.Fatal().Err(err).Msg("scan failed")
	}
	l.Info().Uint64("from", from).Uint64("to", to).Msg("scan done")
}
