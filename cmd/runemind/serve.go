package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "runemind/internal/adapter/http"
	inventorymem "runemind/internal/adapter/inventory/memory"
	staticknowledge "runemind/internal/adapter/knowledge/static"
	metricsinmem "runemind/internal/adapter/metrics/inmemory"
	gormrepo "runemind/internal/adapter/repo/gorm"
	memrepo "runemind/internal/adapter/repo/memory"
	sqliterepo "runemind/internal/adapter/repo/sqlite"
	skillsmem "runemind/internal/adapter/skills/memory"
	statefile "runemind/internal/adapter/state/file"
	"runemind/internal/app/engine"
	"runemind/internal/app/grind"
	"runemind/internal/app/ports"
	"runemind/internal/app/recall"
	"runemind/internal/app/resilience"
	"runemind/internal/app/status"
	"runemind/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the snapshot API server",
	Long: `Serve the agent over HTTP: POST /api/agent/snapshot runs one
decision cycle, the remaining routes expose read views of the agent's
state, journal, and knowledge base. Deployment wiring comes from
RUNEMIND_* environment variables.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		return err
	}

	knowledge, err := buildKnowledge(cfg)
	if err != nil {
		return err
	}

	stateRepo, err := statefile.NewStateRepo(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("state store: %w", err)
	}
	progressRepo, err := statefile.NewProgressRepo(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("progress store: %w", err)
	}

	journal, txManager, closeJournal, err := buildJournal(cfg)
	if err != nil {
		return err
	}

	recorder := metricsinmem.NewRecorder()
	rng := seededRand(cfg.Seed)

	policy := resilience.NewPolicy(knowledge)
	policy.Threshold = tuning.Resilience.FailureThreshold
	policy.Window = tuning.Resilience.Window.Std()
	grinds := grind.NewModel(rng)
	grinds.Patience = tuning.Grind.Patience

	eng, err := engine.New(cmd.Context(), engine.Params{
		States:     stateRepo,
		Progress:   progressRepo,
		Journal:    journal,
		Skills:     skillsmem.NewStore(),
		Inventory:  inventorymem.NewStore(),
		Knowledge:  knowledge,
		Metrics:    recorder,
		Tx:         txManager,
		Resilience: policy,
		Grinds:     grinds,
		Log:        logger,
		Rand:       rng,
	})
	if err != nil {
		return err
	}

	h := httpadapter.Handler{
		Engine:    eng,
		StatusUC:  status.UseCase{Engine: eng},
		RecallUC:  recall.UseCase{Journal: journal},
		Knowledge: knowledge,
		KPI:       recorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(ctx context.Context) {
		if err := eng.Close(ctx); err != nil {
			logger.Error("final state flush failed", zap.Error(err))
		}
		if err := knowledge.Close(); err != nil {
			logger.Warn("knowledge base close failed", zap.Error(err))
		}
		if closeJournal != nil {
			if err := closeJournal(); err != nil {
				logger.Warn("journal close failed", zap.Error(err))
			}
		}
	})

	logger.Info("runemind listening",
		zap.String("addr", cfg.Addr),
		zap.String("state_dir", cfg.StateDir),
		zap.String("journal", journalKind(cfg)))
	s.Spin()
	return nil
}

func buildKnowledge(cfg config.Config) (*staticknowledge.Base, error) {
	if cfg.KnowledgeFile != "" {
		return staticknowledge.NewFromFile(cfg.KnowledgeFile, logger)
	}
	return staticknowledge.NewEmbedded()
}

// buildJournal picks the journal backend by configured presence:
// postgres DSN first, sqlite path second, in-memory otherwise.
func buildJournal(cfg config.Config) (ports.MemoryJournal, ports.TxManager, func() error, error) {
	if cfg.DBDSN != "" {
		db, err := gormrepo.OpenPostgres(cfg.DBDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("journal: %w", err)
		}
		closer := func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		return gormrepo.NewJournalRepo(db), gormrepo.NewTxManager(db), closer, nil
	}
	if cfg.SQLitePath != "" {
		store, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("journal: %w", err)
		}
		return store, memrepo.NewTxManager(), store.Close, nil
	}
	store := memrepo.NewStore()
	return memrepo.NewJournalRepo(store), memrepo.NewTxManager(), nil, nil
}

func journalKind(cfg config.Config) string {
	switch {
	case cfg.DBDSN != "":
		return "postgres"
	case cfg.SQLitePath != "":
		return "sqlite"
	default:
		return "memory"
	}
}

func seededRand(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}
