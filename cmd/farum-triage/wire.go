package main

import (
	"context"
	"fmt"

	"github.com/PabloGalante/farum-triage/internal/adapters/llm"
	"github.com/PabloGalante/farum-triage/internal/adapters/notify"
	"github.com/PabloGalante/farum-triage/internal/adapters/resources"
	"github.com/PabloGalante/farum-triage/internal/adapters/storage/badgerstore"
	firestorestore "github.com/PabloGalante/farum-triage/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/farum-triage/internal/adapters/storage/memory"
	mongostore "github.com/PabloGalante/farum-triage/internal/adapters/storage/mongo"
	redisstore "github.com/PabloGalante/farum-triage/internal/adapters/storage/redis"
	"github.com/PabloGalante/farum-triage/internal/app/composer"
	"github.com/PabloGalante/farum-triage/internal/app/conversation"
	"github.com/PabloGalante/farum-triage/internal/config"
	"github.com/PabloGalante/farum-triage/internal/domain"
	"github.com/PabloGalante/farum-triage/internal/observability"
)

// engine bundles the service with whatever has to be closed after it.
type engine struct {
	*conversation.Service
	closers []func() error
}

// Close drains the service first, then the backends it writes to.
func (e *engine) Close() {
	e.Service.Close()
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			observability.Logger().Warnw("close failed", "error", err)
		}
	}
}

func buildEngine(ctx context.Context, cfg *config.Config) (*engine, error) {
	log := observability.Logger()
	e := &engine{}
	fail := func(err error) (*engine, error) {
		for i := len(e.closers) - 1; i >= 0; i-- {
			_ = e.closers[i]()
		}
		return nil, err
	}

	// Storage
	var store domain.SessionStore
	switch cfg.StorageBackend {
	case config.StorageBadger:
		log.Infow("using badger storage", "dir", cfg.Badger.Dir)
		bs, err := badgerstore.NewStore(cfg.Badger.Dir)
		if err != nil {
			return fail(err)
		}
		e.closers = append(e.closers, bs.Close)
		store = bs
	case config.StorageFirestore:
		log.Infow("using firestore storage", "project", cfg.GCPProjectID)
		fs, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			return fail(err)
		}
		e.closers = append(e.closers, fs.Close)
		store = fs
	case config.StorageRedis:
		log.Infow("using redis storage", "host", cfg.Redis.Host)
		rs, err := redisstore.NewStore(cfg.Redis)
		if err != nil {
			return fail(err)
		}
		store = rs
	default:
		log.Infow("using in-memory storage")
		store = memstore.NewSessionStore()
	}

	opts := conversation.Options{
		Picker:            composer.NewPicker(cfg.Engine.Seed),
		MaxMessageLength:  cfg.Engine.MaxMessageLength,
		HistorySize:       cfg.Engine.HistorySize,
		GenerationTimeout: cfg.Engine.GenerationTimeout,
		ResourceTimeout:   cfg.Engine.ResourceTimeout,
	}

	// Generator
	switch {
	case cfg.DisableLLM:
		log.Infow("generative replies disabled, templates only")
	case cfg.UseMockLLM:
		log.Infow("using mock LLM")
		opts.Generator = llm.NewMockLLM()
	default:
		log.Infow("using Vertex LLM", "model", cfg.ModelName, "location", cfg.GCPLocation)
		vc, err := llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			return fail(fmt.Errorf("initializing Vertex LLM client: %w", err))
		}
		opts.Generator = vc
	}

	// Crisis resources
	if cfg.Resources.URL != "" {
		loc, err := resources.NewLocator(cfg.Resources.URL, cfg.Resources.Timeout)
		if err != nil {
			return fail(err)
		}
		opts.Resources = loc
	}

	// Mood history
	if cfg.Mongo.URL != "" {
		moods, err := mongostore.Connect(ctx, cfg.Mongo.URL, cfg.Mongo.DB, cfg.Mongo.Collection)
		if err != nil {
			return fail(err)
		}
		e.closers = append(e.closers, func() error { return moods.Close(context.Background()) })
		opts.Moods = moods
	} else {
		opts.Moods = memstore.NewMoodStore()
	}

	// Crisis notifications
	if cfg.RabbitMQ.URL != "" {
		n, err := notify.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return fail(err)
		}
		e.closers = append(e.closers, n.Close)
		opts.Notifier = n
	}

	e.Service = conversation.NewService(store, opts)
	return e, nil
}
