package service

import (
	"time"

	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/contract"
)

// Options configures the engine. Zero values fall back to the reference
// defaults (30s dispatch interval, 1s rebuild quiet period, wall clock).
type Options struct {
	DispatchInterval   time.Duration
	RebuildQuietPeriod time.Duration
	PrivacyMode        bool
	Now                func() time.Time
}

type Services struct {
	Rules       *ruleService
	Engine      *engineService
	Coordinator *rebuildCoordinator
}

func New(dm contract.DataManager, deliverers []contract.Deliverer, opts Options) *Services {
	if opts.DispatchInterval <= 0 {
		opts.DispatchInterval = 30 * time.Second
	}
	if opts.RebuildQuietPeriod <= 0 {
		opts.RebuildQuietPeriod = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	byChannel := make(map[domain.Channel]contract.Deliverer, len(deliverers))
	for _, deliverer := range deliverers {
		byChannel[deliverer.Channel()] = deliverer
	}

	engine := &engineService{
		dm:      dm,
		store:   newOccurrenceStore(),
		privacy: opts.PrivacyMode,
		nowFn:   opts.Now,
	}
	engine.dispatcher = newDispatcher(engine.store, byChannel, opts.DispatchInterval, opts.Now, &engine.checkMu)

	coordinator := newRebuildCoordinator(engine, opts.RebuildQuietPeriod)

	rules := newRuleService(dm)
	rules.SetCoordinator(coordinator)

	return &Services{
		Rules:       rules,
		Engine:      engine,
		Coordinator: coordinator,
	}
}
