package render

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kapu/busan-tour-bot-go/internal/constants"
	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/pkg/errors"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

var ErrPipelineClosed = stderrors.New("render pipeline closed")

// URLResolver maps an attraction to its photo URL.
type URLResolver interface {
	Resolve(ctx context.Context, name, category string) string
}

// Loader fetches a photo and reports whether it loaded.
type Loader interface {
	Load(ctx context.Context, url string) error
}

// Recorder receives per-card and per-batch observations (metrics).
type Recorder interface {
	PhotoSettled(status LoadStatus, trigger Trigger)
	CardSkipped()
	BatchCompleted(c Completion)
}

type PipelineConfig struct {
	Timeout     time.Duration
	Concurrency int
}

// SkippedCard is an attraction whose card could not be constructed.
type SkippedCard struct {
	Index int
	Name  string
	Err   error
}

// Batch is the result of one Render call.
type Batch struct {
	Generation uint64
	Cards      []*Card
	Skipped    []SkippedCard

	stats *LoadingStats
}

// Wait blocks until every card in the batch has settled, the batch was
// superseded, or ctx ends.
func (b *Batch) Wait(ctx context.Context) error {
	select {
	case <-b.stats.Done(b.Generation):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Counts tallies card outcomes as they are right now.
func (b *Batch) Counts() (loaded, failed, pending int) {
	for _, c := range b.Cards {
		switch c.Status() {
		case StatusLoaded:
			loaded++
		case StatusFailed:
			failed++
		default:
			pending++
		}
	}
	return loaded, failed, pending
}

// Pipeline turns attraction lists into ordered cards whose photos load in the
// background. One pipeline owns one container; Render calls on it are
// serialized and each one supersedes the previous batch.
type Pipeline struct {
	resolver  URLResolver
	loader    Loader
	container Container
	stats     *LoadingStats
	recorder  Recorder
	logger    *zap.Logger
	cfg       PipelineConfig

	renderMu sync.Mutex
	baseCtx  context.Context
	cancel   context.CancelFunc
	loads    conc.WaitGroup

	closeOnce sync.Once
}

type PipelineOption func(*Pipeline)

func WithRecorder(r Recorder) PipelineOption {
	return func(p *Pipeline) { p.recorder = r }
}

func WithConfig(cfg PipelineConfig) PipelineOption {
	return func(p *Pipeline) {
		if cfg.Timeout > 0 {
			p.cfg.Timeout = cfg.Timeout
		}
		if cfg.Concurrency > 0 {
			p.cfg.Concurrency = cfg.Concurrency
		}
	}
}

func NewPipeline(resolver URLResolver, loader Loader, container Container, logger *zap.Logger, opts ...PipelineOption) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		resolver:  resolver,
		loader:    loader,
		container: container,
		logger:    logger,
		cfg: PipelineConfig{
			Timeout:     constants.ImageLoad.Timeout,
			Concurrency: constants.Render.Concurrency,
		},
		baseCtx: ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.stats = NewLoadingStats(logger, p.onBatchComplete)
	return p
}

// Render replaces the container contents with one card per attraction, in
// input order. It returns once the cards are committed; photos keep loading
// afterwards. Attractions that fail validation are logged and skipped.
func (p *Pipeline) Render(ctx context.Context, attractions []domain.Attraction) (*Batch, error) {
	p.renderMu.Lock()
	defer p.renderMu.Unlock()

	if p.baseCtx.Err() != nil {
		return nil, ErrPipelineClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.container.Clear()
	gen := p.stats.Reset()

	cards := make([]*Card, len(attractions))
	errs := make([]error, len(attractions))

	workers := pool.New().WithMaxGoroutines(p.cfg.Concurrency)
	for i, attraction := range attractions {
		workers.Go(func() {
			var pc panics.Catcher
			pc.Try(func() {
				cards[i], errs[i] = p.buildCard(ctx, gen, i, attraction)
			})
			if r := pc.Recovered(); r != nil {
				cards[i], errs[i] = nil, r.AsError()
			}
		})
	}
	workers.Wait()

	batch := &Batch{Generation: gen, stats: p.stats}
	for i, card := range cards {
		if errs[i] != nil || card == nil {
			err := errs[i]
			if err == nil {
				err = fmt.Errorf("card %d was not constructed", i)
			}
			logFn := p.logger.Error
			if errors.IsValidation(err) {
				logFn = p.logger.Warn
			}
			logFn("Card construction failed",
				zap.Int("index", i),
				zap.String("name", attractions[i].Name),
				zap.Error(err),
			)
			if p.recorder != nil {
				p.recorder.CardSkipped()
			}
			batch.Skipped = append(batch.Skipped, SkippedCard{Index: i, Name: attractions[i].Name, Err: err})
			continue
		}
		batch.Cards = append(batch.Cards, card)
	}

	p.container.Append(batch.Cards...)
	p.stats.Seal(gen)

	p.logger.Debug("Batch committed",
		zap.Uint64("generation", gen),
		zap.Int("cards", len(batch.Cards)),
		zap.Int("skipped", len(batch.Skipped)),
	)
	return batch, nil
}

// buildCard does every fallible step before the card is counted, so a card
// that fails never holds the batch open.
func (p *Pipeline) buildCard(ctx context.Context, gen uint64, index int, attraction domain.Attraction) (*Card, error) {
	if strings.TrimSpace(attraction.Name) == "" {
		return nil, errors.NewValidationError("attraction name is empty", "name", attraction.Name)
	}
	if strings.TrimSpace(attraction.Category) == "" {
		return nil, errors.NewValidationError("attraction category is empty", "category", attraction.Category)
	}

	url := p.resolver.Resolve(ctx, attraction.Name, attraction.Category)
	if url == "" {
		return nil, errors.NewValidationError("no photo url resolved", "name", attraction.Name)
	}

	card := newCard(index, attraction, url)
	card.machine = NewLoadStateMachine(func(status LoadStatus, trigger Trigger) {
		p.onCardSettled(gen, card, status, trigger)
	})

	p.stats.IncrementTotal(gen)

	fetchCtx, cancel := context.WithCancel(p.baseCtx)
	card.machine.Arm(p.cfg.Timeout, cancel)
	machine := card.machine
	p.loads.Go(func() {
		var err error
		var pc panics.Catcher
		pc.Try(func() {
			err = p.loader.Load(fetchCtx, url)
		})
		if r := pc.Recovered(); r != nil {
			if machine.Transition(TriggerError) {
				p.logger.Error("Photo loader panicked",
					zap.String("name", attraction.Name),
					zap.Error(r.AsError()),
				)
			}
			return
		}
		if err != nil {
			if machine.Transition(TriggerError) {
				p.logger.Debug("Photo load failed",
					zap.String("name", attraction.Name),
					zap.Error(err),
				)
			}
			return
		}
		machine.Transition(TriggerLoad)
	})
	return card, nil
}

func (p *Pipeline) onCardSettled(gen uint64, card *Card, status LoadStatus, trigger Trigger) {
	if status == StatusLoaded {
		p.stats.IncrementLoaded(gen)
	} else {
		p.stats.IncrementFailed(gen)
		if trigger == TriggerTimeout {
			p.logger.Warn("Photo load timed out",
				zap.String("name", card.Attraction.Name),
				zap.Duration("timeout", p.cfg.Timeout),
			)
		}
	}
	if p.recorder != nil {
		p.recorder.PhotoSettled(status, trigger)
	}
}

func (p *Pipeline) onBatchComplete(c Completion) {
	if p.recorder != nil {
		p.recorder.BatchCompleted(c)
	}
}

// Stats exposes the aggregate counters of the current batch.
func (p *Pipeline) Stats() StatsSnapshot {
	return p.stats.Snapshot()
}

// Close cancels every in-flight photo load and waits for the loaders to
// return. Pending cards settle as failed.
func (p *Pipeline) Close() {
	p.closeOnce.Do(func() {
		p.renderMu.Lock()
		defer p.renderMu.Unlock()
		p.cancel()
		p.loads.Wait()
	})
}
