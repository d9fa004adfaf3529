package bot

import (
	"context"
	"sync"

	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/service/render"
	"go.uber.org/zap"
)

type roomView struct {
	board    *render.Board
	pipeline *render.Pipeline
}

// roomRenderer owns one board and pipeline per chat room. All pipelines share
// the URL resolver and loader, so a photo resolved in one room is reused in
// every other.
type roomRenderer struct {
	resolver render.URLResolver
	loader   render.Loader
	opts     []render.PipelineOption
	logger   *zap.Logger

	mu     sync.Mutex
	rooms  map[string]*roomView
	closed bool
}

func newRoomRenderer(resolver render.URLResolver, loader render.Loader, logger *zap.Logger, opts ...render.PipelineOption) *roomRenderer {
	return &roomRenderer{
		resolver: resolver,
		loader:   loader,
		opts:     opts,
		logger:   logger,
		rooms:    make(map[string]*roomView),
	}
}

func (r *roomRenderer) Render(ctx context.Context, room string, attractions []domain.Attraction) (*render.Batch, error) {
	view, err := r.view(room)
	if err != nil {
		return nil, err
	}
	return view.pipeline.Render(ctx, attractions)
}

// Board returns the room's card board, or nil when nothing was rendered there.
func (r *roomRenderer) Board(room string) *render.Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	if view, ok := r.rooms[room]; ok {
		return view.board
	}
	return nil
}

func (r *roomRenderer) view(room string) (*roomView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, render.ErrPipelineClosed
	}
	if view, ok := r.rooms[room]; ok {
		return view, nil
	}

	board := render.NewBoard()
	view := &roomView{
		board:    board,
		pipeline: render.NewPipeline(r.resolver, r.loader, board, r.logger.With(zap.String("room", room)), r.opts...),
	}
	r.rooms[room] = view
	return view, nil
}

// Close stops every room pipeline. Pending photos settle as failed.
func (r *roomRenderer) Close() {
	r.mu.Lock()
	r.closed = true
	views := make([]*roomView, 0, len(r.rooms))
	for _, view := range r.rooms {
		views = append(views, view)
	}
	r.mu.Unlock()

	for _, view := range views {
		view.pipeline.Close()
	}
}
