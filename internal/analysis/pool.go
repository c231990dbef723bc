package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/review"
)

// EnginePool manages a fixed set of reusable engines. Its Evaluate method
// satisfies review.Evaluator, so a pool plugs straight into a Reviewer.
type EnginePool struct {
	path    string
	size    int
	engines chan *Engine
	mu      sync.Mutex
	closed  bool
	log     *logger.Logger
}

// NewEnginePool starts size engines ahead of time so evaluation never waits
// on process startup.
func NewEnginePool(path string, size, depth int, moveTime time.Duration) (*EnginePool, error) {
	if size <= 0 {
		size = 2
	}
	log := logger.Default().WithPrefix("engine-pool")

	pool := &EnginePool{
		path:    path,
		size:    size,
		engines: make(chan *Engine, size),
		log:     log,
	}

	log.Info("initializing engine pool with %d engines", size)
	for i := 0; i < size; i++ {
		engine, err := NewEngine(path, depth, moveTime)
		if err != nil {
			pool.Close() // Clean up any already-created engines
			return nil, err
		}
		pool.engines <- engine
	}
	log.Info("engine pool ready")
	return pool, nil
}

// Acquire gets an engine from the pool, blocking if none are available.
func (p *EnginePool) Acquire(ctx context.Context) (*Engine, error) {
	select {
	case engine := <-p.engines:
		return engine, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns an engine to the pool.
func (p *EnginePool) Release(engine *Engine) {
	if engine == nil {
		return
	}
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		// Pool is closed, close the engine
		_ = engine.Close()
		return
	}
	select {
	case p.engines <- engine:
		// Returned to pool
	default:
		// Pool full, close the engine
		_ = engine.Close()
	}
}

// Evaluate acquires an engine, evaluates the position, and releases the
// engine back to the pool.
func (p *EnginePool) Evaluate(ctx context.Context, fen string) (review.EvaluationSample, error) {
	engine, err := p.Acquire(ctx)
	if err != nil {
		return review.EvaluationSample{}, err
	}
	defer p.Release(engine)

	return engine.EvaluateFEN(ctx, fen)
}

// Close shuts down all engines in the pool.
func (p *EnginePool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	p.log.Info("closing engine pool")
	close(p.engines)
	for engine := range p.engines {
		_ = engine.Close()
	}
}

// Available returns how many engines are currently idle.
func (p *EnginePool) Available() int {
	return len(p.engines)
}
