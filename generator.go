package arithgen

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Generator — constrained random synthesis
// ============================================================

const (
	DefaultMaxOperators    = 3
	DefaultLeafProbability = 0.4

	minAttempts = 1000
	maxAttempts = 1_000_000
)

// GeneratorConfig bounds the synthesized expressions.
type GeneratorConfig struct {
	// Range bounds naturals to [0, Range) and denominators to [2, Range].
	Range int
	// MaxOperators is the binary-operator budget per expression; 0 means 3.
	MaxOperators int
	// LeafProbability is the chance of stopping early with a leaf; 0 means 0.4.
	LeafProbability float64
	// MaxAttempts is the attempt ceiling; 0 means clamp(100·n, 1000, 1e6).
	MaxAttempts int
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRand injects the random source.
func WithRand(rng *rand.Rand) Option { return func(g *Generator) { g.rng = rng } }

// WithSeed makes the run reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func WithLogger(logger *zap.Logger) Option { return func(g *Generator) { g.logger = logger } }

// Generator owns its leaf pool, random source and canonical-form set. It is
// not safe for concurrent use; give each caller its own instance.
type Generator struct {
	cfg    GeneratorConfig
	rng    *rand.Rand
	logger *zap.Logger
	pool   []Rational
	seen   map[string]struct{}
}

// NewGenerator validates cfg and builds the leaf pool.
func NewGenerator(cfg GeneratorConfig, opts ...Option) (*Generator, error) {
	if cfg.Range < 1 {
		return nil, fmt.Errorf("range must be positive, got %d", cfg.Range)
	}
	if cfg.MaxOperators == 0 {
		cfg.MaxOperators = DefaultMaxOperators
	}
	if cfg.MaxOperators < 0 {
		return nil, fmt.Errorf("max operators must not be negative, got %d", cfg.MaxOperators)
	}
	if cfg.LeafProbability == 0 {
		cfg.LeafProbability = DefaultLeafProbability
	}
	if cfg.LeafProbability < 0 || cfg.LeafProbability >= 1 {
		return nil, fmt.Errorf("leaf probability must be in [0, 1), got %v", cfg.LeafProbability)
	}
	if cfg.MaxAttempts < 0 {
		return nil, fmt.Errorf("max attempts must not be negative, got %d", cfg.MaxAttempts)
	}

	g := &Generator{
		cfg:    cfg,
		logger: zap.NewNop(),
		seen:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g.pool = LeafPool(cfg.Range)
	return g, nil
}

// LeafPool returns the naturals [0, r), the proper fractions with
// denominators in [2, r] and every mixed number with whole part in [1, r).
func LeafPool(r int) []Rational {
	var fracs []Rational
	for den := 2; den <= r; den++ {
		for num := 1; num < den; num++ {
			fracs = append(fracs, R(int64(num), int64(den)))
		}
	}
	pool := make([]Rational, 0, r+len(fracs)*r)
	for i := 0; i < r; i++ {
		pool = append(pool, Int(int64(i)))
	}
	pool = append(pool, fracs...)
	for whole := 1; whole < r; whole++ {
		w := Int(int64(whole))
		for _, f := range fracs {
			pool = append(pool, w.Add(f))
		}
	}
	return pool
}

// Pool returns a copy of the leaf pool.
func (g *Generator) Pool() []Rational { return append([]Rational(nil), g.pool...) }

// Seen reports whether an expression with this canonical form was emitted.
func (g *Generator) Seen(canonical string) bool {
	_, ok := g.seen[canonical]
	return ok
}

// Generate returns up to n valid expressions, unique by canonical form across
// every call on g. When the attempt ceiling is reached first it returns the
// expressions found so far together with an *ExhaustedError.
func (g *Generator) Generate(n int) ([]Expr, error) {
	if n < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", n)
	}
	ceiling := g.ceiling(n)
	runID := uuid.NewString()
	start := time.Now()
	log := g.logger.With(zap.String("run_id", runID))
	log.Debug("Generation started",
		zap.Int("target", n),
		zap.Int("range", g.cfg.Range),
		zap.Int("pool", len(g.pool)),
		zap.Int("ceiling", ceiling))

	out := make([]Expr, 0, n)
	attempts := 0
	for len(out) < n && attempts < ceiling {
		attempts++
		e := g.synthesize(g.cfg.MaxOperators)
		if err := Validate(e); err != nil {
			expressionsTotal.WithLabelValues("invalid").Inc()
			continue
		}
		key := Canonical(e)
		if _, dup := g.seen[key]; dup {
			expressionsTotal.WithLabelValues("duplicate").Inc()
			continue
		}
		g.seen[key] = struct{}{}
		expressionsTotal.WithLabelValues("accepted").Inc()
		out = append(out, e)
	}
	generationAttempts.Observe(float64(attempts))

	if len(out) < n {
		generationExhaustedTotal.Inc()
		err := &ExhaustedError{Want: n, Got: len(out), Attempts: attempts}
		log.Warn("Generation exhausted", zap.Error(err))
		return out, err
	}
	log.Debug("Generation finished",
		zap.Int("problems", len(out)),
		zap.Int("attempts", attempts),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

func (g *Generator) ceiling(n int) int {
	if g.cfg.MaxAttempts > 0 {
		return g.cfg.MaxAttempts
	}
	return min(max(100*n, minAttempts), maxAttempts)
}

func (g *Generator) synthesize(budget int) Expr {
	if budget == 0 || g.rng.Float64() < g.cfg.LeafProbability {
		return Lit(g.pool[g.rng.IntN(len(g.pool))])
	}
	op := Ops[g.rng.IntN(len(Ops))]
	leftBudget := g.rng.IntN(budget)
	left := g.synthesize(leftBudget)
	right := g.synthesize(budget - 1 - leftBudget)
	return Bin(op, left, right)
}

// IsExhausted reports whether err signals a partial generation result.
func IsExhausted(err error) bool { return errors.Is(err, ErrGenerationExhausted) }
