package lazytable

import "log"

const (
	// defaultShardCount is the shard count a freshly constructed table
	// starts with when none is specified.
	defaultShardCount = 32
	// defaultMaxLoadFactor bounds the expected chain length per bucket
	// before a put triggers a resize attempt.
	defaultMaxLoadFactor = 4
)

// Config holds a Table's construction parameters. Build one with
// DefaultConfig and override fields with Option values passed to New /
// NewString.
type Config[K comparable, V any] struct {
	InitialShards      int  // default 32
	InitialCapacity    int  // default == InitialShards
	GrowShardsOnResize bool // default true
	MaxLoadFactor      int  // default 4

	Logger *log.Logger
}

// DefaultConfig returns the construction defaults every Option is applied
// on top of.
func DefaultConfig[K comparable, V any]() Config[K, V] {
	return Config[K, V]{
		InitialShards:      defaultShardCount,
		InitialCapacity:    defaultShardCount,
		GrowShardsOnResize: true,
		MaxLoadFactor:      defaultMaxLoadFactor,
		Logger:             log.Default(),
	}
}

// Option customizes a Config produced by DefaultConfig.
type Option[K comparable, V any] func(*Config[K, V])

// WithShards sets the initial shard count.
func WithShards[K comparable, V any](n int) Option[K, V] {
	return func(c *Config[K, V]) { c.InitialShards = n }
}

// WithCapacity sets the initial bucket count.
func WithCapacity[K comparable, V any](n int) Option[K, V] {
	return func(c *Config[K, V]) { c.InitialCapacity = n }
}

// WithGrowShardsOnResize toggles whether a resize also doubles the shard
// count (up to maxShards).
func WithGrowShardsOnResize[K comparable, V any](grow bool) Option[K, V] {
	return func(c *Config[K, V]) { c.GrowShardsOnResize = grow }
}

// WithMaxLoadFactor overrides the per-bucket chain length that triggers a
// resize attempt on put.
func WithMaxLoadFactor[K comparable, V any](n int) Option[K, V] {
	return func(c *Config[K, V]) { c.MaxLoadFactor = n }
}

// WithLogger overrides the logger used for resize/retry diagnostics.
// Passing nil silences logging entirely.
func WithLogger[K comparable, V any](l *log.Logger) Option[K, V] {
	return func(c *Config[K, V]) { c.Logger = l }
}
