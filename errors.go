package erasure

import "errors"

var (
	// ErrInvalidShardCount is returned when the engine is configured with
	// no data shards, or when an operation is handed a shard slice whose
	// length differs from DataShards+ParityShards.
	ErrInvalidShardCount = errors.New("erasure: invalid number of shards")

	// ErrTooManyShards is returned at construction when the shard total
	// exceeds what the field can support.
	ErrTooManyShards = errors.New("erasure: shard count exceeds field capacity")

	// ErrShardSize is returned when shards are empty, of unequal length,
	// or not a whole number of field elements.
	ErrShardSize = errors.New("erasure: shards must be of equal, non-zero length")

	// ErrTooFewShards is returned by Reconstruct when more shards are
	// missing than there are parity shards; recovery is impossible and
	// nothing is written.
	ErrTooFewShards = errors.New("erasure: too few shards present for reconstruction")
)
