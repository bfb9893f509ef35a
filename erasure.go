// Package erasure implements systematic Reed-Solomon erasure coding over
// GF(2^8) or GF(2^16). An Engine computes parity shards for a fixed number
// of equal-length data shards and can rebuild the original set after up to
// ParityShards of them are lost, in any combination.
package erasure

import (
	"bytes"
	"fmt"

	"github.com/shardkit/erasure/field"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("erasure")

// Engine is an immutable Reed-Solomon codec for a fixed
// (data, parity, field) configuration. It holds no mutable state after
// New, so a single Engine may be shared by concurrent callers operating on
// disjoint shard sets.
type Engine struct {
	dataShards   int
	parityShards int
	totalShards  int

	f   field.Field
	enc *field.Matrix // (data+parity) x data encoding matrix
}

type config struct {
	f field.Field
}

// Option configures an Engine during construction.
type Option func(*config) error

// WithFieldWidth selects the field backend by element width; 8 and 16 bits
// are supported. The default is 8.
func WithFieldWidth(bits int) Option {
	return func(c *config) error {
		switch bits {
		case 8:
			c.f = field.NewGF8()
		case 16:
			c.f = field.NewGF16()
		default:
			return fmt.Errorf("unsupported field width %d, want 8 or 16", bits)
		}
		return nil
	}
}

// WithField supplies a field implementation directly.
func WithField(f field.Field) Option {
	return func(c *config) error {
		if f == nil {
			return fmt.Errorf("field is required")
		}
		c.f = f
		return nil
	}
}

// New builds an Engine for dataShards data shards and parityShards parity
// shards. It returns ErrInvalidShardCount when dataShards < 1 or
// parityShards < 0, and ErrTooManyShards when the total exceeds the
// field's capacity (255 shards for GF(2^8), 65536 for GF(2^16)).
func New(dataShards, parityShards int, opts ...Option) (*Engine, error) {
	if dataShards < 1 || parityShards < 0 {
		return nil, ErrInvalidShardCount
	}

	cfg := config{f: field.NewGF8()}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	total := dataShards + parityShards
	if total > maxShards(cfg.f) {
		return nil, ErrTooManyShards
	}

	enc, err := buildEncodingMatrix(cfg.f, dataShards, parityShards)
	if err != nil {
		return nil, err
	}

	log.Debugf("new engine: %d data + %d parity shards over GF(2^%d)",
		dataShards, parityShards, cfg.f.Bits())

	return &Engine{
		dataShards:   dataShards,
		parityShards: parityShards,
		totalShards:  total,
		f:            cfg.f,
		enc:          enc,
	}, nil
}

// maxShards returns the largest supported shard total for the field. The
// 8-bit field keeps one element in reserve, capping codes at 255 shards;
// the 16-bit field admits its full element range.
func maxShards(f field.Field) int {
	if f.Bits() >= 16 {
		return f.Order()
	}
	return f.Order() - 1
}

// buildEncodingMatrix constructs the systematic generator matrix
// G = V * V_top^-1, where V is the (data+parity) x data Vandermonde matrix
// on distinct evaluation points. The top data rows of G form the identity,
// and any data-sized selection of its rows stays invertible because it
// equals a Vandermonde submatrix on distinct points times V_top^-1.
func buildEncodingMatrix(f field.Field, dataShards, parityShards int) (*field.Matrix, error) {
	total := dataShards + parityShards
	v := field.Vandermonde(f, total, dataShards)

	topRows := make([]int, dataShards)
	for i := range topRows {
		topRows[i] = i
	}
	topInv, err := v.SubMatrix(topRows).Invert(f)
	if err != nil {
		return nil, fmt.Errorf("encoding matrix construction: %w", err)
	}
	return v.Mul(f, topInv)
}

// DataShards returns the number of data shards.
func (e *Engine) DataShards() int { return e.dataShards }

// ParityShards returns the number of parity shards.
func (e *Engine) ParityShards() int { return e.parityShards }

// TotalShards returns DataShards + ParityShards.
func (e *Engine) TotalShards() int { return e.totalShards }

// Field returns the field the engine computes in.
func (e *Engine) Field() field.Field { return e.f }

// Encode computes the parity shards for the data shards in place. The
// slice must hold exactly TotalShards shards, all allocated and of equal
// non-zero length; the first DataShards are read, the rest overwritten.
func (e *Engine) Encode(shards [][]byte) error {
	if len(shards) != e.totalShards {
		return ErrInvalidShardCount
	}
	if _, err := e.checkShardSizes(shards, false); err != nil {
		return err
	}
	e.encodeParity(shards[:e.dataShards], shards[e.dataShards:])
	return nil
}

// Verify recomputes parity from the data shards and reports whether it
// matches the supplied parity shards byte for byte. The input is not
// mutated.
func (e *Engine) Verify(shards [][]byte) (bool, error) {
	if len(shards) != e.totalShards {
		return false, ErrInvalidShardCount
	}
	size, err := e.checkShardSizes(shards, false)
	if err != nil {
		return false, err
	}

	scratch := make([][]byte, e.parityShards)
	for i := range scratch {
		scratch[i] = make([]byte, size)
	}
	e.encodeParity(shards[:e.dataShards], scratch)

	for i, parity := range shards[e.dataShards:] {
		if !bytes.Equal(parity, scratch[i]) {
			return false, nil
		}
	}
	return true, nil
}

// Reconstruct rebuilds every absent shard in place. A shard is absent when
// its slice is nil or empty; present shards are never modified. With more
// than ParityShards absent it returns ErrTooFewShards and writes nothing.
// Calling Reconstruct on a complete set is a no-op.
func (e *Engine) Reconstruct(shards [][]byte) error {
	if len(shards) != e.totalShards {
		return ErrInvalidShardCount
	}

	present := 0
	for _, s := range shards {
		if len(s) > 0 {
			present++
		}
	}
	if present < e.dataShards {
		log.Debugf("reconstruct: %d of %d shards present, need %d",
			present, e.totalShards, e.dataShards)
		return ErrTooFewShards
	}

	size, err := e.checkShardSizes(shards, true)
	if err != nil {
		return err
	}
	if present == e.totalShards {
		return nil
	}

	// Select the first dataShards present shards. Any selection works:
	// the corresponding rows of the encoding matrix always form an
	// invertible system.
	rows := make([]int, 0, e.dataShards)
	sub := make([][]byte, 0, e.dataShards)
	for i, s := range shards {
		if len(s) > 0 {
			rows = append(rows, i)
			sub = append(sub, s)
			if len(rows) == e.dataShards {
				break
			}
		}
	}

	dec, err := e.enc.SubMatrix(rows).Invert(e.f)
	if err != nil {
		return fmt.Errorf("reconstruct: %w", err)
	}

	// Recover missing data shards first: each is a row of dec applied to
	// the selected shards.
	for i := 0; i < e.dataShards; i++ {
		if len(shards[i]) > 0 {
			continue
		}
		out := make([]byte, size)
		for j, s := range sub {
			e.f.MulAdd(out, s, dec.At(i, j))
		}
		shards[i] = out
	}

	// With the data shards complete, re-derive missing parity from the
	// encoding matrix's parity rows.
	for i := e.dataShards; i < e.totalShards; i++ {
		if len(shards[i]) > 0 {
			continue
		}
		out := make([]byte, size)
		for j := 0; j < e.dataShards; j++ {
			e.f.MulAdd(out, shards[j], e.enc.At(i, j))
		}
		shards[i] = out
	}
	return nil
}

// encodeParity fills each parity buffer with the field-linear combination
// of the data shards given by the matching parity row of the encoding
// matrix.
func (e *Engine) encodeParity(data, parity [][]byte) {
	for i, out := range parity {
		row := e.enc.Row(e.dataShards + i)
		for b := range out {
			out[b] = 0
		}
		for j, d := range data {
			e.f.MulAdd(out, d, row[j])
		}
	}
}

// checkShardSizes validates that shards share one non-zero length that is
// a whole number of field elements, returning that length. When
// allowMissing is set, nil and empty shards are skipped; otherwise they
// fail the check.
func (e *Engine) checkShardSizes(shards [][]byte, allowMissing bool) (int, error) {
	size := 0
	for _, s := range shards {
		if len(s) == 0 {
			if allowMissing {
				continue
			}
			return 0, ErrShardSize
		}
		if size == 0 {
			size = len(s)
		} else if len(s) != size {
			return 0, ErrShardSize
		}
	}
	if size == 0 || size%e.f.ElemSize() != 0 {
		return 0, ErrShardSize
	}
	return size, nil
}
