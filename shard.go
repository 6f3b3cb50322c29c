package text2img

import "fmt"

// Shard is the half-open range [Start, End) of document indices owned by
// one worker rank.
type Shard struct {
	Rank  int
	Start int
	End   int
}

// Len returns the number of documents in the shard.
func (s Shard) Len() int {
	return s.End - s.Start
}

// String returns "rank R [start, end)".
func (s Shard) String() string {
	return fmt.Sprintf("rank %d [%d, %d)", s.Rank, s.Start, s.End)
}

// ComputeShard splits [0, total) into worldSize contiguous chunks of
// ceil(total/worldSize) indices and returns the one owned by rank.
// The last shards may be shorter or empty; together they cover [0, total)
// with no overlap and no gap.
func ComputeShard(total, worldSize, rank int) (Shard, error) {
	if total < 0 {
		return Shard{}, fmt.Errorf("%w: total must be >= 0, got %d", ErrInvalidShard, total)
	}
	if worldSize < 1 {
		return Shard{}, fmt.Errorf("%w: world size must be >= 1, got %d", ErrInvalidShard, worldSize)
	}
	if rank < 0 || rank >= worldSize {
		return Shard{}, fmt.Errorf("%w: rank must be in [0, %d), got %d", ErrInvalidShard, worldSize, rank)
	}

	chunk := (total + worldSize - 1) / worldSize
	return Shard{
		Rank:  rank,
		Start: min(rank*chunk, total),
		End:   min((rank+1)*chunk, total),
	}, nil
}

// ComputeShards returns the shards of every rank, in rank order.
func ComputeShards(total, worldSize int) ([]Shard, error) {
	shards := make([]Shard, 0, max(worldSize, 0))
	for rank := 0; rank < worldSize; rank++ {
		s, err := ComputeShard(total, worldSize, rank)
		if err != nil {
			return nil, err
		}
		shards = append(shards, s)
	}
	if len(shards) == 0 {
		return nil, fmt.Errorf("%w: world size must be >= 1, got %d", ErrInvalidShard, worldSize)
	}
	return shards, nil
}
