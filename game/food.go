package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Rand is the randomness PlaceFood draws from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source for reproducible games.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// PlaceFood adds one food item on a cell chosen uniformly among the free
// cells. It returns ErrBoardFull when every cell is occupied.
//
// If rng is nil the choice is derived from a hash of the snapshot, so the same
// board always gets the same food.
func (b *Board) PlaceFood(rng Rand) (*Board, error) {
	cell, err := b.freeCell(rng)
	if err != nil {
		return nil, err
	}
	return b.derive(func(next *Board) {
		food := make([]Point, len(b.food), len(b.food)+1)
		copy(food, b.food)
		next.food = append(food, cell)
	}), nil
}

func (b *Board) freeCell(rng Rand) (Point, error) {
	if len(b.objects) >= b.size*b.size {
		return Point{}, fmt.Errorf("place food on %dx%d: %w", b.size, b.size, ErrBoardFull)
	}

	available := make([]Point, 0, b.size*b.size-len(b.objects))
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			p := Point{X: x, Y: y}
			if _, ok := b.objects[p]; ok {
				continue
			}
			available = append(available, p)
		}
	}

	if rng == nil {
		seed := int64(b.hash())
		if seed == 0 {
			seed = 1
		}
		rng = NewRand(seed)
	}
	return available[rng.Intn(len(available))], nil
}

// hash mixes size, head, length and food count.
func (b *Board) hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	head := b.body.Head()
	put(uint64(b.size))
	put(uint64(uint32(head.X))<<32 | uint64(uint32(head.Y)))
	put(uint64(b.body.Len()))
	put(uint64(len(b.food)))

	return h.Sum64()
}
