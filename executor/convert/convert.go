// Package convert flattens board snapshots into dense feature planes.
package convert

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/brensch/snektorus/game"
)

// Channel layout, each plane size x size, indexed (c, y, x):
//
//	0 food
//	1 bombs
//	2 body TTL: head 1.0 down to 1/len at the tail
//	3 head
//	4 next cell in the current heading
const (
	ChanFood = iota
	ChanBombs
	ChanBody
	ChanHead
	ChanHeading
	Channels

	BytesPerFloat = 4
)

var floatPool = sync.Pool{
	New: func() interface{} {
		b := make([]float32, 0)
		return &b
	},
}

// Len is the number of floats BoardToFloat32 produces for a board of side n.
func Len(n int) int { return Channels * n * n }

// BoardToFloat32 encodes b as [Channels, size, size] floats.
func BoardToFloat32(b *game.Board) []float32 {
	out := make([]float32, Len(b.Size()))
	encode(b, out)
	return out
}

// BoardToBytes is BoardToFloat32 as little-endian float32 bytes.
func BoardToBytes(b *game.Board) []byte {
	ptr := floatPool.Get().(*[]float32)
	defer floatPool.Put(ptr)

	n := Len(b.Size())
	if cap(*ptr) < n {
		*ptr = make([]float32, n)
	}
	data := (*ptr)[:n]
	clear(data)
	encode(b, data)

	out := make([]byte, n*BytesPerFloat)
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[i*BytesPerFloat:], math.Float32bits(v))
	}
	return out
}

// FromBytes decodes the output of BoardToBytes.
func FromBytes(raw []byte) []float32 {
	out := make([]float32, len(raw)/BytesPerFloat)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*BytesPerFloat:]))
	}
	return out
}

func encode(b *game.Board, data []float32) {
	n := b.Size()
	set := func(c int, p game.Point, val float32) {
		data[c*n*n+p.Y*n+p.X] = val
	}

	for _, p := range b.Food() {
		set(ChanFood, p, 1)
	}
	for _, p := range b.Bombs() {
		set(ChanBombs, p, 1)
	}

	body := b.Body()
	denom := float32(len(body))
	for i, p := range body {
		set(ChanBody, p, float32(len(body)-i)/denom)
	}

	head := b.Head()
	set(ChanHead, head, 1)
	set(ChanHeading, head.Step(b.CurrentDirection()).Trim(n), 1)
}
