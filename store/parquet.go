// Package store exports self-play traces as Parquet for offline analysis.
// Files are write-only from the engine's point of view: nothing here loads a
// game back.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/brensch/snektorus/game"
)

// Schema is written into every file's key/value metadata.
const Schema = "snake_turn_v1"

// TurnRow is one (game, turn) snapshot.
//
// Move is the direction chosen on this turn (0=Up, 1=Down, 2=Left, 3=Right),
// or -1 on the final row. PolicyProbs is the search visit distribution that
// produced Move. Outcome is filled once the game ends: "won", "lost" or
// "truncated".
type TurnRow struct {
	GameID string `parquet:"game_id,dict"`
	Turn   int32  `parquet:"turn"`
	Size   int32  `parquet:"size"`

	BodyX []int32 `parquet:"body_x"`
	BodyY []int32 `parquet:"body_y"`
	FoodX []int32 `parquet:"food_x"`
	FoodY []int32 `parquet:"food_y"`

	Direction   int32     `parquet:"direction"`
	Move        int32     `parquet:"move"`
	PolicyProbs []float32 `parquet:"policy_probs"`
	GameOver    bool      `parquet:"game_over"`

	// Planes is an optional dense encoding of the board (little-endian
	// float32, channel-major), filled by the producer.
	Planes []byte `parquet:"planes,optional"`

	Outcome string `parquet:"outcome,dict"`
	Source  string `parquet:"source,dict"`
}

// NewTurnRow flattens a snapshot. Move defaults to -1.
func NewTurnRow(gameID string, turn int, b *game.Board) TurnRow {
	row := TurnRow{
		GameID:    gameID,
		Turn:      int32(turn),
		Size:      int32(b.Size()),
		Direction: int32(b.CurrentDirection()),
		Move:      -1,
		GameOver:  b.IsGameOver(),
		Source:    "selfplay",
	}
	row.BodyX, row.BodyY = splitPoints(b.Body())
	row.FoodX, row.FoodY = splitPoints(b.Food())
	return row
}

func splitPoints(pts []game.Point) (xs, ys []int32) {
	if len(pts) == 0 {
		return nil, nil
	}
	xs = make([]int32, 0, len(pts))
	ys = make([]int32, 0, len(pts))
	for _, p := range pts {
		xs = append(xs, int32(p.X))
		ys = append(ys, int32(p.Y))
	}
	return xs, ys
}

// WriteBatchParquetAtomic writes a Parquet file into outDir/tmp and then
// atomically moves it into outDir, so readers never see a partial file.
func WriteBatchParquetAtomic(outDir string, rows []TurnRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("batch_%d.parquet", time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.SkipPageBounds("planes"),
		parquet.KeyValueMetadata("schema", Schema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}

	return finalPath, nil
}
