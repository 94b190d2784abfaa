// internal/game/grid.go
//
// Play-field geometry for the wordstrike engine.
// The field is a fixed Cols×Rows arrangement of square cells centered at the
// origin, row 0 at the top. All horizontal positions are continuous scalars
// in the same linear units as CellSize.

package game

import "fmt"

// Config holds the per-round gameplay parameters.
// Zero values are filled in by Normalize; Validate rejects nonsense.
type Config struct {
	Cols             int     `json:"cols"`
	Rows             int     `json:"rows"`
	CellSize         float64 `json:"cellSize"`
	MoveSpeed        float64 `json:"moveSpeed"`        // units per second
	AcceleratedSpeed float64 `json:"acceleratedSpeed"` // used while accelerate is held
	InitialBlocks    int     `json:"initialBlocks"`    // target tokens spawned at round start
	FirstSpawnDelay  float64 `json:"firstSpawnDelay"`  // seconds before the first probe
}

// Defaults tuned for a 16:9-ish single screen.
const (
	defaultCols            = 28
	defaultRows            = 6
	defaultCellSize        = 1.0
	defaultMoveSpeed       = 4.0
	defaultAccelSpeed      = 12.0
	defaultInitialBlocks   = 6
	defaultFirstSpawnDelay = 1.5
)

// DefaultConfig returns the standard round configuration.
func DefaultConfig() Config {
	return Config{
		Cols:             defaultCols,
		Rows:             defaultRows,
		CellSize:         defaultCellSize,
		MoveSpeed:        defaultMoveSpeed,
		AcceleratedSpeed: defaultAccelSpeed,
		InitialBlocks:    defaultInitialBlocks,
		FirstSpawnDelay:  defaultFirstSpawnDelay,
	}
}

// Normalize fills zero fields from the defaults.
func (c Config) Normalize() Config {
	d := DefaultConfig()
	if c.Cols == 0 {
		c.Cols = d.Cols
	}
	if c.Rows == 0 {
		c.Rows = d.Rows
	}
	if c.CellSize == 0 {
		c.CellSize = d.CellSize
	}
	if c.MoveSpeed == 0 {
		c.MoveSpeed = d.MoveSpeed
	}
	if c.AcceleratedSpeed == 0 {
		c.AcceleratedSpeed = d.AcceleratedSpeed
	}
	if c.InitialBlocks == 0 {
		c.InitialBlocks = d.InitialBlocks
	}
	if c.FirstSpawnDelay == 0 {
		c.FirstSpawnDelay = d.FirstSpawnDelay
	}
	return c
}

// Validate reports whether the configuration describes a usable field.
func (c Config) Validate() error {
	if c.Cols <= 0 || c.Rows <= 0 {
		return fmt.Errorf("game: field must have positive dimensions, got %dx%d", c.Cols, c.Rows)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("game: cell size must be positive, got %g", c.CellSize)
	}
	if c.MoveSpeed <= 0 || c.AcceleratedSpeed <= 0 {
		return fmt.Errorf("game: speeds must be positive, got %g/%g", c.MoveSpeed, c.AcceleratedSpeed)
	}
	if c.InitialBlocks < 0 {
		return fmt.Errorf("game: initial block count must not be negative, got %d", c.InitialBlocks)
	}
	if c.FirstSpawnDelay < 0 {
		return fmt.Errorf("game: first spawn delay must not be negative, got %g", c.FirstSpawnDelay)
	}
	return nil
}

// LeftBoundary is the x coordinate of the field's left edge.
func (c Config) LeftBoundary() float64 {
	return -float64(c.Cols) * c.CellSize / 2
}

// RightBoundary is the x coordinate of the field's right edge.
func (c Config) RightBoundary() float64 {
	return float64(c.Cols) * c.CellSize / 2
}

// ClampRow folds an arbitrary row index into [0, Rows-1].
func (c Config) ClampRow(row int) int {
	if row < 0 {
		return 0
	}
	if row >= c.Rows {
		return c.Rows - 1
	}
	return row
}
