/*
Package gridgen generates two-dimensional path grids.

It carves one or more interwoven routes between a start and an end cell by
running biased random walks over a lattice of corridor waypoints, then
optionally grows decorative dead-end branches off the carved network. The
result is a Grid of cell states (Wall, Path, Start, End) ready for any
presentation layer to render.

Walk waypoints are restricted to lattice points, coordinates of the form
1 + k*step along each axis, where step = spacing + 1. That keeps parallel
corridors separated by the configured number of wall cells and keeps the
outer border solid.
*/
package gridgen

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Policy knobs for the weaving algorithm. Tune these without touching the
// algorithm body.
const (
	// MinPaths and MaxPaths bound the number of solution walks; the fill
	// percentage interpolates linearly between them.
	MinPaths = 1
	MaxPaths = 15

	// BranchGrowthRatio sizes the dead-end branch budget relative to the
	// number of carved walk segments.
	BranchGrowthRatio = 0.2

	// UnseededSeed asks the generator to seed itself from the clock,
	// making the output different on every run.
	UnseededSeed int64 = -1
)

// Params configures a single generation run.
type Params struct {
	Start          Point // Requested start cell, both axes >= 1
	End            Point // Requested end cell, both axes >= 1
	Spacing        int   // Wall cells between parallel corridors, >= 0
	AllowBranching bool  // Grow dead-end branches off the carved network
	FillPercent    int   // Path density, 1-100
	Seed           int64 // Random seed, UnseededSeed for a clock-based one
}

// DefaultParams returns the parameter set generation was designed around.
func DefaultParams() *Params {
	return &Params{
		Start:          Point{X: 5, Z: 5},
		End:            Point{X: 35, Z: 35},
		Spacing:        1,
		AllowBranching: true,
		FillPercent:    20,
		Seed:           UnseededSeed,
	}
}

// PathGenerator carves weaving paths into a fresh grid. A generator is
// built for exactly one Generate call per parameter set; it owns its random
// stream, so concurrent generators never interfere with each other.
type PathGenerator struct {
	width          int
	height         int
	step           int
	start          Point
	end            Point
	allowBranching bool
	fillPercent    int
	rng            *rand.Rand
}

// New validates the parameters and prepares a generator. Grid dimensions
// are derived from the farthest endpoint, and the raw start and end
// coordinates are snapped to the nearest in-bounds lattice point. A nil
// params uses DefaultParams.
func New(p *Params) (*PathGenerator, error) {
	if p == nil {
		p = DefaultParams()
	}

	if p.FillPercent < 1 || p.FillPercent > 100 {
		return nil, fmt.Errorf("fill percent must be within [1, 100], got %d", p.FillPercent)
	}
	if p.Spacing < 0 {
		return nil, fmt.Errorf("spacing must not be negative, got %d", p.Spacing)
	}
	if min(p.Start.X, p.Start.Z) < 1 {
		return nil, fmt.Errorf("start coordinates must be at least 1, got (%d, %d)", p.Start.X, p.Start.Z)
	}
	if min(p.End.X, p.End.Z) < 1 {
		return nil, fmt.Errorf("end coordinates must be at least 1, got (%d, %d)", p.End.X, p.End.Z)
	}

	step := p.Spacing + 1
	g := &PathGenerator{
		step:           step,
		width:          adjustDim(max(p.Start.X, p.End.X)+step+2, step),
		height:         adjustDim(max(p.Start.Z, p.End.Z)+step+2, step),
		allowBranching: p.AllowBranching,
		fillPercent:    p.FillPercent,
	}
	g.start = g.sanitize(p.Start)
	g.end = g.sanitize(p.End)

	seed := p.Seed
	if seed == UnseededSeed {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	return g, nil
}

// adjustDim rounds a required extent up to the next lattice-aligned size,
// the smallest k*step+1 that can hold it. That leaves a solid border and a
// full step of room from any lattice point to the edge.
func adjustDim(dim, step int) int {
	k := int(math.Ceil(float64(dim-1) / float64(step)))
	return k*step + 1
}

// sanitize snaps a raw coordinate to the nearest lattice point, clamped
// strictly inside the grid border.
func (g *PathGenerator) sanitize(p Point) Point {
	kx := int(math.Round(float64(p.X-1) / float64(g.step)))
	kz := int(math.Round(float64(p.Z-1) / float64(g.step)))
	return Point{
		X: clamp(kx*g.step+1, 1, g.width-2),
		Z: clamp(kz*g.step+1, 1, g.height-2),
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Generate runs the full weaving process and returns the finished grid.
func (g *PathGenerator) Generate() *Grid {
	grid := newGrid(g.width, g.height)

	// Walk segments in carve order, deduplicated. Keeping the order
	// explicit keeps a seeded run fully reproducible.
	var carved []Segment
	seen := make(map[Segment]struct{})

	for n := g.pathCount(); n > 0; n-- {
		for _, seg := range g.solutionWalk() {
			if _, dup := seen[seg]; !dup {
				seen[seg] = struct{}{}
				carved = append(carved, seg)
			}
			g.carve(grid, seg)
		}
	}

	if g.allowBranching {
		g.growDeadEnds(grid, carved)
	}

	grid.Cells[g.start.Z][g.start.X] = Start
	grid.Cells[g.end.Z][g.end.X] = End
	grid.Start = g.start
	grid.End = g.end
	return grid
}

// pathCount interpolates the fill percentage onto [MinPaths, MaxPaths].
func (g *PathGenerator) pathCount() int {
	return int(math.Round(MinPaths + (MaxPaths-MinPaths)*float64(g.fillPercent)/100))
}

// solutionWalk performs one biased random walk from the sanitized start
// toward the sanitized end and returns the lattice steps it took. The walk
// prefers moves that close the remaining distance roughly 4:1 per axis, but
// keeps unweighted moves in the pool so repeated walks take visibly
// different routes. It may give up before reaching the end, either when no
// candidate move stays in bounds or when the step cap runs out; the partial
// walk still contributes carved cells.
func (g *PathGenerator) solutionWalk() []Segment {
	var segments []Segment
	cur := g.start

	// Step cap bounds the walk even under pathological shuffles.
	for i := 0; i < g.width*g.height; i++ {
		if cur == g.end {
			break
		}

		moves := g.biasedMoves(cur)
		g.rng.Shuffle(len(moves), func(a, b int) {
			moves[a], moves[b] = moves[b], moves[a]
		})

		moved := false
		for _, m := range moves {
			next := Point{X: cur.X + m.X, Z: cur.Z + m.Z}
			if !g.inInterior(next) {
				continue
			}
			segments = append(segments, Segment{From: cur, To: next})
			cur = next
			moved = true
			break
		}
		if !moved {
			break
		}
	}

	return segments
}

// biasedMoves builds the weighted candidate pool for one walk step: four
// copies of the step that closes each axis still off target, plus one copy
// of every cardinal step as noise.
func (g *PathGenerator) biasedMoves(cur Point) []Point {
	moves := make([]Point, 0, 12)

	switch {
	case g.end.X > cur.X:
		moves = append(moves, Point{X: g.step}, Point{X: g.step}, Point{X: g.step}, Point{X: g.step})
	case g.end.X < cur.X:
		moves = append(moves, Point{X: -g.step}, Point{X: -g.step}, Point{X: -g.step}, Point{X: -g.step})
	}
	switch {
	case g.end.Z > cur.Z:
		moves = append(moves, Point{Z: g.step}, Point{Z: g.step}, Point{Z: g.step}, Point{Z: g.step})
	case g.end.Z < cur.Z:
		moves = append(moves, Point{Z: -g.step}, Point{Z: -g.step}, Point{Z: -g.step}, Point{Z: -g.step})
	}

	moves = append(moves, Point{X: g.step}, Point{X: -g.step}, Point{Z: g.step}, Point{Z: -g.step})
	return moves
}

// inInterior reports whether a point lies strictly inside the border.
func (g *PathGenerator) inInterior(p Point) bool {
	return p.X > 0 && p.X < g.width-1 && p.Z > 0 && p.Z < g.height-1
}

// carve opens the straight corridor covered by a segment, both endpoints
// inclusive, and returns how many cells actually flipped from Wall to Path.
func (g *PathGenerator) carve(grid *Grid, seg Segment) int {
	dx := (seg.To.X - seg.From.X) / g.step
	dz := (seg.To.Z - seg.From.Z) / g.step

	flipped := 0
	for i := 0; i <= g.step; i++ {
		x := seg.From.X + dx*i
		z := seg.From.Z + dz*i
		if grid.Cells[z][x] == Wall {
			grid.Cells[z][x] = Path
			flipped++
		}
	}
	return flipped
}

// growDeadEnds adds decorative corridors branching off the carved network.
// It expands a shuffled frontier of walk waypoints into neighboring wall
// cells until the growth budget is spent or no frontier cell has an
// uncarved neighbor left. Branches only ever extend into walls, so they
// never join two carved regions; every branch stays a dead end.
func (g *PathGenerator) growDeadEnds(grid *Grid, carved []Segment) {
	budget := int(float64(len(carved)) * BranchGrowthRatio)

	frontier := make([]Point, len(carved))
	for i, seg := range carved {
		frontier[i] = seg.To
	}
	g.rng.Shuffle(len(frontier), func(a, b int) {
		frontier[a], frontier[b] = frontier[b], frontier[a]
	})

	for budget > 0 && len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		var neighbors []Point
		for _, delta := range [4]Point{{Z: g.step}, {Z: -g.step}, {X: g.step}, {X: -g.step}} {
			next := Point{X: cur.X + delta.X, Z: cur.Z + delta.Z}
			if g.inInterior(next) && grid.Cells[next.Z][next.X] == Wall {
				neighbors = append(neighbors, next)
			}
		}
		if len(neighbors) == 0 {
			continue
		}

		next := neighbors[g.rng.Intn(len(neighbors))]
		budget -= g.carve(grid, Segment{From: cur, To: next})
		frontier = append(frontier, next)
	}
}
