package calc

import (
	"math"

	"github.com/jonathan/fire-protocols/internal/types"
)

// LadderType is the vertical ladder classification by height.
type LadderType string

const (
	LadderTypeP11 LadderType = "П1-1"
	LadderTypeP12 LadderType = "П1-2"
)

const (
	// lowLadderMax is the tallest ladder that still counts as П1-1, m.
	lowLadderMax    = 6.0
	stepTestPoints  = 3
	mountLoadFactor = 0.72
)

// ClassifyLadder returns the ladder type for a height in metres.
func ClassifyLadder(height float64) LadderType {
	if height <= lowLadderMax {
		return LadderTypeP11
	}
	return LadderTypeP12
}

// FenceTestPoints returns the number of fence test points for a ladder height.
func FenceTestPoints(height float64) int {
	if height <= lowLadderMax {
		return 2
	}
	return int(math.Floor(2 + height/1.2))
}

// MaxHeight returns the tallest ladder height of the report.
func MaxHeight(r *types.VerticalReport) float64 {
	maxH := 0.0
	for _, l := range r.Ladders {
		maxH = math.Max(maxH, l.Height.Float())
	}
	return maxH
}

// MountCount sums the per-ladder mount points, falling back to the shared
// report field when no ladder has a usable value.
func MountCount(r *types.VerticalReport) int {
	total, found := 0, false
	for _, l := range r.Ladders {
		if v, ok := l.MountPoints.Parse(); ok {
			total += int(v)
			found = true
		}
	}
	if !found {
		return r.MountPoints.Int()
	}
	return total
}

// VerticalRows sizes a single table for all ladders of the report by the
// tallest one.
func VerticalRows(r *types.VerticalReport) []types.LoadTableRow {
	maxH := MaxHeight(r)

	fenceName := "Ограждения площадки"
	if ClassifyLadder(maxH) == LadderTypeP12 {
		fenceName = "Ограждения лестницы и площадки"
	}

	rows := []types.LoadTableRow{
		loadRow("Ступени", stepTestPoints, StepLoad),
		loadRow(fenceName, FenceTestPoints(maxH), FenceLoad),
	}

	mounts := MountCount(r)
	beam := types.LoadTableRow{ElementName: "Балки крепления к стене", TestPointCount: mounts}
	if mounts > 0 {
		beam = loadRow(beam.ElementName, mounts, maxH*mountLoadFactor/float64(mounts))
	}
	return append(rows, beam)
}
