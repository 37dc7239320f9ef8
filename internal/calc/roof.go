package calc

import (
	"github.com/jonathan/fire-protocols/internal/types"
)

// RoofTestPoints is the test point count of the fence run.
func RoofTestPoints(length float64) int {
	return int(length/10) + 3
}

// TopRailLoad grows with fence height, kN.
func TopRailLoad(height float64) float64 {
	return FenceLoad + height*0.1
}

// MiddleRailLoad grows with fence height, kN.
func MiddleRailLoad(height float64) float64 {
	return 0.3 + height*0.05
}

// AnchorLoad spreads the fence run over its mounting points, kN.
func AnchorLoad(length float64, mountPoints int) float64 {
	if mountPoints <= 0 {
		return 0
	}
	return length * 0.4 / float64(mountPoints)
}

// RoofRows returns the fence run row followed by the rail and anchor rows.
func RoofRows(r *types.RoofReport) []types.LoadTableRow {
	length := r.Length.Float()
	height := r.Height.Float()
	points := RoofTestPoints(length)

	rows := []types.LoadTableRow{
		loadRow(r.Title(), points, FenceLoad),
		loadRow("Верхний поручень ограждения", points, TopRailLoad(height)),
		loadRow("Средний горизонтальный элемент ограждения", points, MiddleRailLoad(height)),
	}

	mp := r.MountPoints.Int()
	anchors := types.LoadTableRow{ElementName: "Узлы крепления стоек ограждения", TestPointCount: mp}
	if mp > 0 {
		anchors = loadRow(anchors.ElementName, mp, AnchorLoad(length, mp))
	}
	return append(rows, anchors)
}
