package calc

import (
	"fmt"
	"math"

	"github.com/jonathan/fire-protocols/internal/types"
)

// Default loads used when the geometry does not allow a computed value, kN.
const (
	DefaultMarchLoad    = 1.5
	DefaultPlatformLoad = 2.0
)

// StepTestPoints returns the step test point count of one march.
func StepTestPoints(stepsCount int) int {
	steps := max(1, stepsCount)
	return max(2, steps/5+1)
}

// MarchLoad approximates the inclined load on a march:
// (L × 1.2 × 1.5 × √(L² − g²)) / (0.5 × mp).
func MarchLoad(mountPoints int, marchLength, groundDistance float64) float64 {
	if mountPoints <= 0 || marchLength <= 0 {
		return DefaultMarchLoad
	}
	term := marchLength*marchLength - groundDistance*groundDistance
	if term <= 0 {
		return DefaultMarchLoad
	}
	return Round2(marchLength * 1.2 * 1.5 * math.Sqrt(term) / (0.5 * float64(mountPoints)))
}

// PlatformLoad is (l × w × 1.2 × 1.5) / (0.5 × mp).
func PlatformLoad(mountPoints int, length, width float64) float64 {
	if mountPoints <= 0 || length <= 0 || width <= 0 {
		return DefaultPlatformLoad
	}
	return Round2(length * width * 1.2 * 1.5 / (0.5 * float64(mountPoints)))
}

// StairRows returns the summary rows followed by one row per march and one
// per platform.
func StairRows(r *types.StairReport) []types.LoadTableRow {
	mp := r.MountPoints.Int()

	var (
		stepPoints     int
		marchCount     int
		platformCount  int
		marchRows      []types.LoadTableRow
		platformRows   []types.LoadTableRow
		marchNumbers   []int
		platformNumber []int
	)

	for i, m := range r.Marches {
		if m.HasMarch {
			marchCount++
			stepPoints += StepTestPoints(m.StepsCount.Int())
			load := MarchLoad(mp, m.MarchLength.Float(), m.PlatformGroundDistance.Float())
			marchRows = append(marchRows, loadRow("", 2, load))
			marchNumbers = append(marchNumbers, m.NumberAt(i))
		}
		if m.HasPlatform {
			platformCount++
			load := PlatformLoad(mp, m.PlatformLength.Float(), m.PlatformWidth.Float())
			platformRows = append(platformRows, loadRow("", 1, load))
			platformNumber = append(platformNumber, m.NumberAt(i))
		}
	}

	for i := range marchRows {
		marchRows[i].ElementName = numbered("Марш лестницы", marchNumbers[i], marchCount)
	}
	for i := range platformRows {
		platformRows[i].ElementName = numbered("Площадка лестницы", platformNumber[i], platformCount)
	}

	rows := []types.LoadTableRow{
		loadRow("Ступени маршевых лестниц", stepPoints, StepLoad),
		loadRow("Ограждения площадок", 4*platformCount, FenceLoad),
		loadRow("Ограждения маршей", max(6, 6*marchCount), FenceLoad),
	}
	rows = append(rows, marchRows...)
	return append(rows, platformRows...)
}

func numbered(name string, n, total int) string {
	if total > 1 {
		return fmt.Sprintf("%s №%d", name, n)
	}
	return name
}
