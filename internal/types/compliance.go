package types

import (
	"encoding/json"
	"slices"
)

// Violation names one item of the vertical ladder compliance checklist.
type Violation string

const (
	ViolationLadderWidth    Violation = "ladder_width"
	ViolationStepDistance   Violation = "step_distance"
	ViolationWallDistance   Violation = "wall_distance"
	ViolationGroundDistance Violation = "ground_distance"
	ViolationPlatformLength Violation = "platform_length"
	ViolationPlatformWidth  Violation = "platform_width"
	ViolationFenceHeight    Violation = "fence_height"
	ViolationLadderFence    Violation = "ladder_fence"
	ViolationMountDistance  Violation = "mount_distance"
	ViolationPaintCoating   Violation = "paint_coating"
)

// Violations lists the checklist in the order it is printed.
var Violations = []Violation{
	ViolationLadderWidth,
	ViolationStepDistance,
	ViolationWallDistance,
	ViolationGroundDistance,
	ViolationPlatformLength,
	ViolationPlatformWidth,
	ViolationFenceHeight,
	ViolationLadderFence,
	ViolationMountDistance,
	ViolationPaintCoating,
}

var violationTitles = map[Violation]string{
	ViolationLadderWidth:    "ширина лестницы",
	ViolationStepDistance:   "расстояние между ступенями",
	ViolationWallDistance:   "расстояние от стены",
	ViolationGroundDistance: "расстояние от земли",
	ViolationPlatformLength: "длина площадки",
	ViolationPlatformWidth:  "ширина площадки",
	ViolationFenceHeight:    "высота ограждения площадки",
	ViolationLadderFence:    "ограждение лестницы",
	ViolationMountDistance:  "расстояние между упорами",
	ViolationPaintCoating:   "защитное покрытие",
}

// Title returns the Russian wording used in conclusions.
func (v Violation) Title() string {
	if t, ok := violationTitles[v]; ok {
		return t
	}
	return string(v)
}

// ComplianceRecord is the checklist result for one vertical ladder.
type ComplianceRecord struct {
	Compliant  bool               `json:"compliant"`
	Violations map[Violation]bool `json:"violations,omitempty"`
}

// UnmarshalJSON defaults compliant to true.
func (c *ComplianceRecord) UnmarshalJSON(data []byte) error {
	type alias ComplianceRecord
	a := alias{Compliant: true}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = ComplianceRecord(a)
	return nil
}

// Ordered returns the set violations in checklist order. Unknown names follow
// in the order they sort.
func (c ComplianceRecord) Ordered() []Violation {
	out := make([]Violation, 0, len(c.Violations))
	for _, v := range Violations {
		if c.Violations[v] {
			out = append(out, v)
		}
	}
	var unknown []Violation
	for v, set := range c.Violations {
		if _, known := violationTitles[v]; set && !known {
			unknown = append(unknown, v)
		}
	}
	slices.Sort(unknown)
	return append(out, unknown...)
}
