package types

import (
	"encoding/json"
	"fmt"
)

// VerticalReport covers one or more vertical fire-escape ladders on one object.
type VerticalReport struct {
	Common
	Ladders           []LadderSpec             `json:"ladders" validate:"required,min=1,dive" label:"Лестницы"`
	MountPoints       Decimal                  `json:"mount_points,omitempty" validate:"decrange=1 1000,wholenum" label:"Количество точек крепления"`
	LaddersCompliance map[int]ComplianceRecord `json:"ladders_compliance,omitempty"`
}

func (r *VerticalReport) Protocol() ProtocolType { return ProtocolVertical }
func (r *VerticalReport) Base() *Common          { return &r.Common }
func (r *VerticalReport) sealed()                {}

// Compliance returns the checklist for the ladder at index i. Ladders without
// a record are compliant.
func (r *VerticalReport) Compliance(i int) ComplianceRecord {
	if rec, ok := r.LaddersCompliance[r.Ladders[i].NumberAt(i)]; ok {
		return rec
	}
	return ComplianceRecord{Compliant: true}
}

// LadderSpec is the geometry and inspection result of one vertical ladder.
type LadderSpec struct {
	Number         int     `json:"number,omitempty"`
	Name           string  `json:"name,omitempty"`
	Height         Decimal `json:"height" validate:"required,decrange=0.1 1000" label:"Высота"`
	Width          Decimal `json:"width" validate:"required,decrange=0.1 1000" label:"Ширина"`
	StepsCount     Decimal `json:"steps_count" validate:"required,decrange=1 1000,wholenum" label:"Количество ступеней"`
	MountPoints    Decimal `json:"mount_points" validate:"required,decrange=1 1000,wholenum" label:"Количество точек крепления"`
	PlatformLength Decimal `json:"platform_length,omitempty" validate:"decrange=0.1 1000" label:"Длина площадки"`
	PlatformWidth  Decimal `json:"platform_width,omitempty" validate:"decrange=0.1 1000" label:"Ширина площадки"`
	FenceHeight    Decimal `json:"fence_height,omitempty" validate:"decrange=0.1 100" label:"Высота ограждения"`
	WallDistance   Decimal `json:"wall_distance,omitempty" validate:"decrange=0 1000" label:"Расстояние от стены"`
	GroundDistance Decimal `json:"ground_distance,omitempty" validate:"decrange=0 1000" label:"Расстояние от земли"`
	StepDistance   Decimal `json:"step_distance" validate:"required,decrange=0.01 10" label:"Расстояние между ступенями"`
	Inspection
}

// UnmarshalJSON defaults paint_compliant to true.
func (l *LadderSpec) UnmarshalJSON(data []byte) error {
	type alias LadderSpec
	a := alias{Inspection: Inspection{PaintCompliant: true}}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*l = LadderSpec(a)
	return nil
}

// NumberAt returns the ladder number, falling back to its 1-based position.
func (l LadderSpec) NumberAt(i int) int {
	if l.Number > 0 {
		return l.Number
	}
	return i + 1
}

// Title returns the ladder name, or "Лестница №N" when it has none.
func (l LadderSpec) Title(i int) string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("Лестница №%d", l.NumberAt(i))
}
