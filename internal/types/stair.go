package types

import "encoding/json"

// StairReport covers one marched stair made of flights and landings.
type StairReport struct {
	Common
	LadderName  string      `json:"ladder_name,omitempty"`
	MountPoints Decimal     `json:"mount_points" validate:"required,decrange=1 1000,wholenum" label:"Количество точек крепления"`
	Marches     []MarchSpec `json:"marches" validate:"required,min=1,dive" label:"Марши"`
	Inspection
}

func (r *StairReport) Protocol() ProtocolType { return ProtocolStair }
func (r *StairReport) Base() *Common          { return &r.Common }
func (r *StairReport) sealed()                {}

// UnmarshalJSON defaults paint_compliant to true.
func (r *StairReport) UnmarshalJSON(data []byte) error {
	type alias StairReport
	a := alias{Inspection: Inspection{PaintCompliant: true}}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = StairReport(a)
	return nil
}

// MarchSpec is one flight of a marched stair with its optional landing.
type MarchSpec struct {
	Number                 int     `json:"number,omitempty"`
	HasMarch               bool    `json:"has_march"`
	HasPlatform            bool    `json:"has_platform"`
	MarchWidth             Decimal `json:"march_width,omitempty" validate:"required_if=HasMarch true,decrange=0.5 10" label:"Ширина марша"`
	MarchLength            Decimal `json:"march_length,omitempty" validate:"required_if=HasMarch true,decrange=0.5 50" label:"Длина марша"`
	StepWidth              Decimal `json:"step_width,omitempty" validate:"required_if=HasMarch true,decrange=0.15 1" label:"Ширина ступени"`
	StepDistance           Decimal `json:"step_distance,omitempty" validate:"required_if=HasMarch true,decrange=0.15 0.5" label:"Расстояние между ступенями"`
	StepsCount             Decimal `json:"steps_count,omitempty" validate:"required_if=HasMarch true,decrange=1 100,wholenum" label:"Количество ступеней"`
	MarchFenceHeight       Decimal `json:"march_fence_height,omitempty" validate:"required_if=HasMarch true,decrange=0.5 2.5" label:"Высота ограждения марша"`
	PlatformFenceHeight    Decimal `json:"platform_fence_height,omitempty" validate:"required_if=HasPlatform true,decrange=0.5 2.5" label:"Высота ограждения площадки"`
	PlatformLength         Decimal `json:"platform_length,omitempty" validate:"required_if=HasPlatform true,decrange=0.5 10" label:"Длина площадки"`
	PlatformWidth          Decimal `json:"platform_width,omitempty" validate:"required_if=HasPlatform true,decrange=0.5 10" label:"Ширина площадки"`
	PlatformGroundDistance Decimal `json:"platform_ground_distance,omitempty" validate:"decrange=0 100" label:"Высота площадки от земли"`
}

// UnmarshalJSON defaults has_march and has_platform to true.
func (m *MarchSpec) UnmarshalJSON(data []byte) error {
	type alias MarchSpec
	a := alias{HasMarch: true, HasPlatform: true}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*m = MarchSpec(a)
	return nil
}

// NumberAt returns the march number, falling back to its 1-based position.
func (m MarchSpec) NumberAt(i int) int {
	if m.Number > 0 {
		return m.Number
	}
	return i + 1
}
