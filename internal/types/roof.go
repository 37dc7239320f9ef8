package types

import (
	"encoding/json"
	"strings"
)

// RoofReport covers the roof fence of one building.
type RoofReport struct {
	Common
	FenceName     string  `json:"fence_name,omitempty"`
	Length        Decimal `json:"length" validate:"required,decrange=1 500" label:"Длина ограждения"`
	Height        Decimal `json:"height" validate:"required,decrange=0.6 2.5" label:"Высота ограждения"`
	MountPoints   Decimal `json:"mount_points" validate:"required,decrange=2 500,wholenum" label:"Количество точек крепления"`
	MountPitch    Decimal `json:"mount_pitch,omitempty" validate:"decrange=0.1 50" label:"Шаг креплений"`
	ParapetHeight Decimal `json:"parapet_height,omitempty" validate:"decrange=0 10" label:"Высота парапета"`
	Inspection
}

func (r *RoofReport) Protocol() ProtocolType { return ProtocolRoof }
func (r *RoofReport) Base() *Common          { return &r.Common }
func (r *RoofReport) sealed()                {}

// UnmarshalJSON defaults paint_compliant to true.
func (r *RoofReport) UnmarshalJSON(data []byte) error {
	type alias RoofReport
	a := alias{Inspection: Inspection{PaintCompliant: true}}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = RoofReport(a)
	return nil
}

// Title returns "Ограждения кровли" followed by the fence name, if any.
func (r *RoofReport) Title() string {
	if name := strings.TrimSpace(r.FenceName); name != "" {
		return "Ограждения кровли " + name
	}
	return "Ограждения кровли"
}
