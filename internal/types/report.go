package types

import (
	"encoding/json"
	"fmt"
)

// ProtocolType identifies which kind of structure a report covers.
type ProtocolType string

const (
	ProtocolVertical ProtocolType = "vertical"
	ProtocolStair    ProtocolType = "stair"
	ProtocolRoof     ProtocolType = "roof"
)

// ProtocolTypes lists every supported protocol in display order.
var ProtocolTypes = []ProtocolType{ProtocolVertical, ProtocolStair, ProtocolRoof}

var protocolLabels = map[ProtocolType]string{
	ProtocolVertical: "Вертикальная лестница",
	ProtocolStair:    "Маршевая лестница",
	ProtocolRoof:     "Ограждение кровли",
}

// Label is the Russian display name of the protocol type.
func (p ProtocolType) Label() string {
	if l, ok := protocolLabels[p]; ok {
		return l
	}
	return string(p)
}

// Common holds the fields shared by every protocol.
type Common struct {
	Date              string  `json:"date" validate:"required,protodate" label:"Дата"`
	Customer          string  `json:"customer" validate:"required,runemin=3" label:"Заказчик"`
	ObjectDescription string  `json:"object_description" validate:"required,runemin=5" label:"Объект"`
	TestTime          string  `json:"test_time,omitempty" label:"Время испытаний"`
	Temperature       Decimal `json:"temperature,omitempty" validate:"decrange=-50 50" label:"Температура воздуха"`
	WindSpeed         Decimal `json:"wind_speed,omitempty" validate:"decrange=0 100" label:"Скорость ветра"`
	ProjectCompliant  bool    `json:"project_compliant,omitempty"`
	ProjectNumber     string  `json:"project_number,omitempty" validate:"required_if=ProjectCompliant true" label:"Номер проекта"`
}

// Inspection holds the visual inspection results for one tested element.
type Inspection struct {
	DamageFound         bool `json:"damage_found"`
	MountViolationFound bool `json:"mount_violation_found"`
	WeldViolationFound  bool `json:"weld_violation_found"`
	PaintCompliant      bool `json:"paint_compliant"`
}

// HasDefects reports whether any physical defect was found.
func (i Inspection) HasDefects() bool {
	return i.DamageFound || i.MountViolationFound || i.WeldViolationFound
}

// Report is one of *VerticalReport, *StairReport or *RoofReport.
type Report interface {
	Protocol() ProtocolType
	Base() *Common
	sealed()
}

// ReportInput wraps a Report and carries its protocol type on the wire as
// the "protocol_type" field.
type ReportInput struct {
	Report Report
}

// Protocol returns the protocol type, or an empty string for an empty input.
func (in ReportInput) Protocol() ProtocolType {
	if in.Report == nil {
		return ""
	}
	return in.Report.Protocol()
}

// MarshalJSON writes the report fields flat with protocol_type alongside them.
func (in ReportInput) MarshalJSON() ([]byte, error) {
	switch r := in.Report.(type) {
	case *VerticalReport:
		return json.Marshal(struct {
			ProtocolType ProtocolType `json:"protocol_type"`
			*VerticalReport
		}{ProtocolVertical, r})
	case *StairReport:
		return json.Marshal(struct {
			ProtocolType ProtocolType `json:"protocol_type"`
			*StairReport
		}{ProtocolStair, r})
	case *RoofReport:
		return json.Marshal(struct {
			ProtocolType ProtocolType `json:"protocol_type"`
			*RoofReport
		}{ProtocolRoof, r})
	case nil:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("unsupported report type %T", in.Report)
	}
}

// UnmarshalJSON picks the report variant from protocol_type. A missing
// protocol_type means a vertical ladder report.
func (in *ReportInput) UnmarshalJSON(data []byte) error {
	var probe struct {
		ProtocolType ProtocolType `json:"protocol_type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	var report Report
	switch probe.ProtocolType {
	case ProtocolVertical, "":
		report = &VerticalReport{}
	case ProtocolStair:
		report = &StairReport{}
	case ProtocolRoof:
		report = &RoofReport{}
	default:
		return &UnknownProtocolError{Type: string(probe.ProtocolType)}
	}
	if err := json.Unmarshal(data, report); err != nil {
		return err
	}
	in.Report = report
	return nil
}

// UnknownProtocolError is returned when protocol_type names no known protocol.
type UnknownProtocolError struct {
	Type string
}

func (e *UnknownProtocolError) Error() string {
	return fmt.Sprintf("unknown protocol_type %q (expected vertical, stair or roof)", e.Type)
}

// ParseProtocolType converts user input into a ProtocolType.
func ParseProtocolType(s string) (ProtocolType, error) {
	for _, p := range ProtocolTypes {
		if string(p) == s {
			return p, nil
		}
	}
	return "", &UnknownProtocolError{Type: s}
}
