package service

import (
	"github.com/godilite/feedback360-server/internal/aggregation"
	"github.com/godilite/feedback360-server/internal/export"
)

// PersonReport bundles one person's result with the chart-ready views
// derived from it.
type PersonReport struct {
	Result       aggregation.Result     `json:"result"`
	Radar        export.RadarData       `json:"radar"`
	RoleBars     []export.RoleBar       `json:"role_bars"`
	Competencies []export.CompetencyRow `json:"competencies"`
}
