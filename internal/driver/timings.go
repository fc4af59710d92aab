package driver

import (
	"encoding/json"
	"fmt"

	"cbridge/internal/diag"
	"cbridge/internal/observ"
	"cbridge/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// AppendTimingDiagnostic adds an ObsTimings info diagnostic for report to
// bag; the JSON form of the report travels in the note. An empty path
// marks the aggregate over a batch.
func AppendTimingDiagnostic(bag *diag.Bag, path string, report observ.Report) {
	if bag == nil {
		return
	}
	payload := timingPayload{Kind: "unit", Path: path, TotalMS: report.TotalMS, Phases: report.Phases}
	if path == "" {
		payload.Kind = "batch"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if path != "" {
		msg = fmt.Sprintf("%s, %s", msg, path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Notes:    []diag.Note{{Span: source.Span{}, Msg: string(data)}},
	}
	if bag.Add(entry) {
		return
	}
	// лимит не должен съедать тайминги
	overflow := diag.NewBag(0)
	overflow.Add(entry)
	bag.Merge(overflow)
}
