package driver

import (
	"encoding/json"
	"fmt"

	"momo/internal/diag"
	"momo/internal/observ"
	"momo/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// reportTimings sends the phase report as an ObsTimings info diagnostic with
// the JSON payload in its note.
func reportTimings(r diag.Reporter, path string, report observ.Report) {
	if r == nil {
		return
	}
	payload := timingPayload{
		Kind:    "pipeline",
		Path:    path,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	r.Report(diag.ObsTimings, diag.SevInfo, source.Span{}, msg, []diag.Note{
		{Span: source.Span{}, Msg: string(data)},
	})
}
