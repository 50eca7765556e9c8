package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/linksim/internal/config"
	"github.com/san-kum/linksim/internal/dynamo"
)

type ExportData struct {
	Integrator string             `json:"integrator"`
	Controller string             `json:"controller"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Gravity    float64            `json:"gravity"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	States     []dynamo.State     `json:"states"`
	Controls   []dynamo.Control   `json:"controls"`
	Metrics    map[string]float64 `json:"metrics"`
}

func NewExportData(cfg *config.Config, result *dynamo.Result) ExportData {
	return ExportData{
		Integrator: cfg.Integrator,
		Controller: cfg.Controller,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Gravity:    cfg.Gravity,
		Steps:      result.StepsTaken,
		Times:      result.Times,
		States:     result.States,
		Controls:   result.Controls,
		Metrics:    result.Metrics,
	}
}

func ExportJSON(w io.Writer, cfg *config.Config, result *dynamo.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(cfg, result))
}
