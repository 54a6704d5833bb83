// Package report renders the pipeline result into the output artifact set:
// the classification CSV, the per-wilayah top-N CSV, a markdown report, and
// optionally an XLSX workbook and PNG charts. Artifacts are committed
// atomically as a group.
package report

import (
	"path/filepath"

	"wilayah-analytics/internal/config"
	"wilayah-analytics/internal/ingest"
	"wilayah-analytics/internal/services"
)

// WriteAll renders and commits every enabled artifact under cfg.Dir.
func WriteAll(cfg config.OutputConfig, result *services.Result, stats ingest.Stats) error {
	artifacts := []Artifact{
		{Path: filepath.Join(cfg.Dir, cfg.ClassificationFile), Render: classificationCSV(result)},
		{Path: filepath.Join(cfg.Dir, cfg.TopNFile), Render: topNCSV(result)},
		{Path: filepath.Join(cfg.Dir, cfg.ReportFile), Render: markdownReport(result, stats)},
	}
	if cfg.Workbook {
		artifacts = append(artifacts, Artifact{
			Path:   filepath.Join(cfg.Dir, cfg.WorkbookFile),
			Render: workbook(result),
		})
	}
	if cfg.Charts {
		artifacts = append(artifacts,
			Artifact{Path: filepath.Join(cfg.Dir, cfg.LabelChartFile), Render: labelChart(result)},
			Artifact{Path: filepath.Join(cfg.Dir, cfg.RegionChartFile), Render: regionChart(result)},
		)
	}

	return CommitAll(artifacts)
}
