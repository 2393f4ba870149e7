package app

import (
	"os"
	"path/filepath"

	"classeur/adapters/fsops"
	"classeur/internal/errors"
	"classeur/internal/logging"
	"classeur/internal/report"
)

// CollectConfig defines a collection sweep over a two-level directory
// tree: RootDir/<batch>/<item>/TargetName.
type CollectConfig struct {
	RootDir    string // tree to scan, e.g. "output"
	TargetName string // workbook to collect, e.g. "resultats.xlsx"
	DestDir    string // flat destination for the collected copies
}

// CollectService finds a named workbook in every leaf of a nested result
// tree, renames it with a sequence number in place, and copies it to a
// flat destination directory.
type CollectService struct {
	log *logging.Logger
}

// NewCollectService creates the service.
func NewCollectService(log *logging.Logger) *CollectService {
	return &CollectService{log: log}
}

// Run walks the tree and relocates every matching workbook. A failed
// rename skips the file; a failed copy leaves the source renamed. The
// sequence number advances only on full success, so the destination
// numbering has no holes.
func (s *CollectService) Run(cfg CollectConfig) (*report.Run, error) {
	if err := os.MkdirAll(cfg.DestDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create destination %s", cfg.DestDir)
	}
	if info, err := os.Stat(cfg.RootDir); err != nil || !info.IsDir() {
		return nil, errors.InvalidInput("root directory not found: " + cfg.RootDir)
	}

	run := report.NewRun("collect")
	counter := 1

	batches, err := os.ReadDir(cfg.RootDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", cfg.RootDir)
	}
	for _, batch := range batches {
		if !batch.IsDir() {
			continue
		}
		items, err := os.ReadDir(filepath.Join(cfg.RootDir, batch.Name()))
		if err != nil {
			run.Fail(batch.Name(), err)
			continue
		}
		for _, item := range items {
			if !item.IsDir() {
				continue
			}
			leaf := filepath.Join(cfg.RootDir, batch.Name(), item.Name())
			source := filepath.Join(leaf, cfg.TargetName)
			if _, err := os.Stat(source); err != nil {
				continue
			}

			numbered := fsops.NumberedName(cfg.TargetName, counter)
			renamed := filepath.Join(leaf, numbered)
			if err := os.Rename(source, renamed); err != nil {
				s.log.Warn("could not rename %s: %v", source, err)
				run.Fail(source, err)
				continue
			}
			if err := fsops.CopyFile(renamed, filepath.Join(cfg.DestDir, numbered)); err != nil {
				s.log.Warn("could not copy %s: %v", renamed, err)
				run.Fail(renamed, err)
				continue
			}
			s.log.Info("collected %s as %s", source, numbered)
			run.FilesProcessed++
			counter++
		}
	}

	s.log.Info("%s", run.Summary())
	return run, nil
}
