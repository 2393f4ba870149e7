// Package app holds the orchestration services: they load workbooks via
// the excel adapter, run the core diff/group transformations, and write
// the results back out. The core never does I/O itself.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"classeur/adapters/excel"
	"classeur/domain/diff"
	"classeur/domain/tabular"
	"classeur/internal/errors"
	"classeur/internal/logging"
	"classeur/internal/report"
)

// NewRowsConfig defines one diff sweep: every eligible workbook in
// SourceDir is compared against the baseline on the identity key, and the
// rows absent from the baseline are written to numbered output workbooks.
type NewRowsConfig struct {
	BaselinePath string
	SourceDir    string
	OutputDir    string
	KeyColumns   []string
	OutputPrefix string // defaults to "new_lines_only"
}

// NewRowsService extracts the new rows between a baseline workbook and a
// directory of source workbooks.
type NewRowsService struct {
	log *logging.Logger
}

// NewNewRowsService creates the service.
func NewNewRowsService(log *logging.Logger) *NewRowsService {
	return &NewRowsService{log: log}
}

// Run diffs every source workbook against the baseline and writes one
// output workbook per source that produced new rows. Per-file failures
// are recorded on the run and do not abort the sweep; key validation
// failures do, since a silent partial diff would corrupt downstream
// decisions.
func (s *NewRowsService) Run(cfg NewRowsConfig) (*report.Run, error) {
	if len(cfg.KeyColumns) == 0 {
		return nil, errors.EmptyKey()
	}
	prefix := cfg.OutputPrefix
	if prefix == "" {
		prefix = "new_lines_only"
	}

	baseline, err := excel.NewDataReader(cfg.BaselinePath).ReadDataset()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load baseline %s", cfg.BaselinePath)
	}

	sources, err := s.listSources(cfg.SourceDir, cfg.BaselinePath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", cfg.OutputDir)
	}

	run := report.NewRun("diff")
	outputIndex := 1
	for _, src := range sources {
		s.log.Info("processing source workbook %s", src)

		candidate, err := excel.NewDataReader(src).ReadDataset()
		if err != nil {
			s.log.Warn("skipping %s: %v", src, err)
			run.Fail(src, err)
			continue
		}
		run.FilesProcessed++
		run.RowsIn += len(candidate.Rows)

		key, err := resolveKey(baseline, candidate, cfg.KeyColumns)
		if err != nil {
			return run, err
		}

		fresh, err := diff.NewRows(baseline, candidate, key)
		if err != nil {
			return run, err
		}
		if len(fresh) == 0 {
			s.log.Info("no new rows in %s", src)
			continue
		}

		outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s%d.xlsx", prefix, outputIndex))
		out := tabular.Dataset{Columns: candidate.Columns, Rows: fresh}
		if err := excel.NewDataWriter(outPath).WriteDataset(out); err != nil {
			run.Fail(src, err)
			continue
		}
		s.log.Info("%d new row(s) from %s written to %s", len(fresh), src, outPath)
		run.RowsOut += len(fresh)
		outputIndex++
	}

	s.log.Info("%s", run.Summary())
	return run, nil
}

// listSources returns the .xlsx files in dir, excluding the baseline
// itself (case-insensitive on the file name), in lexical order.
func (s *NewRowsService) listSources(dir, baselinePath string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", dir)
	}
	baseName := strings.ToLower(filepath.Base(baselinePath))
	var sources []string
	for _, m := range matches {
		if strings.ToLower(filepath.Base(m)) == baseName {
			continue
		}
		sources = append(sources, m)
	}
	return sources, nil
}

// resolveKey maps each requested key column to a concrete header. Exact
// names win; otherwise a case-insensitive keyword search over the headers
// is tried in both datasets, so "date" matches "Date de visite". Both
// datasets must agree on a header for every key column.
func resolveKey(baseline, candidate tabular.Dataset, requested []string) ([]string, error) {
	key := make([]string, len(requested))
	for i, name := range requested {
		if baseline.HasColumn(name) && candidate.HasColumn(name) {
			key[i] = name
			continue
		}
		bCol, bOK := baseline.FindColumn(name)
		cCol, cOK := candidate.FindColumn(name)
		if !bOK {
			return nil, errors.SchemaMissing(name, "baseline")
		}
		if !cOK {
			return nil, errors.SchemaMissing(name, "candidate")
		}
		if bCol != cCol {
			return nil, errors.InvalidInput(
				fmt.Sprintf("key column %q resolves to %q in baseline but %q in candidate", name, bCol, cCol))
		}
		key[i] = bCol
	}
	return key, nil
}
