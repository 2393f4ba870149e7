package app

import (
	"path/filepath"
	"strings"

	"classeur/adapters/excel"
	"classeur/domain/group"
	"classeur/domain/tabular"
	"classeur/internal/errors"
	"classeur/internal/logging"
	"classeur/internal/report"
)

// GroupConfig defines one grouping pass: rows gathered from the input
// workbooks are partitioned on GroupColumn and written to a single output
// workbook, group boundaries marked by MarkerColumn.
type GroupConfig struct {
	InputPaths   []string // explicit inputs; when empty, InputDir is scanned
	InputDir     string
	ExcludeFile  string // workbook name to skip when scanning, e.g. the baseline
	GroupColumn  string
	OutputPath   string
	MarkerColumn string // defaults to "groupe"
}

// GroupService gathers rows from workbooks and clusters the ones sharing
// a linking key into a grouped output workbook.
type GroupService struct {
	log *logging.Logger
}

// NewGroupService creates the service.
func NewGroupService(log *logging.Logger) *GroupService {
	return &GroupService{log: log}
}

// Run loads the inputs, partitions their rows on the group column, writes
// the grouped workbook, and reports per-group counts. Input workbooks
// share the schema of the first one read; files that fail to load are
// skipped and recorded.
func (s *GroupService) Run(cfg GroupConfig) (*report.Run, error) {
	if cfg.GroupColumn == "" {
		return nil, errors.InvalidInput("group column is required")
	}
	marker := cfg.MarkerColumn
	if marker == "" {
		marker = "groupe"
	}

	inputs := cfg.InputPaths
	if len(inputs) == 0 {
		var err error
		if inputs, err = s.scanInputs(cfg.InputDir, cfg.ExcludeFile, cfg.OutputPath); err != nil {
			return nil, err
		}
	}

	run := report.NewRun("group")
	var columns []string
	var rows []tabular.Row
	for _, path := range inputs {
		ds, err := excel.NewDataReader(path).ReadDataset()
		if err != nil {
			s.log.Warn("skipping %s: %v", path, err)
			run.Fail(path, err)
			continue
		}
		if columns == nil {
			columns = ds.Columns
		}
		run.FilesProcessed++
		run.RowsIn += len(ds.Rows)
		rows = append(rows, ds.Rows...)
	}

	groups, err := group.Partition(rows, group.ByColumn(cfg.GroupColumn))
	if err != nil {
		return run, err
	}

	if err := excel.NewDataWriter(cfg.OutputPath).WriteGroups(columns, groups, marker); err != nil {
		return run, errors.Wrapf(err, "failed to write %s", cfg.OutputPath)
	}

	sizes := make([]int, len(groups))
	for i, g := range groups {
		sizes[i] = len(g.Rows)
		run.RowsOut += len(g.Rows)
		s.log.Info("group %q: %d row(s)", g.Key.Display(), len(g.Rows))
	}
	summary, err := report.SummarizeGroups(sizes)
	if err != nil {
		return run, errors.Wrap(err, "failed to summarize groups")
	}
	s.log.Info("%s", summary)
	s.log.Info("%s", run.Summary())
	return run, nil
}

func (s *GroupService) scanInputs(dir, exclude, output string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", dir)
	}
	skip := map[string]bool{
		strings.ToLower(exclude):               true,
		strings.ToLower(filepath.Base(output)): true,
	}
	var inputs []string
	for _, m := range matches {
		if skip[strings.ToLower(filepath.Base(m))] {
			continue
		}
		inputs = append(inputs, m)
	}
	return inputs, nil
}
