package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"classeur/adapters/archive"
	"classeur/internal/errors"
	"classeur/internal/logging"
	"classeur/internal/report"
)

// zipNamePattern matches dated zip names like "clinique-20250527.zip".
var zipNamePattern = regexp.MustCompile(`(?i)^(.+)-(\d{8})\.zip$`)

// ExtractConfig defines one extraction run: unpack the main archive into
// WorkDir, keep only the latest dated zip per prefix, and extract each
// survivor into its own folder under OutDir.
type ExtractConfig struct {
	MainArchive string // .rar or .zip
	WorkDir     string
	OutDir      string
	Parallelism int // concurrent zip extractions, min 1
}

// ExtractService unpacks nested archive drops into a clean folder
// structure.
type ExtractService struct {
	log *logging.Logger
}

// NewExtractService creates the service.
func NewExtractService(log *logging.Logger) *ExtractService {
	return &ExtractService{log: log}
}

// datedZip is one zip candidate parsed from its file name.
type datedZip struct {
	prefix string
	date   int
	path   string
}

// Run extracts the main archive, prunes superseded zips, and extracts the
// latest zip per prefix into OutDir/<prefix>-<date>/. The survivors
// extract concurrently; a bad zip is logged and skipped, not fatal.
func (s *ExtractService) Run(cfg ExtractConfig) (*report.Run, error) {
	run := report.NewRun("extract")

	mainReport, err := s.extractMain(cfg.MainArchive, cfg.WorkDir)
	if err != nil {
		return nil, err
	}
	s.log.Info("main archive: %d entr(ies) extracted, %d skipped", mainReport.Extracted, len(mainReport.Skipped))

	zips, err := s.findZips(cfg.WorkDir)
	if err != nil {
		return nil, err
	}
	s.log.Info("found %d zip file(s) under %s", len(zips), cfg.WorkDir)

	latest := selectLatest(zips)
	for _, z := range zips {
		keep, ok := latest[z.prefix]
		if ok && keep.path != z.path {
			if err := os.Remove(z.path); err != nil {
				run.Fail(z.path, err)
			}
		}
	}

	parallelism := cfg.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	var g errgroup.Group
	g.SetLimit(parallelism)
	var mu sync.Mutex
	for _, z := range latest {
		z := z
		g.Go(func() error {
			dest := filepath.Join(cfg.OutDir, fmt.Sprintf("%s-%d", z.prefix, z.date))
			s.log.Info("extracting %s into %s", filepath.Base(z.path), dest)
			rep, err := archive.ExtractZip(z.path, dest)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Invalid zips are skipped, everything else still extracts.
				s.log.Warn("skipping invalid zip %s: %v", z.path, err)
				run.Fail(z.path, err)
				return nil
			}
			for _, entry := range rep.Skipped {
				run.Failures = append(run.Failures, fmt.Sprintf("%s!%s: entry skipped", z.path, entry))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return run, err
	}

	run.FilesProcessed = len(latest)
	s.log.Info("%s", run.Summary())
	return run, nil
}

func (s *ExtractService) extractMain(path, workDir string) (*archive.Report, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rar":
		return archive.ExtractRar(path, workDir)
	case ".zip":
		return archive.ExtractZip(path, workDir)
	default:
		return nil, errors.InvalidInput("main archive must be .rar or .zip: " + path)
	}
}

// findZips walks the work directory recursively and parses every dated
// zip name it finds. Non-matching zips are logged and ignored.
func (s *ExtractService) findZips(root string) ([]datedZip, error) {
	var zips []datedZip
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".zip") {
			return nil
		}
		m := zipNamePattern.FindStringSubmatch(filepath.Base(path))
		if m == nil {
			s.log.Info("skipping non-matching zip name: %s", filepath.Base(path))
			return nil
		}
		date, _ := strconv.Atoi(m[2])
		zips = append(zips, datedZip{prefix: m[1], date: date, path: path})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", root)
	}
	return zips, nil
}

// selectLatest keeps the newest date per prefix.
func selectLatest(zips []datedZip) map[string]datedZip {
	latest := make(map[string]datedZip)
	for _, z := range zips {
		if prev, ok := latest[z.prefix]; !ok || z.date > prev.date {
			latest[z.prefix] = z
		}
	}
	return latest
}
