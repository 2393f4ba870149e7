package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"classeur/app"
	"classeur/internal/config"
	"classeur/internal/logging"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "classeur",
		Short: "Clerical automation for spreadsheet datasets and file drops",
	}

	rootCmd.AddCommand(
		newDiffCmd(),
		newGroupCmd(),
		newCollectCmd(),
		newExtractCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.NewDefault(), nil
}

func newDiffCmd() *cobra.Command {
	var baseline, sourceDir, outDir, prefix string
	var key []string

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Extract rows present in source workbooks but absent from the baseline",
		Long: `Compare every .xlsx workbook in the source directory against the baseline
workbook on the identity key columns and write the new rows to numbered
output workbooks.

Example: classeur diff --baseline Ventes1.xlsx --source . --key date,hopital`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			svc := app.NewNewRowsService(log)
			_, err = svc.Run(app.NewRowsConfig{
				BaselinePath: orDefault(baseline, cfg.Paths.BaselineFile),
				SourceDir:    orDefault(sourceDir, cfg.Paths.SourceDir),
				OutputDir:    orDefault(outDir, cfg.Paths.OutputDir),
				KeyColumns:   orDefaultList(key, cfg.Diff.KeyColumns),
				OutputPrefix: prefix,
			})
			return err
		},
	}

	cmd.Flags().StringVar(&baseline, "baseline", "", "baseline workbook path")
	cmd.Flags().StringVar(&sourceDir, "source", "", "directory of candidate workbooks")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory")
	cmd.Flags().StringSliceVar(&key, "key", nil, "identity key columns (comma separated)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "output file name prefix")
	return cmd
}

func newGroupCmd() *cobra.Command {
	var inputDir, exclude, by, out, marker string

	cmd := &cobra.Command{
		Use:   "group",
		Short: "Cluster workbook rows sharing a linking column into one grouped workbook",
		Long: `Gather the rows of every .xlsx workbook in the input directory, cluster
the ones sharing a value in the group column, and write a single workbook
with a group-boundary marker column.

Example: classeur group --in . --exclude Ventes1.xlsx --by dossier --out groupe.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			svc := app.NewGroupService(log)
			_, err = svc.Run(app.GroupConfig{
				InputDir:     orDefault(inputDir, cfg.Paths.SourceDir),
				ExcludeFile:  exclude,
				GroupColumn:  by,
				OutputPath:   orDefault(out, "groupe.xlsx"),
				MarkerColumn: orDefault(marker, cfg.Diff.MarkerColumn),
			})
			return err
		},
	}

	cmd.Flags().StringVar(&inputDir, "in", "", "directory of input workbooks")
	cmd.Flags().StringVar(&exclude, "exclude", "", "workbook name to skip")
	cmd.Flags().StringVar(&by, "by", "", "group column name")
	cmd.Flags().StringVar(&out, "out", "", "grouped output workbook")
	cmd.Flags().StringVar(&marker, "marker", "", "group boundary column name")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}

func newCollectCmd() *cobra.Command {
	var root, target, dest string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect result workbooks from a nested output tree into one directory",
		Long: `Find the target workbook in every output/<batch>/<item>/ leaf, rename it
with a sequence number in place, and copy it to the destination directory.

Example: classeur collect --root output --target resultats.xlsx --dest nouveau_resultats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			svc := app.NewCollectService(log)
			_, err = svc.Run(app.CollectConfig{
				RootDir:    orDefault(root, cfg.Paths.OutputDir),
				TargetName: target,
				DestDir:    dest,
			})
			return err
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "root of the nested output tree")
	cmd.Flags().StringVar(&target, "target", "resultats.xlsx", "workbook name to collect")
	cmd.Flags().StringVar(&dest, "dest", "nouveau_resultats", "destination directory")
	return cmd
}

func newExtractCmd() *cobra.Command {
	var archivePath, workDir, outDir string
	var parallelism int

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Unpack an archive drop, keeping only the latest dated zip per prefix",
		Long: `Extract the main archive into the work directory, find every zip named
prefix-YYYYMMDD.zip, delete superseded dates, and extract each surviving
zip into its own folder under the output directory.

Example: classeur extract --archive backup_20250527.rar --work work --out output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			if parallelism == 0 {
				parallelism = cfg.Extract.Parallelism
			}
			svc := app.NewExtractService(log)
			_, err = svc.Run(app.ExtractConfig{
				MainArchive: archivePath,
				WorkDir:     orDefault(workDir, cfg.Paths.WorkDir),
				OutDir:      orDefault(outDir, cfg.Paths.OutputDir),
				Parallelism: parallelism,
			})
			return err
		},
	}

	cmd.Flags().StringVar(&archivePath, "archive", "", "main .rar or .zip archive")
	cmd.Flags().StringVar(&workDir, "work", "", "scratch directory for the first-stage extraction")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory for per-prefix folders")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "concurrent zip extractions")
	_ = cmd.MarkFlagRequired("archive")
	return cmd
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func orDefaultList(value, fallback []string) []string {
	if len(value) > 0 {
		return value
	}
	return fallback
}
