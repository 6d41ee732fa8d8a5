package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/tablenorm-go/pkg/tablenorm"
	"github.com/ukaji3/tablenorm-go/pkg/tablenorm/output"
)

var (
	outputPath    string
	outputDir     string
	pretty        bool
	noSpreadsheet bool
	concurrency   int
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file...]",
		Short: "Normalize one or more files and print JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExtract,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for per-file output files")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&noSpreadsheet, "no-spreadsheet", false, "Parse every input as delimited text")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of files processed in parallel")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if concurrency < 1 {
		return fmt.Errorf("invalid concurrency: %d (must be at least 1)", concurrency)
	}

	opts := tablenorm.DefaultOptions()
	opts.Spreadsheet = cfg.Extract.SpreadsheetEnabled && !noSpreadsheet
	opts.Logger = log

	batch := extractAll(args, opts)

	// Single input: emit the bare table, or fail like a one-shot command.
	if len(args) == 1 && outputDir == "" {
		result := batch[args[0]]
		if result.Error != "" {
			return fmt.Errorf("extraction failed: %s", result.Error)
		}
		jsonData, err := output.ToJSON(result.Table, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		return writeOutput(jsonData)
	}

	if outputDir != "" {
		if err := writeTableFiles(batch, outputDir); err != nil {
			return fmt.Errorf("failed to write table files: %w", err)
		}
	}
	if outputDir == "" || outputPath != "" {
		jsonData, err := output.BatchToJSON(batch, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		if err := writeOutput(jsonData); err != nil {
			return err
		}
	}

	for _, path := range args {
		if batch[path].Error != "" {
			return fmt.Errorf("%d of %d files could not be parsed", countFailures(batch), len(args))
		}
	}
	return nil
}

// extractAll normalizes every path, at most concurrency at a time.
// Per-file failures are recorded in the batch rather than aborting the rest.
func extractAll(paths []string, opts tablenorm.Options) output.Batch {
	var (
		mu    sync.Mutex
		batch = make(output.Batch, len(paths))
		g     errgroup.Group
	)
	g.SetLimit(concurrency)

	for _, path := range paths {
		g.Go(func() error {
			var result output.Result
			table, err := tablenorm.ExtractFile(path, opts)
			if err != nil {
				result.Error = err.Error()
			} else {
				result.Table = table
			}

			mu.Lock()
			batch[path] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return batch
}

func writeOutput(jsonData []byte) error {
	if outputPath == "" {
		fmt.Println(string(jsonData))
		return nil
	}
	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeTableFiles writes each parsed table to dir as <base name>.json,
// keeping the input extension so data.csv and data.xlsx stay distinct.
// Two inputs mapping to the same name fail before anything is written.
func writeTableFiles(batch output.Batch, dir string) error {
	paths := make([]string, 0, len(batch))
	for path, result := range batch {
		if result.Table != nil {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	names := make(map[string]string, len(paths))
	for _, path := range paths {
		name := filepath.Base(path) + ".json"
		if prev, ok := names[name]; ok {
			return fmt.Errorf("%s and %s both map to %s", prev, path, name)
		}
		names[name] = path
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, path := range paths {
		jsonData, err := output.ToJSON(batch[path].Table, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, filepath.Base(path)+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

func countFailures(batch output.Batch) int {
	n := 0
	for _, result := range batch {
		if result.Error != "" {
			n++
		}
	}
	return n
}
