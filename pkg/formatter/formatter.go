package formatter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/siyuan-infoblox/js-imports-order/pkg/errors"
	"github.com/siyuan-infoblox/js-imports-order/pkg/order"
	"github.com/siyuan-infoblox/js-imports-order/pkg/report"
	"github.com/siyuan-infoblox/js-imports-order/pkg/source"
	"github.com/siyuan-infoblox/js-imports-order/pkg/utils"
)

// maxFixPasses bounds the scan and apply loop of fix mode.
const maxFixPasses = 10

type FormatterConfig struct {
	FilePath   string        // path to the source file
	Options    order.Options // rule options
	Fix        bool          // whether to write fixes back to the file
	Extensions []string      // extensions picked up when walking directories
	Format     report.Format // output format of the findings
	Out        io.Writer     // findings destination, stdout when nil
	Logger     *slog.Logger  // progress logging, discarded when nil
}

// formatter checks and fixes the import order of source files
type formatter struct {
	config   FormatterConfig
	reporter *report.Reporter
	logger   *slog.Logger
	verify   func(path, original, fixed string) error
}

// New creates a new formatter for the given configuration
func New(config FormatterConfig) *formatter {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if len(config.Extensions) == 0 {
		config.Extensions = utils.DefaultExtensions
	}
	g := &formatter{
		config:   config,
		reporter: report.New(config.Out, config.Format),
		logger:   config.Logger,
	}
	g.verify = g.verifyFix
	return g
}

func (g *formatter) getFilePath() string {
	return g.config.FilePath
}

func (g *formatter) getOptions() order.Options {
	return g.config.Options
}

func (g *formatter) getFix() bool {
	return g.config.Fix
}

// scan parses text and runs the import order scanner over it
func (g *formatter) scan(text string, logger *slog.Logger) []order.Diagnostic {
	return order.Scan(source.Parse(text), g.getOptions(), logger)
}

// fixText applies fixes until a pass applies none. It returns the final
// text, the number of fixes applied and the diagnostics that remain.
func (g *formatter) fixText(text string, logger *slog.Logger) (string, int, []order.Diagnostic) {
	total := 0
	diags := g.scan(text, logger)
	for pass := 0; pass < maxFixPasses; pass++ {
		var fixes []*order.Fix
		for _, d := range diags {
			if d.Fixable() {
				fixes = append(fixes, d.Fix)
			}
		}
		if len(fixes) == 0 {
			break
		}
		fixed, applied := order.ApplyFixes(text, fixes)
		if applied == 0 {
			break
		}
		logger.Debug("applied fixes", slog.Int("pass", pass+1), slog.Int("count", applied))
		text = fixed
		total += applied
		diags = g.scan(text, logger)
	}
	return text, total, diags
}

// CheckFile checks one file and, in fix mode, rewrites it in place
func (g *formatter) CheckFile(path string) (report.FileResult, error) {
	result := report.FileResult{Path: path}
	logger := g.logger.With(slog.String("file", path))

	src, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
	}
	text := string(src)

	if !g.getFix() {
		result.Diagnostics = g.scan(text, logger)
		return result, nil
	}

	fixed, count, diags := g.fixText(text, logger)
	if count == 0 || fixed == text {
		result.Diagnostics = diags
		return result, nil
	}

	if err := g.verify(path, text, fixed); err != nil {
		// nothing is written, so the original findings still stand
		result.Diagnostics = g.scan(text, logger)
		return result, fmt.Errorf("%s: %w", errors.ErrMsgFailedToVerifyFile, err)
	}
	if err := utils.WriteFileAtomic(path, []byte(fixed)); err != nil {
		return result, fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
	}
	logger.Info(errors.InfoMsgFixedFile, slog.Int("fixes", count))

	result.Diagnostics = diags
	result.Fixed = count
	return result, nil
}

// ProcessFile processes the configured source file
func (g *formatter) ProcessFile() error {
	return g.ProcessFiles([]string{g.getFilePath()})
}

// ProcessFiles processes multiple source files and reports their findings
func (g *formatter) ProcessFiles(filePaths []string) error {
	var results []report.FileResult
	errorCount := 0
	remaining := 0

	for _, filePath := range filePaths {
		g.config.FilePath = filePath
		result, err := g.CheckFile(filePath)
		if err != nil {
			g.logger.Error(errors.InfoMsgErrorProcessing, slog.String("file", filePath), slog.Any("error", err))
			errorCount++
			if len(result.Diagnostics) == 0 {
				continue
			}
		}
		remaining += len(result.Diagnostics)
		results = append(results, result)
	}

	if err := g.reporter.Report(results); err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToReportFindings, err)
	}

	if errorCount > 0 {
		return fmt.Errorf(errors.ErrMsgFilesFailedToProcess, errorCount)
	}
	if remaining > 0 {
		return errors.ErrViolationsFound
	}
	return nil
}

// ProcessPath processes a file or directory path
func (g *formatter) ProcessPath(path string) error {
	return g.ProcessPaths([]string{path})
}

// ProcessPaths expands directories into their source files and processes
// everything in one run, so findings are summarized once.
func (g *formatter) ProcessPaths(paths []string) error {
	files, err := g.collectFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		g.logger.Info(errors.InfoMsgNoSourceFilesFound, slog.Any("paths", paths))
		return nil
	}
	g.logger.Debug(errors.InfoMsgFoundSourceFiles, slog.Int("count", len(files)))
	return g.ProcessFiles(files)
}

func (g *formatter) collectFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(file string) {
		if !seen[file] {
			seen[file] = true
			files = append(files, file)
		}
	}

	for _, path := range paths {
		isDir, err := utils.IsDirectory(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
		}
		if !isDir {
			add(path)
			continue
		}

		found, err := utils.FindSourceFiles(path, g.config.Extensions)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindFiles, err)
		}
		sort.Strings(found)
		for _, file := range found {
			add(file)
		}
	}
	return files, nil
}
