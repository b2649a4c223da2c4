package formatter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/siyuan-infoblox/js-imports-order/pkg/errors"
)

// loaderFor picks the esbuild loader for a file name. Plain JavaScript is
// parsed as JSX since React code commonly lives in .js files.
func loaderFor(path string) api.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return api.LoaderTS
	case ".tsx":
		return api.LoaderTSX
	default:
		return api.LoaderJSX
	}
}

// syntaxErrors parses text with esbuild and returns its errors as
// file:line:column messages.
func syntaxErrors(path, text string) []string {
	result := api.Transform(text, api.TransformOptions{
		Loader:     loaderFor(path),
		Sourcefile: path,
		LogLevel:   api.LogLevelSilent,
	})

	var msgs []string
	for _, err := range result.Errors {
		if err.Location == nil {
			msgs = append(msgs, err.Text)
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s:%d:%d: %s",
			err.Location.File,
			err.Location.Line,
			err.Location.Column,
			err.Text))
	}
	return msgs
}

// verifyFix refuses fixed text that no longer parses. Sources that did not
// parse before fixing are not verified.
func (g *formatter) verifyFix(path, original, fixed string) error {
	if errs := syntaxErrors(path, original); len(errs) > 0 {
		g.logger.Warn(errors.WarnMsgSkipSyntaxCheck, "file", path, "error", errs[0])
		return nil
	}
	if errs := syntaxErrors(path, fixed); len(errs) > 0 {
		return fmt.Errorf("%w:\n%s", errors.ErrFixBrokeSyntax, strings.Join(errs, "\n"))
	}
	return nil
}
