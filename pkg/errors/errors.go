package errors

import stderrors "errors"

// Error message constants for the js-imports-order application
const (
	// File processing errors
	ErrMsgFailedToReadFile   = "failed to read file"
	ErrMsgFailedToWriteFile  = "failed to write file"
	ErrMsgFailedToVerifyFile = "failed to verify fixed file"

	// Directory processing errors
	ErrMsgFailedToCheckPath      = "failed to check path"
	ErrMsgFailedToFindFiles      = "failed to find source files in directory"
	ErrMsgFilesFailedToProcess   = "%d files failed to process"
	ErrMsgFailedToWatch          = "failed to watch path"
	ErrMsgFailedToReportFindings = "failed to report findings"

	// Configuration errors
	ErrMsgFailedToLoadDefaults = "failed to load defaults"
	ErrMsgFailedToReadConfig   = "error reading config file %s"
	ErrMsgFailedToLoadEnv      = "failed to load env vars"
	ErrMsgFailedToLoadFlags    = "failed to load flags"
	ErrMsgFailedToDecodeConfig = "unable to decode config"

	// Info/warning messages
	InfoMsgNoSourceFilesFound = "no source files found"
	InfoMsgFoundSourceFiles   = "found source files"
	InfoMsgUsingConfigFile    = "using config file"
	InfoMsgFixedFile          = "fixed"
	InfoMsgErrorProcessing    = "error processing file"
	InfoMsgWatching           = "watching for changes"
	WarnMsgSkipSyntaxCheck    = "source does not parse, skipping syntax verification of fixes"
)

var (
	// ErrViolationsFound is returned when diagnostics remain after processing.
	ErrViolationsFound = stderrors.New("import order violations found")
	// ErrFixBrokeSyntax is returned when applying fixes would produce text
	// that no longer parses.
	ErrFixBrokeSyntax = stderrors.New("fixes would break the file syntax")
)
