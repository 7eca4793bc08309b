package main

import (
	"errors"
	"os"

	"github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/dateutil"
	"github.com/alnah/go-mdexport/internal/fileutil"
)

// Exit codes for the mdexport CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every file converted
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitEngine  = 4 // No PDF engine could render
)

// exitCodeFor maps an error to an exit code. It relies on errors.Is, so
// callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case isAny(err,
		mdexport.ErrNoPDFEngine,
		mdexport.ErrEngineNotFound,
		mdexport.ErrBrowserConnect,
		mdexport.ErrPageCreate,
		mdexport.ErrPageLoad,
		mdexport.ErrPDFGeneration):
		return ExitEngine

	case isAny(err,
		os.ErrNotExist,
		os.ErrPermission,
		ErrNoInput,
		ErrNoMarkdownFiles,
		ErrReadMarkdown,
		ErrReadCSS,
		fileutil.ErrWriteOutput):
		return ExitIO

	case isAny(err,
		ErrUsage,
		ErrInvalidExtension,
		ErrInvalidWorkerCount,
		config.ErrConfigNotFound,
		config.ErrEmptyConfigName,
		config.ErrConfigParse,
		config.ErrFieldTooLong,
		config.ErrInvalidValue,
		dateutil.ErrInvalidDateFormat,
		mdexport.ErrEmptyMarkdown,
		mdexport.ErrUnknownFormat,
		mdexport.ErrUnknownPDFEngine,
		mdexport.ErrInvalidPageSize,
		mdexport.ErrInvalidOrientation,
		mdexport.ErrInvalidMargin,
		mdexport.ErrFieldTooLong,
		mdexport.ErrStyleNotFound,
		mdexport.ErrTemplateSetNotFound,
		mdexport.ErrIncompleteTemplateSet,
		mdexport.ErrInvalidAssetPath):
		return ExitUsage
	}

	return ExitGeneral
}

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
