package cli

import (
	"errors"
	"fmt"

	"github.com/quantize-tools/quantcfg/internal/config"
	"github.com/quantize-tools/quantcfg/internal/legacy"
	"github.com/quantize-tools/quantcfg/internal/profile"
)

// errorCode classifies an error from the config loader, the translator or
// the profile store into a CLI error code.
func errorCode(err error) string {
	var loadErr *config.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	if legacy.IsUnsupportedField(err) {
		return ErrCodeUnsupportedField
	}
	if legacy.IsUnsupportedEstimator(err) {
		return ErrCodeUnsupportedEstimator
	}
	if errors.Is(err, profile.ErrNotFound) {
		return ErrCodeProfileNotFound
	}
	return ErrCodeGeneric
}

// exitCodeFor maps an error to a process exit code: unrepresentable
// configurations are validation failures (1), everything else is a command
// error (2).
func exitCodeFor(err error) int {
	if legacy.IsUnsupportedField(err) || legacy.IsUnsupportedEstimator(err) {
		return ExitFailure
	}
	return ExitCommandError
}

// outputError emits the error in the configured format and returns a
// matching ExitError for main.
func outputError(formatter *OutputFormatter, err error) error {
	code := errorCode(err)
	_ = formatter.Error(code, err.Error(), nil)
	return WrapExitError(exitCodeFor(err), fmt.Sprintf("%s: %s", code, err.Error()), err)
}
