package clack

import (
	"errors"
	"reflect"
)

// ExitCodeDefaults holds the fallback codes used when no specific
// mapping matches.
type ExitCodeDefaults struct {
	Success      int // default: 0
	GeneralError int // default: 1
	UsageError   int // default: 2
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, UsageError: 2}
}

// ExitCodeManager maps errors to process exit codes.
type ExitCodeManager struct {
	codesByUsage map[UsageErrorType]int
	codesByType  map[reflect.Type]int
	defaults     ExitCodeDefaults
}

// NewExitCodeManager returns a manager with the standard mappings:
// 0 success, 1 general/aborted, 2 for every usage category.
func NewExitCodeManager() *ExitCodeManager {
	return &ExitCodeManager{
		codesByUsage: make(map[UsageErrorType]int),
		codesByType:  make(map[reflect.Type]int),
		defaults:     defaultExitDefaults(),
	}
}

// DefineUsage overrides the exit code for one usage-error category.
func (e *ExitCodeManager) DefineUsage(typ UsageErrorType, code int) *ExitCodeManager {
	e.codesByUsage[typ] = code
	return e
}

// DefineError maps a concrete error value (by dynamic type) to a code.
// Type mappings rank below an explicit ExitSignal and below the usage
// taxonomy, but above the defaults.
func (e *ExitCodeManager) DefineError(err error, code int) *ExitCodeManager {
	if err == nil {
		return e
	}
	e.codesByType[reflect.TypeOf(err)] = code
	return e
}

// Default replaces the fallback codes.
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager {
	e.defaults = d
	return e
}

// Resolve converts an error to an exit code. Precedence:
//  1. ExitSignal (requested code)
//  2. UsageError category mapping, falling back to the usage default
//  3. Concrete error type mapping (DefineError)
//  4. Defaults (success for nil, general error otherwise)
func (e *ExitCodeManager) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}

	var sig *ExitSignal
	if errors.As(err, &sig) {
		return sig.Code
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		if code, ok := e.codesByUsage[usage.Type]; ok {
			return code
		}
		return e.defaults.UsageError
	}

	var abort *AbortError
	if errors.As(err, &abort) {
		return e.defaults.GeneralError
	}

	for t, code := range e.codesByType {
		if reflect.TypeOf(err) == t {
			return code
		}
	}

	return e.defaults.GeneralError
}
