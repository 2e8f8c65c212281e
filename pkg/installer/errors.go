package installer

import (
	"errors"
	"fmt"
)

// ConfigError reports a dependency declaration that cannot be installed as
// written. No external tool is invoked for it.
type ConfigError struct {
	Dependency string
	Message    string
	Err        error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is, or wraps, a *ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

func configErrorf(dep, format string, args ...any) *ConfigError {
	return &ConfigError{Dependency: dep, Message: fmt.Sprintf(format, args...)}
}
