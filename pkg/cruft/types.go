package cruft

import "github.com/christokur/cruft/internal/errs"

// Error kinds returned by Create. Use errors.As to inspect them.
type (
	// RepositoryError reports a failed clone or checkout.
	RepositoryError = errs.RepositoryError
	// TemplateNotFoundError reports a repository without a template root.
	TemplateNotFoundError = errs.TemplateNotFoundError
	// ReplayError reports a missing or corrupt replay file.
	ReplayError = errs.ReplayError
	// RenderError reports a failure while generating files.
	RenderError = errs.RenderError
	// ConfigError reports malformed configuration or context input.
	ConfigError = errs.ConfigError
	// IOError reports a local read or write failure.
	IOError = errs.IOError
)
