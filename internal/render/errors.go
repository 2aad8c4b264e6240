package render

import "fmt"

// OutputDirExistsError reports that the project directory is already
// present and overwriting was not requested.
type OutputDirExistsError struct {
	Dir string
}

func (e *OutputDirExistsError) Error() string {
	return fmt.Sprintf("Error: %q directory already exists", e.Dir)
}

// TemplateError reports a template that failed to parse or execute.
type TemplateError struct {
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("rendering %s: %s", e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}
