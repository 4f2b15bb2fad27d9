package provision

import (
	"fmt"
	"os"
	"path/filepath"
)

// TemplateLoader reads CI pipeline definitions from local disk. Templates
// are named <pipeline>.yml and used verbatim; no caching, no substitution.
type TemplateLoader struct {
	dir string
}

// NewTemplateLoader creates a loader rooted at dir
func NewTemplateLoader(dir string) *TemplateLoader {
	if dir == "" {
		dir = "."
	}
	return &TemplateLoader{dir: dir}
}

// Path returns the on-disk location for a pipeline template
func (l *TemplateLoader) Path(pipeline string) string {
	return filepath.Join(l.dir, pipeline+".yml")
}

// Load returns the raw content of the template for the given pipeline type
func (l *TemplateLoader) Load(pipeline string) ([]byte, error) {
	path := l.Path(pipeline)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ProvisionError{
				Type:     ErrorTypeConfig,
				Message:  fmt.Sprintf("template file for pipeline type %q does not exist", pipeline),
				Cause:    err,
				Resource: path,
			}
		}
		return nil, &ProvisionError{
			Type:     ErrorTypeConfig,
			Message:  fmt.Sprintf("failed to read template for pipeline type %q", pipeline),
			Cause:    err,
			Resource: path,
		}
	}

	return content, nil
}
