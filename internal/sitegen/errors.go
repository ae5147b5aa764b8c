// errors.go - Classified build errors
package sitegen

import (
	"errors"
	"fmt"
)

// ErrorKind is the broad category of a build failure. All kinds are fatal.
type ErrorKind string

const (
	// KindFilesystem covers unreadable sources, failed copies and failed writes.
	KindFilesystem ErrorKind = "filesystem"
	// KindEncoding covers paths that are not valid UTF-8.
	KindEncoding ErrorKind = "encoding"
	// KindConfig covers unusable configuration, e.g. an output root that would delete the sources.
	KindConfig ErrorKind = "config"
	// KindRender covers goldmark or template failures while producing a page.
	KindRender ErrorKind = "render"
)

// BuildError carries the kind, the failed operation and the offending path.
type BuildError struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (e *BuildError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Op)
	if e.Path != "" {
		msg += fmt.Sprintf(" %q", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// IsKind reports whether any error in err's chain is a BuildError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

func fsError(op, path string, err error) error {
	return &BuildError{Kind: KindFilesystem, Op: op, Path: path, Err: err}
}

func encodingError(path string) error {
	return &BuildError{Kind: KindEncoding, Op: "decode path", Path: path, Err: errors.New("path is not valid UTF-8")}
}

func configError(op, path string, err error) error {
	return &BuildError{Kind: KindConfig, Op: op, Path: path, Err: err}
}

func renderError(op, path string, err error) error {
	return &BuildError{Kind: KindRender, Op: op, Path: path, Err: err}
}
