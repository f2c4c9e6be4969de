package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/iamNilotpal/crcsum/internal/core/domain"
)

// StdinTarget reads standard input.
const StdinTarget = "-"

// File opens local paths, and standard input for StdinTarget.
type File struct {
	stdin io.Reader
}

// NewFile returns a File reading StdinTarget from stdin. A nil stdin uses os.Stdin.
func NewFile(stdin io.Reader) *File {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &File{stdin: stdin}
}

func (f *File) Open(_ context.Context, target string) (io.ReadCloser, error) {
	if target == StdinTarget {
		return io.NopCloser(f.stdin), nil
	}

	file, err := os.Open(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, target)
		}
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%s is a directory", target)
	}

	return file, nil
}

func (f *File) Scheme() string {
	return ""
}
