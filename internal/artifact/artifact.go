// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package artifact writes generated files.
package artifact

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// File is a generated file.
type File interface {
	// Name of the file relative to the target directory.
	Name() string
	// WriteBindings writes the content of the file.
	WriteBindings(w io.Writer) error
}

// Write generates a file in a directory and returns its path.
//
// The file is first generated in memory then written to a temporary file
// renamed to its final name, so that the target is either the previous
// version or the new version but never a partial one.
func Write(dir string, f File) (path string, err error) {
	path = filepath.Join(dir, f.Name())
	defer func() {
		if err != nil {
			err = errors.Wrapf(err, "cannot generate %s", path)
		}
	}()
	var buf bytes.Buffer
	if err := f.WriteBindings(&buf); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
