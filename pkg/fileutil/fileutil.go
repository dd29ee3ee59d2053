// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// WriteFile writes data to dst. It writes to a temporary file and then
// moves it into place, so readers never see a partial file. When dst
// already holds exactly data it is left untouched and changed is false.
func WriteFile(dst string, data []byte, perm os.FileMode) (changed bool, err error) {
	tempDst := dst + ".tmp"
	f, err := os.OpenFile(tempDst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil || !changed {
			os.Remove(tempDst)
		}
	}()
	if _, err = f.Write(data); err != nil {
		f.Close()
		return false, err
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return false, err
	}
	if err = f.Close(); err != nil {
		return false, err
	}

	same, err := Identical(tempDst, dst)
	if err != nil {
		return false, err
	}
	if same {
		return false, nil
	}
	if err = os.Rename(tempDst, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Identical reports whether the contents of two files are identical.
func Identical(file1, file2 string) (bool, error) {
	f1, err := os.Open(file1)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open file1: %w", err)
	}
	defer f1.Close()

	f2, err := os.Open(file2)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open file2: %w", err)
	}
	defer f2.Close()

	hasher1 := sha256.New()
	hasher2 := sha256.New()
	if _, err := io.Copy(hasher1, f1); err != nil {
		return false, fmt.Errorf("failed to hash file1: %v", err)
	}
	if _, err := io.Copy(hasher2, f2); err != nil {
		return false, fmt.Errorf("failed to hash file2: %v", err)
	}

	return bytes.Equal(hasher1.Sum(nil), hasher2.Sum(nil)), nil
}
