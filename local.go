// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package ridgemap

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// LocalConn is a simple implementation of the Conn interface that
// doesn't rely on any "cloud" services, instead keeping each bucket
// as a directory inside Dir. This is particularly useful for testing.
type LocalConn struct {
	// these should be set before running Init(), or left to defaults
	Dir    string
	Logger *log.Logger
}

// Init creates Dir if needed
func (a *LocalConn) Init() error {
	if a.Dir == "" {
		a.Dir = filepath.Join(os.TempDir(), "ridgemap")
	}
	err := os.MkdirAll(a.Dir, 0700)
	if err != nil {
		return fmt.Errorf("Error creating storage directory: %w", err)
	}

	if a.Logger == nil {
		a.Logger = log.New(io.Discard, "", 0)
	}

	return nil
}

func copyFile(dst, src string) error {
	fin, err := os.Open(src)
	if err != nil {
		return err
	}
	defer fin.Close()

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	_, err = io.Copy(f, fin)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Download just copies the file from Dir/bucket/key to path
func (a *LocalConn) Download(bucket string, key string, path string) error {
	return copyFile(path, filepath.Join(a.Dir, bucket, key))
}

// Upload just copies the file from path to Dir/bucket/key
func (a *LocalConn) Upload(bucket string, key string, path string) error {
	d := filepath.Join(a.Dir, bucket, filepath.Dir(key))
	err := os.MkdirAll(d, 0700)
	if err != nil {
		return fmt.Errorf("Error creating bucket directory: %w", err)
	}
	return copyFile(filepath.Join(a.Dir, bucket, key), path)
}

// Log records an item with the Logger. Arguments are handled
// as with fmt.Println.
func (a *LocalConn) Log(v ...interface{}) {
	a.Logger.Println(v...)
}
