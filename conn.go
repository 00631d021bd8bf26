// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package ridgemap

import (
	"fmt"
	"path/filepath"
	"strings"
)

const s3Prefix = "s3://"

// Conn is a place images can be downloaded from and uploaded to.
// It is implemented by AwsConn and LocalConn.
type Conn interface {
	Init() error
	Download(bucket string, key string, path string) error
	Upload(bucket string, key string, path string) error
	Log(v ...interface{})
}

// IsRemote reports whether a path refers to remote storage
func IsRemote(p string) bool {
	return strings.HasPrefix(p, s3Prefix)
}

// SplitS3Path splits a path like s3://bucket/dir/key into its bucket
// and key
func SplitS3Path(p string) (string, string, error) {
	if !IsRemote(p) {
		return "", "", fmt.Errorf("%s is not an s3:// path", p)
	}
	bucket, key, found := strings.Cut(strings.TrimPrefix(p, s3Prefix), "/")
	if !found || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("%s does not name a bucket and key", p)
	}
	return bucket, key, nil
}

// Fetch makes a remote file available locally, downloading it into
// dir and returning the local path. Local paths are returned as they
// are.
func Fetch(c Conn, p string, dir string) (string, error) {
	if !IsRemote(p) {
		return p, nil
	}
	bucket, key, err := SplitS3Path(p)
	if err != nil {
		return "", err
	}
	local := filepath.Join(dir, filepath.Base(key))
	c.Log("Downloading", p)
	err = c.Download(bucket, key, local)
	if err != nil {
		return "", fmt.Errorf("Error downloading %s: %w", p, err)
	}
	return local, nil
}

// Store uploads the local file at path to dest, if dest is remote
func Store(c Conn, path string, dest string) error {
	if !IsRemote(dest) {
		return nil
	}
	bucket, key, err := SplitS3Path(dest)
	if err != nil {
		return err
	}
	c.Log("Uploading", dest)
	err = c.Upload(bucket, key, path)
	if err != nil {
		return fmt.Errorf("Error uploading %s: %w", dest, err)
	}
	return nil
}
