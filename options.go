// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package ridgemap

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"rescribe.xyz/ridgemap/preproc"
	"rescribe.xyz/ridgemap/thin"
)

// Binarization methods
const (
	MethodOtsu    = "otsu"
	MethodSauvola = "sauvola"
)

// Options controls each step of Thin.
type Options struct {
	// KernelSize is the size of the Gaussian kernel used for denoising
	KernelSize int `yaml:"kernel_size"`
	// Sigma is the spread of the Gaussian kernel; 0 derives it from KernelSize
	Sigma float64 `yaml:"sigma"`
	// Method is the binarization method, MethodOtsu or MethodSauvola
	Method string `yaml:"method"`
	// DarkRidges sets whether ridges are the darker class of pixels
	DarkRidges bool `yaml:"dark_ridges"`
	// SauvolaK and SauvolaWindow are only used by MethodSauvola;
	// a window of 0 is set automatically from the image width
	SauvolaK      float64 `yaml:"sauvola_k"`
	SauvolaWindow int     `yaml:"sauvola_window"`
	// Wipe clears binary ink outside the fingerprint area before thinning
	Wipe          bool    `yaml:"wipe"`
	WipeWindow    int     `yaml:"wipe_window"`
	WipeThreshold float64 `yaml:"wipe_threshold"`
	// MaxIterations caps the number of thinning passes
	MaxIterations int `yaml:"max_iterations"`
	// Workers is the number of goroutines used for each thinning sub-pass
	Workers int `yaml:"workers"`

	// Logger receives progress lines and warnings; nil discards them
	Logger *log.Logger `yaml:"-"`
}

// DefaultOptions returns the settings used by Thin
func DefaultOptions() Options {
	return Options{
		KernelSize:    preproc.DefaultKernelSize,
		Method:        MethodOtsu,
		DarkRidges:    true,
		SauvolaK:      0.3,
		WipeWindow:    preproc.DefaultWipeSize,
		WipeThreshold: preproc.DefaultWipeThresh,
		MaxIterations: thin.DefaultMaxIterations,
		Workers:       1,
	}
}

// ConfigPath returns the default location of the options file
func ConfigPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "ridgemap", "config.yaml")
}

// LoadOptions reads options from a YAML file. Any setting not in the
// file keeps its default value.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	b, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("Error reading options from %s: %w", path, err)
	}
	err = yaml.Unmarshal(b, &opts)
	if err != nil {
		return opts, fmt.Errorf("Error parsing options from %s: %w", path, err)
	}
	return opts, opts.Validate()
}

// Validate checks that the options are usable
func (o Options) Validate() error {
	switch o.Method {
	case MethodOtsu, MethodSauvola:
	default:
		return fmt.Errorf("Unknown binarization method %q", o.Method)
	}
	if o.KernelSize < 0 {
		return fmt.Errorf("Kernel size can't be negative, got %d", o.KernelSize)
	}
	if o.Sigma < 0 {
		return fmt.Errorf("Sigma can't be negative, got %f", o.Sigma)
	}
	if o.SauvolaWindow < 0 || o.WipeWindow < 0 {
		return fmt.Errorf("Window sizes can't be negative")
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("Maximum iterations can't be negative, got %d", o.MaxIterations)
	}
	if o.Workers < 0 {
		return fmt.Errorf("Workers can't be negative, got %d", o.Workers)
	}
	return nil
}
