// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

/*
The ridgemap package turns a grayscale photograph of a fingerprint into a
ridge map: a skeleton of the ridges one pixel wide, suitable as the input
to minutiae extraction. It also contains a command line tool, ridgemap,
which is useful standalone.

Introduction

A fingerprint scan is noisy and its ridges are several pixels wide. The
ridge map is made in three steps, each taking and returning an image of
the same size:

  1. Denoising, with a small Gaussian blur (preproc.Gaussian)
  2. Binarization, splitting the pixels into ridge ink and valley paper
     with a single threshold chosen by Otsu's method (binarize.Otsu)
  3. Thinning, repeatedly removing ink from the edges of each ridge
     until only its centre line is left (thin.Thinner)

All three are run by Thin, which returns both the binary image and the
skeleton, so they can be shown side by side with the original.

Presuming you have the go tools installed, you can install the command
line tool with this command:
  go install rescribe.xyz/ridgemap/cmd/ridgemap@latest

and run it on a scan like this:
  ridgemap -v -pdf report.pdf finger.tif finger

which will save finger_bin.png and finger_thin.png, and a PDF showing
the three images together.

Diagnostics

Two things can go wrong without stopping a run. An image with only one
gray level (a blank scan, say) has no best threshold, so a fixed one is
used instead and ErrDegenerateHistogram is added to the warnings of the
Result. Thinning a pathological image may not settle within the
iteration cap, in which case the partly thinned skeleton is returned
and ErrDidNotConverge is added to the warnings. Anything wrong with the
input image itself is returned as ErrInvalidInput, with no Result.

Configuration

The settings for each step can be changed with Options, which can also
be read from a YAML file with LoadOptions. The ridgemap tool reads
~/.config/ridgemap/config.yaml if it exists, for example:

  kernel_size: 7
  method: sauvola
  wipe: true
  workers: 4

Remote files

The ridgemap tool can read its input from and write its output to S3,
by using paths like s3://bucket/finger.tif. Set up ~/.aws/credentials
appropriately for this to work.
*/
package ridgemap
