// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// ridgemap makes a ridge map (skeleton) from a fingerprint image
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"rescribe.xyz/ridgemap"
)

const usage = `Usage: ridgemap [-c conf] [-k ksize] [-s sigma] [-m method] [-light]
                [-wipe] [-i maxiter] [-j workers] [-pdf report.pdf]
                [-graph hist.png] [-v] inimg outbase

Makes a ridge map from a grayscale fingerprint image, by denoising,
binarizing and thinning it. The binary image is saved to
outbase_bin.png and the skeleton to outbase_thin.png.

Any path can be an s3://bucket/key path, to read from or write to
Amazon S3.

If -c is not given, options are read from ~/.config/ridgemap/config.yaml
if it exists. Flags override the options read from a file.
`

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// save writes a file with write, to dest if it is local or to a
// temporary file which is then uploaded if it is remote
func save(conn ridgemap.Conn, dir string, dest string, write func(string) error) error {
	if !ridgemap.IsRemote(dest) {
		return write(dest)
	}
	local := filepath.Join(dir, filepath.Base(dest))
	err := write(local)
	if err != nil {
		return err
	}
	return ridgemap.Store(conn, local, dest)
}

// cmdFlags holds the flags which can override the options
type cmdFlags struct {
	conf    *string
	ksize   *int
	sigma   *float64
	method  *string
	light   *bool
	wipe    *bool
	maxiter *int
	workers *int
}

func defineFlags(fs *flag.FlagSet) cmdFlags {
	return cmdFlags{
		conf:    fs.String("c", "", "YAML file to read options from"),
		ksize:   fs.Int("k", 0, "Size of the Gaussian kernel used for denoising"),
		sigma:   fs.Float64("s", 0, "Sigma of the Gaussian kernel; 0 derives it from the kernel size"),
		method:  fs.String("m", "", "Binarization method: otsu or sauvola"),
		light:   fs.Bool("light", false, "Treat the lighter pixels as ridges"),
		wipe:    fs.Bool("wipe", false, "Wipe ink outside the fingerprint area before thinning"),
		maxiter: fs.Int("i", 0, "Maximum number of thinning iterations"),
		workers: fs.Int("j", 0, "Number of goroutines to use for thinning"),
	}
}

// overlay sets the options for each flag which was given on the
// command line, leaving the others as they were
func (c cmdFlags) overlay(opts ridgemap.Options, fs *flag.FlagSet) ridgemap.Options {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "k":
			opts.KernelSize = *c.ksize
		case "s":
			opts.Sigma = *c.sigma
		case "m":
			opts.Method = strings.ToLower(*c.method)
		case "light":
			opts.DarkRidges = !*c.light
		case "wipe":
			opts.Wipe = *c.wipe
		case "i":
			opts.MaxIterations = *c.maxiter
		case "j":
			opts.Workers = *c.workers
		}
	})
	return opts
}

// writeGraph saves a histogram graph as a PNG file
func writeGraph(path string, res ridgemap.Result, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Could not create file %s: %w", path, err)
	}
	err = ridgemap.HistogramGraph(res.Histogram, res.Threshold, title, f)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	cf := defineFlags(flag.CommandLine)
	pdfpath := flag.String("pdf", "", "Save a PDF report showing the three images")
	graphpath := flag.String("graph", "", "Save a graph of the image histogram and threshold")
	verbose := flag.Bool("v", false, "Verbose")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}
	inpath, outbase := flag.Arg(0), flag.Arg(1)

	var n NullWriter
	verboselog := log.New(n, "", 0)
	if *verbose {
		verboselog = log.New(os.Stderr, "", 0)
	}

	opts := ridgemap.DefaultOptions()
	var err error
	conf := *cf.conf
	if conf == "" {
		if _, err = os.Stat(ridgemap.ConfigPath()); err == nil {
			conf = ridgemap.ConfigPath()
		}
	}
	if conf != "" {
		verboselog.Println("Reading options from", conf)
		opts, err = ridgemap.LoadOptions(conf)
		if err != nil {
			log.Fatalln(err)
		}
	}
	opts = cf.overlay(opts, flag.CommandLine)
	opts.Logger = verboselog

	var conn ridgemap.Conn
	conn = &ridgemap.LocalConn{Logger: verboselog}
	for _, p := range []string{inpath, outbase, *pdfpath, *graphpath} {
		if ridgemap.IsRemote(p) {
			conn = &ridgemap.AwsConn{Logger: verboselog}
			break
		}
	}
	err = conn.Init()
	if err != nil {
		log.Fatalln("Error setting up connection:", err)
	}

	dir, err := os.MkdirTemp("", "ridgemap")
	if err != nil {
		log.Fatalln("Error creating temporary directory:", err)
	}
	defer os.RemoveAll(dir)

	local, err := ridgemap.Fetch(conn, inpath, dir)
	if err != nil {
		log.Fatalln(err)
	}
	img, err := ridgemap.ReadGray(local)
	if err != nil {
		log.Fatalln(err)
	}

	res, err := ridgemap.ThinOpts(img, opts)
	if err != nil {
		log.Fatalf("Could not make ridge map of %s: %v\n", inpath, err)
	}
	for _, w := range res.Warnings {
		log.Println("Warning:", w)
	}

	outputs := []struct {
		suffix string
		img    image.Image
	}{
		{"_bin.png", res.Binary},
		{"_thin.png", res.Skeleton},
	}
	for _, o := range outputs {
		dest := outbase + o.suffix
		err = save(conn, dir, dest, func(p string) error {
			return ridgemap.WritePNG(p, o.img)
		})
		if err != nil {
			log.Fatalln(err)
		}
		verboselog.Println("Saved", dest)
	}

	if *graphpath != "" {
		err = save(conn, dir, *graphpath, func(p string) error {
			return writeGraph(p, res, filepath.Base(inpath))
		})
		if err != nil {
			log.Fatalln("Error saving graph:", err)
		}
	}

	if *pdfpath != "" {
		err = save(conn, dir, *pdfpath, func(p string) error {
			var r ridgemap.Report
			err := r.Setup()
			if err != nil {
				return err
			}
			err = r.AddResult(filepath.Base(inpath), img, res)
			if err != nil {
				return err
			}
			return r.Save(p)
		})
		if err != nil {
			log.Fatalln("Error saving report:", err)
		}
	}
}
