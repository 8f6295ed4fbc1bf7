package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"vendorboot"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/text"
	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"
)

// Process exit statuses
const (
	exitOK   = 0
	exitFail = 2
)

var errArgCount = errors.New("invalid argument count")

func main() {
	os.Exit(run(filepath.Base(os.Args[0]), os.Args[1:], os.Stdout, os.Stderr))
}

func newLogHandler(w io.Writer) log.Handler {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return cli.New(f)
	}

	return text.New(w)
}

func run(app string, args []string, stdout, stderr io.Writer) int {
	var outputDir string
	var decompress bool
	var verbose bool

	flags := flag.NewFlagSet(app, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.StringVarP(&outputDir, "output", "o", ".", "Directory to write the extracted images to.")
	flags.BoolVarP(&decompress, "decompress", "d", false, "Also write the decompressed ramdisk (gzip only).")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print debug output.")

	err := flags.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		printUsage(stdout, app, flags)
		return exitOK
	} else if err != nil {
		fmt.Fprintf(stderr, " ! %s\n\n", err)
		printUsage(stderr, app, flags)
		return exitFail
	}

	if flags.NArg() != 1 {
		reportError(stderr, &vendorboot.Error{
			Kind: vendorboot.KindUsage,
			Op:   "parsing arguments",
			Err:  fmt.Errorf("%w: want 1, got %d", errArgCount, flags.NArg()),
		})
		fmt.Fprintln(stderr)
		printUsage(stderr, app, flags)
		return exitFail
	}

	log.SetHandler(newLogHandler(stderr))
	log.SetLevel(log.InfoLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	return extractImage(flags.Arg(0), vendorboot.Options{
		OutputDir:  outputDir,
		Decompress: decompress,
	}, stdout, stderr)
}
