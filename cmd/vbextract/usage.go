package main

import (
	"fmt"
	"io"

	"vendorboot"

	"github.com/muesli/reflow/wordwrap"
	flag "github.com/spf13/pflag"
)

const usageCols = 60

const usageText = `Extracts the vendor ramdisk and device tree blob from an Android vendor boot image into %s and %s in the output directory, then prints the kernel command line and product name stored in the header.`

func printUsage(w io.Writer, app string, flags *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [flags] <path to vendor_boot.img>\n\n", app)
	fmt.Fprintln(w, wordwrap.String(fmt.Sprintf(usageText, vendorboot.RamdiskArtifact, vendorboot.DtbArtifact), usageCols))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, flags.FlagUsages())
}
