package main

import (
	"fmt"
	"io"
	"os"

	"vendorboot"
)

func reportError(w io.Writer, err error) {
	msgs := vendorboot.GetErrors(err)
	fmt.Fprintf(w, " ! Error %s!\n", msgs[0])
	fmt.Fprintf(w, " ! %s\n", msgs[1])
}

func extractImage(inputPath string, opts vendorboot.Options, stdout, stderr io.Writer) int {
	fInfo, err := os.Stat(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stderr, " ! Input file '%s' does not exist!\n", inputPath)
			fmt.Fprintln(stderr, " ! Please provide a vendor boot image and try again.")
			return exitFail
		}

		reportError(stderr, &vendorboot.Error{Kind: vendorboot.KindOpen, Op: "verifying file", Err: err})
		return exitFail
	}

	if fInfo.IsDir() {
		fmt.Fprintln(stderr, " ! Input is a directory!")
		fmt.Fprintln(stderr, " ! Please provide a vendor boot image file.")
		return exitFail
	}

	res, err := vendorboot.Extract(inputPath, opts)
	if err != nil {
		reportError(stderr, err)
		return exitFail
	}

	err = vendorboot.WriteReport(stdout, res)
	if err != nil {
		reportError(stderr, &vendorboot.Error{Kind: vendorboot.KindWrite, Op: "printing report", Err: err})
		return exitFail
	}

	return exitOK
}
