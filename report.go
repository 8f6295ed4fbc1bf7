package vendorboot

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteReport prints the header metadata and artifacts of res to w.
func WriteReport(w io.Writer, res *Result) error {
	hdr := res.Header
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	fmt.Fprintf(tw, "header version:\t%d\n", hdr.HeaderVersion)
	fmt.Fprintf(tw, "page size:\t%d\n", hdr.PageSize)
	fmt.Fprintf(tw, "header size:\t%d\n", hdr.HeaderSize)
	fmt.Fprintf(tw, "kernel addr:\t%#08x\n", hdr.KernelAddr)
	fmt.Fprintf(tw, "ramdisk addr:\t%#08x\n", hdr.RamdiskAddr)
	fmt.Fprintf(tw, "tags addr:\t%#08x\n", hdr.TagsAddr)
	fmt.Fprintf(tw, "dtb addr:\t%#016x\n", hdr.DtbAddr)
	fmt.Fprintf(tw, "ramdisk:\t%s [%s]\n", res.Ramdisk, res.Compression)
	if res.RamdiskCpio != nil {
		fmt.Fprintf(tw, "ramdisk cpio:\t%s\n", res.RamdiskCpio)
	}
	fmt.Fprintf(tw, "dtb:\t%s\n", res.Dtb)
	fmt.Fprintf(tw, "cmdline:\t'%s'\n", hdr.Cmdline())
	fmt.Fprintf(tw, "product name:\t'%s'\n", hdr.Name())

	return tw.Flush()
}
