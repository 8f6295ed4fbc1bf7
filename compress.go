package vendorboot

import (
	"bytes"
	"fmt"
	"io"

	gzip "github.com/klauspost/pgzip"
)

// Compression is a ramdisk compression format.
type Compression int

// Compression types/modes
const (
	CompGzip Compression = iota
	CompLz4
	CompLzo
	CompXz
	CompBzip2
	CompLzma
	CompUnknown
)

var compNames = [...]string{
	CompGzip:    "gzip",
	CompLz4:     "lz4",
	CompLzo:     "lzo",
	CompXz:      "xz",
	CompBzip2:   "bzip2",
	CompLzma:    "lzma",
	CompUnknown: "unknown",
}

func (c Compression) String() string {
	if c < 0 || int(c) >= len(compNames) {
		return compNames[CompUnknown]
	}

	return compNames[c]
}

// DetectCompressor detects the compressor used for the input ramdisk.
func DetectCompressor(compr []byte) Compression {
	if len(compr) < 2 {
		return CompUnknown
	}

	switch fmt.Sprintf("%02x%02x", compr[0], compr[1]) {
	case "425a":
		return CompBzip2
	case "1f8b":
		return CompGzip
	case "1f9e":
		return CompGzip
	case "0422":
		return CompLz4
	case "894c":
		return CompLzo
	case "5d00":
		return CompLzma
	case "fd37":
		return CompXz
	default:
		return CompUnknown
	}
}

// DecompressRamdisk decompresses the provided ramdisk. Only gzip is
// supported; other formats fail with KindFormat.
func DecompressRamdisk(compr []byte, cMode Compression) (ramdisk []byte, err error) {
	if cMode != CompGzip {
		return nil, eFormat(fmt.Errorf("%s %w", cMode, ErrUnsupported), "preparing to extract ramdisk")
	}

	gReader, err := gzip.NewReader(bytes.NewReader(compr))
	if err != nil {
		return nil, eFormat(err, "preparing to extract ramdisk")
	}

	ramdisk, err = io.ReadAll(gReader)
	if err != nil {
		gReader.Close()
		return nil, eFormat(err, "extracting ramdisk")
	}

	err = gReader.Close()
	if err != nil {
		return nil, eFormat(err, "cleaning up ramdisk extraction")
	}

	return
}
