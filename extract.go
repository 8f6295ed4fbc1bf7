package vendorboot

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
)

// Options configures an extraction.
type Options struct {
	// OutputDir receives the fixed-name artifacts. Empty means the
	// current directory.
	OutputDir string
	// Decompress also writes the inflated ramdisk when it is gzip.
	Decompress bool
}

// Result is the outcome of a successful extraction.
type Result struct {
	Header      *Header
	Geometry    Geometry
	Compression Compression

	Ramdisk *Artifact
	Dtb     *Artifact
	// RamdiskCpio is nil unless Options.Decompress was set.
	RamdiskCpio *Artifact
}

// Extract opens the image at path and extracts its ramdisk and dtb.
func Extract(path string, opts Options) (*Result, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, eMsg(KindOpen, err, "opening image for reading")
	}
	defer fin.Close()

	return ExtractFrom(fin, opts)
}

// ExtractFrom extracts the ramdisk and dtb of the image read from fin, which
// must be positioned at the start of the image. Any failure aborts the
// remaining steps; artifacts written by earlier steps stay in place. The
// optional decompression runs last, so it never blocks the dtb.
func ExtractFrom(fin io.ReadSeeker, opts Options) (*Result, error) {
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}

	log.Info("Reading header")
	hdr, err := ReadHeader(fin)
	if err != nil {
		return nil, err
	}

	err = hdr.Validate()
	if err != nil {
		return nil, err
	}

	geo, err := hdr.Geometry()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Header:   hdr,
		Geometry: geo,
	}

	log.Info("Reading ramdisk")
	res.Ramdisk, res.Compression, err = extractRamdisk(fin, geo.Ramdisk, dir)
	if err != nil {
		return nil, err
	}

	log.Info("Reading dtb")
	res.Dtb, err = extractSegment(fin, geo.Dtb, "dtb", dir, DtbArtifact)
	if err != nil {
		return nil, err
	}

	if opts.Decompress {
		log.Info("Decompressing ramdisk")
		res.RamdiskCpio, err = decompressRamdisk(fin, geo.Ramdisk, dir, res.Compression)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

// extractSegment copies one segment into its artifact. The segment buffer
// does not outlive this call.
func extractSegment(fin io.ReadSeeker, seg Segment, label, dir, name string) (*Artifact, error) {
	buf, err := ReadSegment(fin, seg, label)
	if err != nil {
		return nil, err
	}

	return WriteArtifact(dir, name, buf)
}

func extractRamdisk(fin io.ReadSeeker, seg Segment, dir string) (art *Artifact, cMode Compression, err error) {
	buf, err := ReadSegment(fin, seg, "ramdisk")
	if err != nil {
		return
	}

	art, err = WriteArtifact(dir, RamdiskArtifact, buf)
	if err != nil {
		return
	}

	cMode = DetectCompressor(buf)
	log.WithField("compression", cMode).Debug("Detected ramdisk compression")
	return
}

// decompressRamdisk reads the ramdisk segment again and writes its inflated
// contents. It runs after the required artifacts are in place.
func decompressRamdisk(fin io.ReadSeeker, seg Segment, dir string, cMode Compression) (*Artifact, error) {
	if cMode != CompGzip {
		return nil, eFormat(fmt.Errorf("%s %w", cMode, ErrUnsupported), "preparing to extract ramdisk")
	}

	buf, err := ReadSegment(fin, seg, "ramdisk")
	if err != nil {
		return nil, err
	}

	cpio, err := DecompressRamdisk(buf, cMode)
	if err != nil {
		return nil, err
	}

	return WriteArtifact(dir, DecompressedRamdiskArtifact, cpio)
}
