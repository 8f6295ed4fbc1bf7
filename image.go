package vendorboot

// Vendor boot image format constants
const (
	VendorBootMagic     = "VNDRBOOT"
	VendorBootMagicSize = 8
	VendorBootArgsSize  = 2048
	VendorBootNameSize  = 16

	// VendorHeaderSize is the on-disk size of RawHeader. Alignment math
	// always uses this value, never RawHeader.HeaderSize.
	VendorHeaderSize = 2112
)

// Output artifact names
const (
	RamdiskArtifact             = "vendor_ramdisk.img"
	DtbArtifact                 = "vendor_dtb.img"
	DecompressedRamdiskArtifact = "vendor_ramdisk.cpio"
)

// VendorBootMagicBytes is the header magic number, in byte array form
var VendorBootMagicBytes = [...]byte{'V', 'N', 'D', 'R', 'B', 'O', 'O', 'T'}

// RawHeader directly correlates to the vendor boot image header.
//
// The layout below is exactly VendorHeaderSize bytes when decoded with
// encoding/binary; there is no implicit padding.
type RawHeader struct {
	// Vendor boot header magic
	Magic [VendorBootMagicSize]byte
	// Header format version
	HeaderVersion uint32
	// Flash page size we assume
	PageSize uint32

	// Kernel physical load address
	KernelAddr uint32
	// Ramdisk physical load address
	RamdiskAddr uint32

	// Size of the vendor ramdisk in bytes
	VendorRamdiskSize uint32

	// Kernel command line
	Cmdline [VendorBootArgsSize]byte

	// Kernel tags physical load address
	TagsAddr uint32

	// Product name
	Name [VendorBootNameSize]byte
	// Size of the header as declared by the image. Not trusted for seeking.
	HeaderSize uint32

	// Size of the device tree blob in bytes
	DtbSize uint32
	// Device tree physical load address
	DtbAddr uint64
}

// Header is a parsed vendor boot image header.
type Header struct {
	RawHeader
}

// Cmdline returns the kernel command line, bounded to its field.
func (h *Header) Cmdline() CString {
	return NewCString(h.RawHeader.Cmdline[:])
}

// Name returns the product name, bounded to its field.
func (h *Header) Name() CString {
	return NewCString(h.RawHeader.Name[:])
}

// ValidMagic reports whether the header starts with VendorBootMagic.
func (h *Header) ValidMagic() bool {
	return h.Magic == VendorBootMagicBytes
}

// Geometry computes the page-aligned offsets of the segments that follow the
// header. It fails with KindFormat if the page size is zero.
func (h *Header) Geometry() (Geometry, error) {
	hdrAligned, err := Align(VendorHeaderSize, h.PageSize)
	if err != nil {
		return Geometry{}, eFormat(err, "aligning header")
	}

	rdAligned, err := Align(h.VendorRamdiskSize, h.PageSize)
	if err != nil {
		return Geometry{}, eFormat(err, "aligning ramdisk")
	}

	return Geometry{
		Ramdisk: Segment{Offset: hdrAligned, Length: h.VendorRamdiskSize},
		Dtb:     Segment{Offset: hdrAligned + rdAligned, Length: h.DtbSize},
	}, nil
}

// Validate checks the invariants every well-formed image satisfies beyond
// its magic: a nonzero page size and nonempty ramdisk and dtb segments.
func (h *Header) Validate() error {
	if h.PageSize == 0 {
		return eFormat(ErrZeroPageSize, "validating header")
	}
	if h.VendorRamdiskSize == 0 {
		return eFormat(errEmpty("ramdisk"), "validating header")
	}
	if h.DtbSize == 0 {
		return eFormat(errEmpty("dtb"), "validating header")
	}

	return nil
}

// Segment is a region of the image holding one payload.
type Segment struct {
	Offset uint64
	Length uint32
}

// End returns the offset just past the segment's payload, excluding padding.
func (s Segment) End() uint64 {
	return s.Offset + uint64(s.Length)
}

// Geometry holds the segment layout derived from a Header.
type Geometry struct {
	Ramdisk Segment
	Dtb     Segment
}
