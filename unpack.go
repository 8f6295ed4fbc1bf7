package vendorboot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/apex/log"
)

// Pages returns the number of whole pages needed to hold size bytes.
func Pages(size uint32, pageSize uint32) (uint64, error) {
	if pageSize == 0 {
		return 0, ErrZeroPageSize
	}

	return (uint64(size) + uint64(pageSize) - 1) / uint64(pageSize), nil
}

// Align rounds size up to the next multiple of pageSize.
func Align(size uint32, pageSize uint32) (uint64, error) {
	pages, err := Pages(size, pageSize)
	if err != nil {
		return 0, err
	}

	return pages * uint64(pageSize), nil
}

// ReadHeader reads and decodes the fixed-size header from the start of fin
// and checks its magic. No other field is validated here.
func ReadHeader(fin io.Reader) (*Header, error) {
	headerBuf := make([]byte, VendorHeaderSize)
	_, err := io.ReadFull(fin, headerBuf)
	if err != nil {
		return nil, eMsg(KindRead, ioReason(err), "reading header")
	}

	var hdr Header
	err = binary.Read(bytes.NewReader(headerBuf), binary.LittleEndian, &hdr.RawHeader)
	if err != nil {
		return nil, eFormat(err, "decoding header")
	}

	if !hdr.ValidMagic() {
		return nil, eFormat(fmt.Errorf("%w; magic = '%s'", ErrBadMagic, Escape(hdr.Magic[:])), "checking magic")
	}

	log.WithFields(log.Fields{
		"version":   hdr.HeaderVersion,
		"page_size": hdr.PageSize,
		"declared":  hdr.HeaderSize,
	}).Debug("Decoded header")

	return &hdr, nil
}

// ReadSegment seeks fin to seg.Offset and reads exactly seg.Length bytes
// into a newly allocated buffer. name labels the segment in errors. A segment
// reaching past the end of fin fails with KindRead without reading.
func ReadSegment(fin io.ReadSeeker, seg Segment, name string) ([]byte, error) {
	if seg.Offset > uint64(1<<63-1) {
		return nil, eMsg(KindSeek, fmt.Errorf("offset %#x out of range", seg.Offset), "seeking to "+name)
	}

	// A corrupt size must fail before the buffer is allocated.
	size, err := fin.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, eMsg(KindSeek, err, "seeking to end of input")
	}

	if seg.Length > 0 && seg.End() > uint64(size) {
		short := io.ErrUnexpectedEOF
		if seg.Offset >= uint64(size) {
			short = io.EOF
		}
		return nil, eMsg(KindRead, ioReason(short), "reading "+name)
	}

	_, err = fin.Seek(int64(seg.Offset), io.SeekStart)
	if err != nil {
		return nil, eMsg(KindSeek, err, "seeking to "+name)
	}

	log.WithFields(log.Fields{
		"offset": seg.Offset,
		"size":   seg.Length,
	}).Debugf("Reading %s segment", name)

	buf := make([]byte, seg.Length)
	_, err = io.ReadFull(fin, buf)
	if err != nil {
		return nil, eMsg(KindRead, ioReason(err), "reading "+name)
	}

	return buf, nil
}
