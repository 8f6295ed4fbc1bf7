package vendorboot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNoArtifacts(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExtract(t *testing.T) {
	ti := newTestImage()
	dir := t.TempDir()

	res, err := Extract(ti.write(t), Options{OutputDir: dir})
	require.NoError(t, err)

	ramdisk, err := os.ReadFile(filepath.Join(dir, RamdiskArtifact))
	require.NoError(t, err)
	assert.Len(t, ramdisk, 10)
	assert.Equal(t, ti.ramdisk, ramdisk)

	dtb, err := os.ReadFile(filepath.Join(dir, DtbArtifact))
	require.NoError(t, err)
	assert.Len(t, dtb, 5)
	assert.Equal(t, ti.dtb, dtb)

	assert.Equal(t, 10, res.Ramdisk.Size)
	assert.Equal(t, 5, res.Dtb.Size)
	assert.Nil(t, res.RamdiskCpio)
	assert.Equal(t, CompUnknown, res.Compression)
	assert.Equal(t, ti.cmdline, res.Header.Cmdline().String())
	assert.Equal(t, ti.name, res.Header.Name().String())
}

func TestExtractPageSizes(t *testing.T) {
	for _, pageSize := range []uint32{512, 2048, 4096, 16384} {
		ti := newTestImage()
		ti.pageSize = pageSize
		ti.ramdisk = bytes.Repeat([]byte{0xa5}, 5000)
		ti.dtb = bytes.Repeat([]byte{0x5a}, 3000)
		dir := t.TempDir()

		_, err := ExtractFrom(bytes.NewReader(ti.bytes(t)), Options{OutputDir: dir})
		require.NoError(t, err, "page size %d", pageSize)

		ramdisk, err := os.ReadFile(filepath.Join(dir, RamdiskArtifact))
		require.NoError(t, err)
		assert.Equal(t, ti.ramdisk, ramdisk)

		dtb, err := os.ReadFile(filepath.Join(dir, DtbArtifact))
		require.NoError(t, err)
		assert.Equal(t, ti.dtb, dtb)
	}
}

func TestExtractUnterminatedStrings(t *testing.T) {
	ti := newTestImage()
	ti.name = "0123456789abcdefOVERFLOW"
	ti.cmdline = string(bytes.Repeat([]byte("x"), VendorBootArgsSize))

	res, err := ExtractFrom(bytes.NewReader(ti.bytes(t)), Options{OutputDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", res.Header.Name().String())
	assert.Len(t, res.Header.Cmdline().Raw(), VendorBootArgsSize)
}

func TestExtractBadMagic(t *testing.T) {
	ti := newTestImage()
	ti.magic = "\x7fELF\x02\x01\x01\x00"
	dir := t.TempDir()

	stale := filepath.Join(dir, RamdiskArtifact)
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0644))

	_, err := ExtractFrom(bytes.NewReader(ti.bytes(t)), Options{OutputDir: dir})
	require.Error(t, err)
	assert.Equal(t, KindFormat, KindOf(err))
	assert.ErrorIs(t, err, ErrBadMagic)

	got, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.Equal(t, []byte("stale"), got)
	_, err = os.Stat(filepath.Join(dir, DtbArtifact))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractZeroPageSize(t *testing.T) {
	ti := newTestImage()
	ti.pageSize = 0
	dir := t.TempDir()

	_, err := ExtractFrom(bytes.NewReader(ti.bytes(t)), Options{OutputDir: dir})
	require.Error(t, err)
	assert.Equal(t, KindFormat, KindOf(err))
	assert.ErrorIs(t, err, ErrZeroPageSize)
	assertNoArtifacts(t, dir)
}

func TestExtractEmptySegments(t *testing.T) {
	for _, seg := range []string{"ramdisk", "dtb"} {
		t.Run(seg, func(t *testing.T) {
			ti := newTestImage()
			if seg == "ramdisk" {
				ti.ramdisk = nil
			} else {
				ti.dtb = nil
			}
			dir := t.TempDir()

			_, err := ExtractFrom(bytes.NewReader(ti.bytes(t)), Options{OutputDir: dir})
			require.Error(t, err)
			assert.Equal(t, KindFormat, KindOf(err))
			assert.ErrorIs(t, err, ErrEmptySegment)
			assertNoArtifacts(t, dir)
		})
	}
}

func TestExtractTruncatedRamdisk(t *testing.T) {
	ti := newTestImage()
	ti.ramdiskSize = 1 << 20
	dir := t.TempDir()

	_, err := ExtractFrom(bytes.NewReader(ti.bytes(t)), Options{OutputDir: dir})
	require.Error(t, err)
	assert.Equal(t, KindRead, KindOf(err))
	assertNoArtifacts(t, dir)
}

func TestExtractTruncatedDtb(t *testing.T) {
	ti := newTestImage()
	ti.truncate = 2
	dir := t.TempDir()

	_, err := ExtractFrom(bytes.NewReader(ti.bytes(t)), Options{OutputDir: dir})
	require.Error(t, err)
	assert.Equal(t, KindRead, KindOf(err))
	assert.Equal(t, []string{"reading dtb", "end of file reached: unexpected EOF"}, GetErrors(err))

	// The ramdisk step had already completed.
	_, err = os.Stat(filepath.Join(dir, RamdiskArtifact))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, DtbArtifact))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractDecompress(t *testing.T) {
	cpio := bytes.Repeat([]byte("070701"), 100)
	ti := newTestImage()
	ti.ramdisk = gzipBytes(t, cpio)
	dir := t.TempDir()

	res, err := ExtractFrom(bytes.NewReader(ti.bytes(t)), Options{OutputDir: dir, Decompress: true})
	require.NoError(t, err)
	assert.Equal(t, CompGzip, res.Compression)
	require.NotNil(t, res.RamdiskCpio)

	got, err := os.ReadFile(filepath.Join(dir, DecompressedRamdiskArtifact))
	require.NoError(t, err)
	assert.Equal(t, cpio, got)
}

func TestExtractDecompressUnsupported(t *testing.T) {
	ti := newTestImage()
	ti.ramdisk = []byte{0x04, 0x22, 0x4d, 0x18, 0x64}

	dir := t.TempDir()

	_, err := ExtractFrom(bytes.NewReader(ti.bytes(t)), Options{OutputDir: dir, Decompress: true})
	assert.ErrorIs(t, err, ErrUnsupported)

	// The required artifacts are written before decompression is tried.
	ramdisk, err := os.ReadFile(filepath.Join(dir, RamdiskArtifact))
	require.NoError(t, err)
	assert.Equal(t, ti.ramdisk, ramdisk)

	dtb, err := os.ReadFile(filepath.Join(dir, DtbArtifact))
	require.NoError(t, err)
	assert.Equal(t, ti.dtb, dtb)

	_, err = os.Stat(filepath.Join(dir, DecompressedRamdiskArtifact))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractDecompressPlainRamdisk(t *testing.T) {
	ti := newTestImage()
	dir := t.TempDir()

	_, err := ExtractFrom(bytes.NewReader(ti.bytes(t)), Options{OutputDir: dir, Decompress: true})
	require.Error(t, err)
	assert.Equal(t, KindFormat, KindOf(err))

	dtb, err := os.ReadFile(filepath.Join(dir, DtbArtifact))
	require.NoError(t, err)
	assert.Equal(t, ti.dtb, dtb)
}

func TestExtractMissingInput(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "nope.img"), Options{})
	require.Error(t, err)
	assert.Equal(t, KindOpen, KindOf(err))
}
