package vendorboot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
)

// Artifact describes one written output file.
type Artifact struct {
	Path   string
	Size   int
	Digest uint64 // XXH64 of the contents
}

func (a *Artifact) String() string {
	return fmt.Sprintf("%s (%s, xxh64 %016x)", a.Path, humanize.Bytes(uint64(a.Size)), a.Digest)
}

// WriteArtifact writes data to dir/name. The data goes to a temporary file
// in dir first, which is renamed over dir/name only once every byte has been
// written and the file closed; on failure the temporary file is removed and
// any existing dir/name is left untouched.
func WriteArtifact(dir, name string, data []byte) (art *Artifact, err error) {
	path := filepath.Join(dir, name)
	log.WithField("path", path).Info("Writing artifact")

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return nil, eMsg(KindOpen, err, "creating "+name)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	out := WrapWriter(tmp)
	_, err = out.Write(data)
	if err != nil {
		return nil, eMsg(KindWrite, ioReason(err), "writing "+name)
	}

	err = tmp.Chmod(0644)
	if err != nil {
		return nil, eMsg(KindWrite, err, "setting mode of "+name)
	}

	err = tmp.Close()
	if err != nil {
		return nil, eMsg(KindWrite, err, "closing "+name)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return nil, eMsg(KindWrite, err, "renaming "+name+" into place")
	}

	return &Artifact{
		Path:   path,
		Size:   len(data),
		Digest: xxhash.Sum64(data),
	}, nil
}

// WrapWriter wraps an io.Writer to error whenever fewer bytes are written
// than requested.
func WrapWriter(orig io.Writer) io.Writer {
	return writerWrapper{
		orig: orig,
	}
}

// writerWrapper implements io.Writer for short write detection.
type writerWrapper struct {
	orig io.Writer
}

func (wr writerWrapper) Write(p []byte) (n int, err error) {
	n, err = wr.orig.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}

	return
}
