// Package archive unpacks zip, tar and gzip files into a directory.
package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

// Format is an archive container recognised by file name.
type Format int

const (
	FormatUnknown Format = iota
	FormatZip
	FormatTar
	FormatTarGz
	FormatGzip
)

func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTar:
		return "tar"
	case FormatTarGz:
		return "tar.gz"
	case FormatGzip:
		return "gzip"
	default:
		return "unknown"
	}
}

// Detect picks the format from the file name suffix, case-insensitively.
// A lone ".gz" is a single compressed file, not a tarball.
func Detect(name string) Format {
	lower := strings.ToLower(filepath.Base(name))
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip
	case strings.HasSuffix(lower, ".tar"):
		return FormatTar
	case strings.HasSuffix(lower, ".gz"):
		return FormatGzip
	default:
		return FormatUnknown
	}
}

// Extract unpacks src into dest, which must already exist.
//
// Errors:
//   - ErrUnsupported when the name has no recognised suffix
//   - ErrCorrupt when the content cannot be decoded or holds no entries
//   - ErrPathTraversal when an entry points outside dest
//   - the *fs.PathError from opening src, e.g. when it vanished
//
// Extraction stops at the first error and may leave entries behind in dest.
// Symlinks, hard links and device entries are skipped.
func Extract(src, dest string) error {
	return unpack(src, dest, diskSink{})
}

// Check decodes src completely without writing anything and returns the
// error Extract would return for a bad archive: ErrUnsupported, ErrCorrupt,
// ErrPathTraversal or the error from opening src.
func Check(src string) error {
	abs, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	// Entries are validated against a folder that is never created.
	return unpack(src, abs+".check", discardSink{})
}

func unpack(src, dest string, s sink) error {
	format := Detect(src)
	if format == FormatUnknown {
		return fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(src))
	}

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var n int
	switch format {
	case FormatZip:
		n, err = extractZip(f, dest, s)
	case FormatTar:
		n, err = extractTar(f, dest, s)
	case FormatTarGz:
		n, err = extractTarGz(f, dest, s)
	case FormatGzip:
		n, err = extractGzip(f, dest, gunzippedName(src), s)
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s has no entries", ErrCorrupt, filepath.Base(src))
	}
	return nil
}

func corrupt(err error) error {
	return fmt.Errorf("%w: %v", ErrCorrupt, err)
}

func extractZip(f *os.File, dest string, s sink) (int, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return 0, corrupt(err)
	}

	n := 0
	for _, zf := range zr.File {
		target, err := entryPath(dest, zf.Name)
		if err != nil {
			return n, err
		}

		mode := zf.Mode()
		switch {
		case mode.IsDir():
			if err := s.mkdir(target); err != nil {
				return n, err
			}
		case mode.IsRegular():
			rc, err := zf.Open()
			if err != nil {
				return n, corrupt(err)
			}
			err = s.write(target, rc, mode.Perm())
			_ = rc.Close()
			if err != nil {
				return n, err
			}
		default:
			continue
		}
		n++
	}
	return n, nil
}

func extractTarGz(f *os.File, dest string, s sink) (int, error) {
	gz, err := gzip.NewReader(f)
	if err != nil {
		return 0, corrupt(err)
	}
	defer func() { _ = gz.Close() }()
	return extractTar(gz, dest, s)
}

func extractTar(r io.Reader, dest string, s sink) (int, error) {
	tr := tar.NewReader(r)
	n := 0
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, corrupt(err)
		}

		target, err := entryPath(dest, hdr.Name)
		if err != nil {
			return n, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := s.mkdir(target); err != nil {
				return n, err
			}
		case tar.TypeReg:
			if err := s.write(target, tr, fs.FileMode(hdr.Mode).Perm()); err != nil {
				return n, err
			}
		default:
			continue
		}
		n++
	}
}

func extractGzip(f *os.File, dest, name string, s sink) (int, error) {
	gz, err := gzip.NewReader(f)
	if err != nil {
		return 0, corrupt(err)
	}
	defer func() { _ = gz.Close() }()

	target, err := entryPath(dest, name)
	if err != nil {
		return 0, err
	}
	if err := s.write(target, gz, 0o644); err != nil {
		return 0, err
	}
	return 1, nil
}

// gunzippedName is the file name a plain .gz decompresses to.
func gunzippedName(src string) string {
	base := filepath.Base(src)
	name := base[:len(base)-len(".gz")]
	if name == "" || name == "." || name == ".." {
		return "content"
	}
	return name
}

// sink receives the entries of an archive.
type sink interface {
	mkdir(path string) error
	write(target string, r io.Reader, perm fs.FileMode) error
}

type diskSink struct{}

func (diskSink) mkdir(path string) error { return os.MkdirAll(path, 0o755) }

func (diskSink) write(target string, r io.Reader, perm fs.FileMode) error {
	return writeFile(target, r, perm)
}

// discardSink reads every entry to the end so damaged content is noticed.
type discardSink struct{}

func (discardSink) mkdir(string) error { return nil }

func (discardSink) write(_ string, r io.Reader, _ fs.FileMode) error {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return corrupt(err)
	}
	return nil
}

// writeFile streams r into target, creating parent directories.
// Read failures mean the archive is damaged and are reported as ErrCorrupt.
func writeFile(target string, r io.Reader, perm fs.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, readErrMarker{r}); err != nil {
		_ = out.Close()
		var re readError
		if errors.As(err, &re) {
			return corrupt(re.err)
		}
		return err
	}
	return out.Close()
}

// readErrMarker tags errors coming from the archive side of a copy so they
// can be told apart from write errors on the destination.
type readErrMarker struct{ r io.Reader }

func (m readErrMarker) Read(p []byte) (int, error) {
	n, err := m.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, readError{err}
	}
	return n, err
}

type readError struct{ err error }

func (e readError) Error() string { return e.err.Error() }
func (e readError) Unwrap() error { return e.err }
