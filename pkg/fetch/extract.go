package fetch

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	xerrors "github.com/TeakSlack/VulkanProjects/pkg/errors"
)

// Extract unpacks archive into the directory containing it, not the
// current working directory: install targets always live beside the
// fetched file.
//
// Entry sizes are summed before extraction starts so progress callbacks
// are determinate. The first failing entry aborts the whole operation and
// the archive stays on disk for a retry without a re-download. When every
// entry extracted and deleteAfter is set, the archive file is removed.
func Extract(archive string, kind Kind, deleteAfter bool, progress Progress) error {
	var err error
	switch kind {
	case KindZip:
		err = extractZip(archive, progress)
	case KindTarGz, KindTarXz:
		err = extractTar(archive, kind, progress)
	default:
		return xerrors.New(xerrors.CodeArchive, "%s is not an extractable archive", filepath.Base(archive))
	}
	if err != nil {
		return err
	}
	if deleteAfter {
		return os.Remove(archive)
	}
	return nil
}

func extractZip(archive string, progress Progress) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return xerrors.Wrap(xerrors.CodeArchive, err, "open %s", filepath.Base(archive))
	}
	defer r.Close()

	dir := filepath.Dir(archive)

	var total int64
	for _, zf := range r.File {
		if !zf.FileInfo().IsDir() {
			total += int64(zf.UncompressedSize64)
		}
	}

	var done int64
	for _, zf := range r.File {
		if err := writeZipEntry(dir, zf); err != nil {
			return xerrors.Wrap(xerrors.CodeArchive, err, "extract %s", zf.Name)
		}
		if !zf.FileInfo().IsDir() {
			done += int64(zf.UncompressedSize64)
			if progress != nil {
				progress(done, total)
			}
		}
	}
	return nil
}

func writeZipEntry(dir string, zf *zip.File) error {
	target, err := entryPath(dir, zf.Name)
	if err != nil {
		return err
	}

	if zf.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	mode := zf.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func extractTar(archive string, kind Kind, progress Progress) error {
	base := filepath.Base(archive)

	// Tar carries no central directory, so the total for determinate
	// progress comes from a separate scan pass.
	total, err := tarTotalSize(archive, kind)
	if err != nil {
		return xerrors.Wrap(xerrors.CodeArchive, err, "scan %s", base)
	}

	f, err := os.Open(archive)
	if err != nil {
		return xerrors.Wrap(xerrors.CodeArchive, err, "open %s", base)
	}
	defer f.Close()

	tr, err := newTarReader(f, kind)
	if err != nil {
		return xerrors.Wrap(xerrors.CodeArchive, err, "open %s", base)
	}

	dir := filepath.Dir(archive)
	var done int64
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return xerrors.Wrap(xerrors.CodeArchive, err, "read %s", base)
		}
		if err := writeTarEntry(dir, hdr, tr); err != nil {
			return xerrors.Wrap(xerrors.CodeArchive, err, "extract %s", hdr.Name)
		}
		if hdr.Typeflag == tar.TypeReg {
			done += hdr.Size
			if progress != nil {
				progress(done, total)
			}
		}
	}
	return nil
}

func tarTotalSize(archive string, kind Kind) (int64, error) {
	f, err := os.Open(archive)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	tr, err := newTarReader(f, kind)
	if err != nil {
		return 0, err
	}

	var total int64
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return 0, err
		}
		if hdr.Typeflag == tar.TypeReg {
			total += hdr.Size
		}
	}
}

func newTarReader(f *os.File, kind Kind) (*tar.Reader, error) {
	switch kind {
	case KindTarGz:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		return tar.NewReader(gz), nil
	case KindTarXz:
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, err
		}
		return tar.NewReader(xzr), nil
	default:
		return nil, fmt.Errorf("not a tarball kind: %s", kind)
	}
}

func writeTarEntry(dir string, hdr *tar.Header, tr *tar.Reader) error {
	target, err := entryPath(dir, hdr.Name)
	if err != nil {
		return err
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(target, os.FileMode(hdr.Mode).Perm()|0o700)
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		mode := os.FileMode(hdr.Mode).Perm()
		if mode == 0 {
			mode = 0o644
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	case tar.TypeSymlink:
		if err := os.Symlink(hdr.Linkname, target); err != nil && !os.IsExist(err) {
			return err
		}
		return nil
	case tar.TypeLink:
		source, err := entryPath(dir, hdr.Linkname)
		if err != nil {
			return err
		}
		if err := os.Link(source, target); err != nil && !os.IsExist(err) {
			return err
		}
		return nil
	default:
		// PAX metadata and other special entries carry no payload.
		return nil
	}
}

// entryPath joins an archive entry name onto dir, rejecting names that
// would escape it.
func entryPath(dir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if cleaned == "." {
		return dir, nil
	}
	if filepath.IsAbs(cleaned) || !filepath.IsLocal(cleaned) {
		return "", fmt.Errorf("entry %q escapes the archive directory", name)
	}
	return filepath.Join(dir, cleaned), nil
}
