package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// maxBinarySize bounds how much a single archive entry may expand to.
const maxBinarySize = 256 << 20

func verifyChecksum(data []byte, want string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != strings.ToLower(want) {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, want, got)
	}
	return nil
}

// extractBinary pulls the executable named exe out of a release archive.
// Entries are matched on their base name since archives may nest the
// binary under a versioned directory.
func extractBinary(data []byte, archive, exe string) ([]byte, error) {
	if strings.HasSuffix(archive, ".zip") {
		return fromZip(data, exe)
	}
	return fromTarGz(data, exe)
}

func fromTarGz(data []byte, exe string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s not found in archive", exe)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == exe {
			return readLimited(tr)
		}
	}
}

func fromZip(data []byte, exe string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || path.Base(f.Name) != exe {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		defer func() { _ = rc.Close() }()
		return readLimited(rc)
	}
	return nil, fmt.Errorf("%s not found in archive", exe)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBinarySize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBinarySize {
		return nil, fmt.Errorf("binary exceeds %d bytes", maxBinarySize)
	}
	if len(data) == 0 {
		return nil, errors.New("binary is empty")
	}
	return data, nil
}
