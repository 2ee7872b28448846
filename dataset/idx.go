package dataset

import (
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	imageMagic = 2051
	labelMagic = 2049

	// maxSide bounds each image dimension read from a header.
	maxSide = 1 << 14
)

// FormatError describes a malformed IDX file.
type FormatError struct {
	Path    string
	Details string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("idx %s: %s", e.Path, e.Details)
}

// open returns a reader over path, decompressing it when the name ends in .gz.
func open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return file, nil
	}
	zr, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("gzip %s: %w", path, err)
	}
	return &gzipFile{Reader: zr, file: file}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	ferr := g.file.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

// ReadImages reads an IDX image file.
//
//	magic number: 0x00000803 (2051)
//	number of images, rows, cols: 4 bytes each
//	pixel data: unsigned bytes, row-major
func ReadImages(path string, limit int) (pixels []byte, count, rows, cols int, err error) {
	r, err := open(path)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	defer r.Close()

	var header [4]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, 0, 0, 0, fmt.Errorf("read header: %w", err)
	}
	if header[0] != imageMagic {
		return nil, 0, 0, 0, &FormatError{Path: path, Details: fmt.Sprintf("invalid magic number: got %d, want %d", header[0], imageMagic)}
	}
	count, rows, cols = int(header[1]), int(header[2]), int(header[3])
	if rows == 0 || cols == 0 || rows > maxSide || cols > maxSide {
		return nil, 0, 0, 0, &FormatError{Path: path, Details: fmt.Sprintf("invalid image size %dx%d", rows, cols)}
	}
	if limit > 0 && count > limit {
		count = limit
	}

	pixels, err = readBody(r, path, int64(count)*int64(rows*cols))
	if err != nil {
		return nil, 0, 0, 0, err
	}
	return pixels, count, rows, cols, nil
}

// ReadLabels reads an IDX label file.
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes
func ReadLabels(path string, limit int) ([]byte, error) {
	r, err := open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var header [2]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header[0] != labelMagic {
		return nil, &FormatError{Path: path, Details: fmt.Sprintf("invalid magic number: got %d, want %d", header[0], labelMagic)}
	}
	count := int(header[1])
	if limit > 0 && count > limit {
		count = limit
	}

	return readBody(r, path, int64(count))
}

// readBody reads exactly size bytes. The buffer grows with the data actually
// present, so a header that overstates the count fails without allocating
// the declared size.
func readBody(r io.Reader, path string, size int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, size))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(body)) < size {
		return nil, &FormatError{Path: path, Details: fmt.Sprintf("truncated: header declares %d data bytes, file holds %d", size, len(body))}
	}
	return body, nil
}
