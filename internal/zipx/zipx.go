// Package zipx extracts a single named entry from a ZIP archive by walking
// the sequential local file headers. The dataset provider packages exactly
// one payload file per archive, so there is no central directory handling,
// no multi-disk support and no encryption: just the minimal header walk plus
// stored/deflate decompression.
package zipx

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"errors"
	"io"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrEntryNotFound     = errors.New("entry not found in archive")
	ErrTruncatedArchive  = errors.New("truncated archive")
	ErrUnsupportedMethod = errors.New("unsupported compression method")
	ErrSizeMismatch      = errors.New("stored entry size mismatch")
	ErrDecompressFailed  = errors.New("decompression failed")
)

// Compression methods of the ZIP format subset the provider uses.
const (
	MethodStored  uint16 = 0
	MethodDeflate uint16 = 8
)

// Local file header layout (PKZIP appnote 4.3.7).
const (
	localHeaderSignature = 0x04034b50
	localHeaderSize      = 30

	offMethod           = 8
	offCompressedSize   = 18
	offUncompressedSize = 22
	offNameLength       = 26
	offExtraLength      = 28
)

// Extract walks the archive's local file headers from offset 0 and returns
// the decompressed bytes of the entry named name. The walk stops at the
// first non-header signature (normally the central directory).
func Extract(archive []byte, name string) ([]byte, error) {
	offset := 0

	for {
		if offset+localHeaderSize > len(archive) {
			break
		}

		sig := binary.LittleEndian.Uint32(archive[offset:])
		if sig != localHeaderSignature {
			// End of local entries.
			break
		}

		header := archive[offset : offset+localHeaderSize]
		method := binary.LittleEndian.Uint16(header[offMethod:])
		compressedSize := int(binary.LittleEndian.Uint32(header[offCompressedSize:]))
		uncompressedSize := int(binary.LittleEndian.Uint32(header[offUncompressedSize:]))
		nameLength := int(binary.LittleEndian.Uint16(header[offNameLength:]))
		extraLength := int(binary.LittleEndian.Uint16(header[offExtraLength:]))

		nameStart := offset + localHeaderSize
		nameEnd := nameStart + nameLength
		if nameEnd > len(archive) {
			return nil, pkgerrors.Wrapf(ErrTruncatedArchive, "entry name at offset %d", offset)
		}
		entryName := string(archive[nameStart:nameEnd])

		dataStart := nameEnd + extraLength
		dataEnd := dataStart + compressedSize
		if dataEnd > len(archive) {
			return nil, pkgerrors.Wrapf(ErrTruncatedArchive, "entry %q payload extends past archive end", entryName)
		}

		if entryName == name {
			return Decompress(method, archive[dataStart:dataEnd], uncompressedSize)
		}

		offset = dataEnd
	}

	return nil, pkgerrors.Wrapf(ErrEntryNotFound, "entry %q", name)
}

// Decompress decodes one compressed block given its method tag and expected
// output size.
func Decompress(method uint16, compressed []byte, expectedSize int) ([]byte, error) {
	switch method {
	case MethodStored:
		if len(compressed) != expectedSize {
			return nil, pkgerrors.Wrapf(ErrSizeMismatch, "stored entry is %d bytes, header says %d", len(compressed), expectedSize)
		}
		return compressed, nil

	case MethodDeflate:
		r := flate.NewReader(bytes.NewReader(compressed))
		defer r.Close()

		out := make([]byte, expectedSize)
		n, err := io.ReadFull(r, out)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return nil, pkgerrors.Wrap(ErrDecompressFailed, err.Error())
		}
		if n != expectedSize {
			return nil, pkgerrors.Wrapf(ErrDecompressFailed, "inflated %d bytes, expected %d", n, expectedSize)
		}
		return out, nil

	default:
		return nil, pkgerrors.Wrapf(ErrUnsupportedMethod, "method %d", method)
	}
}
