// Package peversion reads the file version stamped into a Windows PE image.
package peversion

import (
	"debug/pe"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/tianmenglucky/lbe-installer/internal/version"
)

// ErrNoVersion means the image carries no VS_FIXEDFILEINFO block.
var ErrNoVersion = errors.New("no version resource")

// fixedFileInfoSignature opens every VS_FIXEDFILEINFO structure.
const fixedFileInfoSignature = 0xFEEF04BD

// fixedFileInfoSize covers signature, struct version and the four version words.
const fixedFileInfoSize = 24

// Read returns the file version of the PE image at path.
func Read(path string) (version.Version, error) {
	f, err := pe.Open(path)
	if err != nil {
		return version.Version{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sec := f.Section(".rsrc")
	if sec == nil {
		return version.Version{}, fmt.Errorf("%s: %w", path, ErrNoVersion)
	}
	data, err := sec.Data()
	if err != nil {
		return version.Version{}, fmt.Errorf("reading resources of %s: %w", path, err)
	}

	v, err := FromResource(data)
	if err != nil {
		return version.Version{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// FromResource scans raw resource bytes for the first VS_FIXEDFILEINFO and
// decodes its file version. The structure is DWORD aligned.
func FromResource(data []byte) (version.Version, error) {
	for off := 0; off+fixedFileInfoSize <= len(data); off += 4 {
		if binary.LittleEndian.Uint32(data[off:]) != fixedFileInfoSignature {
			continue
		}
		ms := binary.LittleEndian.Uint32(data[off+8:])
		ls := binary.LittleEndian.Uint32(data[off+12:])
		return version.New(
			int(ms>>16),
			int(ms&0xFFFF),
			int(ls>>16),
			int(ls&0xFFFF),
		), nil
	}
	return version.Version{}, ErrNoVersion
}
