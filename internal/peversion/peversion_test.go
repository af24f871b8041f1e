package peversion

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func fixedFileInfo(major, minor, build, rev uint16) []byte {
	b := make([]byte, 52)
	binary.LittleEndian.PutUint32(b[0:], fixedFileInfoSignature)
	binary.LittleEndian.PutUint32(b[4:], 0x00010000)
	binary.LittleEndian.PutUint32(b[8:], uint32(major)<<16|uint32(minor))
	binary.LittleEndian.PutUint32(b[12:], uint32(build)<<16|uint32(rev))
	// Product version differs so a mix-up is visible.
	binary.LittleEndian.PutUint32(b[16:], 9<<16|9)
	binary.LittleEndian.PutUint32(b[20:], 9<<16|9)
	return b
}

func TestFromResource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr bool
	}{
		{
			name: "at start",
			data: fixedFileInfo(1, 2, 3, 4),
			want: "1.2.3.4",
		},
		{
			name: "after header bytes",
			data: append(append(make([]byte, 40), []byte("VS_VERSION_INFO\x00")...), fixedFileInfo(2, 0, 0, 0)...),
			want: "2.0.0.0",
		},
		{
			name:    "unaligned signature ignored",
			data:    append(make([]byte, 2), fixedFileInfo(1, 0, 0, 0)...),
			wantErr: true,
		},
		{
			name:    "truncated",
			data:    fixedFileInfo(1, 0, 0, 0)[:12],
			wantErr: true,
		},
		{
			name:    "empty",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, err := FromResource(tt.data)
			if tt.wantErr {
				if !errors.Is(err, ErrNoVersion) {
					t.Fatalf("FromResource error=%v want ErrNoVersion", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromResource failed: %v", err)
			}
			if v.String() != tt.want {
				t.Fatalf("FromResource=%s want=%s", v, tt.want)
			}
		})
	}
}

func TestReadRejectsNonPE(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "LiarsBarEnhance.dll")
	if err := os.WriteFile(path, []byte("not a portable executable"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Fatalf("expected error for a non-PE file")
	}
}
