// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/word2md/internal/docx"
	"github.com/pdiddy/word2md/pkg/types"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepare_ClearsExistingDirectory(t *testing.T) {
	out := t.TempDir()
	stale := filepath.Join(out, "images", "old.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	e, err := New(out, types.ImageConfig{})
	require.NoError(t, err)
	require.NoError(t, e.Prepare())

	entries, err := os.ReadDir(e.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNew_RejectsUnsafeDir(t *testing.T) {
	out := t.TempDir()
	keep := filepath.Join(out, "notes.txt")
	require.NoError(t, os.WriteFile(keep, []byte("keep"), 0o644))

	for _, dir := range []string{".", "..", "/", "/tmp/images", "a/../..", "a/b", `a\b`} {
		t.Run(dir, func(t *testing.T) {
			e, err := New(out, types.ImageConfig{Dir: dir})
			require.ErrorIs(t, err, ErrInvalidDir)
			assert.Nil(t, e)
		})
	}
	assert.FileExists(t, keep)

	e, err := New(out, types.ImageConfig{Dir: "assets.v2"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "assets.v2"), e.Dir())
}

func TestSave(t *testing.T) {
	data := pngBytes(t)
	media := docx.Media{RelID: "rId4", Target: "word/media/image1.png", Data: data}

	tests := []struct {
		name     string
		cfg      types.ImageConfig
		wantLink string
		check    func(t *testing.T, written []byte)
	}{
		{
			name:     "jpg keeps raw bytes",
			cfg:      types.ImageConfig{Format: types.ImageJPG},
			wantLink: "images/2-1.jpg",
			check: func(t *testing.T, written []byte) {
				assert.Equal(t, data, written)
			},
		},
		{
			name:     "native uses detected extension",
			cfg:      types.ImageConfig{Format: types.ImageNative},
			wantLink: "images/2-1.png",
			check: func(t *testing.T, written []byte) {
				assert.Equal(t, data, written)
			},
		},
		{
			name:     "jpeg re-encodes",
			cfg:      types.ImageConfig{Format: types.ImageJPEG},
			wantLink: "images/2-1.jpg",
			check: func(t *testing.T, written []byte) {
				_, err := jpeg.Decode(bytes.NewReader(written))
				assert.NoError(t, err)
			},
		},
		{
			name:     "custom directory name",
			cfg:      types.ImageConfig{Dir: "assets"},
			wantLink: "assets/2-1.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := t.TempDir()
			e, err := New(out, tt.cfg)
			require.NoError(t, err)
			require.NoError(t, e.Prepare())

			link, err := e.Save(2, 1, media)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLink, link)
			assert.Equal(t, 1, e.Saved())

			written, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(tt.wantLink)))
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, written)
			}
		})
	}
}

func TestSave_UndecodableFallsBackToPartExtension(t *testing.T) {
	out := t.TempDir()
	e, err := New(out, types.ImageConfig{Format: types.ImageJPEG})
	require.NoError(t, err)
	require.NoError(t, e.Prepare())

	link, err := e.Save(1, 3, docx.Media{Target: "word/media/image3.emf", Data: []byte("EMF data")})
	require.NoError(t, err)
	assert.Equal(t, "images/1-3.emf", link)
}

func TestNativeExt_NoHints(t *testing.T) {
	assert.Equal(t, "bin", nativeExt(docx.Media{Target: "word/media/blob", Data: []byte("??")}))
}
