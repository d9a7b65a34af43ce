package staticpub

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// assetPathPrefix is where published post assets live under the output
	// root, keyed by post id.
	assetPathPrefix = "blog"

	// coverThumbName is the generated listing thumbnail for posts with a
	// cover asset.
	coverThumbName = "cover_thumb.jpg"

	maxThumbWidth    = 800
	thumbJPEGQuality = 80
)

// Publisher stages a post's co-located assets into the public output tree.
// Publishing is additive: it only writes files named after the post's own
// assets and never clears the destination, so unrelated output is safe.
type Publisher struct {
	store  *SourceStore
	outDir string
}

// NewPublisher creates a Publisher writing under outDir.
func NewPublisher(store *SourceStore, outDir string) *Publisher {
	return &Publisher{store: store, outDir: outDir}
}

// AssetURL maps a post-relative asset filename to its published public path.
// This is the URL-rewriting helper handed to the Markdown renderer.
func AssetURL(id, filename string) string {
	return "/" + path.Join(assetPathPrefix, id, filename)
}

// Publish copies every non-Markdown file from the post's source folder to
// <out>/blog/<id>/ and, when a cover asset exists, emits a downscaled JPEG
// thumbnail alongside it. Re-running against an unchanged source produces
// byte-identical output. Returns the published filenames.
func (p *Publisher) Publish(id string) ([]string, error) {
	if !p.store.Exists(id) {
		return nil, &NotFoundError{ID: id}
	}
	assets, err := p.store.Assets(id)
	if err != nil {
		return nil, err
	}
	destDir := filepath.Join(p.outDir, assetPathPrefix, id)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, &IOError{ID: id, Op: "create asset dir", Err: err}
	}

	published := make([]string, 0, len(assets)+1)
	for _, name := range assets {
		src := filepath.Join(p.store.Root(), id, name)
		if err := copyFile(src, filepath.Join(destDir, name)); err != nil {
			return nil, &IOError{ID: id, Op: "publish " + name, Err: err}
		}
		published = append(published, name)
	}

	if cover := p.store.CoverName(id); cover != "" {
		src := filepath.Join(p.store.Root(), id, cover)
		if err := writeThumbnail(src, filepath.Join(destDir, coverThumbName)); err != nil {
			return nil, &IOError{ID: id, Op: "thumbnail " + cover, Err: err}
		}
		published = append(published, coverThumbName)
	}
	return published, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// writeThumbnail decodes the cover image, downscales it to maxThumbWidth
// when wider, and encodes it as JPEG. Decoding and encoding are both
// deterministic, so unchanged covers yield unchanged thumbnails.
func writeThumbnail(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxThumbWidth {
		newH := h * maxThumbWidth / w
		scaled := image.NewRGBA(image.Rect(0, 0, maxThumbWidth, newH))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: thumbJPEGQuality}); err != nil {
		return err
	}
	return os.WriteFile(dst, buf.Bytes(), 0o644)
}
