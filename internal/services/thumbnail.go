package services

import (
	"bytes"
	"context"
	"image"
	"path"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
)

const thumbnailWidth = 320

// generateThumbnail downscales an uploaded image to a fixed-width JPEG for
// listing views. Height follows the aspect ratio.
func generateThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func thumbnailFilename(filename string) string {
	return strings.TrimSuffix(filename, path.Ext(filename)) + "_thumb.jpg"
}

// storeImage uploads the original and, best-effort, a thumbnail beside it. A
// thumbnail that cannot be generated or stored leaves the thumbnail pair empty
// without failing the upload.
func storeImage(ctx context.Context, store ImageStore, f ImageFile) (models.Image, error) {
	url, key, err := store.Upload(ctx, f.Filename, f.ContentType, f.Data)
	if err != nil {
		return models.Image{}, err
	}
	img := models.Image{URL: url, Key: key}

	thumb, err := generateThumbnail(f.Data)
	if err != nil {
		return img, nil
	}
	if turl, tkey, terr := store.Upload(ctx, thumbnailFilename(f.Filename), "image/jpeg", thumb); terr == nil {
		img.ThumbnailURL = turl
		img.ThumbnailKey = tkey
	}
	return img, nil
}
