package services

import (
	"bytes"
	"context"
	"io"
	"strings"

	"drivebox/config"
	"drivebox/logger"
	"drivebox/storage"

	"github.com/disintegration/imaging"
)

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/webp": true,
}

func isImageMime(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return imageMimeTypes[mimeType]
}

// makeThumbnail renders a JPEG thumbnail of an uploaded image and stores it
// as its own blob. Best effort: any failure is logged and the upload
// proceeds without a thumbnail.
func (s *fileService) makeThumbnail(ctx context.Context, content io.ReadSeeker, meta map[string]string) string {
	cfg := config.AppConfig.Thumbnail

	if _, err := content.Seek(0, io.SeekStart); err != nil {
		logger.Debugf("rewind upload for thumbnail: %v", err)
		return ""
	}

	img, err := imaging.Decode(content)
	if err != nil {
		logger.Debugf("decode uploaded image: %v", err)
		return ""
	}

	thumb := imaging.Fit(img, cfg.Width, cfg.Height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(cfg.Quality)); err != nil {
		logger.Debugf("encode thumbnail: %v", err)
		return ""
	}

	handle, err := s.blobs.Put(ctx, storage.PutInput{
		Reader:      bytes.NewReader(buf.Bytes()),
		Size:        int64(buf.Len()),
		ContentType: "image/jpeg",
		Metadata:    meta,
	})
	if err != nil {
		logger.Debugf("store thumbnail: %v", err)
		return ""
	}
	return handle
}
