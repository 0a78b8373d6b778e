package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/services"
)

const maxImageBytes = 2 * 1024 * 1024

// readImageFile loads one multipart upload into memory, rejecting non-image
// content and files over the size limit.
func readImageFile(fh *multipart.FileHeader) (services.ImageFile, error) {
	if fh.Size > maxImageBytes {
		return services.ImageFile{}, services.NewValidationError("file %q exceeds the 2MB limit", fh.Filename)
	}

	f, err := fh.Open()
	if err != nil {
		return services.ImageFile{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.ImageFile{}, err
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	if !strings.HasPrefix(ct, "image/") {
		return services.ImageFile{}, services.NewValidationError("only image files are allowed")
	}

	return services.ImageFile{
		Filename:    fh.Filename,
		ContentType: ct,
		Data:        data,
	}, nil
}

// readImageFiles collects the "images" multipart field, at most limit files.
func readImageFiles(form *multipart.Form, field string, limit int) ([]services.ImageFile, error) {
	headers := form.File[field]
	if len(headers) > limit {
		return nil, services.NewValidationError("at most %d images are allowed", limit)
	}
	files := make([]services.ImageFile, 0, len(headers))
	for _, fh := range headers {
		file, err := readImageFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
