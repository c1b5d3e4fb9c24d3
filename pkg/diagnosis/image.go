package diagnosis

import (
	"fmt"
	"net/http"
	"path/filepath"
	"slices"
)

// SupportedTypes are the MIME types accepted by the uploader.
var SupportedTypes = []string{"image/jpeg", "image/jpg", "image/png"}

// Image is a photo selected for analysis.
type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}

// NewImage builds an Image, sniffing the MIME type from the content.
func NewImage(name string, data []byte) Image {
	return Image{
		Name:     filepath.Base(name),
		MIMEType: http.DetectContentType(data),
		Data:     data,
	}
}

// ValidateImage rejects formats the uploader does not accept.
func ValidateImage(img Image) error {
	if len(img.Data) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrUnsupportedFormat, img.Name)
	}
	if !slices.Contains(SupportedTypes, img.MIMEType) {
		return fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, img.Name, img.MIMEType)
	}
	return nil
}
