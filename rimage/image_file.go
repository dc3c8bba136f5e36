package rimage

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// NewImageFromFile reads an image file (png, jpeg, ...) into an Image.
func NewImageFromFile(fn string) (*Image, error) {
	img, err := imaging.Open(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read image from %q", fn)
	}
	return NewImageFromStdImage(img), nil
}

// WriteImageToFile writes an image to the given file, with the format
// determined by the file extension.
func WriteImageToFile(fn string, img image.Image) error {
	if err := imaging.Save(imaging.Clone(img), fn); err != nil {
		return errors.Wrapf(err, "cannot write image to %q", fn)
	}
	return nil
}
