// Package config loads per-camera calibration records and turns them into
// cameras.
package config

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.viam.com/utils"
	"gopkg.in/yaml.v3"

	"github.com/openvnav/camlens/rimage/transform"
)

// Camera describes one calibrated camera: the distortion model discriminator,
// its coefficient list, the intrinsics as a 4-vector (fx, fy, cx, cy), and
// the calibrated image size.
type Camera struct {
	DistortionModel      string    `json:"distortion_model" yaml:"distortion_model"`
	DistortionParameters []float64 `json:"distortion_parameters" yaml:"distortion_parameters"`
	Intrinsics           []float64 `json:"intrinsics" yaml:"intrinsics"`
	Width                int       `json:"width_px" yaml:"width_px"`
	Height               int       `json:"height_px" yaml:"height_px"`
}

// Validate checks the record's shape. Model-specific coefficient counts are
// checked by the camera factory.
func (c *Camera) Validate() error {
	if c == nil {
		return errors.New("camera config does not exist")
	}
	if c.DistortionModel == "" {
		return errors.New("distortion_model is required")
	}
	if len(c.Intrinsics) != 4 {
		return errors.Errorf("intrinsics must be a 4-vector (fx, fy, cx, cy), got length %d", len(c.Intrinsics))
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("invalid image size (%d, %d)", c.Width, c.Height)
	}
	return nil
}

// BuildCamera constructs the camera this record describes.
func (c *Camera) BuildCamera() (*transform.PinholeCamera, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	intrinsics := &transform.PinholeCameraIntrinsics{
		Width:  c.Width,
		Height: c.Height,
		Fx:     c.Intrinsics[0],
		Fy:     c.Intrinsics[1],
		Ppx:    c.Intrinsics[2],
		Ppy:    c.Intrinsics[3],
	}
	return transform.NewCamera(transform.DistortionType(c.DistortionModel), c.DistortionParameters, intrinsics)
}

// ReadCameraFromJSONFile reads a camera record from a JSON file.
func ReadCameraFromJSONFile(path string) (*Camera, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Camera{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "error parsing JSON camera config")
	}
	return cfg, nil
}

// ReadCameraFromYAMLFile reads a camera record from a YAML file.
func ReadCameraFromYAMLFile(path string) (*Camera, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Camera{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "error parsing YAML camera config")
	}
	return cfg, nil
}

func readFile(path string) ([]byte, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening camera config")
	}
	defer utils.UncheckedErrorFunc(f.Close)
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "error reading camera config")
	}
	return data, nil
}
