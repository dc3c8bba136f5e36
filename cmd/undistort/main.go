// Undistorts an image according to a camera calibration file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/edaniels/golog"

	"github.com/openvnav/camlens/config"
	"github.com/openvnav/camlens/rimage"
)

var logger = golog.NewDevelopmentLogger("undistort")

func main() {
	if err := realMain(os.Args[1:]); err != nil {
		logger.Fatal(err)
	}
}

func realMain(args []string) error {
	flags := flag.NewFlagSet("undistort", flag.ContinueOnError)
	configFile := flags.String("config", "", "camera calibration file (.json or .yaml)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *configFile == "" || flags.NArg() < 2 {
		return fmt.Errorf("undistort -config <calibration> needs <image in> <image out>")
	}

	var cfg *config.Camera
	var err error
	if strings.HasSuffix(*configFile, ".json") {
		cfg, err = config.ReadCameraFromJSONFile(*configFile)
	} else {
		cfg, err = config.ReadCameraFromYAMLFile(*configFile)
	}
	if err != nil {
		return err
	}
	cam, err := cfg.BuildCamera()
	if err != nil {
		return err
	}

	img, err := rimage.NewImageFromFile(flags.Arg(0))
	if err != nil {
		return err
	}
	logger.Debugw("undistorting", "model", cfg.DistortionModel, "width", img.Width(), "height", img.Height())
	out, err := cam.UndistortImage(img)
	if err != nil {
		return err
	}
	return out.WriteTo(flags.Arg(1))
}
