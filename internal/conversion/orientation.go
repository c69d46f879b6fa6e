package conversion

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// EXIF orientation values, see the TIFF/EXIF Orientation tag.
const (
	orientationNormal     = 1
	orientationFlipH      = 2
	orientationRotate180  = 3
	orientationFlipV      = 4
	orientationTranspose  = 5
	orientationRotate90   = 6
	orientationTransverse = 7
	orientationRotate270  = 8
)

// readOrientation returns the EXIF orientation of a JPEG, or
// orientationNormal when there is none.
func readOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return orientationNormal
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return orientationNormal
	}
	value, err := tag.Int(0)
	if err != nil || value < orientationNormal || value > orientationRotate270 {
		return orientationNormal
	}
	return value
}

// swapsAxes reports whether displaying upright exchanges width and height.
func swapsAxes(orientation int) bool {
	return orientation >= orientationTranspose
}

// applyOrientation returns src transformed so it displays upright. The
// rotations in the orientation names are clockwise, imaging rotates
// counter-clockwise.
func applyOrientation(src image.Image, orientation int) image.Image {
	switch orientation {
	case orientationFlipH:
		return imaging.FlipH(src)
	case orientationRotate180:
		return imaging.Rotate180(src)
	case orientationFlipV:
		return imaging.FlipV(src)
	case orientationTranspose:
		return imaging.Transpose(src)
	case orientationRotate90:
		return imaging.Rotate270(src)
	case orientationTransverse:
		return imaging.Transverse(src)
	case orientationRotate270:
		return imaging.Rotate90(src)
	}
	return src
}
