// Command webpconv converts images to WebP from the command line using the
// same session pipeline as the desktop application.
//
//	webpconv convert --quality 80 --scale 50 --output out/ photos/*.jpg
//
// A single converted image is written as <name>.webp; several are bundled
// into converted-images.zip. The command exits with status 1 when any image
// fails to convert.
package main
