package conversion

import (
	"errors"
	"fmt"
)

var (
	ErrDecode = errors.New("image could not be decoded")
	ErrEncode = errors.New("image could not be encoded")
)

// Stage names the pipeline step that failed.
type Stage string

const (
	StageDecode Stage = "decode"
	StageEncode Stage = "encode"
)

// Request describes one rasterize-and-encode run.
type Request struct {
	Name    string
	Data    []byte
	Quality int // 1-100
	Scale   int // percent of the source dimensions, 10-100
}

// Result is a successfully encoded WebP image.
type Result struct {
	Data         []byte
	Width        int
	Height       int
	SourceWidth  int
	SourceHeight int
}

// Converter turns source image bytes into WebP bytes.
type Converter interface {
	Convert(req Request) (*Result, error)
}

// ConversionError reports which stage failed for which file.
type ConversionError struct {
	Stage Stage
	Name  string
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("conversion %s failed for %s: %v", e.Stage, e.Name, e.Err)
	}
	return fmt.Sprintf("conversion %s failed: %v", e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func newDecodeError(name string, cause error) *ConversionError {
	return &ConversionError{Stage: StageDecode, Name: name, Err: fmt.Errorf("%w: %v", ErrDecode, cause)}
}

func newEncodeError(name string, cause error) *ConversionError {
	return &ConversionError{Stage: StageEncode, Name: name, Err: fmt.Errorf("%w: %v", ErrEncode, cause)}
}
