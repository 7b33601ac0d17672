//go:build !gocv

package facecam

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/phanxgames/pigface"
)

// Camera is unavailable without the gocv build tag.
type Camera struct{}

// Open always fails with ErrUnavailable.
func Open(Config, zerolog.Logger) (*Camera, error) {
	return nil, ErrUnavailable
}

// Latest never has a frame.
func (*Camera) Latest() (pigface.FaceFrame, bool) { return pigface.FaceFrame{}, false }

// Run returns ErrUnavailable.
func (*Camera) Run(context.Context) error { return ErrUnavailable }

// Close does nothing.
func (*Camera) Close() error { return nil }
