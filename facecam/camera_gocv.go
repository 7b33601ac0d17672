//go:build gocv

package facecam

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/phanxgames/pigface"
)

// Camera captures frames on its own goroutine and keeps the newest result.
type Camera struct {
	cfg      Config
	log      zerolog.Logger
	webcam   *gocv.VideoCapture
	detector gocv.FaceDetectorYN
	eyes     *gocv.CascadeClassifier
	box      latest
}

// Open opens the webcam and loads the models.
func Open(cfg Config, log zerolog.Logger) (*Camera, error) {
	cfg = cfg.withDefaults()
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("facecam: model: %w", err)
	}

	webcam, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("facecam: open device %d: %w", cfg.Device, err)
	}

	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"",
		image.Pt(cfg.Width, cfg.Height),
		float32(cfg.ScoreThreshold),
		0.3,  // NMS threshold
		5000, // top K
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	c := &Camera{
		cfg:      cfg,
		log:      log.With().Str("component", "facecam").Logger(),
		webcam:   webcam,
		detector: detector,
	}
	if cfg.EyeCascade != "" {
		eyes := gocv.NewCascadeClassifier()
		if !eyes.Load(cfg.EyeCascade) {
			eyes.Close()
			detector.Close()
			webcam.Close()
			return nil, fmt.Errorf("facecam: load eye cascade %s", cfg.EyeCascade)
		}
		c.eyes = &eyes
	}
	c.log.Info().Int("device", cfg.Device).Bool("blink", c.eyes != nil).Msg("camera opened")
	return c, nil
}

// Latest implements pigface.FaceSource.
func (c *Camera) Latest() (pigface.FaceFrame, bool) {
	return c.box.get()
}

// Run captures until ctx is cancelled or the device fails.
func (c *Camera) Run(ctx context.Context) error {
	img := gocv.NewMat()
	defer img.Close()
	gray := gocv.NewMat()
	defer gray.Close()
	faces := gocv.NewMat()
	defer faces.Close()

	misses := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if ok := c.webcam.Read(&img); !ok || img.Empty() {
			misses++
			if misses > 30 {
				return fmt.Errorf("facecam: device %d stopped delivering frames", c.cfg.Device)
			}
			time.Sleep(10 * time.Millisecond)
			continue
		}
		misses = 0
		c.box.store(c.process(img, &gray, &faces, c.box.stamp(time.Now())))
	}
}

func (c *Camera) process(img gocv.Mat, gray, faces *gocv.Mat, ts time.Duration) pigface.FaceFrame {
	w, h := float64(img.Cols()), float64(img.Rows())
	c.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))
	c.detector.Detect(img, faces)

	var parsed []face
	row := make([]float32, faceCols)
	for r := 0; r < faces.Rows(); r++ {
		for col := range row {
			row[col] = faces.GetFloatAt(r, col)
		}
		if f, ok := parseFace(row); ok {
			parsed = append(parsed, f)
		}
	}

	frame := pigface.FaceFrame{Timestamp: ts}
	f, ok := best(parsed, c.cfg.ScoreThreshold)
	if !ok {
		return frame
	}
	frame.Detected = true
	frame.Landmark = f.landmark(w, h)

	if c.eyes != nil {
		gocv.CvtColor(img, gray, gocv.ColorBGRToGray)
		bounds := image.Rect(0, 0, img.Cols(), img.Rows())
		frame.HasBlink = true
		frame.BlinkLeft = c.eyeScore(*gray, f.eyeROI(f.leftEye), bounds)
		frame.BlinkRight = c.eyeScore(*gray, f.eyeROI(f.rightEye), bounds)
	}
	return frame
}

func (c *Camera) eyeScore(gray gocv.Mat, roi [4]int, bounds image.Rectangle) float64 {
	r := image.Rect(roi[0], roi[1], roi[0]+roi[2], roi[1]+roi[3]).Intersect(bounds)
	if r.Empty() {
		return 0
	}
	region := gray.Region(r)
	defer region.Close()
	return blinkScore(len(c.eyes.DetectMultiScale(region)))
}

// Close releases the device and the models.
func (c *Camera) Close() error {
	if c.eyes != nil {
		c.eyes.Close()
	}
	c.detector.Close()
	return c.webcam.Close()
}
