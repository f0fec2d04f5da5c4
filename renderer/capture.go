package renderer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Capture handles screenshots and frame-sequence recording.
type Capture struct {
	dir    string
	stride int

	recording  bool
	frameIdx   int
	frameCount int
}

// NewCapture creates a capture sink writing under dir. stride controls how
// many loop frames pass between recorded frames.
func NewCapture(dir string, stride int) *Capture {
	if stride < 1 {
		stride = 1
	}
	return &Capture{dir: dir, stride: stride}
}

// Screenshot renders the scene via draw into an offscreen target at mult
// times the given size and exports it as a timestamped PNG.
func (c *Capture) Screenshot(width, height int32, mult int, draw func()) (string, error) {
	if mult < 1 {
		mult = 1
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating capture dir: %w", err)
	}

	target := rl.LoadRenderTexture(width*int32(mult), height*int32(mult))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	draw()
	rl.EndTextureMode()

	// Flip: render textures follow OpenGL's bottom-up convention.
	img := rl.LoadImageFromTexture(target.Texture)
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)

	path := filepath.Join(c.dir, fmt.Sprintf("shot_%s.png", time.Now().Format("20060102_150405")))
	if !rl.ExportImage(*img, path) {
		return "", fmt.Errorf("exporting screenshot to %s", path)
	}
	return path, nil
}

// StartRecording begins a PNG frame sequence in a fresh subdirectory.
func (c *Capture) StartRecording() error {
	sub := filepath.Join(c.dir, "rec_"+time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(sub, 0o755); err != nil {
		return fmt.Errorf("creating recording dir: %w", err)
	}
	c.dir = sub
	c.recording = true
	c.frameIdx = 0
	c.frameCount = 0
	return nil
}

// StopRecording ends the frame sequence and returns the frame count.
func (c *Capture) StopRecording() int {
	c.recording = false
	c.dir = filepath.Dir(c.dir)
	return c.frameIdx
}

// Recording reports whether a frame sequence is in progress.
func (c *Capture) Recording() bool { return c.recording }

// Frame records the current screen if a recording is active and the stride
// allows it. Call once per loop iteration, after EndDrawing.
func (c *Capture) Frame() {
	if !c.recording {
		return
	}
	c.frameCount++
	if c.frameCount%c.stride != 0 {
		return
	}
	img := rl.LoadImageFromScreen()
	defer rl.UnloadImage(img)
	path := filepath.Join(c.dir, fmt.Sprintf("frame_%05d.png", c.frameIdx))
	if rl.ExportImage(*img, path) {
		c.frameIdx++
	}
}
