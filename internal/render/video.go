package render

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	stddraw "image/draw"
	"image/gif"
	"image/png"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fluidx-lab/musclesim/internal/dynamo"
	"github.com/fluidx-lab/musclesim/internal/muscle"
)

// ErrEncoderMissing reports that no ffmpeg binary is available for MP4
// assembly. The GIF format has no external dependency.
var ErrEncoderMissing = errors.New("render: ffmpeg not found in PATH")

type Options struct {
	FPS    int
	Width  int
	Height int
	Rings  int
	Format string // "mp4" or "gif"
	Output string // final video path
}

func (o Options) validate() error {
	if o.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", o.FPS)
	}
	if o.Width < 320 || o.Height < 200 {
		return fmt.Errorf("frame size %dx%d too small", o.Width, o.Height)
	}
	if o.Format != "mp4" && o.Format != "gif" {
		return fmt.Errorf("unknown video format %q (mp4 or gif)", o.Format)
	}
	if o.Output == "" {
		return fmt.Errorf("no output path")
	}
	return nil
}

// WriteVideo renders the trajectory to the configured video file and
// returns its path. MP4 goes through a PNG frame sequence and ffmpeg;
// GIF is encoded in-process. The video appears atomically: encoders
// write a partial file that is renamed once complete.
func WriteVideo(result *dynamo.Result, p muscle.Params, opts Options) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	frames := Downsample(result, p, opts.FPS)
	if len(frames) == 0 {
		return "", fmt.Errorf("nothing to render: empty trajectory")
	}
	scene := NewScene(p, result, opts.Width, opts.Height, opts.Rings)

	outDir := filepath.Dir(opts.Output)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	switch opts.Format {
	case "gif":
		if err := encodeGIF(opts.Output, scene, frames, opts.FPS); err != nil {
			return "", err
		}
	default:
		framesDir := filepath.Join(outDir, "frames")
		if err := cleanFrames(framesDir); err != nil {
			return "", err
		}
		if err := writeFrames(framesDir, scene, frames); err != nil {
			return "", err
		}
		if err := encodeMP4(framesDir, opts.FPS, opts.Output); err != nil {
			return "", err
		}
	}
	return opts.Output, nil
}

// cleanFrames empties the frame directory so runs do not interleave.
func cleanFrames(framesDir string) error {
	if err := os.MkdirAll(framesDir, 0755); err != nil {
		return err
	}
	ents, err := os.ReadDir(framesDir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".png") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if err := os.Remove(filepath.Join(framesDir, name)); err != nil {
			return err
		}
	}
	return nil
}

// writeFrames draws every frame into one reused buffer and writes
// frame_000000.png onward.
func writeFrames(framesDir string, scene *Scene, frames []FrameSample) error {
	img := image.NewRGBA(image.Rect(0, 0, scene.W, scene.H))

	for _, f := range frames {
		scene.DrawFrame(img, f)

		path := filepath.Join(framesDir, fmt.Sprintf("frame_%06d.png", f.Index))
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		bw := bufio.NewWriter(file)
		if err := png.Encode(bw, img); err != nil {
			file.Close()
			return err
		}
		if err := bw.Flush(); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}

		if f.Index%150 == 0 || f.Index == len(frames)-1 {
			log.Printf("frame %d/%d  t=%.2fs  L=%.4fm", f.Index+1, len(frames), f.Time, f.Length)
		}
	}
	return nil
}

func ffmpegArgs(framesDir string, fps int, outPath string) []string {
	return []string{
		"-y",
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", filepath.Join(framesDir, "frame_%06d.png"),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		outPath,
	}
}

// encodeMP4 assembles the frame sequence with ffmpeg. Encoding failures
// surface as errors with the tool's output attached.
func encodeMP4(framesDir string, fps int, outPath string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrEncoderMissing
	}

	tmp := outPath + ".partial.mp4"
	cmd := exec.Command("ffmpeg", ffmpegArgs(framesDir, fps, tmp)...)

	log.Printf("encoding MP4 with ffmpeg...")
	out, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("ffmpeg failed: %v: %s", err, tailLines(string(out), 5))
	}
	return os.Rename(tmp, outPath)
}

func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// encodeGIF renders frames straight into a paletted GIF, no external
// tools involved.
func encodeGIF(outPath string, scene *Scene, frames []FrameSample, fps int) error {
	delay := 100 / fps // centiseconds per frame
	if delay < 2 {
		delay = 2
	}

	anim := &gif.GIF{LoopCount: 0}
	img := image.NewRGBA(image.Rect(0, 0, scene.W, scene.H))

	for _, f := range frames {
		scene.DrawFrame(img, f)

		pal := image.NewPaletted(img.Bounds(), palette.Plan9)
		stddraw.FloydSteinberg.Draw(pal, img.Bounds(), img, image.Point{})
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)

		if f.Index%150 == 0 || f.Index == len(frames)-1 {
			log.Printf("gif frame %d/%d  t=%.2fs", f.Index+1, len(frames), f.Time)
		}
	}

	tmp := outPath + ".partial.gif"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(file, anim); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, outPath)
}
