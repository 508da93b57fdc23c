package ffmpeg

import (
	"HealGolang/internal/api/emotion"
	emotionService "HealGolang/internal/api/emotion/service"
	"HealGolang/internal/entity"
	"HealGolang/pkg/utils"
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	JpegSOI = []byte{0xFF, 0xD8}
	JpegEOI = []byte{0xFF, 0xD9}
)

// SplitJpeg is a bufio.SplitFunc yielding one complete JPEG per token.
// Bytes before the first start marker are skipped.
func SplitJpeg(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	start := bytes.Index(data, JpegSOI)
	if start == -1 {
		return 0, nil, nil
	}
	end := bytes.Index(data[start:], JpegEOI)
	if end == -1 {
		return 0, nil, nil
	}
	return start + end + 2, data[start : start+end+2], nil
}

// NewFFmpegCmd decodes input (a device such as /dev/video0 or a file) into a
// stream of MJPEG frames on stdout. format is the ffmpeg demuxer, e.g. v4l2,
// and may be empty for files.
func NewFFmpegCmd(format, input string) *utils.SafeCommand {
	args := []string{"-hide_banner", "-loglevel", "error"}
	if format != "" {
		args = append(args, "-f", format)
	}
	args = append(args, "-i", input, "-f", "image2pipe", "-vcodec", "mjpeg", "-")
	return utils.NewSafeCommand("ffmpeg", args...)
}

type Config struct {
	Input  string
	Format string
	// MaxFPS caps how fast frames are handed out. Zero disables the cap.
	MaxFPS float64
	// StartTimeout bounds the wait for the first frame.
	StartTimeout time.Duration
}

type source struct {
	cfg   Config
	utils utils.IUtils
	log   *logrus.Logger
}

func NewSource(cfg Config, u utils.IUtils, log *logrus.Logger) emotionService.IFrameSource {
	if cfg.StartTimeout == 0 {
		cfg.StartTimeout = 5 * time.Second
	}
	return &source{cfg: cfg, utils: u, log: log}
}

func (s *source) Open(ctx context.Context) (emotionService.IFrameStream, error) {
	unlock, ok := utils.Devices.TryLock(s.cfg.Input)
	if !ok {
		return nil, fmt.Errorf("%w: %s is in use", emotion.ErrDeviceUnavailable, s.cfg.Input)
	}

	if _, err := exec.LookPath("ffmpeg"); err != nil {
		unlock()
		return nil, fmt.Errorf("%w: ffmpeg not found", emotion.ErrDeviceUnavailable)
	}

	cmd := NewFFmpegCmd(s.cfg.Format, s.cfg.Input)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		unlock()
		return nil, fmt.Errorf("%w: %v", emotion.ErrDeviceUnavailable, err)
	}
	if err := cmd.Start(); err != nil {
		unlock()
		return nil, fmt.Errorf("%w: %v", emotion.ErrDeviceUnavailable, err)
	}

	st := newStream(stdout, s.cfg.MaxFPS, s.utils)
	st.cmd = cmd
	st.unlock = unlock

	select {
	case <-st.ready:
	case <-time.After(s.cfg.StartTimeout):
	case <-ctx.Done():
		st.Close()
		return nil, ctx.Err()
	}

	if st.failedBeforeFirstFrame() {
		logs := cmd.StderrTail(512)
		st.Close()
		return nil, fmt.Errorf("%w: ffmpeg could not open %s: %s", emotion.ErrDeviceUnavailable, s.cfg.Input, logs)
	}

	s.log.WithField("input", s.cfg.Input).Debug("ffmpeg frame source opened")
	return st, nil
}

type jpegFrame struct {
	data []byte
	at   time.Time
}

type stream struct {
	cmd     *utils.SafeCommand
	unlock  func()
	utils   utils.IUtils
	limiter *rate.Limiter

	frames chan jpegFrame
	ready  chan struct{}
	done   chan struct{}

	mu      sync.Mutex
	readErr error
	got     bool

	index     int
	closeOnce sync.Once
}

func newStream(r io.Reader, maxFPS float64, u utils.IUtils) *stream {
	limit := rate.Inf
	if maxFPS > 0 {
		limit = rate.Limit(maxFPS)
	}
	st := &stream{
		utils:   u,
		limiter: rate.NewLimiter(limit, 1),
		frames:  make(chan jpegFrame, 1),
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}
	go st.pump(r)
	return st
}

// pump keeps only the newest undelivered frame so a slow consumer sees live
// video instead of a backlog.
func (st *stream) pump(r io.Reader) {
	var readyOnce sync.Once
	markReady := func() { readyOnce.Do(func() { close(st.ready) }) }
	defer markReady()
	defer close(st.frames)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<20), 16<<20)
	scanner.Split(SplitJpeg)

	for scanner.Scan() {
		data := append([]byte(nil), scanner.Bytes()...)
		f := jpegFrame{data: data, at: time.Now()}

		st.mu.Lock()
		st.got = true
		st.mu.Unlock()
		markReady()

		for {
			select {
			case st.frames <- f:
			case <-st.done:
				return
			default:
				select {
				case <-st.frames:
				default:
				}
				continue
			}
			break
		}
	}

	st.mu.Lock()
	st.readErr = scanner.Err()
	st.mu.Unlock()
}

func (st *stream) failedBeforeFirstFrame() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.got {
		return false
	}
	select {
	case <-st.ready:
		return true
	default:
		return false
	}
}

func (st *stream) Next(ctx context.Context) (entity.Frame, error) {
	if err := st.limiter.Wait(ctx); err != nil {
		// The limiter refuses early when the deadline is too close.
		<-ctx.Done()
		return entity.Frame{}, ctx.Err()
	}

	select {
	case f, ok := <-st.frames:
		if !ok {
			st.mu.Lock()
			err := st.readErr
			st.mu.Unlock()
			if err != nil {
				return entity.Frame{}, err
			}
			return entity.Frame{}, io.EOF
		}
		img, err := st.utils.DecodeImage(f.data)
		if err != nil {
			return entity.Frame{}, fmt.Errorf("decode frame %d: %w", st.index, err)
		}
		frame := entity.Frame{Index: st.index, Image: img, CapturedAt: f.at}
		st.index++
		return frame, nil
	case <-ctx.Done():
		return entity.Frame{}, ctx.Err()
	}
}

func (st *stream) Close() error {
	var err error
	st.closeOnce.Do(func() {
		close(st.done)
		if st.cmd != nil {
			st.cmd.Kill()
			if werr := st.cmd.Wait(); werr != nil && !exited(werr) {
				err = werr
			}
		}
		if st.unlock != nil {
			st.unlock()
		}
	})
	return err
}

// exited reports a non-zero exit, which is expected after Kill.
func exited(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
