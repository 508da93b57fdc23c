package ffmpeg

import (
	"HealGolang/internal/api/emotion"
	"HealGolang/pkg/log"
	"HealGolang/pkg/utils"
	"bufio"
	"bytes"
	"context"
	"image"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSplitJpeg(t *testing.T) {
	jpegData := []byte{0xFF, 0xD8, 0x01, 0x02, 0x03, 0xFF, 0xD9}

	streamData := []byte{0x00, 0x00}
	streamData = append(streamData, jpegData...)
	streamData = append(streamData, jpegData...)
	streamData = append(streamData, 0x00, 0x00)

	scanner := bufio.NewScanner(bytes.NewReader(streamData))
	scanner.Split(SplitJpeg)

	var tokens [][]byte
	for scanner.Scan() {
		tokens = append(tokens, append([]byte(nil), scanner.Bytes()...))
	}

	require.NoError(t, scanner.Err())
	require.Len(t, tokens, 2)
	require.Equal(t, jpegData, tokens[0])
	require.Equal(t, jpegData, tokens[1])
}

func TestNewFFmpegCmd(t *testing.T) {
	req := require.New(t)

	cmd := NewFFmpegCmd("v4l2", "/dev/video0")
	req.Equal([]string{"ffmpeg", "-hide_banner", "-loglevel", "error", "-f", "v4l2", "-i", "/dev/video0",
		"-f", "image2pipe", "-vcodec", "mjpeg", "-"}, cmd.Args)

	cmd = NewFFmpegCmd("", "clip.mp4")
	req.NotContains(cmd.Args[:5], "v4l2")
	req.Equal("clip.mp4", cmd.Args[4])
}

func encoded(t *testing.T, n int) []byte {
	u := utils.New()
	var all []byte
	for i := 0; i < n; i++ {
		data, err := u.EncodeJPEG(image.NewRGBA(image.Rect(0, 0, 32, 24)))
		require.NoError(t, err)
		all = append(all, data...)
	}
	return all
}

func TestStream_ReadsUntilEOF(t *testing.T) {
	req := require.New(t)

	st := newStream(bytes.NewReader(encoded(t, 3)), 0, utils.New())
	defer st.Close()

	<-st.ready
	req.False(st.failedBeforeFirstFrame())

	frames := 0
	for {
		f, err := st.Next(context.Background())
		if err == io.EOF {
			break
		}
		req.NoError(err)
		req.Equal(image.Rect(0, 0, 32, 24), f.Image.Bounds())
		req.Equal(frames, f.Index)
		frames++
	}
	req.GreaterOrEqual(frames, 1)
	req.LessOrEqual(frames, 3)
}

func TestStream_EmptyInputFailsBeforeFirstFrame(t *testing.T) {
	st := newStream(bytes.NewReader(nil), 0, utils.New())
	defer st.Close()

	<-st.ready
	require.True(t, st.failedBeforeFirstFrame())
}

func TestStream_NextHonoursContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	st := newStream(pr, 0, utils.New())
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := st.Next(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDevices_TryLock(t *testing.T) {
	req := require.New(t)

	unlock, ok := utils.Devices.TryLock("test-device")
	req.True(ok)

	_, ok = utils.Devices.TryLock("test-device")
	req.False(ok)

	unlock()
	unlock()

	again, ok := utils.Devices.TryLock("test-device")
	req.True(ok)
	again()
}

func TestSource_OpenFailsWhileDeviceHeld(t *testing.T) {
	req := require.New(t)

	unlock, ok := utils.Devices.TryLock("/dev/video-held")
	req.True(ok)
	defer unlock()

	src := NewSource(Config{Input: "/dev/video-held"}, utils.New(), log.NewLogger())
	_, err := src.Open(context.Background())
	req.ErrorIs(err, emotion.ErrDeviceUnavailable)
	req.Contains(err.Error(), "in use")
}
