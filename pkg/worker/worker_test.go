package worker

import (
	"HealGolang/pkg/log"
	"HealGolang/pkg/utils"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"image"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// MockCloser lets a bytes.Buffer stand in for an OS pipe.
type MockCloser struct {
	*bytes.Buffer
}

func (m *MockCloser) Close() error { return nil }

func framed(payload string) *MockCloser {
	buf := &MockCloser{Buffer: new(bytes.Buffer)}
	binary.Write(buf, binary.BigEndian, uint32(len(payload)))
	buf.WriteString(payload)
	return buf
}

func TestCommunicate(t *testing.T) {
	req := require.New(t)

	stdin := &MockCloser{Buffer: new(bytes.Buffer)}
	w := &PythonWorker{ID: 1, Stdin: stdin, DataPipe: framed(`{"dominant_emotion":"neutral"}`)}

	input := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	resp, err := w.Communicate(input)
	req.NoError(err)
	req.JSONEq(`{"dominant_emotion":"neutral"}`, string(resp))

	sent := stdin.Bytes()
	req.Len(sent, 4+len(input))
	req.Equal(uint32(len(input)), binary.BigEndian.Uint32(sent[:4]))
	req.Equal(input, sent[4:])
}

func TestCommunicate_TruncatedReply(t *testing.T) {
	stdin := &MockCloser{Buffer: new(bytes.Buffer)}
	pipe := &MockCloser{Buffer: bytes.NewBuffer([]byte{0, 0, 0, 10, 'x'})}
	w := &PythonWorker{ID: 1, Stdin: stdin, DataPipe: pipe}

	_, err := w.Communicate([]byte("frame"))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func poolWith(workers ...*PythonWorker) (*Pool, *int) {
	spawned := 0
	p := NewPool(1, func(id int) (*PythonWorker, error) {
		if spawned >= len(workers) {
			return nil, errors.New("no more workers")
		}
		w := workers[spawned]
		spawned++
		return w, nil
	}, utils.New(), log.NewLogger())
	return p, &spawned
}

func TestPool_Classify(t *testing.T) {
	req := require.New(t)

	w := &PythonWorker{
		Stdin:    &MockCloser{Buffer: new(bytes.Buffer)},
		DataPipe: framed(`{"dominant_emotion":"angry","emotion":{"angry":88.2,"sad":4}}`),
	}
	p, spawned := poolWith(w)
	defer p.Close()

	res, err := p.Classify(context.Background(), image.NewRGBA(image.Rect(0, 0, 10, 10)))
	req.NoError(err)
	req.Equal("angry", res.DominantEmotion)
	req.InDelta(88.2, res.Scores["angry"], 1e-9)
	req.Equal(1, *spawned)
}

func TestPool_WorkerErrorReply(t *testing.T) {
	req := require.New(t)

	w := &PythonWorker{
		Stdin:    &MockCloser{Buffer: new(bytes.Buffer)},
		DataPipe: framed(`{"error":"ModuleNotFoundError: No module named 'deepface'"}`),
	}
	p, _ := poolWith(w)
	defer p.Close()

	_, err := p.Classify(context.Background(), image.NewRGBA(image.Rect(0, 0, 10, 10)))
	req.ErrorContains(err, "deepface")
}

func TestPool_CrashRespawns(t *testing.T) {
	req := require.New(t)

	dead := &PythonWorker{
		Stdin:    &MockCloser{Buffer: new(bytes.Buffer)},
		DataPipe: &MockCloser{Buffer: new(bytes.Buffer)},
	}
	alive := &PythonWorker{
		Stdin:    &MockCloser{Buffer: new(bytes.Buffer)},
		DataPipe: framed(`{"dominant_emotion":"happy"}`),
	}
	p, spawned := poolWith(dead, alive)
	defer p.Close()

	face := image.NewRGBA(image.Rect(0, 0, 10, 10))

	_, err := p.Classify(context.Background(), face)
	req.Error(err)

	res, err := p.Classify(context.Background(), face)
	req.NoError(err)
	req.Equal("happy", res.DominantEmotion)
	req.Equal(2, *spawned)
}

func TestPool_CancelKillsWorker(t *testing.T) {
	req := require.New(t)

	pr, pw := io.Pipe()
	defer pw.Close()

	w := &PythonWorker{
		Stdin:    &MockCloser{Buffer: new(bytes.Buffer)},
		DataPipe: pr,
	}
	p, _ := poolWith(w)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Classify(ctx, image.NewRGBA(image.Rect(0, 0, 10, 10)))
	req.ErrorIs(err, context.DeadlineExceeded)

	p.Close()
}

func TestParseReply(t *testing.T) {
	_, err := parseReply([]byte("garbage"))
	require.Error(t, err)
}
