package worker

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"HealGolang/pkg/utils"
)

// PythonWorker is a long lived python process speaking a length prefixed
// protocol: requests go to its stdin, replies come back on fd 3 so that
// library chatter on stdout never corrupts the stream.
type PythonWorker struct {
	ID       int
	Cmd      *utils.SafeCommand
	Stdin    io.WriteCloser
	DataPipe io.ReadCloser
}

func NewPythonWorker(id int, python, script string) (*PythonWorker, error) {
	py := utils.NewSafeCommand(python, "-u", script)

	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create pipe: %w", err)
	}
	py.Cmd.ExtraFiles = []*os.File{w}

	stdin, err := py.StdinPipe()
	if err != nil {
		w.Close()
		r.Close()
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}

	if err := py.Start(); err != nil {
		w.Close()
		r.Close()
		return nil, fmt.Errorf("worker %d failed to start: %w", id, err)
	}

	// Only the child holds the write end now.
	w.Close()

	return &PythonWorker{
		ID:       id,
		Cmd:      py,
		Stdin:    stdin,
		DataPipe: r,
	}, nil
}

// Communicate sends one [uint32 length][data] request and reads one reply in
// the same framing.
func (w *PythonWorker) Communicate(data []byte) ([]byte, error) {
	if err := binary.Write(w.Stdin, binary.BigEndian, uint32(len(data))); err != nil {
		return nil, w.crashed(err)
	}
	if _, err := w.Stdin.Write(data); err != nil {
		return nil, w.crashed(err)
	}

	header := make([]byte, 4)
	if _, err := io.ReadFull(w.DataPipe, header); err != nil {
		return nil, w.crashed(err)
	}

	respLen := binary.BigEndian.Uint32(header)
	respBody := make([]byte, respLen)
	if _, err := io.ReadFull(w.DataPipe, respBody); err != nil {
		return nil, w.crashed(err)
	}
	return respBody, nil
}

func (w *PythonWorker) crashed(err error) error {
	if w.Cmd == nil {
		return err
	}
	if logs := w.Cmd.StderrTail(2048); logs != "" {
		return fmt.Errorf("%w\n%s", err, logs)
	}
	return err
}

// Kill stops the process and unblocks a pending Communicate.
func (w *PythonWorker) Kill() {
	if w.Cmd != nil {
		w.Cmd.Kill()
	}
	w.DataPipe.Close()
}

func (w *PythonWorker) Close() {
	w.Stdin.Close()
	w.DataPipe.Close()
	if w.Cmd != nil {
		w.Cmd.Wait()
	}
}
