package utils

import (
	"bytes"
	"os/exec"
	"strings"
	"sync"
)

// SafeCommand is an exec.Cmd whose stderr is kept in memory so the output of
// a crashed child process can be reported.
type SafeCommand struct {
	*exec.Cmd
	stderr *lockedBuffer
}

func NewSafeCommand(name string, args ...string) *SafeCommand {
	cmd := exec.Command(name, args...)
	stderr := &lockedBuffer{}
	cmd.Stderr = stderr
	return &SafeCommand{Cmd: cmd, stderr: stderr}
}

// StderrTail returns at most the last n bytes written to stderr.
func (s *SafeCommand) StderrTail(n int) string {
	out := s.stderr.String()
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return strings.TrimSpace(out)
}

// Kill terminates the process if it was started. It is safe to call more
// than once.
func (s *SafeCommand) Kill() {
	if s.Process != nil {
		_ = s.Process.Kill()
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
