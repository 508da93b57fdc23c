package emotionService

import (
	"HealGolang/internal/api/emotion"
	"HealGolang/internal/entity"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type leasedSource struct {
	source IFrameSource
	lease  ILease
	key    string
	ttl    time.Duration
	log    *logrus.Logger
}

// NewLeasedSource makes source exclusive across processes sharing the lease
// backend. A lease backend that cannot be reached does not block capture.
func NewLeasedSource(source IFrameSource, lease ILease, key string, ttl time.Duration, log *logrus.Logger) IFrameSource {
	return &leasedSource{
		source: source,
		lease:  lease,
		key:    key,
		ttl:    ttl,
		log:    log,
	}
}

func (l *leasedSource) Open(ctx context.Context) (IFrameStream, error) {
	token, ok, err := l.lease.Acquire(ctx, l.key, l.ttl)
	if err != nil {
		l.log.WithFields(logrus.Fields{
			"key":   l.key,
			"error": err.Error(),
		}).Warn("Device lease backend unreachable, opening without lease")
		return l.source.Open(ctx)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is leased by another process", emotion.ErrDeviceUnavailable, l.key)
	}

	stream, err := l.source.Open(ctx)
	if err != nil {
		l.releaseLease(token)
		return nil, err
	}

	return newLeasedStream(stream, l, token), nil
}

func (l *leasedSource) releaseLease(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := l.lease.Release(ctx, l.key, token); err != nil {
		l.log.WithFields(logrus.Fields{
			"key":   l.key,
			"error": err.Error(),
		}).Warn("Failed to release device lease")
	}
}

// leasedStream keeps its lease alive from its own goroutine, so a long
// classification between reads does not let the ttl lapse.
type leasedStream struct {
	IFrameStream
	owner *leasedSource
	token string

	mu   sync.Mutex
	lost error

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func newLeasedStream(stream IFrameStream, owner *leasedSource, token string) *leasedStream {
	s := &leasedStream{
		IFrameStream: stream,
		owner:        owner,
		token:        token,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	go s.keepAlive()
	return s
}

// keepAlive refreshes every third of the ttl. A backend error is retried on
// the next tick; a lease taken by someone else ends the stream.
func (s *leasedStream) keepAlive() {
	defer close(s.done)

	interval := s.owner.ttl / 3
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), interval)
		err := s.owner.lease.Refresh(ctx, s.owner.key, s.token, s.owner.ttl)
		cancel()

		if err == nil {
			continue
		}
		if errors.Is(err, emotion.ErrLeaseLost) {
			s.owner.log.WithField("key", s.owner.key).Warn("Device lease lost, stopping capture")
			s.mu.Lock()
			s.lost = err
			s.mu.Unlock()
			return
		}
		s.owner.log.WithError(err).Warn("Failed to refresh device lease")
	}
}

// Next fails once the lease has been lost, which ends the session.
func (s *leasedStream) Next(ctx context.Context) (entity.Frame, error) {
	s.mu.Lock()
	lost := s.lost
	s.mu.Unlock()
	if lost != nil {
		return entity.Frame{}, lost
	}
	return s.IFrameStream.Next(ctx)
}

func (s *leasedStream) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done

		s.closeErr = s.IFrameStream.Close()
		s.owner.releaseLease(s.token)
	})
	return s.closeErr
}
