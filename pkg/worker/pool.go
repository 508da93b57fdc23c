package worker

import (
	"HealGolang/internal/entity"
	"HealGolang/pkg/utils"
	"context"
	"errors"
	"fmt"
	"image"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Spawner func(id int) (*PythonWorker, error)

type reply struct {
	entity.EmotionResult
	Error string `json:"error,omitempty"`
}

// Pool classifies face crops on a fixed number of python workers. Workers
// start on first use and are replaced after a crash or a cancelled call.
type Pool struct {
	slots chan *slot
	spawn Spawner
	utils utils.IUtils
	log   *logrus.Logger
}

type slot struct {
	id     int
	worker *PythonWorker
}

func NewPool(size int, spawn Spawner, u utils.IUtils, log *logrus.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		slots: make(chan *slot, size),
		spawn: spawn,
		utils: u,
		log:   log,
	}
	for i := 0; i < size; i++ {
		p.slots <- &slot{id: i}
	}
	return p
}

// NewScriptPool runs script with python for every worker.
func NewScriptPool(size int, python, script string, u utils.IUtils, log *logrus.Logger) *Pool {
	return NewPool(size, func(id int) (*PythonWorker, error) {
		return NewPythonWorker(id, python, script)
	}, u, log)
}

func (p *Pool) Classify(ctx context.Context, face image.Image) (*entity.EmotionResult, error) {
	data, err := p.utils.EncodeJPEG(face)
	if err != nil {
		return nil, fmt.Errorf("error encoding face crop: %w", err)
	}

	var s *slot
	select {
	case s = <-p.slots:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if s.worker == nil {
		w, err := p.spawn(s.id)
		if err != nil {
			p.slots <- s
			return nil, fmt.Errorf("worker %d: %w", s.id, err)
		}
		s.worker = w
	}

	type result struct {
		body []byte
		err  error
	}
	done := make(chan result, 1)
	go func(w *PythonWorker) {
		body, err := w.Communicate(data)
		done <- result{body, err}
	}(s.worker)

	select {
	case r := <-done:
		if r.err != nil {
			p.log.WithFields(logrus.Fields{
				"worker": s.id,
				"error":  r.err.Error(),
			}).Error("Emotion worker crashed, it will be restarted")
			p.retire(s)
			return nil, fmt.Errorf("worker %d: %w", s.id, r.err)
		}
		p.slots <- s
		return parseReply(r.body)

	case <-ctx.Done():
		s.worker.Kill()
		go func() {
			<-done
			p.retire(s)
		}()
		return nil, ctx.Err()
	}
}

func (p *Pool) retire(s *slot) {
	s.worker.Close()
	s.worker = nil
	p.slots <- s
}

// Close stops every worker. In-flight calls finish first.
func (p *Pool) Close() {
	for i := 0; i < cap(p.slots); i++ {
		s := <-p.slots
		if s.worker != nil {
			s.worker.Close()
			s.worker = nil
		}
	}
}

func parseReply(body []byte) (*entity.EmotionResult, error) {
	var r reply
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("invalid worker reply: %w", err)
	}
	if r.Error != "" {
		return nil, errors.New(r.Error)
	}

	res := r.EmotionResult
	return &res, nil
}
