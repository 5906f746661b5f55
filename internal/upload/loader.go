package upload

import (
	"context"
	"image"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/mgen/internal/engine/material"
)

// Result is the outcome of one asynchronous load.
type Result struct {
	Ticket material.Ticket
	Name   string
	Image  image.Image
	Err    error
}

// Loader decodes files off the render thread. Results arrive on
// Results() and are meant to be drained once per frame; the ticket lets
// the binder drop anything superseded in the meantime.
type Loader struct {
	policy  Policy
	log     *zap.Logger
	results chan Result
	wg      sync.WaitGroup
}

// NewLoader creates a loader. buffer bounds how many finished results may
// wait for the render loop before decoders block.
func NewLoader(policy Policy, buffer int, log *zap.Logger) *Loader {
	if buffer < 1 {
		buffer = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		policy:  policy,
		log:     log,
		results: make(chan Result, buffer),
	}
}

// Results delivers finished loads.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// LoadFile starts decoding path in a goroutine.
func (l *Loader) LoadFile(ctx context.Context, t material.Ticket, path string) {
	l.start(ctx, t, path, func() (image.Image, error) {
		return l.policy.ReadFile(path)
	})
}

// LoadBytes starts decoding an in-memory file in a goroutine.
func (l *Loader) LoadBytes(ctx context.Context, t material.Ticket, name string, data []byte) {
	l.start(ctx, t, name, func() (image.Image, error) {
		return l.policy.Decode(name, data)
	})
}

func (l *Loader) start(ctx context.Context, t material.Ticket, name string, decode func() (image.Image, error)) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		img, err := decode()
		if err != nil {
			l.log.Warn("upload rejected", zap.String("name", name), zap.Error(err))
		} else {
			b := img.Bounds()
			l.log.Debug("upload decoded", zap.String("name", name),
				zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
		}

		select {
		case l.results <- Result{Ticket: t, Name: name, Image: img, Err: err}:
		case <-ctx.Done():
		}
	}()
}

// Wait blocks until all started loads have delivered or been cancelled.
func (l *Loader) Wait() {
	l.wg.Wait()
}
