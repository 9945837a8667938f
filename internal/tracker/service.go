// Package tracker runs the sampling loop and prints a line whenever the
// observed desktop state changes.
package tracker

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/pfirsich/timetrackd/internal/config"
	"github.com/pfirsich/timetrackd/pkg/sampler"
)

// Source produces one Sample per call. *sampler.Sampler satisfies it; tests
// substitute scripted sources.
type Source interface {
	Take(interval time.Duration) (sampler.Sample, error)
}

// Service is the change-detection loop. It owns the single "last observed
// sample" slot; the slot is empty until the first successful tick and is
// cleared again whenever a tick fails, so the first sample after a failure
// is always reported.
type Service struct {
	config   *config.Config
	source   Source
	out      io.Writer
	logger   *log.Logger
	last     *sampler.Sample
	stopChan chan struct{}
	running  bool
}

func NewService(cfg *config.Config, source Source, out io.Writer, logger *log.Logger) *Service {
	return &Service{
		config:   cfg,
		source:   source,
		out:      out,
		logger:   logger,
		stopChan: make(chan struct{}),
		running:  false,
	}
}

// Start runs the loop until the context is cancelled or Stop is called.
// Each tick does its work and then waits exactly the configured interval,
// so true inter-tick spacing is interval plus work time.
func (s *Service) Start(ctx context.Context) error {
	if s.running {
		return fmt.Errorf("tracker is already running")
	}

	s.running = true
	s.logger.Printf("Starting tracker with %v sample interval", s.config.Interval())

	for {
		s.observe()

		select {
		case <-ctx.Done():
			s.logger.Println("Tracker stopped by context")
			s.running = false
			return ctx.Err()

		case <-s.stopChan:
			s.logger.Println("Tracker stopped")
			s.running = false
			return nil

		case <-time.After(s.config.Interval()):
		}
	}
}

func (s *Service) Stop() {
	if s.running {
		close(s.stopChan)
	}
}

func (s *Service) IsRunning() bool {
	return s.running
}

// observe runs one tick: take a sample, emit a line if it differs from the
// last observed one, and update the slot.
func (s *Service) observe() {
	sample, err := s.source.Take(s.config.Interval())
	if err != nil {
		s.logger.Printf("Error fetching data: %v", err)
		s.last = nil
		return
	}

	if s.last == nil || *s.last != sample {
		fmt.Fprintln(s.out, FormatLine(sample))
	}
	s.last = &sample
}

// FormatLine renders a sample as its change-log line. While the screensaver
// is active, window identity is meaningless behind the lock screen and the
// line is just "screensaver".
func FormatLine(s sampler.Sample) string {
	if s.ScreensaverActive {
		return "screensaver"
	}

	line := fmt.Sprintf("'%s' ([%d] %s)", s.WindowTitle, s.PID, s.ProcessName)
	if s.Idle {
		line += " (idle)"
	}
	return line
}
