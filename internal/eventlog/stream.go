package eventlog

import (
	"context"
	"errors"
	"iter"

	"github.com/rs/zerolog"

	"fightprog/internal/events"
	"fightprog/internal/fflogs"
)

var (
	// Done is returned by Stream.Next once the window is exhausted.
	Done = errors.New("eventlog: no more events")

	// ErrConsumed is yielded when a stream is ranged over a second time.
	ErrConsumed = errors.New("eventlog: stream already consumed")
)

// Stream lazily pages through the events of one view over a window. It is forward-only,
// single-pass and not safe for concurrent use; at most one page fetch is pending at any time.
type Stream struct {
	source     fflogs.Source
	view       fflogs.View
	reportCode string
	window     fflogs.Window

	buf  []events.Event
	pos  int
	next *uint64

	err    error
	done   bool
	ranged bool
}

// NewStream prepares a stream over window. Nothing is fetched until the first pull.
func NewStream(source fflogs.Source, view fflogs.View, reportCode string, window fflogs.Window) *Stream {
	start := window.Start
	return &Stream{
		source:     source,
		view:       view,
		reportCode: reportCode,
		window:     window,
		next:       &start,
	}
}

// Next returns the next event in the window. It returns Done at the end of the sequence. A fetch
// failure is returned once as the error and every later call returns it again.
func (s *Stream) Next(ctx context.Context) (events.Event, error) {
	for {
		if s.pos < len(s.buf) {
			ev := s.buf[s.pos]
			s.buf[s.pos] = nil
			s.pos++
			return ev, nil
		}

		if s.err != nil {
			return nil, s.err
		}
		if s.done || s.next == nil || *s.next >= s.window.End {
			s.done = true
			return nil, Done
		}

		if err := s.fetch(ctx); err != nil {
			s.err = err
			return nil, err
		}
	}
}

func (s *Stream) fetch(ctx context.Context) error {
	requested := *s.next
	logger := zerolog.Ctx(ctx).With().Str("report", s.reportCode).Str("view", s.view.String()).Logger()

	page, err := s.source.FetchPage(ctx, s.view, s.reportCode, s.window.WithStart(requested))
	if err != nil {
		return err
	}

	if len(page.Events) == 0 {
		logger.Trace().Uint64("start", requested).Msg("Empty events page, stream exhausted")
		s.done = true
		return nil
	}

	s.buf = s.buf[:0]
	s.pos = 0
	dropped := 0
	for _, ev := range page.Events {
		if ts, ok := ev.Timestamp(); ok && !s.window.Contains(ts) {
			dropped++
			continue
		}
		s.buf = append(s.buf, ev)
	}

	s.next = page.NextPageTimestamp
	if s.next != nil && *s.next <= requested {
		logger.Warn().Uint64("start", requested).Uint64("next", *s.next).
			Msg("Next page cursor did not advance, ending stream")
		s.next = nil
	}

	logger.Trace().Uint64("start", requested).Int("events", len(s.buf)).Int("dropped", dropped).
		Msg("Fetched events page")
	return nil
}

// All ranges over the remaining events. A fetch failure is yielded as the final item.
// Ranging over the same stream twice yields ErrConsumed.
func (s *Stream) All(ctx context.Context) iter.Seq2[events.Event, error] {
	return func(yield func(events.Event, error) bool) {
		if s.ranged {
			yield(nil, ErrConsumed)
			return
		}
		s.ranged = true

		for {
			ev, err := s.Next(ctx)
			if err == Done {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// Collect eagerly reads every event of the window using the same paging and termination rules
// as Stream.
func Collect(ctx context.Context, source fflogs.Source, view fflogs.View, reportCode string, window fflogs.Window) ([]events.Event, error) {
	var out []events.Event
	for ev, err := range NewStream(source, view, reportCode, window).All(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}
