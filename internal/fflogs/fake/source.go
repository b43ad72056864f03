// Package fake provides an in-memory fflogs.Source for tests.
package fake

import (
	"context"
	"errors"
	"sync"
	"time"

	"fightprog/internal/events"
	"fightprog/internal/fflogs"
)

// ErrNoFights is returned by FetchFights for a report code that has no registered fight list.
var ErrNoFights = errors.New("fake: no fight list registered")

// Call records one FetchPage invocation.
type Call struct {
	View       fflogs.View
	ReportCode string
	Window     fflogs.Window
}

// Source serves pages either from a per-view timeline cut into pages of PageSize events, or from
// a scripted list of pages returned in order.
type Source struct {
	Timelines map[fflogs.View][]events.Event
	PageSize  int

	Pages map[fflogs.View][]fflogs.Page

	Fights map[string]*fflogs.FightList

	// Err is consulted before every page fetch; a non-nil result is returned as the fetch error.
	Err func(Call) error

	// Delay keeps each fetch open so overlapping calls become observable.
	Delay time.Duration

	mu          sync.Mutex
	calls       []Call
	scripted    map[fflogs.View]int
	inFlight    int
	maxInFlight int
}

var _ fflogs.Source = (*Source)(nil)

func (s *Source) FetchPage(ctx context.Context, view fflogs.View, reportCode string, window fflogs.Window) (fflogs.Page, error) {
	call := Call{View: view, ReportCode: reportCode, Window: window}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if s.Delay > 0 {
		select {
		case <-ctx.Done():
			return fflogs.Page{}, &fflogs.TransportError{Endpoint: string(view), Err: ctx.Err()}
		case <-time.After(s.Delay):
		}
	}
	if err := ctx.Err(); err != nil {
		return fflogs.Page{}, &fflogs.TransportError{Endpoint: string(view), Err: err}
	}
	if s.Err != nil {
		if err := s.Err(call); err != nil {
			return fflogs.Page{}, err
		}
	}

	if pages, ok := s.Pages[view]; ok {
		return s.nextScripted(view, pages), nil
	}
	return s.cut(s.Timelines[view], window), nil
}

func (s *Source) nextScripted(view fflogs.View, pages []fflogs.Page) fflogs.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scripted == nil {
		s.scripted = make(map[fflogs.View]int)
	}
	i := s.scripted[view]
	s.scripted[view]++
	if i >= len(pages) {
		return fflogs.Page{}
	}
	return pages[i]
}

func (s *Source) cut(timeline []events.Event, window fflogs.Window) fflogs.Page {
	size := s.PageSize
	if size <= 0 {
		size = len(timeline) + 1
	}

	var page fflogs.Page
	for _, ev := range timeline {
		ts, ok := ev.Timestamp()
		if !ok || !window.Contains(ts) {
			continue
		}
		if len(page.Events) == size {
			next := ts
			page.NextPageTimestamp = &next
			break
		}
		page.Events = append(page.Events, ev)
	}
	return page
}

func (s *Source) FetchFights(ctx context.Context, reportCode string) (*fflogs.FightList, error) {
	if err := ctx.Err(); err != nil {
		return nil, &fflogs.TransportError{Endpoint: "fights", Err: err}
	}
	list, ok := s.Fights[reportCode]
	if !ok {
		return nil, &fflogs.StatusError{Endpoint: "fights", Code: 404, Body: ErrNoFights.Error()}
	}
	return list, nil
}

// Calls returns every FetchPage call made so far.
func (s *Source) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// MaxInFlight is the highest number of simultaneously pending FetchPage calls observed.
func (s *Source) MaxInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFlight
}
