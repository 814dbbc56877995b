// Package session holds the view state of a single connected client: the
// search box, its suggestions, in-flight saves and refreshes, inline errors
// and toast notifications.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/placefinder"
	"github.com/fwojciec/placefinder/debounce"
	"github.com/fwojciec/placefinder/places"
)

// Config configures a Session.
type Config struct {
	// DebounceDelay is the quiet period before a search is issued.
	DebounceDelay time.Duration

	// ToastTTL is how long notifications stay visible.
	ToastTTL time.Duration

	// OnChange is called, without any session lock held, whenever the
	// view may have changed.
	OnChange func()

	Logger *slog.Logger
}

// Session is the state behind one client's page.
type Session struct {
	container *places.Container
	onChange  func()
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	debouncer   *debounce.Debouncer
	unsubscribe func()

	mu          sync.Mutex
	closed      bool
	query       string
	clears      uint64
	settled     string
	suggestions []*placefinder.PlaceSuggestion
	searching   int
	saving      map[string]bool
	refreshing  map[string]bool
	refreshErrs map[string]string
	toasts      *placefinder.ToastQueue
	toastTimer  *time.Timer
}

// New returns a Session bound to container. Network calls made on behalf
// of the session use a context derived from ctx that is cancelled by Close.
func New(ctx context.Context, container *places.Container, cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{
		container:   container,
		onChange:    cfg.OnChange,
		logger:      logger,
		saving:      make(map[string]bool),
		refreshing:  make(map[string]bool),
		refreshErrs: make(map[string]string),
		toasts:      placefinder.NewToastQueue(cfg.ToastTTL),
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.debouncer = debounce.New(cfg.DebounceDelay, s.search)
	s.unsubscribe = container.Subscribe(s.changed)
	return s
}

// Input records the text of the search box. A search for it is issued once
// input has been quiet for the debounce delay.
func (s *Session) Input(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.query = query
	s.mu.Unlock()

	s.debouncer.Trigger(query)
	s.changed()
}

// search runs on the debouncer's timer.
func (s *Session) search(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.settled = query
	if utf8.RuneCountInString(query) < placefinder.MinQueryLength {
		s.suggestions = nil
		s.mu.Unlock()
		s.changed()
		return
	}
	s.searching++
	s.wg.Add(1)
	s.mu.Unlock()
	s.changed()

	defer s.wg.Done()

	results, err := s.searchPlaces(query)

	s.mu.Lock()
	s.searching--
	if err != nil {
		s.suggestions = nil
		s.pushToast(placefinder.ErrorMessage(err), placefinder.ToastError)
	} else {
		s.suggestions = results
	}
	s.mu.Unlock()
	s.changed()
}

func (s *Session) searchPlaces(query string) ([]*placefinder.PlaceSuggestion, error) {
	finder, err := s.container.Finder()
	if err != nil {
		return nil, err
	}
	return finder.SearchPlaces(s.ctx, query)
}

// Save fetches the details of the suggestion with placeID and adds them to
// the saved list. A save already in flight for placeID is not repeated.
func (s *Session) Save(placeID string) {
	s.mu.Lock()
	if s.closed || s.saving[placeID] {
		s.mu.Unlock()
		return
	}
	i := s.suggestionIndex(placeID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	name := s.suggestions[i].Name
	s.saving[placeID] = true
	s.wg.Add(1)
	s.mu.Unlock()
	s.changed()

	go func() {
		defer s.wg.Done()

		details, err := s.fetchDetails(placeID, name)
		if err == nil {
			s.container.AddPlace(s.ctx, details)
		}

		s.mu.Lock()
		delete(s.saving, placeID)
		if err != nil {
			s.pushToast(placefinder.ErrorMessage(err), placefinder.ToastError)
		} else {
			s.pushToast(fmt.Sprintf("'%s' was saved successfully!", name), placefinder.ToastSuccess)
			s.removeSuggestion(placeID)
		}
		s.mu.Unlock()
		s.changed()
	}()
}

func (s *Session) fetchDetails(placeID, name string) (*placefinder.PlaceDetails, error) {
	finder, err := s.container.Finder()
	if err != nil {
		return nil, err
	}
	return finder.FetchPlaceDetails(s.ctx, placeID, name)
}

// removeSuggestion drops a saved suggestion. When it was the last one the
// search box is cleared. Must be called with mu held.
func (s *Session) removeSuggestion(placeID string) {
	i := s.suggestionIndex(placeID)
	if i < 0 {
		return
	}
	s.suggestions = slices.Delete(slices.Clone(s.suggestions), i, i+1)
	if len(s.suggestions) == 0 {
		s.query = ""
		s.clears++
		s.settled = ""
		s.debouncer.Trigger("")
	}
}

// Delete removes a saved place.
func (s *Session) Delete(id string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	delete(s.refreshErrs, id)
	s.mu.Unlock()

	if !s.container.DeletePlace(s.ctx, id) {
		s.changed()
	}
}

// Refresh requests a new summary for the saved place with id. A refresh
// already in flight for id is not repeated.
func (s *Session) Refresh(id string) {
	s.mu.Lock()
	if s.closed || s.refreshing[id] {
		s.mu.Unlock()
		return
	}
	place, ok := s.container.Place(id)
	if !ok {
		s.mu.Unlock()
		return
	}
	s.refreshing[id] = true
	delete(s.refreshErrs, id)
	s.wg.Add(1)
	s.mu.Unlock()
	s.changed()

	go func() {
		defer s.wg.Done()

		updated, err := s.refreshSummary(place)
		// A place deleted while its refresh was in flight gets no toast and
		// no inline error.
		var saved bool
		if err == nil {
			saved = s.container.UpdatePlace(s.ctx, updated)
		} else {
			saved = s.container.Has(id)
		}

		s.mu.Lock()
		delete(s.refreshing, id)
		switch {
		case !saved:
		case err != nil:
			msg := placefinder.ErrorMessage(err)
			s.refreshErrs[id] = msg
			s.pushToast(msg, placefinder.ToastError)
		default:
			s.pushToast(fmt.Sprintf("Summary refreshed for '%s'.", place.Name), placefinder.ToastSuccess)
		}
		s.mu.Unlock()
		s.changed()
	}()
}

func (s *Session) refreshSummary(place *placefinder.PlaceDetails) (*placefinder.PlaceDetails, error) {
	finder, err := s.container.Finder()
	if err != nil {
		return nil, err
	}
	return finder.RefreshSummary(s.ctx, place)
}

// Wait blocks until every save, refresh and search started so far has
// finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close stops the session. Pending input is discarded and in-flight
// requests are cancelled.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.toastTimer != nil {
		s.toastTimer.Stop()
	}
	s.mu.Unlock()

	s.debouncer.Stop()
	s.unsubscribe()
	s.cancel()
	s.wg.Wait()
}

// pushToast must be called with mu held.
func (s *Session) pushToast(message string, kind placefinder.ToastKind) {
	t := s.toasts.Push(message, kind)
	s.logger.Debug("toast", "id", t.ID, "type", t.Kind, "message", t.Message)
	s.scheduleToastExpiry()
}

// scheduleToastExpiry arms a timer for the oldest live toast so the view
// is re-rendered when it disappears. Must be called with mu held.
func (s *Session) scheduleToastExpiry() {
	next, ok := s.toasts.NextExpiry()
	if !ok || s.closed {
		return
	}
	d := max(time.Until(next), 0)
	if s.toastTimer != nil {
		s.toastTimer.Stop()
	}
	s.toastTimer = time.AfterFunc(d, func() {
		s.mu.Lock()
		s.scheduleToastExpiry()
		s.mu.Unlock()
		s.changed()
	})
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// suggestionIndex must be called with mu held.
func (s *Session) suggestionIndex(placeID string) int {
	return slices.IndexFunc(s.suggestions, func(p *placefinder.PlaceSuggestion) bool {
		return p.PlaceID == placeID
	})
}
