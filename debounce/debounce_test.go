package debounce_test

import (
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/placefinder/debounce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []string
	ch     chan string
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan string, 16)}
}

func (r *recorder) emit(v string) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
	r.ch <- v
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncer_Trigger(t *testing.T) {
	t.Parallel()

	t.Run("burst collapses to the last value", func(t *testing.T) {
		t.Parallel()

		rec := newRecorder()
		d := debounce.New(50*time.Millisecond, rec.emit)

		for _, v := range []string{"e", "ei", "eif", "eiff", "eiffel"} {
			d.Trigger(v)
		}
		assert.True(t, d.Pending())

		select {
		case got := <-rec.ch:
			assert.Equal(t, "eiffel", got)
		case <-time.After(2 * time.Second):
			t.Fatal("no emission")
		}

		time.Sleep(150 * time.Millisecond)
		assert.Equal(t, []string{"eiffel"}, rec.snapshot())
		assert.False(t, d.Pending())
	})

	t.Run("separated triggers emit separately", func(t *testing.T) {
		t.Parallel()

		rec := newRecorder()
		d := debounce.New(20*time.Millisecond, rec.emit)

		d.Trigger("paris")
		require.Equal(t, "paris", <-rec.ch)
		d.Trigger("rome")
		require.Equal(t, "rome", <-rec.ch)

		assert.Equal(t, []string{"paris", "rome"}, rec.snapshot())
	})

	t.Run("emits empty value", func(t *testing.T) {
		t.Parallel()

		rec := newRecorder()
		d := debounce.New(10*time.Millisecond, rec.emit)

		d.Trigger("")
		assert.Equal(t, "", <-rec.ch)
	})
}

func TestDebouncer_Stop(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	d := debounce.New(20*time.Millisecond, rec.emit)

	d.Trigger("lisbon")
	d.Stop()
	d.Trigger("porto")

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
	assert.False(t, d.Pending())
}

func TestNew_DefaultDelay(t *testing.T) {
	t.Parallel()

	d := debounce.New(0, func(string) {})
	assert.Equal(t, debounce.DefaultDelay, d.Delay())
}
