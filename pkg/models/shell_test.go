package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPainter struct {
	mu     sync.Mutex
	paints []*Asset
	mounts []MountHandle
}

func (p *recordingPainter) Paint(handle MountHandle, asset *Asset) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paints = append(p.paints, asset)
	p.mounts = append(p.mounts, handle)
}

func TestNewShellIsPending(t *testing.T) {
	shell := NewShell(Descriptor{ID: "a", Locator: "a.jpg"}, 4)

	assert.Equal(t, "a", shell.GetID())
	assert.Equal(t, "a.jpg", shell.GetLocator())
	assert.Equal(t, 4, shell.Index)
	assert.Equal(t, LoadPending, shell.GetState())
	assert.Zero(t, shell.GetAttempts())
	assert.Nil(t, shell.GetAsset())
	assert.Nil(t, shell.GetMount())
}

func TestBeginAttemptLimit(t *testing.T) {
	shell := NewShell(Descriptor{ID: "a"}, 0)

	for want := range 3 {
		attempt, ok := shell.BeginAttempt(2)
		require.True(t, ok)
		assert.Equal(t, want, attempt)
		assert.Equal(t, LoadLoading, shell.GetState())
	}

	_, ok := shell.BeginAttempt(2)
	assert.False(t, ok)
	assert.Equal(t, 3, shell.GetAttempts())
}

func TestResolvePaintsOnce(t *testing.T) {
	painter := &recordingPainter{}
	shell := NewShell(Descriptor{ID: "a"}, 0)
	shell.Attach(painter, "node-a")

	asset := &Asset{Locator: "a.jpg", ContentType: "image/jpeg"}
	assert.True(t, shell.Resolve(asset))
	assert.False(t, shell.Resolve(asset))
	assert.False(t, shell.Exhaust(NewPlaceholder("a.jpg")))

	assert.Equal(t, LoadLoaded, shell.GetState())
	assert.Same(t, asset, shell.GetAsset())
	require.Len(t, painter.paints, 1)
	assert.Equal(t, MountHandle("node-a"), painter.mounts[0])

	_, ok := shell.BeginAttempt(10)
	assert.False(t, ok)
}

func TestExhaustShowsPlaceholder(t *testing.T) {
	painter := &recordingPainter{}
	shell := NewShell(Descriptor{ID: "a"}, 0)
	shell.Attach(painter, "node-a")

	assert.True(t, shell.Exhaust(NewPlaceholder("a.jpg")))
	assert.Equal(t, LoadExhausted, shell.GetState())
	assert.True(t, shell.GetAsset().Placeholder)
	assert.True(t, shell.GetState().IsTerminal())
	require.Len(t, painter.paints, 1)
}

func TestResolveWithoutPainter(t *testing.T) {
	shell := NewShell(Descriptor{ID: "a"}, 0)
	assert.True(t, shell.Resolve(&Asset{}))
}

func TestConcurrentFinishSingleWinner(t *testing.T) {
	painter := &recordingPainter{}
	shell := NewShell(Descriptor{ID: "a"}, 0)
	shell.Attach(painter, "node-a")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var ok bool
			if i%2 == 0 {
				ok = shell.Resolve(&Asset{})
			} else {
				ok = shell.Exhaust(NewPlaceholder(""))
			}
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Len(t, painter.paints, 1)
}

func TestLoadStateString(t *testing.T) {
	tests := map[LoadState]string{
		LoadPending:   "pending",
		LoadLoading:   "loading",
		LoadLoaded:    "loaded",
		LoadExhausted: "exhausted",
		LoadState(42): "unknown",
	}
	for state, want := range tests {
		assert.Equal(t, want, state.String())
	}
}

func TestScrollSampleEdge(t *testing.T) {
	assert.Equal(t, 1300.0, ScrollSample{Offset: 500, Viewport: 800}.Edge())
}

func TestDescriptorGetField(t *testing.T) {
	d := Descriptor{ID: "a", Fields: map[string]string{"title": "Sunset"}}
	assert.Equal(t, "Sunset", d.GetField("title"))
	assert.Empty(t, d.GetField("missing"))
	assert.Empty(t, Descriptor{}.GetField("title"))
}
