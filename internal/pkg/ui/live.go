// Package ui prints a live table of the progress of a gallery.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uilive"
	"github.com/gosuri/uitable"
	"github.com/internetarchive/Vitrine/internal/pkg/controler/pause"
	"github.com/internetarchive/Vitrine/internal/pkg/materializer"
	"github.com/internetarchive/Vitrine/internal/pkg/stats"
	"github.com/internetarchive/Vitrine/internal/pkg/surface"
)

// Gallery is what the live view displays of a gallery
type Gallery interface {
	Rendered() int
	Total() int
	State() materializer.State
}

// NodeCounter reports what the mounted nodes display
type NodeCounter interface {
	Status() surface.NodeStatus
}

type Live struct {
	Name     string
	Gallery  Gallery
	Nodes    NodeCounter // optional
	Interval time.Duration
	Out      io.Writer

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func New(name string, gallery Gallery, nodes NodeCounter) *Live {
	return &Live{
		Name:     name,
		Gallery:  gallery,
		Nodes:    nodes,
		Interval: time.Second,
		Out:      os.Stdout,
	}
}

// Table builds the current progress table
func (l *Live) Table() *uitable.Table {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true

	state := l.Gallery.State().String()
	if pause.IsPaused() {
		state += " (scroll paused)"
	}

	table.AddRow("", "")
	table.AddRow("  - Gallery:", l.Name)
	table.AddRow("  - State:", state)
	table.AddRow("  - Rendered:", fmt.Sprintf("%d/%d", l.Gallery.Rendered(), l.Gallery.Total()))
	table.AddRow("  - Active loads:", stats.ActiveLoadsGet())
	table.AddRow("  - Queued loads:", stats.QueuedLoadsGet())
	table.AddRow("  - Loaded:", stats.AssetsLoadedGet())
	table.AddRow("  - Placeholders:", stats.AssetsExhaustedGet())

	if rate, ok := stats.GetMap()["Assets/s"]; ok {
		table.AddRow("  - Assets/s:", rate)
	}

	if l.Nodes != nil {
		status := l.Nodes.Status()
		table.AddRow("  - Blank nodes:", status.Blank)
		table.AddRow("  - Painted:", humanize.Bytes(uint64(status.Bytes)))
	}

	table.AddRow("", "")
	table.AddRow("  - Allocated (heap):", humanize.Bytes(m.Alloc))
	table.AddRow("  - Goroutines:", runtime.NumGoroutine())
	table.AddRow("", "")

	return table
}

// Start refreshes the table every interval until ctx is done or Stop is called
func (l *Live) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)

	writer := uilive.New()
	writer.Out = l.Out
	writer.Start()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer writer.Stop()

		ticker := time.NewTicker(l.Interval)
		defer ticker.Stop()

		for {
			fmt.Fprintln(writer, l.Table().String())
			writer.Flush()

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop prints the table one last time and waits for the refresh loop to exit
func (l *Live) Stop() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	l.wg.Wait()
}
