package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type rotatedFile struct {
	config    *logfileConfig
	file      *os.File
	mu        sync.Mutex
	ticker    *time.Ticker
	closeChan chan struct{}
	done      chan struct{}
}

func newRotatedFile(config *logfileConfig) (*rotatedFile, error) {
	rfile := &rotatedFile{
		config:    config,
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}

	if err := rfile.rotateFile(); err != nil {
		return nil, err
	}

	if rfile.config.Rotate && rfile.config.RotatePeriod > 0 {
		rfile.ticker = time.NewTicker(rfile.config.RotatePeriod)
		go rfile.rotationWorker()
	} else {
		close(rfile.done)
	}

	return rfile, nil
}

func (d *rotatedFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return 0, os.ErrClosed
	}
	return d.file.Write(p)
}

func (d *rotatedFile) Close() {
	if d.ticker != nil {
		d.ticker.Stop()
	}
	close(d.closeChan)
	<-d.done

	d.mu.Lock()
	if d.file != nil {
		d.file.Close()
		d.file = nil
	}
	d.mu.Unlock()
}

func (d *rotatedFile) rotateFile() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(d.config.Dir, 0755); err != nil {
		return fmt.Errorf("unable to create log directory: %w", err)
	}

	filename := filepath.Join(d.config.Dir, fmt.Sprintf("%s-%s.log", d.config.Prefix, time.Now().Format("2006.01.02T15-04")))
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}

	if d.file != nil {
		d.file.Close()
	}
	d.file = file

	return nil
}

func (d *rotatedFile) rotationWorker() {
	defer close(d.done)
	for {
		select {
		case <-d.ticker.C:
			if err := d.rotateFile(); err != nil {
				fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
			}
		case <-d.closeChan:
			return
		}
	}
}
