package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Rotator wraps a log file writer and caps it at a fixed number of lines.
// Once twice the capacity has been written, the file is rewritten with only
// the most recent lines so long-running processes cannot fill the disk.
type Rotator struct {
	writer   io.Writer
	buffer   *ringBuffer
	filePath string
	mu       sync.Mutex
}

// NewRotator creates a line-capped rotator around the given writer.
func NewRotator(writer io.Writer, maxLines int, filePath string) *Rotator {
	return &Rotator{
		writer:   writer,
		buffer:   newRingBuffer(maxLines),
		filePath: filePath,
	}
}

// Write implements io.Writer, tracking lines and rotating when needed.
func (w *Rotator) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err = w.writer.Write(p)
	if err != nil {
		return n, err
	}

	for line := range strings.SplitSeq(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}

		w.buffer.add(line)

		if w.buffer.totalSeen == w.buffer.capacity*2 {
			if err := w.rotate(); err != nil {
				return n, fmt.Errorf("failed to rotate log file: %w", err)
			}

			w.buffer.totalSeen = w.buffer.size
		}
	}

	return n, nil
}

// rotate rewrites the log file with only the buffered lines.
func (w *Rotator) rotate() error {
	lines := w.buffer.snapshot()
	if len(lines) == 0 {
		return nil
	}

	temp, err := os.CreateTemp(filepath.Dir(w.filePath), "temp-log-")
	if err != nil {
		return err
	}

	tempPath := temp.Name()

	if _, err := temp.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		temp.Close()
		os.Remove(tempPath)

		return err
	}

	if err := temp.Sync(); err != nil {
		temp.Close()
		os.Remove(tempPath)

		return err
	}

	temp.Close()

	if closer, ok := w.writer.(io.Closer); ok {
		closer.Close()
	}

	// Windows refuses to rename over an open file
	os.Remove(w.filePath)

	if err := os.Rename(tempPath, w.filePath); err != nil {
		return err
	}

	newFile, err := os.OpenFile(w.filePath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	w.writer = newFile

	return nil
}
