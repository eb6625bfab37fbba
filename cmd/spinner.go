package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// spinner animates a status line while a long request runs.
type spinner struct {
	message string
	out     io.Writer
	quit    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

func newSpinner(message string) (s *spinner) {
	s = &spinner{
		message: message,
		out:     os.Stdout,
		quit:    make(chan struct{}),
	}
	return s
}

// startSpinner starts a spinner unless verbose output is on. The result is nil in that case,
// and stop on a nil spinner does nothing.
func startSpinner(message string) (s *spinner) {
	if getVerbose() {
		fmt.Println(message)
		return s
	}

	s = newSpinner(message)
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *spinner) run() {
	defer s.wg.Done()

	frames := []string{"|", "/", "-", "\\"}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	fmt.Fprintf(s.out, "%s ", s.message)
	for i := 0; ; i++ {
		select {
		case <-s.quit:
			fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+2))
			return
		case <-ticker.C:
			fmt.Fprintf(s.out, "\r%s %s", s.message, frames[i%len(frames)])
		}
	}
}

func (s *spinner) stop() {
	if s == nil {
		return
	}
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}
