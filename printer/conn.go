package printer

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultWindow is the number of unacknowledged lines allowed in flight.
// Marlin and Sprinter buffer 4 commands by default.
const DefaultWindow = 4

// ErrReset will be returned from write methods if the firmware restarts
// before all commands are acknowledged.
var ErrReset = errors.New("printer reset")

// Conn streams gcode lines to printer firmware that answers
// each line with "ok".
type Conn struct {
	rw     io.ReadWriter
	window int

	ackCh   chan error
	resetCh chan struct{}
	readErr chan error
	closeCh chan struct{}
	startCh chan struct{}
	wrote   int32

	startOnce sync.Once

	wMx     sync.Mutex
	pending int
	closed  bool
}

var _ io.WriteCloser = &Conn{}

// NewConn creates a new Conn using the provided ReadWriter for data.
func NewConn(rw io.ReadWriter, window int) *Conn {
	if window < 1 {
		window = DefaultWindow
	}
	c := &Conn{
		rw:      rw,
		window:  window,
		ackCh:   make(chan error, window),
		resetCh: make(chan struct{}, 1),
		readErr: make(chan error, 1),
		closeCh: make(chan struct{}),
		startCh: make(chan struct{}),
	}
	go c.readLoop()
	return c
}

func (c *Conn) readLoop() {
	scan := bufio.NewScanner(c.rw)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		var ack error
		switch {
		case strings.HasPrefix(line, "ok"):
		case strings.HasPrefix(strings.ToLower(line), "error"):
			ack = errors.New(line)
		case line == "start":
			if atomic.LoadInt32(&c.wrote) == 0 {
				// boot banner after the port was opened
				c.startOnce.Do(func() { close(c.startCh) })
				continue
			}
			select {
			case c.resetCh <- struct{}{}:
			default:
			}
			continue
		default:
			if line != "" {
				log.Println("printer:", line)
			}
			continue
		}

		select {
		case c.ackCh <- ack:
		case <-c.closeCh:
			return
		}
	}

	err := scan.Err()
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	c.readErr <- err
	close(c.readErr)
}

// WaitStart waits up to timeout for the firmware boot banner. Boards
// that reset when the port opens drop anything sent before it.
func (c *Conn) WaitStart(timeout time.Duration) bool {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-c.startCh:
		return true
	case <-t.C:
		return false
	}
}

// next waits for one acknowledgement.
func (c *Conn) next() error {
	select {
	case <-c.resetCh:
		c.pending = 0
		return ErrReset
	default:
	}

	select {
	case <-c.resetCh:
		c.pending = 0
		return ErrReset
	case err := <-c.ackCh:
		if c.pending > 0 {
			c.pending--
		}
		return err
	case err, ok := <-c.readErr:
		// nothing more will be acknowledged
		c.pending = 0
		if !ok {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
}

func splitLinesKeepN(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), append(data[:len(data):len(data)], '\n'), nil
	}
	return 0, nil, nil
}

// Write sends every line in p, blocking while the firmware
// buffer is full. A partial last line is terminated.
func (c *Conn) Write(p []byte) (int, error) {
	c.wMx.Lock()
	defer c.wMx.Unlock()
	if c.closed {
		return 0, io.ErrClosedPipe
	}

	var n int
	scan := bufio.NewScanner(bytes.NewReader(p))
	scan.Split(splitLinesKeepN)
	for scan.Scan() {
		line := scan.Bytes()
		if len(bytes.TrimSpace(line)) > 0 {
			for c.pending >= c.window {
				err := c.next()
				if err != nil {
					return n, err
				}
			}
			atomic.StoreInt32(&c.wrote, 1)
			_, err := c.rw.Write(line)
			if err != nil {
				return n, err
			}
			c.pending++
		}
		n += len(line)
	}

	return len(p), scan.Err()
}

// Flush waits until every line sent has been acknowledged.
func (c *Conn) Flush() error {
	c.wMx.Lock()
	defer c.wMx.Unlock()
	return c.flush()
}

func (c *Conn) flush() (err error) {
	for c.pending > 0 {
		e := c.next()
		if err == nil {
			err = e
		}
	}
	return err
}

// Close waits for outstanding lines, then closes the
// underlying ReadWriter if it implements io.Closer.
func (c *Conn) Close() error {
	c.wMx.Lock()
	defer c.wMx.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	err := c.flush()
	close(c.closeCh)
	if closer, ok := c.rw.(io.Closer); ok {
		cErr := closer.Close()
		if err == nil {
			err = cErr
		}
	}
	return err
}
