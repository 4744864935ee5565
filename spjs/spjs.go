// Package spjs forwards gcode to a printer attached to a remote
// Serial Port JSON Server.
package spjs

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// MaxBatch is the number of lines sent per sendjson command.
const MaxBatch = 100

// ErrWipedQueue is returned when the server drops queued lines.
var ErrWipedQueue = errors.New("spjs: wiped queue")

var lastID int64

func nextID() string {
	id := atomic.AddInt64(&lastID, 1)
	return "gt_" + strconv.FormatInt(id, 36)
}

// Client writes lines to a single serial port on an SPJS server.
type Client struct {
	ws   *websocket.Conn
	port string
	baud int

	wMx sync.Mutex

	mx      sync.Mutex
	waiting map[string]chan error
	last    chan error
	failed  error

	readDone chan struct{}
	readErr  error
}

// Dial connects to the SPJS websocket at url and opens port
// on the server if it is not already open.
func Dial(url, port string, baud int) (*Client, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", url, err)
	}

	c := &Client{
		ws:       ws,
		port:     port,
		baud:     baud,
		waiting:  make(map[string]chan error, 100),
		readDone: make(chan struct{}),
	}
	go c.readLoop()

	err = c.writeMessage([]byte("list"))
	if err != nil {
		ws.Close()
		return nil, err
	}

	return c, nil
}

func (c *Client) writeMessage(data []byte) error {
	c.wMx.Lock()
	defer c.wMx.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *Client) readLoop() {
	defer close(c.readDone)
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.failAll(err)
			c.readErr = err
			return
		}
		if !bytes.HasPrefix(data, []byte("{")) {
			// ignore echo messages
			continue
		}
		val, err := parseMessage(data)
		if err != nil {
			log.Println("ERROR: spjs parse:", err)
			continue
		}
		c.handle(val)
	}
}

func (c *Client) handle(val interface{}) {
	switch msg := val.(type) {
	case *SerialPortList:
		for _, p := range msg.SerialPorts {
			if p.Name != c.port || p.IsOpen {
				continue
			}
			err := c.writeMessage([]byte(fmt.Sprintf("open %s %d marlin", c.port, c.baud)))
			if err != nil {
				log.Println("ERROR: spjs open:", err)
			}
		}
	case *CmdStatus:
		switch msg.Cmd {
		case "WipedQueue":
			c.failAll(ErrWipedQueue)
		case "Complete":
			c.mx.Lock()
			if ch := c.waiting[msg.ID]; ch != nil {
				ch <- nil
				delete(c.waiting, msg.ID)
			}
			c.mx.Unlock()
		}
	case *ErrorMessage:
		log.Println("ERROR: spjs:", msg.Error)
	}
}

func (c *Client) failAll(err error) {
	c.mx.Lock()
	defer c.mx.Unlock()
	if c.failed == nil {
		c.failed = err
	}
	for id, ch := range c.waiting {
		ch <- err
		delete(c.waiting, id)
	}
}

// Write queues every line of p on the remote port.
func (c *Client) Write(p []byte) (int, error) {
	c.mx.Lock()
	err := c.failed
	c.mx.Unlock()
	if err != nil {
		return 0, err
	}

	scan := bufio.NewScanner(bytes.NewReader(p))
	for {
		j := JSON{Port: c.port}
		for len(j.Data) < MaxBatch && scan.Scan() {
			line := strings.TrimSpace(scan.Text())
			if line == "" {
				continue
			}
			j.Data = append(j.Data, Data{Data: line + "\n", ID: nextID()})
		}
		if len(j.Data) == 0 {
			break
		}
		err = c.send(j)
		if err != nil {
			return 0, err
		}
	}

	return len(p), scan.Err()
}

func (c *Client) send(j JSON) error {
	data, err := json.Marshal(j)
	if err != nil {
		return err
	}

	// register before sending so a fast completion is not missed
	wait := make(chan error, 1)
	c.mx.Lock()
	c.waiting[j.Data[len(j.Data)-1].ID] = wait
	c.last = wait
	c.mx.Unlock()

	return c.writeMessage(append([]byte("sendjson "), data...))
}

// Close waits for the last queued line to complete, then disconnects.
func (c *Client) Close() error {
	c.mx.Lock()
	last := c.last
	c.mx.Unlock()

	var err error
	if last != nil {
		select {
		case err = <-last:
		case <-c.readDone:
			err = c.readErr
		}
	}

	c.wMx.Lock()
	c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.wMx.Unlock()
	cErr := c.ws.Close()
	if err == nil {
		err = cErr
	}
	return err
}
