// Package output opens the destination a session writes gcode to.
//
// A destination is one of:
//
//	""  or "-"                      standard output, never closed
//	serial:/dev/ttyUSB0[?baud=N]    printer on a local serial port
//	ws://host:8989/ws?port=NAME     printer behind an SPJS server
//	anything else                   file path, truncated on open
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/mastercactapus/gturtle/printer"
	"github.com/mastercactapus/gturtle/spjs"
)

// Stdout is the default destination.
var Stdout io.Writer = os.Stdout

// OpenError is returned when a destination cannot be opened for writing.
type OpenError struct {
	Dest string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open output %q: %v", e.Dest, e.Err)
}
func (e *OpenError) Unwrap() error { return e.Err }

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

type file struct {
	*bufio.Writer
	f *os.File
}

func (f *file) Close() error {
	err := f.Flush()
	cErr := f.f.Close()
	if err == nil {
		err = cErr
	}
	return err
}

// Open returns a writer for dest. baud is used for serial
// destinations that do not set their own.
func Open(dest string, baud int) (io.WriteCloser, error) {
	w, err := open(dest, baud)
	if err != nil {
		return nil, &OpenError{Dest: dest, Err: err}
	}
	return w, nil
}

func open(dest string, baud int) (io.WriteCloser, error) {
	switch {
	case dest == "" || dest == "-":
		return nopCloser{Stdout}, nil
	case strings.HasPrefix(dest, "serial:"):
		name, query := splitQuery(strings.TrimPrefix(dest, "serial:"))
		b, err := queryBaud(query, baud)
		if err != nil {
			return nil, err
		}
		return printer.OpenSerial(name, b)
	case strings.HasPrefix(dest, "ws://"), strings.HasPrefix(dest, "wss://"):
		u, err := url.Parse(dest)
		if err != nil {
			return nil, err
		}
		q := u.Query()
		port := q.Get("port")
		if port == "" {
			return nil, errors.New("missing port parameter")
		}
		b, err := queryBaud(q, baud)
		if err != nil {
			return nil, err
		}
		u.RawQuery = ""
		return spjs.Dial(u.String(), port, b)
	}

	f, err := os.Create(dest)
	if err != nil {
		return nil, err
	}
	return &file{Writer: bufio.NewWriter(f), f: f}, nil
}

func splitQuery(s string) (string, url.Values) {
	i := strings.IndexByte(s, '?')
	if i < 0 {
		return s, url.Values{}
	}
	q, err := url.ParseQuery(s[i+1:])
	if err != nil {
		q = url.Values{}
	}
	return s[:i], q
}

func queryBaud(q url.Values, def int) (int, error) {
	s := q.Get("baud")
	if s == "" {
		return def, nil
	}
	b, err := strconv.Atoi(s)
	if err != nil || b <= 0 {
		return 0, fmt.Errorf("invalid baud %q", s)
	}
	return b, nil
}
