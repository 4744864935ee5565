package printer

import (
	"fmt"
	"log"
	"time"

	"github.com/tarm/serial"
)

// DefaultBaud is the usual rate for reprap firmware.
const DefaultBaud = 115200

// BootTimeout bounds the wait for the firmware banner after opening a port.
var BootTimeout = 3 * time.Second

// OpenSerial opens the named serial port and returns a Conn streaming to it.
func OpenSerial(name string, baud int) (*Conn, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	port, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}

	c := NewConn(port, DefaultWindow)
	if !c.WaitStart(BootTimeout) {
		log.Printf("no start banner from %s after %s, sending anyway", name, BootTimeout)
	}
	return c, nil
}
