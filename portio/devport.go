//go:build amd64 || 386
// +build amd64 386

package portio

import (
	"github.com/u-root/u-root/pkg/memio"
)

// DevPort performs port I/O through the kernel /dev/port interface.
// The process needs to run as root or have CAP_SYS_RAWIO.
type DevPort struct {
	in  func(uint16, memio.UintN) error
	out func(uint16, memio.UintN) error
}

// OpenDevPort returns a Bus backed by /dev/port
func OpenDevPort() *DevPort {
	return &DevPort{
		in:  memio.In,
		out: memio.Out,
	}
}

func (d *DevPort) WriteByte(port uint16, value uint8) error {
	data := memio.Uint8(value)
	return d.out(port, &data)
}

func (d *DevPort) ReadByte(port uint16) (uint8, error) {
	var data memio.Uint8
	err := d.in(port, &data)
	return uint8(data), err
}
