// Package superio implements the indexed register access protocol of Nuvoton
// style Super-I/O chips. All register access happens inside a Session: the
// chip exposes its configuration registers through a single index/data port
// pair that must be unlocked before use and locked again afterwards, and that
// may be shared with entirely unrelated drivers.
package superio

import (
	"sync"

	"github.com/BertoldVdb/superio-gpio/portio"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrorClosed is returned when a Session is used after Close
	ErrorClosed = Error("Session is closed")
)

// Session is an exclusive lease on the configuration window of one chip.
// While it exists no other holder can touch the index/data port pair.
// Close must be called on every path out of an active session, including
// error paths, or the I/O region stays claimed forever.
type Session struct {
	bus  portio.Bus
	base uint16

	region *portio.Region

	mutex  sync.Mutex
	closed bool
}

// Open claims the two port I/O region at base and puts the chip in
// configuration mode. It fails fast with portio.ErrorBusy when the region is
// held by someone else. On any failure after the claim the region is released
// before the error is returned.
func Open(bus portio.Bus, base uint16) (*Session, error) {
	region, err := portio.TryClaimRegion(base, RegionSize)
	if err != nil {
		return nil, err
	}

	/* According to the datasheet the key must be sent twice */
	for i := 0; i < 2; i++ {
		if err := bus.WriteByte(base, UnlockKey); err != nil {
			region.Release()
			return nil, err
		}
	}

	return &Session{
		bus:    bus,
		base:   base,
		region: region,
	}, nil
}

func (s *Session) active() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return ErrorClosed
	}
	return nil
}

// Select makes the registers of the given logical device addressable. It may
// be called any number of times during a session.
func (s *Session) Select(device uint8) error {
	if err := s.active(); err != nil {
		return err
	}

	if err := s.bus.WriteByte(s.base, RegDeviceSelect); err != nil {
		return err
	}
	return s.bus.WriteByte(s.base+1, device)
}

// ReadRegister reads the register at the given index
func (s *Session) ReadRegister(index uint8) (uint8, error) {
	if err := s.active(); err != nil {
		return 0, err
	}

	if err := s.bus.WriteByte(s.base, index); err != nil {
		return 0, err
	}
	return s.bus.ReadByte(s.base + 1)
}

// ReadWord reads two consecutive registers as one big-endian 16 bit value.
// The chip stores the high byte at index and the low byte at index+1.
func (s *Session) ReadWord(index uint8) (uint16, error) {
	high, err := s.ReadRegister(index)
	if err != nil {
		return 0, err
	}

	low, err := s.ReadRegister(index + 1)
	if err != nil {
		return 0, err
	}

	return uint16(high)<<8 | uint16(low), nil
}

// WriteRegister writes the register at the given index
func (s *Session) WriteRegister(index uint8, value uint8) error {
	if err := s.active(); err != nil {
		return err
	}

	if err := s.bus.WriteByte(s.base, index); err != nil {
		return err
	}
	return s.bus.WriteByte(s.base+1, value)
}

// UpdateRegister reads the register at index, sets the bits in set, clears
// the bits in clear and writes the result back. The written value is
// returned. Clear wins if a bit is present in both masks.
func (s *Session) UpdateRegister(index uint8, set uint8, clear uint8) (uint8, error) {
	value, err := s.ReadRegister(index)
	if err != nil {
		return 0, err
	}

	value |= set
	value &^= clear

	return value, s.WriteRegister(index, value)
}

// Close locks the configuration window and releases the I/O region. It can
// safely be called multiple times, only the first call does anything.
func (s *Session) Close() error {
	s.mutex.Lock()
	closed := s.closed
	s.closed = true
	s.mutex.Unlock()

	if closed {
		return ErrorClosed
	}

	/* The region must be released even if the lock write fails */
	err := s.bus.WriteByte(s.base, LockKey)
	errRelease := s.region.Release()

	if err != nil {
		return err
	}
	return errRelease
}
