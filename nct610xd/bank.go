package nct610xd

import (
	"github.com/BertoldVdb/superio-gpio/superio"
)

// Direction is the configured direction of a pin
type Direction int

const (
	DirectionIn  Direction = 0
	DirectionOut Direction = 1
)

func (d Direction) String() string {
	if d == DirectionIn {
		return "in"
	}
	return "out"
}

// Bank describes one physical group of up to 8 pins. The group has two 8 bit
// registers: the direction register at Regbase and the data register at
// Regbase+1. A set direction bit makes the pin an input.
type Bank struct {
	// Base is the first logical pin number of this bank
	Base uint32

	// NGpio is the number of pins in this bank, at most 8
	NGpio int

	// Regbase is the register index of the bank's direction register
	Regbase uint8

	controller *Controller
}

func (b *Bank) regDir() uint8 {
	return b.Regbase
}

func (b *Bank) regData() uint8 {
	return b.Regbase + 1
}

/* Every operation is one complete session: claim, unlock, select the GPIO
 * device, do the register work, lock, release. The session lease is what
 * makes the read-modify-write sequences atomic towards other users. */
func (b *Bank) open() (*superio.Session, error) {
	session, err := superio.Open(b.controller.bus, b.controller.sio.Addr)
	if err != nil {
		return nil, err
	}

	if err := session.Select(ldGpio); err != nil {
		session.Close()
		return nil, err
	}

	return session, nil
}

func (b *Bank) getDirection(offset uint) (Direction, error) {
	session, err := b.open()
	if err != nil {
		return DirectionIn, err
	}
	defer session.Close()

	dir, err := session.ReadRegister(b.regDir())
	if err != nil {
		return DirectionIn, err
	}

	if dir&(1<<offset) != 0 {
		return DirectionIn, nil
	}
	return DirectionOut, nil
}

func (b *Bank) directionInput(offset uint) error {
	session, err := b.open()
	if err != nil {
		return err
	}
	defer session.Close()

	_, err = session.UpdateRegister(b.regDir(), 1<<offset, 0)
	return err
}

func (b *Bank) directionOutput(offset uint, value bool) error {
	session, err := b.open()
	if err != nil {
		return err
	}
	defer session.Close()

	/* Commit the data bit first so the pin never drives a stale level
	 * while it is switched to output */
	if err := b.writeDataBit(session, offset, value); err != nil {
		return err
	}

	_, err = session.UpdateRegister(b.regDir(), 0, 1<<offset)
	return err
}

func (b *Bank) getValue(offset uint) (bool, error) {
	session, err := b.open()
	if err != nil {
		return false, err
	}
	defer session.Close()

	data, err := session.ReadRegister(b.regData())
	if err != nil {
		return false, err
	}

	return data&(1<<offset) != 0, nil
}

func (b *Bank) setValue(offset uint, value bool) error {
	session, err := b.open()
	if err != nil {
		return err
	}
	defer session.Close()

	return b.writeDataBit(session, offset, value)
}

func (b *Bank) writeDataBit(session *superio.Session, offset uint, value bool) error {
	set, clear := uint8(0), uint8(1<<offset)
	if value {
		set, clear = clear, set
	}

	_, err := session.UpdateRegister(b.regData(), set, clear)
	return err
}
