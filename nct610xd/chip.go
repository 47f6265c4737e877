// Package nct610xd drives the GPIO function of the Nuvoton NCT6102D/NCT6104D/
// NCT6106D Super-I/O chips from userspace. The chip is found by probing the
// two well known configuration window addresses, after which individual pins
// can be read and written through a Controller. No pin state is cached, the
// hardware registers are the single source of truth.
package nct610xd

import (
	"github.com/sirupsen/logrus"

	"github.com/BertoldVdb/superio-gpio/portio"
	"github.com/BertoldVdb/superio-gpio/superio"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrorNotFound means no supported chip responds at one probed address
	ErrorNotFound = Error("No supported chip at this address")

	// ErrorEnableFailed means the GPIO port enable bit did not stick
	ErrorEnableFailed = Error("Failed to enable GPIO port group 4")

	// ErrorNoSuchDevice means no probed address had a supported chip
	ErrorNoSuchDevice = Error("No supported chip found")

	// ErrorOutOfRange means the pin index is not covered by any bank
	ErrorOutOfRange = Error("Pin index out of range")
)

// ChipType identifies the supported chip family
type ChipType int

const NCT610xD ChipType = 0

func (t ChipType) String() string {
	if t == NCT610xD {
		return "NCT610xD"
	}
	return "unknown"
}

// SIO identifies a found chip. It is created once during discovery and not
// modified afterwards.
type SIO struct {
	Addr uint16
	Type ChipType
}

// Find probes the well known configuration window addresses in a fixed order
// and returns the first supported chip. During the probe the GPIO port group
// 4 is enabled, with a read back to verify the chip accepted it. When no
// address has a supported chip ErrorNoSuchDevice is returned. The logger may
// be nil.
func Find(bus portio.Bus, logger *logrus.Entry) (*SIO, error) {
	for _, addr := range probeAddresses {
		sio, err := probe(bus, addr, logger)
		if err == nil {
			return sio, nil
		}

		if err != ErrorNotFound && logger != nil {
			logger.Errorf("Probe at %#x failed: %v", addr, err)
		}
	}

	return nil, ErrorNoSuchDevice
}

func probe(bus portio.Bus, addr uint16, logger *logrus.Entry) (*SIO, error) {
	session, err := superio.Open(bus, addr)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	devid, err := session.ReadWord(superio.RegChipID)
	if err != nil {
		return nil, err
	}

	if devid != chipIDNCT610xD {
		if logger != nil {
			logger.Debugf("Unsupported device %#04x at %#x", devid, addr)
		}
		return nil, ErrorNotFound
	}

	sio := &SIO{
		Addr: addr,
		Type: NCT610xD,
	}

	/* Port group 4 is disabled after reset and must be turned on once */
	if err := session.Select(ldGpio); err != nil {
		return nil, err
	}

	if _, err := session.UpdateRegister(superio.RegDeviceEnable, gpio4EnableBit, 0); err != nil {
		return nil, err
	}

	cfg, err := session.ReadRegister(superio.RegDeviceEnable)
	if err != nil {
		return nil, err
	}
	if cfg&gpio4EnableBit == 0 {
		return nil, ErrorEnableFailed
	}

	if logger != nil {
		logger.Infof("Found %s at %#x, chip id %#04x", sio.Type, addr, devid)
	}

	return sio, nil
}
