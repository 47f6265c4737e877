package siosim

import (
	"testing"
)

func check(t *testing.T, condition bool, reason ...interface{}) {
	if !condition {
		t.Error(reason...)
		t.FailNow()
	}
}

func TestUnlockSequence(t *testing.T) {
	chip := New(0x2e, 0xd282)

	/* A single key press is not enough */
	chip.WriteByte(0x2e, unlockKey)
	check(t, !chip.Unlocked(), "TestUnlockSequence: Unlocked after one key")

	/* And the two presses must be consecutive */
	chip.WriteByte(0x2e, 0x20)
	chip.WriteByte(0x2e, unlockKey)
	check(t, !chip.Unlocked(), "TestUnlockSequence: Unlocked after interrupted sequence")

	chip.WriteByte(0x2e, unlockKey)
	chip.WriteByte(0x2e, unlockKey)
	check(t, chip.Unlocked(), "TestUnlockSequence: Not unlocked after two keys")

	chip.WriteByte(0x2e, lockKey)
	check(t, !chip.Unlocked(), "TestUnlockSequence: Not locked after lock key")
}

func TestLockedAccess(t *testing.T) {
	chip := New(0x2e, 0xd282)

	chip.WriteByte(0x2e, 0x60)
	chip.WriteByte(0x2f, 0x55)
	value, err := chip.ReadByte(0x2f)
	check(t, err == nil && value == 0xFF, "TestLockedAccess: Locked chip did not float the bus", value, err)
	check(t, chip.Violations() == 2, "TestLockedAccess: Violations not counted", chip.Violations())
	check(t, chip.Register(0, 0x60) == 0, "TestLockedAccess: Locked write stored")
}

func TestOtherPortsIgnored(t *testing.T) {
	chip := New(0x2e, 0xd282)

	value, err := chip.ReadByte(0x4f)
	check(t, err == nil && value == 0xFF, "TestOtherPortsIgnored: Foreign port did not float", value, err)

	chip.WriteByte(0x4e, unlockKey)
	chip.WriteByte(0x4e, unlockKey)
	check(t, !chip.Unlocked(), "TestOtherPortsIgnored: Foreign port unlocked the chip")
	check(t, chip.Violations() == 0, "TestOtherPortsIgnored: Foreign access counted as violation")
}
