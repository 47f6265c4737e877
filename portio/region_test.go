package portio

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func check(t *testing.T, condition bool, reason ...interface{}) {
	if !condition {
		t.Error(reason...)
		t.FailNow()
	}
}

func TestClaimRelease(t *testing.T) {
	LockDir = t.TempDir()

	region, err := TryClaimRegion(0x2e, 2)
	check(t, err == nil && region != nil, "TestClaimRelease: Claim failed", err)

	_, err = TryClaimRegion(0x2e, 2)
	check(t, err == ErrorBusy, "TestClaimRelease: Second claim did not fail", err)

	/* A different base address is a different region */
	other, err := TryClaimRegion(0x4e, 2)
	check(t, err == nil, "TestClaimRelease: Claim of other region failed", err)
	check(t, other.Release() == nil, "TestClaimRelease: Release of other region failed")

	check(t, region.Release() == nil, "TestClaimRelease: Release failed")

	region, err = TryClaimRegion(0x2e, 2)
	check(t, err == nil, "TestClaimRelease: Claim after release failed", err)
	check(t, region.Release() == nil, "TestClaimRelease: Release failed")
}

func TestReleaseTwice(t *testing.T) {
	LockDir = t.TempDir()

	region, err := TryClaimRegion(0x2e, 2)
	check(t, err == nil, "TestReleaseTwice: Claim failed", err)

	check(t, region.Release() == nil, "TestReleaseTwice: First release failed")
	check(t, region.Release() == ErrorReleased, "TestReleaseTwice: Second release did not report ErrorReleased")
}

func TestClaimConcurrent(t *testing.T) {
	LockDir = t.TempDir()

	holders := int32(0)

	var wg sync.WaitGroup
	work := func() {
		defer wg.Done()

		for i := 0; i < 25; {
			region, err := TryClaimRegion(0x2e, 2)
			if err == ErrorBusy {
				continue
			}
			check(t, err == nil, "TestClaimConcurrent: Claim failed", err)

			new := atomic.AddInt32(&holders, 1)
			check(t, new == 1, "TestClaimConcurrent: Multiple holders of the same region")

			time.Sleep(time.Duration(rand.Float32()*500) * time.Microsecond)

			atomic.AddInt32(&holders, -1)
			check(t, region.Release() == nil, "TestClaimConcurrent: Release failed")

			i++
		}
	}

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go work()
	}

	wg.Wait()
}
