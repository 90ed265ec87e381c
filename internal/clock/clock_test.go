package clock_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/duedate/internal/clock"
	"github.com/sandeepkv93/duedate/internal/clock/clocktest"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func TestFrozenFallsBackToBase(t *testing.T) {
	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	c := clock.NewFrozen(fixedClock(base))

	assert.True(t, c.Now().Equal(base))
}

func TestFreezeAtAndThaw(t *testing.T) {
	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	at := time.Date(2013, 12, 31, 16, 10, 53, 452*int(time.Millisecond), time.UTC)
	c := clock.NewFrozen(fixedClock(base))

	thaw := c.FreezeAt(at)
	require.True(t, c.Now().Equal(at))

	thaw()
	assert.True(t, c.Now().Equal(base))

	// a second thaw must not pop anything else
	outer := c.FreezeAt(at)
	thaw()
	assert.True(t, c.Now().Equal(at))
	outer()
	assert.True(t, c.Now().Equal(base))
}

func TestFreezesNest(t *testing.T) {
	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	first := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	c := clock.NewFrozen(fixedClock(base))

	thawFirst := c.FreezeAt(first)
	thawSecond := c.FreezeAt(second)
	assert.True(t, c.Now().Equal(second))

	thawSecond()
	assert.True(t, c.Now().Equal(first))

	thawFirst()
	assert.True(t, c.Now().Equal(base))
}

func TestOutOfOrderThawKeepsInnerFreeze(t *testing.T) {
	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	first := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	c := clock.NewFrozen(fixedClock(base))

	thawFirst := c.FreezeAt(first)
	thawSecond := c.FreezeAt(second)

	thawFirst()
	assert.True(t, c.Now().Equal(second))
	thawSecond()
	assert.True(t, c.Now().Equal(base))
}

func TestClocktestReleasesOnCleanup(t *testing.T) {
	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	c := clock.NewFrozen(fixedClock(base))
	at := time.Date(2013, 12, 31, 16, 10, 53, 0, time.UTC)

	t.Run("frozen", func(t *testing.T) {
		clocktest.FreezeAt(t, c, at)
		assert.True(t, c.Now().Equal(at))
	})

	assert.True(t, c.Now().Equal(base))
}

func TestFrozenConcurrentUse(t *testing.T) {
	base := time.Unix(0, 0)
	c := clock.NewFrozen(fixedClock(base))
	at := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			thaw := c.FreezeAt(at)
			_ = c.Now()
			thaw()
		}()
	}
	wg.Wait()

	assert.True(t, c.Now().Equal(base))
}
