package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ValueTestSuite struct {
	suite.Suite
}

func TestValueSuite(t *testing.T) {
	suite.Run(t, new(ValueTestSuite))
}

func (suite *ValueTestSuite) TestGetReturnsInitial() {
	v := New([]string{})
	suite.Empty(v.Get())

	flag := New(true)
	suite.True(flag.Get())
}

func (suite *ValueTestSuite) TestSubscribeReceivesCurrentValueImmediately() {
	v := New(42)

	var got []int
	cancel := v.Subscribe(func(value int) { got = append(got, value) })
	defer cancel()

	suite.Equal([]int{42}, got)
}

func (suite *ValueTestSuite) TestSetNotifiesBeforeReturning() {
	v := New("a")

	var got []string
	cancel := v.Subscribe(func(value string) { got = append(got, value) })
	defer cancel()

	v.Set("b")
	suite.Equal([]string{"a", "b"}, got)

	v.Set("b")
	suite.Equal([]string{"a", "b", "b"}, got, "equal values are still published")
	suite.Equal("b", v.Get())
}

func (suite *ValueTestSuite) TestObserversNotifiedInSubscriptionOrder() {
	v := New(0)

	var order []string
	c1 := v.Subscribe(func(value int) {
		if value == 1 {
			order = append(order, "first")
		}
	})
	c2 := v.Subscribe(func(value int) {
		if value == 1 {
			order = append(order, "second")
		}
	})
	defer c1()
	defer c2()

	v.Set(1)
	suite.Equal([]string{"first", "second"}, order)
}

func (suite *ValueTestSuite) TestCancelStopsNotifications() {
	v := New(0)

	var got []int
	cancel := v.Subscribe(func(value int) { got = append(got, value) })
	suite.Equal(1, v.Subscribers())

	v.Set(1)
	cancel()
	cancel()
	v.Set(2)

	suite.Equal([]int{0, 1}, got)
	suite.Equal(0, v.Subscribers())
	suite.Equal(2, v.Get())
}

func (suite *ValueTestSuite) TestCancelOnlyRemovesOwnSubscription() {
	v := New(0)

	var a, b []int
	cancelA := v.Subscribe(func(value int) { a = append(a, value) })
	cancelB := v.Subscribe(func(value int) { b = append(b, value) })
	defer cancelB()

	cancelA()
	v.Set(7)

	suite.Equal([]int{0}, a)
	suite.Equal([]int{0, 7}, b)
}

func (suite *ValueTestSuite) TestCancelFromInsideObserver() {
	v := New(0)

	var (
		got    []int
		cancel CancelFunc
	)
	cancel = v.Subscribe(func(value int) {
		got = append(got, value)
		if value == 1 {
			cancel()
		}
	})

	v.Set(1)
	v.Set(2)

	suite.Equal([]int{0, 1}, got)
}

func (suite *ValueTestSuite) TestGetFromInsideObserver() {
	v := New(0)

	var seen []int
	cancel := v.Subscribe(func(int) { seen = append(seen, v.Get()) })
	defer cancel()

	v.Set(5)
	suite.Equal([]int{0, 5}, seen)
}

func (suite *ValueTestSuite) TestUpdate() {
	v := New(10)

	var got []int
	cancel := v.Subscribe(func(value int) { got = append(got, value) })
	defer cancel()

	v.Update(func(current int) int { return current + 5 })
	suite.Equal(15, v.Get())
	suite.Equal([]int{10, 15}, got)
}

func (suite *ValueTestSuite) TestConcurrentUpdatesAreSerialized() {
	v := New(0)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Update(func(current int) int { return current + 1 })
		}()
	}
	wg.Wait()

	suite.Equal(100, v.Get())
}

func (suite *ValueTestSuite) TestConcurrentSetsObservedInCommitOrder() {
	v := New(0)

	var (
		mu   sync.Mutex
		seen []int
	)
	cancel := v.Subscribe(func(value int) {
		mu.Lock()
		seen = append(seen, value)
		mu.Unlock()
	})
	defer cancel()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			v.Set(n)
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	suite.Len(seen, 51)
	suite.Equal(v.Get(), seen[len(seen)-1], "last notification matches the stored value")
}

func (suite *ValueTestSuite) TestWatch() {
	v := New("idle")
	ctx, cancel := context.WithCancel(context.Background())

	ch := v.Watch(ctx, 4)
	suite.Equal("idle", <-ch)

	v.Set("busy")
	suite.Equal("busy", <-ch)

	cancel()

	suite.Eventually(func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	suite.Eventually(func() bool { return v.Subscribers() == 0 }, time.Second, 10*time.Millisecond)

	// Publishing after the watcher is gone must not block.
	v.Set("done")
	suite.Equal("done", v.Get())
}

func (suite *ValueTestSuite) TestWatchZeroBufferDoesNotBlockSubscribe() {
	v := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := v.Watch(ctx, 0)
	suite.Equal(1, <-ch)
}
