package state

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"motorhub/pkg/testutil"
)

type StoreSuite struct {
	suite.Suite
	store *Store[plateReport]
}

func (s *StoreSuite) SetupTest() {
	s.store = NewStore[plateReport](5, 10)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) TestConvenienceDispatchers() {
	s.store.SetLoading(true)
	s.Equal(PhaseLoading, s.store.State().Phase())

	s.store.SetError("no network")
	s.Equal("no network", s.store.State().Request.Error)

	s.store.ClearError()
	s.store.SetData(report("MH12AB1234"))
	s.store.AddRecentSearch("mh12ab1234")
	s.store.SaveReport(report("MH12AB1234"))

	st := s.store.State()
	s.Equal(PhaseSuccess, st.Phase())
	s.Equal([]string{"MH12AB1234"}, st.Recent.Items())
	s.Equal(1, st.Saved.Len())

	s.store.RemoveRecentSearch("MH12AB1234")
	s.store.RemoveSavedReport("MH12AB1234")
	s.Zero(s.store.State().Recent.Len())
	s.Zero(s.store.State().Saved.Len())

	s.store.AddRecentSearch("DL01CD5678")
	s.store.SaveReport(report("DL01CD5678"))
	s.store.ClearRecentSearches()
	s.store.ClearSavedReports()
	s.Zero(s.store.State().Recent.Len())
	s.Zero(s.store.State().Saved.Len())
}

func (s *StoreSuite) TestSubscribe() {
	var calls atomic.Int32
	var last State[plateReport]
	unsubscribe := s.store.Subscribe(func(st State[plateReport]) {
		calls.Add(1)
		last = st
	})

	s.store.AddRecentSearch("MH12AB1234")
	s.Equal(int32(1), calls.Load())
	s.Equal([]string{"MH12AB1234"}, last.Recent.Items())

	unsubscribe()
	s.store.AddRecentSearch("DL01CD5678")
	s.Equal(int32(1), calls.Load())
}

func (s *StoreSuite) TestSubscriberMayReadStore() {
	s.store.Subscribe(func(State[plateReport]) {
		_ = s.store.State()
	})
	s.NotPanics(func() { s.store.SetLoading(true) })
}

func (s *StoreSuite) TestUpdateIsAtomic() {
	s.store.SaveReport(report("A"))
	next := s.store.Update(func(st State[plateReport]) []Action[plateReport] {
		if _, ok := st.Saved.Get("A"); !ok {
			return nil
		}
		return []Action[plateReport]{SetData(report("A")), AddRecentSearch[plateReport]("A")}
	})
	got, ok := next.Current()
	s.Require().True(ok)
	s.Equal("A", got.Plate)
	s.Equal([]string{"A"}, next.Recent.Items())
}

func (s *StoreSuite) TestConcurrentDispatchKeepsInvariants() {
	result := testutil.RunConcurrent(64, func(i int) error {
		s.store.AddRecentSearch(fmt.Sprintf("KA%02dAB1234", i%8))
		s.store.SaveReport(report(fmt.Sprintf("R%d", i%16)))
		if i%3 == 0 {
			s.store.SetError("x")
		} else {
			s.store.SetLoading(true)
		}
		return nil
	})
	s.Equal(int32(64), result.Successes)

	st := s.store.State()
	s.LessOrEqual(st.Recent.Len(), 5)
	s.LessOrEqual(st.Saved.Len(), 10)
	s.False(st.Request.Loading && st.Request.Error != "")
}

func TestStores(t *testing.T) {
	stores := NewStores[plateReport](5, 10)
	alice := testutil.TestIDs.UserID1
	bob := testutil.TestIDs.UserID2

	stores.For(alice).AddRecentSearch("MH12AB1234")
	require.Same(t, stores.For(alice), stores.For(alice))
	assert.Zero(t, stores.For(bob).State().Recent.Len())
	assert.Equal(t, 2, stores.Len())

	stores.Drop(alice)
	assert.Equal(t, 1, stores.Len())
	assert.Zero(t, stores.For(alice).State().Recent.Len())
}

func TestStores_ConcurrentFor(t *testing.T) {
	stores := NewStores[plateReport](5, 10)
	owner := testutil.TestIDs.UserID1
	seen := make(chan *Store[plateReport], 32)

	testutil.RunConcurrent(32, func(int) error {
		seen <- stores.For(owner)
		return nil
	})
	close(seen)

	first := <-seen
	for st := range seen {
		assert.Same(t, first, st)
	}
}
