package store_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"phonereg/internal/registration/models"
	"phonereg/internal/registration/store"
	"phonereg/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *store.InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = store.NewInMemory()
}

func newRegistration(phone string, createdAt time.Time) *models.Registration {
	return &models.Registration{
		ID:        uuid.New(),
		Name:      "Ada",
		Email:     "ada@example.com",
		Phone:     phone,
		CreatedAt: createdAt,
	}
}

func (s *InMemoryStoreSuite) TestSave() {
	ctx := context.Background()
	now := time.Now()

	s.Run("duplicate phone is already used", func() {
		s.Require().NoError(s.store.Save(ctx, newRegistration("123321", now)))

		err := s.store.Save(ctx, newRegistration("123321", now.Add(time.Second)))
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)

		count, err := s.store.CountDistinctPhones(ctx)
		s.Require().NoError(err)
		s.Equal(1, count)
	})

	s.Run("stored copy is isolated from the caller", func() {
		reg := newRegistration("550055", now)
		s.Require().NoError(s.store.Save(ctx, reg))
		reg.Name = "mutated"

		regs, err := s.store.ListNewestFirst(ctx)
		s.Require().NoError(err)
		for _, r := range regs {
			s.NotEqual("mutated", r.Name)
		}
	})
}

func (s *InMemoryStoreSuite) TestListNewestFirst() {
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Save(ctx, newRegistration("111111", base)))
	s.Require().NoError(s.store.Save(ctx, newRegistration("123321", base.Add(2*time.Minute))))
	s.Require().NoError(s.store.Save(ctx, newRegistration("550055", base.Add(time.Minute))))

	regs, err := s.store.ListNewestFirst(ctx)
	s.Require().NoError(err)
	s.Require().Len(regs, 3)
	s.Equal("123321", regs[0].Phone)
	s.Equal("550055", regs[1].Phone)
	s.Equal("111111", regs[2].Phone)
}

func (s *InMemoryStoreSuite) TestListEmpty() {
	regs, err := s.store.ListNewestFirst(context.Background())
	s.Require().NoError(err)
	s.NotNil(regs)
	s.Empty(regs)
}

func (s *InMemoryStoreSuite) TestConcurrentSaveSamePhone() {
	ctx := context.Background()
	var wg sync.WaitGroup
	var accepted atomic.Int32
	for i := range 20 {
		wg.Go(func() {
			reg := newRegistration("123321", time.Now())
			reg.Email = fmt.Sprintf("user%d@example.com", i)
			if s.store.Save(ctx, reg) == nil {
				accepted.Add(1)
			}
		})
	}
	wg.Wait()

	s.Equal(int32(1), accepted.Load())
}
