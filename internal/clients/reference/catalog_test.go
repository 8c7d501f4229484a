package reference_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/simui-api/internal/clients/reference"
	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/testutils"
)

const descriptionsJSON = `{"3817":"+50 Attack Power and +20 Critical Strike Rating","3232":"+15 Stamina and Minor Speed Increase"}`

type CatalogTestSuite struct {
	suite.Suite
	server   *httptest.Server
	requests atomic.Int32
	status   atomic.Int32
	block    atomic.Bool
	release  chan struct{}
	ctx      context.Context
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) SetupTest() {
	s.requests.Store(0)
	s.status.Store(http.StatusOK)
	s.block.Store(false)
	s.release = make(chan struct{})
	s.ctx = context.Background()

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		if s.block.Load() {
			<-s.release
		}
		if r.URL.Path != reference.EnchantDescriptionsPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if status := int(s.status.Load()); status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(descriptionsJSON))
	}))
}

func (s *CatalogTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *CatalogTestSuite) newCatalog(cfg *reference.Config) reference.Catalog {
	if cfg == nil {
		cfg = &reference.Config{}
	}
	cfg.BaseURL = s.server.URL
	catalog, err := reference.New(cfg)
	s.Require().NoError(err)
	return catalog
}

func (s *CatalogTestSuite) TestDescriptionsAreCached() {
	catalog := s.newCatalog(nil)

	first, err := catalog.Descriptions(s.ctx, reference.EnchantDescriptionsPath)
	s.Require().NoError(err)
	second, err := catalog.Descriptions(s.ctx, reference.EnchantDescriptionsPath)
	s.Require().NoError(err)

	s.Equal("+50 Attack Power and +20 Critical Strike Rating", first[3817])
	s.Equal(first, second)
	s.Equal(int32(1), s.requests.Load())
}

func (s *CatalogTestSuite) TestConcurrentFirstAccessFetchesOnce() {
	s.block.Store(true)
	catalog := s.newCatalog(nil)

	var wg sync.WaitGroup
	results := make([]map[int32]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table, err := catalog.Descriptions(s.ctx, reference.EnchantDescriptionsPath)
			s.NoError(err)
			results[i] = table
		}(i)
	}

	s.Eventually(func() bool { return s.requests.Load() == 1 }, time.Second, time.Millisecond)
	close(s.release)
	wg.Wait()

	s.Equal(int32(1), s.requests.Load())
	for _, table := range results {
		s.Len(table, 2)
	}
}

func (s *CatalogTestSuite) TestAbandonedWaitDoesNotCancelFetch() {
	s.block.Store(true)
	catalog := s.newCatalog(nil)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() {
		_, err := catalog.Descriptions(ctx, reference.EnchantDescriptionsPath)
		done <- err
	}()
	s.Eventually(func() bool { return s.requests.Load() == 1 }, time.Second, time.Millisecond)

	cancel()
	err := <-done
	s.True(errors.IsCanceled(err))

	close(s.release)
	s.Eventually(func() bool {
		table, err := catalog.Descriptions(s.ctx, reference.EnchantDescriptionsPath)
		return err == nil && len(table) == 2
	}, time.Second, time.Millisecond)
	s.Equal(int32(1), s.requests.Load())
}

func (s *CatalogTestSuite) TestFailureIsNotCached() {
	s.status.Store(http.StatusInternalServerError)
	catalog := s.newCatalog(nil)

	_, err := catalog.Descriptions(s.ctx, reference.EnchantDescriptionsPath)
	s.True(errors.IsFetchFailure(err))
	s.Equal(reference.EnchantDescriptionsPath, errors.GetMeta(err)[errors.MetaAsset])

	s.status.Store(http.StatusOK)
	table, err := catalog.Descriptions(s.ctx, reference.EnchantDescriptionsPath)
	s.Require().NoError(err)
	s.Len(table, 2)
	s.Equal(int32(2), s.requests.Load())
}

func (s *CatalogTestSuite) TestEnchantDescription() {
	catalog := s.newCatalog(nil)

	s.Equal("+50 Attack Power and +20 Critical Strike Rating",
		catalog.EnchantDescription(s.ctx, sim.Enchant{EffectID: 3817, Name: "Berserking"}))
	s.Equal("Mongoose",
		catalog.EnchantDescription(s.ctx, sim.Enchant{EffectID: 2673, Name: "Mongoose"}))
}

func (s *CatalogTestSuite) TestEnchantDescriptionFallsBackToName() {
	s.status.Store(http.StatusServiceUnavailable)
	catalog := s.newCatalog(nil)

	desc := catalog.EnchantDescription(s.ctx, sim.Enchant{EffectID: 3817, Name: "Berserking"})

	s.Equal("Berserking", desc)
}

func (s *CatalogTestSuite) TestRedisSecondLevelCache() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	first := s.newCatalog(&reference.Config{Redis: client})

	_, err := first.Descriptions(s.ctx, reference.EnchantDescriptionsPath)
	s.Require().NoError(err)
	s.Equal("+15 Stamina and Minor Speed Increase", mr.HGet("reference:"+reference.EnchantDescriptionsPath, "3232"))
	s.True(mr.TTL("reference:"+reference.EnchantDescriptionsPath) > 0)

	second := s.newCatalog(&reference.Config{Redis: client})
	table, err := second.Descriptions(s.ctx, reference.EnchantDescriptionsPath)
	s.Require().NoError(err)

	s.Len(table, 2)
	s.Equal(int32(1), s.requests.Load())
}

func (s *CatalogTestSuite) TestRedisPrimedCacheSkipsHTTP() {
	client, _ := testutils.CreateTestRedisClientWithData(s.T(), func(mr *miniredis.Miniredis) {
		mr.HSet("reference:"+reference.EnchantDescriptionsPath, "3817", "from cache")
	})
	catalog := s.newCatalog(&reference.Config{Redis: client})

	desc := catalog.EnchantDescription(s.ctx, sim.Enchant{EffectID: 3817})

	s.Equal("from cache", desc)
	s.Equal(int32(0), s.requests.Load())
}

func (s *CatalogTestSuite) TestConfigValidation() {
	_, err := reference.New(&reference.Config{BaseURL: "ftp://example.com"})
	s.True(errors.IsInvalidArgument(err))

	_, err = reference.New(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *CatalogTestSuite) TestDefaultIsShared() {
	s.Same(reference.Default(), reference.Default())
}
