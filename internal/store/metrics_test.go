package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/roboard/spares-kiosk/internal/store"
)

var _ = Describe("MetricsStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()
		s, db = newTestStore(ctx)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("UpsertBucket", func() {
		It("should create a bucket row", func() {
			err := s.Metrics().UpsertBucket(ctx, store.UsageBucket{
				BucketStart:   "2026-08-31T10:00:00Z",
				Method:        "GET",
				Route:         "/api/parts",
				Total:         3,
				Count2xx:      3,
				SumDurationMS: 42,
				MaxDurationMS: 20,
			})
			Expect(err).NotTo(HaveOccurred())

			buckets, err := s.Metrics().Buckets(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(buckets).To(HaveLen(1))
			Expect(buckets[0].Total).To(Equal(int64(3)))
		})

		// Given a persisted bucket
		// When the same (bucket, method, route) is flushed again
		// Then counters add up and the max duration is the larger of the two
		It("should merge additively on conflict", func() {
			bucket := store.UsageBucket{
				BucketStart:   "2026-08-31T10:00:00Z",
				Method:        "GET",
				Route:         "/api/parts",
				Total:         2,
				Count2xx:      1,
				Count4xx:      1,
				SumDurationMS: 30,
				MaxDurationMS: 25,
			}
			Expect(s.Metrics().UpsertBucket(ctx, bucket)).To(Succeed())

			bucket.Total = 1
			bucket.Count2xx = 1
			bucket.Count4xx = 0
			bucket.SumDurationMS = 10
			bucket.MaxDurationMS = 10
			Expect(s.Metrics().UpsertBucket(ctx, bucket)).To(Succeed())

			buckets, err := s.Metrics().Buckets(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(buckets).To(HaveLen(1))
			Expect(buckets[0].Total).To(Equal(int64(3)))
			Expect(buckets[0].Count2xx).To(Equal(int64(2)))
			Expect(buckets[0].Count4xx).To(Equal(int64(1)))
			Expect(buckets[0].SumDurationMS).To(Equal(int64(40)))
			Expect(buckets[0].MaxDurationMS).To(Equal(int64(25)))
		})

		It("should keep distinct routes apart", func() {
			Expect(s.Metrics().UpsertBucket(ctx, store.UsageBucket{
				BucketStart: "2026-08-31T10:00:00Z", Method: "GET", Route: "/api/parts", Total: 1,
			})).To(Succeed())
			Expect(s.Metrics().UpsertBucket(ctx, store.UsageBucket{
				BucketStart: "2026-08-31T10:00:00Z", Method: "GET", Route: "/api/rob", Total: 1,
			})).To(Succeed())

			buckets, err := s.Metrics().Buckets(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(buckets).To(HaveLen(2))
		})
	})
})
