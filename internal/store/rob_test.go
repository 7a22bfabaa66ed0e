package store_test

import (
	"context"
	"database/sql"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/roboard/spares-kiosk/internal/store"
)

var _ = Describe("RobStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()
		s, db = newTestStore(ctx)
		seedParts(ctx, s)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("Apply", func() {
		// Given a part with no ROB record
		// When a non-negative value is applied
		// Then the value is stored absolutely
		It("should store a non-negative value absolutely", func() {
			rec, err := s.Rob().Apply(ctx, "001.234", 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Rob).To(Equal(5.0))
			Expect(rec.UpdatedAt).NotTo(BeEmpty())
		})

		// Given a part with no ROB record
		// When a negative value is applied
		// Then the result clamps to zero
		It("should clamp a negative value on a missing record to zero", func() {
			rec, err := s.Rob().Apply(ctx, "001.234", -4)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Rob).To(BeZero())
		})

		// Given an existing record
		// When a negative value is applied
		// Then it acts as a delta against the current value
		It("should treat a negative value as a delta", func() {
			_, err := s.Rob().Apply(ctx, "001.234", 10)
			Expect(err).NotTo(HaveOccurred())

			rec, err := s.Rob().Apply(ctx, "001.234", -3)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Rob).To(Equal(7.0))
		})

		It("should clamp a delta below zero", func() {
			_, err := s.Rob().Apply(ctx, "001.234", 2)
			Expect(err).NotTo(HaveOccurred())

			rec, err := s.Rob().Apply(ctx, "001.234", -9)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Rob).To(BeZero())
		})

		// Given an existing record
		// When a non-negative value is applied
		// Then the prior value is ignored entirely
		It("should overwrite with a non-negative value regardless of history", func() {
			_, err := s.Rob().Apply(ctx, "001.234", 10)
			Expect(err).NotTo(HaveOccurred())

			rec, err := s.Rob().Apply(ctx, "001.234", 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Rob).To(Equal(4.0))
		})

		It("should keep one row per part", func() {
			_, err := s.Rob().Apply(ctx, "001.234", 1)
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Rob().Apply(ctx, "001.234", 2)
			Expect(err).NotTo(HaveOccurred())

			count, err := s.Rob().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})

		// Given concurrent decrements against one record
		// When they all land
		// Then the atomic upsert never loses an update
		It("should apply concurrent deltas without losing updates", func() {
			_, err := s.Rob().Apply(ctx, "001.234", 100)
			Expect(err).NotTo(HaveOccurred())

			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					_, err := s.Rob().Apply(ctx, "001.234", -1)
					Expect(err).NotTo(HaveOccurred())
				}()
			}
			wg.Wait()

			rec, err := s.Rob().Get(ctx, "001.234")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Rob).To(Equal(90.0))
		})
	})

	Context("List", func() {
		It("should join part metadata ordered by location", func() {
			_, err := s.Rob().Apply(ctx, "003.555", 1)
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Rob().Apply(ctx, "001.234", 2)
			Expect(err).NotTo(HaveOccurred())

			rows, err := s.Rob().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Number).To(Equal("001.234")) // A1 before C2
			Expect(rows[0].Name).To(Equal("Hex bolt steel M8"))
			Expect(rows[1].Number).To(Equal("003.555"))
		})
	})

	Context("Clear", func() {
		It("should remove every record", func() {
			_, err := s.Rob().Apply(ctx, "001.234", 5)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Rob().Clear(ctx)).To(Succeed())

			count, err := s.Rob().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})
})
