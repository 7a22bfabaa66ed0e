package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/roboard/spares-kiosk/internal/store"
)

var _ = Describe("LocationStore", func() {
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

	Context("Upsert", func() {
		It("should create an override and return the stored row", func() {
			override, err := s.Locations().Upsert(ctx, "001.234", "B2", "moved")
			Expect(err).NotTo(HaveOccurred())
			Expect(override.PartNumber).To(Equal("001.234"))
			Expect(override.NewLocation).To(Equal("B2"))
			Expect(override.Note).To(Equal("moved"))
			Expect(override.UpdatedAt).NotTo(BeEmpty())
		})

		// Given an existing override
		// When the same part is set again
		// Then the row is overwritten, never duplicated
		It("should overwrite rather than duplicate", func() {
			_, err := s.Locations().Upsert(ctx, "001.234", "B2", "first")
			Expect(err).NotTo(HaveOccurred())

			override, err := s.Locations().Upsert(ctx, "001.234", "C7", "second")
			Expect(err).NotTo(HaveOccurred())
			Expect(override.NewLocation).To(Equal("C7"))
			Expect(override.Note).To(Equal("second"))

			count, err := s.Locations().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})

		It("should store an empty note as absent", func() {
			override, err := s.Locations().Upsert(ctx, "001.234", "B2", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(override.Note).To(BeEmpty())
		})
	})

	Context("List", func() {
		BeforeEach(func() {
			_, err := s.Locations().Upsert(ctx, "001.234", "B2", "moved")
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Locations().Upsert(ctx, "002.100", "X5", "")
			Expect(err).NotTo(HaveOccurred())
		})

		It("should include the old default location", func() {
			rows, err := s.Locations().List(ctx, "", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			for _, r := range rows {
				if r.PartNumber == "001.234" {
					Expect(r.OldLocation).To(Equal("A1"))
					Expect(r.NewLocation).To(Equal("B2"))
				}
			}
		})

		It("should filter by part number substring", func() {
			rows, err := s.Locations().List(ctx, "002", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].PartNumber).To(Equal("002.100"))
		})

		It("should filter by part name substring", func() {
			rows, err := s.Locations().List(ctx, "gasket", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].PartNumber).To(Equal("002.100"))
		})

		It("should filter by override location substring", func() {
			rows, err := s.Locations().List(ctx, "X5", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].PartNumber).To(Equal("002.100"))
		})

		It("should apply the limit", func() {
			rows, err := s.Locations().List(ctx, "", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})
	})

	Context("Clear", func() {
		It("should remove every override", func() {
			_, err := s.Locations().Upsert(ctx, "001.234", "B2", "")
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Locations().Clear(ctx)).To(Succeed())

			count, err := s.Locations().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})
})
