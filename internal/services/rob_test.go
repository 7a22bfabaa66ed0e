package services_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/roboard/spares-kiosk/internal/services"
	"github.com/roboard/spares-kiosk/internal/store"
	srvErrors "github.com/roboard/spares-kiosk/pkg/errors"
)

var _ = Describe("RobService", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
		srv *services.RobService
	)

	BeforeEach(func() {
		ctx = context.Background()
		s, db = newTestStore(ctx)
		seedParts(ctx, s)
		srv = services.NewRobService(s)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("Set", func() {
		It("should store the value for a known part", func() {
			rec, err := srv.Set(ctx, "001.234", 12)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.PartNumber).To(Equal("001.234"))
			Expect(rec.Rob).To(Equal(12.0))
		})

		// Given an unknown part number
		// When a value is applied
		// Then not-found is signalled and nothing is written
		It("should reject unknown part numbers without writing", func() {
			_, err := srv.Set(ctx, "999.999", 5)
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())

			count, err := s.Rob().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})
})

var _ = Describe("WishlistService", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
		srv *services.WishlistService
	)

	BeforeEach(func() {
		ctx = context.Background()
		s, db = newTestStore(ctx)
		seedParts(ctx, s)
		srv = services.NewWishlistService(s)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("Toggle", func() {
		It("should report the new membership state", func() {
			status, err := srv.Toggle(ctx, "001.234")
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Wishlisted).To(BeTrue())

			status, err = srv.Toggle(ctx, "001.234")
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Wishlisted).To(BeFalse())
		})

		It("should reject unknown part numbers", func() {
			_, err := srv.Toggle(ctx, "999.999")
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})
})
