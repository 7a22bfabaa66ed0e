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

var _ = Describe("LocationService", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
		srv *services.LocationService
	)

	BeforeEach(func() {
		ctx = context.Background()
		s, db = newTestStore(ctx)
		seedParts(ctx, s)
		srv = services.NewLocationService(s)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("Set", func() {
		It("should trim inputs and store the override", func() {
			override, err := srv.Set(ctx, " 001.234 ", " B2 ", " moved ")
			Expect(err).NotTo(HaveOccurred())
			Expect(override.PartNumber).To(Equal("001.234"))
			Expect(override.NewLocation).To(Equal("B2"))
			Expect(override.Note).To(Equal("moved"))
		})

		// Given a whitespace-only new location
		// When set
		// Then validation fails and nothing is written
		It("should reject an empty new location without writing", func() {
			_, err := srv.Set(ctx, "001.234", "   ", "")
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())

			count, err := s.Locations().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})

		It("should reject an empty part number", func() {
			_, err := srv.Set(ctx, "  ", "B2", "")
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())
		})

		It("should reject unknown part numbers as not-found", func() {
			_, err := srv.Set(ctx, "999.999", "B2", "")
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should overwrite an existing override", func() {
			_, err := srv.Set(ctx, "001.234", "B2", "first")
			Expect(err).NotTo(HaveOccurred())

			override, err := srv.Set(ctx, "001.234", "C7", "second")
			Expect(err).NotTo(HaveOccurred())
			Expect(override.NewLocation).To(Equal("C7"))

			count, err := s.Locations().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})
	})

	Context("List", func() {
		It("should pass the query filter through", func() {
			_, err := srv.Set(ctx, "001.234", "B2", "")
			Expect(err).NotTo(HaveOccurred())
			_, err = srv.Set(ctx, "002.100", "X5", "")
			Expect(err).NotTo(HaveOccurred())

			rows, err := srv.List(ctx, "gasket", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].PartNumber).To(Equal("002.100"))
		})

		It("should normalize a malformed limit", func() {
			_, err := srv.Set(ctx, "001.234", "B2", "")
			Expect(err).NotTo(HaveOccurred())

			rows, err := srv.List(ctx, "", "not-a-number")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})
	})
})
