package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/roboard/spares-kiosk/internal/store"
)

var _ = Describe("WishlistStore", func() {
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

	Context("Toggle", func() {
		// Given a part not on the wishlist
		// When it is toggled
		// Then it becomes wishlisted
		It("should add a part on first toggle", func() {
			wishlisted, err := s.Wishlist().Toggle(ctx, "001.234")
			Expect(err).NotTo(HaveOccurred())
			Expect(wishlisted).To(BeTrue())

			count, err := s.Wishlist().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})

		// Given a wishlisted part
		// When it is toggled again
		// Then membership returns to the original state
		It("should return to the original state after two toggles", func() {
			_, err := s.Wishlist().Toggle(ctx, "001.234")
			Expect(err).NotTo(HaveOccurred())

			wishlisted, err := s.Wishlist().Toggle(ctx, "001.234")
			Expect(err).NotTo(HaveOccurred())
			Expect(wishlisted).To(BeFalse())

			count, err := s.Wishlist().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})

		It("should flip exactly one row per toggle", func() {
			_, err := s.Wishlist().Toggle(ctx, "001.234")
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Wishlist().Toggle(ctx, "002.100")
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Wishlist().Toggle(ctx, "001.234")
			Expect(err).NotTo(HaveOccurred())

			count, err := s.Wishlist().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})
	})

	Context("List", func() {
		It("should return joined rows ordered by location then number", func() {
			_, err := s.Wishlist().Toggle(ctx, "003.555")
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Wishlist().Toggle(ctx, "001.234")
			Expect(err).NotTo(HaveOccurred())

			rows, err := s.Wishlist().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Number).To(Equal("001.234"))
			Expect(rows[0].Name).To(Equal("Hex bolt steel M8"))
			Expect(rows[1].Number).To(Equal("003.555"))
		})
	})
})
