package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

var _ = Describe("Body", func() {
	It("carries its construction parameters", func() {
		b, err := physics.NewBody(pt(1, 2), pt(3, 4), 10, 5, "blue", physics.WithName("planet"))
		Expect(err).NotTo(HaveOccurred())

		Expect(b.Position()).To(Equal(pt(1, 2)))
		Expect(b.Velocity()).To(Equal(pt(3, 4)))
		Expect(b.Mass()).To(Equal(10.0))
		Expect(b.Radius()).To(Equal(5.0))
		Expect(b.Color()).To(Equal("blue"))
		Expect(b.Name()).To(Equal("planet"))
		Expect(b.TrailLen()).To(BeZero())
		Expect(b.TrailCap()).To(Equal(physics.DefaultTrailCapacity))
	})

	DescribeTable("rejects non-positive mass and radius",
		func(mass, radius float64) {
			_, err := physics.NewBody(pt(0, 0), pt(0, 0), mass, radius, "red")
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		},
		Entry("zero mass", 0.0, 1.0),
		Entry("negative mass", -5.0, 1.0),
		Entry("NaN mass", math.NaN(), 1.0),
		Entry("zero radius", 1.0, 0.0),
		Entry("negative radius", 1.0, -2.0),
	)

	It("records its current position", func() {
		b, err := physics.NewBody(pt(7, -3), pt(0, 0), 1, 1, "white")
		Expect(err).NotTo(HaveOccurred())

		b.RecordTrailPoint()
		last, ok := b.LastTrailPoint()
		Expect(ok).To(BeTrue())
		Expect(last).To(Equal(pt(7, -3)))
		Expect(b.Trail()).To(HaveLen(1))
	})
})
