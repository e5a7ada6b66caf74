package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

var _ = Describe("CircularVelocity", func() {
	It("matches the default sun and planet", func() {
		sun, err := physics.NewBody(pt(0, 0), pt(0, 0), 10000, 30, "yellow")
		Expect(err).NotTo(HaveOccurred())

		v, err := physics.CircularVelocity(0.1, sun, pt(200, 0))
		Expect(err).NotTo(HaveOccurred())
		Expect(v.X).To(BeNumerically("~", 0, 1e-15))
		Expect(v.Y).To(BeNumerically("~", math.Sqrt(0.1*10000/200), 1e-15))
	})

	It("is perpendicular to the radius and carries the central velocity", func() {
		star, err := physics.NewBody(pt(10, 10), pt(1, -1), 500, 5, "orange")
		Expect(err).NotTo(HaveOccurred())

		v, err := physics.CircularVelocity(1, star, pt(10, 60))
		Expect(err).NotTo(HaveOccurred())

		speed := physics.CircularSpeed(1, 500, 50)
		Expect(v.X).To(BeNumerically("~", 1-speed, 1e-12))
		Expect(v.Y).To(BeNumerically("~", -1, 1e-12))
	})

	It("rejects a position on top of the central body", func() {
		star, err := physics.NewBody(pt(3, 4), pt(0, 0), 1, 1, "white")
		Expect(err).NotTo(HaveOccurred())

		_, err = physics.CircularVelocity(1, star, pt(3, 4))
		Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
	})
})
