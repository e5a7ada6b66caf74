package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

func pt(x, y float64) dynamo.Vec { return dynamo.Vec{X: x, Y: y} }

var _ = Describe("Trail", func() {
	It("keeps points oldest first until full", func() {
		tr := physics.NewTrail(3)
		tr.Push(pt(1, 0))
		tr.Push(pt(2, 0))

		Expect(tr.Len()).To(Equal(2))
		Expect(tr.Cap()).To(Equal(3))
		Expect(tr.Points()).To(Equal([]dynamo.Vec{pt(1, 0), pt(2, 0)}))
	})

	It("evicts the oldest point when full", func() {
		tr := physics.NewTrail(3)
		for i := 1; i <= 7; i++ {
			tr.Push(pt(float64(i), 0))
		}

		Expect(tr.Len()).To(Equal(3))
		Expect(tr.Points()).To(Equal([]dynamo.Vec{pt(5, 0), pt(6, 0), pt(7, 0)}))
		Expect(tr.At(0)).To(Equal(pt(5, 0)))

		last, ok := tr.Last()
		Expect(ok).To(BeTrue())
		Expect(last).To(Equal(pt(7, 0)))
	})

	It("reports no last point when empty", func() {
		_, ok := physics.NewTrail(4).Last()
		Expect(ok).To(BeFalse())
	})

	It("clamps capacity to one", func() {
		tr := physics.NewTrail(0)
		tr.Push(pt(1, 1))
		tr.Push(pt(2, 2))
		Expect(tr.Cap()).To(Equal(1))
		Expect(tr.Points()).To(Equal([]dynamo.Vec{pt(2, 2)}))
	})

	It("panics on an out of range index", func() {
		tr := physics.NewTrail(2)
		Expect(func() { tr.At(0) }).To(Panic())
	})

	Describe("Resize", func() {
		It("keeps the most recent points when shrinking", func() {
			tr := physics.NewTrail(5)
			for i := 1; i <= 6; i++ {
				tr.Push(pt(float64(i), 0))
			}
			tr.Resize(2)

			Expect(tr.Cap()).To(Equal(2))
			Expect(tr.Points()).To(Equal([]dynamo.Vec{pt(5, 0), pt(6, 0)}))

			tr.Push(pt(7, 0))
			Expect(tr.Points()).To(Equal([]dynamo.Vec{pt(6, 0), pt(7, 0)}))
		})

		It("keeps every point when growing", func() {
			tr := physics.NewTrail(2)
			tr.Push(pt(1, 0))
			tr.Push(pt(2, 0))
			tr.Push(pt(3, 0))
			tr.Resize(4)

			tr.Push(pt(4, 0))
			Expect(tr.Points()).To(Equal([]dynamo.Vec{pt(2, 0), pt(3, 0), pt(4, 0)}))
		})
	})

	It("empties on Reset", func() {
		tr := physics.NewTrail(2)
		tr.Push(pt(1, 0))
		tr.Reset()
		Expect(tr.Len()).To(BeZero())
		Expect(tr.Points()).To(BeEmpty())
	})
})
