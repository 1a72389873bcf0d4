package chatbot_test

import (
	"time"

	"github.com/frahmantamala/finance-chatbot/internal/chatbot"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ResolveDateRange", func() {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	endOf := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 23, 59, 59, 999_000_000, time.UTC)
	}

	It("should resolve today to the current day's bounds", func() {
		rng := chatbot.ResolveDateRange("how much did I spend today", now)
		Expect(rng.Label).To(Equal("today"))
		Expect(*rng.Start).To(Equal(day(2024, time.May, 15)))
		Expect(*rng.End).To(Equal(endOf(2024, time.May, 15)))
	})

	It("should resolve yesterday", func() {
		rng := chatbot.ResolveDateRange("total spent yesterday", now)
		Expect(*rng.Start).To(Equal(day(2024, time.May, 14)))
		Expect(*rng.End).To(Equal(endOf(2024, time.May, 14)))
	})

	It("should resolve this week to Monday through Sunday", func() {
		rng := chatbot.ResolveDateRange("expenses this week", now)
		Expect(*rng.Start).To(Equal(day(2024, time.May, 13)))
		Expect(*rng.End).To(Equal(endOf(2024, time.May, 19)))
	})

	It("should resolve last week", func() {
		rng := chatbot.ResolveDateRange("income last week", now)
		Expect(*rng.Start).To(Equal(day(2024, time.May, 6)))
		Expect(*rng.End).To(Equal(endOf(2024, time.May, 12)))
	})

	It("should count Sunday as the closing day of its week", func() {
		sunday := time.Date(2024, time.May, 19, 9, 0, 0, 0, time.UTC)
		rng := chatbot.ResolveDateRange("expenses this week", sunday)
		Expect(*rng.Start).To(Equal(day(2024, time.May, 13)))
		Expect(*rng.End).To(Equal(endOf(2024, time.May, 19)))
	})

	It("should resolve this month to calendar bounds", func() {
		rng := chatbot.ResolveDateRange("spending this month", now)
		Expect(*rng.Start).To(Equal(day(2024, time.May, 1)))
		Expect(*rng.End).To(Equal(endOf(2024, time.May, 31)))
	})

	It("should resolve last month across a length change", func() {
		rng := chatbot.ResolveDateRange("spending last month", now)
		Expect(*rng.Start).To(Equal(day(2024, time.April, 1)))
		Expect(*rng.End).To(Equal(endOf(2024, time.April, 30)))
	})

	It("should resolve last month across a year boundary", func() {
		january := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
		rng := chatbot.ResolveDateRange("spending last month", january)
		Expect(*rng.Start).To(Equal(day(2023, time.December, 1)))
		Expect(*rng.End).To(Equal(endOf(2023, time.December, 31)))
	})

	It("should resolve this year and last year", func() {
		thisYear := chatbot.ResolveDateRange("income this year", now)
		Expect(*thisYear.Start).To(Equal(day(2024, time.January, 1)))
		Expect(*thisYear.End).To(Equal(endOf(2024, time.December, 31)))

		lastYear := chatbot.ResolveDateRange("income last year", now)
		Expect(*lastYear.Start).To(Equal(day(2023, time.January, 1)))
		Expect(*lastYear.End).To(Equal(endOf(2023, time.December, 31)))
	})

	It("should prefer today over a broader phrase in the same query", func() {
		rng := chatbot.ResolveDateRange("total today this month", now)
		Expect(rng.Label).To(Equal("today"))
	})

	It("should return the zero range when no phrase matches", func() {
		rng := chatbot.ResolveDateRange("how much did I spend on food", now)
		Expect(rng.IsZero()).To(BeTrue())
	})
})
