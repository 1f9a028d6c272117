package content

import "time"

// SamplePanchang is the fixed almanac record substituted when the content
// store has no entries at all (or cannot be reached). The values are static
// sample data; only the date tracks the current day.
func SamplePanchang(now time.Time) Panchang {
	return Panchang{
		ID:           "sample",
		Date:         now.Format("2006-01-02"),
		Tithi:        "Dashami (Shukla Paksha)",
		Vara:         "Budhavara (Wednesday)",
		Nakshatra:    "Pushya",
		Yoga:         "Shubha",
		Karana:       "Vishti",
		Sunrise:      "6:28 AM",
		Sunset:       "6:15 PM",
		SpecialEvent: "Auspicious day for new beginnings",
	}
}
