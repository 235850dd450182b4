package render

import "time"

const (
	shortDateLayout = "1/2/06"
	longLayout      = "Jan 02, 2006 3:04PM"
	footerLayout    = "2006-01-02 15:04:05"

	unknownShortDate = "Unknown"
	unknownLongDate  = "N/A"
)

// ShortDate formats ts as M/D/YY for table rows.
func ShortDate(ts *time.Time) string {
	if ts == nil {
		return unknownShortDate
	}
	return ts.Format(shortDateLayout)
}

// LongTimestamp formats ts as "Jan 02, 2006 3:04PM" for message headers and
// thread metadata.
func LongTimestamp(ts *time.Time) string {
	if ts == nil {
		return unknownLongDate
	}
	return ts.Format(longLayout)
}
