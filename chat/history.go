package chat

import (
	"sort"
	"time"
)

// HistoryEntry is a sidebar summary record for one completed submission.
// It is appended at submission time regardless of the gateway outcome and
// survives session resets.
type HistoryEntry struct {
	ID          int64     `json:"id"`
	SummaryText string    `json:"summary_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// Bucket is a named, half-open time range used to group history entries.
type Bucket string

const (
	BucketToday         Bucket = "today"
	BucketYesterday     Bucket = "yesterday"
	BucketLastThreeDays Bucket = "last_3_days"
	BucketLastSevenDays Bucket = "last_7_days"
	BucketOlder         Bucket = "older"
)

// Buckets holds history entries partitioned by age, most recent first
// within each bucket.
type Buckets struct {
	Today         []HistoryEntry `json:"today"`
	Yesterday     []HistoryEntry `json:"yesterday"`
	LastThreeDays []HistoryEntry `json:"last_3_days"`
	LastSevenDays []HistoryEntry `json:"last_7_days"`
	Older         []HistoryEntry `json:"older"`
}

// BucketFor classifies createdAt against local-midnight-aligned cutoffs
// derived from now. Boundaries are half-open, so every entry lands in
// exactly one bucket.
func BucketFor(createdAt, now time.Time) Bucket {
	startOfToday := startOfDay(now)
	switch {
	case !createdAt.Before(startOfToday):
		return BucketToday
	case !createdAt.Before(startOfToday.AddDate(0, 0, -1)):
		return BucketYesterday
	case !createdAt.Before(startOfToday.AddDate(0, 0, -3)):
		return BucketLastThreeDays
	case !createdAt.Before(startOfToday.AddDate(0, 0, -7)):
		return BucketLastSevenDays
	default:
		return BucketOlder
	}
}

// PartitionHistory sorts entries most-recent-first (id breaks ties for equal
// timestamps) and distributes them into buckets relative to now.
func PartitionHistory(entries []HistoryEntry, now time.Time) Buckets {
	sorted := make([]HistoryEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID > sorted[j].ID
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	var buckets Buckets
	for _, entry := range sorted {
		switch BucketFor(entry.CreatedAt, now) {
		case BucketToday:
			buckets.Today = append(buckets.Today, entry)
		case BucketYesterday:
			buckets.Yesterday = append(buckets.Yesterday, entry)
		case BucketLastThreeDays:
			buckets.LastThreeDays = append(buckets.LastThreeDays, entry)
		case BucketLastSevenDays:
			buckets.LastSevenDays = append(buckets.LastSevenDays, entry)
		default:
			buckets.Older = append(buckets.Older, entry)
		}
	}
	return buckets
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
