package store

import (
	"context"
	"database/sql"
)

// UsageBucket is one hourly aggregation of requests for a (method, route)
// pair, as persisted in api_usage.
type UsageBucket struct {
	BucketStart   string
	Method        string
	Route         string
	Total         int64
	Count2xx      int64
	Count4xx      int64
	Count5xx      int64
	SumDurationMS int64
	MaxDurationMS int64
}

// MetricsStore persists request-usage buckets. Purely observability; nothing
// functional reads these rows.
type MetricsStore struct {
	db *sql.DB
}

func NewMetricsStore(db *sql.DB) *MetricsStore {
	return &MetricsStore{db: db}
}

// UpsertBucket adds the bucket's counters onto the persisted row, creating
// it if absent.
func (s *MetricsStore) UpsertBucket(ctx context.Context, b UsageBucket) error {
	_, err := s.db.ExecContext(ctx, queryUpsertUsage,
		b.BucketStart, b.Method, b.Route,
		b.Total, b.Count2xx, b.Count4xx, b.Count5xx,
		b.SumDurationMS, b.MaxDurationMS)
	return err
}

// Buckets returns all persisted usage rows, oldest bucket first.
func (s *MetricsStore) Buckets(ctx context.Context) ([]UsageBucket, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT bucket_start, method, route,
			total, count_2xx, count_4xx, count_5xx,
			sum_duration_ms, max_duration_ms
		FROM api_usage
		ORDER BY bucket_start, method, route`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []UsageBucket
	for rows.Next() {
		var b UsageBucket
		err := rows.Scan(&b.BucketStart, &b.Method, &b.Route,
			&b.Total, &b.Count2xx, &b.Count4xx, &b.Count5xx,
			&b.SumDurationMS, &b.MaxDurationMS)
		if err != nil {
			return nil, err
		}
		results = append(results, b)
	}
	return results, rows.Err()
}
