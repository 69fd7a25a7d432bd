package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/availlant/channelpulse/internal/model"
)

const dateLayout = "2006-01-02"

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

// LoadSet returns every channel series stored for a user, channels sorted by
// name and each series sorted by date.
func (r *ChannelRepo) LoadSet(ctx context.Context, userID string) ([]model.ChannelSeries, error) {
	query := `
		SELECT id, channel_name
		FROM channels
		WHERE user_id = $1
		ORDER BY channel_name`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []model.ChannelSeries
	var ids []int64
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		channels = append(channels, model.ChannelSeries{ChannelName: name})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return nil, nil
	}

	byID := make(map[int64]int, len(ids))
	for i, id := range ids {
		byID[id] = i
	}

	metricsQuery := `
		SELECT m.channel_id, m.date, m.views, m.watch_time_minutes, m.subs_net, m.revenue_usd
		FROM daily_metrics m
		JOIN channels c ON c.id = m.channel_id
		WHERE c.user_id = $1
		ORDER BY m.channel_id, m.date`

	mrows, err := r.pool.Query(ctx, metricsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer mrows.Close()

	for mrows.Next() {
		var channelID int64
		var date time.Time
		var d model.DailyMetric
		if err := mrows.Scan(&channelID, &date, &d.Views, &d.WatchTimeMinutes, &d.SubsNet, &d.RevenueUsd); err != nil {
			return nil, err
		}
		idx, ok := byID[channelID]
		if !ok {
			continue
		}
		d.Date = date.Format(dateLayout)
		channels[idx].Daily = append(channels[idx].Daily, d)
	}
	return channels, mrows.Err()
}

// SaveSet upserts the full channel set for a user. Each channel row is
// upserted by (user_id, channel_name) and every daily record is upserted by
// (channel_id, date), so re-saving a merged set is idempotent. A
// channel_changes notification is emitted once the set is written.
func (r *ChannelRepo) SaveSet(ctx context.Context, userID string, channels []model.ChannelSeries) ([]model.UploadChannelResult, error) {
	upsertChannel := `
		INSERT INTO channels (user_id, channel_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id, channel_name)
		DO UPDATE SET channel_name = EXCLUDED.channel_name
		RETURNING id`

	upsertMetric := `
		INSERT INTO daily_metrics (channel_id, date, views, watch_time_minutes, subs_net, revenue_usd, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (channel_id, date)
		DO UPDATE SET
			views = EXCLUDED.views,
			watch_time_minutes = EXCLUDED.watch_time_minutes,
			subs_net = EXCLUDED.subs_net,
			revenue_usd = EXCLUDED.revenue_usd,
			updated_at = NOW()`

	results := make([]model.UploadChannelResult, 0, len(channels))
	for _, ch := range channels {
		var channelID int64
		if err := r.pool.QueryRow(ctx, upsertChannel, userID, ch.ChannelName).Scan(&channelID); err != nil {
			return nil, err
		}

		for _, d := range ch.Daily {
			date, err := time.Parse(dateLayout, d.Date)
			if err != nil {
				continue
			}
			_, err = r.pool.Exec(ctx, upsertMetric,
				channelID, date, d.Views, d.WatchTimeMinutes, d.SubsNet, d.RevenueUsd)
			if err != nil {
				return nil, err
			}
		}

		results = append(results, model.UploadChannelResult{
			ChannelName:  ch.ChannelName,
			RowsUpserted: len(ch.Daily),
		})
	}

	_, err := r.pool.Exec(ctx, `SELECT pg_notify('channel_changes', $1)`, userID)
	return results, err
}

// Delete removes one channel and its metrics. Returns pgx.ErrNoRows when the
// user has no channel with that name.
func (r *ChannelRepo) Delete(ctx context.Context, userID, channelName string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM channels
		WHERE user_id = $1 AND channel_name = $2`, userID, channelName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	_, err = r.pool.Exec(ctx, `SELECT pg_notify('channel_changes', $1)`, userID)
	return err
}

// Stats returns aggregate statistics over everything a user has stored.
func (r *ChannelRepo) Stats(ctx context.Context, userID string) (*model.StatsResponse, error) {
	query := `
		SELECT
			COUNT(DISTINCT c.id) AS total_channels,
			COUNT(DISTINCT m.date) AS total_days,
			MIN(m.date) AS first_date,
			MAX(m.date) AS last_date,
			COALESCE(SUM(m.views), 0),
			COALESCE(SUM(m.watch_time_minutes), 0),
			COALESCE(SUM(m.subs_net), 0),
			COALESCE(SUM(m.revenue_usd), 0)
		FROM channels c
		LEFT JOIN daily_metrics m ON m.channel_id = c.id
		WHERE c.user_id = $1`

	var stats model.StatsResponse
	var firstDate, lastDate *time.Time
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&stats.TotalChannels, &stats.TotalDays, &firstDate, &lastDate,
		&stats.Totals.Views, &stats.Totals.WatchTimeMinutes,
		&stats.Totals.SubsNet, &stats.Totals.RevenueUsd,
	)
	if err != nil {
		return nil, err
	}
	if firstDate != nil {
		stats.FirstDate = firstDate.Format(dateLayout)
	}
	if lastDate != nil {
		stats.LastDate = lastDate.Format(dateLayout)
	}
	return &stats, nil
}

// PlatformStats counts rows across all users, for background gauge rollups.
func (r *ChannelRepo) PlatformStats(ctx context.Context) (channels, metricRows, users int64, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM channels),
			(SELECT COUNT(*) FROM daily_metrics),
			(SELECT COUNT(DISTINCT user_id) FROM channels)`
	err = r.pool.QueryRow(ctx, query).Scan(&channels, &metricRows, &users)
	return channels, metricRows, users, err
}
