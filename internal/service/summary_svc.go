package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"log"
	"strconv"

	"github.com/availlant/channelpulse/internal/model"
	"github.com/availlant/channelpulse/internal/repository"
	"github.com/availlant/channelpulse/internal/series"
)

type SummaryService struct {
	repo  *repository.ChannelRepo
	cache *CacheService
}

func NewSummaryService(repo *repository.ChannelRepo, cache *CacheService) *SummaryService {
	return &SummaryService{repo: repo, cache: cache}
}

// Summary combines every channel the user has stored into one cross-channel
// daily series, filtered by the range expression. Cache-aside per (user, range).
func (s *SummaryService) Summary(ctx context.Context, userID, rangeExpr string) (*model.SummaryResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetSummary(ctx, userID, rangeExpr)
		if err != nil {
			log.Printf("cache: summary get error: %v", err)
		} else if cached != nil {
			var resp model.SummaryResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	channels, err := s.repo.LoadSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	combined := series.Combine(channels)
	filtered := series.FilterDaily(combined, rangeExpr)
	totals := series.Sum(filtered)

	resp := &model.SummaryResponse{
		Range:  rangeExpr,
		Daily:  series.WithRPM(filtered),
		Totals: totals,
		RPM:    series.RPM(totals.RevenueUsd, totals.Views),
	}

	if s.cache != nil {
		if err := s.cache.SetSummary(ctx, userID, rangeExpr, resp); err != nil {
			log.Printf("cache: summary set error: %v", err)
		}
	}

	return resp, nil
}

// ExportCSV renders the filtered combined series as a CSV document.
func (s *SummaryService) ExportCSV(ctx context.Context, userID, rangeExpr string) ([]byte, error) {
	summary, err := s.Summary(ctx, userID, rangeExpr)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "views", "watch_time_minutes", "subs_net", "revenue_usd", "rpm"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, d := range summary.Daily {
		record := []string{
			d.Date,
			strconv.FormatFloat(d.Views, 'f', -1, 64),
			strconv.FormatFloat(d.WatchTimeMinutes, 'f', -1, 64),
			strconv.Itoa(d.SubsNet),
			strconv.FormatFloat(d.RevenueUsd, 'f', 2, 64),
			strconv.FormatFloat(d.RPM, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
