package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/availlant/channelpulse/internal/model"
	"github.com/availlant/channelpulse/internal/repository"
	"github.com/availlant/channelpulse/internal/series"
)

type ChannelService struct {
	repo  *repository.ChannelRepo
	cache *CacheService
}

func NewChannelService(repo *repository.ChannelRepo, cache *CacheService) *ChannelService {
	return &ChannelService{repo: repo, cache: cache}
}

// List returns every channel series a user has stored.
// Uses cache-aside: check Redis first, fall back to DB, then populate cache.
func (s *ChannelService) List(ctx context.Context, userID string) (*model.ChannelListResponse, error) {
	// Try cache first
	if s.cache != nil {
		cached, err := s.cache.GetChannels(ctx, userID)
		if err != nil {
			log.Printf("cache: channels get error: %v", err)
		} else if cached != nil {
			var resp model.ChannelListResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	// Cache miss, fetch from DB
	channels, err := s.repo.LoadSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if channels == nil {
		channels = []model.ChannelSeries{}
	}

	resp := &model.ChannelListResponse{Channels: channels}

	// Populate cache
	if s.cache != nil {
		if err := s.cache.SetChannels(ctx, userID, resp); err != nil {
			log.Printf("cache: channels set error: %v", err)
		}
	}

	return resp, nil
}

// Delete removes one channel by name and drops the user's cached views.
func (s *ChannelService) Delete(ctx context.Context, userID, channelName string) error {
	if err := s.repo.Delete(ctx, userID, channelName); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateUser(ctx, userID); err != nil {
			log.Printf("cache: invalidate error: %v", err)
		}
	}
	return nil
}

// Stats returns aggregate account statistics for a user.
func (s *ChannelService) Stats(ctx context.Context, userID string) (*model.StatsResponse, error) {
	stats, err := s.repo.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.RPM = series.RPM(stats.Totals.RevenueUsd, stats.Totals.Views)
	return stats, nil
}
