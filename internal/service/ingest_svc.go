package service

import (
	"context"
	"log"
	"strings"

	"github.com/availlant/channelpulse/internal/ingest"
	"github.com/availlant/channelpulse/internal/model"
	"github.com/availlant/channelpulse/internal/repository"
	"github.com/availlant/channelpulse/internal/series"
)

type IngestService struct {
	repo  *repository.ChannelRepo
	cache *CacheService
}

func NewIngestService(repo *repository.ChannelRepo, cache *CacheService) *IngestService {
	return &IngestService{repo: repo, cache: cache}
}

// GroupByFolder buckets uploaded files by their top-level directory. Files
// uploaded without a path become their own single-file folder named after the
// file, which fails resolution later with a clear missing-files error.
func GroupByFolder(files []model.File) map[string][]model.File {
	byFolder := make(map[string][]model.File)
	for _, f := range files {
		name := f.Name
		folder := strings.TrimSuffix(name, ".csv")
		if i := strings.Index(name, "/"); i >= 0 {
			folder = name[:i]
			name = name[strings.LastIndex(name, "/")+1:]
		}
		byFolder[folder] = append(byFolder[folder], model.File{Name: name, Data: f.Data})
	}
	return byFolder
}

// Upload parses an upload batch, merges the parsed channels into the user's
// stored set, and persists the merged result. Returns the parse outcome plus
// per-channel row counts for everything that was written.
func (s *IngestService) Upload(ctx context.Context, userID string, files []model.File) (*model.UploadResponse, error) {
	result := ingest.IngestBatch(GroupByFolder(files))

	resp := &model.UploadResponse{
		Success:  len(result.Channels) > 0,
		Results:  []model.UploadChannelResult{},
		Errors:   result.Errors,
		Warnings: result.Warnings,
	}
	if len(result.Channels) == 0 {
		return resp, nil
	}

	previous, err := s.repo.LoadSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := series.Merge(previous, result.Channels)

	results, err := s.repo.SaveSet(ctx, userID, merged)
	if err != nil {
		return nil, err
	}
	resp.Results = uploadedOnly(results, result.Channels)

	if s.cache != nil {
		if err := s.cache.InvalidateUser(ctx, userID); err != nil {
			log.Printf("cache: invalidate error: %v", err)
		}
	}

	return resp, nil
}

// uploadedOnly keeps the save results for channels that were part of this
// upload. The full merged set is persisted, but previously stored channels
// the batch never touched do not belong in its report.
func uploadedOnly(results []model.UploadChannelResult, incoming []model.ChannelSeries) []model.UploadChannelResult {
	names := make(map[string]bool, len(incoming))
	for _, ch := range incoming {
		names[ch.ChannelName] = true
	}

	out := make([]model.UploadChannelResult, 0, len(incoming))
	for _, r := range results {
		if names[r.ChannelName] {
			out = append(out, r)
		}
	}
	return out
}
