package labels

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recordshop-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Generator produces a short overview for a record label. GeminiClient is the
// production implementation.
type Generator interface {
	GenerateLabelOverview(ctx context.Context, labelName string) (string, error)
	Model() string
}

var ErrGeneratorUnavailable = errors.New("overview generator is not configured")

// Service serves label overviews out of the label_info cache and generates
// missing or invalidated entries at most once each.
type Service struct {
	DB        *gorm.DB
	Generator Generator
}

// GetOrGenerate returns the cached overview for the label, generating and
// persisting it on a miss or when the cached entry was invalidated.
func (s *Service) GetOrGenerate(ctx context.Context, labelName string) (*models.LabelInfo, error) {
	var info models.LabelInfo
	err := s.DB.WithContext(ctx).Where("label_name = ?", labelName).First(&info).Error
	switch {
	case err == nil:
		if info.Valid() && info.Overview != nil {
			return &info, nil
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		info = models.LabelInfo{LabelName: labelName}
	default:
		return nil, err
	}

	if s.Generator == nil {
		return nil, ErrGeneratorUnavailable
	}

	overview, genErr := s.Generator.GenerateLabelOverview(ctx, labelName)
	now := time.Now().UTC()
	info.GeneratedBy = s.Generator.Model()
	info.GeneratedAt = &now
	valid := genErr == nil
	info.CacheValid = &valid

	if genErr != nil {
		log.Error().Err(genErr).Str("label", labelName).Msg("Error generating label overview")
		msg := genErr.Error()
		info.GenerationError = &msg
	} else {
		info.Overview = &overview
		info.GenerationError = nil
	}

	if err := s.DB.WithContext(ctx).Save(&info).Error; err != nil {
		return nil, fmt.Errorf("failed to store label overview: %w", err)
	}
	if genErr != nil {
		return nil, genErr
	}
	return &info, nil
}

// Invalidate marks a cached entry for regeneration on next access.
func (s *Service) Invalidate(ctx context.Context, labelName string) error {
	invalid := false
	result := s.DB.WithContext(ctx).Model(&models.LabelInfo{}).
		Where("label_name = ?", labelName).
		Update("cache_valid", invalid)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
