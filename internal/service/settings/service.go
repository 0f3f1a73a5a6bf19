package settings

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	configRepo "github.com/m04kA/SMC-ReservationGateway/internal/infra/storage/config"
)

// Service отдает эффективную конфигурацию бронирований ресторана
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// Resolve возвращает конфигурацию ресторана с подставленными значениями по умолчанию.
// Отсутствие конфигурации и ошибки хранилища не являются ошибкой: используются дефолты
func (s *Service) Resolve(ctx context.Context, merchantID int64) domain.MerchantConfig {
	row, err := s.configRepo.GetByMerchant(ctx, merchantID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("Resolve: failed to get config for merchant id=%d, using defaults: %v", merchantID, err)
		}
		return domain.DefaultMerchantConfig()
	}

	return row.ToConfig()
}
