package bookings

import (
	"context"
	"errors"
	"fmt"

	gocache "github.com/patrickmn/go-cache"

	"github.com/m04kA/PPB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PPB-BookingService/internal/infra/storage/booking"
)

// Service читающая сторона: выборки по id, месячный календарь и
// админский фильтрованный список
type Service struct {
	bookingRepo BookingRepository
	viewCache   *gocache.Cache
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
// viewCache кэширует ответы месячного календаря; пишущие usecase'ы
// сбрасывают его при каждой записи
func NewService(bookingRepo BookingRepository, viewCache *gocache.Cache, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		viewCache:   viewCache,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, s.mapRepoError(err)
	}
	return booking, nil
}

// MonthView возвращает бронирования месяца, отсортированные по start_at
// Окно месяца вычисляется по календарю: [первое число, первое число
// следующего месяца)
func (s *Service) MonthView(ctx context.Context, year, month int) ([]*domain.Booking, error) {
	windowStart, windowEnd, err := domain.MonthWindow(year, month)
	if err != nil {
		s.logger.Warn("MonthView: invalid period year=%d month=%d", year, month)
		return nil, err
	}

	cacheKey := fmt.Sprintf("month:%04d-%02d", year, month)
	if cached, found := s.viewCache.Get(cacheKey); found {
		// Копия среза: закешированный результат отдаётся многим
		// вызывающим, перестановки одного не должны видеть другие
		stored := cached.([]*domain.Booking)
		result := make([]*domain.Booking, len(stored))
		copy(result, stored)
		return result, nil
	}

	filter := domain.BookingsFilter{
		StartAt: &windowStart,
		EndAt:   &windowEnd,
	}

	result, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("MonthView: repository error for %04d-%02d: %v", year, month, err)
		return nil, s.mapRepoError(err)
	}

	s.viewCache.Set(cacheKey, result, gocache.DefaultExpiration)
	s.logger.Info("MonthView: fetched %d bookings for %04d-%02d", len(result), year, month)

	return result, nil
}

// AdminList возвращает бронирования по админскому фильтру
// Период применяется только при заданных годе И месяце; неизвестное
// значение статуса молча игнорируется — поведение унаследовано и
// закреплено тестом, менять его без миграции клиентов нельзя
func (s *Service) AdminList(ctx context.Context, req *AdminListRequest) ([]*domain.Booking, error) {
	filter := domain.BookingsFilter{}

	if req.hasPeriod() {
		windowStart, windowEnd, err := domain.MonthWindow(*req.Year, *req.Month)
		if err != nil {
			s.logger.Warn("AdminList: invalid period year=%d month=%d", *req.Year, *req.Month)
			return nil, err
		}
		filter.StartAt = &windowStart
		filter.EndAt = &windowEnd
	}

	if req.Status != nil {
		if status, err := domain.ParseStatus(*req.Status); err == nil {
			filter.Status = &status
		} else {
			s.logger.Warn("AdminList: ignoring unknown status filter %q", *req.Status)
		}
	}

	result, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("AdminList: repository error: %v", err)
		return nil, s.mapRepoError(err)
	}

	s.logger.Info("AdminList: fetched %d bookings", len(result))
	return result, nil
}

// mapRepoError переводит ошибки репозитория в ошибки сервиса
func (s *Service) mapRepoError(err error) error {
	if errors.Is(err, bookingRepo.ErrStorageUnavailable) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
