package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PPB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PPB-BookingService/internal/infra/storage/booking"
)

// UseCase use case создания бронирования
// Новое бронирование сразу получает статус confirmed, поэтому проверка
// пересечений выполняется уже при создании — внутри сериализуемой
// транзакции, чтобы конкурентные запросы не подтвердили два
// пересекающихся слота
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	viewCache    ViewCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	viewCache ViewCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		viewCache:    viewCache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: date=%s, start=%s, end=%s", req.Date, req.StartTime, req.EndTime)

	// 1. Проверка обязательных полей
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация даты/времени и вычисление абсолютных границ слота
	slot, err := domain.NewSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid slot: %v", err)
		return nil, err
	}

	// 3. Бронирования на прошедшие даты не принимаются
	if slot.InPast(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date)
		return nil, fmt.Errorf("%w: %s", domain.ErrPastDate, req.Date)
	}

	var result *domain.Booking

	// 4. Проверка конфликта и запись выполняются как единое целое
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflicts, err := uc.bookingRepo.GetConflicting(txCtx, slot.Date, slot.StartAt, slot.EndAt, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check conflicts: %v", err)
			return uc.mapRepoError(err)
		}

		if len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: slot %s %s-%s conflicts with booking id=%d",
				req.Date, req.StartTime, req.EndTime, conflicts[0].ID)
			return ErrSlotConflict
		}

		booking := &domain.Booking{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			Intention: req.Intention,
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			StartAt:   slot.StartAt,
			EndAt:     slot.EndAt,
			Status:    domain.StatusConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return uc.mapRepoError(err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.viewCache.Flush()
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return result, nil
}

// mapRepoError переводит ошибки репозитория в ошибки usecase
func (uc *UseCase) mapRepoError(err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrSlotConflict):
		return ErrSlotConflict
	case errors.Is(err, bookingRepo.ErrStorageUnavailable):
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
