package update_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PPB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PPB-BookingService/internal/infra/storage/booking"
)

// UseCase use case смены статуса бронирования администратором
// Переход в confirmed проходит через проверку пересечений (собственная
// запись из сравнения исключается); любой другой целевой статус
// применяется безусловно. Терминальных статусов нет: отменённое
// бронирование можно подтвердить заново, и наоборот
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	viewCache   ViewCache
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	viewCache ViewCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		viewCache:   viewCache,
		logger:      logger,
	}
}

// Execute переводит бронирование в целевой статус
func (uc *UseCase) Execute(ctx context.Context, bookingID int64, rawStatus string) (*domain.Booking, error) {
	uc.logger.Info("UpdateBookingStatus: booking id=%d, target=%s", bookingID, rawStatus)

	// 1. Валидация целевого статуса
	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: invalid status %q", rawStatus)
		return nil, err
	}

	var result *domain.Booking

	// 2. Чтение, проверка конфликта и запись — единая транзакция
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			uc.logger.Warn("UpdateBookingStatus: failed to load booking id=%d: %v", bookingID, err)
			return uc.mapRepoError(err)
		}

		// Подтверждение держит инвариант: среди confirmed пересечений нет
		if status == domain.StatusConfirmed {
			conflicts, err := uc.bookingRepo.GetConflicting(
				txCtx, booking.Date, booking.StartAt, booking.EndAt, &booking.ID,
			)
			if err != nil {
				uc.logger.Error("UpdateBookingStatus: failed to check conflicts for id=%d: %v", bookingID, err)
				return uc.mapRepoError(err)
			}
			if len(conflicts) > 0 {
				uc.logger.Warn("UpdateBookingStatus: confirm of id=%d conflicts with id=%d",
					bookingID, conflicts[0].ID)
				return ErrSlotConflict
			}
		}

		updatedAt, err := uc.bookingRepo.UpdateStatus(txCtx, bookingID, status)
		if err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to update id=%d: %v", bookingID, err)
			return uc.mapRepoError(err)
		}

		booking.Status = status
		booking.UpdatedAt = updatedAt
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.viewCache.Flush()
	uc.logger.Info("UpdateBookingStatus: booking id=%d is now %s", bookingID, status)

	return result, nil
}

// mapRepoError переводит ошибки репозитория в ошибки usecase
func (uc *UseCase) mapRepoError(err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrSlotConflict):
		return ErrSlotConflict
	case errors.Is(err, bookingRepo.ErrStorageUnavailable):
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
