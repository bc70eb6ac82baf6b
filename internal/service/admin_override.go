package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/bbifather/student-orders-backend/internal/models"
	"github.com/bbifather/student-orders-backend/internal/pkg/apperror"
	"github.com/bbifather/student-orders-backend/internal/validation"
)

// AdminPatch — частичная административная правка заказа. Нулевые
// указатели означают "поле не трогать".
type AdminPatch struct {
	Title            *string
	Description      *string
	InputData        *string
	VariantInfo      *string
	Deadline         *string
	ActualPrice      *float64
	PayoutAmount     *float64
	ExecutorTelegram *string
	Status           *string
	IsPaid           *bool
	RevisionComment  *string
	RevisionGrade    *string
	SelectedWorkIDs  []string
}

// AdminOverride применяет административную правку поверх текущего
// состояния заказа. Машина статусов здесь не проверяется: админ может
// перевести заказ в любое валидное состояние, проверяются только
// инварианты отдельных полей. Побеждает последняя запись.
func (s *OrderService) AdminOverride(ctx context.Context, actor Actor, id uuid.UUID, patch AdminPatch) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := validation.ValidateOrderTitle(*patch.Title); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		order.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		if err := validation.ValidateOrderDescription(*patch.Description); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		order.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.InputData != nil {
		order.InputData = optionalString(*patch.InputData)
	}
	if patch.VariantInfo != nil {
		order.VariantInfo = optionalString(*patch.VariantInfo)
	}
	if patch.Deadline != nil {
		deadline, err := validation.ParseDeadline(*patch.Deadline)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		order.Deadline = deadline
	}
	if patch.ActualPrice != nil {
		if err := validation.ValidatePrice(*patch.ActualPrice); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		order.ActualPrice = *patch.ActualPrice
	}
	if patch.PayoutAmount != nil {
		if err := validation.ValidatePayout(patch.PayoutAmount); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		order.PayoutAmount = patch.PayoutAmount
	}
	if patch.ExecutorTelegram != nil {
		if tg := validation.NormalizeTelegram(*patch.ExecutorTelegram); tg != "" {
			order.ExecutorTelegram = &tg
		} else {
			order.ExecutorTelegram = nil
		}
	}
	if patch.IsPaid != nil {
		order.IsPaid = *patch.IsPaid
	}
	if patch.RevisionComment != nil {
		order.RevisionComment = optionalString(*patch.RevisionComment)
	}
	if patch.RevisionGrade != nil {
		order.RevisionGrade = optionalString(*patch.RevisionGrade)
	}
	if patch.SelectedWorkIDs != nil {
		order.SelectedWorkIDs = pq.StringArray(patch.SelectedWorkIDs)
	}

	statusChanged := false
	if patch.Status != nil {
		if _, ok := models.ValidOrderStatuses[*patch.Status]; !ok {
			return nil, apperror.New(apperror.ErrCodeValidation, "некорректный статус заказа")
		}
		statusChanged = order.Status != *patch.Status
		order.Status = *patch.Status
	}

	if order.Status == models.OrderStatusNeedsRevision && (order.RevisionComment == nil || strings.TrimSpace(*order.RevisionComment) == "") {
		return nil, apperror.New(apperror.ErrCodeValidation, "для статуса доработки нужен комментарий студента")
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, mapRepoError(err)
	}

	if statusChanged {
		s.notifyAsync(Event{Order: order, Kind: EventStatusChanged, Audience: AudienceStudent})
	}
	return order, nil
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
