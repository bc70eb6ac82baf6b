package service

import (
	"context"
	"strings"

	"github.com/bbifather/student-orders-backend/internal/models"
	"github.com/bbifather/student-orders-backend/internal/pkg/apperror"
	"github.com/bbifather/student-orders-backend/internal/validation"
)

// StudentService отвечает за справочник студентов и привязку
// Telegram-чатов для уведомлений.
type StudentService struct {
	students StudentRepository
}

func NewStudentService(students StudentRepository) *StudentService {
	return &StudentService{students: students}
}

// ListStudents возвращает всех студентов. Только администратор.
func (s *StudentService) ListStudents(ctx context.Context, actor Actor) ([]models.Student, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	return s.students.List(ctx)
}

// SaveChatID привязывает идентификатор Telegram-чата к студенту, чтобы
// бот мог писать ему напрямую. Если студента ещё нет, создаётся
// заготовка записи.
func (s *StudentService) SaveChatID(ctx context.Context, telegram, chatID, name string) error {
	telegram = validation.NormalizeTelegram(telegram)
	if err := validation.ValidateTelegram(telegram); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if strings.TrimSpace(chatID) == "" {
		return apperror.New(apperror.ErrCodeValidation, "не указан идентификатор чата")
	}
	return s.students.SaveChatID(ctx, telegram, strings.TrimSpace(chatID), strings.TrimSpace(name))
}
