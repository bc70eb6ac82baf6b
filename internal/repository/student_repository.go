package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bbifather/student-orders-backend/internal/models"
)

// StudentRepository отвечает за хранение студентов.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository создаёт новый экземпляр.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Upsert создаёт студента или обновляет его имя и группу по telegram.
func (r *StudentRepository) Upsert(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (name, group_name, telegram)
		VALUES ($1, $2, $3)
		ON CONFLICT (telegram) DO UPDATE SET
			name = EXCLUDED.name,
			group_name = EXCLUDED.group_name,
			updated_at = NOW()
		RETURNING id, chat_id, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query, student.Name, student.GroupName, student.Telegram).
		Scan(&student.ID, &student.ChatID, &student.CreatedAt, &student.UpdatedAt); err != nil {
		return fmt.Errorf("student repository: upsert %w", err)
	}
	return nil
}

// GetByTelegram возвращает студента по нику в Telegram.
func (r *StudentRepository) GetByTelegram(ctx context.Context, telegram string) (*models.Student, error) {
	var student models.Student
	query := `SELECT id, name, group_name, telegram, chat_id, created_at, updated_at FROM students WHERE telegram = $1`
	if err := r.db.GetContext(ctx, &student, query, telegram); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("student repository: get by telegram %w", err)
	}
	return &student, nil
}

// List возвращает всех студентов, сначала новых.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	students := []models.Student{}
	query := `SELECT id, name, group_name, telegram, chat_id, created_at, updated_at FROM students ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("student repository: list %w", err)
	}
	return students, nil
}

// SaveChatID сохраняет chat_id пользователя для личных уведомлений бота.
// Если студента ещё нет, создаёт запись-заготовку: группа будет заполнена
// при первом заказе.
func (r *StudentRepository) SaveChatID(ctx context.Context, telegram, chatID, name string) error {
	query := `
		INSERT INTO students (name, group_name, telegram, chat_id)
		VALUES ($1, '', $2, $3)
		ON CONFLICT (telegram) DO UPDATE SET
			chat_id = EXCLUDED.chat_id,
			updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, name, telegram, chatID); err != nil {
		return fmt.Errorf("student repository: save chat id %w", err)
	}
	return nil
}
