package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bbifather/student-orders-backend/internal/models"
)

// OrderRepository отвечает за хранение заказов.
type OrderRepository struct {
	db *sqlx.DB
}

// Ошибки уровня репозитория.
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrClaimConflict   = errors.New("order already claimed")
)

// NewOrderRepository создаёт новый экземпляр.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `
	id, student_id, subject_id, selected_works, is_full_course, custom_subject, custom_work,
	title, description, input_data, variant_info, deadline,
	actual_price, payout_amount, executor_telegram,
	status, is_paid, files, revision_comment, revision_grade,
	created_at, updated_at
`

// GetByID возвращает заказ по идентификатору вместе с данными студента.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order repository: get by id %w", err)
	}

	if err := r.attachStudent(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListParams описывает фильтрацию и пагинацию списка заказов.
type ListParams struct {
	Telegram string
	Status   string
	Page     int
	Limit    int
}

// ListResult содержит страницу заказов и общее количество.
type ListResult struct {
	Orders []models.Order `json:"orders"`
	Total  int            `json:"total"`
}

// List возвращает страницу заказов, отсортированных по дате создания.
func (r *OrderRepository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Limit <= 0 {
		params.Limit = 10
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	offset := (params.Page - 1) * params.Limit

	where := "WHERE 1=1"
	args := []interface{}{}
	argn := 1

	if params.Telegram != "" {
		where += fmt.Sprintf(" AND o.student_id IN (SELECT id FROM students WHERE telegram = $%d)", argn)
		args = append(args, params.Telegram)
		argn++
	}
	if params.Status != "" {
		where += fmt.Sprintf(" AND o.status = $%d", argn)
		args = append(args, params.Status)
		argn++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM orders o ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("order repository: count %w", err)
	}

	query := `
		SELECT o.id, o.student_id, o.subject_id, o.selected_works, o.is_full_course, o.custom_subject, o.custom_work,
		       o.title, o.description, o.input_data, o.variant_info, o.deadline,
		       o.actual_price, o.payout_amount, o.executor_telegram,
		       o.status, o.is_paid, o.files, o.revision_comment, o.revision_grade,
		       o.created_at, o.updated_at
		FROM orders o ` + where + fmt.Sprintf(`
		ORDER BY o.created_at DESC
		LIMIT $%d OFFSET $%d`, argn, argn+1)
	args = append(args, params.Limit, offset)

	orders := []models.Order{}
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("order repository: list %w", err)
	}

	for i := range orders {
		if err := r.attachStudent(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	return &ListResult{Orders: orders, Total: total}, nil
}

// Create сохраняет новый заказ.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (student_id, subject_id, selected_works, is_full_course, custom_subject, custom_work,
		                    title, description, input_data, variant_info, deadline,
		                    actual_price, status, is_paid, files)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`
	if order.Files == nil {
		order.Files = pq.StringArray{}
	}
	if order.SelectedWorkIDs == nil {
		order.SelectedWorkIDs = pq.StringArray{}
	}

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		order.StudentID,
		order.SubjectID,
		order.SelectedWorkIDs,
		order.IsFullCourse,
		order.CustomSubject,
		order.CustomWork,
		order.Title,
		order.Description,
		order.InputData,
		order.VariantInfo,
		order.Deadline,
		order.ActualPrice,
		order.Status,
		order.IsPaid,
		order.Files,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return fmt.Errorf("order repository: insert order %w", err)
	}

	return nil
}

// Update перезаписывает заказ целиком (полный патч, last write wins).
// Используется только административной правкой; именованные события
// жизненного цикла ходят через частичные патчи ниже.
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	query := `
		UPDATE orders SET
			subject_id = $2, selected_works = $3, is_full_course = $4, custom_subject = $5, custom_work = $6,
			title = $7, description = $8, input_data = $9, variant_info = $10, deadline = $11,
			actual_price = $12, payout_amount = $13, executor_telegram = $14,
			status = $15, is_paid = $16, files = $17, revision_comment = $18, revision_grade = $19,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(
		ctx,
		query,
		order.ID,
		order.SubjectID,
		order.SelectedWorkIDs,
		order.IsFullCourse,
		order.CustomSubject,
		order.CustomWork,
		order.Title,
		order.Description,
		order.InputData,
		order.VariantInfo,
		order.Deadline,
		order.ActualPrice,
		order.PayoutAmount,
		order.ExecutorTelegram,
		order.Status,
		order.IsPaid,
		order.Files,
		order.RevisionComment,
		order.RevisionGrade,
	).Scan(&order.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("order repository: update order %w", err)
	}
	return nil
}

// UpdateStatus меняет только статус заказа.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.exec(ctx, `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
}

// SetPrice устанавливает цену и статус одним патчем.
func (r *OrderRepository) SetPrice(ctx context.Context, id uuid.UUID, price float64, status string) error {
	return r.exec(ctx, `UPDATE orders SET actual_price = $2, status = $3, updated_at = NOW() WHERE id = $1`, id, price, status)
}

// MarkPaid выставляет флаг оплаты и статус.
func (r *OrderRepository) MarkPaid(ctx context.Context, id uuid.UUID, status string) error {
	return r.exec(ctx, `UPDATE orders SET is_paid = TRUE, status = $2, updated_at = NOW() WHERE id = $1`, id, status)
}

// ClaimExecutor закрепляет исполнителя за незанятым заказом.
// Условный UPDATE гарантирует, что из двух конкурирующих заявок выигрывает
// ровно одна; повторная заявка того же исполнителя проходит идемпотентно.
func (r *OrderRepository) ClaimExecutor(ctx context.Context, id uuid.UUID, executor string, payout *float64) error {
	query := `
		UPDATE orders SET executor_telegram = $2,
		                  payout_amount = COALESCE($3::numeric, payout_amount),
		                  updated_at = NOW()
		WHERE id = $1 AND (executor_telegram IS NULL OR executor_telegram = $2)
	`
	res, err := r.db.ExecContext(ctx, query, id, executor, payout)
	if err != nil {
		return fmt.Errorf("order repository: claim executor %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("order repository: claim executor rows %w", err)
	}
	if affected == 0 {
		// Либо заказа нет, либо он уже занят другим исполнителем.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrClaimConflict
	}
	return nil
}

// ReleaseExecutor снимает исполнителя с заказа.
func (r *OrderRepository) ReleaseExecutor(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, `UPDATE orders SET executor_telegram = NULL, updated_at = NOW() WHERE id = $1`, id)
}

// AppendFiles добавляет файлы к заказу и выставляет статус.
// Файлы только добавляются, удаление ядру недоступно.
func (r *OrderRepository) AppendFiles(ctx context.Context, id uuid.UUID, files []string, status string) error {
	query := `
		UPDATE orders SET files = files || $2::text[], status = $3, updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, query, id, pq.StringArray(files), status)
}

// SetRevision переводит заказ в статус доработки с комментарием студента.
func (r *OrderRepository) SetRevision(ctx context.Context, id uuid.UUID, comment string, grade *string) error {
	query := `
		UPDATE orders SET status = $2, revision_comment = $3, revision_grade = $4, updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, query, id, models.OrderStatusNeedsRevision, comment, grade)
}

// ClearRevision снимает пометку о доработке и выставляет новый статус.
func (r *OrderRepository) ClearRevision(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE orders SET status = $2, revision_comment = NULL, revision_grade = NULL, updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, query, id, status)
}

// exec выполняет частичный патч и превращает "0 строк" в ErrOrderNotFound.
func (r *OrderRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("order repository: exec %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("order repository: rows affected %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// attachStudent подгружает данные студента к заказу.
func (r *OrderRepository) attachStudent(ctx context.Context, order *models.Order) error {
	var student models.Student
	query := `SELECT id, name, group_name, telegram, chat_id, created_at, updated_at FROM students WHERE id = $1`
	if err := r.db.GetContext(ctx, &student, query, order.StudentID); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("order repository: attach student %w", err)
	}
	order.Student = &student
	return nil
}
