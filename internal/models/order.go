package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Student описывает заказчика. Студенты создаются и обновляются
// автоматически при оформлении заказа, ключ уникальности — telegram.
type Student struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	GroupName string    `db:"group_name" json:"group"`
	Telegram  string    `db:"telegram" json:"telegram"`
	ChatID    *string   `db:"chat_id" json:"chat_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Order описывает заказ студента на выполнение работ.
type Order struct {
	ID        uuid.UUID `db:"id" json:"id"`
	StudentID uuid.UUID `db:"student_id" json:"student_id"`

	// Привязка к каталогу. SubjectID пуст для полностью кастомных заказов.
	SubjectID       *string        `db:"subject_id" json:"subject_id,omitempty"`
	SelectedWorkIDs pq.StringArray `db:"selected_works" json:"selected_works"`
	IsFullCourse    bool           `db:"is_full_course" json:"is_full_course"`
	CustomSubject   *string        `db:"custom_subject" json:"custom_subject,omitempty"`
	CustomWork      *string        `db:"custom_work" json:"custom_work,omitempty"`

	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	InputData   *string   `db:"input_data" json:"input_data,omitempty"`
	VariantInfo *string   `db:"variant_info" json:"variant_info,omitempty"`
	Deadline    time.Time `db:"deadline" json:"deadline"`

	// ActualPrice — авторитетная цена: либо рассчитана по каталогу при
	// создании, либо установлена администратором. Однажды установленная
	// вручную цена никогда не пересчитывается автоматически.
	ActualPrice      float64  `db:"actual_price" json:"actual_price"`
	PayoutAmount     *float64 `db:"payout_amount" json:"payout_amount,omitempty"`
	ExecutorTelegram *string  `db:"executor_telegram" json:"executor_telegram,omitempty"`

	Status          string         `db:"status" json:"status"`
	IsPaid          bool           `db:"is_paid" json:"is_paid"`
	Files           pq.StringArray `db:"files" json:"files"`
	RevisionComment *string        `db:"revision_comment" json:"revision_comment,omitempty"`
	RevisionGrade   *string        `db:"revision_grade" json:"revision_grade,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Связанные данные (заполняются репозиторием при выборке)
	Student *Student `db:"-" json:"student,omitempty"`
}

// IsClaimed сообщает, закреплён ли за заказом исполнитель.
func (o *Order) IsClaimed() bool {
	return o.ExecutorTelegram != nil && *o.ExecutorTelegram != ""
}

// IsCustom сообщает, является ли заказ кастомным (вне каталога).
func (o *Order) IsCustom() bool {
	return o.SubjectID == nil || *o.SubjectID == ""
}
