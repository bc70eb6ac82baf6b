package dto

// CreateOrderRequest — заявка студента на новый заказ.
type CreateOrderRequest struct {
	StudentName     string `json:"student_name" binding:"required"`
	StudentGroup    string `json:"student_group" binding:"required"`
	StudentTelegram string `json:"student_telegram" binding:"required"`

	SubjectID       string   `json:"subject_id"`
	SelectedWorkIDs []string `json:"selected_work_ids"`
	IsFullCourse    bool     `json:"is_full_course"`
	CustomSubject   string   `json:"custom_subject"`
	CustomWork      string   `json:"custom_work"`

	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	InputData   string `json:"input_data"`
	VariantInfo string `json:"variant_info"`
	Deadline    string `json:"deadline" binding:"required"`
}

// QuoteRequest — запрос предварительного расчёта стоимости.
type QuoteRequest struct {
	SubjectID       string   `json:"subject_id"`
	SelectedWorkIDs []string `json:"selected_work_ids"`
	IsFullCourse    bool     `json:"is_full_course"`
	CustomSubject   string   `json:"custom_subject"`
	CustomWork      string   `json:"custom_work"`
}

// SetPriceRequest — ручная установка стоимости администратором.
type SetPriceRequest struct {
	Price float64 `json:"price" binding:"required"`
}

// UpdateStatusRequest — перевод заказа в новый статус.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignExecutorRequest — закрепление исполнителя за заказом.
type AssignExecutorRequest struct {
	ExecutorTelegram string   `json:"executor_telegram" binding:"required"`
	PayoutAmount     *float64 `json:"payout_amount"`
}

// RevisionRequest — запрос студента на доработку.
type RevisionRequest struct {
	Comment string `json:"comment" binding:"required"`
	Grade   string `json:"grade"`
}

// ResolveRevisionRequest — решение по циклу доработки.
type ResolveRevisionRequest struct {
	Status        string `json:"status" binding:"required"`
	ClearRevision bool   `json:"clear_revision"`
}

// AdminUpdateRequest — административная правка заказа. Отсутствующие
// поля не изменяются.
type AdminUpdateRequest struct {
	Title            *string  `json:"title"`
	Description      *string  `json:"description"`
	InputData        *string  `json:"input_data"`
	VariantInfo      *string  `json:"variant_info"`
	Deadline         *string  `json:"deadline"`
	ActualPrice      *float64 `json:"actual_price"`
	PayoutAmount     *float64 `json:"payout_amount"`
	ExecutorTelegram *string  `json:"executor_telegram"`
	Status           *string  `json:"status"`
	IsPaid           *bool    `json:"is_paid"`
	RevisionComment  *string  `json:"revision_comment"`
	RevisionGrade    *string  `json:"revision_grade"`
	SelectedWorkIDs  []string `json:"selected_work_ids"`
}

// SaveChatIDRequest — привязка Telegram-чата студента.
type SaveChatIDRequest struct {
	Telegram string `json:"telegram" binding:"required"`
	ChatID   string `json:"chat_id" binding:"required"`
	Name     string `json:"name"`
}
