package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/bbifather/student-orders-backend/internal/catalog"
	"github.com/bbifather/student-orders-backend/internal/goroutine"
	"github.com/bbifather/student-orders-backend/internal/logger"
	"github.com/bbifather/student-orders-backend/internal/models"
	"github.com/bbifather/student-orders-backend/internal/pkg/apperror"
	"github.com/bbifather/student-orders-backend/internal/repository"
	"github.com/bbifather/student-orders-backend/internal/validation"
)

// OrderRepository описывает взаимодействие сервиса с хранилищем заказов.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params repository.ListParams) (*repository.ListResult, error)
	Update(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	SetPrice(ctx context.Context, id uuid.UUID, price float64, status string) error
	MarkPaid(ctx context.Context, id uuid.UUID, status string) error
	ClaimExecutor(ctx context.Context, id uuid.UUID, executor string, payout *float64) error
	ReleaseExecutor(ctx context.Context, id uuid.UUID) error
	AppendFiles(ctx context.Context, id uuid.UUID, files []string, status string) error
	SetRevision(ctx context.Context, id uuid.UUID, comment string, grade *string) error
	ClearRevision(ctx context.Context, id uuid.UUID, status string) error
}

// StudentRepository описывает взаимодействие со студентами.
type StudentRepository interface {
	Upsert(ctx context.Context, student *models.Student) error
	GetByTelegram(ctx context.Context, telegram string) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
	SaveChatID(ctx context.Context, telegram, chatID, name string) error
}

// OrderService владеет жизненным циклом заказа: статусами, оплатой,
// исполнителями и доработками. Все мутации идут через него.
type OrderService struct {
	orders      OrderRepository
	students    StudentRepository
	resolver    *catalog.Resolver
	notifier    Notifier
	payoutShare float64
}

// NewOrderService создаёт новый сервис заказов.
func NewOrderService(orders OrderRepository, students StudentRepository, resolver *catalog.Resolver, notifier Notifier, payoutShare float64) *OrderService {
	if payoutShare <= 0 || payoutShare > 1 {
		payoutShare = 0.75
	}
	return &OrderService{
		orders:      orders,
		students:    students,
		resolver:    resolver,
		notifier:    notifier,
		payoutShare: payoutShare,
	}
}

// CreateOrderInput описывает входные данные нового заказа.
type CreateOrderInput struct {
	StudentName     string
	StudentGroup    string
	StudentTelegram string

	SubjectID       string
	SelectedWorkIDs []string
	IsFullCourse    bool
	CustomSubject   string
	CustomWork      string

	Title       string
	Description string
	InputData   string
	VariantInfo string
	Deadline    time.Time
}

// CreateOrder создаёт заказ от имени студента. Стоимость всегда
// пересчитывается по каталогу на сервере: присланные клиентом итоги
// не принимаются на веру.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := validation.ValidateOrderTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateOrderDescription(in.Description); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateStudentName(in.StudentName); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateTelegram(in.StudentTelegram); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateDeadline(in.Deadline); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	sel := catalog.Selection{
		SubjectID:       in.SubjectID,
		SelectedWorkIDs: in.SelectedWorkIDs,
		IsFullCourse:    in.IsFullCourse,
		CustomSubject:   in.CustomSubject,
		CustomWork:      in.CustomWork,
	}

	// Для полного курса фиксируем фактический набор работ предмета.
	workIDs := in.SelectedWorkIDs
	if in.SubjectID != "" {
		subject, err := s.resolver.SubjectByID(in.SubjectID)
		if err != nil {
			return nil, err
		}
		if in.IsFullCourse {
			workIDs = subject.AllWorkIDs()
		}
	}

	total, err := s.resolver.ResolveTotal(sel)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:      strings.TrimSpace(in.StudentName),
		GroupName: strings.TrimSpace(in.StudentGroup),
		Telegram:  validation.NormalizeTelegram(in.StudentTelegram),
	}
	if err := s.students.Upsert(ctx, student); err != nil {
		return nil, err
	}

	order := &models.Order{
		StudentID:       student.ID,
		SelectedWorkIDs: pq.StringArray(workIDs),
		IsFullCourse:    in.IsFullCourse,
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		Deadline:        in.Deadline,
		ActualPrice:     total,
		Status:          models.OrderStatusNew,
	}
	if in.SubjectID != "" {
		order.SubjectID = &in.SubjectID
	}
	if v := strings.TrimSpace(in.CustomSubject); v != "" {
		order.CustomSubject = &v
	}
	if v := strings.TrimSpace(in.CustomWork); v != "" {
		order.CustomWork = &v
	}
	if v := strings.TrimSpace(in.InputData); v != "" {
		order.InputData = &v
	}
	if v := strings.TrimSpace(in.VariantInfo); v != "" {
		order.VariantInfo = &v
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	order.Student = student

	s.notifyAsync(Event{Order: order, Kind: EventOrderCreated, Audience: AudienceBoth})
	return order, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return order, nil
}

// ListOrders возвращает страницу заказов.
func (s *OrderService) ListOrders(ctx context.Context, params repository.ListParams) (*repository.ListResult, error) {
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 10
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	return s.orders.List(ctx, params)
}

// ListAllOrders собирает весь список повторными ограниченными чтениями.
// Цикл обязан завершаться даже при несогласованном total: неполная
// страница — авторитетный признак конца данных.
func (s *OrderService) ListAllOrders(ctx context.Context, telegram string, pageSize int) ([]models.Order, error) {
	if pageSize < 1 {
		pageSize = 200
	}
	if pageSize > 1000 {
		pageSize = 1000
	}

	var all []models.Order
	page := 1
	for {
		res, err := s.orders.List(ctx, repository.ListParams{
			Telegram: telegram,
			Page:     page,
			Limit:    pageSize,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, res.Orders...)

		if len(res.Orders) < pageSize || len(all) >= res.Total {
			break
		}
		page++
	}
	return all, nil
}

// SetPrice устанавливает стоимость заказа и выставляет счёт студенту.
// Только администратор: ручная цена — явное действие, после которого
// каталог её больше не пересчитывает.
func (s *OrderService) SetPrice(ctx context.Context, actor Actor, id uuid.UUID, price float64) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	if err := validation.ValidatePrice(price); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if price == 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "нельзя выставить счёт с нулевой стоимостью")
	}

	if _, err := s.GetOrder(ctx, id); err != nil {
		return nil, err
	}

	if err := s.orders.SetPrice(ctx, id, price, models.OrderStatusWaitingPayment); err != nil {
		return nil, mapRepoError(err)
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifyAsync(Event{Order: order, Kind: EventPriceSet, Audience: AudienceStudent})
	return order, nil
}

// ClaimPayment фиксирует заявление студента "я оплатил". Статус и флаг
// оплаты не меняются: подтверждение остаётся за администратором,
// событие лишь уведомляет его о необходимости проверки.
func (s *OrderService) ClaimPayment(ctx context.Context, actor Actor, id uuid.UUID) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if !actor.IsStudent() || order.Student == nil || order.Student.Telegram != actor.Telegram {
			return nil, apperror.ErrForbidden
		}
	}

	s.notifyAsync(Event{Order: order, Kind: EventPaymentClaimed, Audience: AudienceBoth})
	return order, nil
}

// MarkPaid подтверждает оплату заказа администратором.
func (s *OrderService) MarkPaid(ctx context.Context, actor Actor, id uuid.UUID) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	// Оплата при нулевой цене допустима для договорных заказов,
	// но заслуживает следа в логах.
	if order.ActualPrice == 0 && logger.Log != nil {
		logger.Log.WithField("order_id", id).Warn("заказ помечен оплаченным при нулевой стоимости")
	}

	if err := s.orders.MarkPaid(ctx, id, models.OrderStatusPaid); err != nil {
		return nil, mapRepoError(err)
	}

	order, err = s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifyAsync(Event{Order: order, Kind: EventMarkedPaid, Audience: AudienceStudent})
	return order, nil
}

// ClaimExecutor закрепляет исполнителя за заказом. Повторная заявка того
// же исполнителя идемпотентна; попытка перехватить занятый заказ
// завершается ошибкой AlreadyClaimed. При первом закреплении выплата
// по умолчанию — настроенная доля от стоимости заказа.
func (s *OrderService) ClaimExecutor(ctx context.Context, actor Actor, id uuid.UUID, executor string, payout *float64) (*models.Order, error) {
	if !actor.IsAdmin() && !actor.IsExecutor() {
		return nil, apperror.ErrForbidden
	}
	executor = validation.NormalizeTelegram(executor)
	if executor == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "не указан исполнитель")
	}
	// Исполнитель может брать заказы только на себя.
	if actor.IsExecutor() && !actor.IsAdmin() && executor != actor.Telegram {
		return nil, apperror.ErrForbidden
	}
	if err := validation.ValidatePayout(payout); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if payout == nil && order.PayoutAmount == nil {
		defaultPayout := math.Round(order.ActualPrice * s.payoutShare)
		payout = &defaultPayout
	}

	if err := s.orders.ClaimExecutor(ctx, id, executor, payout); err != nil {
		if errors.Is(err, repository.ErrClaimConflict) {
			return nil, apperror.ErrAlreadyClaimed
		}
		return nil, mapRepoError(err)
	}

	return s.GetOrder(ctx, id)
}

// ReleaseExecutor снимает исполнителя с заказа. Доступно администратору
// и самому исполнителю.
func (s *OrderService) ReleaseExecutor(ctx context.Context, actor Actor, id uuid.UUID) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(order) {
		return nil, apperror.ErrForbidden
	}

	if err := s.orders.ReleaseExecutor(ctx, id); err != nil {
		return nil, mapRepoError(err)
	}
	return s.GetOrder(ctx, id)
}

// Переходы, доступные исполнителю помимо административной правки.
var executorTransitions = map[string]map[string]struct{}{
	models.OrderStatusPaid: {
		models.OrderStatusInProgress: {},
	},
	models.OrderStatusInProgress: {
		models.OrderStatusCompleted: {},
	},
	models.OrderStatusNeedsRevision: {
		models.OrderStatusInProgress: {},
		models.OrderStatusCompleted:  {},
	},
}

// UpdateStatus переводит заказ в новый статус. Администратору доступен
// любой валидный статус; исполнителю — только узкие переходы рабочего
// цикла на закреплённом за ним заказе.
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (*models.Order, error) {
	if _, ok := models.ValidOrderStatuses[status]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректный статус заказа")
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if !actor.CanManage(order) {
			return nil, apperror.ErrForbidden
		}
		allowed, ok := executorTransitions[order.Status]
		if !ok {
			return nil, apperror.ErrForbidden
		}
		if _, ok := allowed[status]; !ok {
			return nil, apperror.ErrForbidden
		}
	}

	// Статус доработки без комментария студента невозможен.
	if status == models.OrderStatusNeedsRevision && (order.RevisionComment == nil || strings.TrimSpace(*order.RevisionComment) == "") {
		return nil, apperror.New(apperror.ErrCodeValidation, "для статуса доработки нужен комментарий студента")
	}

	if order.Status == status {
		return order, nil
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, mapRepoError(err)
	}

	order, err = s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifyAsync(Event{Order: order, Kind: EventStatusChanged, Audience: AudienceStudent})
	return order, nil
}

// CompleteWithFiles прикрепляет готовые файлы и завершает заказ.
// Список файлов append-only; дубликаты имён отбрасываются, что делает
// повтор операции безопасным.
func (s *OrderService) CompleteWithFiles(ctx context.Context, actor Actor, id uuid.UUID, filenames []string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(order) {
		return nil, apperror.ErrForbidden
	}

	existing := make(map[string]struct{}, len(order.Files))
	for _, f := range order.Files {
		existing[f] = struct{}{}
	}
	fresh := make([]string, 0, len(filenames))
	for _, f := range filenames {
		if _, ok := existing[f]; ok {
			continue
		}
		existing[f] = struct{}{}
		fresh = append(fresh, f)
	}

	if err := s.orders.AppendFiles(ctx, id, fresh, models.OrderStatusCompleted); err != nil {
		return nil, mapRepoError(err)
	}

	order, err = s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifyAsync(Event{Order: order, Kind: EventFilesDelivered, Audience: AudienceStudent})
	return order, nil
}

// RequestRevision переводит завершённый заказ на доработку по запросу
// студента. Комментарий обязателен, оценка опциональна.
func (s *OrderService) RequestRevision(ctx context.Context, actor Actor, id uuid.UUID, comment string, grade string) (*models.Order, error) {
	if err := validation.ValidateRevisionComment(comment); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if !actor.IsStudent() || order.Student == nil || order.Student.Telegram != actor.Telegram {
			return nil, apperror.ErrForbidden
		}
	}

	if order.Status != models.OrderStatusCompleted {
		return nil, apperror.New(apperror.ErrCodeValidation, "доработку можно запросить только по завершённому заказу")
	}

	var gradePtr *string
	if g := strings.TrimSpace(grade); g != "" {
		gradePtr = &g
	}

	if err := s.orders.SetRevision(ctx, id, strings.TrimSpace(comment), gradePtr); err != nil {
		return nil, mapRepoError(err)
	}

	order, err = s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifyAsync(Event{Order: order, Kind: EventRevisionRequested, Audience: AudienceBoth})
	return order, nil
}

// ResolveRevision закрывает цикл доработки: заказ возвращается в работу
// или снова считается завершённым. clear управляет тем, очищаются ли
// комментарий и оценка студента.
func (s *OrderService) ResolveRevision(ctx context.Context, actor Actor, id uuid.UUID, status string, clear bool) (*models.Order, error) {
	if status != models.OrderStatusCompleted && status != models.OrderStatusInProgress {
		return nil, apperror.New(apperror.ErrCodeValidation, "после доработки заказ может быть только в работе или завершён")
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(order) {
		return nil, apperror.ErrForbidden
	}
	if order.Status != models.OrderStatusNeedsRevision {
		return nil, apperror.New(apperror.ErrCodeValidation, "заказ не находится на доработке")
	}

	if clear {
		err = s.orders.ClearRevision(ctx, id, status)
	} else {
		err = s.orders.UpdateStatus(ctx, id, status)
	}
	if err != nil {
		return nil, mapRepoError(err)
	}

	order, err = s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifyAsync(Event{Order: order, Kind: EventStatusChanged, Audience: AudienceStudent})
	return order, nil
}

// notifyAsync отправляет событие каналу уведомлений, не блокируя и не
// проваливая операцию: доставка — забота канала.
func (s *OrderService) notifyAsync(event Event) {
	if s.notifier == nil {
		return
	}
	goroutine.SafeGo(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.notifier.Notify(ctx, event)
	})
}

// mapRepoError переводит ошибки хранилища в типизированные ошибки ядра.
func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		return apperror.ErrOrderNotFound
	case errors.Is(err, repository.ErrStudentNotFound):
		return apperror.ErrStudentNotFound
	case errors.Is(err, repository.ErrClaimConflict):
		return apperror.ErrAlreadyClaimed
	default:
		return err
	}
}
