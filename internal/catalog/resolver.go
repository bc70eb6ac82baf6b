package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/bbifather/student-orders-backend/internal/pkg/apperror"
)

// Resolver отвечает за разрешение выбора студента в оцененные позиции.
// Расчёты чистые и детерминированные: одинаковый выбор всегда даёт
// одинаковую стоимость, что позволяет пересчитывать её для сверки.
type Resolver struct {
	courses  []Course
	subjects []Subject

	subjectByID map[string]*Subject
	courseByID  map[string]*Course
}

// Selection описывает выбор студента, подлежащий оценке.
type Selection struct {
	SubjectID       string
	SelectedWorkIDs []string
	IsFullCourse    bool
	CustomSubject   string
	CustomWork      string
}

// LineItem — одна оцененная позиция заказа.
type LineItem struct {
	WorkID string  `json:"work_id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
}

// Quote — результат разрешения выбора: готовые к показу студенту данные.
type Quote struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	LineItems   []LineItem `json:"line_items"`
	Total       float64    `json:"total"`

	// PriceOnRequest означает, что итог равен нулю не потому, что работы
	// бесплатны, а потому, что цену назначит администратор.
	PriceOnRequest bool `json:"price_on_request"`
}

// NewResolver создаёт резолвер и проверяет инварианты каталога.
func NewResolver(courses []Course, subjects []Subject) (*Resolver, error) {
	r := &Resolver{
		courses:     courses,
		subjects:    subjects,
		subjectByID: make(map[string]*Subject, len(subjects)),
		courseByID:  make(map[string]*Course, len(courses)),
	}

	for i := range courses {
		c := &courses[i]
		if _, ok := r.courseByID[c.ID]; ok {
			return nil, fmt.Errorf("catalog: дублирующийся курс %q", c.ID)
		}
		r.courseByID[c.ID] = c
	}

	for i := range subjects {
		s := &subjects[i]
		if _, ok := r.subjectByID[s.ID]; ok {
			return nil, fmt.Errorf("catalog: дублирующийся предмет %q", s.ID)
		}
		if s.FullCourseDiscount < 0 || s.FullCourseDiscount >= 100 {
			return nil, fmt.Errorf("catalog: предмет %q: скидка %v вне диапазона [0,100)", s.ID, s.FullCourseDiscount)
		}
		seen := make(map[string]struct{}, len(s.Works))
		for _, w := range s.Works {
			if _, ok := seen[w.ID]; ok {
				return nil, fmt.Errorf("catalog: предмет %q: дублирующаяся работа %q", s.ID, w.ID)
			}
			seen[w.ID] = struct{}{}
		}
		r.subjectByID[s.ID] = s
	}

	return r, nil
}

// Courses возвращает список курсов.
func (r *Resolver) Courses() []Course {
	return r.courses
}

// Subjects возвращает список предметов.
func (r *Resolver) Subjects() []Subject {
	return r.subjects
}

// SubjectByID возвращает предмет по идентификатору.
func (r *Resolver) SubjectByID(id string) (*Subject, error) {
	s, ok := r.subjectByID[id]
	if !ok {
		return nil, apperror.ErrSubjectNotFound
	}
	return s, nil
}

// CourseByID возвращает курс по идентификатору.
func (r *Resolver) CourseByID(id string) (*Course, error) {
	c, ok := r.courseByID[id]
	if !ok {
		return nil, apperror.New(apperror.ErrCodeNotFound, "курс не найден")
	}
	return c, nil
}

// PriceFullCourse считает стоимость заказа всех работ предмета
// с учётом скидки за полный курс. Отсутствующая цена работы считается
// нулём; итог округляется до целого рубля.
func (r *Resolver) PriceFullCourse(s *Subject) float64 {
	if s.IsCustomForm && !s.hasAnyPrice() {
		return 0
	}

	var sum float64
	for _, w := range s.Works {
		if w.Price != nil {
			sum += *w.Price
		}
	}
	return roundRub(sum * (1 - s.FullCourseDiscount/100))
}

// PriceSelectedWorks считает стоимость выбранных работ. Дубликаты
// идентификаторов учитываются один раз, порядок не важен.
func (r *Resolver) PriceSelectedWorks(s *Subject, workIDs []string) float64 {
	selected := make(map[string]struct{}, len(workIDs))
	for _, id := range workIDs {
		selected[id] = struct{}{}
	}

	var sum float64
	for _, w := range s.Works {
		if _, ok := selected[w.ID]; !ok {
			continue
		}
		if w.Price != nil {
			sum += *w.Price
		}
	}
	return roundRub(sum)
}

// ResolveTotal возвращает итоговую стоимость выбора. Ноль означает
// "цену назначит администратор" для кастомных заказов и предметов
// в свободной форме.
func (r *Resolver) ResolveTotal(sel Selection) (float64, error) {
	if sel.SubjectID == "" {
		// Полностью кастомный заказ: каталог не участвует в оценке.
		return 0, nil
	}

	s, err := r.SubjectByID(sel.SubjectID)
	if err != nil {
		return 0, err
	}
	if s.IsCustomForm {
		return 0, nil
	}

	if sel.IsFullCourse {
		return r.PriceFullCourse(s), nil
	}
	return r.PriceSelectedWorks(s, sel.SelectedWorkIDs), nil
}

// Quote разрешает выбор в полный набор данных для оформления заказа.
func (r *Resolver) Quote(sel Selection) (*Quote, error) {
	if sel.SubjectID == "" {
		title := strings.TrimSpace(sel.CustomWork)
		if title == "" {
			title = "Индивидуальный заказ"
		}
		return &Quote{
			Title:          title,
			Description:    strings.TrimSpace(sel.CustomSubject),
			LineItems:      []LineItem{},
			Total:          0,
			PriceOnRequest: true,
		}, nil
	}

	s, err := r.SubjectByID(sel.SubjectID)
	if err != nil {
		return nil, err
	}

	workIDs := sel.SelectedWorkIDs
	if sel.IsFullCourse {
		workIDs = s.AllWorkIDs()
	}

	items := make([]LineItem, 0, len(workIDs))
	seen := make(map[string]struct{}, len(workIDs))
	for _, id := range workIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		w := s.WorkByID(id)
		if w == nil {
			return nil, apperror.New(apperror.ErrCodeValidation,
				fmt.Sprintf("работа %q не найдена в предмете %q", id, s.ID))
		}
		var price float64
		if w.Price != nil {
			price = *w.Price
		}
		items = append(items, LineItem{WorkID: w.ID, Title: w.Title, Price: price})
	}

	total, err := r.ResolveTotal(sel)
	if err != nil {
		return nil, err
	}

	title := s.Name
	if sel.IsFullCourse {
		title = s.Name + " — весь курс"
	}

	return &Quote{
		Title:          title,
		Description:    s.Description,
		LineItems:      items,
		Total:          total,
		PriceOnRequest: s.IsCustomForm,
	}, nil
}

func (s *Subject) hasAnyPrice() bool {
	if s.BasePrice != nil {
		return true
	}
	for _, w := range s.Works {
		if w.Price != nil {
			return true
		}
	}
	return false
}

// roundRub округляет до целого рубля (половина — вверх).
func roundRub(v float64) float64 {
	return math.Round(v)
}
