package catalog

// Course описывает учебный курс с доступными семестрами.
type Course struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Semesters []int  `json:"semesters"`
}

// Work описывает отдельную работу внутри предмета.
// Price может отсутствовать: тогда цену назначает администратор.
type Work struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	EstimatedDays int      `json:"estimated_days,omitempty"`
}

// Subject описывает предмет с набором работ.
type Subject struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Course      string   `json:"course"`
	Semester    int      `json:"semester"`
	BasePrice   *float64 `json:"base_price,omitempty"`
	Works       []Work   `json:"works"`

	// FullCourseDiscount — скидка в процентах при заказе всех работ сразу.
	FullCourseDiscount float64 `json:"full_course_discount,omitempty"`

	// IsCustomForm означает, что предмет оформляется в свободной форме
	// и цену для него всегда назначает администратор.
	IsCustomForm bool   `json:"is_custom_form,omitempty"`
	PriceNote    string `json:"price_note,omitempty"`
}

// WorkByID возвращает работу предмета по идентификатору.
func (s *Subject) WorkByID(workID string) *Work {
	for i := range s.Works {
		if s.Works[i].ID == workID {
			return &s.Works[i]
		}
	}
	return nil
}

// AllWorkIDs возвращает идентификаторы всех работ предмета.
func (s *Subject) AllWorkIDs() []string {
	ids := make([]string, 0, len(s.Works))
	for _, w := range s.Works {
		ids = append(ids, w.ID)
	}
	return ids
}
