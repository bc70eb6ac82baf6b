package catalog

import "fmt"

// Статический справочник курсов и предметов. Данные read-only на всём
// времени жизни процесса; изменение цен — это новый релиз.

func rub(v float64) *float64 { return &v }

// DefaultCourses возвращает список курсов.
func DefaultCourses() []Course {
	return []Course{
		{ID: "bi", Name: "Бизнес-информатика", Semesters: []int{1, 2, 3, 4, 5, 6, 7, 8}},
	}
}

// DefaultSubjects возвращает предметы с работами и ценами.
func DefaultSubjects() []Subject {
	return []Subject{
		{
			ID:                 "practice",
			Name:               "Летняя практика",
			Description:        "Системный анализ предприятия, архитектурное моделирование, управление проектами",
			Course:             "bi",
			Semester:           4,
			BasePrice:          rub(2500),
			FullCourseDiscount: 5,
			Works: []Work{
				{ID: "practice-gost-excel", Title: "ГОСТ + Excel анализ", Price: rub(1000), EstimatedDays: 3},
				{ID: "practice-1-old", Title: "1. Системный анализ предприятия (старое предприятие)", Price: rub(1000), EstimatedDays: 3},
				{ID: "practice-1-new", Title: "1. Системный анализ предприятия (новое предприятие)", Price: rub(2000), EstimatedDays: 3},
				{ID: "practice-1-4-1-6", Title: "1.4-1.6. Анализ производственной структуры предприятия", Price: rub(2000), EstimatedDays: 2},
				{ID: "practice-2", Title: "2. Архитектурное моделирование в среде Archi", Price: rub(2500), EstimatedDays: 3},
				{ID: "practice-3", Title: "3. Процессное управление предприятием", Price: rub(2000), EstimatedDays: 2},
				{ID: "practice-4", Title: "4. Управление проектами (в YouGile)", Price: rub(1000), EstimatedDays: 2},
				{ID: "practice-7", Title: "7. Визуализация данных в Yandex DataLens", Price: rub(1000), EstimatedDays: 3},
				{ID: "practice-orange", Title: "8. Предварительный анализ данных в Orange", Price: rub(1000), EstimatedDays: 2},
				{ID: "practice-python", Title: "9. Анализ данных на Python+SQL", Price: rub(1000), EstimatedDays: 4},
			},
		},
		{
			ID:                 "stat-methods",
			Name:               "Статистические методы",
			Description:        "Практические работы по статистическим методам",
			Course:             "bi",
			Semester:           4,
			BasePrice:          rub(2000),
			FullCourseDiscount: 10,
			Works:              statWorks(),
		},
		{
			ID:                 "pup",
			Name:               "ПУП",
			Description:        "Практики, ИКР, рефераты по проектированию программного обеспечения",
			Course:             "bi",
			Semester:           4,
			BasePrice:          rub(2200),
			FullCourseDiscount: 7,
			Works: []Work{
				{ID: "pup-practice-1", Title: "ПР 1", Description: "ПУП - Практическая работа №1", Price: rub(1000), EstimatedDays: 2},
				{ID: "pup-practice-2", Title: "ПР 2", Description: "ПУП - Практическая работа №2", Price: rub(1000), EstimatedDays: 2},
				{ID: "pup-practice-3", Title: "ПР 3", Description: "ПУП - Практическая работа №3", Price: rub(1000), EstimatedDays: 2},
				{ID: "pup-practice-4", Title: "ПР 4", Description: "ПУП - Практическая работа №4", Price: rub(1000), EstimatedDays: 2},
				{ID: "pup-5", Title: "ПР 5", Description: "Практическая работа №5. IDEF0", Price: rub(1500), EstimatedDays: 7},
				{ID: "pup-6", Title: "ПР 6", Description: "Практическая работа №6. EPC и BPMN", Price: rub(2000), EstimatedDays: 7},
				{ID: "pup-ikr", Title: "ИКР (Итоговая контрольная работа)", Description: "Итоговая контрольная работа по ПУП", Price: rub(1000), EstimatedDays: 7},
				{ID: "pup-referat", Title: "Реферат", Description: "Реферат по заданной теме на основе обзора источников", Price: rub(2000), EstimatedDays: 2},
			},
		},
		{
			ID:                 "digital-economy",
			Name:               "Цифровая экономика",
			Description:        "Практические и лабораторные работы по цифровой экономике",
			Course:             "bi",
			Semester:           4,
			BasePrice:          rub(1800),
			FullCourseDiscount: 5,
			Works: []Work{
				{ID: "digital-pr-1", Title: "ПР 1", Description: "Практическая работа №1 по цифровой экономике", Price: rub(1000), EstimatedDays: 1},
				{ID: "digital-pr-2", Title: "ПР 2", Description: "Практическая работа №2 по цифровой экономике", Price: rub(1000), EstimatedDays: 1},
				{ID: "digital-pr-3", Title: "ПР 3", Description: "Практическая работа №3 по цифровой экономике", Price: rub(1000), EstimatedDays: 1},
				{ID: "digital-pr-4", Title: "ПР 4", Description: "Практическая работа №4 по цифровой экономике", Price: rub(1000), EstimatedDays: 1},
				{ID: "digital-pr-5", Title: "ПР 5", Description: "Практическая работа №5 по цифровой экономике", Price: rub(1000), EstimatedDays: 1},
				{ID: "digital-lr-1", Title: "ЛР 1", Description: "Лабораторная работа №1 по цифровой экономике", Price: rub(1000), EstimatedDays: 2},
				{ID: "digital-lr-2", Title: "ЛР 2", Description: "Лабораторная работа №2 по цифровой экономике", Price: rub(1000), EstimatedDays: 2},
				{ID: "digital-lr-3", Title: "ЛР 3", Description: "Лабораторная работа №3 по цифровой экономике", Price: rub(1000), EstimatedDays: 2},
			},
		},
		{
			ID:                 "bp-modeling",
			Name:               "Моделирование бизнес-процессов",
			Description:        "Практические работы по моделированию БП",
			Course:             "bi",
			Semester:           4,
			BasePrice:          rub(2000),
			FullCourseDiscount: 7,
			Works: []Work{
				{ID: "bp-2", Title: "ПР 2", Description: "Моделирование БП - Практическая работа №2", Price: rub(1000), EstimatedDays: 3},
				{ID: "bp-3", Title: "ПР 3", Description: "Моделирование БП - Практическая работа №3", Price: rub(1000), EstimatedDays: 3},
				{ID: "bp-4", Title: "ПР 4", Description: "Моделирование БП - Практическая работа №4", Price: rub(1000), EstimatedDays: 3},
				{ID: "bp-5", Title: "ПР 5", Description: "Моделирование БП - Практическая работа №5", Price: rub(1000), EstimatedDays: 3},
			},
		},
		{
			ID:           "other",
			Name:         "Другой предмет",
			Description:  "Работа по предмету, которого нет в каталоге",
			Course:       "bi",
			Semester:     4,
			IsCustomForm: true,
			PriceNote:    "Стоимость рассчитывается администратором после уточнения задания",
			Works:        []Work{},
		},
	}
}

func statWorks() []Work {
	works := make([]Work, 0, 12)
	for i := 1; i <= 12; i++ {
		works = append(works, Work{
			ID:            fmt.Sprintf("stat-%d", i),
			Title:         fmt.Sprintf("ПР %d", i),
			Description:   fmt.Sprintf("Статистические методы - Практическая работа №%d", i),
			Price:         rub(1250),
			EstimatedDays: 1,
		})
	}
	return works
}
