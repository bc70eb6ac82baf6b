package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Константы валидации
const (
	MinTitleLength           = 3
	MaxTitleLength           = 200
	MaxDescriptionLength     = 5000
	MaxInputDataLength       = 5000
	MaxVariantInfoLength     = 1000
	MinStudentNameLength     = 2
	MaxStudentNameLength     = 100
	MaxGroupNameLength       = 50
	MinTelegramLength        = 3
	MaxTelegramLength        = 64
	MaxRevisionCommentLength = 2000
	MaxRevisionGradeLength   = 50
	MaxPrice                 = 1000000.0 // миллион рублей
)

var telegramRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateOrderTitle проверяет название работы.
func ValidateOrderTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("название работы обязательно")
	}
	return ValidateLength("название работы", strings.TrimSpace(title), MinTitleLength, MaxTitleLength)
}

// ValidateOrderDescription проверяет описание заказа.
func ValidateOrderDescription(description string) error {
	return ValidateLength("описание заказа", strings.TrimSpace(description), 0, MaxDescriptionLength)
}

// ValidateStudentName проверяет имя студента.
func ValidateStudentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("имя студента обязательно")
	}
	return ValidateLength("имя студента", strings.TrimSpace(name), MinStudentNameLength, MaxStudentNameLength)
}

// NormalizeTelegram убирает @ и пробелы из ника.
func NormalizeTelegram(telegram string) string {
	return strings.TrimPrefix(strings.TrimSpace(telegram), "@")
}

// ValidateTelegram проверяет ник в Telegram (без @).
func ValidateTelegram(telegram string) error {
	telegram = NormalizeTelegram(telegram)
	if telegram == "" {
		return fmt.Errorf("ник в Telegram обязателен")
	}
	if err := ValidateLength("ник в Telegram", telegram, MinTelegramLength, MaxTelegramLength); err != nil {
		return err
	}
	if !telegramRegex.MatchString(telegram) {
		return fmt.Errorf("ник в Telegram может содержать только буквы, цифры и подчеркивание")
	}
	return nil
}

// ValidatePrice проверяет цену. Отрицательная цена отклоняется,
// а не приводится к нулю.
func ValidatePrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("цена не может быть отрицательной")
	}
	if price > MaxPrice {
		return fmt.Errorf("цена не может превышать %.0f", MaxPrice)
	}
	return nil
}

// ValidatePayout проверяет сумму выплаты исполнителю. Выплата больше
// стоимости заказа допустима (договорённость), но остаётся на совести
// администратора; жёстко запрещены только отрицательные значения.
func ValidatePayout(payout *float64) error {
	if payout == nil {
		return nil
	}
	if *payout < 0 {
		return fmt.Errorf("сумма выплаты не может быть отрицательной")
	}
	if *payout > MaxPrice {
		return fmt.Errorf("сумма выплаты не может превышать %.0f", MaxPrice)
	}
	return nil
}

// ValidateDeadline проверяет срок сдачи.
func ValidateDeadline(deadline time.Time) error {
	if deadline.IsZero() {
		return fmt.Errorf("дедлайн обязателен")
	}
	return nil
}

// ParseDeadline разбирает дату дедлайна из строки формата YYYY-MM-DD
// либо RFC 3339.
func ParseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("дедлайн обязателен")
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректный формат дедлайна: %s", value)
	}
	return t, nil
}

// ValidateRevisionComment проверяет комментарий к исправлениям.
func ValidateRevisionComment(comment string) error {
	if strings.TrimSpace(comment) == "" {
		return fmt.Errorf("комментарий к исправлениям обязателен")
	}
	return ValidateLength("комментарий к исправлениям", strings.TrimSpace(comment), 0, MaxRevisionCommentLength)
}
