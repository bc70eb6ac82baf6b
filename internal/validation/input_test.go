package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOrderTitle(t *testing.T) {
	assert.NoError(t, ValidateOrderTitle("ПР 1-3 по статметодам"))
	assert.Error(t, ValidateOrderTitle(""))
	assert.Error(t, ValidateOrderTitle("  "))
	assert.Error(t, ValidateOrderTitle("аб"))
	assert.Error(t, ValidateOrderTitle(strings.Repeat("ф", MaxTitleLength+1)))
}

func TestNormalizeTelegram(t *testing.T) {
	assert.Equal(t, "ivan", NormalizeTelegram("@ivan"))
	assert.Equal(t, "ivan", NormalizeTelegram("  ivan "))
	assert.Equal(t, "ivan_99", NormalizeTelegram("@ivan_99"))
}

func TestValidateTelegram(t *testing.T) {
	assert.NoError(t, ValidateTelegram("@ivan_99"))
	assert.NoError(t, ValidateTelegram("ivan"))
	assert.Error(t, ValidateTelegram(""))
	assert.Error(t, ValidateTelegram("ab"))
	assert.Error(t, ValidateTelegram("иван"))
	assert.Error(t, ValidateTelegram("ivan!"))
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(0))
	assert.NoError(t, ValidatePrice(3750))
	assert.Error(t, ValidatePrice(-1))
	assert.Error(t, ValidatePrice(MaxPrice+1))
}

func TestValidatePayout(t *testing.T) {
	assert.NoError(t, ValidatePayout(nil))

	ok := float64(3750)
	assert.NoError(t, ValidatePayout(&ok))

	// Выплата больше цены заказа — договорённость, не ошибка.
	big := float64(999999)
	assert.NoError(t, ValidatePayout(&big))

	negative := float64(-100)
	assert.Error(t, ValidatePayout(&negative))
}

func TestParseDeadline(t *testing.T) {
	d, err := ParseDeadline("2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.September, d.Month())

	d, err = ParseDeadline("2026-09-15T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 15, d.Day())

	_, err = ParseDeadline("")
	assert.Error(t, err)
	_, err = ParseDeadline("15.09.2026")
	assert.Error(t, err)
}

func TestValidateRevisionComment(t *testing.T) {
	assert.NoError(t, ValidateRevisionComment("исправить выводы в ПР 2"))
	assert.Error(t, ValidateRevisionComment(""))
	assert.Error(t, ValidateRevisionComment("   "))
	assert.Error(t, ValidateRevisionComment(strings.Repeat("ф", MaxRevisionCommentLength+1)))
}
