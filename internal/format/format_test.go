package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTomanPersianDigitsAndGrouping(t *testing.T) {
	assert.Equal(t, "۵٬۰۰۰٬۰۰۰ تومان", Toman(5_000_000, "fa"))
	assert.Equal(t, "۰ تومان", Toman(0, "fa"))
}

func TestTomanEnglishFallback(t *testing.T) {
	assert.Equal(t, "1,250,000 Toman", Toman(1_250_000, "en"))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "۲۰٪", Percent(20, "fa"))
	assert.Equal(t, "20%", Percent(20, "en"))
}

func TestDate(t *testing.T) {
	ts := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024/03/20", Date(ts, "fa"))
	assert.Equal(t, "Mar 20, 2024", Date(ts, "en"))
}
