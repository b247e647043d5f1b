package services

import (
	"testing"
	"time"

	"ovacare/backend/models"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPredictCycleBasic(t *testing.T) {
	latest := models.PeriodLog{
		StartDate:   date(2026, time.March, 1),
		CycleLength: 28,
	}
	now := date(2026, time.March, 10)

	p := PredictCycle(latest, now)

	assert.Equal(t, date(2026, time.March, 29), p.NextPeriodDate)
	assert.Equal(t, date(2026, time.March, 15), p.OvulationDate)
	assert.Equal(t, date(2026, time.March, 13), p.FertileStart)
	assert.Equal(t, date(2026, time.March, 17), p.FertileEnd)
	assert.Equal(t, 19, p.DaysUntilPeriod)
}

func TestPredictCycleDefaultsCycleLength(t *testing.T) {
	latest := models.PeriodLog{
		StartDate: date(2026, time.March, 1),
		// CycleLength 未設定
	}
	now := date(2026, time.March, 2)

	p := PredictCycle(latest, now)
	assert.Equal(t, date(2026, time.March, 29), p.NextPeriodDate)
}

func TestPredictCycleRollsForwardPastCycles(t *testing.T) {
	// 紀錄很舊時要往後推到下一個未來的週期
	latest := models.PeriodLog{
		StartDate:   date(2026, time.January, 1),
		CycleLength: 28,
	}
	now := date(2026, time.March, 10)

	p := PredictCycle(latest, now)
	assert.True(t, p.NextPeriodDate.After(now))
	assert.Equal(t, date(2026, time.March, 26), p.NextPeriodDate)
}
