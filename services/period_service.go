package services

import (
	"time"

	"ovacare/backend/models"
)

// DefaultCycleLength 是未提供週期長度時的預設值（天）
const DefaultCycleLength = 28

// lutealPhaseDays 是排卵日到下次經期的天數
const lutealPhaseDays = 14

// fertileWindowDays 是排卵日前後視為易孕期的天數
const fertileWindowDays = 2

// CyclePrediction 是根據最近一次經期紀錄推算的結果
type CyclePrediction struct {
	NextPeriodDate  time.Time `json:"next_period_date"`
	OvulationDate   time.Time `json:"ovulation_date"`
	FertileStart    time.Time `json:"fertile_window_start"`
	FertileEnd      time.Time `json:"fertile_window_end"`
	DaysUntilPeriod int       `json:"days_until_period"`
}

// PredictCycle 從最近一次經期紀錄推算下次經期與易孕期
func PredictCycle(latest models.PeriodLog, now time.Time) CyclePrediction {
	cycleLength := latest.CycleLength
	if cycleLength <= 0 {
		cycleLength = DefaultCycleLength
	}

	nextPeriod := latest.StartDate.AddDate(0, 0, cycleLength)
	// 若推算出的日期已經過去，往後推到下一個未來的週期
	for !nextPeriod.After(now) {
		nextPeriod = nextPeriod.AddDate(0, 0, cycleLength)
	}

	ovulation := nextPeriod.AddDate(0, 0, -lutealPhaseDays)

	days := int(nextPeriod.Sub(now).Hours() / 24)

	return CyclePrediction{
		NextPeriodDate:  nextPeriod,
		OvulationDate:   ovulation,
		FertileStart:    ovulation.AddDate(0, 0, -fertileWindowDays),
		FertileEnd:      ovulation.AddDate(0, 0, fertileWindowDays),
		DaysUntilPeriod: days,
	}
}
