package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PeriodLog 表示一次經期紀錄
type PeriodLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string             `bson:"user_id" json:"-"`
	StartDate   time.Time          `bson:"start_date" json:"start_date"`
	EndDate     *time.Time         `bson:"end_date,omitempty" json:"end_date,omitempty"`
	CycleLength int                `bson:"cycle_length" json:"cycle_length"` // 預設 28 天
	Symptoms    []string           `bson:"symptoms,omitempty" json:"symptoms,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
