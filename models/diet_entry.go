package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DietEntry 表示一筆飲食紀錄
type DietEntry struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID   string             `bson:"user_id" json:"-"`
	FoodName string             `bson:"food_name" json:"food_name"`
	Calories float64            `bson:"calories" json:"calories"`
	Protein  float64            `bson:"protein" json:"protein"`
	Carbs    float64            `bson:"carbs" json:"carbs"`
	Fats     float64            `bson:"fats" json:"fats"`
	MealType string             `bson:"meal_type" json:"meal_type"` // breakfast, lunch, dinner, snack
	Date     time.Time          `bson:"date" json:"date"`
}
