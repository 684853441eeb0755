package meallog

import "time"

// User 使用者與其累計節省的食物重量
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null;size:100"`
	FoodSaved float64   `json:"foodSaved" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MealLog 一次採用推薦食譜的紀錄
type MealLog struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"userId" gorm:"index;not null"`
	User             User      `json:"-"`
	RecipeID         string    `json:"recipeId" gorm:"size:64;not null"`
	RecipeName       string    `json:"recipeName" gorm:"size:255"`
	MealType         string    `json:"mealType" gorm:"size:16"`
	IngredientsSaved int       `json:"ingredientsSaved"`
	PoundsSaved      float64   `json:"poundsSaved"`
	CreatedAt        time.Time `json:"createdAt" gorm:"index"`
}

// Entry 寫入一筆餐點紀錄所需的資料
type Entry struct {
	Username         string
	RecipeID         string
	RecipeName       string
	MealType         string
	IngredientsSaved int
	PoundsSaved      float64
}
