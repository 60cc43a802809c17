package models

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type Listing struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string  `gorm:"not null"                 json:"title"`
	Description string  `gorm:"not null"                 json:"description"`
	Category    string  `gorm:"not null;index"           json:"category"`
	Price       float64 `gorm:"not null"                 json:"price"`
	ImageURL    *string `json:"image_url"`
	UserID      uint    `gorm:"index;not null"           json:"user_id"`
}
