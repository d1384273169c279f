// internal/models/review.go
package models

import (
	"time"
)

type Review struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey" firestore:"id"`
	FactoryID string    `json:"factoryId" gorm:"type:uuid;not null;index" firestore:"factoryId"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;index" firestore:"userId"`
	Rating    int       `json:"rating" gorm:"not null" firestore:"rating"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text" firestore:"comment"`
	CommentAr string    `json:"commentAr,omitempty" gorm:"type:text" firestore:"commentAr"`
	CreatedAt time.Time `json:"createdAt" gorm:"index" firestore:"createdAt"`
}
