// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey" firestore:"id"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null" firestore:"email"`
	PasswordHash string    `json:"-" gorm:"size:255" firestore:"passwordHash"`
	Name         string    `json:"name,omitempty" gorm:"size:255" firestore:"name"`
	GoogleID     string    `json:"googleId,omitempty" gorm:"size:255;index" firestore:"googleId"`
	Picture      string    `json:"picture,omitempty" gorm:"size:500" firestore:"picture"`
	Role         Role      `json:"role" gorm:"type:varchar(20);default:'user'" firestore:"role"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// UserUpdate carries a partial profile update. Role changes are
// admin-driven promotion only.
type UserUpdate struct {
	Name     *string `json:"name,omitempty"`
	GoogleID *string `json:"googleId,omitempty"`
	Picture  *string `json:"picture,omitempty"`
	Role     *Role   `json:"role,omitempty"`
}

func (u *UserUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.GoogleID != nil {
		fields["google_id"] = *u.GoogleID
	}
	if u.Picture != nil {
		fields["picture"] = *u.Picture
	}
	if u.Role != nil {
		fields["role"] = string(*u.Role)
	}
	return fields
}
