package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User - учетная запись администратора.
// Password хранится в том виде, в каком его передал вызывающий код; хранилище его не хэширует.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewUserInput struct {
	Username string
	Password string
}

// Claims - данные, которые зашиваются в JWT токен
type Claims struct {
	UserID   string
	Username string
}

func NewUser(id string, in NewUserInput, now time.Time) User {
	return User{
		ID:        id,
		Username:  in.Username,
		Password:  in.Password,
		CreatedAt: now,
	}
}

// HashPassword хэширует пароль перед передачей в хранилище.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword сравнивает пароль с сохраненным хэшем.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
