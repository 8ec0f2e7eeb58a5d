package Models

// User is a backoffice account. Passwords are bcrypt hashes; Permission levels
// follow the same ladder as the rest of the fleet tooling (1 = read, 3 = manage).
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `json:"name"`
	Email      string `gorm:"unique" json:"email"`
	Password   []byte `json:"-"`
	Permission int    `json:"permission"`
}
