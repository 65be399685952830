package dtos

type LoginRequestDTO struct {
	UserName string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponseDTO with an empty Token and nil User means the credentials
// did not match. It is not an error.
type LoginResponseDTO struct {
	User  *UserDTO `json:"user"`
	Token string   `json:"token"`
}

type RegistrationRequestDTO struct {
	UserName string `json:"username" binding:"required,max=150"`
	Name     string `json:"name" binding:"required,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"max=50"`
}

// UserDTO is a LocalUser without its password.
type UserDTO struct {
	ID       uint   `json:"id"`
	UserName string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}
