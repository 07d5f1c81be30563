package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignUpRequest struct {
	Name         string `json:"name" binding:"required,min=3,max=50"`
	BusinessName string `json:"business_name" binding:"required,min=2,max=100"`
	Email        string `json:"email" binding:"required,email"`
	PhoneNumber  string `json:"phone_number" binding:"omitempty,min=9,max=13"`
	Password     string `json:"password" binding:"required,min=6"`
}
