package transport

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminInfo struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	Admin AdminInfo `json:"admin"`
}

// UpdateProductRequest uses pointers for the numeric fields so a missing
// value can be told apart from an explicit zero.
type UpdateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       *int64  `json:"price"`
	Quantity    *int64  `json:"quantity"`
	ImagePath   *string `json:"image_path"`
}

type QuantityRequest struct {
	Quantity *int64 `json:"quantity"`
}
