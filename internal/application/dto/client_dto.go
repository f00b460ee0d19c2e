package dto

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Phone       string `json:"phone,omitempty" validate:"max=50"`
	CompanyName string `json:"companyName,omitempty" validate:"max=200"`
	Address     string `json:"address,omitempty" validate:"max=300"`
	City        string `json:"city,omitempty" validate:"max=120"`
	Country     string `json:"country,omitempty" validate:"max=120"`
	VATNumber   string `json:"vatNumber,omitempty" validate:"max=60"`
}

// UpdateClientRequest body para PATCH /api/clients/:id. Un campo ausente no cambia.
type UpdateClientRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	CompanyName *string `json:"companyName,omitempty" validate:"omitempty,max=200"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=300"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=120"`
	Country     *string `json:"country,omitempty" validate:"omitempty,max=120"`
	VATNumber   *string `json:"vatNumber,omitempty" validate:"omitempty,max=60"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	VATNumber   string `json:"vatNumber,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}
