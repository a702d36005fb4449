package domain

// ContactMessage is a contact form submission
type ContactMessage struct {
	Name    string `json:"name" binding:"required,max=120"`
	Phone   string `json:"phone" binding:"required,max=40"`
	Service string `json:"service,omitempty" binding:"max=120"`
	Message string `json:"message" binding:"required,max=4000"`
}
