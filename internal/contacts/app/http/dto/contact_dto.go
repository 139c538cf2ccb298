// Package dto содержит тела запросов и ответов HTTP API.
package dto

import (
	"fmt"
	"time"

	"contactdir/internal/contacts/domain/entities"
)

// BirthdayLayout - проводной формат календарных дат.
const BirthdayLayout = "2006-01-02"

// ContactRequest содержит изменяемые поля контакта вызовов create/update.
type ContactRequest struct {
	FirstName      string `json:"firstname"`
	LastName       string `json:"lastname"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Birthday       string `json:"birthday"`
	AdditionalInfo string `json:"additional_info"`
}

// ParseBirthday разбирает проводную дату запроса.
func (r *ContactRequest) ParseBirthday() (time.Time, error) {
	t, err := time.Parse(BirthdayLayout, r.Birthday)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing birthday: %w", err)
	}
	return t, nil
}

// ContactResponse - разрешенная проводная форма контакта.
type ContactResponse struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"firstname"`
	LastName       string    `json:"lastname"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Birthday       string    `json:"birthday"`
	AdditionalInfo string    `json:"additional_info"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewContactResponse преобразует доменный контакт в проводную форму.
func NewContactResponse(c *entities.Contact) ContactResponse {
	return ContactResponse{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Birthday:       c.Birthday.Format(BirthdayLayout),
		AdditionalInfo: c.AdditionalInfo,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// NewContactListResponse преобразует срез контактов в проводную форму.
func NewContactListResponse(contacts []*entities.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, NewContactResponse(c))
	}
	return out
}
