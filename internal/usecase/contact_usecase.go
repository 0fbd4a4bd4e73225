package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"
)

type ContactUsecase struct {
	contactRepo repo.ContactRepository
}

func NewContactUsecase(contactRepo repo.ContactRepository) *ContactUsecase {
	return &ContactUsecase{contactRepo: contactRepo}
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// お問い合わせを保存して返信メッセージを返す。
func (u *ContactUsecase) Submit(ctx context.Context, in ContactInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	subject := strings.TrimSpace(in.Subject)
	message := strings.TrimSpace(in.Message)

	if err := validator.ValidateContact(name, email, subject, message); err != nil {
		return "", NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := u.contactRepo.Create(ctx, model.ContactSubmission{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	})
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "Failed to submit contact form")
	}

	return "Thank you for your message. We will get back to you soon.", nil
}
