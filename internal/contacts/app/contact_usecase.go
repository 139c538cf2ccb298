// Package app содержит use case-ы справочника контактов: оркестрацию CRUD,
// поиск по полям, окно дней рождения и проверку доступа.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"contactdir/internal/contacts/domain/entities"
	"contactdir/internal/contacts/ports/api"
	"contactdir/internal/contacts/ports/repositories"
	"contactdir/pkg/logger"
)

const (
	methodList      = "List"
	methodGet       = "Get"
	methodCreate    = "Create"
	methodUpdate    = "Update"
	methodRemove    = "Remove"
	methodSearch    = "Search"
	methodBirthdays = "UpcomingBirthdays"

	msgListingContacts  = "listing contacts"
	msgFetchingContact  = "fetching contact"
	msgCreatingContact  = "creating contact"
	msgUpdatingContact  = "updating contact"
	msgRemovingContact  = "removing contact"
	msgSearchingContact = "searching contact"
	msgComputingWindow  = "computing birthday window"
	msgEmailConflict    = "contact email already exists"
	msgContactCreated   = "contact created successfully"
	msgContactUpdated   = "contact updated successfully"
	msgContactRemoved   = "contact removed successfully"
	msgAccessDenied     = "access denied"
	msgInvalidInput     = "invalid contact input"
	msgErrListContacts  = "failed to list contacts"
	msgErrFetchContact  = "failed to fetch contact"
	msgErrCheckExisting = "failed to check existing contact"
	msgErrCreateContact = "failed to create contact"
	msgErrUpdateContact = "failed to update contact"
	msgErrRemoveContact = "failed to remove contact"
	msgErrSearchContact = "failed to search contact"

	errCtxCheckingAccess   = "checking access"
	errCtxValidatingInput  = "validating input"
	errCtxValidatingID     = "validating id"
	errCtxValidatingShift  = "validating shift"
	errCtxListingContacts  = "listing contacts"
	errCtxFetchingContact  = "fetching contact"
	errCtxCheckingExisting = "checking existing contact"
	errCtxEmailExists      = "email already exists"
	errCtxCreatingContact  = "creating contact"
	errCtxUpdatingContact  = "updating contact"
	errCtxRemovingContact  = "removing contact"
	errCtxSearchingContact = "searching contact"
)

// Границы длин полей контакта, в рунах.
const (
	minFirstNameLen = 1
	maxFirstNameLen = 50
	minLastNameLen  = 2
	maxLastNameLen  = 50
	minPhoneLen     = 10
	maxPhoneLen     = 15
	minInfoLen      = 1
	maxInfoLen      = 150
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ContactUseCaseImpl реализует порт ContactUseCase.
type ContactUseCaseImpl struct {
	contactRepo repositories.ContactRepository
	now         func() time.Time
}

// NewContactUseCase создает новый use case контактов.
func NewContactUseCase(contactRepo repositories.ContactRepository) api.ContactUseCase {
	return &ContactUseCaseImpl{
		contactRepo: contactRepo,
		now:         time.Now,
	}
}

func validateInput(input api.ContactInput) error {
	if !emailRegexp.MatchString(input.Email) {
		return entities.ErrInvalidEmail
	}
	if l := utf8.RuneCountInString(input.FirstName); l < minFirstNameLen || l > maxFirstNameLen {
		return entities.ErrInvalidFirstName
	}
	if l := utf8.RuneCountInString(input.LastName); l < minLastNameLen || l > maxLastNameLen {
		return entities.ErrInvalidLastName
	}
	if l := utf8.RuneCountInString(input.Phone); l < minPhoneLen || l > maxPhoneLen {
		return entities.ErrInvalidPhone
	}
	if l := utf8.RuneCountInString(input.AdditionalInfo); l < minInfoLen || l > maxInfoLen {
		return entities.ErrInvalidInfo
	}
	return nil
}

// List возвращает все контакты.
func (u *ContactUseCaseImpl) List(ctx context.Context, role entities.Role) ([]*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("method", methodList))
	log.Debug(ctx, msgListingContacts)

	if err := CheckAccess(RolesList, role); err != nil {
		log.Debug(ctx, msgAccessDenied, zap.String("role", role.String()))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingAccess, err)
	}

	contacts, err := u.contactRepo.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrListContacts, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingContacts, err)
	}

	return contacts, nil
}

// Get возвращает контакт по идентификатору.
func (u *ContactUseCaseImpl) Get(ctx context.Context, role entities.Role, id int64) (*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGet), zap.Int64("id", id))
	log.Debug(ctx, msgFetchingContact)

	if err := CheckAccess(RolesList, role); err != nil {
		log.Debug(ctx, msgAccessDenied, zap.String("role", role.String()))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingAccess, err)
	}
	if id < 1 {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingID, entities.ErrInvalidID)
	}

	contact, err := u.contactRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, entities.ErrContactNotFound) {
			log.Error(ctx, msgErrFetchContact, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFetchingContact, err)
	}

	return contact, nil
}

// Create вставляет новый контакт после защитной проверки конфликта почты.
func (u *ContactUseCaseImpl) Create(ctx context.Context, role entities.Role, input api.ContactInput) (*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreate), zap.String("email", input.Email))
	log.Debug(ctx, msgCreatingContact)

	if err := CheckAccess(RolesCreate, role); err != nil {
		log.Debug(ctx, msgAccessDenied, zap.String("role", role.String()))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingAccess, err)
	}
	if err := validateInput(input); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	existing, err := u.contactRepo.FindBy(ctx, entities.SearchEmail, input.Email)
	if err != nil && !errors.Is(err, entities.ErrContactNotFound) {
		log.Error(ctx, msgErrCheckExisting, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingExisting, err)
	}
	if existing != nil {
		log.Debug(ctx, msgEmailConflict)
		return nil, fmt.Errorf("%s: %w", errCtxEmailExists, entities.ErrEmailAlreadyExists)
	}

	created, err := u.contactRepo.Create(ctx, &entities.Contact{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		Birthday:       input.Birthday,
		AdditionalInfo: input.AdditionalInfo,
	})
	if err != nil {
		if errors.Is(err, entities.ErrEmailAlreadyExists) {
			log.Debug(ctx, msgEmailConflict)
			return nil, fmt.Errorf("%s: %w", errCtxEmailExists, err)
		}
		log.Error(ctx, msgErrCreateContact, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingContact, err)
	}

	log.Info(ctx, msgContactCreated, zap.Int64("id", created.ID))
	return created, nil
}

// Update перезаписывает изменяемые поля контакта: читаем снимок, собираем
// новый набор значений, выполняем одно обновление по id.
func (u *ContactUseCaseImpl) Update(ctx context.Context, role entities.Role, id int64, input api.ContactInput) (*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdate), zap.Int64("id", id))
	log.Debug(ctx, msgUpdatingContact)

	if err := CheckAccess(RolesUpdate, role); err != nil {
		log.Debug(ctx, msgAccessDenied, zap.String("role", role.String()))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingAccess, err)
	}
	if id < 1 {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingID, entities.ErrInvalidID)
	}
	if err := validateInput(input); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	snapshot, err := u.contactRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, entities.ErrContactNotFound) {
			log.Error(ctx, msgErrFetchContact, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingContact, err)
	}

	updated, err := u.contactRepo.Update(ctx, &entities.Contact{
		ID:             snapshot.ID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		Birthday:       input.Birthday,
		AdditionalInfo: input.AdditionalInfo,
	})
	if err != nil {
		if !errors.Is(err, entities.ErrContactNotFound) && !errors.Is(err, entities.ErrEmailAlreadyExists) {
			log.Error(ctx, msgErrUpdateContact, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingContact, err)
	}

	log.Info(ctx, msgContactUpdated)
	return updated, nil
}

// Remove удаляет контакт и возвращает удаленный снимок.
func (u *ContactUseCaseImpl) Remove(ctx context.Context, role entities.Role, id int64) (*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRemove), zap.Int64("id", id))
	log.Debug(ctx, msgRemovingContact)

	if err := CheckAccess(RolesRemove, role); err != nil {
		log.Debug(ctx, msgAccessDenied, zap.String("role", role.String()))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingAccess, err)
	}
	if id < 1 {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingID, entities.ErrInvalidID)
	}

	deleted, err := u.contactRepo.Delete(ctx, id)
	if err != nil {
		if !errors.Is(err, entities.ErrContactNotFound) {
			log.Error(ctx, msgErrRemoveContact, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxRemovingContact, err)
	}

	log.Info(ctx, msgContactRemoved)
	return deleted, nil
}

// Search выполняет точечный поиск по одному из закрытых полей поиска.
func (u *ContactUseCaseImpl) Search(ctx context.Context, role entities.Role, field entities.SearchField, value string) (*entities.Contact, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodSearch),
		zap.String("field", field.String()),
	)
	log.Debug(ctx, msgSearchingContact)

	if err := CheckAccess(RolesList, role); err != nil {
		log.Debug(ctx, msgAccessDenied, zap.String("role", role.String()))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingAccess, err)
	}

	contact, err := u.contactRepo.FindBy(ctx, field, value)
	if err != nil {
		if !errors.Is(err, entities.ErrContactNotFound) {
			log.Error(ctx, msgErrSearchContact, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxSearchingContact, err)
	}

	return contact, nil
}

// UpcomingBirthdays возвращает контакты, чей ближайший день рождения попадает
// в окно shift дней от сегодня.
func (u *ContactUseCaseImpl) UpcomingBirthdays(ctx context.Context, role entities.Role, shift int) ([]*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("method", methodBirthdays), zap.Int("shift", shift))
	log.Debug(ctx, msgComputingWindow)

	if err := CheckAccess(RolesList, role); err != nil {
		log.Debug(ctx, msgAccessDenied, zap.String("role", role.String()))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingAccess, err)
	}
	if shift < 0 {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingShift, entities.ErrNegativeShift)
	}

	contacts, err := u.contactRepo.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrListContacts, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingContacts, err)
	}

	return FilterUpcomingBirthdays(shift, u.now().UTC(), contacts), nil
}
