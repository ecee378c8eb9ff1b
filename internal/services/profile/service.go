// Package profile validates and persists the sender profile collected on
// the personal-info step.
package profile

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"remesa/internal/models"
	"remesa/pkg/logger"
)

// countryDialing maps a destination country to its backend code and
// phone dialing prefix.
type countryDialing struct {
	Code string
	Dial string
}

var countryCodes = map[string]countryDialing{
	"colombia":  {Code: "COL", Dial: "+57"},
	"venezuela": {Code: "VEN", Dial: "+58"},
}

var (
	validate  = newValidator()
	nonDigits = regexp.MustCompile(`\D`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their json names so handlers can echo them back.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type service struct {
	backend Backend
	cache   Cache
}

// NewService creates the profile service.
func NewService(be Backend, cache Cache) Service {
	if be == nil {
		panic("profile: backend is required")
	}
	if cache == nil {
		panic("profile: cache is required")
	}
	return &service{backend: be, cache: cache}
}

func (s *service) Resolve(ctx context.Context, userID, walletAddress string) (*Prefill, error) {
	user := s.cache.CurrentUser()
	if user == nil {
		var err error
		user, err = s.lookup(ctx, userID, walletAddress)
		if err != nil {
			return nil, err
		}
		if user != nil {
			s.cache.SetCurrentUser(user)
		}
	}

	prefill := &Prefill{New: !user.HasProfile()}
	if user != nil {
		prefill.Name = user.Name
		prefill.Email = user.Email
		prefill.Phone = user.Phone
	}
	return prefill, nil
}

// lookup prefers the wallet address; the user id is a fallback for
// responses that never carried the address.
func (s *service) lookup(ctx context.Context, userID, walletAddress string) (*models.User, error) {
	if addr := models.NormalizeWalletAddress(walletAddress); models.IsWalletAddress(addr) {
		user, err := s.backend.UserByWalletAddress(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user by wallet: %w", err)
		}
		if user != nil {
			return user, nil
		}
	}
	if userID == "" {
		return nil, nil
	}
	user, err := s.backend.UserByID(ctx, userID)
	if err != nil {
		logger.Warn("user lookup by id failed", zap.String("user_id", userID), zap.Error(err))
		return nil, nil
	}
	return user, nil
}

func (s *service) Save(ctx context.Context, userID, walletAddress string, input Input) (*models.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, asValidationError(err)
	}

	dialing, ok := countryCodes[strings.ToLower(strings.TrimSpace(input.Country))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCountry, input.Country)
	}
	if !s.cache.HasDocumentType(input.DocumentType) {
		return nil, ErrUnknownDocumentType
	}
	if !s.cache.HasAccountType(input.AccountType) {
		return nil, ErrUnknownAccountType
	}

	payload := models.UserProfileInput{
		Name:           strings.TrimSpace(input.FullName),
		Email:          strings.TrimSpace(input.Email),
		Phone:          dialing.Dial + nonDigits.ReplaceAllString(input.Phone, ""),
		Country:        dialing.Code,
		DocumentTypeID: input.DocumentType,
		DocumentNumber: input.DocumentNumber,
		AccountTypeID:  input.AccountType,
		AccountNumber:  input.AccountNumber,
		BankID:         input.BankID,
		WalletAddress:  models.NormalizeWalletAddress(walletAddress),
	}

	var (
		saved *models.User
		err   error
	)
	if prior := s.cache.CurrentUser(); prior.HasProfile() && userID != "" {
		saved, err = s.backend.UpdateUser(ctx, userID, payload)
	} else {
		saved, err = s.backend.CreateUserProfile(ctx, payload)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	s.cache.SetCurrentUser(saved)
	return saved, nil
}

// asValidationError flattens validator output into per-field messages.
func asValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "is required"
		case "email":
			fields[fe.Field()] = "must be a valid email address"
		case "numeric":
			fields[fe.Field()] = "must contain only digits"
		case "min":
			fields[fe.Field()] = fmt.Sprintf("must be at least %s characters", fe.Param())
		default:
			fields[fe.Field()] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}
	return &ValidationError{Fields: fields}
}
