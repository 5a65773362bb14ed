// Package profile manages account details, avatar images, and the mock
// subscription/payment ledger.
package profile

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"filedesk/internal/common"
	"filedesk/internal/model"
)

// maxImageSize bounds avatar uploads to 5MB.
const maxImageSize = 5 * 1024 * 1024

// imageMagic maps accepted avatar formats to their content signatures.
var imageMagic = map[string][]byte{
	"jpeg": {0xFF, 0xD8, 0xFF},
	"png":  {0x89, 'P', 'N', 'G'},
	"gif":  []byte("GIF8"),
	"webp": []byte("RIFF"),
}

// coupons maps mock coupon codes to their fractional discount.
var coupons = map[string]float64{
	"WELCOME10": 0.10,
	"FILE25":    0.25,
}

// Store is the slice of the partition store the profile service needs.
type Store interface {
	LoadProfile(ctx context.Context, email string) (*model.Profile, error)
	SaveProfile(ctx context.Context, email string, profile model.Profile) error
	LoadProfileImage(ctx context.Context, email string) ([]byte, error)
	SaveProfileImage(ctx context.Context, email string, data []byte) error
	DeleteProfileImage(ctx context.Context, email string) error
}

// Service implements profile operations for the logged-in user.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a profile service. now may be nil to use time.Now.
func NewService(store Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Get returns the user's profile, seeding and persisting the
// login-method defaults on first access.
func (s *Service) Get(ctx context.Context, user model.User) (model.Profile, error) {
	stored, err := s.store.LoadProfile(ctx, user.Email())
	if err != nil {
		return model.Profile{}, err
	}
	if stored != nil {
		return *stored, nil
	}

	profile := model.DefaultProfile(user)
	if err := s.store.SaveProfile(ctx, user.Email(), profile); err != nil {
		return model.Profile{}, err
	}
	return profile, nil
}

// Update applies the given field edits and persists the profile. Empty
// values leave the field unchanged.
func (s *Service) Update(ctx context.Context, user model.User, fullName, email, phone string) (model.Profile, error) {
	profile, err := s.Get(ctx, user)
	if err != nil {
		return model.Profile{}, err
	}

	if fullName != "" {
		profile.FullName = fullName
	}
	if email != "" {
		if !strings.Contains(email, "@") {
			return model.Profile{}, fmt.Errorf("%w: %q", common.ErrInvalidEmail, email)
		}
		profile.Email = email
	}
	if phone != "" {
		profile.Phone = phone
	}

	if err := s.store.SaveProfile(ctx, user.Email(), profile); err != nil {
		return model.Profile{}, err
	}
	return profile, nil
}

// SetImage validates and stores an avatar image. Accepted formats are
// JPEG, PNG, GIF and WebP, up to 5MB; data is stored base64-encoded.
func (s *Service) SetImage(ctx context.Context, user model.User, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: image is empty", common.ErrValidation)
	}
	if len(data) > maxImageSize {
		return fmt.Errorf("%w: image must be less than 5MB", common.ErrValidation)
	}

	valid := false
	for _, magic := range imageMagic {
		if bytes.HasPrefix(data, magic) {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: image must be JPEG, PNG, GIF or WebP", common.ErrValidation)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return s.store.SaveProfileImage(ctx, user.Email(), []byte(encoded))
}

// Image returns the stored avatar image bytes, or nil when none is set.
func (s *Service) Image(ctx context.Context, user model.User) ([]byte, error) {
	encoded, err := s.store.LoadProfileImage(ctx, user.Email())
	if err != nil {
		return nil, err
	}
	if encoded == nil {
		return nil, nil
	}

	data, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		// Treat an undecodable image like any other corrupt partition.
		_ = s.store.DeleteProfileImage(ctx, user.Email())
		return nil, nil
	}
	return data, nil
}

// RemoveImage deletes the stored avatar image.
func (s *Service) RemoveImage(ctx context.Context, user model.User) error {
	return s.store.DeleteProfileImage(ctx, user.Email())
}

// Subscribe switches the user to the named plan and appends a payment
// record to the ledger. An unknown coupon code is a validation error; a
// known one discounts the recorded amount.
func (s *Service) Subscribe(ctx context.Context, user model.User, planName, coupon string) (model.PaymentRecord, error) {
	plan := model.PlanByName(strings.ToUpper(planName))
	if plan == nil {
		return model.PaymentRecord{}, fmt.Errorf("%w: unknown plan %q", common.ErrValidation, planName)
	}

	amount := plan.Price
	if coupon != "" {
		discount, ok := coupons[strings.ToUpper(coupon)]
		if !ok {
			return model.PaymentRecord{}, fmt.Errorf("%w: unknown coupon %q", common.ErrValidation, coupon)
		}
		amount = amount * (1 - discount)
	}

	profile, err := s.Get(ctx, user)
	if err != nil {
		return model.PaymentRecord{}, err
	}

	payment := model.PaymentRecord{
		ID:     uuid.New().String(),
		Plan:   plan.Name,
		Amount: amount,
		Coupon: strings.ToUpper(coupon),
		PaidAt: s.now(),
	}
	if coupon == "" {
		payment.Coupon = ""
	}

	profile.Plan = plan.Name
	profile.Payments = append(profile.Payments, payment)

	if err := s.store.SaveProfile(ctx, user.Email(), profile); err != nil {
		return model.PaymentRecord{}, err
	}
	return payment, nil
}
