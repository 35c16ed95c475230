package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/png"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"yoyo-backend/internal/auth"
	"yoyo-backend/internal/repositories"
)

const totpIssuer = "YoyoShop"

var (
	ErrNoTOTPSecret    = errors.New("2FA setup not initiated")
	ErrInvalidTOTPCode = errors.New("invalid verification code")
	ErrTOTPNotEnabled  = errors.New("2FA is not enabled")
)

type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"` // data: URL, PNG
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

type TOTPService struct {
	UserRepo *repositories.UserRepository
}

func NewTOTPService(userRepo *repositories.UserRepository) *TOTPService {
	return &TOTPService{UserRepo: userRepo}
}

// GenerateSetup creates a fresh TOTP secret for the user and returns it with
// a QR code. The secret is stored but 2FA stays off until VerifyAndEnable.
func (s *TOTPService) GenerateSetup(ctx context.Context, userID int) (*TOTPSetupResponse, error) {
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}
	if err := s.UserRepo.SetTOTPSecret(ctx, user.ID, key.Secret()); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}

	return &TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// VerifyAndEnable checks a code against the pending secret and turns 2FA on.
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code string) error {
	secret, err := s.UserRepo.GetTOTPSecret(ctx, userID)
	if err != nil {
		return err
	}
	if secret == "" {
		return ErrNoTOTPSecret
	}
	if !totp.Validate(code, secret) {
		return ErrInvalidTOTPCode
	}
	return s.UserRepo.SetTOTPEnabled(ctx, userID, true)
}

// Verify validates a login-time TOTP code.
func (s *TOTPService) Verify(ctx context.Context, userID int, code string) error {
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	secret, err := s.UserRepo.GetTOTPSecret(ctx, userID)
	if err != nil {
		return err
	}
	if !user.TOTPEnabled || secret == "" {
		return ErrTOTPNotEnabled
	}
	if !totp.Validate(code, secret) {
		return ErrInvalidTOTPCode
	}
	return nil
}

// Disable turns 2FA off after verifying the password and a current code.
func (s *TOTPService) Disable(ctx context.Context, userID int, password, code string) error {
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return errors.New("invalid password")
	}
	secret, err := s.UserRepo.GetTOTPSecret(ctx, userID)
	if err != nil {
		return err
	}
	if !totp.Validate(code, secret) {
		return ErrInvalidTOTPCode
	}
	if err := s.UserRepo.SetTOTPEnabled(ctx, userID, false); err != nil {
		return err
	}
	return s.UserRepo.SetTOTPSecret(ctx, userID, "")
}
