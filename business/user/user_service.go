package user

import (
	"context"
	"errors"
	"fmt"
	"jabRental/business/rental"
	"jabRental/domain"
	"jabRental/pkg/logger"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pobyzaarif/goshortcute"
)

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

// SessionStore gives access to the store a verification link points at.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*rental.Store, error)
	Save(ctx context.Context, sessionID string) error
}

var ErrInvalidVerificationCode = errors.New("invalid or expired url")

type userService struct {
	sessions                SessionStore
	notifRepo               NotificationRepository
	appEmailVerificationKey string
	appDeploymentUrl        string
	now                     func() time.Time
}

const (
	verificationCodeTTL      = 30
	SubjectRegisterAccount   = "Activate your JAB Rental account"
	EmailBodyRegisterAccount = `Hi %v, activate your account by opening the link below</br></br>%v</br>note: the link is valid for %v minutes`
)

func NewUserService(
	sessions SessionStore,
	notifRepo NotificationRepository,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		sessions:                sessions,
		notifRepo:               notifRepo,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        appDeploymentUrl,
		now:                     time.Now,
	}
}

// SendVerification mails an activation link to a freshly registered user.
// Delivery failures are logged and never fail the registration.
func (s *userService) SendVerification(ctx context.Context, sessionID string, user domain.User) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	link, err := s.verificationLink(sessionID, user.Email)
	if err != nil {
		logger.Error("Failed to build verification link", err)
		return err
	}

	err = s.notifRepo.SendEmail(user.Name, user.Email, SubjectRegisterAccount, fmt.Sprintf(EmailBodyRegisterAccount, user.Name, link, verificationCodeTTL))
	if err != nil {
		logger.Warn("Failed to send verification email", err)
	}

	return nil
}

func (s *userService) VerifyEmail(ctx context.Context, verificationCodeEncrypt string) error {
	verificationCodeDecrypt, err := s.decryptCode(verificationCodeEncrypt)
	if err != nil {
		logger.Error("Verifying email error", err)
		return ErrInvalidVerificationCode
	}

	parts := strings.Split(verificationCodeDecrypt, "|")
	if len(parts) != 3 {
		logger.Error("Verifying email error", "code", verificationCodeDecrypt)
		return ErrInvalidVerificationCode
	}

	sessionID, email, expAtStr := parts[0], parts[1], parts[2]

	ts, err := strconv.ParseInt(expAtStr, 10, 64)
	if err != nil {
		logger.Error("Verifying email error", err)
		return ErrInvalidVerificationCode
	}
	if s.now().After(time.Unix(ts, 0)) {
		return ErrInvalidVerificationCode
	}

	store, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		logger.Error("Verifying email error", err)
		return ErrInvalidVerificationCode
	}

	user := store.User()
	if user != nil && user.IsVerified && strings.EqualFold(user.Email, email) {
		logger.Warn("verify email err", "err", "email verified already")
		return ErrInvalidVerificationCode
	}

	if !store.MarkVerified(email) {
		return ErrInvalidVerificationCode
	}

	if err := s.sessions.Save(ctx, sessionID); err != nil {
		logger.Error("Verify email err", err)
		return err
	}

	return nil
}

// decryptCode reverses verificationLink's encoding. Malformed input can
// panic inside the block cipher, so that is reported as an error too.
func (s *userService) decryptCode(code string) (plain string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed verification code: %v", r)
		}
	}()

	strDecode := goshortcute.StringtoBase64Decode(code)
	return goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.appEmailVerificationKey))
}

func (s *userService) verificationLink(sessionID, email string) (string, error) {
	expAt := s.now().Add(verificationCodeTTL * time.Minute).Unix()

	verificationCode := fmt.Sprintf("%v|%v|%v", sessionID, email, expAt)
	verificationCodeEncrypt, err := goshortcute.AESCBCEncrypt([]byte(verificationCode), []byte(s.appEmailVerificationKey))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt verification code: %w", err)
	}
	strEncode := goshortcute.StringtoBase64Encode(verificationCodeEncrypt)

	return s.appDeploymentUrl + "/api/v1/users/email-verification?code=" + url.QueryEscape(strEncode), nil
}
