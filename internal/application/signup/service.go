// Package signup implements the verification-code-gated signup workflow:
// issuing codes and consuming them to provision identities.
package signup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
	"github.com/Nnvvee96/planora.ai-sub005/internal/pkg/code"
	"golang.org/x/crypto/bcrypt"
)

// codeTTL is how long an issued verification code stays consumable.
const codeTTL = 15 * time.Minute

type InitiateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CompleteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type Service interface {
	// InitiateSignup issues a single-use verification code for the email and
	// delivers it. Any previously issued unused codes for the email are
	// invalidated.
	InitiateSignup(ctx context.Context, req InitiateRequest) error
	// CompleteSignup consumes a verification code, provisions the identity
	// with the default role, and returns the new user id.
	CompleteSignup(ctx context.Context, req CompleteRequest) (string, error)
}

type verificationStore interface {
	Put(ctx context.Context, v *domain.VerificationRequest) error
	Get(ctx context.Context, email, code string) (*domain.VerificationRequest, error)
	MarkUsed(ctx context.Context, email, code string) error
	DeleteUnusedByEmail(ctx context.Context, email string) error
}

type roleStore interface {
	GetByName(ctx context.Context, name string) (*domain.Role, error)
}

type assignmentStore interface {
	Put(ctx context.Context, a *domain.RoleAssignment) error
}

type identityProvider interface {
	CreateUser(ctx context.Context, email, passwordHash string, emailConfirmed bool) (string, error)
	DeleteUser(ctx context.Context, userID string) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type service struct {
	verificationRepo verificationStore
	roleRepo         roleStore
	assignmentRepo   assignmentStore
	identity         identityProvider
	mailer           mailer
}

type ServiceDeps struct {
	VerificationRepo verificationStore
	RoleRepo         roleStore
	AssignmentRepo   assignmentStore
	Identity         identityProvider
	Mailer           mailer
}

func NewService(deps ServiceDeps) Service {
	return &service{
		verificationRepo: deps.VerificationRepo,
		roleRepo:         deps.RoleRepo,
		assignmentRepo:   deps.AssignmentRepo,
		identity:         deps.Identity,
		mailer:           deps.Mailer,
	}
}

func (s *service) InitiateSignup(ctx context.Context, req InitiateRequest) error {
	if req.Email == "" || req.Password == "" {
		return fmt.Errorf("email and password are required: %w", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c, err := code.New()
	if err != nil {
		return err
	}

	// One active code per email: a re-initiated signup invalidates prior
	// unused codes, so a delivery retry can't leave two consumable codes.
	if err := s.verificationRepo.DeleteUnusedByEmail(ctx, req.Email); err != nil {
		slog.Warn("failed to invalidate previous verification codes", "email", req.Email, "err", err)
	}

	v := &domain.VerificationRequest{
		Email:          req.Email,
		Code:           c,
		ExpiresAt:      time.Now().Add(codeTTL).Unix(),
		Used:           false,
		CredentialHash: string(hash),
	}
	if err := s.verificationRepo.Put(ctx, v); err != nil {
		return err
	}

	if err := s.mailer.SendEmail(req.Email, "Your Planora verification code", "Your verification code: "+c); err != nil {
		return fmt.Errorf("send verification code: %w (%w)", err, domain.ErrDelivery)
	}
	return nil
}

func (s *service) CompleteSignup(ctx context.Context, req CompleteRequest) (string, error) {
	v, err := s.verificationRepo.Get(ctx, req.Email, req.Code)
	if err != nil {
		return "", fmt.Errorf("verification code not found: %w", domain.ErrNotFound)
	}
	if v.Used {
		return "", fmt.Errorf("verification code already used: %w", domain.ErrAlreadyUsed)
	}
	if time.Now().Unix() > v.ExpiresAt {
		return "", fmt.Errorf("verification code expired: %w", domain.ErrExpired)
	}

	userID, err := s.identity.CreateUser(ctx, v.Email, v.CredentialHash, true)
	if err != nil {
		return "", fmt.Errorf("create identity: %w (%w)", err, domain.ErrIdentity)
	}

	role, err := s.roleRepo.GetByName(ctx, domain.RoleUser)
	if err != nil {
		// The default role is a deployment invariant, not a user-caused failure.
		return "", fmt.Errorf("default role %q missing: %w", domain.RoleUser, domain.ErrConfiguration)
	}

	if err := s.assignmentRepo.Put(ctx, &domain.RoleAssignment{UserID: userID, RoleID: role.RoleID}); err != nil {
		// Compensate the created identity so no orphan is left behind. The
		// verification record stays unused, so the same code can be retried.
		if delErr := s.identity.DeleteUser(ctx, userID); delErr != nil {
			slog.Warn("failed to compensate identity after role assignment failure", "user_id", userID, "err", delErr)
		}
		return "", fmt.Errorf("assign default role: %w (%w)", err, domain.ErrRoleAssignment)
	}

	if err := s.verificationRepo.MarkUsed(ctx, req.Email, req.Code); err != nil {
		slog.Warn("failed to mark verification code used", "email", req.Email, "err", err)
	}
	return userID, nil
}
