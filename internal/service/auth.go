package service

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/usecase"
)

var authTracer = otel.Tracer("auth")

// TokenResolver maps presented API tokens to their owners.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (domain.PersonID, error)
}

// AuthService resolves bearer tokens to authenticated persons.
type AuthService struct {
	tokens  TokenResolver
	persons usecase.PersonRepository
}

func NewAuthService(
	tokens TokenResolver,
	persons usecase.PersonRepository,
) *AuthService {
	return &AuthService{
		tokens:  tokens,
		persons: persons,
	}
}

type AuthResult struct {
	PersonID domain.PersonID
	Role     domain.Role
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*AuthResult, error) {
	ctx, span := authTracer.Start(ctx, "Auth.Service.Authenticate")
	defer span.End()

	if token == "" {
		return nil, domain.PermissionError{Msg: "missing token"}
	}

	personID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		span.RecordError(errors.Wrap(err, "token resolution failed"))
		return nil, domain.PermissionError{Msg: "invalid token"}
	}

	person, err := s.persons.FindByID(ctx, personID)
	if err != nil {
		span.RecordError(errors.Wrap(err, "token owner lookup failed"))
		return nil, domain.PermissionError{Msg: "invalid token"}
	}

	return &AuthResult{
		PersonID: person.ID(),
		Role:     person.Role(),
	}, nil
}
