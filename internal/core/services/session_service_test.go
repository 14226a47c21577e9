package services_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/core/services"
	"github.com/SscSPs/etsy_atlas/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SessionServiceTestSuite struct {
	suite.Suite
	verifier *MockIdentityVerifier
	repos    portsrepo.RepositoryProvider
	service  portssvc.SessionSvcFacade
	ctx      context.Context
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.verifier = new(MockIdentityVerifier)
	suite.repos = memory.NewRepositoryProvider()
	users := services.NewUserService(suite.repos.UserRepo, domain.RoleUser)
	suite.service = services.NewSessionService(services.SessionConfig{
		Secret: "test-secret",
		Issuer: "atlas-test",
		Expiry: 5 * 24 * time.Hour,
	}, suite.verifier, users)
	suite.ctx = context.Background()
}

func (suite *SessionServiceTestSuite) signIn(sub string) *domain.IssuedSession {
	suite.verifier.On("VerifyIDToken", mock.Anything, "idtok-"+sub).Return(&domain.Identity{
		Subject:       sub,
		Email:         sub + "@example.com",
		EmailVerified: true,
		Name:          "Seller " + sub,
	}, nil).Once()
	issued, err := suite.service.CreateSession(suite.ctx, "Bearer idtok-"+sub)
	suite.Require().NoError(err)
	return issued
}

func (suite *SessionServiceTestSuite) TestCreateSession_HeaderErrors() {
	cases := map[string]error{
		"":              apperrors.ErrMissingAuthHeader,
		"Basic abc":     apperrors.ErrMissingAuthHeader,
		"Bearer":        apperrors.ErrEmptyToken,
		"Bearer ":       apperrors.ErrEmptyToken,
		"Bearer     ":   apperrors.ErrEmptyToken,
		"BearerToken12": apperrors.ErrMissingAuthHeader,
	}
	for header, want := range cases {
		_, err := suite.service.CreateSession(suite.ctx, header)
		suite.ErrorIs(err, want, "header %q", header)
	}
	suite.verifier.AssertNotCalled(suite.T(), "VerifyIDToken", mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestCreateAndVerifySession() {
	issued := suite.signIn("seller-1")

	suite.NotEmpty(issued.Token)
	suite.Equal(5*24*time.Hour, issued.ExpiresIn)
	suite.Equal("seller-1", issued.Session.UserID)

	session, err := suite.service.VerifySession(suite.ctx, issued.Token)
	suite.Require().NoError(err)
	suite.Equal("seller-1", session.UserID)
	suite.Equal("seller-1@example.com", session.Email)
	suite.True(session.EmailVerified)

	user, err := suite.repos.UserRepo.FindUserByID(suite.ctx, "seller-1")
	suite.Require().NoError(err)
	suite.Equal(domain.RoleAdmin, user.Role)
}

func (suite *SessionServiceTestSuite) TestCreateSession_VerifierErrorsPassThrough() {
	for _, sentinel := range []error{apperrors.ErrTokenExpired, apperrors.ErrTokenRevoked, apperrors.ErrInvalidToken, apperrors.ErrProviderMisconfigured} {
		suite.verifier.On("VerifyIDToken", mock.Anything, "bad").Return(nil, fmt.Errorf("%w: upstream", sentinel)).Once()

		_, err := suite.service.CreateSession(suite.ctx, "Bearer bad")

		suite.ErrorIs(err, sentinel)
	}
}

func (suite *SessionServiceTestSuite) TestCreateSession_DisabledUser() {
	suite.Require().NoError(suite.repos.UserRepo.SaveUser(suite.ctx, domain.User{UserID: "off", Role: domain.RoleUser, Disabled: true}))
	suite.verifier.On("VerifyIDToken", mock.Anything, "idtok-off").Return(&domain.Identity{Subject: "off"}, nil).Once()

	_, err := suite.service.CreateSession(suite.ctx, "Bearer idtok-off")

	suite.ErrorIs(err, apperrors.ErrUserDisabled)
}

func (suite *SessionServiceTestSuite) TestVerifySession_Errors() {
	_, err := suite.service.VerifySession(suite.ctx, "")
	suite.ErrorIs(err, apperrors.ErrNoSession)

	_, err = suite.service.VerifySession(suite.ctx, "not-a-jwt")
	suite.ErrorIs(err, apperrors.ErrInvalidSession)

	issued := suite.signIn("seller-2")
	_, err = suite.service.VerifySession(suite.ctx, issued.Token+"x")
	suite.ErrorIs(err, apperrors.ErrInvalidSession)
}

func (suite *SessionServiceTestSuite) TestVerifySession_WrongSecret() {
	issued := suite.signIn("seller-3")
	other := services.NewSessionService(services.SessionConfig{Secret: "other", Issuer: "atlas-test", Expiry: time.Hour}, suite.verifier,
		services.NewUserService(suite.repos.UserRepo, domain.RoleUser))

	_, err := other.VerifySession(suite.ctx, issued.Token)

	suite.ErrorIs(err, apperrors.ErrInvalidSession)
}

func (suite *SessionServiceTestSuite) TestVerifySession_DeletedUser() {
	issued := suite.signIn("seller-4")
	suite.Require().NoError(suite.repos.UserRepo.DeleteUser(suite.ctx, "seller-4"))

	_, err := suite.service.VerifySession(suite.ctx, issued.Token)

	suite.ErrorIs(err, apperrors.ErrInvalidSession)
}

func (suite *SessionServiceTestSuite) TestVerifySession_Revoked() {
	issued := suite.signIn("seller-5")
	suite.Require().NoError(suite.repos.UserRepo.RevokeSessions(suite.ctx, "seller-5", time.Now().Add(2*time.Second)))

	_, err := suite.service.VerifySession(suite.ctx, issued.Token)

	suite.ErrorIs(err, apperrors.ErrTokenRevoked)
}

func (suite *SessionServiceTestSuite) TestVerifySession_RevokedWithinIssueSecond() {
	issued := suite.signIn("seller-7")
	iat := issued.Session.IssuedAt
	suite.Require().Equal(iat, iat.Truncate(time.Second))

	suite.Require().NoError(suite.repos.UserRepo.RevokeSessions(suite.ctx, "seller-7", iat.Add(500*time.Millisecond)))
	_, err := suite.service.VerifySession(suite.ctx, issued.Token)
	suite.ErrorIs(err, apperrors.ErrTokenRevoked)

	suite.Require().NoError(suite.repos.UserRepo.RevokeSessions(suite.ctx, "seller-7", iat.Add(-500*time.Millisecond)))
	_, err = suite.service.VerifySession(suite.ctx, issued.Token)
	suite.NoError(err)
}

func (suite *SessionServiceTestSuite) TestVerifySession_StoreFailureIsNotACredentialError() {
	userRepo := new(MockUserRepository)
	svc := services.NewSessionService(services.SessionConfig{Secret: "test-secret", Issuer: "atlas-test", Expiry: time.Hour}, suite.verifier,
		services.NewUserService(userRepo, domain.RoleUser))
	issued := suite.signIn("seller-8")
	userRepo.On("FindUserByID", mock.Anything, "seller-8").Return(nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")).Once()

	_, err := svc.VerifySession(suite.ctx, issued.Token)

	suite.Require().Error(err)
	suite.False(apperrors.IsCredentialError(err))
	status, code, _ := apperrors.IdentityErrorCode(err)
	suite.Equal(http.StatusInternalServerError, status)
	suite.Equal(apperrors.CodeInternal, code)
}

func (suite *SessionServiceTestSuite) TestRefreshSession() {
	issued := suite.signIn("seller-6")

	refreshed, err := suite.service.RefreshSession(suite.ctx, issued.Token)

	suite.Require().NoError(err)
	suite.NotEqual(issued.Session.SessionID, refreshed.Session.SessionID)
	suite.Equal("seller-6", refreshed.Session.UserID)
	suite.Equal(issued.Session.Email, refreshed.Session.Email)

	_, err = suite.service.RefreshSession(suite.ctx, "garbage")
	suite.ErrorIs(err, apperrors.ErrInvalidSession)
}

func TestSessionService(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func TestSessionService_NoVerifier(t *testing.T) {
	svc := services.NewSessionService(services.SessionConfig{Secret: "s", Issuer: "i", Expiry: time.Hour}, nil,
		services.NewUserService(memory.NewRepositoryProvider().UserRepo, domain.RoleUser))

	_, err := svc.CreateSession(context.Background(), "Bearer token")

	assert.ErrorIs(t, err, apperrors.ErrProviderMisconfigured)
}
