package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/SscSPs/finance_flow/internal/core/domain"
	portssvc "github.com/SscSPs/finance_flow/internal/core/ports/services"
	"github.com/SscSPs/finance_flow/internal/core/services"
	"github.com/SscSPs/finance_flow/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
	ctx      context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockRepo, bcrypt.MinCost)
	s.ctx = context.Background()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestRegister_Success() {
	s.mockRepo.On("FindUserByUsername", s.ctx, "alice").Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.User
	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
		Return(nil).Once()

	err := s.service.Register(s.ctx, "alice", "pw123")

	s.Require().NoError(err)
	s.Equal("alice", saved.Username)
	s.NotEqual("pw123", saved.PasswordHash)
	s.True(utils.CheckPasswordHash("pw123", saved.PasswordHash))
	s.False(saved.CreatedAt.IsZero())
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRegister_SaltsEveryHash() {
	s.mockRepo.On("FindUserByUsername", s.ctx, mock.Anything).Return(nil, apperrors.ErrNotFound)

	var hashes []string
	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { hashes = append(hashes, args.Get(1).(domain.User).PasswordHash) }).
		Return(nil)

	s.Require().NoError(s.service.Register(s.ctx, "alice", "same"))
	s.Require().NoError(s.service.Register(s.ctx, "bob", "same"))

	s.Require().Len(hashes, 2)
	s.NotEqual(hashes[0], hashes[1])
}

func (s *UserServiceTestSuite) TestRegister_ExistingUsername() {
	s.mockRepo.On("FindUserByUsername", s.ctx, "alice").Return(&domain.User{Username: "alice", PasswordHash: "h"}, nil).Once()

	err := s.service.Register(s.ctx, "alice", "other")

	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestRegister_LostRaceReportsDuplicate() {
	s.mockRepo.On("FindUserByUsername", s.ctx, "alice").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	err := s.service.Register(s.ctx, "alice", "pw")

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) TestRegister_Validation() {
	cases := map[string][2]string{
		"empty username":    {"", "pw"},
		"empty password":    {"alice", ""},
		"username too long": {strings.Repeat("a", 65), "pw"},
		"password too long": {"alice", strings.Repeat("p", 73)},
	}
	for name, c := range cases {
		s.Run(name, func() {
			err := s.service.Register(s.ctx, c[0], c[1])
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	s.mockRepo.AssertNotCalled(s.T(), "FindUserByUsername", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestRegister_StorageErrorOnLookup() {
	s.mockRepo.On("FindUserByUsername", s.ctx, "alice").Return(nil, apperrors.NewStorageError("find user", errors.New("db down"))).Once()

	err := s.service.Register(s.ctx, "alice", "pw")

	s.ErrorIs(err, apperrors.ErrStorage)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestVerify() {
	hash, err := utils.HashPassword("pw123", bcrypt.MinCost)
	s.Require().NoError(err)
	s.mockRepo.On("FindUserByUsername", s.ctx, "alice").Return(&domain.User{Username: "alice", PasswordHash: hash}, nil)
	s.mockRepo.On("FindUserByUsername", s.ctx, "ghost").Return(nil, apperrors.ErrNotFound)

	ok, err := s.service.Verify(s.ctx, "alice", "pw123")
	s.NoError(err)
	s.True(ok)

	ok, err = s.service.Verify(s.ctx, "alice", "wrong")
	s.NoError(err)
	s.False(ok)

	ok, err = s.service.Verify(s.ctx, "ghost", "pw123")
	s.NoError(err)
	s.False(ok)
}

func (s *UserServiceTestSuite) TestVerify_StorageErrorIsNotFalse() {
	s.mockRepo.On("FindUserByUsername", s.ctx, "alice").Return(nil, apperrors.NewStorageError("find user", errors.New("db down")))

	ok, err := s.service.Verify(s.ctx, "alice", "pw")

	s.False(ok)
	s.ErrorIs(err, apperrors.ErrStorage)
}

func (s *UserServiceTestSuite) TestGetUserByUsername_NotFound() {
	s.mockRepo.On("FindUserByUsername", s.ctx, "ghost").Return(nil, apperrors.ErrNotFound)

	user, err := s.service.GetUserByUsername(s.ctx, "ghost")

	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
