package users

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/go-playground/validator.v9"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/accounts"
	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

// SignUpRequest holds new user credentials
type SignUpRequest struct {
	Login          string `validate:"min=3,max=20,alphanum"`
	Password       string `validate:"min=6"`
	PasswordRepeat string `validate:"eqfield=Password"`
}

// SignInRequest holds user credentials
type SignInRequest struct {
	Login    string
	Password string
}

// VerifyRequest holds personal data of a user
type VerifyRequest struct {
	Login      string
	Phone      string
	Age        string
	CardNumber string
	Geo        string
}

// ForgetPasswordRequest holds data to reset password
type ForgetPasswordRequest struct {
	Login       string
	Phone       string
	NewPassword string `validate:"min=6"`
}

// AccountOpener opens ledger accounts for new users
type AccountOpener interface {
	CreateAccount(ctx context.Context) (int64, error)
}

// Service registers and authenticates users. Every user owns
// exactly one ledger account and user id is the account id
type Service interface {
	accounts.Directory

	SignUp(ctx context.Context, req SignUpRequest) (int64, error)
	SignIn(ctx context.Context, req SignInRequest) error
	Verify(ctx context.Context, req VerifyRequest) error
	ForgetPassword(ctx context.Context, req ForgetPasswordRequest) error
}

type user struct {
	uid          int64
	login        string
	passwordHash []byte
	phone        string
	age          string
	cardNumber   string
	geo          string
	verified     bool
	online       bool
}

type service struct {
	mu       sync.RWMutex
	byLogin  map[string]*user
	byUID    map[int64]*user
	accounts AccountOpener
	validate *validator.Validate
	hashCost int
}

// ServiceOpt is an option of the users service
type ServiceOpt func(svc *service)

// WithAccounts sets accounts opener
func WithAccounts(opener AccountOpener) ServiceOpt {
	return func(svc *service) {
		svc.accounts = opener
	}
}

// WithHashCost sets bcrypt cost of password hashes
func WithHashCost(cost int) ServiceOpt {
	return func(svc *service) {
		svc.hashCost = cost
	}
}

// NewService creates an empty users service
func NewService(opts ...ServiceOpt) Service {
	svc := &service{
		byLogin:  map[string]*user{},
		byUID:    map[int64]*user{},
		validate: validator.New(),
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

const loginCharactersMessage = "Login contains not allowed characters. Only alphanumeric characters are allowed"

// Rules are checked in this order, first violation wins
var validationMessages = []struct {
	field   string
	tags    []string
	message string
}{
	{"Login", []string{"min", "max"}, "Login must be from 3 to 20 characters"},
	{"Password", []string{"min"}, "Password must be at least 6 characters"},
	{"NewPassword", []string{"min"}, "Password must be at least 6 characters"},
	{"PasswordRepeat", []string{"eqfield"}, "Passwords do not match"},
	{"Login", []string{"alphanum"}, loginCharactersMessage},
}

func (svc *service) validateRequest(ctx context.Context, req interface{}) *Error {
	err := svc.validate.Struct(req)
	if err == nil {
		return nil
	}
	logger.WithError(err).Info(ctx, "Request validation failed")
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return newError(KindBadRequest, "Failed to validate request")
	}
	for _, rule := range validationMessages {
		for _, fieldErr := range fieldErrors {
			if fieldErr.Field() != rule.field {
				continue
			}
			for _, tag := range rule.tags {
				if fieldErr.Tag() == tag {
					return newError(KindBadRequest, rule.message)
				}
			}
		}
	}
	return newError(KindBadRequest, "Field %v is invalid", fieldErrors[0].Field())
}

func (svc *service) SignUp(ctx context.Context, req SignUpRequest) (int64, error) {
	// Taken login is reported before bad characters
	validationErr := svc.validateRequest(ctx, req)
	if validationErr != nil && validationErr.Message != loginCharactersMessage {
		return 0, validationErr
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if _, ok := svc.byLogin[req.Login]; ok {
		return 0, newError(KindConflict, "Login already exists")
	}
	if validationErr != nil {
		return 0, validationErr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), svc.hashCost)
	if err != nil {
		return 0, errors.Wrap(err, "Failed to hash password")
	}
	uid, err := svc.accounts.CreateAccount(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "Failed to open account")
	}
	u := &user{uid: uid, login: req.Login, passwordHash: hash, online: true}
	svc.byLogin[u.login] = u
	svc.byUID[u.uid] = u
	logger.WithData(diag.MsgData{"uid": uid}).Info(ctx, "User %v signed up", u.login)
	return uid, nil
}

func (svc *service) SignIn(ctx context.Context, req SignInRequest) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	u, ok := svc.byLogin[req.Login]
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		return newError(KindUnauthorized, "Invalid account credentials")
	}
	u.online = true
	logger.Info(ctx, "User %v signed in", u.login)
	return nil
}

func (svc *service) Verify(ctx context.Context, req VerifyRequest) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	u, ok := svc.byLogin[req.Login]
	if !ok {
		return newError(KindNotFound, "User not found")
	}
	u.phone = req.Phone
	u.age = req.Age
	u.cardNumber = req.CardNumber
	u.geo = req.Geo
	u.verified = true
	logger.Info(ctx, "User %v verified", u.login)
	return nil
}

func (svc *service) ForgetPassword(ctx context.Context, req ForgetPasswordRequest) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	u, ok := svc.byLogin[req.Login]
	if !ok {
		return newError(KindNotFound, "User not found")
	}
	// Users that never verified have no phone so an empty one matches
	if u.phone != req.Phone {
		return newError(KindUnauthorized, "Phone does not match")
	}
	if err := svc.validateRequest(ctx, req); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), svc.hashCost)
	if err != nil {
		return errors.Wrap(err, "Failed to hash password")
	}
	u.passwordHash = hash
	logger.Info(ctx, "User %v changed password", u.login)
	return nil
}

func (svc *service) Status(ctx context.Context, accountID int64) (accounts.Status, bool) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	u, ok := svc.byUID[accountID]
	if !ok {
		return accounts.Status{}, false
	}
	return accounts.Status{Login: u.login, Verified: u.verified, Online: u.online}, true
}
