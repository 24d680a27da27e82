package auth

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/baechuer/contactbook/internal/domain"
)

type auditEntry struct {
	action string
	fields map[string]string
}

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByIDErr    error
	getByEmailErr error
	createErr     error
	setTokenErr   error
	setAvatarErr  error

	// recorded calls
	sessionTokens []struct{ id, token string }
	avatarURLs    []struct{ id, url string }
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) SetSessionToken(ctx context.Context, userID string, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setTokenErr != nil {
		return f.setTokenErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.SessionToken = token
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	f.sessionTokens = append(f.sessionTokens, struct{ id, token string }{userID, token})
	return nil
}

func (f *fakeUserRepo) ConsumeVerificationToken(ctx context.Context, token string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.VerificationToken != "" && u.VerificationToken == token {
			u.Verified = true
			u.VerificationToken = ""
			f.byID[u.ID] = u
			f.byEmail[u.Email] = u
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (f *fakeUserRepo) SetAvatarURL(ctx context.Context, userID string, avatarURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setAvatarErr != nil {
		return f.setAvatarErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.AvatarURL = avatarURL
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	f.avatarURLs = append(f.avatarURLs, struct{ id, url string }{userID, avatarURL})
	return nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type fakeSigner struct {
	mu      sync.Mutex
	n       int
	signErr error
}

func (f *fakeSigner) SignSessionToken(userID string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signErr != nil {
		return "", f.signErr
	}
	f.n++
	return fmt.Sprintf("jwt:%s:%d", userID, f.n), nil
}

func (f *fakeSigner) VerifySessionToken(token string) (TokenClaims, error) {
	return TokenClaims{}, fmt.Errorf("not used")
}

type fakeVtok struct {
	mu     sync.Mutex
	n      int
	newErr error
}

func (f *fakeVtok) New() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.newErr != nil {
		return "", f.newErr
	}
	f.n++
	return fmt.Sprintf("vt-%d", f.n), nil
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []Message
	sendErr error
}

func (f *fakeMailer) Send(ctx context.Context, m Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeMailer) all() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Message, len(f.sent))
	copy(out, f.sent)
	return out
}

type fakeAvatarStore struct {
	storeErr error
}

func (f *fakeAvatarStore) Store(ctx context.Context, userID, originalName string, r io.Reader) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	return "/avatars/" + userID + "-" + originalName, nil
}

/*
Service under test
*/

type svcDeps struct {
	users  *fakeUserRepo
	hasher *fakeHasher
	signer *fakeSigner
	vtok   *fakeVtok
	mailer *fakeMailer
	avatar *fakeAvatarStore
	audits *[]auditEntry
}

func newSvcForTest(t *testing.T, cfg Config) (*Service, svcDeps) {
	t.Helper()

	d := svcDeps{
		users:  newFakeUserRepo(),
		hasher: &fakeHasher{},
		signer: &fakeSigner{},
		vtok:   &fakeVtok{},
		mailer: &fakeMailer{},
		avatar: &fakeAvatarStore{},
		audits: &[]auditEntry{},
	}

	svc := NewService(d.users, d.hasher, d.signer, d.vtok, d.mailer, d.avatar, cfg)
	svc = svc.WithAudit(func(action string, fields map[string]string) {
		*d.audits = append(*d.audits, auditEntry{action: action, fields: fields})
	})
	return svc, d
}

func verifyingCfg() Config {
	return Config{
		BaseURL:                  "http://localhost:3000",
		MailFrom:                 "no-reply@test",
		EmailVerificationEnabled: true,
		AvatarUploadEnabled:      true,
	}
}

func openCfg() Config {
	return Config{
		EmailVerificationEnabled: false,
		AvatarUploadEnabled:      true,
	}
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if !domain.Is(err, code) {
		t.Fatalf("expected domain code %q, got %v", code, err)
	}
}
