package auth

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"acaiaca/internal/session"
	"acaiaca/internal/token"
	"acaiaca/internal/users"
)

// User-facing messages, kept verbatim from the marketplace frontend.
const (
	msgInvalidCredentials = "Credenciais inválidas"
	msgDuplicateEmail     = "Email já cadastrado"
	msgUserNotFound       = "Usuário não encontrado"
)

const defaultProfileImage = "/assets/fotosPerfis/default.png"

// Result is the uniform outcome of the mutating operations. Failures are
// values, never panics.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    *users.User `json:"user,omitempty"`
	Token   string      `json:"token,omitempty"`
}

// Registration is the input to Register. PropertyName and FarmerStory are
// only honored for the agricultor role.
type Registration struct {
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Password     string     `json:"password"`
	Role         users.Role `json:"role"`
	State        string     `json:"state"`
	City         string     `json:"city"`
	PhoneNumber  string     `json:"phoneNumber"`
	PropertyName string     `json:"propertyName"`
	FarmerStory  string     `json:"farmerStory"`
}

// SessionInfo is a read-only projection of the stored session, for
// diagnostics. It is produced even for an expired token, with IsValid
// reporting the difference.
type SessionInfo struct {
	UserID    int        `json:"userId"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin"`
	ExpiresAt *time.Time `json:"expiresAt"`
	IsValid   bool       `json:"isValid"`
}

// Service orchestrates login, registration and session upkeep over the user
// store, token codec and session store. Construct one per process in the
// composition root and pass it by reference.
type Service struct {
	users    *users.Store
	sessions *session.Store
	codec    *token.Codec
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(us *users.Store, ss *session.Store, codec *token.Codec, logger *slog.Logger) *Service {
	return &Service{
		users:    us,
		sessions: ss,
		codec:    codec,
		logger:   logger,
		now:      time.Now,
	}
}

// RestoreSession validates any session left by a previous run, clearing it
// when the token no longer checks out. Reports whether a live session was
// restored.
func (s *Service) RestoreSession() bool {
	tok, ok := s.sessions.Get(session.KeyToken)
	if !ok {
		return false
	}
	if !s.IsTokenValid(tok) {
		s.clearSession()
		return false
	}
	return true
}

// IsTokenValid reports false for an absent, undecodable or expired token,
// and for one whose id no longer resolves to a user record.
func (s *Service) IsTokenValid(tok string) bool {
	if tok == "" {
		return false
	}
	claims, err := s.codec.Decode(tok)
	if err != nil {
		return false
	}
	if claims.Expired(s.now()) {
		return false
	}
	_, ok := s.users.FindByID(claims.ID)
	return ok
}

func (s *Service) IsAuthenticated() bool {
	tok, _ := s.sessions.Get(session.KeyToken)
	return s.IsTokenValid(tok)
}

// Login matches email, password and role exactly against the user store.
// No session field is written on a miss.
func (s *Service) Login(email, password string, role users.Role) Result {
	u, ok := s.users.FindByCredentials(email, password, role)
	if !ok {
		s.logger.Info("login rejected", "email", email)
		return Result{Success: false, Message: msgInvalidCredentials}
	}
	tok, err := s.issueSession(u)
	if err != nil {
		s.logger.Error("issue session", "err", err, "user", u.ID)
		return Result{Success: false, Message: msgInvalidCredentials}
	}
	s.logger.Info("login ok", "user", u.ID, "role", u.Role)
	return Result{Success: true, User: u, Token: tok}
}

// Register appends a new record and opens a session for it. A duplicate
// email fails without touching the collection.
func (s *Service) Register(reg Registration) Result {
	u := users.User{
		Username:    reg.Username,
		Email:       reg.Email,
		Password:    reg.Password,
		Role:        reg.Role,
		State:       reg.State,
		City:        reg.City,
		PhoneNumber: reg.PhoneNumber,
		MemberSince: s.now().Format("2006-01-02"),
	}
	if reg.Role == users.RoleAgricultor {
		u.PropertyName = reg.PropertyName
		u.FarmerStory = reg.FarmerStory
		u.ProfileImage = defaultProfileImage
	}
	created, err := s.users.Add(u)
	if err != nil {
		return Result{Success: false, Message: msgDuplicateEmail}
	}
	tok, err := s.issueSession(&created)
	if err != nil {
		s.logger.Error("issue session", "err", err, "user", created.ID)
	}
	s.logger.Info("user registered", "user", created.ID, "role", created.Role)
	return Result{Success: true, User: &created, Token: tok}
}

// Logout clears every session field. Idempotent.
func (s *Service) Logout() {
	s.clearSession()
	s.logger.Info("logout")
}

// CurrentUser resolves the stored token to a user record. Any invalidity
// clears the session.
func (s *Service) CurrentUser() (*users.User, bool) {
	tok, ok := s.sessions.Get(session.KeyToken)
	if !ok || !s.IsTokenValid(tok) {
		s.clearSession()
		return nil, false
	}
	claims, err := s.codec.Decode(tok)
	if err != nil {
		s.clearSession()
		return nil, false
	}
	u, ok := s.users.FindByID(claims.ID)
	if !ok {
		s.clearSession()
		return nil, false
	}
	return u, true
}

// RefreshToken reissues the current user's token with a fresh envelope.
func (s *Service) RefreshToken() (string, bool) {
	u, ok := s.CurrentUser()
	if !ok {
		return "", false
	}
	tok, err := s.issueSession(u)
	if err != nil {
		s.logger.Error("refresh session", "err", err, "user", u.ID)
		return "", false
	}
	return tok, true
}

// UpdateUser merges updates into the matching record. When the target is
// the currently authenticated user the session fields and token are
// reissued from the updated record.
func (s *Service) UpdateUser(id int, upd users.Updates) Result {
	u, err := s.users.Apply(id, upd)
	if err != nil {
		return Result{Success: false, Message: msgUserNotFound}
	}
	if cur, ok := s.CurrentUser(); ok && cur.ID == id {
		if _, err := s.issueSession(u); err != nil {
			s.logger.Error("reissue session", "err", err, "user", id)
		}
	}
	return Result{Success: true, User: u}
}

// SessionInfo decodes the stored token without enforcing expiry, so stale
// sessions remain inspectable.
func (s *Service) SessionInfo() (*SessionInfo, bool) {
	tok, ok := s.sessions.Get(session.KeyToken)
	if !ok {
		return nil, false
	}
	claims, err := s.codec.Decode(tok)
	if err != nil {
		return nil, false
	}
	info := &SessionInfo{
		UserID:  claims.ID,
		Email:   claims.Email,
		Role:    claims.Role,
		IsValid: s.IsTokenValid(tok),
	}
	if v, ok := s.sessions.Get(session.KeyLastLogin); ok {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			t := time.UnixMilli(ms)
			info.LastLogin = &t
		}
	}
	if v, ok := s.sessions.Get(session.KeySessionExpiry); ok {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			t := time.UnixMilli(ms)
			info.ExpiresAt = &t
		}
	}
	return info, true
}

// AllUsers exposes the in-process collection, for diagnostics.
func (s *Service) AllUsers() []users.User {
	return s.users.All()
}

func (s *Service) issueSession(u *users.User) (string, error) {
	now := s.now()
	claims := token.NewClaims(u.ID, u.Email, string(u.Role), now)
	tok, err := s.codec.Encode(claims)
	if err != nil {
		return "", err
	}
	fields := map[string]string{
		session.KeyToken:         tok,
		session.KeyUserRole:      string(u.Role),
		session.KeyUserName:      u.Username,
		session.KeyUserID:        strconv.Itoa(u.ID),
		session.KeyEmail:         u.Email,
		session.KeyLastLogin:     strconv.FormatInt(now.UnixMilli(), 10),
		session.KeySessionExpiry: strconv.FormatInt(claims.Exp, 10),
	}
	if u.FarmerStory != "" {
		fields[session.KeyHistoria] = u.FarmerStory
	}
	if err := s.sessions.Replace(fields); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}
	return tok, nil
}

func (s *Service) clearSession() {
	if err := s.sessions.Clear(); err != nil {
		s.logger.Error("clear session", "err", err)
	}
}
