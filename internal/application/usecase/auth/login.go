package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redoficios2025-Inicial/redoficios-gateway/adapters/upstream"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/auth"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Authenticator is the slice of the backend client the login flow needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*upstream.LoginResult, error)
}

type LoginUseCase struct {
	upstream  Authenticator
	directory profile.Directory
	sessions  session.Store
	jwtSvc    *auth.JWTService
	logger    logger.Logger
}

func NewLoginUseCase(up Authenticator, dir profile.Directory, sessions session.Store, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		upstream:  up,
		directory: dir,
		sessions:  sessions,
		jwtSvc:    jwtSvc,
		logger:    log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
	Session     *session.Session
	FirstLogin  bool
}

var tracer = otel.Tracer("auth_usecase")

// Execute signs the user in against the backend, opens a gateway session and
// mints the gateway token the client will present from now on. The backend
// token never leaves the session record.
func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {

	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	result, err := uc.upstream.Login(ctx, input.Email, input.Password)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	sess := &session.Session{
		ID:            uuid.New(),
		UserID:        result.UserID,
		ProfileID:     result.ProfileID,
		Role:          profile.Role(result.Role),
		UpstreamToken: result.Token,
		CreatedAt:     time.Now().UTC(),
	}

	// The backend's login payload carries ids only; name and avatar come
	// from the profile. A sparse first-login profile is not a reason to
	// refuse the session.
	if p, err := uc.directory.FetchByID(ctx, result.Token, result.ProfileID); err != nil {
		uc.logger.Warn("could not load profile at login", zap.String("profile_id", result.ProfileID), zap.Error(err))
	} else {
		sess.Name = p.Name
		sess.Avatar = p.AvatarURL
	}

	if err := uc.sessions.Save(ctx, sess); err != nil {
		uc.logger.Error("Failed to persist session", err, zap.String("user_id", result.UserID))
		err = apperror.NewInternal("failed to open session", err)
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(sess.ID, sess.UserID, string(sess.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", result.UserID))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", result.UserID))
	return &LoginOutput{AccessToken: token, Session: sess, FirstLogin: result.FirstLogin}, nil
}
