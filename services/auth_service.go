package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	apperrors "github.com/nomiram/weather-api/errors"
	authpb "github.com/nomiram/weather-api/internal/pb/auth"
	"github.com/nomiram/weather-api/logger"
)

// AuthService checks request identities against the remote authorization
// service over a shared gRPC channel. One unary call per request, bounded by
// an explicit timeout; the decision is never cached.
type AuthService struct {
	client  authpb.AuthServiceClient
	timeout time.Duration
	log     *zap.SugaredLogger
}

// NewAuthService creates an AuthService on top of an established gRPC
// connection. The connection is shared and safe for concurrent calls.
func NewAuthService(conn grpc.ClientConnInterface, timeout time.Duration) *AuthService {
	return &AuthService{
		client:  authpb.NewAuthServiceClient(conn),
		timeout: timeout,
		log:     logger.GetLogger(),
	}
}

// Check returns whether username is authorized. When the RPC itself fails
// the returned error is AuthServiceErr, which callers must treat identically
// to a denial (fail-closed).
func (s *AuthService) Check(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CheckAuthorization(ctx, &authpb.AuthRequest{Username: username})
	if err != nil {
		s.log.Errorw("Authorization RPC failed, denying by policy", "error", err)
		return false, apperrors.AuthServiceUnavailable(err)
	}

	s.log.Debugw("Authorization decision", "username", username, "allowed", resp.GetCheck())
	return resp.GetCheck(), nil
}
