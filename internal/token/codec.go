package token

import (
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Codec extracts claims from a token's payload segment WITHOUT verifying
// the signature. It exists purely so the client can render identity and
// gate navigation; the remote API remains the authority on every request.
// Never use it for server-side trust decisions.
type Codec struct {
	logger *zap.Logger
	parser *jwt.Parser
}

// NewCodec builds a codec. A nil logger falls back to a no-op logger.
func NewCodec(logger *zap.Logger) *Codec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Codec{logger: logger, parser: jwt.NewParser()}
}

// Decode returns the claims carried by token, or nil when the token is
// malformed in any way (missing segments, bad base64url, invalid JSON).
// Decode never returns an error; failures are logged and absorbed.
func (c *Codec) Decode(token string) *Claims {
	claims := &Claims{}
	if _, _, err := c.parser.ParseUnverified(token, claims); err != nil {
		c.logger.Debug("failed to decode token", zap.Error(err))
		return nil
	}
	return claims
}
