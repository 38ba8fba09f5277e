package round

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid round token")
	ErrExpiredToken = errors.New("round token expired")
)

// Claims bind a round to its puzzle and chosen candidates so a guess can be
// checked without server-side round state. Picks are candidate positions, so the
// token does not spell out the answers.
type Claims struct {
	PuzzleID   int64  `json:"pid"`
	Difficulty string `json:"dif"`
	Picks      []int  `json:"picks"`
	jwt.RegisteredClaims
}

// TokenConfig holds round token signing configuration.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration // default: 1 hour
	Issuer string
}

// TokenSigner issues and verifies HS256 round tokens.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenSigner(cfg TokenConfig) *TokenSigner {
	if cfg.TTL == 0 {
		cfg.TTL = time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "jumble"
	}
	return &TokenSigner{
		secret: cfg.Secret,
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// Sign issues a token for r played by player.
func (s *TokenSigner) Sign(r *Round, player string) (string, error) {
	now := s.now()
	claims := Claims{
		PuzzleID:   r.PuzzleID,
		Difficulty: r.Difficulty.String(),
		Picks:      r.picks(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   player,
			ID:        r.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses a round token and checks its signature and lifetime.
func (s *TokenSigner) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
