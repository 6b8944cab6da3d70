package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"automotora/internal/config"
	"automotora/internal/dto"
	"automotora/internal/model"
	"automotora/internal/repository"
	"automotora/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCredencialesInvalidas = errors.New("credenciales invalidas")
	ErrTokenInvalido         = errors.New("token invalido o expirado")
)

type AuthService interface {
	// Registrar creates the administrator account. It fails with
	// ErrRegistroDeshabilitado once any account exists.
	Registrar(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	// SolicitarReset queues a password-reset mail. It succeeds silently when
	// the email is unknown so the endpoint does not leak account existence.
	SolicitarReset(ctx context.Context, email string) error
	ConfirmarReset(ctx context.Context, token, newPassword string) error
}

type authService struct {
	repo       repository.UsuarioRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, dispatcher *worker.Dispatcher, cfg *config.Config) AuthService {
	return &authService{repo: repo, dispatcher: dispatcher, cfg: cfg}
}

func (s *authService) Registrar(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrRegistroDeshabilitado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := model.Usuario{
		ID:           uuid.New(),
		Nombre:       req.Nombre,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return nil, traducirErrorDB(err)
	}
	return &dto.UsuarioResponse{ID: u.ID.String(), Nombre: u.Nombre, Email: u.Email}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrCredencialesInvalidas
	}
	return s.emitirTokens(u)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, ErrTokenInvalido
	}
	if claims["purpose"] != "refresh" {
		return nil, ErrTokenInvalido
	}
	id, err := uuid.Parse(fmt.Sprint(claims["user_id"]))
	if err != nil {
		return nil, ErrTokenInvalido
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTokenInvalido
	}
	return s.emitirTokens(u)
}

func (s *authService) SolicitarReset(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}

	expira := time.Now().Add(time.Duration(s.cfg.ResetTokenMinutes) * time.Minute)
	token, err := s.firmarToken(jwt.MapClaims{
		"user_id": u.ID.String(),
		"purpose": "reset",
		"exp":     expira.Unix(),
	})
	if err != nil {
		return err
	}
	if s.dispatcher == nil {
		return errors.New("envio de correo no configurado")
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.cfg.Domain, "/"), token)
	body := fmt.Sprintf(
		"Hola %s,\n\nPara restablecer tu contrasena visita:\n%s\n\nEl enlace vence en %d minutos.",
		u.Nombre, link, s.cfg.ResetTokenMinutes,
	)
	return s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: u.Email,
		Subject: "Restablecer contrasena — " + s.cfg.NombreAutomotora,
		Body:    body,
	})
}

func (s *authService) ConfirmarReset(ctx context.Context, token, newPassword string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return ErrTokenInvalido
	}
	if claims["purpose"] != "reset" {
		return ErrTokenInvalido
	}
	id, err := uuid.Parse(fmt.Sprint(claims["user_id"]))
	if err != nil {
		return ErrTokenInvalido
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

func (s *authService) emitirTokens(u *model.Usuario) (*dto.LoginResponse, error) {
	accessTTL := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	access, err := s.firmarToken(jwt.MapClaims{
		"user_id": u.ID.String(),
		"nombre":  u.Nombre,
		"email":   u.Email,
		"exp":     time.Now().Add(accessTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}
	refresh, err := s.firmarToken(jwt.MapClaims{
		"user_id": u.ID.String(),
		"purpose": "refresh",
		"exp":     time.Now().Add(time.Duration(s.cfg.JWTRefreshHours) * time.Hour).Unix(),
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(accessTTL.Seconds()),
		User:         dto.UsuarioResponse{ID: u.ID.String(), Nombre: u.Nombre, Email: u.Email},
	}, nil
}

func (s *authService) firmarToken(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) parseToken(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("metodo de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalido
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalido
	}
	return claims, nil
}
