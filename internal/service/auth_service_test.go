package service_test

import (
	"context"
	"testing"

	"automotora/internal/config"
	"automotora/internal/dto"
	"automotora/internal/model"
	"automotora/internal/repository"
	"automotora/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUsuarioRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.usuarios)), nil
}

func (r *stubUsuarioRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func authConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
		ResetTokenMinutes:  30,
		NombreAutomotora:   "Automotora Test",
		Domain:             "http://localhost:8000",
	}
}

func TestRegistrarPrimerUsuario(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := service.NewAuthService(repo, nil, authConfig())

	resp, err := svc.Registrar(context.Background(), dto.RegisterRequest{
		Nombre: "Admin", Email: "Admin@Automotora.cl", Password: "secreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@automotora.cl", resp.Email)
	assert.Len(t, repo.usuarios, 1)
}

func TestRegistrarSegundoUsuarioDeshabilitado(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := service.NewAuthService(repo, nil, authConfig())
	ctx := context.Background()

	_, err := svc.Registrar(ctx, dto.RegisterRequest{Nombre: "Admin", Email: "a@a.cl", Password: "secreto123"})
	require.NoError(t, err)

	_, err = svc.Registrar(ctx, dto.RegisterRequest{Nombre: "Otro", Email: "b@b.cl", Password: "secreto123"})
	assert.ErrorIs(t, err, service.ErrRegistroDeshabilitado)
	assert.Len(t, repo.usuarios, 1)
}

func TestLoginYRefresh(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := service.NewAuthService(repo, nil, authConfig())
	ctx := context.Background()

	_, err := svc.Registrar(ctx, dto.RegisterRequest{Nombre: "Admin", Email: "a@a.cl", Password: "secreto123"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "a@a.cl", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)

	// Refresh exchanges the refresh token for a new pair
	refreshed, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)

	// An access token is not a refresh token
	_, err = svc.Refresh(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, service.ErrTokenInvalido)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := service.NewAuthService(repo, nil, authConfig())
	ctx := context.Background()

	_, err := svc.Registrar(ctx, dto.RegisterRequest{Nombre: "Admin", Email: "a@a.cl", Password: "secreto123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "a@a.cl", Password: "equivocada"})
	assert.ErrorIs(t, err, service.ErrCredencialesInvalidas)
}

func TestLoginUsuarioInexistente(t *testing.T) {
	svc := service.NewAuthService(newStubUsuarioRepo(), nil, authConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "nadie@a.cl", Password: "x"})
	assert.ErrorIs(t, err, service.ErrCredencialesInvalidas)
}

func TestSolicitarResetEmailDesconocido(t *testing.T) {
	svc := service.NewAuthService(newStubUsuarioRepo(), nil, authConfig())

	// Unknown email must not error (no account probing)
	err := svc.SolicitarReset(context.Background(), "nadie@a.cl")
	assert.NoError(t, err)
}

func TestConfirmarResetTokenInvalido(t *testing.T) {
	svc := service.NewAuthService(newStubUsuarioRepo(), nil, authConfig())

	err := svc.ConfirmarReset(context.Background(), "no-es-un-jwt", "nueva1234")
	assert.ErrorIs(t, err, service.ErrTokenInvalido)
}
