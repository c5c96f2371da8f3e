package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/viyabaari-api/internal/application/auth"
	"github.com/jhoicas/viyabaari-api/internal/application/dto"
	"github.com/jhoicas/viyabaari-api/internal/domain"
	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/infrastructure/localstore"
	"github.com/jhoicas/viyabaari-api/pkg/logger"
)

// fakeUserRepo repositorio de cuentas en memoria.
type fakeUserRepo struct {
	byID map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range f.byID {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	clone := *user
	f.byID[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) FindByLogin(_ context.Context, login string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Email == login || (u.Mobile != "" && u.Mobile == login) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	clone := *user
	f.byID[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) ListWithBackupSchedule(_ context.Context) ([]*entity.User, error) {
	return nil, nil
}

var testJWT = auth.JWTConfig{Secret: "secret-de-test", ExpMinutes: 60, Issuer: "viyabaari-test"}

func newAuthSetup(t *testing.T) (*auth.AuthUseCase, *fakeUserRepo) {
	t.Helper()
	cache, err := localstore.New(t.TempDir(), 0, logger.Nop())
	require.NoError(t, err)
	repo := newFakeUserRepo()
	return auth.NewAuthUseCase(repo, cache, testJWT), repo
}

func registro() dto.RegisterRequest {
	return dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123", Name: "Ana", Mobile: "555123"}
}

func TestSignUp_CreaCuentaYAbreSesion(t *testing.T) {
	uc, _ := newAuthSetup(t)

	out, err := uc.SignUp(context.Background(), registro())
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.NotEmpty(t, out.User.ID)
	assert.False(t, out.User.Guest)
	assert.Equal(t, "ana@example.com", out.User.Email)
}

func TestSignUp_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthSetup(t)
	_, err := uc.SignUp(context.Background(), registro())
	require.NoError(t, err)

	_, err = uc.SignUp(context.Background(), registro())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignIn_DistingueCuentaInexistenteDePasswordIncorrecta(t *testing.T) {
	uc, _ := newAuthSetup(t)
	_, err := uc.SignUp(context.Background(), registro())
	require.NoError(t, err)

	_, err = uc.SignIn(context.Background(), dto.LoginRequest{Login: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound, "cuenta inexistente: el caller ofrece registro")

	_, err = uc.SignIn(context.Background(), dto.LoginRequest{Login: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignIn_AceptaEmailOMovil(t *testing.T) {
	uc, _ := newAuthSetup(t)
	_, err := uc.SignUp(context.Background(), registro())
	require.NoError(t, err)

	porEmail, err := uc.SignIn(context.Background(), dto.LoginRequest{Login: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)
	porMovil, err := uc.SignIn(context.Background(), dto.LoginRequest{Login: "555123", Password: "secreta123"})
	require.NoError(t, err)

	assert.Equal(t, porEmail.User.ID, porMovil.User.ID)
}

func TestGuestSession_SinTokenNiUID(t *testing.T) {
	uc, _ := newAuthSetup(t)

	out, err := uc.GuestSession()
	require.NoError(t, err)

	assert.Empty(t, out.Token, "el invitado no tiene identidad remota que restaurar")
	assert.Empty(t, out.User.ID)
	assert.True(t, out.User.Guest)
}

// Instalación solo-local (sin repo de cuentas) → operaciones remotas fallan
// con ErrNetworkUnavailable, el invitado sigue disponible.
func TestAuth_SoloLocalSinRepoRemoto(t *testing.T) {
	cache, err := localstore.New(t.TempDir(), 0, logger.Nop())
	require.NoError(t, err)
	uc := auth.NewAuthUseCase(nil, cache, testJWT)

	_, err = uc.SignUp(context.Background(), registro())
	assert.ErrorIs(t, err, domain.ErrNetworkUnavailable)
	_, err = uc.SignIn(context.Background(), dto.LoginRequest{Login: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrNetworkUnavailable)

	guest, err := uc.GuestSession()
	require.NoError(t, err)
	assert.True(t, guest.User.Guest)
}

func TestRestoreSession_TokenValidoRecuperaCuenta(t *testing.T) {
	uc, _ := newAuthSetup(t)
	session, err := uc.SignUp(context.Background(), registro())
	require.NoError(t, err)

	user, err := uc.RestoreSession(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestRestoreSession_TokenInvalido(t *testing.T) {
	uc, _ := newAuthSetup(t)
	_, err := uc.RestoreSession(context.Background(), "token.basura.aqui")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateProfile_ValidaFrecuenciaDeRespaldo(t *testing.T) {
	uc, _ := newAuthSetup(t)
	session, err := uc.SignUp(context.Background(), registro())
	require.NoError(t, err)
	user, err := uc.RestoreSession(context.Background(), session.Token)
	require.NoError(t, err)

	semanal := entity.BackupWeekly
	updated, err := uc.UpdateProfile(context.Background(), user, dto.UpdateProfileRequest{BackupFrequency: &semanal})
	require.NoError(t, err)
	assert.Equal(t, entity.BackupWeekly, updated.BackupFrequency)

	invalida := "cada-rato"
	_, err = uc.UpdateProfile(context.Background(), updated, dto.UpdateProfileRequest{BackupFrequency: &invalida})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCurrentUser_SinTokenDevuelveSesionPersistidaOInvitado(t *testing.T) {
	uc, _ := newAuthSetup(t)

	// Sin nada persistido → invitado por defecto.
	user, err := uc.CurrentUser(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, user.IsRemote())

	// Tras abrir sesión, la identidad persistida se recupera sin token.
	session, err := uc.SignUp(context.Background(), registro())
	require.NoError(t, err)
	user, err = uc.CurrentUser(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, user.ID)
}
