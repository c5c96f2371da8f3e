// Package auth implementa la pasarela de sesión/identidad: en todo momento la
// sesión está en exactamente uno de tres estados — sin sesión, sesión remota
// (uid + token) o sesión local/invitado (sin uid, solo en el dispositivo).
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/viyabaari-api/internal/application/dto"
	"github.com/jhoicas/viyabaari-api/internal/domain"
	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/domain/repository"
	"github.com/jhoicas/viyabaari-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de identidad: registro, acceso, restauración de
// sesión y modo invitado. userRepo puede ser nil (instalación solo-local):
// toda operación remota falla entonces con ErrNetworkUnavailable y el caller
// ofrece la sesión de invitado.
type AuthUseCase struct {
	userRepo repository.UserRepository
	cache    repository.CacheStore
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, cache repository.CacheStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, cache: cache, jwtCfg: jwtCfg}
}

// SignUp crea una cuenta remota: hashea la contraseña con bcrypt, persiste y
// abre sesión. ErrEmailAlreadyExists si el email/móvil ya está registrado.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.RegisterRequest) (*dto.SessionResponse, error) {
	if uc.userRepo == nil {
		return nil, domain.ErrNetworkUnavailable
	}
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByLogin(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrRemoteUnavailable) {
		return nil, err
	}
	if errors.Is(err, domain.ErrRemoteUnavailable) {
		return nil, domain.ErrNetworkUnavailable
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:              uuid.New().String(),
		Email:           in.Email,
		Name:            in.Name,
		Mobile:          in.Mobile,
		PasswordHash:    string(hash),
		BackupFrequency: entity.BackupNever,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, mapNetwork(err)
	}
	return uc.openSession(user)
}

// SignIn verifica login (email o móvil) y contraseña. Distingue
// ErrAccountNotFound (no existe la cuenta: el caller ofrece registro) de
// ErrInvalidCredentials (contraseña incorrecta).
func (uc *AuthUseCase) SignIn(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	if uc.userRepo == nil {
		return nil, domain.ErrNetworkUnavailable
	}
	user, err := uc.userRepo.FindByLogin(ctx, in.Login)
	if err != nil {
		return nil, mapNetwork(err)
	}
	if user == nil {
		return nil, domain.ErrAccountNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.openSession(user)
}

// GuestSession abre una sesión local sin uid remoto. No toca la red: es un
// modo reconocido, no una ruta de error.
func (uc *AuthUseCase) GuestSession() (*dto.SessionResponse, error) {
	guest := &entity.User{
		Email: "guest@viyabaari.local",
		Name:  "Invitado",
	}
	if err := uc.cache.SaveActiveUser(guest); err != nil && !errors.Is(err, domain.ErrStorageFull) {
		return nil, err
	}
	return &dto.SessionResponse{User: dto.ToUserResponse(guest)}, nil
}

// RestoreSession valida un token previo y devuelve la identidad, consultando
// la DB si hay red y cayendo a la sesión cacheada si no.
func (uc *AuthUseCase) RestoreSession(ctx context.Context, token string) (*entity.User, error) {
	userID, email, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if uc.userRepo != nil {
		user, err := uc.userRepo.GetByID(ctx, userID)
		if err == nil && user != nil {
			return user, nil
		}
		if err != nil && !errors.Is(err, domain.ErrRemoteUnavailable) {
			return nil, err
		}
	}
	// Sin red: reconstruir identidad mínima desde los claims y la caché.
	if cached, _ := uc.cache.LoadActiveUser(); cached != nil && cached.ID == userID {
		return cached, nil
	}
	return &entity.User{ID: userID, Email: email}, nil
}

// CurrentUser resuelve la identidad activa: con token restaura la sesión
// remota; sin token devuelve la sesión local persistida o el invitado por
// defecto.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, token string) (*entity.User, error) {
	if token != "" {
		return uc.RestoreSession(ctx, token)
	}
	if cached, _ := uc.cache.LoadActiveUser(); cached != nil {
		return cached, nil
	}
	return &entity.User{Email: "guest@viyabaari.local", Name: "Invitado"}, nil
}

// SignOut cierra la sesión activa persistida.
func (uc *AuthUseCase) SignOut() error {
	return uc.cache.ClearActiveUser()
}

// UpdateProfile edita nombre, móvil y preferencias de respaldo de la cuenta.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, user *entity.User, in dto.UpdateProfileRequest) (*entity.User, error) {
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Mobile != nil {
		user.Mobile = *in.Mobile
	}
	if in.BackupFrequency != nil {
		switch *in.BackupFrequency {
		case entity.BackupDaily, entity.BackupWeekly, entity.BackupMonthly, entity.BackupNever:
			user.BackupFrequency = *in.BackupFrequency
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	user.UpdatedAt = time.Now()
	if user.IsRemote() && uc.userRepo != nil {
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, mapNetwork(err)
		}
	}
	if err := uc.cache.SaveActiveUser(user); err != nil && !errors.Is(err, domain.ErrStorageFull) {
		return nil, err
	}
	return user, nil
}

// openSession emite el token, persiste la sesión activa y arma la respuesta.
func (uc *AuthUseCase) openSession(user *entity.User) (*dto.SessionResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.SaveActiveUser(user); err != nil && !errors.Is(err, domain.ErrStorageFull) {
		return nil, err
	}
	return &dto.SessionResponse{Token: token, User: dto.ToUserResponse(user)}, nil
}

// mapNetwork las operaciones de identidad reportan la falta de conectividad
// como ErrNetworkUnavailable (taxonomía propia, distinta de la degradación
// silenciosa del almacén de registros).
func mapNetwork(err error) error {
	if errors.Is(err, domain.ErrRemoteUnavailable) {
		return domain.ErrNetworkUnavailable
	}
	return err
}
