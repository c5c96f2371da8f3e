// Package localstore implementa la caché local en disco: un archivo JSON por
// (usuario, tipo de entidad) bajo un directorio base. Es el respaldo durable
// del modo offline: las lecturas corruptas degradan a secuencia vacía y las
// escrituras que exceden la cuota fallan con ErrStorageFull sin perder el
// estado en memoria.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/viyabaari-api/internal/domain"
	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/domain/repository"
	"github.com/jhoicas/viyabaari-api/pkg/logger"
)

var _ repository.CacheStore = (*Store)(nil)

const (
	activeUserFile = "active_user.json"
	languageFile   = "language.json"
)

// Store caché local basada en archivos.
type Store struct {
	dir   string
	quota int // bytes por clave; 0 = sin límite
	log   *logger.Logger
}

// New construye la caché sobre dir, creándolo si no existe.
func New(dir string, quotaBytes int, log *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de caché: %w", err)
	}
	return &Store{dir: dir, quota: quotaBytes, log: log}, nil
}

// LoadStocks carga los artículos cacheados del usuario; vacío si no hay o están corruptos.
func (s *Store) LoadStocks(userKey string) ([]entity.StockItem, error) {
	var items []entity.StockItem
	s.read(s.userPath(userKey, repository.KindStocks), &items)
	return items, nil
}

// SaveStocks persiste los artículos del usuario. ErrStorageFull si excede la cuota.
func (s *Store) SaveStocks(userKey string, items []entity.StockItem) error {
	return s.write(s.userPath(userKey, repository.KindStocks), items)
}

// LoadTransactions carga las transacciones cacheadas del usuario.
func (s *Store) LoadTransactions(userKey string) ([]entity.Transaction, error) {
	var txns []entity.Transaction
	s.read(s.userPath(userKey, repository.KindTransactions), &txns)
	return txns, nil
}

// SaveTransactions persiste las transacciones del usuario.
func (s *Store) SaveTransactions(userKey string, txns []entity.Transaction) error {
	return s.write(s.userPath(userKey, repository.KindTransactions), txns)
}

// LoadActiveUser devuelve la sesión persistida, o nil si no hay.
func (s *Store) LoadActiveUser() (*entity.User, error) {
	var u entity.User
	if !s.read(filepath.Join(s.dir, activeUserFile), &u) || u.Email == "" {
		return nil, nil
	}
	return &u, nil
}

// SaveActiveUser persiste la sesión activa.
func (s *Store) SaveActiveUser(user *entity.User) error {
	return s.write(filepath.Join(s.dir, activeUserFile), user)
}

// ClearActiveUser elimina la sesión persistida (logout).
func (s *Store) ClearActiveUser() error {
	err := os.Remove(filepath.Join(s.dir, activeUserFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}

// LoadLanguage devuelve el idioma persistido ("" si no hay preferencia).
func (s *Store) LoadLanguage() (string, error) {
	var lang string
	s.read(filepath.Join(s.dir, languageFile), &lang)
	return lang, nil
}

// SaveLanguage persiste la preferencia de idioma.
func (s *Store) SaveLanguage(lang string) error {
	return s.write(filepath.Join(s.dir, languageFile), lang)
}

// userPath ruta del archivo de una clave con namespace de usuario.
func (s *Store) userPath(userKey, kind string) string {
	return filepath.Join(s.dir, sanitize(userKey), kind+".json")
}

// read decodifica el archivo en v. Devuelve false si no existe o está
// corrupto; los datos corruptos se degradan a vacío con un warning, nunca
// se propagan como error fatal.
func (s *Store) read(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn().Err(err).Str("path", path).Msg("caché local ilegible, se ignora")
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("caché local corrupta, se ignora")
		return false
	}
	return true
}

// write serializa v y lo escribe de forma atómica (tmp + rename).
func (s *Store) write(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serializar caché: %w", err)
	}
	if s.quota > 0 && len(data) > s.quota {
		return fmt.Errorf("%w: %d bytes (cuota %d)", domain.ErrStorageFull, len(data), s.quota)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("crear directorio: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("escribir caché: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("reemplazar caché: %w", err)
	}
	return nil
}

// sanitize vuelve una clave de usuario segura como nombre de directorio.
func sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, key)
}
