package repository

import "github.com/jhoicas/viyabaari-api/internal/domain/entity"

// Claves de entidad en la caché local.
const (
	KindStocks       = "stocks"
	KindTransactions = "transactions"
)

// CacheStore puerto de la caché local con namespace por usuario: mapea
// (clave de usuario, tipo de entidad) a una secuencia de registros.
// Save falla con domain.ErrStorageFull si se excede la cuota; Load degrada a
// secuencia vacía ante datos corruptos en vez de propagar un error fatal.
type CacheStore interface {
	LoadStocks(userKey string) ([]entity.StockItem, error)
	SaveStocks(userKey string, items []entity.StockItem) error
	LoadTransactions(userKey string) ([]entity.Transaction, error)
	SaveTransactions(userKey string, txns []entity.Transaction) error

	// Sesión activa e idioma (claves globales, sin namespace de usuario).
	LoadActiveUser() (*entity.User, error)
	SaveActiveUser(user *entity.User) error
	ClearActiveUser() error
	LoadLanguage() (string, error)
	SaveLanguage(lang string) error
}
