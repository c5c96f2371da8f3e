package state

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/domain/repository"
	"github.com/jhoicas/viyabaari-api/pkg/logger"
)

// Manager mantiene un controlador por identidad activa y el indicador de
// conectividad compartido entre todos ellos. El cambio de identidad (login,
// logout, invitado) dispara una recarga completa del estado.
type Manager struct {
	mu          sync.Mutex
	log         *logger.Logger
	cache       repository.CacheStore
	stockRepo   repository.StockRepository
	txnRepo     repository.TransactionRepository
	online      atomic.Bool
	controllers map[string]*Controller
}

// NewManager stockRepo y txnRepo pueden ser nil en instalaciones solo-locales.
func NewManager(
	cache repository.CacheStore,
	stockRepo repository.StockRepository,
	txnRepo repository.TransactionRepository,
	log *logger.Logger,
) *Manager {
	m := &Manager{
		log:         log,
		cache:       cache,
		stockRepo:   stockRepo,
		txnRepo:     txnRepo,
		controllers: make(map[string]*Controller),
	}
	// El arranque asume conectividad si hay repos remotos configurados.
	m.online.Store(stockRepo != nil)
	return m
}

// ForUser devuelve el controlador de la identidad, creándolo y cargando su
// estado en el primer acceso.
func (m *Manager) ForUser(ctx context.Context, user entity.User) (*Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := user.Key()
	if c, ok := m.controllers[key]; ok {
		c.SetUser(user)
		return c, nil
	}
	c := newController(user, m.cache, m.stockRepo, m.txnRepo, &m.online, m.log)
	if err := c.LoadState(ctx); err != nil {
		return nil, err
	}
	m.controllers[key] = c
	return c, nil
}

// Drop descarta el controlador de una identidad (logout). El estado persistido
// en caché y remoto no se toca.
func (m *Manager) Drop(userKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.controllers, userKey)
}

// Online indica la conectividad conocida con el almacén remoto.
func (m *Manager) Online() bool { return m.online.Load() }

// SetOnline actualiza el indicador compartido. La transición offline→online no
// reenvía escrituras perdidas; la siguiente LoadState reconcilia leyendo del
// remoto.
func (m *Manager) SetOnline(online bool) {
	prev := m.online.Swap(online)
	if prev != online {
		m.log.Info().Bool("online", online).Msg("cambio de conectividad")
	}
}
