package backup_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/viyabaari-api/internal/application/backup"
	"github.com/jhoicas/viyabaari-api/internal/application/state"
	"github.com/jhoicas/viyabaari-api/internal/domain"
	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/infrastructure/localstore"
	"github.com/jhoicas/viyabaari-api/pkg/logger"
)

func newBackupSetup(t *testing.T) (*backup.UseCase, *state.Manager) {
	t.Helper()
	cache, err := localstore.New(t.TempDir(), 0, logger.Nop())
	require.NoError(t, err)
	manager := state.NewManager(cache, nil, nil, logger.Nop())
	return backup.NewUseCase(manager, logger.Nop()), manager
}

func TestExport_IncluyeUsuarioYRegistros(t *testing.T) {
	uc, manager := newBackupSetup(t)
	user := entity.User{Email: "ana@example.com", Name: "Ana"}

	ctrl, err := manager.ForUser(context.Background(), user)
	require.NoError(t, err)
	require.NoError(t, ctrl.ReplaceAll(context.Background(),
		[]entity.StockItem{{ID: "s1", Name: "Saree"}},
		[]entity.Transaction{{ID: "t1", Type: entity.TransactionIncome, Amount: decimal.NewFromInt(50), Category: "Venta", Date: time.Now()}},
	))

	data, err := uc.Export(context.Background(), user)
	require.NoError(t, err)

	var payload backup.Payload
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "ana@example.com", payload.User.Email)
	require.Len(t, payload.Stocks, 1)
	require.Len(t, payload.Transactions, 1)
	assert.False(t, payload.ExportedAt.IsZero())
}

func TestImport_RestauraTodoElEstado(t *testing.T) {
	uc, manager := newBackupSetup(t)
	raw := []byte(`{
		"user": {"email": "beto@example.com", "name": "Beto"},
		"stocks": [{"id": "s1", "name": "Saree antiguo", "imageUrl": "http://img/x.jpg",
		            "sizeStocks": [{"size": "M", "quantity": 6}]}],
		"transactions": [{"id": "t1", "type": "INCOME", "amount": "75", "category": "Venta",
		                  "date": "2026-08-30T10:00:00Z"}]
	}`)

	user, err := uc.Import(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "beto@example.com", user.Email)

	ctrl, err := manager.ForUser(context.Background(), user)
	require.NoError(t, err)
	items := ctrl.Stocks()
	require.Len(t, items, 1)
	assert.NotEmpty(t, items[0].Variants, "los registros legacy del respaldo también se migran")
	assert.Equal(t, 6, items[0].AggregateQuantity())
	assert.Len(t, ctrl.Transactions("", ""), 1)
}

// stocks como lista vacía es un respaldo válido.
func TestImport_StocksVaciosEsValido(t *testing.T) {
	uc, _ := newBackupSetup(t)
	raw := []byte(`{"user": {"email": "ana@example.com"}, "stocks": [], "transactions": []}`)

	user, err := uc.Import(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
}

// Documentos malformados → ErrInvalidBackup sin tocar nada.
func TestImport_DocumentosInvalidos(t *testing.T) {
	uc, _ := newBackupSetup(t)

	casos := map[string][]byte{
		"sin user":          []byte(`{"stocks": [], "transactions": []}`),
		"user null":         []byte(`{"user": null, "stocks": []}`),
		"sin stocks":        []byte(`{"user": {"email": "a@b.c"}}`),
		"stocks no arreglo": []byte(`{"user": {"email": "a@b.c"}, "stocks": {}}`),
		"no es json":        []byte(`esto no es json`),
		"user sin clave":    []byte(`{"user": {"name": "sin email"}, "stocks": []}`),
	}
	for nombre, raw := range casos {
		_, err := uc.Import(context.Background(), raw)
		assert.ErrorIs(t, err, domain.ErrInvalidBackup, nombre)
	}
}

// Un respaldo inválido no debe pisar el estado existente del usuario.
func TestImport_InvalidoNoTocaEstadoExistente(t *testing.T) {
	uc, manager := newBackupSetup(t)
	user := entity.User{Email: "ana@example.com"}

	ctrl, err := manager.ForUser(context.Background(), user)
	require.NoError(t, err)
	require.NoError(t, ctrl.ReplaceAll(context.Background(),
		[]entity.StockItem{{ID: "s1", Name: "Saree"}}, nil))

	_, err = uc.Import(context.Background(), []byte(`{"stocks": []}`))
	require.ErrorIs(t, err, domain.ErrInvalidBackup)

	assert.Len(t, ctrl.Stocks(), 1, "el estado previo queda intacto")
}
