package localstore_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/viyabaari-api/internal/domain"
	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/infrastructure/localstore"
	"github.com/jhoicas/viyabaari-api/pkg/logger"
)

func newStore(t *testing.T, quota int) *localstore.Store {
	t.Helper()
	s, err := localstore.New(t.TempDir(), quota, logger.Nop())
	require.NoError(t, err)
	return s
}

func TestStore_RoundtripStocks(t *testing.T) {
	s := newStore(t, 0)
	items := []entity.StockItem{
		{
			ID:    "s1",
			Name:  "Saree seda",
			Price: decimal.NewFromInt(450),
			Variants: []entity.StockVariant{
				{ID: "v1", SizeStocks: []entity.SizeStock{{Size: "M", Quantity: 6}}},
			},
		},
	}

	require.NoError(t, s.SaveStocks("user@example.com", items))
	got, err := s.LoadStocks("user@example.com")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
	assert.True(t, got[0].Price.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, 6, got[0].AggregateQuantity())
}

func TestStore_RoundtripTransactions(t *testing.T) {
	s := newStore(t, 0)
	txns := []entity.Transaction{
		{ID: "t1", Type: entity.TransactionIncome, Amount: decimal.NewFromInt(250), Category: "Venta", Date: time.Now().UTC()},
	}

	require.NoError(t, s.SaveTransactions("uid-1", txns))
	got, err := s.LoadTransactions("uid-1")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, entity.TransactionIncome, got[0].Type)
}

// Las claves de distintos usuarios no se pisan entre sí.
func TestStore_NamespacePorUsuario(t *testing.T) {
	s := newStore(t, 0)
	require.NoError(t, s.SaveStocks("ana@example.com", []entity.StockItem{{ID: "a"}}))
	require.NoError(t, s.SaveStocks("beto@example.com", []entity.StockItem{{ID: "b"}}))

	ana, err := s.LoadStocks("ana@example.com")
	require.NoError(t, err)
	require.Len(t, ana, 1)
	assert.Equal(t, "a", ana[0].ID)
}

func TestStore_ClaveInexistenteDegradaAVacio(t *testing.T) {
	s := newStore(t, 0)
	got, err := s.LoadStocks("nadie@example.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Cuota excedida → ErrStorageFull y el archivo previo queda intacto.
func TestStore_CuotaExcedidaRetornaStorageFull(t *testing.T) {
	dir := t.TempDir()
	s, err := localstore.New(dir, 64, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.SaveStocks("u", nil))

	grandes := make([]entity.StockItem, 10)
	for i := range grandes {
		grandes[i] = entity.StockItem{ID: "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", Name: "yyyyyyyyyyyyyyyy"}
	}
	err = s.SaveStocks("u", grandes)
	require.ErrorIs(t, err, domain.ErrStorageFull)

	// La escritura rechazada no debe haber tocado el archivo.
	got, err := s.LoadStocks("u")
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Archivo corrupto → degrada a vacío, nunca error fatal.
func TestStore_ArchivoCorruptoDegradaAVacio(t *testing.T) {
	dir := t.TempDir()
	s, err := localstore.New(dir, 0, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.SaveStocks("u", []entity.StockItem{{ID: "s1"}}))
	path := filepath.Join(dir, "u", "stocks.json")
	require.NoError(t, os.WriteFile(path, []byte("{esto no es json"), 0o644))

	got, err := s.LoadStocks("u")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_SesionActivaRoundtripYClear(t *testing.T) {
	s := newStore(t, 0)

	u, err := s.LoadActiveUser()
	require.NoError(t, err)
	assert.Nil(t, u, "sin sesión persistida debe devolver nil")

	require.NoError(t, s.SaveActiveUser(&entity.User{ID: "uid-1", Email: "ana@example.com"}))
	u, err = s.LoadActiveUser()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "uid-1", u.ID)

	require.NoError(t, s.ClearActiveUser())
	u, err = s.LoadActiveUser()
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestStore_ClearSinSesionNoFalla(t *testing.T) {
	s := newStore(t, 0)
	assert.NoError(t, s.ClearActiveUser())
}

func TestStore_IdiomaRoundtrip(t *testing.T) {
	s := newStore(t, 0)

	lang, err := s.LoadLanguage()
	require.NoError(t, err)
	assert.Empty(t, lang)

	require.NoError(t, s.SaveLanguage("ta"))
	lang, err = s.LoadLanguage()
	require.NoError(t, err)
	assert.Equal(t, "ta", lang)
}

// Claves con caracteres peligrosos no escapan del directorio base.
func TestStore_SanitizaClavesDeUsuario(t *testing.T) {
	dir := t.TempDir()
	s, err := localstore.New(dir, 0, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.SaveStocks("../fuera", []entity.StockItem{{ID: "s1"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, "..", e.Name())
	}
	got, err := s.LoadStocks("../fuera")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
