package state

import (
	"fmt"
	"math/rand"
)

// Acciones destructivas que requieren confirmación con código.
const (
	ActionDeleteStock       = "DELETE_STOCK"
	ActionClearTransactions = "CLEAR_TXNS"
	ActionResetAll          = "RESET_APP"
)

// pendingAction acción destructiva generada en el momento de la intención,
// a la espera de que el usuario reescriba el código.
type pendingAction struct {
	action  string
	payload string // id del artículo para DELETE_STOCK
	code    string
}

// newConfirmationCode código numérico de 4 cifras (1000–9999). Se muestra en
// pantalla al mismo usuario que debe teclearlo: guardia contra pulsaciones
// accidentales, no un mecanismo de autenticación.
func newConfirmationCode() string {
	return fmt.Sprintf("%d", 1000+rand.Intn(9000))
}
