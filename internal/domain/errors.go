package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Ninguno es fatal: el peor caso degradado es modo solo-local sin sincronización.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// ErrAccountNotFound no existe cuenta con ese email/móvil: el caller ofrece registro.
	ErrAccountNotFound = errors.New("cuenta no encontrada")
	// ErrInvalidCredentials la cuenta existe pero la contraseña no coincide.
	ErrInvalidCredentials = errors.New("credenciales inválidas")

	// ErrRemoteUnavailable el almacén remoto no responde; se degrada a caché local.
	ErrRemoteUnavailable = errors.New("almacén remoto no disponible")
	// ErrNetworkUnavailable operación de identidad sin conectividad.
	ErrNetworkUnavailable = errors.New("sin conexión de red")

	// ErrStorageFull la caché local rechazó la escritura por tamaño; el estado en memoria se conserva.
	ErrStorageFull = errors.New("almacenamiento local lleno")

	// ErrInvalidBackup el archivo de respaldo no tiene la estructura mínima; no se importa nada.
	ErrInvalidBackup = errors.New("estructura de respaldo inválida")

	// ErrCodeMismatch el código de confirmación no coincide; la acción destructiva se aborta sin efectos.
	ErrCodeMismatch = errors.New("código de confirmación incorrecto")
	// ErrNoPendingAction se intentó confirmar sin una acción destructiva pendiente.
	ErrNoPendingAction = errors.New("no hay acción pendiente de confirmar")
)
