package service

import (
	"errors"

	"gorm.io/gorm"
)

// Domain error taxonomy. Services detect these conditions before (or while)
// mutating and return them without leaving partial state; handlers map them
// to HTTP statuses with errors.Is.
var (
	// ErrNotFound: a referenced cliente, vehículo or nota does not exist.
	ErrNotFound = errors.New("registro no encontrado")
	// ErrDuplicateKey: unique constraint violation (RUT, patente, chasis, motor, email).
	ErrDuplicateKey = errors.New("registro duplicado")
	// ErrIntegrityViolation: the row is referenced by other records and cannot be deleted.
	ErrIntegrityViolation = errors.New("conflicto de integridad referencial")
	// ErrVehicleUnavailable: attempt to attach a non-disponible vehicle to a new nota.
	ErrVehicleUnavailable = errors.New("el vehiculo no esta disponible")
	// ErrRegistroDeshabilitado: an administrator already exists.
	ErrRegistroDeshabilitado = errors.New("el registro de nuevos usuarios esta deshabilitado")
)

// traducirErrorDB maps GORM's translated driver errors onto the domain
// taxonomy. Requires gorm.Config{TranslateError: true} on the connection.
func traducirErrorDB(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrIntegrityViolation
	default:
		return err
	}
}
