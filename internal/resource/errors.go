package resource

import (
	stderrors "errors"
	"strings"

	apierrors "github.com/clinova/odonto-api/common/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// translateError is the single chokepoint between the storage layer and the
// domain taxonomy. No raw storage error shape leaves a Manager.
func translateError(logger *zap.Logger, op, entity string, err error) error {
	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return apierrors.NotFound("No existe el recurso %s solicitado", entity)
	case isUniqueViolation(err):
		return apierrors.Conflict("Ya existe un registro de %s con esos datos", entity)
	default:
		logger.Error("storage failure",
			zap.String("op", op),
			zap.String("entity", entity),
			zap.Error(err),
		)
		return apierrors.Internal("Error interno del servidor", err)
	}
}

// isUniqueViolation detects unique-key conflicts across the backends we run
// on: GORM's translated error, Postgres SQLSTATE 23505 and sqlite's message.
func isUniqueViolation(err error) bool {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
