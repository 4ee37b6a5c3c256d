package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dekarrin/bandbook"
	"modernc.org/sqlite"
)

func convertDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code()&0xff == 1 {
			// 1 is a generic error and thus the string is not descriptive, so
			// do not use the error code string
			return err
		}

		return bandbook.NewError(sqlite.ErrorCodeString[sqliteErr.Code()], err)
	} else if errors.Is(err, sql.ErrNoRows) {
		return bandbook.ErrResourceNotFound
	}

	return err
}

// WrapDBError creates a new bandbook.Error that wraps the given error as a
// cause and automatically adds bandbook.ErrDB as another cause. A message may
// be provided if desired with msg, but it may be left out.
//
// The provided error being wrapped will itself be converted to an Error of the
// approriate bandbook type if possible; e.g. a driver error indicating that no
// rows were found is converted to bandbook.ErrResourceNotFound.
func WrapDBError(err error, msg ...any) bandbook.Error {
	var errMsg string
	if len(msg) > 0 {
		errMsg = fmt.Sprint(msg...)
	}

	return bandbook.NewError(errMsg, convertDBError(err), bandbook.ErrDB)
}

// WrapDBErrorf is WrapDBError with a message built by calling fmt.Sprintf.
func WrapDBErrorf(err error, format string, a ...any) bandbook.Error {
	return bandbook.NewError(fmt.Sprintf(format, a...), convertDBError(err), bandbook.ErrDB)
}
