package helper

import (
	"github.com/pkg/errors"

	"godata/godata_d1_adapter/models"
)

const errUnknown = "unknown error"

// RemoteErr turns a failed response envelope into an error carrying the
// first reported message.
func RemoteErr(respErrors []models.ResponseError) error {
	if len(respErrors) == 0 {
		return errors.New(errUnknown)
	}

	return errors.New(respErrors[0].Message)
}

func TableNotFoundErr(table string) error {
	return errors.Errorf("table %s does not exist", table)
}
