package backend_test

import (
	"testing"

	"github.com/golang/mock/gomock"
)

func newGomockController(t *testing.T) *gomock.Controller {
	return gomock.NewController(t)
}
