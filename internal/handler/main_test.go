package handler

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/slotgate/availability-api/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Register()
	os.Exit(m.Run())
}
