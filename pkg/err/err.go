package errprocess

import (
	"errors"
	"fmt"

	"otodoke_life/pkg/logger"

	"go.uber.org/zap"
)

// Set set err info
func Set(errMsg string, fields ...zap.Field) error {
	logger.Log.Error(errMsg, fields...)
	return errors.New(errMsg)
}

// Setf 格式化後記錄並回傳, %w 會保留原始 error
func Setf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	logger.Log.Error(err.Error())
	return err
}
