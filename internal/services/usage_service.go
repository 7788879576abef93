package services

import (
	"github.com/agrolime/limeportal/internal/logging"
	"github.com/agrolime/limeportal/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UsageCount is the number of runs of one calculator
type UsageCount struct {
	Calculator string `json:"calculator"`
	Count      int64  `json:"count"`
}

// RecordCalculatorUsage stores one calculator run. Failures are logged only.
func RecordCalculatorUsage(db *gorm.DB, calculator string, inputs, result interface{}) {
	row := models.CalculatorUsage{Calculator: calculator}

	var err error
	if row.Inputs, err = models.NewJSON(inputs); err != nil {
		logging.L().Warn("calculator inputs not serializable", zap.String("calculator", calculator), zap.Error(err))
	}
	if row.Result, err = models.NewJSON(result); err != nil {
		logging.L().Warn("calculator result not serializable", zap.String("calculator", calculator), zap.Error(err))
	}

	if err := db.Create(&row).Error; err != nil {
		logging.L().Error("failed to record calculator usage", zap.String("calculator", calculator), zap.Error(err))
	}
}

// UsageStats counts calculator runs per calculator, most used first
func UsageStats(db *gorm.DB) ([]UsageCount, error) {
	stats := []UsageCount{}
	err := db.Model(&models.CalculatorUsage{}).
		Select("calculator, COUNT(*) AS count").
		Group("calculator").
		Order("count DESC").
		Order("calculator ASC").
		Scan(&stats).Error
	return stats, err
}
