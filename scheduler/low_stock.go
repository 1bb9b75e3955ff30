package scheduler

import (
	"fmt"
	"strings"

	"fiber-inventory/config"
	"fiber-inventory/models"
	"fiber-inventory/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// LowStockSweeper menjalankan sweep terjadwal: semua item katalog dicek
// lewat ATP, yang AvailableSmart-nya di bawah ambang dikirim sebagai email
// alert.
type LowStockSweeper struct {
	cron         *cron.Cron
	db           *gorm.DB
	availability *services.AvailabilityService
	logger       *zap.Logger
}

func NewLowStockSweeper(db *gorm.DB, availability *services.AvailabilityService, logger *zap.Logger) *LowStockSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LowStockSweeper{
		cron:         cron.New(),
		db:           db,
		availability: availability,
		logger:       logger,
	}
}

func (s *LowStockSweeper) Start() {
	s.logger.Info("starting low stock sweeper", zap.String("schedule", config.LowStockCron))

	_, err := s.cron.AddFunc(config.LowStockCron, s.sweep)
	if err != nil {
		s.logger.Error("failed to schedule low stock sweep", zap.Error(err))
		return
	}

	s.cron.Start()
}

func (s *LowStockSweeper) Stop() {
	s.logger.Info("stopping low stock sweeper")
	s.cron.Stop()
}

func (s *LowStockSweeper) sweep() {
	var items []models.CatalogItem
	if err := s.db.Find(&items).Error; err != nil {
		s.logger.Error("failed to load catalog for low stock sweep", zap.Error(err))
		return
	}

	var shortages []string
	for _, item := range items {
		report := s.availability.CheckAvailability(item.ItemName, item.Brand, 0, "", "")
		if report.AvailableSmart >= config.LowStockThreshold {
			continue
		}

		unit := report.ContainerUnit
		if report.UnitType == services.UnitTypeBase {
			unit = report.BaseUnit
		}
		shortages = append(shortages, fmt.Sprintf("%s (%s): %d %s available",
			item.ItemName, item.Brand, report.AvailableSmart, unit))
	}

	if len(shortages) == 0 {
		s.logger.Info("low stock sweep finished, no shortages")
		return
	}

	s.logger.Warn("low stock detected", zap.Int("items", len(shortages)))

	if err := s.sendAlert(shortages); err != nil {
		s.logger.Error("failed to send low stock alert", zap.Error(err))
	}
}

func (s *LowStockSweeper) sendAlert(shortages []string) error {
	if config.SMTPHost == "" || config.AlertRecipient == "" {
		s.logger.Info("mail alert skipped, SMTP not configured")
		return nil
	}

	var rows strings.Builder
	for _, line := range shortages {
		rows.WriteString("<li>" + line + "</li>")
	}

	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Low stock alert</h3>
				<ul>%s</ul>
				<p>This is an auto-generated email. Please do not reply.</p>
			</body>
		</html>
	`, rows.String())

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", strings.Split(config.AlertRecipient, ",")...)
	msg.SetHeader("Subject", fmt.Sprintf("Low stock: %d item(s) below threshold", len(shortages)))
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	return dialer.DialAndSend(msg)
}
