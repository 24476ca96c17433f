package main

import (
	"log/slog"
	"os"

	"gorm.io/gorm"

	"github.com/NguyenTrongThuan612/restaurant-management/config"
	"github.com/NguyenTrongThuan612/restaurant-management/models"
	"github.com/NguyenTrongThuan612/restaurant-management/routes"
	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Dish{},
		&models.Combo{},
		&models.ComboDish{},
		&models.DiningTable{},
		&models.DailyQuantity{},
		&models.Order{},
		&models.OrderItem{},
		&models.Bill{},
	)
}

// seedManager creates the first manager account when the database has none
// and bootstrap credentials are configured. Without it a fresh install has no
// account that can create others.
func seedManager(db *gorm.DB, cfg config.Config) error {
	if cfg.BootstrapManagerEmail == "" || cfg.BootstrapManagerPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.UserRoleManager).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(cfg.BootstrapManagerPassword)
	if err != nil {
		return err
	}

	manager := models.User{
		FullName: cfg.BootstrapManagerName,
		Email:    cfg.BootstrapManagerEmail,
		Password: hashed,
		Status:   models.UserStatusActivated,
		Role:     models.UserRoleManager,
	}
	if err := db.Create(&manager).Error; err != nil {
		return err
	}
	slog.Info("seeded bootstrap manager", "email", manager.Email)
	return nil
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg := config.Load()

	db, err := config.Connect(cfg)
	if err != nil {
		log.Error("database connect failed", "err", err)
		os.Exit(1)
	}

	if err := migrate(db); err != nil {
		log.Error("migration failed", "err", err)
		os.Exit(1)
	}

	if err := seedManager(db, cfg); err != nil {
		log.Error("manager seed failed", "err", err)
		os.Exit(1)
	}

	var mailer *utils.Mailer
	if cfg.SMTPHost != "" {
		mailer = utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, log)
		mailer.Start()
		defer mailer.Close()
	}

	r := routes.SetupRouter(db, mailer, log)

	log.Info("listening", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
