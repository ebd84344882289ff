package app

import (
	"github.com/bwmarrin/snowflake"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/orinoco-shop/orinoco/config"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context.
// Services should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider

	SnowflakeNode() *snowflake.Node

	// Application lifecycle methods
	MigrateDB() error
	InitDb()
	DropAll()
}
