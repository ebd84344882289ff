package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/zap"

	"github.com/orinoco-shop/orinoco/internal/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 1m", func() {
		if n := a.limiter.Evict(); n > 0 {
			zap.L().Debug("rate limiter eviction", zap.Int("keys_removed", n))
		}
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		go a.SchedOrderStatsTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSystemMonitorTask samples host cpu and memory usage.
func (a *Application) SchedSystemMonitorTask() {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		return
	}
	vmem, err := mem.VirtualMemory()
	if err != nil {
		return
	}
	zap.L().Debug("system monitor",
		zap.Float64("cpu_percent", percents[0]),
		zap.Float64("mem_percent", vmem.UsedPercent))
}

// SchedOrderStatsTask logs a daily snapshot of order volume and revenue.
func (a *Application) SchedOrderStatsTask() {
	var total int64
	if err := a.gormDB.Model(&domain.Order{}).Count(&total).Error; err != nil {
		zap.L().Error("order stats task failed", zap.Error(err))
		return
	}
	var revenue float64
	if err := a.gormDB.Model(&domain.Order{}).
		Select("COALESCE(SUM(total_price),0)").Scan(&revenue).Error; err != nil {
		zap.L().Error("order stats task failed", zap.Error(err))
		return
	}
	zap.L().Info("daily order stats",
		zap.Int64("total_orders", total),
		zap.Float64("total_revenue", revenue))
}
