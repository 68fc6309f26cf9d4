//go:build wireinject

package ioc

import (
	"github.com/edusphere/fyptrack/internal/deadline"
	"github.com/edusphere/fyptrack/internal/doctype"
	"github.com/edusphere/fyptrack/internal/evaluation"
	"github.com/edusphere/fyptrack/internal/result"
	"github.com/edusphere/fyptrack/internal/submission"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ, InitClock)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		initMinGapDays,
		doctype.InitModule,
		deadline.InitModule,
		submission.InitModule,
		evaluation.InitModule,
		result.InitModule,
		wire.FieldsOf(new(*doctype.Module), "AdminHdl"),
		wire.FieldsOf(new(*deadline.Module), "AdminHdl"),
		wire.FieldsOf(new(*submission.Module), "Hdl", "AdminHdl", "SweepJob"),
		wire.FieldsOf(new(*evaluation.Module), "Hdl", "AdminHdl"),
		wire.FieldsOf(new(*result.Module), "Hdl", "AdminHdl"),
		InitSession,
		initGinxServer,
		InitAdminServer,
		initCronJobs)
	return new(App), nil
}

// initMinGapDays 相邻截止日期的最小间隔天数，默认 15 天
func initMinGapDays() int {
	days := econf.GetInt("deadline.minGapDays")
	if days <= 0 {
		days = 15
	}
	return days
}
