package ioc

import "github.com/jonboulle/clockwork"

// InitClock 统一注入时钟，截止日期判定在测试里可控
func InitClock() clockwork.Clock {
	return clockwork.NewRealClock()
}
