package workday

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/workshift-tools/workshift/backend/internal/schedule"
)

const cacheKeyPrefix = "workday_signal_"

// CachedGate 在内层信号源之上加一层 redis 缓存。
// 同一天的信号会被大量查询请求重复使用，缓存可以避免节假日表被反复打到。
// Unknown 不缓存：它代表临时故障，不应被固化
type CachedGate struct {
	inner      schedule.Gate
	rdb        *redis.Client
	expiration time.Duration
	opTimeout  time.Duration
}

func NewCachedGate(inner schedule.Gate, rdb *redis.Client, expiration, opTimeout time.Duration) *CachedGate {
	return &CachedGate{
		inner:      inner,
		rdb:        rdb,
		expiration: expiration,
		opTimeout:  opTimeout,
	}
}

func (g *CachedGate) Signal(date time.Time) schedule.Signal {
	key := cacheKeyPrefix + date.Format("2006-01-02")

	ctx, cancel := context.WithTimeout(context.Background(), g.opTimeout)
	defer cancel()

	if val, err := g.rdb.Get(ctx, key).Result(); err == nil {
		switch val {
		case "workday":
			return schedule.SignalWorkday
		case "non_workday":
			return schedule.SignalNonWorkday
		}
	}

	sig := g.inner.Signal(date)

	if sig != schedule.SignalUnknown {
		val := "workday"
		if sig == schedule.SignalNonWorkday {
			val = "non_workday"
		}
		if err := g.rdb.Set(ctx, key, val, g.expiration).Err(); err != nil {
			// 缓存写失败不影响信号本身
			slog.Warn("工作日信号写入缓存失败", "key", key, "error", err)
		}
	}

	return sig
}

// TomorrowSignal 透传给内层信号源的前瞻属性（若有）
func (g *CachedGate) TomorrowSignal(today time.Time) schedule.Signal {
	if ta, ok := g.inner.(schedule.TomorrowAware); ok {
		return ta.TomorrowSignal(today)
	}
	return schedule.SignalUnknown
}
