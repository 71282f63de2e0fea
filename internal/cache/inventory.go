package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	ThreadKeyPrefix    = "thread:%d"
	SessionKeyPrefix   = "session:%s"
	DashboardKeyPrefix = "dashboard:%d"
)

const (
	UserTTL      = 5 * time.Minute
	ThreadTTL    = 2 * time.Minute
	DashboardTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ThreadKey(threadID uint) string {
	return fmt.Sprintf(ThreadKeyPrefix, threadID)
}

func SessionKey(sid string) string {
	return fmt.Sprintf(SessionKeyPrefix, sid)
}

func DashboardKey(userID uint) string {
	return fmt.Sprintf(DashboardKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, DashboardKey(userID))
}

func InvalidateThread(ctx context.Context, threadID uint) {
	Invalidate(ctx, ThreadKey(threadID))
}
