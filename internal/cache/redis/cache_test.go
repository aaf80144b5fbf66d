package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"
)

func TestGet_Hit(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "k1")).
		Return(mock.Result(mock.RedisString(`[{"Score":1}]`)))

	cache := NewCacheForTest(c, 30*time.Second)
	data, ok := cache.Get(context.Background(), "k1")
	if !ok {
		t.Fatal("expected a hit")
	}
	if string(data) != `[{"Score":1}]` {
		t.Errorf("data = %q", data)
	}
}

func TestGet_Miss(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "k1")).
		Return(mock.Result(mock.RedisNil()))

	cache := NewCacheForTest(c, 30*time.Second)
	if _, ok := cache.Get(context.Background(), "k1"); ok {
		t.Fatal("expected a miss")
	}
}

func TestGet_ErrorIsMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "k1")).
		Return(mock.ErrorResult(errors.New("connection refused")))

	cache := NewCacheForTest(c, 30*time.Second)
	if _, ok := cache.Get(context.Background(), "k1"); ok {
		t.Fatal("redis failure must behave like a miss")
	}
}

func TestSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SET" && cmd[1] == "k1" && cmd[2] == "v1"
		})).
		Return(mock.Result(mock.RedisString("OK")))

	cache := NewCacheForTest(c, 30*time.Second)
	cache.Set(context.Background(), "k1", []byte("v1"))
}

func TestSet_ErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.ErrorResult(errors.New("connection refused")))

	cache := NewCacheForTest(c, 30*time.Second)
	cache.Set(context.Background(), "k1", []byte("v1")) // must not panic
}

func TestPing(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	cache := NewCacheForTest(c, 30*time.Second)
	if err := cache.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	cache := NewCacheForTest(c, 30*time.Second)
	if err := cache.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
