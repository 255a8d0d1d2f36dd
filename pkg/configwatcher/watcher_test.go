package configwatcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"science_nova_backend/internal/config"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, ttl string) {
	t.Helper()
	content := "server:\n" +
		"  port: \"8080\"\n" +
		"  mode: debug\n" +
		"jwt:\n" +
		"  secret: test-secret\n" +
		"  expire_hours: 72\n" +
		"analytics:\n" +
		"  cache_ttl_seconds: " + ttl + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "60")

	reloaded := make(chan interface{}, 4)
	go WatchConfig(path, nil, func(cfg interface{}) {
		reloaded <- cfg
	})

	// 等 watcher 完成装载
	time.Sleep(300 * time.Millisecond)

	// 首次写入曾因防抖定时器排空阻塞而永远收不到回调
	writeConfig(t, path, "30")

	select {
	case raw := <-reloaded:
		cfg, ok := raw.(*config.Config)
		require.True(t, ok)
		require.Equal(t, 30, cfg.Analytics.CacheTTLSeconds)
	case <-time.After(5 * time.Second):
		t.Fatal("config written but reload callback was not invoked")
	}

	// 再次写入仍然能触发，防抖状态没有卡死
	writeConfig(t, path, "45")

	select {
	case raw := <-reloaded:
		cfg, ok := raw.(*config.Config)
		require.True(t, ok)
		require.Equal(t, 45, cfg.Analytics.CacheTTLSeconds)
	case <-time.After(5 * time.Second):
		t.Fatal("second config write did not trigger a reload")
	}
}
