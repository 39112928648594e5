package configwatcher

import (
	"log"
	"path/filepath"
	"resilience_backend/internal/config"
	"resilience_backend/pkg/logger"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type ConfigReloader func(cfg *config.Config)

// WatchConfig watches the config file and invokes reloader after a
// debounced write event. Blocks; run in a goroutine.
func WatchConfig(configPath string, reloader ConfigReloader) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal("Failed to create config watcher:", err)
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		log.Fatal("Failed to get absolute path:", err)
	}

	if err := watcher.Add(absPath); err != nil {
		log.Fatal("Failed to watch config file:", err)
	}

	var mu sync.Mutex
	timer := time.NewTimer(0)
	<-timer.C

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				// debounce
				mu.Lock()
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(1 * time.Second)
				mu.Unlock()
			}
		case <-timer.C:
			dirPath := filepath.Dir(configPath)
			newCfg, err := config.LoadConfig(dirPath)
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			reloader(newCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
