package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"tvtv2xmltv/global"
	"tvtv2xmltv/handler"
	"tvtv2xmltv/logging"
	"tvtv2xmltv/route"
	"tvtv2xmltv/service"
)

func main() {
	listen := flag.String("listen", "", "serve the guide over http on this address instead of exiting after one run")
	debug := flag.Bool("debug", false, "log debug details")
	flag.Parse()
	datadir := os.Getenv("TVTV_DATADIR")
	if datadir == "" {
		ex, err := os.Executable()
		if err != nil {
			panic(err)
		}
		datadir = filepath.Join(filepath.Dir(ex), "data")
		os.Setenv("TVTV_DATADIR", datadir)
	}
	os.Mkdir(datadir, os.ModePerm)

	logging.Setup(filepath.Join(datadir, "tvtv2xmltv.log"), *debug)
	defer zap.L().Sync()

	if err := global.InitDB(filepath.Join(datadir, "guide.db")); err != nil {
		zap.S().Fatalf("init: %s", err)
	}
	cfg, err := global.LoadGuideConfig()
	if err != nil {
		zap.S().Fatalf("config: %s", err)
	}

	if *listen == "" {
		*listen = os.Getenv("TVTV_LISTEN")
	}
	if *listen == "" {
		// single run, write the guide and exit
		if _, err := service.RefreshGuide(cfg); err != nil {
			zap.L().Sync()
			os.Exit(1)
		}
		zap.S().Info("done")
		return
	}

	zap.S().Infof("server listen %s", *listen)
	zap.S().Infof("server datadir %s", datadir)

	interval := 6 * time.Hour
	if v, err := global.GetConfig("refresh_every"); err == nil && v != "" {
		if d, err := global.ParseInterval(v); err == nil {
			interval = d
		} else {
			zap.S().Warnf("ignoring bad refresh interval %q", v)
		}
	}
	if interval < 15*time.Minute {
		zap.S().Warnf("refresh interval %s is too short, using 15m", interval)
		interval = 15 * time.Minute
	}

	go service.RefreshGuide(cfg)
	c := cron.New()
	_, err = c.AddFunc("@every "+interval.String(), func() {
		service.RefreshGuide(cfg)
	})
	if err != nil {
		zap.S().Fatalf("refreshCron: %s", err)
	}
	c.Start()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler.UseConfig(cfg)
	route.Register(router)
	srv := &http.Server{
		Addr:    *listen,
		Handler: router,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.S().Fatalf("listen: %s", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Fatalf("server forced to shutdown: %s", err)
	}
	zap.S().Info("server exiting")
}
