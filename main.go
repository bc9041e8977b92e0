package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tour-intake-backend/internal/platform/warehouse"
	"tour-intake-backend/internal/walkin"
)

func main() {
	// 設定読み込み
	cfg, err := warehouse.LoadConfig("config/config.yaml")
	if err != nil {
		panic(err)
	}

	// 動作モード取得
	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if cfg.Mode != "dev" && cfg.Mode != "release" {
		fmt.Println("Usage: go run main.go [dev|release]")
		return
	}

	loc := walkin.ResolveLocation(cfg.Timezone)
	log.Printf("[INFO] timezone: %s", loc)

	// 倉庫クライアント（dry_run のときは文を組むだけで実行しないので繋がない）
	var runner warehouse.Runner
	if cfg.Warehouse.DryRun {
		log.Println("[INFO] dry-run mode: statements will be logged, not executed")
		runner = warehouse.DryRunner{}
	} else {
		client, err := warehouse.Connect(context.Background(), cfg.Warehouse)
		if err != nil {
			panic(err)
		}
		defer client.Close()
		log.Printf("[INFO] connected to warehouse: %s.%s", cfg.Warehouse.ProjectID, cfg.Warehouse.Table)
		runner = warehouse.NewRunner(client)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowMethods:     []string{"POST", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// /api/v1
	api := r.Group("/api/v1")
	walkin.RegisterRoutes(api, walkin.NewService(runner, cfg.Warehouse, loc))

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	var certFile, keyFile string

	// TLS設定（フォーム側のフォワーダが HTTPS 必須）
	if mode == "dev" {
		//開発用
		certFile = fmt.Sprintf("config/tls/dev/%s", cfg.Certificate.Cert)
		keyFile = fmt.Sprintf("config/tls/dev/%s", cfg.Certificate.Key)
	} else {
		//本番用
		certFile = fmt.Sprintf("config/tls/release/%s", cfg.Certificate.Cert)
		keyFile = fmt.Sprintf("config/tls/release/%s", cfg.Certificate.Key)
	}

	go func() {
		log.Printf("[INFO] listening on https://0.0.0.0%s", cfg.Server.Addr)
		if err := srv.ListenAndServeTLS(certFile, keyFile); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
